package extension

import (
	"github.com/VoidCRDev/Artisan/classfile"
)

// Member is a field or method whose modifier flags can be rewritten.
// Descriptor is the JVM type descriptor; rules key fields by name only.
type Member interface {
	Name() string
	Descriptor() string
	Flags() classfile.AccessFlags
	SetFlags(classfile.AccessFlags)
}

// Class is the live symbol collection of one class. SuperName is empty for
// java/lang/Object.
type Class interface {
	Name() string
	SuperName() string
	InterfaceNames() []string
	Fields() []Member
	Methods() []Member
}

// MemoryMember is a Member held in memory.
type MemoryMember struct {
	name       string
	descriptor string
	flags      classfile.AccessFlags
}

func NewMemoryMember(name, descriptor string, flags classfile.AccessFlags) *MemoryMember {
	return &MemoryMember{name: name, descriptor: descriptor, flags: flags}
}

func (m *MemoryMember) Name() string                         { return m.name }
func (m *MemoryMember) Descriptor() string                   { return m.descriptor }
func (m *MemoryMember) Flags() classfile.AccessFlags         { return m.flags }
func (m *MemoryMember) SetFlags(flags classfile.AccessFlags) { m.flags = flags }

// MemoryClass is a Class held in memory, for tools and tests that have no
// class file at hand.
type MemoryClass struct {
	name       string
	super      string
	interfaces []string
	fields     []*MemoryMember
	methods    []*MemoryMember
}

func NewMemoryClass(name, super string, interfaces ...string) *MemoryClass {
	return &MemoryClass{name: name, super: super, interfaces: interfaces}
}

func (c *MemoryClass) AddField(name, descriptor string, flags classfile.AccessFlags) *MemoryMember {
	m := NewMemoryMember(name, descriptor, flags)
	c.fields = append(c.fields, m)
	return m
}

func (c *MemoryClass) AddMethod(name, descriptor string, flags classfile.AccessFlags) *MemoryMember {
	m := NewMemoryMember(name, descriptor, flags)
	c.methods = append(c.methods, m)
	return m
}

func (c *MemoryClass) Name() string             { return c.name }
func (c *MemoryClass) SuperName() string        { return c.super }
func (c *MemoryClass) InterfaceNames() []string { return c.interfaces }

func (c *MemoryClass) Fields() []Member {
	return members(c.fields)
}

func (c *MemoryClass) Methods() []Member {
	return members(c.methods)
}

func members(ms []*MemoryMember) []Member {
	out := make([]Member, len(ms))
	for i, m := range ms {
		out[i] = m
	}
	return out
}
