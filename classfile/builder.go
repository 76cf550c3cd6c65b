package classfile

import (
	"errors"
	"fmt"
	"strings"
)

type memberDecl struct {
	flags      AccessFlags
	name       string
	descriptor string
}

// Builder synthesizes a class file. Methods are declared without a Code
// attribute, so concrete methods need a body added before the class can be
// loaded.
type Builder struct {
	name       string
	super      string
	interfaces []string
	flags      AccessFlags
	major      uint16
	minor      uint16
	fields     []memberDecl
	methods    []memberDecl
}

// NewBuilder starts a public class extending java/lang/Object at
// DefaultMajorVersion.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:  name,
		super: "java/lang/Object",
		flags: AccPublic | AccSuper,
		major: DefaultMajorVersion,
	}
}

// Super sets the superclass. An empty name falls back to java/lang/Object.
func (b *Builder) Super(name string) *Builder {
	if name == "" {
		name = "java/lang/Object"
	}
	b.super = name
	return b
}

func (b *Builder) Interfaces(names ...string) *Builder {
	b.interfaces = append(b.interfaces, names...)
	return b
}

func (b *Builder) Access(flags AccessFlags) *Builder {
	b.flags = flags
	return b
}

func (b *Builder) Version(major, minor uint16) *Builder {
	b.major, b.minor = major, minor
	return b
}

func (b *Builder) Field(flags AccessFlags, name, descriptor string) *Builder {
	b.fields = append(b.fields, memberDecl{flags, name, descriptor})
	return b
}

func (b *Builder) Method(flags AccessFlags, name, descriptor string) *Builder {
	b.methods = append(b.methods, memberDecl{flags, name, descriptor})
	return b
}

func (b *Builder) validate() error {
	var errs []error
	checkName := func(what, name string) {
		if name == "" {
			errs = append(errs, fmt.Errorf("%s name is empty", what))
		} else if strings.Contains(name, ".") {
			errs = append(errs, fmt.Errorf("%s name %q must use '/' separators", what, name))
		}
	}

	checkName("class", b.name)
	checkName("superclass", b.super)
	for _, iface := range b.interfaces {
		checkName("interface", iface)
	}
	for _, f := range b.fields {
		if f.name == "" {
			errs = append(errs, errors.New("field name is empty"))
		}
		if ParseFieldDescriptor(f.descriptor) == nil {
			errs = append(errs, fmt.Errorf("field %s: invalid descriptor %q", f.name, f.descriptor))
		}
	}
	for _, m := range b.methods {
		if m.name == "" {
			errs = append(errs, errors.New("method name is empty"))
		}
		if ParseMethodDescriptor(m.descriptor) == nil {
			errs = append(errs, fmt.Errorf("method %s: invalid descriptor %q", m.name, m.descriptor))
		}
	}
	return errors.Join(errs...)
}

func (b *Builder) Build() (*ClassFile, error) {
	if err := b.validate(); err != nil {
		return nil, fmt.Errorf("build class %s: %w", b.name, err)
	}

	pool := newPoolBuilder()
	cf := &ClassFile{
		MinorVersion: b.minor,
		MajorVersion: b.major,
		AccessFlags:  b.flags,
		ThisClass:    pool.addClass(b.name),
		SuperClass:   pool.addClass(b.super),
	}
	for _, iface := range b.interfaces {
		cf.Interfaces = append(cf.Interfaces, pool.addClass(iface))
	}
	for _, f := range b.fields {
		cf.Fields = append(cf.Fields, FieldInfo{member{
			AccessFlags:     f.flags,
			NameIndex:       pool.addUtf8(f.name),
			DescriptorIndex: pool.addUtf8(f.descriptor),
		}})
	}
	for _, m := range b.methods {
		cf.Methods = append(cf.Methods, MethodInfo{member{
			AccessFlags:     m.flags,
			NameIndex:       pool.addUtf8(m.name),
			DescriptorIndex: pool.addUtf8(m.descriptor),
		}})
	}

	if len(pool.pool) >= 0xFFFF {
		return nil, fmt.Errorf("build class %s: constant pool overflow", b.name)
	}
	cf.ConstantPool = pool.pool
	return cf, nil
}
