package editor

import (
	"github.com/VoidCRDev/Artisan/classfile"
	"github.com/VoidCRDev/Artisan/extension"
)

// ClassSymbols exposes a parsed class file to extension handlers. Flag
// changes made through its members are written straight into the class
// file.
type ClassSymbols struct {
	cf      *classfile.ClassFile
	fields  []extension.Member
	methods []extension.Member
}

func Symbols(cf *classfile.ClassFile) *ClassSymbols {
	s := &ClassSymbols{cf: cf}
	for i := range cf.Fields {
		f := &cf.Fields[i]
		s.fields = append(s.fields, &memberSymbol{
			name:       f.Name(cf.ConstantPool),
			descriptor: f.Descriptor(cf.ConstantPool),
			flags:      &f.AccessFlags,
		})
	}
	for i := range cf.Methods {
		m := &cf.Methods[i]
		s.methods = append(s.methods, &memberSymbol{
			name:       m.Name(cf.ConstantPool),
			descriptor: m.Descriptor(cf.ConstantPool),
			flags:      &m.AccessFlags,
		})
	}
	return s
}

func (s *ClassSymbols) Name() string                { return s.cf.ClassName() }
func (s *ClassSymbols) SuperName() string           { return s.cf.SuperClassName() }
func (s *ClassSymbols) InterfaceNames() []string    { return s.cf.InterfaceNames() }
func (s *ClassSymbols) Fields() []extension.Member  { return s.fields }
func (s *ClassSymbols) Methods() []extension.Member { return s.methods }

func (s *ClassSymbols) ClassFile() *classfile.ClassFile {
	return s.cf
}

type memberSymbol struct {
	name       string
	descriptor string
	flags      *classfile.AccessFlags
}

func (m *memberSymbol) Name() string                         { return m.name }
func (m *memberSymbol) Descriptor() string                   { return m.descriptor }
func (m *memberSymbol) Flags() classfile.AccessFlags         { return *m.flags }
func (m *memberSymbol) SetFlags(flags classfile.AccessFlags) { *m.flags = flags }
