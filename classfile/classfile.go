// Package classfile reads, writes and synthesizes JVM class files.
//
// The model is shallow: the constant pool, access flags,
// fields and methods are decoded, every attribute is carried as raw bytes.
// That is enough to rewrite modifier flags, and it lets an unmodified class
// be written back byte for byte.
package classfile

type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool ConstantPool
	AccessFlags  AccessFlags
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Fields       []FieldInfo
	Methods      []MethodInfo
	Attributes   []AttributeInfo
}

type AttributeInfo struct {
	NameIndex uint16
	Info      []byte
}

type member struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

func (m *member) Name(cp ConstantPool) string {
	return cp.GetUtf8(m.NameIndex)
}

func (m *member) Descriptor(cp ConstantPool) string {
	return cp.GetUtf8(m.DescriptorIndex)
}

func (m *member) GetAttribute(cp ConstantPool, name string) *AttributeInfo {
	for i := range m.Attributes {
		if cp.GetUtf8(m.Attributes[i].NameIndex) == name {
			return &m.Attributes[i]
		}
	}
	return nil
}

type FieldInfo struct {
	member
}

type MethodInfo struct {
	member
}

func (m *MethodInfo) IsConstructor(cp ConstantPool) bool {
	return m.Name(cp) == "<init>"
}

func (cf *ClassFile) ClassName() string {
	return cf.ConstantPool.GetClassName(cf.ThisClass)
}

func (cf *ClassFile) SuperClassName() string {
	if cf.SuperClass == 0 {
		return ""
	}
	return cf.ConstantPool.GetClassName(cf.SuperClass)
}

func (cf *ClassFile) InterfaceNames() []string {
	names := make([]string, len(cf.Interfaces))
	for i, idx := range cf.Interfaces {
		names[i] = cf.ConstantPool.GetClassName(idx)
	}
	return names
}

func (cf *ClassFile) IsInterface() bool {
	return cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) GetField(name string) *FieldInfo {
	for i := range cf.Fields {
		if cf.Fields[i].Name(cf.ConstantPool) == name {
			return &cf.Fields[i]
		}
	}
	return nil
}

// GetMethod finds a method by name and, unless descriptor is empty, by
// descriptor.
func (cf *ClassFile) GetMethod(name, descriptor string) *MethodInfo {
	for i := range cf.Methods {
		if cf.Methods[i].Name(cf.ConstantPool) == name {
			if descriptor == "" || cf.Methods[i].Descriptor(cf.ConstantPool) == descriptor {
				return &cf.Methods[i]
			}
		}
	}
	return nil
}

func (cf *ClassFile) GetAttribute(name string) *AttributeInfo {
	for i := range cf.Attributes {
		if cf.ConstantPool.GetUtf8(cf.Attributes[i].NameIndex) == name {
			return &cf.Attributes[i]
		}
	}
	return nil
}
