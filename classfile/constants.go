package classfile

import "strings"

const (
	Magic = 0xCAFEBABE

	// DefaultMajorVersion is the class file version of Java 21.
	DefaultMajorVersion = 65
)

type AccessFlags uint16

const (
	AccPublic       AccessFlags = 0x0001
	AccPrivate      AccessFlags = 0x0002
	AccProtected    AccessFlags = 0x0004
	AccStatic       AccessFlags = 0x0008
	AccFinal        AccessFlags = 0x0010
	AccSuper        AccessFlags = 0x0020
	AccSynchronized AccessFlags = 0x0020
	AccTransitive   AccessFlags = 0x0020
	AccVolatile     AccessFlags = 0x0040
	AccBridge       AccessFlags = 0x0040
	AccTransient    AccessFlags = 0x0080
	AccVarargs      AccessFlags = 0x0080
	AccNative       AccessFlags = 0x0100
	AccInterface    AccessFlags = 0x0200
	AccAbstract     AccessFlags = 0x0400
	AccStrict       AccessFlags = 0x0800
	AccSynthetic    AccessFlags = 0x1000
	AccAnnotation   AccessFlags = 0x2000
	AccEnum         AccessFlags = 0x4000
	AccModule       AccessFlags = 0x8000

	// AccVisibility covers the mutually exclusive access levels.
	AccVisibility = AccPublic | AccPrivate | AccProtected
)

func (f AccessFlags) Has(flag AccessFlags) bool { return f&flag == flag }

func (f AccessFlags) IsPublic() bool     { return f&AccPublic != 0 }
func (f AccessFlags) IsPrivate() bool    { return f&AccPrivate != 0 }
func (f AccessFlags) IsStatic() bool     { return f&AccStatic != 0 }
func (f AccessFlags) IsInterface() bool  { return f&AccInterface != 0 }
func (f AccessFlags) IsAnnotation() bool { return f&AccAnnotation != 0 }
func (f AccessFlags) IsEnum() bool       { return f&AccEnum != 0 }
func (f AccessFlags) IsModule() bool     { return f&AccModule != 0 }

// Several bits mean different things on classes, fields and methods, so
// naming them needs to know what they belong to.
type MemberKind int

const (
	KindClass MemberKind = iota
	KindField
	KindMethod
)

type flagName struct {
	flag AccessFlags
	name string
}

var flagNames = map[MemberKind][]flagName{
	KindClass: {
		{AccPublic, "public"}, {AccFinal, "final"}, {AccSuper, "super"},
		{AccInterface, "interface"}, {AccAbstract, "abstract"}, {AccSynthetic, "synthetic"},
		{AccAnnotation, "annotation"}, {AccEnum, "enum"}, {AccModule, "module"},
	},
	KindField: {
		{AccPublic, "public"}, {AccPrivate, "private"}, {AccProtected, "protected"},
		{AccStatic, "static"}, {AccFinal, "final"}, {AccVolatile, "volatile"},
		{AccTransient, "transient"}, {AccSynthetic, "synthetic"}, {AccEnum, "enum"},
	},
	KindMethod: {
		{AccPublic, "public"}, {AccPrivate, "private"}, {AccProtected, "protected"},
		{AccStatic, "static"}, {AccFinal, "final"}, {AccSynchronized, "synchronized"},
		{AccBridge, "bridge"}, {AccVarargs, "varargs"}, {AccNative, "native"},
		{AccAbstract, "abstract"}, {AccStrict, "strict"}, {AccSynthetic, "synthetic"},
	},
}

// Names lists the set flags as Java modifiers, in declaration order.
func (f AccessFlags) Names(kind MemberKind) []string {
	var names []string
	for _, fn := range flagNames[kind] {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	return names
}

// Format joins Names with spaces.
func (f AccessFlags) Format(kind MemberKind) string {
	return strings.Join(f.Names(kind), " ")
}

type ConstantTag uint8

const (
	ConstantUtf8               ConstantTag = 1
	ConstantInteger            ConstantTag = 3
	ConstantFloat              ConstantTag = 4
	ConstantLong               ConstantTag = 5
	ConstantDouble             ConstantTag = 6
	ConstantClass              ConstantTag = 7
	ConstantString             ConstantTag = 8
	ConstantFieldref           ConstantTag = 9
	ConstantMethodref          ConstantTag = 10
	ConstantInterfaceMethodref ConstantTag = 11
	ConstantNameAndType        ConstantTag = 12
	ConstantMethodHandle       ConstantTag = 15
	ConstantMethodType         ConstantTag = 16
	ConstantDynamic            ConstantTag = 17
	ConstantInvokeDynamic      ConstantTag = 18
	ConstantModule             ConstantTag = 19
	ConstantPackage            ConstantTag = 20
)
