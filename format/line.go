package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/VoidCRDev/Artisan/classfile"
)

// LineEncoder writes one tab separated line for the class and for each of
// its members:
//
//	class	a/B	public,super
//	field	count	I	private,static
//	method	run	()V	public
type LineEncoder struct {
	w     io.Writer
	class *classfile.ClassFile
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(class *classfile.ClassFile) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	c := e.class
	cp := c.ConstantPool

	fmt.Fprintf(&sb, "%s\t%s\t%s\n", classKind(c), c.ClassName(), modifiersStr(c.AccessFlags, classfile.KindClass))

	for i := range c.Fields {
		f := &c.Fields[i]
		fmt.Fprintf(&sb, "field\t%s\t%s\t%s\n",
			f.Name(cp),
			f.Descriptor(cp),
			modifiersStr(f.AccessFlags, classfile.KindField),
		)
	}

	for i := range c.Methods {
		m := &c.Methods[i]
		fmt.Fprintf(&sb, "method\t%s\t%s\t%s\n",
			m.Name(cp),
			m.Descriptor(cp),
			modifiersStr(m.AccessFlags, classfile.KindMethod),
		)
	}

	return []byte(sb.String()), nil
}

func classKind(c *classfile.ClassFile) string {
	switch {
	case c.AccessFlags.IsAnnotation():
		return "annotation"
	case c.AccessFlags.IsEnum():
		return "enum"
	case c.AccessFlags.IsInterface():
		return "interface"
	case c.AccessFlags.IsModule():
		return "module"
	default:
		return "class"
	}
}

func modifiersStr(flags classfile.AccessFlags, kind classfile.MemberKind) string {
	names := flags.Names(kind)
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}
