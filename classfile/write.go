package classfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// writer mirrors reader: the first error sticks and later writes are
// dropped.
type writer struct {
	w   io.Writer
	n   int64
	err error
}

func (w *writer) fail(format string, args ...any) {
	if w.err == nil {
		w.err = fmt.Errorf(format, args...)
	}
}

func (w *writer) writeBytes(b []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(b)
	w.n += int64(n)
	w.err = err
}

func (w *writer) writeU1(v uint8) {
	w.writeBytes([]byte{v})
}

func (w *writer) writeU2(v uint16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	w.writeBytes(buf[:])
}

func (w *writer) writeU4(v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	w.writeBytes(buf[:])
}

func (w *writer) writeU8(v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	w.writeBytes(buf[:])
}

func (w *writer) writeCount(what string, n int) {
	if n > 0xFFFF {
		w.fail("too many %s: %d", what, n)
		return
	}
	w.writeU2(uint16(n))
}

// WriteTo encodes the class file. A class returned by Parse and left
// unmodified encodes to the bytes it was parsed from.
func (cf *ClassFile) WriteTo(out io.Writer) (int64, error) {
	w := &writer{w: out}

	w.writeU4(Magic)
	w.writeU2(cf.MinorVersion)
	w.writeU2(cf.MajorVersion)

	w.writeCount("constant pool entries", len(cf.ConstantPool)+1)
	for _, entry := range cf.ConstantPool {
		if entry == nil {
			continue
		}
		w.writeU1(uint8(entry.Tag()))
		entry.encode(w)
	}

	w.writeU2(uint16(cf.AccessFlags))
	w.writeU2(cf.ThisClass)
	w.writeU2(cf.SuperClass)

	w.writeCount("interfaces", len(cf.Interfaces))
	for _, idx := range cf.Interfaces {
		w.writeU2(idx)
	}

	w.writeCount("fields", len(cf.Fields))
	for i := range cf.Fields {
		writeMember(w, &cf.Fields[i].member)
	}

	w.writeCount("methods", len(cf.Methods))
	for i := range cf.Methods {
		writeMember(w, &cf.Methods[i].member)
	}

	writeAttributes(w, cf.Attributes)

	if w.err != nil {
		return w.n, fmt.Errorf("write class %s: %w", cf.ClassName(), w.err)
	}
	return w.n, nil
}

func (cf *ClassFile) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := cf.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeMember(w *writer, m *member) {
	w.writeU2(uint16(m.AccessFlags))
	w.writeU2(m.NameIndex)
	w.writeU2(m.DescriptorIndex)
	writeAttributes(w, m.Attributes)
}

func writeAttributes(w *writer, attrs []AttributeInfo) {
	w.writeCount("attributes", len(attrs))
	for _, attr := range attrs {
		if uint64(len(attr.Info)) > 0xFFFFFFFF {
			w.fail("attribute of %d bytes is too long", len(attr.Info))
			return
		}
		w.writeU2(attr.NameIndex)
		w.writeU4(uint32(len(attr.Info)))
		w.writeBytes(attr.Info)
	}
}
