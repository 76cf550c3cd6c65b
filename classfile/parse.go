package classfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

type reader struct {
	r   io.Reader
	err error
}

func (r *reader) readU1() uint8 {
	if r.err != nil {
		return 0
	}
	var buf [1]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return buf[0]
}

func (r *reader) readU2() uint16 {
	if r.err != nil {
		return 0
	}
	var buf [2]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint16(buf[:])
}

func (r *reader) readU4() uint32 {
	if r.err != nil {
		return 0
	}
	var buf [4]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint32(buf[:])
}

func (r *reader) readU8() uint64 {
	high := r.readU4()
	low := r.readU4()
	return uint64(high)<<32 | uint64(low)
}

func (r *reader) readBytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	buf := make([]byte, n)
	_, r.err = io.ReadFull(r.r, buf)
	return buf
}

func ParseFile(path string) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open class file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a class file. Attributes are kept as raw bytes; only the
// structure needed to name and rewrite fields and methods is decoded.
func Parse(rd io.Reader) (*ClassFile, error) {
	r := &reader{r: rd}

	magic := r.readU4()
	if r.err != nil {
		return nil, fmt.Errorf("read magic: %w", r.err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("invalid magic number: 0x%X (expected 0xCAFEBABE)", magic)
	}

	cf := &ClassFile{
		MinorVersion: r.readU2(),
		MajorVersion: r.readU2(),
	}
	if r.err != nil {
		return nil, fmt.Errorf("read version: %w", r.err)
	}

	constantPoolCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("read constant pool count: %w", r.err)
	}
	if constantPoolCount == 0 {
		return nil, fmt.Errorf("invalid constant pool count 0")
	}

	cf.ConstantPool = make(ConstantPool, constantPoolCount-1)
	for i := uint16(1); i < constantPoolCount; i++ {
		entry, wide, err := readConstantPoolEntry(r)
		if err != nil {
			return nil, fmt.Errorf("read constant pool entry %d: %w", i, err)
		}
		cf.ConstantPool[i-1] = entry
		if wide {
			i++
		}
	}

	cf.AccessFlags = AccessFlags(r.readU2())
	cf.ThisClass = r.readU2()
	cf.SuperClass = r.readU2()

	interfacesCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("read class info: %w", r.err)
	}

	cf.Interfaces = make([]uint16, interfacesCount)
	for i := range cf.Interfaces {
		cf.Interfaces[i] = r.readU2()
	}
	if r.err != nil {
		return nil, fmt.Errorf("read interfaces: %w", r.err)
	}

	fieldsCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("read fields count: %w", r.err)
	}
	cf.Fields = make([]FieldInfo, fieldsCount)
	for i := range cf.Fields {
		m, err := readMember(r)
		if err != nil {
			return nil, fmt.Errorf("read field %d: %w", i, err)
		}
		cf.Fields[i] = FieldInfo{member: m}
	}

	methodsCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("read methods count: %w", r.err)
	}
	cf.Methods = make([]MethodInfo, methodsCount)
	for i := range cf.Methods {
		m, err := readMember(r)
		if err != nil {
			return nil, fmt.Errorf("read method %d: %w", i, err)
		}
		cf.Methods[i] = MethodInfo{member: m}
	}

	attrs, err := readAttributes(r)
	if err != nil {
		return nil, fmt.Errorf("read class attributes: %w", err)
	}
	cf.Attributes = attrs

	return cf, nil
}

// readConstantPoolEntry reports wide for long and double constants, which
// take two pool slots.
func readConstantPoolEntry(r *reader) (entry ConstantPoolEntry, wide bool, err error) {
	tag := ConstantTag(r.readU1())
	if r.err != nil {
		return nil, false, r.err
	}

	switch tag {
	case ConstantUtf8:
		length := r.readU2()
		raw := r.readBytes(int(length))
		entry = &ConstantUtf8Info{Value: decodeModifiedUtf8(raw), Raw: raw}
	case ConstantInteger:
		entry = &ConstantIntegerInfo{Value: int32(r.readU4())}
	case ConstantFloat:
		entry = &ConstantFloatInfo{Bits: r.readU4()}
	case ConstantLong:
		entry, wide = &ConstantLongInfo{Value: int64(r.readU8())}, true
	case ConstantDouble:
		entry, wide = &ConstantDoubleInfo{Bits: r.readU8()}, true
	case ConstantClass, ConstantString, ConstantMethodType, ConstantModule, ConstantPackage:
		entry = &ConstantIndexInfo{Kind: tag, Index: r.readU2()}
	case ConstantFieldref, ConstantMethodref, ConstantInterfaceMethodref,
		ConstantNameAndType, ConstantDynamic, ConstantInvokeDynamic:
		first := r.readU2()
		entry = &ConstantPairInfo{Kind: tag, First: first, Second: r.readU2()}
	case ConstantMethodHandle:
		kind := r.readU1()
		entry = &ConstantMethodHandleInfo{ReferenceKind: kind, ReferenceIndex: r.readU2()}
	default:
		return nil, false, fmt.Errorf("unknown constant pool tag: %d", tag)
	}

	if r.err != nil {
		return nil, false, r.err
	}
	return entry, wide, nil
}

func readMember(r *reader) (member, error) {
	m := member{
		AccessFlags:     AccessFlags(r.readU2()),
		NameIndex:       r.readU2(),
		DescriptorIndex: r.readU2(),
	}
	if r.err != nil {
		return member{}, r.err
	}
	attrs, err := readAttributes(r)
	if err != nil {
		return member{}, err
	}
	m.Attributes = attrs
	return m, nil
}

func readAttributes(r *reader) ([]AttributeInfo, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	attrs := make([]AttributeInfo, count)
	for i := range attrs {
		attrs[i].NameIndex = r.readU2()
		length := r.readU4()
		attrs[i].Info = r.readBytes(int(length))
		if r.err != nil {
			return nil, r.err
		}
	}
	return attrs, nil
}

func decodeModifiedUtf8(b []byte) string {
	runes := make([]rune, 0, len(b))
	i := 0
	for i < len(b) {
		c := b[i]
		switch {
		case c&0x80 == 0:
			runes = append(runes, rune(c))
			i++
		case c&0xE0 == 0xC0 && i+1 < len(b):
			runes = append(runes, rune(c&0x1F)<<6|rune(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0 && i+2 < len(b):
			r := rune(c&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F)
			// Supplementary characters are stored as two encoded surrogates.
			if r >= 0xD800 && r <= 0xDBFF && i+5 < len(b) && b[i+3] == 0xED {
				low := rune(b[i+3]&0x0F)<<12 | rune(b[i+4]&0x3F)<<6 | rune(b[i+5]&0x3F)
				if low >= 0xDC00 && low <= 0xDFFF {
					runes = append(runes, 0x10000+(r-0xD800)<<10+(low-0xDC00))
					i += 6
					continue
				}
			}
			runes = append(runes, r)
			i += 3
		default:
			runes = append(runes, rune(c))
			i++
		}
	}
	return string(runes)
}

func encodeModifiedUtf8(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		switch {
		case r != 0 && r < 0x80:
			out = append(out, byte(r))
		case r < 0x800:
			out = append(out, byte(0xC0|r>>6), byte(0x80|r&0x3F))
		case r < 0x10000:
			out = append(out, byte(0xE0|r>>12), byte(0x80|(r>>6)&0x3F), byte(0x80|r&0x3F))
		default:
			r -= 0x10000
			high := 0xD800 + (r >> 10)
			low := 0xDC00 + (r & 0x3FF)
			out = append(out,
				byte(0xE0|high>>12), byte(0x80|(high>>6)&0x3F), byte(0x80|high&0x3F),
				byte(0xE0|low>>12), byte(0x80|(low>>6)&0x3F), byte(0x80|low&0x3F))
		}
	}
	return out
}
