package classfile

// ConstantPoolEntry is one constant. Entries know how to encode themselves
// so a parsed pool can be written back unchanged.
type ConstantPoolEntry interface {
	Tag() ConstantTag
	encode(w *writer)
}

// ConstantUtf8Info keeps the modified UTF-8 bytes it was read from so that
// re-encoding a parsed class reproduces them exactly.
type ConstantUtf8Info struct {
	Value string
	Raw   []byte
}

func (c *ConstantUtf8Info) Tag() ConstantTag { return ConstantUtf8 }

func (c *ConstantUtf8Info) encode(w *writer) {
	raw := c.Raw
	if raw == nil {
		raw = encodeModifiedUtf8(c.Value)
	}
	if len(raw) > 0xFFFF {
		w.fail("utf8 constant of %d bytes is too long", len(raw))
		return
	}
	w.writeU2(uint16(len(raw)))
	w.writeBytes(raw)
}

type ConstantIntegerInfo struct {
	Value int32
}

func (c *ConstantIntegerInfo) Tag() ConstantTag { return ConstantInteger }
func (c *ConstantIntegerInfo) encode(w *writer) { w.writeU4(uint32(c.Value)) }

// Float and double constants are kept as bits so NaN payloads survive.
type ConstantFloatInfo struct {
	Bits uint32
}

func (c *ConstantFloatInfo) Tag() ConstantTag { return ConstantFloat }
func (c *ConstantFloatInfo) encode(w *writer) { w.writeU4(c.Bits) }

type ConstantLongInfo struct {
	Value int64
}

func (c *ConstantLongInfo) Tag() ConstantTag { return ConstantLong }
func (c *ConstantLongInfo) encode(w *writer) { w.writeU8(uint64(c.Value)) }

type ConstantDoubleInfo struct {
	Bits uint64
}

func (c *ConstantDoubleInfo) Tag() ConstantTag { return ConstantDouble }
func (c *ConstantDoubleInfo) encode(w *writer) { w.writeU8(c.Bits) }

// ConstantIndexInfo covers the constants that hold a single pool index:
// Class, String, MethodType, Module and Package.
type ConstantIndexInfo struct {
	Kind  ConstantTag
	Index uint16
}

func (c *ConstantIndexInfo) Tag() ConstantTag { return c.Kind }
func (c *ConstantIndexInfo) encode(w *writer) { w.writeU2(c.Index) }

// ConstantPairInfo covers the constants that hold two pool indexes:
// the member references, NameAndType, Dynamic and InvokeDynamic.
type ConstantPairInfo struct {
	Kind   ConstantTag
	First  uint16
	Second uint16
}

func (c *ConstantPairInfo) Tag() ConstantTag { return c.Kind }

func (c *ConstantPairInfo) encode(w *writer) {
	w.writeU2(c.First)
	w.writeU2(c.Second)
}

type ConstantMethodHandleInfo struct {
	ReferenceKind  uint8
	ReferenceIndex uint16
}

func (c *ConstantMethodHandleInfo) Tag() ConstantTag { return ConstantMethodHandle }

func (c *ConstantMethodHandleInfo) encode(w *writer) {
	w.writeU1(c.ReferenceKind)
	w.writeU2(c.ReferenceIndex)
}

// ConstantPool is indexed from 1 like the class file format. The slot after
// a long or double constant is nil.
type ConstantPool []ConstantPoolEntry

func (cp ConstantPool) entry(index uint16) ConstantPoolEntry {
	if index == 0 || int(index) > len(cp) {
		return nil
	}
	return cp[index-1]
}

func (cp ConstantPool) GetUtf8(index uint16) string {
	if entry, ok := cp.entry(index).(*ConstantUtf8Info); ok {
		return entry.Value
	}
	return ""
}

func (cp ConstantPool) GetClassName(index uint16) string {
	if entry, ok := cp.entry(index).(*ConstantIndexInfo); ok && entry.Kind == ConstantClass {
		return cp.GetUtf8(entry.Index)
	}
	return ""
}

func (cp ConstantPool) GetString(index uint16) string {
	if entry, ok := cp.entry(index).(*ConstantIndexInfo); ok && entry.Kind == ConstantString {
		return cp.GetUtf8(entry.Index)
	}
	return ""
}

// poolBuilder appends constants to a pool, reusing identical Utf8 and Class
// entries.
type poolBuilder struct {
	pool    ConstantPool
	utf8    map[string]uint16
	classes map[string]uint16
}

func newPoolBuilder() *poolBuilder {
	return &poolBuilder{utf8: make(map[string]uint16), classes: make(map[string]uint16)}
}

func (p *poolBuilder) add(entry ConstantPoolEntry) uint16 {
	p.pool = append(p.pool, entry)
	return uint16(len(p.pool))
}

func (p *poolBuilder) addUtf8(s string) uint16 {
	if idx, ok := p.utf8[s]; ok {
		return idx
	}
	idx := p.add(&ConstantUtf8Info{Value: s})
	p.utf8[s] = idx
	return idx
}

func (p *poolBuilder) addClass(name string) uint16 {
	if idx, ok := p.classes[name]; ok {
		return idx
	}
	nameIdx := p.addUtf8(name)
	idx := p.add(&ConstantIndexInfo{Kind: ConstantClass, Index: nameIdx})
	p.classes[name] = idx
	return idx
}
