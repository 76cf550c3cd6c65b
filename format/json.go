package format

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/VoidCRDev/Artisan/classfile"
)

type JSONEncoder struct {
	w     io.Writer
	class *classfile.ClassFile
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(class *classfile.ClassFile) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := e.buildClassData()
	return json.MarshalIndent(data, "", "  ")
}

type jsonClass struct {
	Name       string       `json:"name"`
	SimpleName string       `json:"simpleName"`
	Package    string       `json:"package"`
	SuperClass string       `json:"superClass,omitempty"`
	Interfaces []string     `json:"interfaces,omitempty"`
	Kind       string       `json:"kind"`
	Modifiers  []string     `json:"modifiers,omitempty"`
	Version    jsonVersion  `json:"version"`
	Fields     []jsonField  `json:"fields,omitempty"`
	Methods    []jsonMethod `json:"methods,omitempty"`
}

type jsonVersion struct {
	Major uint16 `json:"major"`
	Minor uint16 `json:"minor"`
}

type jsonField struct {
	Name       string   `json:"name"`
	Descriptor string   `json:"descriptor"`
	Type       string   `json:"type,omitempty"`
	Modifiers  []string `json:"modifiers,omitempty"`
}

type jsonMethod struct {
	Name       string   `json:"name"`
	Descriptor string   `json:"descriptor"`
	ReturnType string   `json:"returnType,omitempty"`
	Parameters []string `json:"parameters,omitempty"`
	Modifiers  []string `json:"modifiers,omitempty"`
}

func (e *JSONEncoder) buildClassData() jsonClass {
	c := e.class
	name := c.ClassName()
	pkg, simple := "", name
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		pkg, simple = name[:i], name[i+1:]
	}

	return jsonClass{
		Name:       classfile.InternalToSourceName(name),
		SimpleName: simple,
		Package:    classfile.InternalToSourceName(pkg),
		SuperClass: classfile.InternalToSourceName(c.SuperClassName()),
		Interfaces: sourceNames(c.InterfaceNames()),
		Kind:       classKind(c),
		Modifiers:  c.AccessFlags.Names(classfile.KindClass),
		Version: jsonVersion{
			Major: c.MajorVersion,
			Minor: c.MinorVersion,
		},
		Fields:  e.buildFields(),
		Methods: e.buildMethods(),
	}
}

func sourceNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = classfile.InternalToSourceName(n)
	}
	return out
}

func (e *JSONEncoder) buildFields() []jsonField {
	cp := e.class.ConstantPool
	result := make([]jsonField, len(e.class.Fields))
	for i := range e.class.Fields {
		f := &e.class.Fields[i]
		desc := f.Descriptor(cp)
		result[i] = jsonField{
			Name:       f.Name(cp),
			Descriptor: desc,
			Modifiers:  f.AccessFlags.Names(classfile.KindField),
		}
		if ft := classfile.ParseFieldDescriptor(desc); ft != nil {
			result[i].Type = ft.String()
		}
	}
	return result
}

func (e *JSONEncoder) buildMethods() []jsonMethod {
	cp := e.class.ConstantPool
	result := make([]jsonMethod, len(e.class.Methods))
	for i := range e.class.Methods {
		m := &e.class.Methods[i]
		desc := m.Descriptor(cp)
		result[i] = jsonMethod{
			Name:       m.Name(cp),
			Descriptor: desc,
			Modifiers:  m.AccessFlags.Names(classfile.KindMethod),
		}
		md := classfile.ParseMethodDescriptor(desc)
		if md == nil {
			continue
		}
		result[i].ReturnType = "void"
		if md.ReturnType != nil {
			result[i].ReturnType = md.ReturnType.String()
		}
		for _, p := range md.Parameters {
			result[i].Parameters = append(result[i].Parameters, p.String())
		}
	}
	return result
}
