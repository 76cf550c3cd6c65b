// Package symbol names the targets of directive rules: classes, fields and
// methods addressed by their internal (slash separated) class path.
package symbol

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidID = errors.New("invalid symbol id")

type Kind uint8

const (
	KindClass Kind = iota + 1
	KindField
	KindMethod
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindField:
		return "field"
	case KindMethod:
		return "method"
	default:
		return "unknown"
	}
}

// ID identifies a class or one of its members. IDs are comparable and are
// used directly as map keys.
//
// Name is empty only for classes and Descriptor is set only for methods.
type ID struct {
	Kind       Kind
	Path       string
	Name       string
	Descriptor string
}

func New(kind Kind, path, name, descriptor string) (ID, error) {
	switch kind {
	case KindClass, KindField, KindMethod:
	default:
		return ID{}, fmt.Errorf("%w: unknown kind %d", ErrInvalidID, kind)
	}
	if name == "" && kind != KindClass {
		return ID{}, fmt.Errorf("%w: a %s needs a name", ErrInvalidID, kind)
	}
	if strings.Contains(path, ".") {
		return ID{}, fmt.Errorf("%w: path %q must use '/' instead of '.'", ErrInvalidID, path)
	}
	if descriptor != "" && kind != KindMethod {
		return ID{}, fmt.Errorf("%w: only methods carry a descriptor", ErrInvalidID)
	}
	return ID{Kind: kind, Path: path, Name: name, Descriptor: descriptor}, nil
}

func MustNew(kind Kind, path, name, descriptor string) ID {
	id, err := New(kind, path, name, descriptor)
	if err != nil {
		panic(err)
	}
	return id
}

func Class(path string) (ID, error) {
	return New(KindClass, path, "", "")
}

func Field(path, name string) (ID, error) {
	return New(KindField, path, name, "")
}

func Method(path, name, descriptor string) (ID, error) {
	return New(KindMethod, path, name, descriptor)
}

func (id ID) IsClass() bool  { return id.Kind == KindClass }
func (id ID) IsField() bool  { return id.Kind == KindField }
func (id ID) IsMethod() bool { return id.Kind == KindMethod }

// Owner returns the class that declares id.
func (id ID) Owner() ID {
	return ID{Kind: KindClass, Path: id.Path}
}

func (id ID) DotPath() string {
	return strings.ReplaceAll(id.Path, "/", ".")
}

// WithName re-targets id at a member of the same class. An empty name
// yields the class itself.
func (id ID) WithName(kind Kind, name string) (ID, error) {
	if name == "" {
		return Class(id.Path)
	}
	descriptor := id.Descriptor
	if kind != KindMethod {
		descriptor = ""
	}
	return New(kind, id.Path, name, descriptor)
}

// WithDescriptor turns a named id into a method (non-empty descriptor) or a
// field (empty descriptor).
func (id ID) WithDescriptor(descriptor string) (ID, error) {
	if id.Name == "" {
		if descriptor != "" {
			return ID{}, fmt.Errorf("%w: cannot add a descriptor to %s without a name", ErrInvalidID, id)
		}
		return id, nil
	}
	if descriptor == "" {
		return Field(id.Path, id.Name)
	}
	return Method(id.Path, id.Name, descriptor)
}

// Key is the lookup string rules use for a member: the name for fields and
// name+descriptor for methods.
func (id ID) Key() string {
	return id.Name + id.Descriptor
}

func (id ID) String() string {
	switch id.Kind {
	case KindClass:
		return id.Path
	case KindField:
		return id.Path + " " + id.Name
	default:
		return id.Path + " " + id.Name + id.Descriptor
	}
}
