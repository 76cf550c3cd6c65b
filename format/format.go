// Package format renders class files and directive trees as text.
package format

import (
	"encoding"

	"github.com/VoidCRDev/Artisan/classfile"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(class *classfile.ClassFile) error
}
