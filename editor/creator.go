package editor

import (
	"fmt"

	"github.com/VoidCRDev/Artisan/classfile"
	"github.com/VoidCRDev/Artisan/extension"
)

// Creator synthesizes a new class and passes it through an Editor before
// it is encoded.
type Creator struct {
	editor  *Editor
	builder *classfile.Builder
}

func NewCreator(editor *Editor, builder *classfile.Builder) *Creator {
	return &Creator{editor: editor, builder: builder}
}

func (c *Creator) Generate() ([]byte, extension.Result, error) {
	cf, err := c.builder.Build()
	if err != nil {
		return nil, extension.Result{}, err
	}

	var result extension.Result
	if c.editor.registry.Len() == 0 {
		c.editor.log.Warning("no extensions registered, class left unchanged")
	} else if result, err = c.editor.Apply(cf); err != nil {
		return nil, result, err
	}

	out, err := cf.Bytes()
	if err != nil {
		return nil, result, fmt.Errorf("encode %s: %w", cf.ClassName(), err)
	}
	return out, result, nil
}

// GenerateAndWrite generates the class and writes it to path.
func (c *Creator) GenerateAndWrite(path string) (extension.Result, error) {
	out, result, err := c.Generate()
	if err != nil {
		return result, err
	}
	return result, WriteFile(path, out)
}
