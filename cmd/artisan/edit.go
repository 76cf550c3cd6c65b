package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/VoidCRDev/Artisan/ajex"
	"github.com/VoidCRDev/Artisan/classfile"
	"github.com/VoidCRDev/Artisan/editor"
	"github.com/VoidCRDev/Artisan/extension/access"
	"github.com/VoidCRDev/Artisan/format"
)

func newEditor(directives string, inheritSuperclass bool) (*editor.Editor, error) {
	root, err := ajex.ParseFile(directives)
	if err != nil {
		return nil, err
	}
	reader, err := ajex.NewReader(root)
	if err != nil {
		return nil, err
	}

	var opts []access.Option
	if inheritSuperclass {
		opts = append(opts, access.InheritSuperclassRules())
	}
	return editor.New(access.Registry(opts...), reader)
}

// editFile runs e over one class file. The result is written below outDir
// when it is set, and over the input otherwise. With diff set, a unified
// diff of the member flags is written to w.
func editFile(e *editor.Editor, path, outDir string, diff bool, w io.Writer) error {
	in, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read class file: %w", err)
	}

	out, result, err := e.Run(in)
	if err != nil {
		return fmt.Errorf("edit %s: %w", path, err)
	}
	if err := result.Err(); err != nil {
		fmt.Fprintf(w, "%s: %v\n", path, err)
	}

	after, err := classfile.Parse(bytes.NewReader(out))
	if err != nil {
		return fmt.Errorf("parse edited %s: %w", path, err)
	}

	if diff && result.Modified() {
		before, err := classfile.Parse(bytes.NewReader(in))
		if err != nil {
			return fmt.Errorf("parse class file: %w", err)
		}
		text, err := format.Diff(before, after, after.ClassName()+".class")
		if err != nil {
			return fmt.Errorf("diff %s: %w", path, err)
		}
		fmt.Fprint(w, text)
	}

	target := path
	if outDir != "" {
		target = editor.OutputPath(outDir, after.ClassName())
	} else if !result.Modified() {
		return nil
	}
	return editor.WriteFile(target, out)
}
