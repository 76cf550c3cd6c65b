// Package editor applies directive extensions to class files.
package editor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tliron/commonlog"

	"github.com/VoidCRDev/Artisan/ajex"
	"github.com/VoidCRDev/Artisan/classfile"
	"github.com/VoidCRDev/Artisan/extension"
)

// Editor rewrites classes according to one set of directives. The
// directives are handed to the extensions on the first Run and reused for
// every class after that.
type Editor struct {
	registry *extension.Registry
	pipeline *extension.Pipeline
	prepared *extension.Prepared
	log      commonlog.Logger
}

type Option func(*Editor)

func WithLogger(log commonlog.Logger) Option {
	return func(e *Editor) {
		e.log = log
	}
}

func New(registry *extension.Registry, reader *ajex.Reader, opts ...Option) (*Editor, error) {
	e := &Editor{
		registry: registry,
		log:      commonlog.GetLogger("artisan.editor"),
	}
	for _, opt := range opts {
		opt(e)
	}

	pipeline, err := extension.NewPipeline(registry, reader, extension.WithLogger(e.log))
	if err != nil {
		return nil, err
	}
	e.pipeline = pipeline
	return e, nil
}

// Prepared returns the prepared pipeline, preparing it on first use.
func (e *Editor) Prepared() (*extension.Prepared, error) {
	if e.prepared == nil {
		prepared, err := e.pipeline.Prepare()
		if err != nil {
			return nil, err
		}
		e.prepared = prepared
	}
	return e.prepared, nil
}

// Run applies the extensions to an encoded class. The input is returned
// as is when no handler changed the class.
func (e *Editor) Run(class []byte) ([]byte, extension.Result, error) {
	if e.registry.Len() == 0 {
		e.log.Warning("no extensions registered, class left unchanged")
		return class, extension.Result{}, nil
	}

	cf, err := classfile.Parse(bytes.NewReader(class))
	if err != nil {
		return nil, extension.Result{}, err
	}
	result, err := e.Apply(cf)
	if err != nil {
		return nil, result, err
	}
	if !result.Modified() {
		return class, result, nil
	}

	out, err := cf.Bytes()
	if err != nil {
		return nil, result, fmt.Errorf("encode %s: %w", cf.ClassName(), err)
	}
	return out, result, nil
}

// Apply runs the extensions against a class file in place.
func (e *Editor) Apply(cf *classfile.ClassFile) (extension.Result, error) {
	prepared, err := e.Prepared()
	if err != nil {
		return extension.Result{}, err
	}
	return prepared.Apply(Symbols(cf))
}

func (e *Editor) RunFile(path string) ([]byte, extension.Result, error) {
	class, err := os.ReadFile(path)
	if err != nil {
		return nil, extension.Result{}, fmt.Errorf("read class file: %w", err)
	}
	out, result, err := e.Run(class)
	if err != nil {
		return nil, result, fmt.Errorf("edit %s: %w", path, err)
	}
	return out, result, nil
}

// OutputPath returns where a class with the given internal name is stored
// below dir.
func OutputPath(dir, className string) string {
	return filepath.Join(dir, filepath.FromSlash(className)+".class")
}

// WriteFile writes data to path, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write class file: %w", err)
	}
	return nil
}
