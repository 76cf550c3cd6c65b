// Package extension turns parsed directive blocks into modifier-flag
// rewrites.
//
// An Extension bundles handler factories. Each Handler consumes the
// literals of one named block, records rules, and later applies them to
// the fields and methods of a Class. A Pipeline binds a Registry of
// extensions to one parsed directive tree.
package extension

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/VoidCRDev/Artisan/ajex"
	"github.com/VoidCRDev/Artisan/symbol"
)

var (
	// ErrContractViolation reports misuse of the extension API, such as
	// registering two extensions under one name.
	ErrContractViolation = errors.New("contract violation")

	// ErrHandlerFailure wraps every error a handler raises while parsing a
	// literal or visiting a class.
	ErrHandlerFailure = errors.New("handler failure")
)

// Handler owns the rules of one block. Handlers are stateful and built
// fresh for every pipeline.
type Handler interface {
	// ContainerName names the block whose literals the handler consumes.
	ContainerName() string

	// Parse records the rules of one literal. An error rejects that literal
	// only.
	Parse(literal ajex.LiteralResult, log commonlog.Logger) error

	// DoesModify reports whether any rule targets the class id.
	DoesModify(class symbol.ID) bool

	// Visit applies the matching rules to class. Rules naming members the
	// class does not have are skipped.
	Visit(class Class, id symbol.ID, log commonlog.Logger) error
}

type HandlerFactory func() Handler

type Extension interface {
	Name() string
	Version() string
	BuildHandlers() []Handler
}

type simpleExtension struct {
	name      string
	version   string
	factories []HandlerFactory
}

// New creates an extension whose handlers are produced by factories.
func New(name, version string, factories ...HandlerFactory) (Extension, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: extension name is empty", ErrContractViolation)
	}
	if version == "" {
		return nil, fmt.Errorf("%w: extension %q has no version", ErrContractViolation, name)
	}
	if len(factories) == 0 {
		return nil, fmt.Errorf("%w: extension %q needs at least one handler", ErrContractViolation, name)
	}
	for i, f := range factories {
		if f == nil {
			return nil, fmt.Errorf("%w: extension %q: handler factory %d is nil", ErrContractViolation, name, i)
		}
	}
	return &simpleExtension{
		name:      name,
		version:   version,
		factories: append([]HandlerFactory(nil), factories...),
	}, nil
}

func (e *simpleExtension) Name() string    { return e.name }
func (e *simpleExtension) Version() string { return e.version }

func (e *simpleExtension) BuildHandlers() []Handler {
	handlers := make([]Handler, len(e.factories))
	for i, f := range e.factories {
		handlers[i] = f()
	}
	return handlers
}
