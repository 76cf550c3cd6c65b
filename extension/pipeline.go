package extension

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/VoidCRDev/Artisan/ajex"
	"github.com/VoidCRDev/Artisan/symbol"
)

// Pipeline binds the extensions of a Registry to one parsed directive tree.
// Nothing happens until Prepare is called.
type Pipeline struct {
	registry *Registry
	reader   *ajex.Reader
	log      commonlog.Logger
}

type Option func(*Pipeline)

func WithLogger(log commonlog.Logger) Option {
	return func(p *Pipeline) {
		p.log = log
	}
}

func NewPipeline(registry *Registry, reader *ajex.Reader, opts ...Option) (*Pipeline, error) {
	if registry == nil {
		return nil, fmt.Errorf("%w: pipeline needs a registry", ErrContractViolation)
	}
	if reader == nil {
		return nil, fmt.Errorf("%w: pipeline needs a directive reader", ErrContractViolation)
	}
	p := &Pipeline{
		registry: registry,
		reader:   reader,
		log:      commonlog.GetLogger("artisan.pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Failure records one handler error. Literal is set for parse failures.
type Failure struct {
	Extension string
	Container string
	Literal   string
	Err       error
}

func (f Failure) Error() string {
	if f.Literal != "" {
		return fmt.Sprintf("%s/%s: %q: %v", f.Extension, f.Container, f.Literal, f.Err)
	}
	return fmt.Sprintf("%s/%s: %v", f.Extension, f.Container, f.Err)
}

func (f Failure) Unwrap() []error {
	return []error{ErrHandlerFailure, f.Err}
}

type boundHandler struct {
	extension string
	handler   Handler
	present   bool
}

// Prepared is a pipeline whose handlers have consumed their literals. It
// can be applied to any number of classes.
type Prepared struct {
	handlers      []boundHandler
	parseFailures []Failure
	log           commonlog.Logger
}

// Prepare builds fresh handlers for every registered extension and feeds
// each one the literals of its block. Handlers whose block is missing from
// the directives stay bound but are skipped by Apply. A literal a handler
// rejects is logged and recorded; it does not stop preparation.
func (p *Pipeline) Prepare() (*Prepared, error) {
	prepared := &Prepared{log: p.log}
	if p.registry.Len() == 0 {
		p.log.Warning("no extensions registered, nothing will be transformed")
		return prepared, nil
	}

	present := make(map[string]bool)
	for _, name := range p.reader.Containers() {
		present[name] = true
	}

	for _, ext := range p.registry.Extensions() {
		p.log.Info("applying extension", "extension", ext.Name(), "version", ext.Version())
		for _, h := range ext.BuildHandlers() {
			if h == nil {
				return nil, fmt.Errorf("%w: extension %q built a nil handler", ErrContractViolation, ext.Name())
			}
			container := h.ContainerName()
			if container == "" {
				return nil, fmt.Errorf("%w: extension %q has a handler without a block name", ErrContractViolation, ext.Name())
			}

			bound := boundHandler{extension: ext.Name(), handler: h, present: present[container]}
			if !bound.present {
				p.log.Debug("block not present, skipping", "extension", ext.Name(), "block", container)
			}
			for _, lit := range p.reader.Literals(container) {
				if err := parseLiteral(h, lit, p.log); err != nil {
					f := Failure{Extension: ext.Name(), Container: container, Literal: lit.Literal, Err: err}
					p.log.Error("rejected directive", "extension", ext.Name(), "block", container, "literal", lit.Literal, "error", err)
					prepared.parseFailures = append(prepared.parseFailures, f)
				}
			}
			prepared.handlers = append(prepared.handlers, bound)
		}
	}
	return prepared, nil
}

// Handlers returns the prepared handlers in registration order.
func (p *Prepared) Handlers() []Handler {
	handlers := make([]Handler, len(p.handlers))
	for i, b := range p.handlers {
		handlers[i] = b.handler
	}
	return handlers
}

func (p *Prepared) ParseFailures() []Failure {
	return append([]Failure(nil), p.parseFailures...)
}

// Result describes one Apply call. Applied lists the blocks whose handler
// visited the class without failing.
type Result struct {
	Class    symbol.ID
	Applied  []string
	Failures []Failure
}

func (r Result) Modified() bool {
	return len(r.Applied) > 0
}

// Err joins the failures, or returns nil when there were none.
func (r Result) Err() error {
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Apply asks every handler that targets class to visit it. A handler that
// fails, by error or by panic, is logged and recorded, and the remaining
// handlers still run.
func (p *Prepared) Apply(class Class) (Result, error) {
	id, err := symbol.Class(class.Name())
	if err != nil {
		return Result{}, fmt.Errorf("apply to %q: %w", class.Name(), err)
	}

	result := Result{Class: id}
	for _, b := range p.handlers {
		container := b.handler.ContainerName()
		if !b.present || !b.handler.DoesModify(id) {
			continue
		}
		if err := visitClass(b.handler, class, id, p.log); err != nil {
			p.log.Error("unable to apply handler", "extension", b.extension, "block", container, "class", id.DotPath(), "error", err)
			result.Failures = append(result.Failures, Failure{Extension: b.extension, Container: container, Err: err})
			continue
		}
		p.log.Info("applied handler", "class", id.DotPath(), "block", container)
		result.Applied = append(result.Applied, container)
	}
	return result, nil
}

func parseLiteral(h Handler, lit ajex.LiteralResult, log commonlog.Logger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrHandlerFailure, r)
		}
	}()
	return h.Parse(lit, log)
}

func visitClass(h Handler, class Class, id symbol.ID, log commonlog.Logger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrHandlerFailure, r)
		}
	}()
	return h.Visit(class, id, log)
}
