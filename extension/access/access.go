// Package access implements the built-in access transformation extension.
//
// Its block is named "AT" and every directive has three fields:
//
//	<scope> <class path> <member>
//
// where scope is one of public, private, protected, static, final,
// synchronized, transitive or transient, and member is a field name or a
// method name followed by its descriptor:
//
//	~AT
//	public net/example/Widget secret
//	protected net/example/Widget render(Ljava/lang/String;)V
//	~
package access

import (
	"fmt"
	"maps"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/VoidCRDev/Artisan/ajex"
	"github.com/VoidCRDev/Artisan/classfile"
	"github.com/VoidCRDev/Artisan/extension"
	"github.com/VoidCRDev/Artisan/symbol"
)

const (
	ContainerName    = "AT"
	ExtensionName    = "Artisan Access Transformation Extensions"
	ExtensionVersion = "1.0.0"
)

// Rule sets the access of one member.
type Rule struct {
	Scope  classfile.AccessFlags
	Target symbol.ID
}

type Handler struct {
	// rules maps a class to its rules keyed by symbol.ID.Key.
	rules             map[symbol.ID]map[string]Rule
	inheritSuperclass bool
}

type Option func(*Handler)

// InheritSuperclassRules makes Visit merge the rules declared on a class's
// direct superclass. Without it the superclass lookup only re-reads the
// class's own rules, so superclass rules never apply.
func InheritSuperclassRules() Option {
	return func(h *Handler) {
		h.inheritSuperclass = true
	}
}

func NewHandler(opts ...Option) *Handler {
	h := &Handler{rules: make(map[symbol.ID]map[string]Rule)}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) ContainerName() string {
	return ContainerName
}

func (h *Handler) Parse(lit ajex.LiteralResult, log commonlog.Logger) error {
	rule, err := ParseRule(lit.Literal)
	if err != nil {
		return err
	}

	owner := rule.Target.Owner()
	classRules, ok := h.rules[owner]
	if !ok {
		classRules = make(map[string]Rule)
		h.rules[owner] = classRules
	}
	key := rule.Target.Key()
	if previous, ok := classRules[key]; ok {
		log.Debug("replacing access rule", "target", rule.Target.String(), "previous", previous.Scope.Format(classfile.KindMethod))
	}
	classRules[key] = rule
	log.Info("found access rule", "target", rule.Target.String())
	return nil
}

// ParseRule parses one "scope class member" directive.
func ParseRule(literal string) (Rule, error) {
	fields := strings.Fields(literal)
	if len(fields) != 3 {
		return Rule{}, fmt.Errorf("parse access rule %q: want 3 fields, got %d", literal, len(fields))
	}

	scope, err := ParseScope(fields[0])
	if err != nil {
		return Rule{}, fmt.Errorf("parse access rule %q: %w", literal, err)
	}

	var target symbol.ID
	if name, params, isMethod := strings.Cut(fields[2], "("); isMethod {
		descriptor := "(" + params
		if classfile.ParseMethodDescriptor(descriptor) == nil {
			return Rule{}, fmt.Errorf("parse access rule %q: invalid method descriptor %q", literal, descriptor)
		}
		target, err = symbol.Method(fields[1], name, descriptor)
	} else {
		target, err = symbol.Field(fields[1], name)
	}
	if err != nil {
		return Rule{}, fmt.Errorf("parse access rule %q: %w", literal, err)
	}
	return Rule{Scope: scope, Target: target}, nil
}

func (h *Handler) DoesModify(class symbol.ID) bool {
	_, ok := h.rules[class]
	return ok
}

// Rules returns the rules declared directly on class, keyed by member key.
func (h *Handler) Rules(class symbol.ID) map[string]Rule {
	return maps.Clone(h.rules[class])
}

func (h *Handler) Visit(class extension.Class, id symbol.ID, log commonlog.Logger) error {
	rules := h.resolve(class, id)
	if len(rules) == 0 {
		log.Info("no access rules", "class", id.Path)
		return nil
	}

	for _, m := range class.Methods() {
		if rule, ok := rules[m.Name()+m.Descriptor()]; ok {
			m.SetFlags(Merge(m.Flags(), rule.Scope))
			log.Info("applied access rule", "target", rule.Target.String())
		}
	}
	for _, f := range class.Fields() {
		if rule, ok := rules[f.Name()]; ok {
			f.SetFlags(Merge(f.Flags(), rule.Scope))
			log.Info("applied access rule", "target", rule.Target.String())
		}
	}
	return nil
}

// resolve combines the rules of the class, its direct superclass and its
// direct interfaces, in that order, later rules replacing earlier ones.
func (h *Handler) resolve(class extension.Class, id symbol.ID) map[string]Rule {
	combined := make(map[string]Rule)
	maps.Copy(combined, h.rules[id])

	if super := class.SuperName(); super != "" {
		superID := symbol.ID{Kind: symbol.KindClass, Path: super}
		if superRules, ok := h.rules[superID]; ok {
			if h.inheritSuperclass {
				maps.Copy(combined, superRules)
			} else {
				// The superclass is only used as a presence check; the
				// rules merged are the class's own.
				maps.Copy(combined, h.rules[id])
			}
		}
	}

	for _, iface := range class.InterfaceNames() {
		ifaceID := symbol.ID{Kind: symbol.KindClass, Path: iface}
		maps.Copy(combined, h.rules[ifaceID])
	}
	return combined
}

type accessExtension struct {
	opts []Option
}

// Extension returns the access transformation extension. Every handler it
// builds is configured with opts.
func Extension(opts ...Option) extension.Extension {
	return &accessExtension{opts: opts}
}

func (e *accessExtension) Name() string    { return ExtensionName }
func (e *accessExtension) Version() string { return ExtensionVersion }

func (e *accessExtension) BuildHandlers() []extension.Handler {
	return []extension.Handler{NewHandler(e.opts...)}
}

// Registry returns a fresh registry holding the built-in extensions.
func Registry(opts ...Option) *extension.Registry {
	reg, err := extension.NewRegistry(Extension(opts...))
	if err != nil {
		// A registry with a single extension cannot hold a duplicate.
		panic(err)
	}
	return reg
}
