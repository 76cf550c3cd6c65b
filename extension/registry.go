package extension

import "fmt"

// Registry is an ordered set of extensions keyed by name.
type Registry struct {
	extensions []Extension
	byName     map[string]Extension
}

func NewRegistry(extensions ...Extension) (*Registry, error) {
	r := &Registry{byName: make(map[string]Extension)}
	for _, ext := range extensions {
		if err := r.Register(ext); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) Register(ext Extension) error {
	if ext == nil {
		return fmt.Errorf("%w: nil extension", ErrContractViolation)
	}
	if _, ok := r.byName[ext.Name()]; ok {
		return fmt.Errorf("%w: extension %q is already registered", ErrContractViolation, ext.Name())
	}
	r.byName[ext.Name()] = ext
	r.extensions = append(r.extensions, ext)
	return nil
}

func (r *Registry) Lookup(name string) (Extension, bool) {
	ext, ok := r.byName[name]
	return ext, ok
}

// Extensions returns the registered extensions in registration order.
func (r *Registry) Extensions() []Extension {
	return append([]Extension(nil), r.extensions...)
}

func (r *Registry) Len() int {
	return len(r.extensions)
}
