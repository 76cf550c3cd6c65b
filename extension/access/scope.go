package access

import (
	"fmt"
	"strings"

	"github.com/VoidCRDev/Artisan/classfile"
)

var scopes = map[string]classfile.AccessFlags{
	"public":       classfile.AccPublic,
	"private":      classfile.AccPrivate,
	"protected":    classfile.AccProtected,
	"static":       classfile.AccStatic,
	"final":        classfile.AccFinal,
	"synchronized": classfile.AccSynchronized,
	"transitive":   classfile.AccTransitive,
	"transient":    classfile.AccTransient,
}

// ParseScope maps a scope keyword to its flag. Keywords are case
// insensitive.
func ParseScope(scope string) (classfile.AccessFlags, error) {
	flag, ok := scopes[strings.ToLower(scope)]
	if !ok {
		return 0, fmt.Errorf("unknown scope %q", scope)
	}
	return flag, nil
}

// Merge replaces the access level in existing with scope. Bits outside
// public, private and protected are left untouched.
func Merge(existing, scope classfile.AccessFlags) classfile.AccessFlags {
	return existing&^classfile.AccVisibility | scope
}
