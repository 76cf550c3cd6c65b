package format

import (
	"bytes"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/VoidCRDev/Artisan/classfile"
)

// Diff returns a unified diff of the line encodings of two versions of a
// class, or "" when they encode the same.
func Diff(before, after *classfile.ClassFile, name string) (string, error) {
	a, err := lines(before)
	if err != nil {
		return "", err
	}
	b, err := lines(after)
	if err != nil {
		return "", err
	}
	if a == b {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  1,
	})
}

func lines(class *classfile.ClassFile) (string, error) {
	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).Encode(class); err != nil {
		return "", err
	}
	return buf.String(), nil
}
