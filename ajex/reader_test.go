package ajex

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDirectives = `@Version: 1.0
@LastUpdated: 2024-01-01
# access rules
~AT
public a/B foo()V
@Inheritable: true
@Reason: tests
private a/B bar
~end
~Other
@Version: 2.0
final a/C baz
~
`

func sampleReader(t *testing.T) *Reader {
	t.Helper()
	reader, err := NewReaderFrom(stringsReader(sampleDirectives))
	require.NoError(t, err)
	return reader
}

func TestNewReaderRequiresRoot(t *testing.T) {
	_, err := NewReader(NewFunctionContent("AT"))
	assert.ErrorIs(t, err, ErrContractViolation)

	_, err = NewReader(nil)
	assert.ErrorIs(t, err, ErrContractViolation)
}

func TestReaderContainers(t *testing.T) {
	reader := sampleReader(t)
	assert.Equal(t, []string{"AT", "Other"}, reader.Containers())
	assert.True(t, reader.HasContainer("AT"))
	assert.False(t, reader.HasContainer("missing"))
}

func TestReaderLiterals(t *testing.T) {
	reader := sampleReader(t)

	want := []LiteralResult{
		{Literal: "public a/B foo()V", Metadata: map[string]string{}},
		{Literal: "private a/B bar", Metadata: map[string]string{"Inheritable": "true", "Reason": "tests"}},
	}
	if diff := cmp.Diff(want, reader.Literals("AT")); diff != "" {
		t.Errorf("Literals(AT) mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, reader.Literals("missing"))

	bar := reader.Literals("AT")[1]
	assert.Equal(t, []string{"Inheritable", "Reason"}, bar.Keys())
	v, ok := bar.Value("Reason")
	assert.True(t, ok)
	assert.Equal(t, "tests", v)
}

func TestReaderLiteralsDuplicateKeyLastWins(t *testing.T) {
	reader, err := NewReaderFrom(stringsReader("~A\n@k: one\n@k: two\nx\n~\n"))
	require.NoError(t, err)

	literals := reader.Literals("A")
	require.Len(t, literals, 1)
	// Pending metadata is attached in reverse, so the first declaration is
	// the last child and wins.
	assert.Equal(t, "one", literals[0].Metadata["k"])
}

func TestReaderMetadataValue(t *testing.T) {
	reader := sampleReader(t)

	tests := []struct {
		key       string
		deep      bool
		wantValue string
		wantOK    bool
	}{
		{"Version", false, "1.0", true},
		{"Version", true, "1.0", true},
		{"LastUpdated", false, "2024-01-01", true},
		{"Inheritable", false, "", false},
		{"Inheritable", true, "true", true},
		{"Missing", false, "", false},
		{"Missing", true, "", false},
	}

	for _, tt := range tests {
		value, ok := reader.MetadataValue(tt.key, tt.deep)
		if value != tt.wantValue || ok != tt.wantOK {
			t.Errorf("MetadataValue(%q, %v) = %q, %v, want %q, %v", tt.key, tt.deep, value, ok, tt.wantValue, tt.wantOK)
		}
	}
}

func TestReaderDeepLookupIsPreOrder(t *testing.T) {
	reader, err := NewReaderFrom(stringsReader("~A\n@k: first\nx\n~\n~B\ny\n~\n"))
	require.NoError(t, err)
	// Pending metadata attaches to the next entry, so k belongs to x.
	v, ok := reader.MetadataValue("k", true)
	require.True(t, ok)
	assert.Equal(t, "first", v)

	reader, err = NewReaderFrom(stringsReader("~A\n@k: first\nx\n@k: second\ny\n~\n"))
	require.NoError(t, err)
	v, ok = reader.MetadataValue("k", true)
	require.True(t, ok)
	assert.Equal(t, "first", v)
}

func metadataSet(pairs ...MetadataResult) map[MetadataResult]struct{} {
	set := make(map[MetadataResult]struct{}, len(pairs))
	for _, p := range pairs {
		set[p] = struct{}{}
	}
	return set
}

func TestReaderAllMetadataValues(t *testing.T) {
	reader := sampleReader(t)

	shallow := reader.AllMetadataValues(false)
	assert.Equal(t, metadataSet(
		MetadataResult{Key: "Version", Value: "1.0"},
		MetadataResult{Key: "LastUpdated", Value: "2024-01-01"},
	), shallow)

	deep := reader.AllMetadataValues(true)
	assert.Equal(t, metadataSet(
		MetadataResult{Key: "Version", Value: "1.0"},
		MetadataResult{Key: "Version", Value: "2.0"},
		MetadataResult{Key: "LastUpdated", Value: "2024-01-01"},
		MetadataResult{Key: "Inheritable", Value: "true"},
		MetadataResult{Key: "Reason", Value: "tests"},
	), deep)
}

func TestReaderMetadataRoundTrip(t *testing.T) {
	reader, err := NewReaderFrom(stringsReader("~A\nx\n@a: 1\n@b: 2\ny\nz\n~\n"))
	require.NoError(t, err)

	literals := reader.Literals("A")
	require.Len(t, literals, 3)
	assert.Empty(t, literals[0].Metadata)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, literals[1].Metadata)
	assert.Empty(t, literals[2].Metadata)
}
