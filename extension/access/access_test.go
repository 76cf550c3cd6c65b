package access

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/commonlog"

	"github.com/VoidCRDev/Artisan/ajex"
	"github.com/VoidCRDev/Artisan/classfile"
	"github.com/VoidCRDev/Artisan/extension"
	"github.com/VoidCRDev/Artisan/internal/logtest"
	"github.com/VoidCRDev/Artisan/symbol"
)

func parseAll(t *testing.T, h *Handler, literals ...string) {
	t.Helper()
	for _, lit := range literals {
		require.NoError(t, h.Parse(ajex.LiteralResult{Literal: lit}, &logtest.Recorder{}), lit)
	}
}

func classID(t *testing.T, path string) symbol.ID {
	t.Helper()
	id, err := symbol.Class(path)
	require.NoError(t, err)
	return id
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		in   string
		want classfile.AccessFlags
	}{
		{"public", classfile.AccPublic},
		{"PRIVATE", classfile.AccPrivate},
		{"Protected", classfile.AccProtected},
		{"static", classfile.AccStatic},
		{"final", classfile.AccFinal},
		{"synchronized", classfile.AccSynchronized},
		{"transitive", classfile.AccTransitive},
		{"transient", classfile.AccTransient},
	}
	for _, tt := range tests {
		got, err := ParseScope(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseScope("package")
	assert.ErrorContains(t, err, "unknown scope")
}

func TestMerge(t *testing.T) {
	tests := []struct {
		existing, scope, want classfile.AccessFlags
	}{
		{classfile.AccPrivate | classfile.AccStatic | classfile.AccFinal, classfile.AccPublic, classfile.AccPublic | classfile.AccStatic | classfile.AccFinal},
		{classfile.AccPublic | classfile.AccProtected, classfile.AccPrivate, classfile.AccPrivate},
		{classfile.AccProtected, classfile.AccStatic, classfile.AccStatic},
		{0, classfile.AccProtected, classfile.AccProtected},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Merge(tt.existing, tt.scope), "Merge(%#x, %#x)", tt.existing, tt.scope)
	}
}

func TestParseRule(t *testing.T) {
	rule, err := ParseRule("public a/B foo(ILjava/lang/String;)V")
	require.NoError(t, err)
	assert.Equal(t, classfile.AccPublic, rule.Scope)
	assert.Equal(t, symbol.MustNew(symbol.KindMethod, "a/B", "foo", "(ILjava/lang/String;)V"), rule.Target)

	rule, err = ParseRule("  protected   a/B   count ")
	require.NoError(t, err)
	assert.Equal(t, symbol.MustNew(symbol.KindField, "a/B", "count", ""), rule.Target)

	for _, bad := range []string{
		"public a/B",
		"public a/B foo()V extra",
		"visible a/B foo",
		"public a.B foo",
		"public a/B foo(",
		"public a/B (I)V",
	} {
		_, err := ParseRule(bad)
		assert.Error(t, err, bad)
	}
}

func TestVisitMakesPrivateMembersPublic(t *testing.T) {
	h := NewHandler()
	parseAll(t, h, "public a/B foo()V", "public a/B secret")

	class := extension.NewMemoryClass("a/B", "java/lang/Object")
	method := class.AddMethod("foo", "()V", classfile.AccPrivate|classfile.AccStatic)
	overload := class.AddMethod("foo", "(I)V", classfile.AccPrivate)
	field := class.AddField("secret", "I", classfile.AccPrivate|classfile.AccFinal)

	id := classID(t, "a/B")
	require.True(t, h.DoesModify(id))
	require.NoError(t, h.Visit(class, id, &logtest.Recorder{}))

	assert.Equal(t, classfile.AccPublic|classfile.AccStatic, method.Flags())
	assert.Equal(t, classfile.AccPrivate, overload.Flags())
	assert.Equal(t, classfile.AccPublic|classfile.AccFinal, field.Flags())
}

func TestLaterRuleWins(t *testing.T) {
	h := NewHandler()
	log := &logtest.Recorder{}
	for _, lit := range []string{"public a/B foo()V", "private a/B foo()V"} {
		require.NoError(t, h.Parse(ajex.LiteralResult{Literal: lit}, log))
	}
	assert.True(t, log.Contains(commonlog.Debug, "replacing access rule"))

	rules := h.Rules(classID(t, "a/B"))
	require.Len(t, rules, 1)
	assert.Equal(t, classfile.AccPrivate, rules["foo()V"].Scope)

	class := extension.NewMemoryClass("a/B", "java/lang/Object")
	method := class.AddMethod("foo", "()V", classfile.AccProtected)
	require.NoError(t, h.Visit(class, classID(t, "a/B"), log))
	assert.Equal(t, classfile.AccPrivate, method.Flags())
}

func TestParseRejectsMalformedRules(t *testing.T) {
	h := NewHandler()
	err := h.Parse(ajex.LiteralResult{Literal: "exposed a/B foo"}, &logtest.Recorder{})
	assert.ErrorContains(t, err, "unknown scope")

	err = h.Parse(ajex.LiteralResult{Literal: "public a/B"}, &logtest.Recorder{})
	assert.ErrorContains(t, err, "want 3 fields")

	assert.False(t, h.DoesModify(classID(t, "a/B")))
}

func TestDoesModifyOnlyTargetedClasses(t *testing.T) {
	h := NewHandler()
	parseAll(t, h, "public a/B foo")
	assert.True(t, h.DoesModify(classID(t, "a/B")))
	assert.False(t, h.DoesModify(classID(t, "a/C")))
}

func TestInterfaceRulesApply(t *testing.T) {
	h := NewHandler()
	parseAll(t, h, "public a/Impl own", "public a/Shape area()D", "protected a/Named name")

	class := extension.NewMemoryClass("a/Impl", "java/lang/Object", "a/Shape", "a/Named")
	own := class.AddField("own", "I", classfile.AccPrivate)
	area := class.AddMethod("area", "()D", classfile.AccPrivate)
	name := class.AddField("name", "Ljava/lang/String;", classfile.AccPrivate)

	require.NoError(t, h.Visit(class, classID(t, "a/Impl"), &logtest.Recorder{}))
	assert.Equal(t, classfile.AccPublic, own.Flags())
	assert.Equal(t, classfile.AccPublic, area.Flags())
	assert.Equal(t, classfile.AccProtected, name.Flags())
}

func TestInterfaceRulesOverrideOwnRules(t *testing.T) {
	h := NewHandler()
	parseAll(t, h, "private a/Impl run()V", "public a/Task run()V")

	class := extension.NewMemoryClass("a/Impl", "java/lang/Object", "a/Task")
	run := class.AddMethod("run", "()V", classfile.AccProtected)

	require.NoError(t, h.Visit(class, classID(t, "a/Impl"), &logtest.Recorder{}))
	assert.Equal(t, classfile.AccPublic, run.Flags())
}

func TestSuperclassRulesAreNotInherited(t *testing.T) {
	h := NewHandler()
	parseAll(t, h, "public a/Child own", "public a/Base inherited")

	class := extension.NewMemoryClass("a/Child", "a/Base")
	own := class.AddField("own", "I", classfile.AccPrivate)
	inherited := class.AddField("inherited", "I", classfile.AccPrivate)

	require.NoError(t, h.Visit(class, classID(t, "a/Child"), &logtest.Recorder{}))
	assert.Equal(t, classfile.AccPublic, own.Flags())
	assert.Equal(t, classfile.AccPrivate, inherited.Flags())
}

func TestInheritSuperclassRules(t *testing.T) {
	h := NewHandler(InheritSuperclassRules())
	parseAll(t, h, "public a/Child own", "protected a/Base inherited")

	class := extension.NewMemoryClass("a/Child", "a/Base")
	own := class.AddField("own", "I", classfile.AccPrivate)
	inherited := class.AddField("inherited", "I", classfile.AccPrivate)

	require.NoError(t, h.Visit(class, classID(t, "a/Child"), &logtest.Recorder{}))
	assert.Equal(t, classfile.AccPublic, own.Flags())
	assert.Equal(t, classfile.AccProtected, inherited.Flags())
}

func TestVisitSkipsUnresolvedMembers(t *testing.T) {
	h := NewHandler()
	parseAll(t, h, "public a/B missing()V", "public a/B ghost")

	class := extension.NewMemoryClass("a/B", "java/lang/Object")
	other := class.AddMethod("present", "()V", classfile.AccPrivate)

	require.NoError(t, h.Visit(class, classID(t, "a/B"), &logtest.Recorder{}))
	assert.Equal(t, classfile.AccPrivate, other.Flags())
}

func TestVisitWithoutRulesLogs(t *testing.T) {
	h := NewHandler()
	log := &logtest.Recorder{}
	class := extension.NewMemoryClass("a/B", "java/lang/Object")
	require.NoError(t, h.Visit(class, classID(t, "a/B"), log))
	assert.True(t, log.Contains(commonlog.Info, "no access rules"))
}

func TestExtensionThroughPipeline(t *testing.T) {
	directives := strings.Join([]string{
		"@Version: 1.0",
		"~AT",
		"public a/B foo()V",
		"bogus a/B bar",
		"~",
		"",
	}, "\n")
	reader, err := ajex.NewReaderFrom(strings.NewReader(directives))
	require.NoError(t, err)

	reg := Registry()
	ext, ok := reg.Lookup(ExtensionName)
	require.True(t, ok)
	assert.Equal(t, ExtensionVersion, ext.Version())

	pipeline, err := extension.NewPipeline(reg, reader, extension.WithLogger(&logtest.Recorder{}))
	require.NoError(t, err)
	prepared, err := pipeline.Prepare()
	require.NoError(t, err)

	failures := prepared.ParseFailures()
	require.Len(t, failures, 1)
	assert.Equal(t, "bogus a/B bar", failures[0].Literal)

	class := extension.NewMemoryClass("a/B", "java/lang/Object")
	foo := class.AddMethod("foo", "()V", classfile.AccPrivate)

	result, err := prepared.Apply(class)
	require.NoError(t, err)
	assert.Equal(t, []string{ContainerName}, result.Applied)
	assert.Equal(t, classfile.AccPublic, foo.Flags())
}
