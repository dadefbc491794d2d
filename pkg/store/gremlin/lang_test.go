package gremlin

import (
	"testing"

	"github.com/uswitch/typearchive/pkg/types"
)

func TestLang(t *testing.T) {
	out := Graph().V().Has("name", "hercules").Values("name").String()
	if expected := "graph.traversal().V().has('name', 'hercules').values('name')"; out != expected {
		t.Errorf("expected '%s', but got '%s'", expected, out)
	}

	out = Var("g").AddV("entity").Property("version", int64(3)).Property("deprecated", false).String()
	if expected := "g.addV('entity').property('version', 3).property('deprecated', false)"; out != expected {
		t.Errorf("expected '%s', but got '%s'", expected, out)
	}
}

func TestLangDoesNotShareParts(t *testing.T) {
	base := Var("g").V()

	a := base.Has("name", "a")
	b := base.Has("name", "b")

	if expected := "g.V().has('name', 'a')"; a.String() != expected {
		t.Errorf("expected '%s', but got '%s'", expected, a.String())
	}
	if expected := "g.V().has('name', 'b')"; b.String() != expected {
		t.Errorf("expected '%s', but got '%s'", expected, b.String())
	}
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		in       interface{}
		expected string
	}{
		{"plain", "'plain'"},
		{"it's", `'it\'s'`},
		{`back\slash`, `'back\\slash'`},
		{"two\nlines", `'two\nlines'`},
		{"${evil}", `'\${evil}'`},
		{types.GUID("abc"), "'abc'"},
		{types.DeprecatedTypeDef, "'deprecated'"},
		{42, "42"},
		{true, "true"},
		{nil, "null"},
	}

	for _, test := range tests {
		if out := Literal(test.in); out != test.expected {
			t.Errorf("expected %s, but got %s", test.expected, out)
		}
	}
}
