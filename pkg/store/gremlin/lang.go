package gremlin

import (
	"fmt"
	"strings"
)

type Statements []Statement

func (ss Statements) String() string {
	lines := make([]string, len(ss))

	for idx, s := range ss {
		lines[idx] = s.String()
	}

	return strings.Join(lines, "\n")
}

type Statement struct {
	parts []string
}

var escaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`, `$`, `\$`)

// Literal renders v as a Gremlin literal. Strings are single quoted and escaped.
func Literal(v interface{}) string {
	switch val := v.(type) {
	case string:
		return "'" + escaper.Replace(val) + "'"
	case fmt.Stringer:
		return "'" + escaper.Replace(val.String()) + "'"
	case int, int32, int64, uint, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32, float64:
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	case nil:
		return "null"
	default:
		return "'" + escaper.Replace(fmt.Sprint(val)) + "'"
	}
}

func (s Statement) String() string {
	return strings.Join(s.parts, ".")
}

func (s Statement) with(part string) Statement {
	parts := make([]string, len(s.parts), len(s.parts)+1)
	copy(parts, s.parts)

	return Statement{
		parts: append(parts, part),
	}
}

func (s Statement) call(name string, args ...interface{}) Statement {
	strs := make([]string, len(args))
	for idx, arg := range args {
		strs[idx] = Literal(arg)
	}

	return s.with(fmt.Sprintf("%s(%s)", name, strings.Join(strs, ", ")))
}

func Graph() Statement {
	return Statement{
		parts: []string{"graph.traversal()"},
	}
}

func Var(k string) Statement {
	return Statement{
		parts: []string{k},
	}
}

func (s Statement) V() Statement { return s.with("V()") }
func (s Statement) E() Statement { return s.with("E()") }
func (s Statement) Drop() Statement { return s.with("drop()") }
func (s Statement) Iterate() Statement { return s.with("iterate()") }
func (s Statement) Next() Statement { return s.with("next()") }
func (s Statement) Count() Statement { return s.with("count()") }
func (s Statement) Has(k string, v interface{}) Statement {
	return s.call("has", k, v)
}
func (s Statement) HasLabel(label string) Statement { return s.call("hasLabel", label) }
func (s Statement) Property(k string, v interface{}) Statement {
	return s.call("property", k, v)
}
func (s Statement) Values(k string) Statement { return s.call("values", k) }
func (s Statement) AddV(label string) Statement { return s.call("addV", label) }
func (s Statement) AddE(label string) Statement { return s.call("addE", label) }
func (s Statement) As(label string) Statement { return s.call("as", label) }
func (s Statement) From(label string) Statement { return s.call("from", label) }
