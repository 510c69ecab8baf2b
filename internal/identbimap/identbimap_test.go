package identbimap

import (
	"testing"

	"github.com/wenyan-lang/wyc/internal/ast"
)

func tableFor(chars ...rune) map[string]string {
	table := make(map[string]string)
	names := []string{"jia", "yi", "bing", "ding"}
	for i, ch := range chars {
		table[runeHex(ch)] = names[i%len(names)]
	}
	return table
}

func runeHex(ch rune) string {
	return (func() string {
		// mirrors toPinyin's own formatting so the test table matches keys
		// the registry will actually look up.
		buf := []byte{}
		n := uint32(ch)
		if n == 0 {
			return "0"
		}
		for n > 0 {
			d := n % 16
			var c byte
			if d < 10 {
				c = byte('0' + d)
			} else {
				c = byte('A' + d - 10)
			}
			buf = append([]byte{c}, buf...)
			n /= 16
		}
		return string(buf)
	})()
}

func TestTranslateIsBijective(t *testing.T) {
	table := tableFor('甲', '乙')
	r := New(table)
	a := r.Translate("甲")
	b := r.Translate("乙")
	if a == b {
		t.Fatalf("distinct source idents collided without suffixing: %q", a)
	}
	if r.Translate("甲") != a {
		t.Fatalf("translate not stable across calls")
	}
}

func TestCollisionAppendsUnderscore(t *testing.T) {
	table := map[string]string{
		runeHex('甲'): "x",
		runeHex('乙'): "x",
	}
	r := New(table)
	a := r.Translate("甲")
	b := r.Translate("乙")
	if a == b {
		t.Fatalf("collision not resolved: both translate to %q", a)
	}
	if a != "x" || b != "x_" {
		t.Fatalf("got %q, %q; want x, x_", a, b)
	}
}

func TestMissingCodepointBecomesUnderscore(t *testing.T) {
	r := New(map[string]string{})
	got := r.Translate("甲")
	if got != "_" {
		t.Fatalf("got %q, want _", got)
	}
}

func TestMutabilityFromAssignLvalue(t *testing.T) {
	prog := &ast.Program{Statements: []ast.Statement{
		{StmtKind: ast.StmtInitDefine, InitDefine: &ast.InitDefineStmt{
			Type: ast.TypeNumber, Data: ast.Data{Kind: ast.DataInt, Int: 5}, Name: "甲",
		}},
		{StmtKind: ast.StmtAssign, Assign: &ast.AssignStmt{
			Lvalue: ast.Lvalue{Kind: ast.LvalueSimple, Ident: "甲"},
			Rvalue: ast.Rvalue{Kind: ast.RvalueSimple, Data: ast.DataOrPronoun{Data: ast.Data{Kind: ast.DataInt, Int: 6}}},
		}},
	}}
	r := Build(prog, tableFor('甲'))
	if !r.IsMutable("甲") {
		t.Fatalf("expected 甲 to be mutable")
	}
}

func TestSimpleInitializationIsNotMutable(t *testing.T) {
	prog := &ast.Program{Statements: []ast.Statement{
		{StmtKind: ast.StmtInitDefine, InitDefine: &ast.InitDefineStmt{
			Type: ast.TypeNumber, Data: ast.Data{Kind: ast.DataInt, Int: 5}, Name: "甲",
		}},
	}}
	r := Build(prog, tableFor('甲'))
	if r.IsMutable("甲") {
		t.Fatalf("expected 甲 to remain immutable after a plain InitDefine")
	}
}

func TestArrayFillMarksConcreteTargetMutableButNotPronoun(t *testing.T) {
	prog := &ast.Program{Statements: []ast.Statement{
		{StmtKind: ast.StmtArrayFill, ArrayFill: &ast.ArrayFillStmt{
			Target: ast.IdentOrPronoun{Ident: "甲"},
			Elems:  []ast.Data{{Kind: ast.DataInt, Int: 1}},
		}},
		{StmtKind: ast.StmtArrayFill, ArrayFill: &ast.ArrayFillStmt{
			Target: ast.IdentOrPronoun{IsPronoun: true},
			Elems:  []ast.Data{{Kind: ast.DataInt, Int: 2}},
		}},
	}}
	r := Build(prog, tableFor('甲'))
	if !r.IsMutable("甲") {
		t.Fatalf("expected ArrayFill target to be mutable")
	}
	if r.IsMutable("") {
		t.Fatalf("expected a 其 ArrayFill target to mark nothing mutable")
	}
}
