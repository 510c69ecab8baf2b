package parser

import (
	"testing"

	"github.com/wenyan-lang/wyc/internal/ast"
	"github.com/wenyan-lang/wyc/internal/lexer"
	"github.com/wenyan-lang/wyc/pkg/token"
)

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	toks, err := lexer.All(source)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	prog, err := New(toks).ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return prog
}

func TestParseDeclareWithOneInitializer(t *testing.T) {
	prog := mustParse(t, "吾有一數。曰三。書之。")
	if len(prog.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(prog.Statements))
	}
	decl := prog.Statements[0]
	if decl.StmtKind != ast.StmtDeclare {
		t.Fatalf("got %v, want StmtDeclare", decl.StmtKind)
	}
	if decl.Declare.Count != 1 || decl.Declare.Type != ast.TypeNumber {
		t.Fatalf("got %+v", decl.Declare)
	}
	if len(decl.Declare.Data) != 1 || decl.Declare.Data[0].Int != 3 {
		t.Fatalf("got %+v", decl.Declare.Data)
	}
	if prog.Statements[1].StmtKind != ast.StmtPrint {
		t.Fatalf("got %v, want StmtPrint", prog.Statements[1].StmtKind)
	}
}

func TestParseDefineWithMultipleNames(t *testing.T) {
	prog := mustParse(t, "吾有三數。曰三。曰九。名之曰「庚」。曰「辛」。曰「壬」。曰「癸」。書之。")
	def := prog.Statements[0]
	if def.StmtKind != ast.StmtDefine {
		t.Fatalf("got %v, want StmtDefine", def.StmtKind)
	}
	if def.Define.Declare.Count != 3 {
		t.Fatalf("got count %d, want 3", def.Define.Declare.Count)
	}
	if len(def.Define.Declare.Data) != 2 {
		t.Fatalf("got %d data items, want 2", len(def.Define.Declare.Data))
	}
	want := []string{"庚", "辛", "壬", "癸"}
	if len(def.Define.Idents) != len(want) {
		t.Fatalf("got %v, want %v", def.Define.Idents, want)
	}
	for i, w := range want {
		if def.Define.Idents[i] != w {
			t.Fatalf("ident[%d] = %q, want %q", i, def.Define.Idents[i], w)
		}
	}
}

func TestParseInitDefine(t *testing.T) {
	prog := mustParse(t, "今有數五。名之曰「甲」。")
	stmt := prog.Statements[0]
	if stmt.StmtKind != ast.StmtInitDefine {
		t.Fatalf("got %v, want StmtInitDefine", stmt.StmtKind)
	}
	if stmt.InitDefine.Name != "甲" || stmt.InitDefine.Data.Int != 5 {
		t.Fatalf("got %+v", stmt.InitDefine)
	}
}

func TestParseInitDefineRequiresName(t *testing.T) {
	toks, err := lexer.All("今有數五。")
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	if _, err := New(toks).ParseProgram(); err == nil {
		t.Fatalf("expected error for InitDefine without a name")
	}
}

func TestParseAssign(t *testing.T) {
	prog := mustParse(t, "昔之「甲」者今三是矣。")
	stmt := prog.Statements[0]
	if stmt.StmtKind != ast.StmtAssign {
		t.Fatalf("got %v, want StmtAssign", stmt.StmtKind)
	}
	if stmt.Assign.Lvalue.Ident != "甲" {
		t.Fatalf("got %+v", stmt.Assign.Lvalue)
	}
	if stmt.Assign.Rvalue.Data.Data.Int != 3 {
		t.Fatalf("got %+v", stmt.Assign.Rvalue)
	}
}

func TestParseAssignRejectsNoLonger(t *testing.T) {
	toks, err := lexer.All("昔之「甲」者今不復存矣。")
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	_, err = New(toks).ParseProgram()
	if err == nil {
		t.Fatalf("expected unimplemented error")
	}
	perr, ok := err.(*Error)
	if !ok || perr.Kind != Unimplemented {
		t.Fatalf("got %v, want Unimplemented", err)
	}
}

func TestParseForEnumCount(t *testing.T) {
	prog := mustParse(t, "為是三遍。書之。云云。")
	stmt := prog.Statements[0]
	if stmt.StmtKind != ast.StmtForEnum {
		t.Fatalf("got %v, want StmtForEnum", stmt.StmtKind)
	}
	if stmt.ForEnum.Count != 3 {
		t.Fatalf("got count %d, want 3", stmt.ForEnum.Count)
	}
	if len(stmt.ForEnum.Body) != 1 || stmt.ForEnum.Body[0].StmtKind != ast.StmtPrint {
		t.Fatalf("got body %+v", stmt.ForEnum.Body)
	}
}

func TestParseLoopForever(t *testing.T) {
	prog := mustParse(t, "恆為是。乃止。云云。")
	stmt := prog.Statements[0]
	if stmt.StmtKind != ast.StmtLoop {
		t.Fatalf("got %v, want StmtLoop", stmt.StmtKind)
	}
	if len(stmt.Loop.Body) != 1 || stmt.Loop.Body[0].StmtKind != ast.StmtBreak {
		t.Fatalf("got body %+v", stmt.Loop.Body)
	}
}

func TestParseForArr(t *testing.T) {
	prog := mustParse(t, "凡「甲」中之「乙」。書之。云云。")
	stmt := prog.Statements[0]
	if stmt.StmtKind != ast.StmtForArr {
		t.Fatalf("got %v, want StmtForArr", stmt.StmtKind)
	}
	if stmt.ForArr.List != "甲" || stmt.ForArr.Elem != "乙" {
		t.Fatalf("got %+v", stmt.ForArr)
	}
}

func TestParseIfElseIfElse(t *testing.T) {
	prog := mustParse(t, "若三等於三者。書之。或若三等於九者。書之。若非。書之。云云。")
	stmt := prog.Statements[0]
	if stmt.StmtKind != ast.StmtIf {
		t.Fatalf("got %v, want StmtIf", stmt.StmtKind)
	}
	if stmt.If.If.Cond.Kind != ast.CondBinary || stmt.If.If.Cond.Op != ast.CmpEq {
		t.Fatalf("got %+v", stmt.If.If.Cond)
	}
	if len(stmt.If.ElseIfs) != 1 {
		t.Fatalf("got %d elseifs, want 1", len(stmt.If.ElseIfs))
	}
	if !stmt.If.HasElse || len(stmt.If.ElseBody) != 1 {
		t.Fatalf("got %+v", stmt.If)
	}
}

func TestParseIfPronounShorthand(t *testing.T) {
	prog := mustParse(t, "若其然者。書之。云云。")
	cond := prog.Statements[0].If.If.Cond
	if cond.Kind != ast.CondUnary || !cond.Left.Simple.IsPronoun {
		t.Fatalf("got %+v", cond)
	}

	prog2 := mustParse(t, "若其不然者。書之。云云。")
	cond2 := prog2.Statements[0].If.If.Cond
	if cond2.Kind != ast.CondNotPronoun {
		t.Fatalf("got %+v", cond2)
	}
}

func TestParseArithBinary(t *testing.T) {
	prog := mustParse(t, "加三以九。")
	stmt := prog.Statements[0]
	if stmt.StmtKind != ast.StmtMath || stmt.Math.Kind != ast.MathArithBinary {
		t.Fatalf("got %+v", stmt)
	}
	if stmt.Math.Op != token.OP_ADD || stmt.Math.A.Data.Int != 3 || stmt.Math.B.Data.Int != 9 {
		t.Fatalf("got %+v", stmt.Math)
	}
}

func TestParseDivWithRemainder(t *testing.T) {
	prog := mustParse(t, "除九以三所餘幾何。")
	stmt := prog.Statements[0]
	if stmt.Math.Kind != ast.MathDiv || stmt.Math.DivMod != ast.DivWithMod {
		t.Fatalf("got %+v", stmt.Math)
	}
}

func TestParseBooleanAlgebra(t *testing.T) {
	prog := mustParse(t, "夫「甲」「乙」中有陽乎。")
	stmt := prog.Statements[0]
	if stmt.StmtKind != ast.StmtMath || stmt.Math.Kind != ast.MathBooleanAlgebra {
		t.Fatalf("got %+v", stmt)
	}
	if stmt.Math.Id1.Ident != "甲" || stmt.Math.Id2.Ident != "乙" || stmt.Math.LogicOp != ast.LogicOr {
		t.Fatalf("got %+v", stmt.Math)
	}
}

func TestParseReferenceSimple(t *testing.T) {
	prog := mustParse(t, "夫三。")
	stmt := prog.Statements[0]
	if stmt.StmtKind != ast.StmtReference || stmt.Reference.Rvalue.Kind != ast.RvalueSimple {
		t.Fatalf("got %+v", stmt)
	}
}

func TestParseReferenceWhatIsLeft(t *testing.T) {
	prog := mustParse(t, "夫「甲」之其餘。")
	stmt := prog.Statements[0]
	if stmt.StmtKind != ast.StmtReferenceWhatIsLeft {
		t.Fatalf("got %v, want StmtReferenceWhatIsLeft", stmt.StmtKind)
	}
	if stmt.ReferenceWhatIsLeft.Data.Ident != "甲" {
		t.Fatalf("got %+v", stmt.ReferenceWhatIsLeft)
	}
}

func TestParseReferenceLength(t *testing.T) {
	prog := mustParse(t, "夫「甲」之長。")
	stmt := prog.Statements[0]
	if stmt.Reference.Rvalue.Kind != ast.RvalueLength {
		t.Fatalf("got %+v", stmt.Reference.Rvalue)
	}
}

func TestParseNameMulti(t *testing.T) {
	prog := mustParse(t, "夫三。夫九。名之曰「甲」。曰「乙」。")
	stmt := prog.Statements[2]
	if stmt.StmtKind != ast.StmtNameMulti {
		t.Fatalf("got %v, want StmtNameMulti", stmt.StmtKind)
	}
	if len(stmt.NameMulti.Idents) != 2 {
		t.Fatalf("got %+v", stmt.NameMulti)
	}
}

func TestParseArrayFill(t *testing.T) {
	prog := mustParse(t, "充「甲」以三以九。")
	stmt := prog.Statements[0]
	if stmt.StmtKind != ast.StmtArrayFill {
		t.Fatalf("got %v, want StmtArrayFill", stmt.StmtKind)
	}
	if stmt.ArrayFill.Target.Ident != "甲" || len(stmt.ArrayFill.Elems) != 2 {
		t.Fatalf("got %+v", stmt.ArrayFill)
	}
}

func TestParseArrayCat(t *testing.T) {
	prog := mustParse(t, "銜「甲」以「乙」。")
	stmt := prog.Statements[0]
	if stmt.StmtKind != ast.StmtArrayCat {
		t.Fatalf("got %v, want StmtArrayCat", stmt.StmtKind)
	}
	if stmt.ArrayCat.Target.Ident != "甲" || len(stmt.ArrayCat.Elems) != 1 {
		t.Fatalf("got %+v", stmt.ArrayCat)
	}
}

func TestInterpretIntNumAllAcceptedShapes(t *testing.T) {
	cases := map[string]int64{
		"零": 0, "三": 3,
		"十": 10, "三十": 30, "十三": 13, "三十九": 39,
		"百": 100, "三百": 300, "三百三十": 330, "三百十九": 319, "三百三十九": 339,
		"千": 1000, "三千三百三十九": 3339,
		"三萬三千三百三十九": 33339,
	}
	for lit, want := range cases {
		got, ok := interpretIntNum([]rune(lit))
		if !ok {
			t.Fatalf("%q: not accepted", lit)
		}
		if got != want {
			t.Fatalf("%q: got %d, want %d", lit, got, want)
		}
	}
}

func TestInterpretIntNumRejectsOutOfGrammar(t *testing.T) {
	if _, ok := interpretIntNum([]rune("萬")); ok {
		t.Fatalf("bare 萬 should be rejected")
	}
	if _, ok := interpretIntNum([]rune("三百三")); ok {
		t.Fatalf("partial hundred-series without 十 should be rejected")
	}
}

func TestParseInvalidVariableCount(t *testing.T) {
	toks, err := lexer.All("吾有零數。曰三。")
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	_, err = New(toks).ParseProgram()
	if err == nil {
		t.Fatalf("expected InvalidVariableCount error")
	}
	perr, ok := err.(*Error)
	if !ok || perr.Kind != InvalidVariableCount {
		t.Fatalf("got %v, want InvalidVariableCount", err)
	}
}
