// Package codegen lowers a parsed statement list into a single string of
// target-language source, threading the identifier registry and the
// compile-time "pending" stack described in §4.4 through one emission
// pass. Output is assembled as (indent, line) pairs and serialized only at
// the very end (§9: "do not concatenate spaces inline").
package codegen

import (
	"fmt"
	"strings"

	"github.com/wenyan-lang/wyc/internal/ast"
	"github.com/wenyan-lang/wyc/internal/identbimap"
	"github.com/wenyan-lang/wyc/pkg/token"
)

// nanLiteral is emitted when the pronoun 其 is referenced with an empty
// pending stack.
const nanLiteral = "NaN"

// ErrorKind is the closed set of fatal codegen errors (§7: the only
// codegen-stage failure is qi used as an array-fill/array-cat target).
type ErrorKind int

const (
	QiAsArrayTarget ErrorKind = iota
)

// Error is a fatal codegen error.
type Error struct {
	Kind ErrorKind
	Pos  token.Position
}

func (e *Error) Error() string {
	return "其 (qi) cannot be used as an array-fill or array-cat target"
}

type line struct {
	indent int
	text   string
}

// Env is the mutable bundle threaded through emission (§3): the temp and
// loop-variable counters, current indent depth, the not-yet-named
// "pending" stack, and a read-only registry reference.
type Env struct {
	registry       *identbimap.Registry
	tempCounter    int
	loopvarCounter int
	indent         int
	pending        []string
	lines          []line
}

func newEnv(registry *identbimap.Registry) *Env {
	return &Env{registry: registry}
}

func (e *Env) emit(text string) {
	e.lines = append(e.lines, line{e.indent, text})
}

func (e *Env) nextTemp() string {
	e.tempCounter++
	return fmt.Sprintf("_ans%d", e.tempCounter)
}

func (e *Env) nextLoopVar() string {
	e.loopvarCounter++
	return fmt.Sprintf("_rand%d", e.loopvarCounter)
}

func (e *Env) push(expr string) {
	e.pending = append(e.pending, expr)
}

// takeQi implements the pronoun rule (§4.4.1): evaluating 其 yields the
// last pending entry and empties the whole stack; an empty stack yields a
// NaN literal.
func (e *Env) takeQi() string {
	if len(e.pending) == 0 {
		return nanLiteral
	}
	last := e.pending[len(e.pending)-1]
	e.pending = nil
	return last
}

func (e *Env) render() string {
	var sb strings.Builder
	for _, l := range e.lines {
		sb.WriteString(strings.Repeat("    ", l.indent))
		sb.WriteString(l.text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Generate runs the full codegen pass over program and returns the
// assembled target-language text (§4.4.4: entry-point framing).
func Generate(program *ast.Program, registry *identbimap.Registry) (string, error) {
	env := newEnv(registry)
	env.emit("fn main() {")
	env.indent = 1
	for _, stmt := range program.Statements {
		if err := env.emitStatement(stmt); err != nil {
			return "", err
		}
	}
	env.indent = 0
	env.emit("}")
	return env.render(), nil
}

func typeDefault(t ast.ValueType) string {
	switch t {
	case ast.TypeNumber:
		return "0.0"
	case ast.TypeList:
		return "vec![]"
	case ast.TypeString:
		return "\"\""
	case ast.TypeBoolean:
		return "false"
	default:
		return "0.0"
	}
}

// renderData renders a literal or identifier reference per §4.4.3. String
// literals are interpolated with no escaping, preserving the original
// compiler's known open issue (§9) rather than inventing one.
func (e *Env) renderData(d ast.Data) string {
	switch d.Kind {
	case ast.DataString:
		return fmt.Sprintf("\"%s\"", d.Str)
	case ast.DataBool:
		if d.Bool {
			return "true"
		}
		return "false"
	case ast.DataInt:
		return fmt.Sprintf("%d.0", d.Int)
	case ast.DataIdent:
		return e.registry.Translate(d.Ident)
	default:
		return "0.0"
	}
}

func (e *Env) renderDataOrPronoun(d ast.DataOrPronoun) string {
	if d.IsPronoun {
		return e.takeQi()
	}
	return e.renderData(d.Data)
}

func (e *Env) renderIdentOrPronoun(id ast.IdentOrPronoun) string {
	if id.IsPronoun {
		return e.takeQi()
	}
	return e.registry.Translate(id.Ident)
}

func (e *Env) renderLvalue(lv ast.Lvalue) string {
	name := e.registry.Translate(lv.Ident)
	switch lv.Kind {
	case ast.LvalueSimple:
		return name
	case ast.LvalueIndex:
		return fmt.Sprintf("%s[%d]", name, lv.Index-1)
	case ast.LvalueIndexByIdent:
		idx := e.registry.Translate(lv.IndexIdent)
		return fmt.Sprintf("%s[(%s as usize) - 1]", name, idx)
	default:
		return name
	}
}

func (e *Env) renderRvalue(rv ast.Rvalue) string {
	base := e.renderDataOrPronoun(rv.Data)
	switch rv.Kind {
	case ast.RvalueSimple:
		return base
	case ast.RvalueIndex:
		return fmt.Sprintf("%s[%d]", base, rv.Index-1)
	case ast.RvalueIndexByIdent:
		idx := e.registry.Translate(rv.IndexIdent)
		return fmt.Sprintf("%s[(%s as usize) - 1]", base, idx)
	case ast.RvalueLength:
		return fmt.Sprintf("%s.len() as f64", base)
	default:
		return base
	}
}

func (e *Env) renderUnaryIfExpr(u ast.UnaryIfExpr) string {
	switch u.Kind {
	case ast.IfExprComplex:
		return e.renderRvalue(u.Complex)
	default:
		return e.renderDataOrPronoun(u.Simple)
	}
}

func cmpOpString(op ast.CmpOp) string {
	switch op {
	case ast.CmpEq:
		return "=="
	case ast.CmpNe:
		return "!="
	case ast.CmpLe:
		return "<="
	case ast.CmpGe:
		return ">="
	case ast.CmpGt:
		return ">"
	case ast.CmpLt:
		return "<"
	default:
		return "=="
	}
}

func (e *Env) renderCond(c ast.IfCond) string {
	switch c.Kind {
	case ast.CondBinary:
		left := e.renderUnaryIfExpr(c.Left)
		right := e.renderUnaryIfExpr(c.Right)
		return fmt.Sprintf("%s %s %s", left, cmpOpString(c.Op), right)
	case ast.CondNotPronoun:
		return fmt.Sprintf("!%s", e.takeQi())
	default:
		return e.renderUnaryIfExpr(c.Left)
	}
}

func mathOpString(k token.Kind) string {
	switch k {
	case token.OP_ADD:
		return "+"
	case token.OP_SUB:
		return "-"
	case token.OP_MUL:
		return "*"
	default:
		return "+"
	}
}

// operandsByPrep applies §8 invariant 8: Yi3 routes (a,b) as (left,right);
// Yu2 swaps them.
func operandsByPrep(a ast.DataOrPronoun, prep ast.Preposition, b ast.DataOrPronoun) (ast.DataOrPronoun, ast.DataOrPronoun) {
	if prep == ast.PrepYi {
		return a, b
	}
	return b, a
}

func (e *Env) emitBody(body []ast.Statement) error {
	for _, stmt := range body {
		if err := e.emitStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (e *Env) emitStatement(stmt ast.Statement) error {
	switch stmt.StmtKind {

	case ast.StmtPrint:
		fmtStr := strings.TrimRight(strings.Repeat("{} ", len(e.pending)), " ")
		if len(e.pending) == 0 {
			e.emit("println!(\"\");")
		} else {
			e.emit(fmt.Sprintf("println!(\"%s\", %s);", fmtStr, strings.Join(e.pending, ", ")))
		}
		e.pending = nil

	case ast.StmtFlush:
		e.pending = nil

	case ast.StmtBreak:
		e.emit("break;")

	case ast.StmtContinue:
		e.emit("continue;")

	case ast.StmtInitDefine:
		d := stmt.InitDefine
		mut := ""
		if e.registry.IsMutable(d.Name) {
			mut = "mut "
		}
		e.emit(fmt.Sprintf("let %s%s = %s;", mut, e.registry.Translate(d.Name), e.renderData(d.Data)))

	case ast.StmtDeclare:
		decl := stmt.Declare
		for i := 0; i < decl.Count; i++ {
			lit := typeDefault(decl.Type)
			if i < len(decl.Data) {
				lit = e.renderData(decl.Data[i])
			}
			name := e.nextTemp()
			e.emit(fmt.Sprintf("let %s = %s;", name, lit))
			e.push(name)
		}

	case ast.StmtDefine:
		e.emitDefine(stmt.Define)

	case ast.StmtAssign:
		lhs := e.renderLvalue(stmt.Assign.Lvalue)
		rhs := e.renderRvalue(stmt.Assign.Rvalue)
		e.emit(fmt.Sprintf("%s = %s;", lhs, rhs))

	case ast.StmtReference:
		expr := e.renderRvalue(stmt.Reference.Rvalue)
		name := e.nextTemp()
		e.emit(fmt.Sprintf("let %s = %s;", name, expr))
		e.push(name)

	case ast.StmtReferenceWhatIsLeft:
		base := e.renderData(stmt.ReferenceWhatIsLeft.Data)
		name := e.nextTemp()
		e.emit(fmt.Sprintf("let %s = &%s[1..].to_vec();", name, base))
		e.push(name)

	case ast.StmtNameMulti:
		e.emitNameMulti(stmt.NameMulti.Idents)

	case ast.StmtMath:
		return e.emitMath(stmt.Math)

	case ast.StmtForEnum:
		e.emit(fmt.Sprintf("for _ in 0..%d {", stmt.ForEnum.Count))
		e.indent++
		if err := e.emitBody(stmt.ForEnum.Body); err != nil {
			return err
		}
		e.indent--
		e.emit("}")

	case ast.StmtForEnumIdent:
		bound := e.renderIdentOrPronoun(stmt.ForEnumIdent.Ident)
		rv := e.nextLoopVar()
		e.emit(fmt.Sprintf("let mut %s = 0.0;", rv))
		e.emit(fmt.Sprintf("while %s < %s {", rv, bound))
		e.indent++
		if err := e.emitBody(stmt.ForEnumIdent.Body); err != nil {
			return err
		}
		e.emit(fmt.Sprintf("%s += 1.0;", rv))
		e.indent--
		e.emit("}")

	case ast.StmtForArr:
		e.emit(fmt.Sprintf("for %s in %s {", e.registry.Translate(stmt.ForArr.Elem), e.registry.Translate(stmt.ForArr.List)))
		e.indent++
		if err := e.emitBody(stmt.ForArr.Body); err != nil {
			return err
		}
		e.indent--
		e.emit("}")

	case ast.StmtLoop:
		e.emit("loop {")
		e.indent++
		if err := e.emitBody(stmt.Loop.Body); err != nil {
			return err
		}
		e.indent--
		e.emit("}")

	case ast.StmtIf:
		return e.emitIf(stmt.If)

	case ast.StmtArrayFill:
		return e.emitArrayFill(stmt.ArrayFill, stmt.Pos)

	case ast.StmtArrayCat:
		return e.emitArrayCat(stmt.ArrayCat, stmt.Pos)
	}
	return nil
}

func (e *Env) emitDefine(def *ast.DefineStmt) {
	count := def.Declare.Count
	n := count
	if len(def.Idents) > n {
		n = len(def.Idents)
	}
	for i := 0; i < n; i++ {
		withinCount := i < count
		hasIdent := i < len(def.Idents)

		var lit string
		if withinCount {
			lit = typeDefault(def.Declare.Type)
			if i < len(def.Declare.Data) {
				lit = e.renderData(def.Declare.Data[i])
			}
		}

		if !hasIdent {
			name := e.nextTemp()
			e.emit(fmt.Sprintf("let %s = %s;", name, lit))
			e.push(name)
			continue
		}

		ident := def.Idents[i]
		mut := ""
		if e.registry.IsMutable(ident) {
			mut = "mut "
		}
		name := e.registry.Translate(ident)
		if withinCount {
			e.emit(fmt.Sprintf("let %s%s = %s;", mut, name, lit))
		} else {
			e.emit(fmt.Sprintf("let %s%s;", mut, name))
		}
	}
}

// emitNameMulti implements §4.4.2's NameMulti contract and §8 invariant 5.
func (e *Env) emitNameMulti(idents []string) {
	k := len(idents)
	p := len(e.pending)

	excess := 0
	if k > p {
		excess = k - p
	}
	var tail []string
	if k > p {
		tail = e.pending
	} else {
		tail = e.pending[p-k:]
	}

	for j := 0; j < excess; j++ {
		ident := idents[j]
		mut := ""
		if e.registry.IsMutable(ident) {
			mut = "mut "
		}
		e.emit(fmt.Sprintf("let %s%s;", mut, e.registry.Translate(ident)))
	}
	for j := excess; j < k; j++ {
		ident := idents[j]
		val := tail[j-excess]
		mut := ""
		if e.registry.IsMutable(ident) {
			mut = "mut "
		}
		e.emit(fmt.Sprintf("let %s%s = %s;", mut, e.registry.Translate(ident), val))
	}

	if k >= p {
		e.pending = nil
	} else {
		e.pending = e.pending[:p-k]
	}
}

func (e *Env) emitMath(m *ast.MathStmt) error {
	switch m.Kind {
	case ast.MathArithBinary:
		left, right := operandsByPrep(m.A, m.Prep, m.B)
		leftExpr := e.renderDataOrPronoun(left)
		rightExpr := e.renderDataOrPronoun(right)
		name := e.nextTemp()
		e.emit(fmt.Sprintf("let %s = %s %s %s;", name, leftExpr, mathOpString(m.Op), rightExpr))
		e.push(name)

	case ast.MathArithUnary:
		x := e.renderDataOrPronoun(m.X)
		name := e.nextTemp()
		e.emit(fmt.Sprintf("let %s = !%s;", name, x))
		e.push(name)

	case ast.MathBooleanAlgebra:
		e1 := e.renderIdentOrPronoun(m.Id1)
		e2 := e.renderIdentOrPronoun(m.Id2)
		op := "&&"
		if m.LogicOp == ast.LogicOr {
			op = "||"
		}
		name := e.nextTemp()
		e.emit(fmt.Sprintf("let %s = %s %s %s;", name, e1, op, e2))
		e.push(name)

	case ast.MathDiv:
		left, right := operandsByPrep(m.A, m.Prep, m.B)
		leftExpr := e.renderDataOrPronoun(left)
		rightExpr := e.renderDataOrPronoun(right)
		op := "/"
		if m.DivMod == ast.DivWithMod {
			op = "%"
		}
		name := e.nextTemp()
		e.emit(fmt.Sprintf("let %s = %s %s %s;", name, leftExpr, op, rightExpr))
		e.push(name)
	}
	return nil
}

func (e *Env) emitIf(stmt *ast.IfStmt) error {
	cond := e.renderCond(stmt.If.Cond)
	e.emit(fmt.Sprintf("if %s {", cond))
	e.indent++
	if err := e.emitBody(stmt.If.Body); err != nil {
		return err
	}
	e.indent--

	for _, ei := range stmt.ElseIfs {
		c := e.renderCond(ei.Cond)
		e.emit(fmt.Sprintf("} else if %s {", c))
		e.indent++
		if err := e.emitBody(ei.Body); err != nil {
			return err
		}
		e.indent--
	}

	if stmt.HasElse {
		e.emit("} else {")
		e.indent++
		if err := e.emitBody(stmt.ElseBody); err != nil {
			return err
		}
		e.indent--
	}

	e.emit("}")
	return nil
}

func (e *Env) emitArrayFill(stmt *ast.ArrayFillStmt, pos token.Position) error {
	if stmt.Target.IsPronoun {
		return &Error{Kind: QiAsArrayTarget, Pos: pos}
	}
	target := e.registry.Translate(stmt.Target.Ident)
	lits := make([]string, len(stmt.Elems))
	for i, d := range stmt.Elems {
		lits[i] = e.renderData(d)
	}
	if len(lits) == 1 {
		e.emit(fmt.Sprintf("%s.push(%s);", target, lits[0]))
	} else {
		e.emit(fmt.Sprintf("%s.append(&mut vec![%s]);", target, strings.Join(lits, ", ")))
	}
	return nil
}

func (e *Env) emitArrayCat(stmt *ast.ArrayCatStmt, pos token.Position) error {
	if stmt.Target.IsPronoun {
		return &Error{Kind: QiAsArrayTarget, Pos: pos}
	}
	target := e.registry.Translate(stmt.Target.Ident)
	parts := make([]string, 0, len(stmt.Elems)+1)
	parts = append(parts, fmt.Sprintf("&%s[..]", target))
	for _, ident := range stmt.Elems {
		parts = append(parts, fmt.Sprintf("&%s[..]", e.registry.Translate(ident)))
	}
	name := e.nextTemp()
	e.emit(fmt.Sprintf("let %s = [%s].concat();", name, strings.Join(parts, ", ")))
	e.push(name)
	return nil
}
