// Package identbimap builds the bijective identifier registry that
// mediates between the parser and the code generator (§4.3).
//
// Construction is grounded directly on the original implementation's
// IdentBiMap (identbimap/mod.rs): a single walk of every statement inserts
// each encountered source identifier at most once, deriving its target
// name from a romanization table and resolving collisions by appending
// underscores, while a parallel set tracks which identifiers are ever
// mutated.
package identbimap

import (
	"fmt"
	"strings"

	"github.com/wenyan-lang/wyc/internal/ast"
)

// Registry is the (bijection, mutability-set) pair described in §3/§4.3.
type Registry struct {
	table    map[string]string // uppercase hex codepoint -> romanization (possibly space-separated alternatives)
	toTarget map[string]string // source ident -> target ident
	toSource map[string]string // target ident -> source ident (inverse, for collision checks)
	mutable  map[string]bool
}

// New constructs an empty registry over an already-populated romanization
// table. The table is the out-of-scope collaborator named in §1: this
// package only ever reads it through Translate's internal lookup, never
// populates it itself.
func New(table map[string]string) *Registry {
	return &Registry{
		table:    table,
		toTarget: make(map[string]string),
		toSource: make(map[string]string),
		mutable:  make(map[string]bool),
	}
}

// Build walks every statement in program exactly once and returns the
// completed registry. The registry must be fully built before codegen
// begins (§4.3, §9: "do not mix registry construction and emission").
func Build(program *ast.Program, table map[string]string) *Registry {
	r := New(table)
	for _, stmt := range program.Statements {
		r.visitStatement(stmt)
	}
	return r
}

// Translate returns id's target-language name. It never fails for an
// identifier that was present in the AST Build walked.
func (r *Registry) Translate(id string) string {
	if target, ok := r.toTarget[id]; ok {
		return target
	}
	return r.insertIdent(id)
}

// IsMutable reports whether id is ever the target of an assignment or an
// in-place container mutation.
func (r *Registry) IsMutable(id string) bool {
	return r.mutable[id]
}

// toPinyin derives a candidate target name for a source identifier by
// romanizing each rune independently and concatenating with no separator,
// substituting "_" for any codepoint missing from the table.
func (r *Registry) toPinyin(id string) string {
	var sb strings.Builder
	for _, ch := range id {
		key := fmt.Sprintf("%X", ch)
		variants, ok := r.table[key]
		if !ok {
			sb.WriteString("_")
			continue
		}
		first := variants
		if idx := strings.IndexByte(variants, ' '); idx >= 0 {
			first = variants[:idx]
		}
		sb.WriteString(first)
	}
	return sb.String()
}

// insertIdent assigns id a fresh target name, appending underscores until
// the candidate is unique, and records the mapping.
func (r *Registry) insertIdent(id string) string {
	candidate := r.toPinyin(id)
	for {
		if _, taken := r.toSource[candidate]; !taken {
			break
		}
		candidate += "_"
	}
	r.toTarget[id] = candidate
	r.toSource[candidate] = id
	return candidate
}

// see records id as read (ensuring it has a target name) without changing
// its mutability.
func (r *Registry) see(id string) {
	if _, ok := r.toTarget[id]; !ok {
		r.insertIdent(id)
	}
}

// mutate records id as read and marks it mutable.
func (r *Registry) mutate(id string) {
	r.see(id)
	r.mutable[id] = true
}

func (r *Registry) visitData(d ast.Data) {
	if d.Kind == ast.DataIdent {
		r.see(d.Ident)
	}
}

func (r *Registry) visitDataOrPronoun(d ast.DataOrPronoun) {
	if !d.IsPronoun {
		r.visitData(d.Data)
	}
}

func (r *Registry) visitIdentOrPronoun(id ast.IdentOrPronoun, asMutable bool) {
	if id.IsPronoun {
		return
	}
	if asMutable {
		r.mutate(id.Ident)
	} else {
		r.see(id.Ident)
	}
}

func (r *Registry) visitRvalue(rv ast.Rvalue) {
	r.visitDataOrPronoun(rv.Data)
	if rv.Kind == ast.RvalueIndexByIdent {
		r.see(rv.IndexIdent)
	}
}

func (r *Registry) visitLvalue(lv ast.Lvalue) {
	r.mutate(lv.Ident)
	if lv.Kind == ast.LvalueIndexByIdent {
		r.see(lv.IndexIdent)
	}
}

func (r *Registry) visitUnaryIfExpr(e ast.UnaryIfExpr) {
	switch e.Kind {
	case ast.IfExprSimple:
		r.visitDataOrPronoun(e.Simple)
	case ast.IfExprComplex:
		r.visitRvalue(e.Complex)
	}
}

func (r *Registry) visitIfCond(c ast.IfCond) {
	switch c.Kind {
	case ast.CondUnary:
		r.visitUnaryIfExpr(c.Left)
	case ast.CondBinary:
		r.visitUnaryIfExpr(c.Left)
		r.visitUnaryIfExpr(c.Right)
	case ast.CondNotPronoun:
		// refers only to the pending stack; no identifier involved.
	}
}

func (r *Registry) visitBody(body []ast.Statement) {
	for _, stmt := range body {
		r.visitStatement(stmt)
	}
}

func (r *Registry) visitStatement(stmt ast.Statement) {
	switch stmt.StmtKind {
	case ast.StmtDeclare:
		for _, d := range stmt.Declare.Data {
			r.visitData(d)
		}

	case ast.StmtDefine:
		for _, d := range stmt.Define.Declare.Data {
			r.visitData(d)
		}
		for _, ident := range stmt.Define.Idents {
			r.see(ident)
		}

	case ast.StmtInitDefine:
		r.visitData(stmt.InitDefine.Data)
		r.see(stmt.InitDefine.Name)

	case ast.StmtAssign:
		r.visitLvalue(stmt.Assign.Lvalue)
		r.visitRvalue(stmt.Assign.Rvalue)

	case ast.StmtMath:
		m := stmt.Math
		switch m.Kind {
		case ast.MathArithBinary, ast.MathDiv:
			r.visitDataOrPronoun(m.A)
			r.visitDataOrPronoun(m.B)
		case ast.MathArithUnary:
			r.visitDataOrPronoun(m.X)
		case ast.MathBooleanAlgebra:
			r.visitIdentOrPronoun(m.Id1, false)
			r.visitIdentOrPronoun(m.Id2, false)
		}

	case ast.StmtReference:
		r.visitRvalue(stmt.Reference.Rvalue)

	case ast.StmtReferenceWhatIsLeft:
		r.visitData(stmt.ReferenceWhatIsLeft.Data)

	case ast.StmtNameMulti:
		for _, ident := range stmt.NameMulti.Idents {
			r.see(ident)
		}

	case ast.StmtPrint, ast.StmtFlush, ast.StmtBreak, ast.StmtContinue:
		// no identifiers.

	case ast.StmtForEnum:
		r.visitBody(stmt.ForEnum.Body)

	case ast.StmtForEnumIdent:
		r.visitIdentOrPronoun(stmt.ForEnumIdent.Ident, false)
		r.visitBody(stmt.ForEnumIdent.Body)

	case ast.StmtForArr:
		r.see(stmt.ForArr.List)
		r.see(stmt.ForArr.Elem)
		r.visitBody(stmt.ForArr.Body)

	case ast.StmtLoop:
		r.visitBody(stmt.Loop.Body)

	case ast.StmtIf:
		ifStmt := stmt.If
		r.visitIfCond(ifStmt.If.Cond)
		r.visitBody(ifStmt.If.Body)
		for _, elseif := range ifStmt.ElseIfs {
			r.visitIfCond(elseif.Cond)
			r.visitBody(elseif.Body)
		}
		if ifStmt.HasElse {
			r.visitBody(ifStmt.ElseBody)
		}

	case ast.StmtArrayFill:
		r.visitIdentOrPronoun(stmt.ArrayFill.Target, true)
		for _, d := range stmt.ArrayFill.Elems {
			r.visitData(d)
		}

	case ast.StmtArrayCat:
		r.visitIdentOrPronoun(stmt.ArrayCat.Target, true)
		for _, ident := range stmt.ArrayCat.Elems {
			r.see(ident)
		}
	}
}
