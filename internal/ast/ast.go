// Package ast defines the statement tree produced by the parser.
//
// Every node here is a closed sum type: a Kind tag plus one payload field
// per variant, rather than an interface with per-variant implementations.
// The language has a small, fixed grammar, so exhaustive switch statements
// on Kind read and maintain more directly than visitor dispatch (§9).
package ast

import "github.com/wenyan-lang/wyc/pkg/token"

// ValueType is the source language's Type tag.
type ValueType int

const (
	TypeNumber ValueType = iota
	TypeList
	TypeString
	TypeBoolean
)

// Preposition selects operand order for a binary math statement.
type Preposition int

const (
	PrepYi  Preposition = iota // a-takes-b
	PrepYu2                    // b-takes-a
)

// CmpOp is a comparison operator.
type CmpOp int

const (
	CmpEq CmpOp = iota
	CmpNe
	CmpLe
	CmpGe
	CmpGt
	CmpLt
)

// LogicOp is a boolean-algebra operator over a pair of identifiers.
type LogicOp int

const (
	LogicAnd LogicOp = iota
	LogicOr
)

// DataKind tags a Data literal/reference.
type DataKind int

const (
	DataString DataKind = iota
	DataBool
	DataInt
	DataIdent
)

// Data is a literal or bare identifier reference (§3).
type Data struct {
	Kind  DataKind
	Str   string
	Bool  bool
	Int   int64
	Ident string
}

// DataOrPronoun is a Data value, or the pronoun 其 ("qi") standing in for
// the most recent not-yet-named value.
type DataOrPronoun struct {
	IsPronoun bool
	Data      Data
}

// IdentOrPronoun is a bare identifier, or the pronoun 其.
type IdentOrPronoun struct {
	IsPronoun bool
	Ident     string
}

// LvalueKind tags an assignment target shape.
type LvalueKind int

const (
	LvalueSimple LvalueKind = iota
	LvalueIndex
	LvalueIndexByIdent
)

// Lvalue is the left-hand side of an Assign statement.
type Lvalue struct {
	Kind       LvalueKind
	Ident      string
	Index      int64  // 1-based source index, valid when Kind == LvalueIndex
	IndexIdent string // valid when Kind == LvalueIndexByIdent
}

// RvalueKind tags a value-producing reference shape.
type RvalueKind int

const (
	RvalueSimple RvalueKind = iota
	RvalueIndex
	RvalueIndexByIdent
	RvalueLength
)

// Rvalue is a value reference, optionally suffixed by an index or length
// operator (the "之 suffix" grammar in §4.2).
type Rvalue struct {
	Kind       RvalueKind
	Data       DataOrPronoun
	Index      int64
	IndexIdent string
}

// UnaryIfExprKind tags the shape of one side of an If condition.
type UnaryIfExprKind int

const (
	IfExprSimple UnaryIfExprKind = iota
	IfExprComplex
)

// UnaryIfExpr is one operand of an IfCond.
type UnaryIfExpr struct {
	Kind    UnaryIfExprKind
	Simple  DataOrPronoun
	Complex Rvalue // valid when Kind == IfExprComplex; never carries a pronoun
}

// IfCondKind tags the shape of an If condition.
type IfCondKind int

const (
	CondUnary IfCondKind = iota
	CondBinary
	CondNotPronoun
)

// IfCond is the condition guarding an If branch.
type IfCond struct {
	Kind  IfCondKind
	Left  UnaryIfExpr
	Op    CmpOp
	Right UnaryIfExpr
}

// MathStmtKind tags the shape of a Math statement.
type MathStmtKind int

const (
	MathArithBinary MathStmtKind = iota
	MathArithUnary
	MathBooleanAlgebra
	MathDiv
)

// DivModKind distinguishes plain division from the remainder form.
type DivModKind int

const (
	DivOnly DivModKind = iota
	DivWithMod
)

// MathStmt is the payload of the Math statement variant.
type MathStmt struct {
	Kind MathStmtKind

	// MathArithBinary / MathDiv
	Op     token.Kind // one of OP_ADD, OP_SUB, OP_MUL, OP_DIV
	A      DataOrPronoun
	Prep   Preposition
	B      DataOrPronoun
	DivMod DivModKind // valid when Kind == MathDiv

	// MathArithUnary
	X DataOrPronoun

	// MathBooleanAlgebra
	Id1     IdentOrPronoun
	Id2     IdentOrPronoun
	LogicOp LogicOp
}

// DeclareStmt declares Count slots of Type, optionally pre-filled from
// Data (§3 invariants: len(Data) may be less than Count). The parser
// does not reject more Data than Count; codegen uses only the first Count.
type DeclareStmt struct {
	Count int
	Type  ValueType
	Data  []Data
}

// DefineStmt is a Declare paired with a name list (§3: len(Idents) may
// differ from Declare.Count in either direction).
type DefineStmt struct {
	Declare DeclareStmt
	Idents  []string
}

// InitDefineStmt declares and names a single value in one statement.
type InitDefineStmt struct {
	Type ValueType
	Data Data
	Name string
}

// AssignStmt rebinds an existing identifier (only the implemented "今 ..."
// branch; the "今不復存矣" branch is rejected by the parser, §7).
type AssignStmt struct {
	Lvalue Lvalue
	Rvalue Rvalue
}

// ReferenceStmt produces a value without naming it; it is pushed onto the
// codegen pending stack.
type ReferenceStmt struct {
	Rvalue Rvalue
}

// ReferenceWhatIsLeftStmt takes the tail of a list starting at index 2.
type ReferenceWhatIsLeftStmt struct {
	Data Data
}

// NameMultiStmt retroactively binds the tail of the pending stack.
type NameMultiStmt struct {
	Idents []string
}

// ForEnumStmt repeats Body Count times.
type ForEnumStmt struct {
	Count int64
	Body  []Statement
}

// ForEnumIdentStmt repeats Body while a running counter is less than the
// value named by Ident (or by 其).
type ForEnumIdentStmt struct {
	Ident IdentOrPronoun
	Body  []Statement
}

// ForArrStmt iterates List, binding each element to Elem.
type ForArrStmt struct {
	List string
	Elem string
	Body []Statement
}

// LoopStmt repeats Body unconditionally.
type LoopStmt struct {
	Body []Statement
}

// IfBranch pairs a condition with its body (used for the primary branch
// and every 或若 branch).
type IfBranch struct {
	Cond IfCond
	Body []Statement
}

// IfStmt is an if / else-if* / else? chain.
type IfStmt struct {
	If       IfBranch
	ElseIfs  []IfBranch
	HasElse  bool
	ElseBody []Statement
}

// ArrayFillStmt pushes literal elements onto Target.
type ArrayFillStmt struct {
	Target IdentOrPronoun
	Elems  []Data
}

// ArrayCatStmt concatenates Target with each identifier in Elems.
type ArrayCatStmt struct {
	Target IdentOrPronoun
	Elems  []string
}

// StmtKind tags a Statement variant.
type StmtKind int

const (
	StmtDeclare StmtKind = iota
	StmtDefine
	StmtInitDefine
	StmtAssign
	StmtMath
	StmtReference
	StmtReferenceWhatIsLeft
	StmtNameMulti
	StmtPrint
	StmtFlush
	StmtBreak
	StmtContinue
	StmtForEnum
	StmtForEnumIdent
	StmtForArr
	StmtLoop
	StmtIf
	StmtArrayFill
	StmtArrayCat
)

// Statement is one top-level or nested statement. Print, Flush, Break and
// Continue carry no payload beyond their Kind.
type Statement struct {
	Pos token.Position // position of the statement's leading token

	StmtKind StmtKind

	Declare              *DeclareStmt
	Define               *DefineStmt
	InitDefine           *InitDefineStmt
	Assign               *AssignStmt
	Math                 *MathStmt
	Reference            *ReferenceStmt
	ReferenceWhatIsLeft  *ReferenceWhatIsLeftStmt
	NameMulti            *NameMultiStmt
	ForEnum              *ForEnumStmt
	ForEnumIdent         *ForEnumIdentStmt
	ForArr               *ForArrStmt
	Loop                 *LoopStmt
	If                   *IfStmt
	ArrayFill            *ArrayFillStmt
	ArrayCat             *ArrayCatStmt
}

// Program is the parser's output: a flat, ordered statement list.
type Program struct {
	Statements []Statement
}
