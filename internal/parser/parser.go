// Package parser builds a flat statement list from a token stream using
// recursive descent with up to three tokens of lookahead (§4.2).
//
// The parser is grounded on the teacher's TokenCursor design
// (internal/parser/cursor.go in the teacher repository), except that here
// the lexer has already run to completion (§2, implementation note), so
// peekAt(n) is a plain index into the token slice, because the
// statement grammar below has no recursive expression precedence to
// stream through — it dispatches once per statement on a small closed set
// of leading keywords, exactly as in the original compiler's
// `parse_statement`.
package parser

import (
	"fmt"

	"github.com/wenyan-lang/wyc/internal/ast"
	"github.com/wenyan-lang/wyc/pkg/token"
)

// ErrorKind is the closed set of fatal parse errors (§7).
type ErrorKind int

const (
	SomethingWentWrong ErrorKind = iota
	UnexpectedEOF
	InvalidVariableCount
	Unimplemented
)

// Error is a fatal parse error; the position is a source-file coordinate
// suitable for diagnostics.
type Error struct {
	Kind  ErrorKind
	Pos   token.Position
	Label string
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnexpectedEOF:
		return "unexpected end of input"
	case InvalidVariableCount:
		return "declared variable count must be at least 1"
	case Unimplemented:
		return fmt.Sprintf("unimplemented: %s", e.Label)
	default:
		return fmt.Sprintf("unexpected token at line %d, column %d", e.Pos.Line, e.Pos.Column)
	}
}

// Parser consumes a flat token slice (always EOF-terminated) and produces
// a Program.
type Parser struct {
	tokens []token.Token
	pos    int
}

// New constructs a Parser over a token slice produced by the lexer.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse runs the lexer to completion and then parses the resulting token
// stream into a Program.
func Parse(source string, lex func(string) ([]token.Token, error)) (*ast.Program, error) {
	tokens, err := lex(source)
	if err != nil {
		return nil, err
	}
	return New(tokens).ParseProgram()
}

func (p *Parser) cur() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) somethingWrong() error {
	if p.cur().Kind == token.EOF {
		return &Error{Kind: UnexpectedEOF, Pos: p.cur().Pos}
	}
	return &Error{Kind: SomethingWentWrong, Pos: p.cur().Pos}
}

func (p *Parser) unimplemented(label string) error {
	return &Error{Kind: Unimplemented, Pos: p.cur().Pos, Label: label}
}

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if p.cur().Kind != k {
		return token.Token{}, p.somethingWrong()
	}
	return p.advance(), nil
}

func (p *Parser) expectIdent() (string, error) {
	if p.cur().Kind != token.IDENT {
		return "", p.somethingWrong()
	}
	return p.advance().Literal, nil
}

// ParseProgram parses statements until EOF.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	var stmts []ast.Statement
	for p.cur().Kind != token.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return &ast.Program{Statements: stmts}, nil
}

// parseBody parses statements until the current token's kind is one of
// stop, used for loop/if bodies whose closing keyword is not consumed by
// the body parse itself.
func (p *Parser) parseBody(stop ...token.Kind) ([]ast.Statement, error) {
	var stmts []ast.Statement
	for {
		cur := p.cur().Kind
		if cur == token.EOF {
			return nil, &Error{Kind: UnexpectedEOF, Pos: p.cur().Pos}
		}
		for _, k := range stop {
			if cur == k {
				return stmts, nil
			}
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	pos := p.cur().Pos

	switch p.cur().Kind {
	case token.PRINT_KW:
		p.advance()
		return ast.Statement{Pos: pos, StmtKind: ast.StmtPrint}, nil
	case token.FLUSH_KW:
		p.advance()
		return ast.Statement{Pos: pos, StmtKind: ast.StmtFlush}, nil
	case token.BREAK_KW:
		p.advance()
		return ast.Statement{Pos: pos, StmtKind: ast.StmtBreak}, nil
	case token.CONTINUE_KW:
		p.advance()
		return ast.Statement{Pos: pos, StmtKind: ast.StmtContinue}, nil

	case token.DECLARE_MANY, token.OBSERVE_MANY:
		return p.parseDeclareOrDefine(pos)
	case token.HAS_MARKER:
		return p.parseInitDefine(pos)
	case token.FORMER_TIME:
		return p.parseAssign(pos)
	case token.FOR_COUNT_START:
		return p.parseForCount(pos)
	case token.LOOP_FOREVER:
		return p.parseLoop(pos)
	case token.FOR_ARRAY_START:
		return p.parseForArr(pos)
	case token.IF_START:
		return p.parseIf(pos)
	case token.OP_ADD, token.OP_SUB, token.OP_MUL:
		return p.parseArithBinary(pos)
	case token.OP_NEG:
		return p.parseArithUnary(pos)
	case token.OP_DIV:
		return p.parseDiv(pos)
	case token.FU2_MARKER:
		return p.parseReferenceOrBooleanAlgebra(pos)
	case token.NAME_THIS:
		return p.parseNameMulti(pos)
	case token.ARRAY_FILL_START:
		return p.parseArrayFill(pos)
	case token.ARRAY_CAT_START:
		return p.parseArrayCat(pos)
	default:
		return ast.Statement{}, p.somethingWrong()
	}
}

func (p *Parser) parseTypeKeyword() (ast.ValueType, error) {
	switch p.cur().Kind {
	case token.TYPE_NUMBER:
		p.advance()
		return ast.TypeNumber, nil
	case token.TYPE_LIST:
		p.advance()
		return ast.TypeList, nil
	case token.TYPE_STRING:
		p.advance()
		return ast.TypeString, nil
	case token.TYPE_BOOLEAN:
		p.advance()
		return ast.TypeBoolean, nil
	default:
		return 0, p.somethingWrong()
	}
}

func (p *Parser) parsePreposition() (ast.Preposition, error) {
	switch p.cur().Kind {
	case token.PREP_YI:
		p.advance()
		return ast.PrepYi, nil
	case token.PREP_YU2:
		p.advance()
		return ast.PrepYu2, nil
	default:
		return 0, p.somethingWrong()
	}
}

func cmpOpFromToken(k token.Kind) (ast.CmpOp, bool) {
	switch k {
	case token.CMP_EQ:
		return ast.CmpEq, true
	case token.CMP_NE:
		return ast.CmpNe, true
	case token.CMP_LE:
		return ast.CmpLe, true
	case token.CMP_GE:
		return ast.CmpGe, true
	case token.CMP_GT:
		return ast.CmpGt, true
	case token.CMP_LT:
		return ast.CmpLt, true
	default:
		return 0, false
	}
}

// interpretIntNum converts an INT_NUM token's raw keyword run into a
// signed 64-bit integer, accepting exactly the sub-grammar documented in
// §4.2 (grounded on the original implementation's interpret_intnum in
// original_source/src/parse/mod.rs). Anything outside this grammar is
// rejected; the caller turns that into a fatal Unimplemented abort.
func interpretIntNum(s []rune) (int64, bool) {
	digit := func(r rune) (int64, bool) {
		switch r {
		case '一':
			return 1, true
		case '二':
			return 2, true
		case '三':
			return 3, true
		case '四':
			return 4, true
		case '五':
			return 5, true
		case '六':
			return 6, true
		case '七':
			return 7, true
		case '八':
			return 8, true
		case '九':
			return 9, true
		default:
			return 0, false
		}
	}

	switch {
	case len(s) == 1 && s[0] == '零':
		return 0, true
	case len(s) == 1:
		if d, ok := digit(s[0]); ok {
			return d, true
		}
	}

	// ten series: 十 | d十 | 十d | d十e
	if len(s) == 1 && s[0] == '十' {
		return 10, true
	}
	if len(s) == 2 && s[1] == '十' {
		if d, ok := digit(s[0]); ok {
			return 10 * d, true
		}
	}
	if len(s) == 2 && s[0] == '十' {
		if d, ok := digit(s[1]); ok {
			return 10 + d, true
		}
	}
	if len(s) == 3 && s[1] == '十' {
		d, ok1 := digit(s[0])
		e, ok2 := digit(s[2])
		if ok1 && ok2 {
			return 10*d + e, true
		}
	}

	// hundred series: 百 | c百 | c百d十 | c百十e | c百d十e
	if len(s) == 1 && s[0] == '百' {
		return 100, true
	}
	if len(s) == 2 && s[1] == '百' {
		if c, ok := digit(s[0]); ok {
			return 100 * c, true
		}
	}
	if len(s) == 4 && s[1] == '百' && s[3] == '十' {
		c, ok1 := digit(s[0])
		d, ok2 := digit(s[2])
		if ok1 && ok2 {
			return 100*c + 10*d, true
		}
	}
	if len(s) == 4 && s[1] == '百' && s[2] == '十' {
		c, ok1 := digit(s[0])
		e, ok2 := digit(s[3])
		if ok1 && ok2 {
			return 100*c + 10 + e, true
		}
	}
	if len(s) == 5 && s[1] == '百' && s[3] == '十' {
		c, ok1 := digit(s[0])
		d, ok2 := digit(s[2])
		e, ok3 := digit(s[4])
		if ok1 && ok2 && ok3 {
			return 100*c + 10*d + e, true
		}
	}

	// thousand: bare 千 → 1000; full b千c百d十e
	if len(s) == 1 && s[0] == '千' {
		return 1000, true
	}
	if len(s) == 7 && s[1] == '千' && s[3] == '百' && s[5] == '十' {
		b, ok1 := digit(s[0])
		c, ok2 := digit(s[2])
		d, ok3 := digit(s[4])
		e, ok4 := digit(s[6])
		if ok1 && ok2 && ok3 && ok4 {
			return 1000*b + 100*c + 10*d + e, true
		}
	}

	// ten-thousand: full a萬b千c百d十e
	if len(s) == 9 && s[1] == '萬' && s[3] == '千' && s[5] == '百' && s[7] == '十' {
		a, ok1 := digit(s[0])
		b, ok2 := digit(s[2])
		c, ok3 := digit(s[4])
		d, ok4 := digit(s[6])
		e, ok5 := digit(s[8])
		if ok1 && ok2 && ok3 && ok4 && ok5 {
			return 10000*a + 1000*b + 100*c + 10*d + e, true
		}
	}

	return 0, false
}

func (p *Parser) parseIntNumToken() (int64, error) {
	if p.cur().Kind != token.INT_NUM {
		return 0, p.somethingWrong()
	}
	n, ok := interpretIntNum([]rune(p.cur().Literal))
	if !ok {
		return 0, p.unimplemented("parsing integer")
	}
	p.advance()
	return n, nil
}

func (p *Parser) parseData() (ast.Data, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.STRING:
		p.advance()
		return ast.Data{Kind: ast.DataString, Str: tok.Literal}, nil
	case token.BOOL_TRUE:
		p.advance()
		return ast.Data{Kind: ast.DataBool, Bool: true}, nil
	case token.BOOL_FALSE:
		p.advance()
		return ast.Data{Kind: ast.DataBool, Bool: false}, nil
	case token.INT_NUM:
		n, err := p.parseIntNumToken()
		if err != nil {
			return ast.Data{}, err
		}
		return ast.Data{Kind: ast.DataInt, Int: n}, nil
	case token.IDENT:
		p.advance()
		return ast.Data{Kind: ast.DataIdent, Ident: tok.Literal}, nil
	default:
		return ast.Data{}, p.somethingWrong()
	}
}

func (p *Parser) parseDataOrPronoun() (ast.DataOrPronoun, error) {
	if p.cur().Kind == token.PRONOUN {
		p.advance()
		return ast.DataOrPronoun{IsPronoun: true}, nil
	}
	d, err := p.parseData()
	if err != nil {
		return ast.DataOrPronoun{}, err
	}
	return ast.DataOrPronoun{Data: d}, nil
}

func (p *Parser) parseIdentOrPronoun() (ast.IdentOrPronoun, error) {
	if p.cur().Kind == token.PRONOUN {
		p.advance()
		return ast.IdentOrPronoun{IsPronoun: true}, nil
	}
	ident, err := p.expectIdent()
	if err != nil {
		return ast.IdentOrPronoun{}, err
	}
	return ast.IdentOrPronoun{Ident: ident}, nil
}

func (p *Parser) parseDeclareOrDefine(pos token.Position) (ast.Statement, error) {
	p.advance() // 吾有 / 吾嘗觀

	count, err := p.parseIntNumToken()
	if err != nil {
		return ast.Statement{}, err
	}
	if count < 1 {
		return ast.Statement{}, &Error{Kind: InvalidVariableCount, Pos: pos}
	}

	typ, err := p.parseTypeKeyword()
	if err != nil {
		return ast.Statement{}, err
	}

	var data []ast.Data
	for p.cur().Kind == token.NAME_PARTICLE {
		p.advance()
		d, err := p.parseData()
		if err != nil {
			return ast.Statement{}, err
		}
		data = append(data, d)
	}

	decl := ast.DeclareStmt{Count: int(count), Type: typ, Data: data}

	if p.cur().Kind == token.NAME_THIS {
		p.advance()
		var idents []string
		for p.cur().Kind == token.NAME_PARTICLE {
			p.advance()
			ident, err := p.expectIdent()
			if err != nil {
				return ast.Statement{}, err
			}
			idents = append(idents, ident)
		}
		return ast.Statement{Pos: pos, StmtKind: ast.StmtDefine, Define: &ast.DefineStmt{
			Declare: decl, Idents: idents,
		}}, nil
	}

	return ast.Statement{Pos: pos, StmtKind: ast.StmtDeclare, Declare: &decl}, nil
}

func (p *Parser) parseInitDefine(pos token.Position) (ast.Statement, error) {
	p.advance() // 有 / 今有

	typ, err := p.parseTypeKeyword()
	if err != nil {
		return ast.Statement{}, err
	}
	data, err := p.parseData()
	if err != nil {
		return ast.Statement{}, err
	}
	// The name is grammatically optional in the source-language spec, but
	// the original implementation panics at runtime when it is absent
	// (§9); this compiler keeps the name obligatory.
	if _, err := p.expect(token.NAME_THIS); err != nil {
		return ast.Statement{}, err
	}
	if _, err := p.expect(token.NAME_PARTICLE); err != nil {
		return ast.Statement{}, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return ast.Statement{}, err
	}
	return ast.Statement{Pos: pos, StmtKind: ast.StmtInitDefine, InitDefine: &ast.InitDefineStmt{
		Type: typ, Data: data, Name: name,
	}}, nil
}

// parseValueSuffix consumes an optional "之 SUFFIX" and folds it into base.
// Only the INT / IDENT / 長 suffix forms have a representable Rvalue
// shape; a STRING suffix is lexically valid but semantically
// uninterpreted in the source compiler this was ported from, so it is
// kept as a fatal unimplemented abort rather than an invented behavior
// (§9: "do not infer intent").
func (p *Parser) parseValueSuffix(base ast.DataOrPronoun) (ast.Rvalue, error) {
	switch p.cur().Kind {
	case token.INT_NUM:
		n, err := p.parseIntNumToken()
		if err != nil {
			return ast.Rvalue{}, err
		}
		return ast.Rvalue{Kind: ast.RvalueIndex, Data: base, Index: n}, nil
	case token.IDENT:
		ident := p.advance().Literal
		return ast.Rvalue{Kind: ast.RvalueIndexByIdent, Data: base, IndexIdent: ident}, nil
	case token.SUFFIX_LEN:
		p.advance()
		return ast.Rvalue{Kind: ast.RvalueLength, Data: base}, nil
	case token.STRING:
		return ast.Rvalue{}, p.unimplemented("string suffix after 之")
	default:
		return ast.Rvalue{}, p.somethingWrong()
	}
}

func (p *Parser) parseAssign(pos token.Position) (ast.Statement, error) {
	p.advance() // 昔之
	ident, err := p.expectIdent()
	if err != nil {
		return ast.Statement{}, err
	}
	lvalue := ast.Lvalue{Kind: ast.LvalueSimple, Ident: ident}
	if p.cur().Kind == token.IN_PARTICLE {
		p.advance()
		switch p.cur().Kind {
		case token.INT_NUM:
			n, err := p.parseIntNumToken()
			if err != nil {
				return ast.Statement{}, err
			}
			lvalue = ast.Lvalue{Kind: ast.LvalueIndex, Ident: ident, Index: n}
		case token.IDENT:
			idxIdent := p.advance().Literal
			lvalue = ast.Lvalue{Kind: ast.LvalueIndexByIdent, Ident: ident, IndexIdent: idxIdent}
		default:
			return ast.Statement{}, p.somethingWrong()
		}
	}

	if _, err := p.expect(token.TERMINATOR); err != nil {
		return ast.Statement{}, err
	}

	if p.cur().Kind == token.NO_LONGER {
		return ast.Statement{}, p.unimplemented("今不復存矣 assign branch")
	}
	if _, err := p.expect(token.NOW); err != nil {
		return ast.Statement{}, err
	}

	rv, err := p.parseDataOrPronoun()
	if err != nil {
		return ast.Statement{}, err
	}
	rvalue := ast.Rvalue{Kind: ast.RvalueSimple, Data: rv}
	if p.cur().Kind == token.IN_PARTICLE {
		p.advance()
		rvalue, err = p.parseValueSuffix(rv)
		if err != nil {
			return ast.Statement{}, err
		}
	}

	if _, err := p.expect(token.IS_THIS); err != nil {
		return ast.Statement{}, err
	}
	return ast.Statement{Pos: pos, StmtKind: ast.StmtAssign, Assign: &ast.AssignStmt{
		Lvalue: lvalue, Rvalue: rvalue,
	}}, nil
}

var loopEnd = []token.Kind{token.FOR_LOOP_END, token.ALSO_END}

func (p *Parser) parseForCount(pos token.Position) (ast.Statement, error) {
	p.advance() // 為是

	switch p.cur().Kind {
	case token.INT_NUM:
		n, err := p.parseIntNumToken()
		if err != nil {
			return ast.Statement{}, err
		}
		if _, err := p.expect(token.LOOP_ROUNDS); err != nil {
			return ast.Statement{}, err
		}
		body, err := p.parseBody(loopEnd...)
		if err != nil {
			return ast.Statement{}, err
		}
		p.advance() // consume 云云/也
		return ast.Statement{Pos: pos, StmtKind: ast.StmtForEnum, ForEnum: &ast.ForEnumStmt{
			Count: n, Body: body,
		}}, nil

	case token.PRONOUN, token.IDENT:
		ident, err := p.parseIdentOrPronoun()
		if err != nil {
			return ast.Statement{}, err
		}
		if _, err := p.expect(token.LOOP_ROUNDS); err != nil {
			return ast.Statement{}, err
		}
		body, err := p.parseBody(loopEnd...)
		if err != nil {
			return ast.Statement{}, err
		}
		p.advance()
		return ast.Statement{Pos: pos, StmtKind: ast.StmtForEnumIdent, ForEnumIdent: &ast.ForEnumIdentStmt{
			Ident: ident, Body: body,
		}}, nil

	default:
		return ast.Statement{}, p.somethingWrong()
	}
}

func (p *Parser) parseLoop(pos token.Position) (ast.Statement, error) {
	p.advance() // 恆為是
	body, err := p.parseBody(loopEnd...)
	if err != nil {
		return ast.Statement{}, err
	}
	p.advance()
	return ast.Statement{Pos: pos, StmtKind: ast.StmtLoop, Loop: &ast.LoopStmt{Body: body}}, nil
}

func (p *Parser) parseForArr(pos token.Position) (ast.Statement, error) {
	p.advance() // 凡
	list, err := p.expectIdent()
	if err != nil {
		return ast.Statement{}, err
	}
	if _, err := p.expect(token.FOR_ARRAY_IN); err != nil {
		return ast.Statement{}, err
	}
	elem, err := p.expectIdent()
	if err != nil {
		return ast.Statement{}, err
	}
	body, err := p.parseBody(loopEnd...)
	if err != nil {
		return ast.Statement{}, err
	}
	p.advance()
	return ast.Statement{Pos: pos, StmtKind: ast.StmtForArr, ForArr: &ast.ForArrStmt{
		List: list, Elem: elem, Body: body,
	}}, nil
}

func (p *Parser) parseUnaryIfExpr() (ast.UnaryIfExpr, error) {
	d, err := p.parseDataOrPronoun()
	if err != nil {
		return ast.UnaryIfExpr{}, err
	}
	if p.cur().Kind == token.IN_PARTICLE {
		p.advance()
		rv, err := p.parseValueSuffix(d)
		if err != nil {
			return ast.UnaryIfExpr{}, err
		}
		return ast.UnaryIfExpr{Kind: ast.IfExprComplex, Complex: rv}, nil
	}
	return ast.UnaryIfExpr{Kind: ast.IfExprSimple, Simple: d}, nil
}

func (p *Parser) parseIfCond() (ast.IfCond, error) {
	switch p.cur().Kind {
	case token.PRON_TRUTH:
		p.advance()
		return ast.IfCond{Kind: ast.CondUnary, Left: ast.UnaryIfExpr{
			Kind: ast.IfExprSimple, Simple: ast.DataOrPronoun{IsPronoun: true},
		}}, nil
	case token.PRON_FALSE:
		p.advance()
		return ast.IfCond{Kind: ast.CondNotPronoun}, nil
	}

	left, err := p.parseUnaryIfExpr()
	if err != nil {
		return ast.IfCond{}, err
	}
	if op, ok := cmpOpFromToken(p.cur().Kind); ok {
		p.advance()
		right, err := p.parseUnaryIfExpr()
		if err != nil {
			return ast.IfCond{}, err
		}
		return ast.IfCond{Kind: ast.CondBinary, Left: left, Op: op, Right: right}, nil
	}
	return ast.IfCond{Kind: ast.CondUnary, Left: left}, nil
}

var ifBranchEnd = []token.Kind{token.IF_ELSEIF, token.IF_ELSE, token.FOR_LOOP_END, token.ALSO_END}

func (p *Parser) parseIf(pos token.Position) (ast.Statement, error) {
	p.advance() // 若
	cond, err := p.parseIfCond()
	if err != nil {
		return ast.Statement{}, err
	}
	if _, err := p.expect(token.TERMINATOR); err != nil {
		return ast.Statement{}, err
	}
	body, err := p.parseBody(ifBranchEnd...)
	if err != nil {
		return ast.Statement{}, err
	}

	var elseIfs []ast.IfBranch
	for p.cur().Kind == token.IF_ELSEIF {
		p.advance()
		c, err := p.parseIfCond()
		if err != nil {
			return ast.Statement{}, err
		}
		if _, err := p.expect(token.TERMINATOR); err != nil {
			return ast.Statement{}, err
		}
		b, err := p.parseBody(ifBranchEnd...)
		if err != nil {
			return ast.Statement{}, err
		}
		elseIfs = append(elseIfs, ast.IfBranch{Cond: c, Body: b})
	}

	hasElse := false
	var elseBody []ast.Statement
	if p.cur().Kind == token.IF_ELSE {
		p.advance()
		hasElse = true
		elseBody, err = p.parseBody(loopEnd...)
		if err != nil {
			return ast.Statement{}, err
		}
	}

	p.advance() // consume 云云/也
	return ast.Statement{Pos: pos, StmtKind: ast.StmtIf, If: &ast.IfStmt{
		If:       ast.IfBranch{Cond: cond, Body: body},
		ElseIfs:  elseIfs,
		HasElse:  hasElse,
		ElseBody: elseBody,
	}}, nil
}

func (p *Parser) parseArithBinary(pos token.Position) (ast.Statement, error) {
	op := p.advance().Kind
	a, err := p.parseDataOrPronoun()
	if err != nil {
		return ast.Statement{}, err
	}
	prep, err := p.parsePreposition()
	if err != nil {
		return ast.Statement{}, err
	}
	b, err := p.parseDataOrPronoun()
	if err != nil {
		return ast.Statement{}, err
	}
	return ast.Statement{Pos: pos, StmtKind: ast.StmtMath, Math: &ast.MathStmt{
		Kind: ast.MathArithBinary, Op: op, A: a, Prep: prep, B: b,
	}}, nil
}

func (p *Parser) parseArithUnary(pos token.Position) (ast.Statement, error) {
	p.advance() // 變
	x, err := p.parseDataOrPronoun()
	if err != nil {
		return ast.Statement{}, err
	}
	return ast.Statement{Pos: pos, StmtKind: ast.StmtMath, Math: &ast.MathStmt{
		Kind: ast.MathArithUnary, X: x,
	}}, nil
}

func (p *Parser) parseDiv(pos token.Position) (ast.Statement, error) {
	p.advance() // 除
	a, err := p.parseDataOrPronoun()
	if err != nil {
		return ast.Statement{}, err
	}
	prep, err := p.parsePreposition()
	if err != nil {
		return ast.Statement{}, err
	}
	b, err := p.parseDataOrPronoun()
	if err != nil {
		return ast.Statement{}, err
	}
	divMod := ast.DivOnly
	if p.cur().Kind == token.DIV_REMAINDER_MOD {
		p.advance()
		divMod = ast.DivWithMod
	}
	return ast.Statement{Pos: pos, StmtKind: ast.StmtMath, Math: &ast.MathStmt{
		Kind: ast.MathDiv, Op: token.OP_DIV, A: a, Prep: prep, B: b, DivMod: divMod,
	}}, nil
}

func isLogicOp(k token.Kind) bool { return k == token.LOGIC_AND || k == token.LOGIC_OR }

func (p *Parser) parseReferenceOrBooleanAlgebra(pos token.Position) (ast.Statement, error) {
	p.advance() // 夫

	if p.cur().Kind == token.IDENT && p.peekAt(1).Kind == token.IDENT && isLogicOp(p.peekAt(2).Kind) {
		id1 := p.advance().Literal
		id2 := p.advance().Literal
		logicKind := p.advance().Kind
		logicOp := ast.LogicAnd
		if logicKind == token.LOGIC_OR {
			logicOp = ast.LogicOr
		}
		return ast.Statement{Pos: pos, StmtKind: ast.StmtMath, Math: &ast.MathStmt{
			Kind: ast.MathBooleanAlgebra,
			Id1:  ast.IdentOrPronoun{Ident: id1}, Id2: ast.IdentOrPronoun{Ident: id2},
			LogicOp: logicOp,
		}}, nil
	}

	d, err := p.parseDataOrPronoun()
	if err != nil {
		return ast.Statement{}, err
	}

	if p.cur().Kind != token.IN_PARTICLE {
		return ast.Statement{Pos: pos, StmtKind: ast.StmtReference, Reference: &ast.ReferenceStmt{
			Rvalue: ast.Rvalue{Kind: ast.RvalueSimple, Data: d},
		}}, nil
	}
	p.advance() // 之

	if p.cur().Kind == token.PRON_REST {
		p.advance()
		if d.IsPronoun {
			return ast.Statement{}, p.somethingWrong()
		}
		return ast.Statement{Pos: pos, StmtKind: ast.StmtReferenceWhatIsLeft, ReferenceWhatIsLeft: &ast.ReferenceWhatIsLeftStmt{
			Data: d.Data,
		}}, nil
	}

	rv, err := p.parseValueSuffix(d)
	if err != nil {
		return ast.Statement{}, err
	}
	return ast.Statement{Pos: pos, StmtKind: ast.StmtReference, Reference: &ast.ReferenceStmt{Rvalue: rv}}, nil
}

func (p *Parser) parseNameMulti(pos token.Position) (ast.Statement, error) {
	p.advance() // 名之
	var idents []string
	for p.cur().Kind == token.NAME_PARTICLE {
		p.advance()
		ident, err := p.expectIdent()
		if err != nil {
			return ast.Statement{}, err
		}
		idents = append(idents, ident)
	}
	if len(idents) == 0 {
		return ast.Statement{}, p.somethingWrong()
	}
	return ast.Statement{Pos: pos, StmtKind: ast.StmtNameMulti, NameMulti: &ast.NameMultiStmt{Idents: idents}}, nil
}

func (p *Parser) parseArrayFill(pos token.Position) (ast.Statement, error) {
	p.advance() // 充
	target, err := p.parseIdentOrPronoun()
	if err != nil {
		return ast.Statement{}, err
	}
	var elems []ast.Data
	for p.cur().Kind == token.PREP_YI {
		p.advance()
		d, err := p.parseData()
		if err != nil {
			return ast.Statement{}, err
		}
		elems = append(elems, d)
	}
	if len(elems) == 0 {
		return ast.Statement{}, p.somethingWrong()
	}
	return ast.Statement{Pos: pos, StmtKind: ast.StmtArrayFill, ArrayFill: &ast.ArrayFillStmt{
		Target: target, Elems: elems,
	}}, nil
}

func (p *Parser) parseArrayCat(pos token.Position) (ast.Statement, error) {
	p.advance() // 銜
	target, err := p.parseIdentOrPronoun()
	if err != nil {
		return ast.Statement{}, err
	}
	var elems []string
	for p.cur().Kind == token.PREP_YI {
		p.advance()
		ident, err := p.expectIdent()
		if err != nil {
			return ast.Statement{}, err
		}
		elems = append(elems, ident)
	}
	if len(elems) == 0 {
		return ast.Statement{}, p.somethingWrong()
	}
	return ast.Statement{Pos: pos, StmtKind: ast.StmtArrayCat, ArrayCat: &ast.ArrayCatStmt{
		Target: target, Elems: elems,
	}}, nil
}
