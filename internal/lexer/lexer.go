// Package lexer turns wenyan source text into a flat token stream.
//
// The lexer scans rune-by-rune rather than byte-by-byte: the source
// alphabet is CJK-dense, and every multi-character keyword in this
// language is a run of whole runes, so rune-indexed lookahead keeps the
// disambiguation logic direct instead of re-deriving rune boundaries from
// byte offsets on every peek.
package lexer

import (
	"fmt"

	"github.com/wenyan-lang/wyc/pkg/token"
)

// ErrorKind is the closed set of fatal lexical errors.
type ErrorKind int

const (
	UnexpectedCharAfter ErrorKind = iota
	UnexpectedEOFAfter
	NonterminatedIdentifier
	EmptyIdentifier
	NonterminatedStringLiteral
)

// Error is a fatal lexical error. Lexing stops at the first one raised;
// there is no recovery (§7).
type Error struct {
	Kind ErrorKind
	Pos  token.Position
	Seen rune // the offending rune, for UnexpectedCharAfter
	Want rune // the rune the offending character or end of input followed, when known
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnexpectedCharAfter:
		return fmt.Sprintf("unexpected character %q after %q", e.Seen, e.Want)
	case UnexpectedEOFAfter:
		return fmt.Sprintf("unexpected end of input after %q", e.Want)
	case NonterminatedIdentifier:
		return "identifier is missing its closing 」"
	case EmptyIdentifier:
		return "identifier between 「」 must not be empty"
	case NonterminatedStringLiteral:
		return "string literal is missing its closing 」」"
	default:
		return "lexical error"
	}
}

// Lexer scans a rune slice into tokens.
type Lexer struct {
	input  []rune
	pos    int // index of the next unread rune
	line   int
	column int
}

// New constructs a Lexer over source text.
func New(source string) *Lexer {
	return &Lexer{
		input:  []rune(source),
		pos:    0,
		line:   1,
		column: 1,
	}
}

// All scans the whole input and returns the token slice ending in an EOF
// token, or the first lexical error encountered.
func All(source string) ([]token.Token, error) {
	l := New(source)
	var toks []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

func (l *Lexer) atEOF() bool { return l.pos >= len(l.input) }

func (l *Lexer) peek(n int) (rune, bool) {
	idx := l.pos + n
	if idx < 0 || idx >= len(l.input) {
		return 0, false
	}
	return l.input[idx], true
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.column, Offset: l.pos}
}

// advance consumes and returns the next rune, tracking line/column.
func (l *Lexer) advance() rune {
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

// skipTrivia skips ASCII/full-width whitespace and the sentence
// punctuators 。 and 、, none of which carry semantic weight (§6).
func (l *Lexer) skipTrivia() {
	for !l.atEOF() {
		ch, _ := l.peek(0)
		switch ch {
		case ' ', '\t', '\r', '\n', '　', '。', '、':
			l.advance()
		default:
			return
		}
	}
}

// expectSeq consumes a fixed continuation sequence after the first rune of
// a compound keyword has already been consumed. On mismatch it raises
// UnexpectedCharAfter (or UnexpectedEOFAfter at end of input).
func (l *Lexer) expectSeq(after rune, seq []rune) error {
	for _, want := range seq {
		ch, ok := l.peek(0)
		if !ok {
			return &Error{Kind: UnexpectedEOFAfter, Pos: l.currentPos(), Want: after}
		}
		if ch != want {
			return &Error{Kind: UnexpectedCharAfter, Pos: l.currentPos(), Seen: ch, Want: after}
		}
		l.advance()
		after = want
	}
	return nil
}

var digitKeywords = map[rune]bool{
	'零': true, '一': true, '二': true, '三': true, '四': true,
	'五': true, '六': true, '七': true, '八': true, '九': true,
}

var magnitudeKeywords = map[rune]bool{
	'十': true, '百': true, '千': true, '萬': true, '億': true, '兆': true,
	'京': true, '垓': true, '秭': true, '穰': true, '溝': true, '澗': true,
	'正': true, '載': true, '極': true,
}

func isNumeralRune(ch rune) bool { return digitKeywords[ch] || magnitudeKeywords[ch] }

// NextToken scans and returns the next token, or the first lexical error.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipTrivia()
	pos := l.currentPos()

	if l.atEOF() {
		return token.Token{Kind: token.EOF, Pos: pos}, nil
	}

	ch := l.advance()

	switch {
	case isNumeralRune(ch):
		return l.readNumeral(ch, pos)
	case ch == '「':
		return l.readIdentOrString(pos)
	}

	switch ch {
	case '吾':
		if n, ok := l.peek(0); ok && n == '有' {
			l.advance()
			return token.Token{Kind: token.DECLARE_MANY, Literal: "吾有", Pos: pos}, nil
		}
		if err := l.expectSeq('吾', []rune{'嘗', '觀'}); err != nil {
			return token.Token{}, err
		}
		return token.Token{Kind: token.OBSERVE_MANY, Literal: "吾嘗觀", Pos: pos}, nil

	case '為':
		if err := l.expectSeq('為', []rune{'是'}); err != nil {
			return token.Token{}, err
		}
		return token.Token{Kind: token.FOR_COUNT_START, Literal: "為是", Pos: pos}, nil

	case '恆':
		if err := l.expectSeq('恆', []rune{'為', '是'}); err != nil {
			return token.Token{}, err
		}
		return token.Token{Kind: token.LOOP_FOREVER, Literal: "恆為是", Pos: pos}, nil

	case '昔':
		if err := l.expectSeq('昔', []rune{'之'}); err != nil {
			return token.Token{}, err
		}
		return token.Token{Kind: token.FORMER_TIME, Literal: "昔之", Pos: pos}, nil

	case '云':
		if err := l.expectSeq('云', []rune{'云'}); err != nil {
			return token.Token{}, err
		}
		return token.Token{Kind: token.FOR_LOOP_END, Literal: "云云", Pos: pos}, nil

	case '書':
		if err := l.expectSeq('書', []rune{'之'}); err != nil {
			return token.Token{}, err
		}
		return token.Token{Kind: token.PRINT_KW, Literal: "書之", Pos: pos}, nil

	case '名':
		if err := l.expectSeq('名', []rune{'之'}); err != nil {
			return token.Token{}, err
		}
		return token.Token{Kind: token.NAME_THIS, Literal: "名之", Pos: pos}, nil

	case '今':
		if n1, ok := l.peek(0); ok && n1 == '有' {
			l.advance()
			return token.Token{Kind: token.HAS_MARKER, Literal: "今有", Pos: pos}, nil
		}
		if n1, ok := l.peek(0); ok && n1 == '不' {
			if err := l.expectSeq('今', []rune{'不', '復', '存', '矣'}); err != nil {
				return token.Token{}, err
			}
			return token.Token{Kind: token.NO_LONGER, Literal: "今不復存矣", Pos: pos}, nil
		}
		return token.Token{Kind: token.NOW, Literal: "今", Pos: pos}, nil

	case '其':
		if n1, ok := l.peek(0); ok && n1 == '餘' {
			l.advance()
			return token.Token{Kind: token.PRON_REST, Literal: "其餘", Pos: pos}, nil
		}
		if n1, ok := l.peek(0); ok && n1 == '然' {
			l.advance()
			return token.Token{Kind: token.PRON_TRUTH, Literal: "其然", Pos: pos}, nil
		}
		if n1, ok := l.peek(0); ok && n1 == '不' {
			if n2, ok2 := l.peek(1); ok2 && n2 == '然' {
				l.advance()
				l.advance()
				return token.Token{Kind: token.PRON_FALSE, Literal: "其不然", Pos: pos}, nil
			}
		}
		if n1, ok := l.peek(0); ok && n1 == '物' {
			if err := l.expectSeq('其', []rune{'物', '如', '是'}); err != nil {
				return token.Token{}, err
			}
			return token.Token{Kind: token.PRON_SHAPE, Literal: "其物如是", Pos: pos}, nil
		}
		return token.Token{Kind: token.PRONOUN, Literal: "其", Pos: pos}, nil

	case '是':
		if n1, ok := l.peek(0); ok && n1 == '矣' {
			l.advance()
			return token.Token{Kind: token.IS_THIS, Literal: "是矣", Pos: pos}, nil
		}
		if n1, ok := l.peek(0); ok && n1 == '謂' {
			l.advance()
			return token.Token{Kind: token.IS_CALLED, Literal: "是謂", Pos: pos}, nil
		}
		if n1, ok := l.peek(0); ok && n1 == '術' {
			if err := l.expectSeq('是', []rune{'術', '曰'}); err != nil {
				return token.Token{}, err
			}
			return token.Token{Kind: token.IS_A_SPELL, Literal: "是術曰", Pos: pos}, nil
		}
		return token.Token{}, &Error{Kind: UnexpectedCharAfter, Pos: l.currentPos(), Want: '是'}

	case '若':
		if n1, ok := l.peek(0); ok && n1 == '非' {
			l.advance()
			return token.Token{Kind: token.IF_ELSE, Literal: "若非", Pos: pos}, nil
		}
		return token.Token{Kind: token.IF_START, Literal: "若", Pos: pos}, nil

	case '或':
		if err := l.expectSeq('或', []rune{'若'}); err != nil {
			return token.Token{}, err
		}
		return token.Token{Kind: token.IF_ELSEIF, Literal: "或若", Pos: pos}, nil

	case '中':
		if n1, ok := l.peek(0); ok && n1 == '有' {
			if err := l.expectSeq('中', []rune{'有', '陽', '乎'}); err != nil {
				return token.Token{}, err
			}
			return token.Token{Kind: token.LOGIC_OR, Literal: "中有陽乎", Pos: pos}, nil
		}
		if n1, ok := l.peek(0); ok && n1 == '無' {
			if err := l.expectSeq('中', []rune{'無', '陰', '乎'}); err != nil {
				return token.Token{}, err
			}
			return token.Token{Kind: token.LOGIC_AND, Literal: "中無陰乎", Pos: pos}, nil
		}
		if err := l.expectSeq('中', []rune{'之'}); err != nil {
			return token.Token{}, err
		}
		return token.Token{Kind: token.FOR_ARRAY_IN, Literal: "中之", Pos: pos}, nil

	case '凡':
		return token.Token{Kind: token.FOR_ARRAY_START, Literal: "凡", Pos: pos}, nil

	case '乃':
		if err := l.expectSeq('乃', []rune{'止'}); err != nil {
			return token.Token{}, err
		}
		if n1, ok := l.peek(0); ok && n1 == '是' {
			if err := l.expectSeq('乃', []rune{'是', '遍'}); err != nil {
				return token.Token{}, err
			}
			return token.Token{Kind: token.CONTINUE_KW, Literal: "乃止是遍", Pos: pos}, nil
		}
		return token.Token{Kind: token.BREAK_KW, Literal: "乃止", Pos: pos}, nil

	case '遍':
		return token.Token{Kind: token.LOOP_ROUNDS, Literal: "遍", Pos: pos}, nil

	case '所':
		if err := l.expectSeq('所', []rune{'餘', '幾', '何'}); err != nil {
			return token.Token{}, err
		}
		return token.Token{Kind: token.DIV_REMAINDER_MOD, Literal: "所餘幾何", Pos: pos}, nil

	case '充':
		return token.Token{Kind: token.ARRAY_FILL_START, Literal: "充", Pos: pos}, nil

	case '銜':
		return token.Token{Kind: token.ARRAY_CAT_START, Literal: "銜", Pos: pos}, nil

	case '噫':
		return token.Token{Kind: token.FLUSH_KW, Literal: "噫", Pos: pos}, nil

	case '曰':
		return token.Token{Kind: token.NAME_PARTICLE, Literal: "曰", Pos: pos}, nil

	case '有':
		return token.Token{Kind: token.HAS_MARKER, Literal: "有", Pos: pos}, nil

	case '者':
		return token.Token{Kind: token.TERMINATOR, Literal: "者", Pos: pos}, nil

	case '也':
		return token.Token{Kind: token.ALSO_END, Literal: "也", Pos: pos}, nil

	case '夫':
		return token.Token{Kind: token.FU2_MARKER, Literal: "夫", Pos: pos}, nil

	case '長':
		return token.Token{Kind: token.SUFFIX_LEN, Literal: "長", Pos: pos}, nil

	case '之':
		// Context-sensitive per §4.1: 之書/之義 consume both runes; 之術也/
		// 之物也 consume the trilogy; otherwise 之 stands alone as the
		// possessive/index-suffix particle. The function-declaration
		// constructs these compounds belong to have no Statement variant
		// in this compiler, so they are recognized lexically (to avoid
		// misreading 之 as the bare particle mid keyword) and rejected by
		// the parser like any other out-of-grammar shape.
		if n1, ok := l.peek(0); ok && (n1 == '書' || n1 == '義') {
			l.advance()
			return token.Token{Kind: token.ILLEGAL, Literal: "之" + string(n1), Pos: pos}, nil
		}
		if n1, ok := l.peek(0); ok && n1 == '術' {
			if n2, ok2 := l.peek(1); ok2 && n2 == '也' {
				l.advance()
				l.advance()
				return token.Token{Kind: token.ILLEGAL, Literal: "之術也", Pos: pos}, nil
			}
		}
		if n1, ok := l.peek(0); ok && n1 == '物' {
			if n2, ok2 := l.peek(1); ok2 && n2 == '也' {
				l.advance()
				l.advance()
				return token.Token{Kind: token.ILLEGAL, Literal: "之物也", Pos: pos}, nil
			}
		}
		return token.Token{Kind: token.IN_PARTICLE, Literal: "之", Pos: pos}, nil

	case '加':
		return token.Token{Kind: token.OP_ADD, Literal: "加", Pos: pos}, nil
	case '減':
		return token.Token{Kind: token.OP_SUB, Literal: "減", Pos: pos}, nil
	case '乘':
		return token.Token{Kind: token.OP_MUL, Literal: "乘", Pos: pos}, nil
	case '除':
		return token.Token{Kind: token.OP_DIV, Literal: "除", Pos: pos}, nil
	case '變':
		return token.Token{Kind: token.OP_NEG, Literal: "變", Pos: pos}, nil

	case '等':
		if err := l.expectSeq('等', []rune{'於'}); err != nil {
			return token.Token{}, err
		}
		return token.Token{Kind: token.CMP_EQ, Literal: "等於", Pos: pos}, nil

	case '不':
		n1, ok := l.peek(0)
		if !ok {
			return token.Token{}, &Error{Kind: UnexpectedEOFAfter, Pos: l.currentPos(), Want: '不'}
		}
		switch n1 {
		case '等':
			if err := l.expectSeq('不', []rune{'等', '於'}); err != nil {
				return token.Token{}, err
			}
			return token.Token{Kind: token.CMP_NE, Literal: "不等於", Pos: pos}, nil
		case '大':
			if err := l.expectSeq('不', []rune{'大', '於'}); err != nil {
				return token.Token{}, err
			}
			return token.Token{Kind: token.CMP_LE, Literal: "不大於", Pos: pos}, nil
		case '小':
			if err := l.expectSeq('不', []rune{'小', '於'}); err != nil {
				return token.Token{}, err
			}
			return token.Token{Kind: token.CMP_GE, Literal: "不小於", Pos: pos}, nil
		default:
			return token.Token{}, &Error{Kind: UnexpectedCharAfter, Pos: l.currentPos(), Seen: n1, Want: '不'}
		}

	case '大':
		if err := l.expectSeq('大', []rune{'於'}); err != nil {
			return token.Token{}, err
		}
		return token.Token{Kind: token.CMP_GT, Literal: "大於", Pos: pos}, nil

	case '小':
		if err := l.expectSeq('小', []rune{'於'}); err != nil {
			return token.Token{}, err
		}
		return token.Token{Kind: token.CMP_LT, Literal: "小於", Pos: pos}, nil

	case '以':
		if n1, ok := l.peek(0); ok && n1 == '施' {
			l.advance()
			return token.Token{Kind: token.PREP_YU2, Literal: "以施", Pos: pos}, nil
		}
		return token.Token{Kind: token.PREP_YI, Literal: "以", Pos: pos}, nil

	case '於':
		return token.Token{Kind: token.PREP_YU2, Literal: "於", Pos: pos}, nil

	case '陽':
		return token.Token{Kind: token.BOOL_TRUE, Literal: "陽", Pos: pos}, nil
	case '陰':
		return token.Token{Kind: token.BOOL_FALSE, Literal: "陰", Pos: pos}, nil

	case '數':
		return token.Token{Kind: token.TYPE_NUMBER, Literal: "數", Pos: pos}, nil
	case '列':
		return token.Token{Kind: token.TYPE_LIST, Literal: "列", Pos: pos}, nil
	case '言':
		return token.Token{Kind: token.TYPE_STRING, Literal: "言", Pos: pos}, nil
	case '爻':
		return token.Token{Kind: token.TYPE_BOOLEAN, Literal: "爻", Pos: pos}, nil

	case '點': // decimal-point magnitude keyword: reserved (§1 Non-goals)
		return token.Token{Kind: token.FLOAT_MAGNITUDE, Literal: "點", Pos: pos}, nil
	}

	return token.Token{}, &Error{Kind: UnexpectedCharAfter, Pos: pos, Seen: ch}
}

// readNumeral greedily consumes the maximal contiguous run of digit and
// magnitude ideographs and emits a single INT_NUM token carrying the raw
// keyword sequence; interpretation into an int64 happens in the parser
// (§4.2), which alone knows the accepted sub-grammar.
func (l *Lexer) readNumeral(first rune, pos token.Position) (token.Token, error) {
	runes := []rune{first}
	for {
		ch, ok := l.peek(0)
		if !ok || !isNumeralRune(ch) {
			break
		}
		runes = append(runes, l.advance())
	}
	return token.Token{Kind: token.INT_NUM, Literal: string(runes), Pos: pos}, nil
}

// readIdentOrString handles the quote grammar: a bare 「…」 run is an
// identifier; an immediately-doubled 「「 promotes it to a string literal
// terminated by 」」.
func (l *Lexer) readIdentOrString(pos token.Position) (token.Token, error) {
	if n1, ok := l.peek(0); ok && n1 == '「' {
		l.advance()
		return l.readStringLiteral(pos)
	}
	return l.readIdentifier(pos)
}

func (l *Lexer) readIdentifier(pos token.Position) (token.Token, error) {
	var runes []rune
	for {
		ch, ok := l.peek(0)
		if !ok {
			return token.Token{}, &Error{Kind: NonterminatedIdentifier, Pos: l.currentPos()}
		}
		if ch == '」' {
			l.advance()
			break
		}
		runes = append(runes, l.advance())
	}
	if len(runes) == 0 {
		return token.Token{}, &Error{Kind: EmptyIdentifier, Pos: pos}
	}
	return token.Token{Kind: token.IDENT, Literal: string(runes), Pos: pos}, nil
}

func (l *Lexer) readStringLiteral(pos token.Position) (token.Token, error) {
	var runes []rune
	for {
		ch, ok := l.peek(0)
		if !ok {
			return token.Token{}, &Error{Kind: NonterminatedStringLiteral, Pos: l.currentPos()}
		}
		if ch == '」' {
			if n1, ok2 := l.peek(1); ok2 && n1 == '」' {
				l.advance()
				l.advance()
				break
			}
		}
		runes = append(runes, l.advance())
	}
	return token.Token{Kind: token.STRING, Literal: string(runes), Pos: pos}, nil
}
