// Package token defines the closed vocabulary of lexical tokens produced by
// the wenyan lexer and consumed by the parser.
package token

// Kind identifies the tag of a Token. The set is closed: every lexical
// category the language defines has exactly one Kind, and the parser
// switches on Kind rather than on literal text.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF

	// Literals and identifiers.
	IDENT     // 「name」
	STRING    // 「「text」」
	INT_NUM   // Chinese numeral run, e.g. 三十二
	BOOL_TRUE  // 陽
	BOOL_FALSE // 陰

	// Type keywords.
	TYPE_NUMBER  // 數
	TYPE_LIST    // 列
	TYPE_STRING  // 言
	TYPE_BOOLEAN // 爻

	// Prepositions.
	PREP_YI  // 以
	PREP_YU2 // 於

	// Arithmetic binary operators (statement-initial keywords).
	OP_ADD // 加
	OP_SUB // 減
	OP_MUL // 乘

	// Division is its own statement keyword, not a plain binary operator,
	// because it optionally carries a remainder clause (所餘幾何).
	OP_DIV          // 除
	DIV_REMAINDER_MOD // 所餘幾何 (trailing marker switching Div to Mod)

	OP_NEG // 變 (logical negation, "ArithUnary" in the AST)

	// Comparison operators.
	CMP_EQ // 等於
	CMP_NE // 不等於
	CMP_LE // 不大於
	CMP_GE // 不小於
	CMP_GT // 大於
	CMP_LT // 小於

	// Logical binary operators (over a list of identifiers).
	LOGIC_AND // 中無陰乎
	LOGIC_OR  // 中有陽乎

	// Declaration / naming idioms.
	DECLARE_MANY  // 吾有
	OBSERVE_MANY  // 吾嘗觀 (alias accepted by the lexer alongside 吾有)
	NAME_THIS     // 名之
	NAME_PARTICLE // 曰 (introduces one name or one literal in a list)
	HAS_MARKER    // 有 (InitDefine's "there-is")

	// Assignment.
	FORMER_TIME   // 昔之 ("once, there was ...")
	TERMINATOR    // 者 (statement-final particle, also closes If-condition)
	NOW           // 今 ("now it is ...")
	NO_LONGER     // 今不復存矣 ("now it no longer exists" — unimplemented branch)
	IS_THIS       // 是矣 (closes an Assign statement)

	// Loops.
	FOR_COUNT_START  // 為是
	LOOP_FOREVER     // 恆為是
	FOR_LOOP_END     // 云云
	ALSO_END         // 也 (alternate loop/if terminator)
	LOOP_ROUNDS      // 遍 (closes "為是 N 遍")
	FOR_ARRAY_START  // 凡
	FOR_ARRAY_IN     // 中之
	BREAK_KW         // 乃止
	CONTINUE_KW      // 乃止是遍

	// Conditionals.
	IF_START   // 若
	IF_ELSEIF  // 或若
	IF_ELSE    // 若非
	PRON_TRUTH // 其然 ("if it")
	PRON_FALSE // 其不然 ("if not it")

	// Pronoun / reference.
	PRONOUN     // 其 ("qi", the preceding anonymous value)
	PRON_REST   // 其餘 ("the rest of it")
	PRON_SHAPE  // 其物如是 (array-fill shorthand target marker)
	IN_PARTICLE // 之 (possessive / index-suffix introducer)
	SUFFIX_LEN  // 長 (index-suffix: length)
	FU2_MARKER  // 夫 (statement-initial reference/boolean-algebra marker)

	// Arrays.
	ARRAY_FILL_START // 充
	ARRAY_CAT_START  // 銜
	WITH_PARTICLE    // never emitted: 以 inside 充/銜 is lexed as PREP_YI

	// Misc statement keywords.
	PRINT_KW  // 書之
	FLUSH_KW  // 噫
	IS_CALLED // 是謂
	IS_A_SPELL // 是術曰

	// Punctuation absorbed as whitespace (never emitted as tokens, listed
	// for completeness of the closed set the lexer recognizes and skips).
	SENTENCE_END Kind = iota + 1000
	LIST_SEP

	// Float magnitude keyword: reserved, never interpreted (§1 Non-goals).
	FLOAT_MAGNITUDE
)

// Position is a 1-based line/column coordinate into the source text, plus
// the 0-based rune offset, used for diagnostics.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Token is one lexical unit: a Kind tag, its literal source text (the
// quoted contents for IDENT/STRING, the keyword or numeral runes for every
// other kind; empty only for EOF), and the position of its first rune.
type Token struct {
	Kind    Kind
	Literal string
	Pos     Position
}

var kindNames = map[Kind]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF",
	IDENT: "IDENT", STRING: "STRING", INT_NUM: "INT_NUM",
	BOOL_TRUE: "BOOL_TRUE", BOOL_FALSE: "BOOL_FALSE",
	TYPE_NUMBER: "TYPE_NUMBER", TYPE_LIST: "TYPE_LIST",
	TYPE_STRING: "TYPE_STRING", TYPE_BOOLEAN: "TYPE_BOOLEAN",
	PREP_YI: "PREP_YI", PREP_YU2: "PREP_YU2",
	OP_ADD: "OP_ADD", OP_SUB: "OP_SUB", OP_MUL: "OP_MUL", OP_DIV: "OP_DIV",
	DIV_REMAINDER_MOD: "DIV_REMAINDER_MOD",
	OP_NEG:            "OP_NEG",
	CMP_EQ: "CMP_EQ", CMP_NE: "CMP_NE", CMP_LE: "CMP_LE", CMP_GE: "CMP_GE",
	CMP_GT: "CMP_GT", CMP_LT: "CMP_LT",
	LOGIC_AND: "LOGIC_AND", LOGIC_OR: "LOGIC_OR",
	DECLARE_MANY: "DECLARE_MANY", OBSERVE_MANY: "OBSERVE_MANY",
	NAME_THIS: "NAME_THIS", NAME_PARTICLE: "NAME_PARTICLE",
	HAS_MARKER: "HAS_MARKER",
	FORMER_TIME: "FORMER_TIME", TERMINATOR: "TERMINATOR", NOW: "NOW",
	NO_LONGER: "NO_LONGER", IS_THIS: "IS_THIS",
	FOR_COUNT_START: "FOR_COUNT_START", LOOP_FOREVER: "LOOP_FOREVER",
	FOR_LOOP_END: "FOR_LOOP_END", ALSO_END: "ALSO_END",
	LOOP_ROUNDS: "LOOP_ROUNDS", FOR_ARRAY_START: "FOR_ARRAY_START",
	FOR_ARRAY_IN: "FOR_ARRAY_IN", BREAK_KW: "BREAK_KW",
	CONTINUE_KW: "CONTINUE_KW",
	IF_START: "IF_START", IF_ELSEIF: "IF_ELSEIF", IF_ELSE: "IF_ELSE",
	PRON_TRUTH: "PRON_TRUTH", PRON_FALSE: "PRON_FALSE",
	PRONOUN: "PRONOUN", PRON_REST: "PRON_REST", PRON_SHAPE: "PRON_SHAPE",
	IN_PARTICLE: "IN_PARTICLE", SUFFIX_LEN: "SUFFIX_LEN", FU2_MARKER: "FU2_MARKER",
	ARRAY_FILL_START: "ARRAY_FILL_START", ARRAY_CAT_START: "ARRAY_CAT_START",
	PRINT_KW: "PRINT_KW", FLUSH_KW: "FLUSH_KW", IS_CALLED: "IS_CALLED",
	IS_A_SPELL: "IS_A_SPELL",
	FLOAT_MAGNITUDE: "FLOAT_MAGNITUDE",
}

// String renders a Kind's symbolic name, used by the `wyc lex` debug
// command and by diagnostics.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}
