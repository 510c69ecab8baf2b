// Package wyc is the compiler's single entry point: source text in,
// target-language text out. It wires lexer -> parser -> identifier
// registry -> codegen in the fixed order required by §5, stopping at the
// first stage that returns an error.
package wyc

import (
	"fmt"

	"github.com/wenyan-lang/wyc/internal/ast"
	"github.com/wenyan-lang/wyc/internal/codegen"
	"github.com/wenyan-lang/wyc/internal/identbimap"
	"github.com/wenyan-lang/wyc/internal/lexer"
	"github.com/wenyan-lang/wyc/internal/parser"
	"github.com/wenyan-lang/wyc/internal/romantable"
	"github.com/wenyan-lang/wyc/pkg/token"
)

// ParseResult is the debug-level output of Parse: the token stream
// consumed, the parsed program, and its statement count for quick
// reporting by the CLI's -v flag.
type ParseResult struct {
	Tokens     []token.Token
	Statements int
	Program    *ast.Program
}

// Compile translates wenyan source into the target language, using the
// embedded romanization table. The CLI's compile path and the tests call
// it; Lex and Parse below expose the earlier stages for debugging.
func Compile(source string) (string, error) {
	table, err := romantable.Load()
	if err != nil {
		return "", fmt.Errorf("loading romanization table: %w", err)
	}
	return CompileWithTable(source, table)
}

// CompileWithTable is Compile with an explicit romanization table, letting
// callers (tests, alternate CLI invocations) substitute their own table
// instead of the embedded asset.
func CompileWithTable(source string, table map[string]string) (string, error) {
	toks, err := lexer.All(source)
	if err != nil {
		return "", err
	}

	program, err := parser.New(toks).ParseProgram()
	if err != nil {
		return "", err
	}

	registry := identbimap.Build(program, table)

	out, err := codegen.Generate(program, registry)
	if err != nil {
		return "", err
	}

	return out, nil
}

// Lex is the debug entry point behind `wyc lex`: it returns the raw token
// stream without parsing it.
func Lex(source string) ([]token.Token, error) {
	return lexer.All(source)
}

// Parse is the debug entry point behind `wyc parse`: it returns the parsed
// program without running codegen.
func Parse(source string) (*ParseResult, error) {
	toks, err := lexer.All(source)
	if err != nil {
		return nil, err
	}
	program, err := parser.New(toks).ParseProgram()
	if err != nil {
		return nil, err
	}
	return &ParseResult{Tokens: toks, Statements: len(program.Statements), Program: program}, nil
}
