package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/wenyan-lang/wyc/internal/codegen"
	werrors "github.com/wenyan-lang/wyc/internal/errors"
	"github.com/wenyan-lang/wyc/internal/lexer"
	"github.com/wenyan-lang/wyc/internal/parser"
	"github.com/wenyan-lang/wyc/pkg/token"
	"github.com/wenyan-lang/wyc/pkg/wyc"
)

func runCompile(cmd *cobra.Command, args []string) error {
	source, filename, err := readInput(args)
	if err != nil {
		return err
	}

	if verbosity > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "--- input (%s) ---\n%s\n", filename, source)
	}

	if verbosity > 0 {
		toks, lexErr := wyc.Lex(source)
		if lexErr == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "--- tokens ---")
			for _, t := range toks {
				printToken(cmd, t)
			}
		}
	}

	if verbosity > 0 {
		result, parseErr := wyc.Parse(source)
		if parseErr == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "--- parsed (%d statements) ---\n", result.Statements)
			dumpStatementKinds(cmd.OutOrStdout(), result.Program.Statements)
		}
	}

	out, err := wyc.Compile(source)
	if err != nil {
		return explain(err, source, filename)
	}

	if verbosity > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "--- output ---")
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	if verbosity > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "--- end of output ---")
	}
	return nil
}

// readInput resolves the positional file argument, falling back to stdin
// when none is given (mirrors the teacher's parse.go convention).
func readInput(args []string) (source, filename string, err error) {
	if len(args) == 1 {
		filename = args[0]
		data, readErr := os.ReadFile(filename)
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", filename, readErr)
		}
		return string(data), filename, nil
	}

	data, readErr := io.ReadAll(os.Stdin)
	if readErr != nil {
		return "", "", fmt.Errorf("failed to read stdin: %w", readErr)
	}
	return string(data), "<stdin>", nil
}

// explain wraps a pipeline error in a CompilerError for a file:line:col
// diagnostic when the error carries position information, falling back to
// the bare error text otherwise (e.g. file I/O failures have no position).
// Under -v, surrounding source lines are included instead of just the one.
func explain(err error, source, filename string) error {
	pos, ok := positionOf(err)
	if !ok {
		return err
	}
	ce := werrors.NewCompilerError(pos, err.Error(), source, filename)
	if verbosity > 0 {
		return fmt.Errorf("%s", ce.FormatWithContext(2, false))
	}
	return fmt.Errorf("%s", ce.Format(false))
}

// positionOf extracts a token.Position from the known pipeline error types.
// identbimap never fails, so only lexer, parser, and codegen errors carry
// a position worth pretty-printing.
func positionOf(err error) (token.Position, bool) {
	switch e := err.(type) {
	case *lexer.Error:
		return e.Pos, true
	case *parser.Error:
		return e.Pos, true
	case *codegen.Error:
		return e.Pos, true
	default:
		return token.Position{}, false
	}
}
