package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/wenyan-lang/wyc/internal/ast"
	"github.com/wenyan-lang/wyc/pkg/wyc"
)

var parseDumpKinds bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a wenyan-lang file and print the resulting statement list",
	Long: `Parse a wenyan-lang program and print its parsed statement list. If
no file is given, reads from stdin. Useful for debugging the parser
independently of the code generator.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVar(&parseDumpKinds, "dump-ast", false, "print the StmtKind tag of every top-level statement")
}

func runParse(cmd *cobra.Command, args []string) error {
	source, filename, err := readInput(args)
	if err != nil {
		return err
	}

	result, err := wyc.Parse(source)
	if err != nil {
		return explain(err, source, filename)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d statement(s)\n", result.Statements)
	if parseDumpKinds {
		dumpStatementKinds(out, result.Program.Statements)
	}
	return nil
}

func dumpStatementKinds(out io.Writer, stmts []ast.Statement) {
	for i, s := range stmts {
		fmt.Fprintf(out, "[%d] kind=%d @%d:%d\n", i, s.StmtKind, s.Pos.Line, s.Pos.Column)
	}
}
