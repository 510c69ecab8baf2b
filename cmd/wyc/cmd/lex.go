package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wenyan-lang/wyc/pkg/token"
	"github.com/wenyan-lang/wyc/pkg/wyc"
)

var (
	lexShowPos  bool
	lexShowKind bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a wenyan-lang file and print the resulting tokens",
	Long: `Tokenize (lex) a wenyan-lang program and print the resulting token
stream. If no file is given, reads from stdin. Useful for debugging the
lexer independently of the parser and code generator.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexShowKind, "show-kind", false, "show token kind names")
}

func runLex(cmd *cobra.Command, args []string) error {
	source, filename, err := readInput(args)
	if err != nil {
		return err
	}

	toks, err := wyc.Lex(source)
	if err != nil {
		return explain(err, source, filename)
	}

	for _, t := range toks {
		printToken(cmd, t)
	}
	return nil
}

// printToken prints a single token in the "[KIND] "literal" @line:col"
// format shared by `wyc lex` and the root command's verbose tracing.
func printToken(cmd *cobra.Command, t token.Token) {
	out := cmd.OutOrStdout()
	line := ""
	if lexShowKind {
		line = fmt.Sprintf("[%-20s]", t.Kind)
	}
	if t.Literal == "" {
		line += fmt.Sprintf(" %s", t.Kind)
	} else {
		line += fmt.Sprintf(" %q", t.Literal)
	}
	if lexShowPos {
		line += fmt.Sprintf(" @%d:%d", t.Pos.Line, t.Pos.Column)
	}
	fmt.Fprintln(out, line)
}
