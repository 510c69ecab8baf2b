package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbosity int

var rootCmd = &cobra.Command{
	Use:   "wyc [file]",
	Short: "Compile wenyan-lang programs to the target language",
	Long: `wyc is a source-to-source compiler for wenyan-lang, a programming
language styled after Classical Chinese. It lexes, parses, and translates a
wenyan program into a Rust-like target language, one statement at a time,
aborting at the first lexical or syntactic error it encounters.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runCompile,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity (repeatable)")
	rootCmd.PersistentFlags().StringP("config", "c", "", "configuration file (reserved, currently ignored)")
}
