// Command wyc compiles wenyan-lang source into the target Rust-like
// language described in the project specification.
package main

import (
	"fmt"
	"os"

	"github.com/wenyan-lang/wyc/cmd/wyc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
