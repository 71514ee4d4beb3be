// Command glint is the front door over internal/lexer, internal/parser,
// internal/sema, and internal/diagfmt, grounded on the teacher's
// cmd/surge layout (main.go's rootCmd registration, diagnose.go/build.go's
// per-command flag-and-RunE split) but trimmed to the two verbs
// SPEC_FULL.md's DOMAIN STACK table names for this CLI — build and
// check — each implementing spec.md §6's exact flag set: a verbose
// flag, an AST-print flag, a syntax-only flag, an output path,
// repeatable include directories, and a single positional input file.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"glint/internal/diag"
)

const glintVersion = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "glint",
	Short: "Glint semantic analyser front end",
	Long:  `glint lexes, parses, and semantically analyses Glint source modules.`,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "trace the semantic analyser's phases (imports, signatures, bodies) to stderr")
	rootCmd.PersistentFlags().Bool("ast", false, "print the parsed module's AST to stdout")
	rootCmd.PersistentFlags().Bool("syntax-only", false, "stop after parsing; skip semantic analysis")
	rootCmd.PersistentFlags().StringArrayP("include", "I", nil, "add a directory to the import search path (repeatable)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostics (auto|on|off)")

	buildCmd.Flags().StringP("output", "o", "", "write the analysed module's metadata blob to this path")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(checkCmd)
}

func main() {
	rootCmd.Version = glintVersion
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd())
}

func colorModeFromFlag(s string) diag.ColorMode {
	switch s {
	case "on":
		return diag.ColorAlways
	case "off":
		return diag.ColorNever
	default:
		return diag.ColorAuto
	}
}
