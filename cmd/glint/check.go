package main

import (
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.glint>",
	Short: "Analyse a Glint module without emitting a metadata blob",
	Long:  `check runs the full lex/parse/sema pipeline and reports diagnostics, for editor/CI use where no build artifact is wanted.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	verbose, printAST, syntaxOnly, includeDirs, colorFlag := sharedFlags(cmd)
	return runPipeline(args[0], verbose, printAST, syntaxOnly, includeDirs, colorFlag, "")
}
