package main

import (
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] <file.glint>",
	Short: "Analyse a Glint module and emit its metadata blob",
	Long:  `build runs the full lex/parse/sema pipeline and, with -o, writes the module's metadata blob for other modules to import.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	verbose, printAST, syntaxOnly, includeDirs, colorFlag := sharedFlags(cmd)
	outputPath, _ := cmd.Flags().GetString("output")
	return runPipeline(args[0], verbose, printAST, syntaxOnly, includeDirs, colorFlag, outputPath)
}
