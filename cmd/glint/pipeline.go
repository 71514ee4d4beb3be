package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"glint/internal/ast"
	"glint/internal/diag"
	"glint/internal/diagfmt"
	"glint/internal/lexer"
	"glint/internal/loader"
	"glint/internal/parser"
	"glint/internal/project"
	"glint/internal/sema"
	"glint/internal/source"
	"glint/internal/symbols"
	"glint/internal/trace"
	"glint/internal/types"
)

// sharedFlags reads the flags build and check have in common, grounded
// on the teacher's cmd.Root().PersistentFlags() convention for
// subcommand access to root-registered flags.
func sharedFlags(cmd *cobra.Command) (verbose, printAST, syntaxOnly bool, includeDirs []string, colorFlag string) {
	verbose, _ = cmd.Flags().GetBool("verbose")
	printAST, _ = cmd.Flags().GetBool("ast")
	syntaxOnly, _ = cmd.Flags().GetBool("syntax-only")
	includeDirs, _ = cmd.Flags().GetStringArray("include")
	colorFlag, _ = cmd.Flags().GetString("color")
	return
}

// runPipeline lexes, parses, and (unless syntaxOnly) semantically
// analyses inputPath, rendering diagnostics and exiting per spec.md §7's
// exit-code contract. outputPath is empty for check, non-empty for
// build's -o flag.
func runPipeline(inputPath string, verbose, printAST, syntaxOnly bool, includeDirs []string, colorFlag, outputPath string) error {
	manifestIncludes, _, manifestDir := loadManifestDefaults(inputPath)
	includeDirs = project.MergeIncludeDirs(manifestDir, manifestIncludes, includeDirs)

	fs := source.NewFileSet()
	fileID, err := fs.Load(inputPath)
	if err != nil {
		return fmt.Errorf("glint: %w", err)
	}

	ctx := diag.NewContext(fs)
	ctx.ColorMode = colorModeFromFlag(colorFlag)
	useColor := diagfmt.ResolveColorMode(ctx.ColorMode, isTerminal(os.Stderr))

	lx := lexer.New(fs.Get(fileID), ctx)
	builder := ast.NewBuilder(0)
	strs := source.NewInterner()
	table := symbols.NewTable(0)
	tin := types.NewInterner()

	mod := parser.ParseModule(fileID, lx, parser.Options{
		Builder: builder,
		Types:   tin,
		Strings: strs,
		Symbols: table,
		Context: ctx,
	})

	if printAST {
		diagfmt.FormatAST(os.Stdout, mod, strs)
	}

	if syntaxOnly {
		return reportAndExit(ctx, fs, useColor, false)
	}

	var tracer trace.Tracer = trace.Nop
	if verbose {
		tracer = trace.NewStreamTracer(os.Stderr, trace.LevelDetail)
	}

	result := sema.Check(mod, sema.Options{
		Context:     ctx,
		Symbols:     table,
		Types:       tin,
		Strings:     strs,
		IncludeDirs: includeDirs,
		Tracer:      tracer,
	})

	if outputPath != "" && !result.Errored {
		if err := writeMetadata(outputPath, mod, strs); err != nil {
			return fmt.Errorf("glint: %w", err)
		}
	}

	return reportAndExit(ctx, fs, useColor, result.Errored)
}

// reportAndExit renders any accumulated diagnostics and exits 1 if the
// module failed analysis, per spec.md §7: "On any Error, the program
// exits non-zero after best-effort analysis." ICE/Fatal already
// terminated the process from inside diag.Context.Report before this
// point ever runs.
func reportAndExit(ctx *diag.Context, fs *source.FileSet, useColor bool, errored bool) error {
	ctx.Bag.Sort()
	if ctx.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, ctx.Bag, fs, diagfmt.Options{Color: useColor, Context: 1})
	}
	if errored || ctx.HasError() {
		os.Exit(1)
	}
	return nil
}

// loadManifestDefaults looks for a glint.toml above inputPath's
// directory, per SPEC_FULL.md's ambient "optional glint.toml
// include-path/target config consumed by the CLI before invoking the
// core" — absence is not an error, only CLI flags apply.
func loadManifestDefaults(inputPath string) (includes []string, target string, manifestDir string) {
	dir := filepath.Dir(inputPath)
	path, ok, err := project.FindManifest(dir)
	if err != nil || !ok {
		return nil, "", dir
	}
	m, err := project.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "glint: warning: failed to load %s: %v\n", path, err)
		return nil, "", dir
	}
	return m.Include, m.Target, filepath.Dir(path)
}

// writeMetadata records the names of mod's top-level fn, type and var
// declarations, each with an empty payload, in a blob at path, grounded on internal/loader's Metadata shape and msgpack
// framing (loader.Load's counterpart on the import side).
func writeMetadata(path string, mod *ast.Module, strs *source.Interner) error {
	exports := map[string][]byte{}
	for _, id := range mod.Decls {
		e := mod.Builder.Get(id)
		var name string
		switch e.Kind {
		case ast.ExprFnDecl:
			fd, _ := mod.Builder.FnDecl(id)
			name, _ = strs.Lookup(fd.Name)
		case ast.ExprTypeDecl:
			td, _ := mod.Builder.TypeDecl(id)
			name, _ = strs.Lookup(td.Name)
		case ast.ExprVarDecl:
			vd, _ := mod.Builder.VarDecl(id)
			name, _ = strs.Lookup(vd.Name)
		default:
			continue
		}
		if name != "" {
			exports[name] = nil
		}
	}
	return loader.WriteMetadataFile(path, loader.Metadata{
		ModuleName: inputModuleName(mod),
		Exports:    exports,
	})
}

func inputModuleName(mod *ast.Module) string {
	return fmt.Sprintf("module#%d", mod.File)
}
