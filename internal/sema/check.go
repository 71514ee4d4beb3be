// Package sema implements the semantic analyser (spec.md §4.H,
// component H): the pass that drives name resolution, type elaboration,
// overload-set formation, the conversion engine, and dynamic-array
// lifetime tracking over one module's AST, rewriting the tree in place
// as it goes. Grounded on the teacher's internal/sema Checker/Options/
// Result shape (internal/sema/check.go, type_checker_core.go) and on
// original_source/lib/glint/sema.cc's AnalyseModule/Analyse dispatch,
// expressed over this repo's arena-of-IDs AST rather than translated
// line-for-line.
package sema

import (
	"fmt"

	"glint/internal/ast"
	"glint/internal/diag"
	"glint/internal/loader"
	"glint/internal/source"
	"glint/internal/symbols"
	"glint/internal/trace"
	"glint/internal/types"
)

// Options configures one module's semantic pass.
type Options struct {
	Context     *diag.Context
	Symbols     *symbols.Table
	Types       *types.Interner
	Strings     *source.Interner
	IncludeDirs []string
	// Tracer receives Begin/End spans around the pipeline stages of
	// Check (import resolution, signature pass, body pass), toggled by
	// the CLI's --verbose flag. Defaults to trace.Nop.
	Tracer trace.Tracer
}

// Result reports the outcome of analysing a module.
type Result struct {
	TypeInterner *types.Interner
	Errored      bool
}

// Checker carries the per-module state Analyse's recursive dispatch
// threads through, grounded on the teacher's typeChecker struct
// (builder/reporter/symbols/types fields), trimmed to this core's scope.
type Checker struct {
	b       *ast.Builder
	in      *types.Interner
	ctx     *diag.Context
	table   *symbols.Table
	strings *source.Interner
	include []string
	fnStack []*fnContext
	tracer  trace.Tracer

	// imports is the module's resolved import list (Decl populated by
	// resolveImports), consulted by tryResolveViaImport on a NameRef
	// scope miss.
	imports []ast.Import

	// dynStructCache memoises dynamicArrayStructType's synthesized
	// {data,length,capacity} layout per dynamic-array TypeID.
	dynStructCache map[types.TypeID]types.TypeID
}

// fnContext tracks the enclosing function while analysing its body, for
// the declared-return-type check and the dangling-dynamic-array set
// (spec.md §3 invariant 6, §4.H's function body post-pass).
type fnContext struct {
	decl   ast.ExprID
	data   *ast.FnDeclData
	isVoid bool
	isMain bool
}

// Check analyses mod and returns the module's result, per spec.md
// §4.H's entry point: "Entry point: analyse(ctx, module). Aborts
// immediately if the context already has errors."
func Check(mod *ast.Module, opts Options) Result {
	in := opts.Types
	if in == nil {
		in = types.NewInterner()
	}
	res := Result{TypeInterner: in}
	if mod == nil || opts.Context == nil {
		return res
	}
	if opts.Context.HasError() {
		res.Errored = true
		return res
	}

	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	c := &Checker{b: mod.Builder, in: in, ctx: opts.Context, table: opts.Symbols, strings: opts.Strings, include: opts.IncludeDirs, tracer: tracer}
	driver := trace.Begin(tracer, trace.ScopeModule, c.moduleTraceName(mod), 0)
	c.analyseModule(mod)
	driver.End("")
	res.Errored = opts.Context.HasError()
	return res
}

func (c *Checker) moduleTraceName(mod *ast.Module) string {
	if c.strings == nil {
		return "module"
	}
	return fmt.Sprintf("module:file#%d", mod.File)
}

func (c *Checker) analyseModule(mod *ast.Module) {
	imports := trace.Begin(c.tracer, trace.ScopePass, "resolve-imports", 0)
	c.resolveImports(mod)
	c.imports = mod.Imports
	imports.End(fmt.Sprintf("%d imports", len(mod.Imports)))

	signatures := trace.Begin(c.tracer, trace.ScopePass, "signature-pass", 0)
	count := 0
	for _, id := range mod.Decls {
		if e := c.b.Get(id); e != nil && e.Kind == ast.ExprFnDecl {
			c.analyseFnSignature(id)
			count++
		}
	}
	signatures.End(fmt.Sprintf("%d signatures", count))

	bodies := trace.Begin(c.tracer, trace.ScopePass, "body-pass", 0)
	count = 0
	for _, id := range mod.Decls {
		if e := c.b.Get(id); e != nil && e.Kind == ast.ExprFnDecl {
			c.analyseFnBody(id)
			count++
		}
	}
	bodies.End(fmt.Sprintf("%d bodies", count))
}

// resolveImports locates every module-level import's metadata, per
// spec.md §4.G/§4.H step 1. A miss is fatal for the module with an
// immediate exit 1 (spec.md §7) — distinct from Context.Fatal's exit
// 18, so the exit is issued directly here rather than through
// Context.Fatal; see DESIGN.md's "internal/sema (component H) —
// implementation notes" for the rationale.
func (c *Checker) resolveImports(mod *ast.Module) {
	for i := range mod.Imports {
		imp := &mod.Imports[i]
		name := fmt.Sprintf("module#%d", imp.Name)
		if c.strings != nil {
			if s, ok := c.strings.Lookup(imp.Name); ok {
				name = s
			}
		}
		res, tried, ok := loader.Load(c.ctx, name, c.include, imp.Span)
		if !ok {
			c.ctx.Error(diag.ImportNotFound, imp.Span, loader.FormatTriedPaths(name, tried))
			c.ctx.Exit(1)
			return
		}
		scope := c.table.ModuleRoot(res.Metadata.ModuleName, symbols.NoScopeID, imp.Span)
		decl := c.b.NewModuleDecl(imp.Span, imp.Name, asAstScope(scope))
		if e := c.b.Get(decl); e != nil {
			e.State = ast.Done
		}
		imp.Decl = decl
	}
}

// asSymbolsScope and asAstScope convert between ast.ScopeID and
// symbols.ScopeID; the two types share a uint32 representation by
// construction (ast cannot import symbols, so ast.ScopeID is the raw
// carrier NameRefData/ModuleRefData/BlockData/ModuleDeclData store their
// scope in).
func asSymbolsScope(id ast.ScopeID) symbols.ScopeID { return symbols.ScopeID(id) }

func asAstScope(id symbols.ScopeID) ast.ScopeID { return ast.ScopeID(id) }

func (c *Checker) reportf(span source.Span, code diag.Code, format string, args ...any) {
	c.ctx.Error(code, span, fmt.Sprintf(format, args...))
}
