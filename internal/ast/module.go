package ast

import "glint/internal/source"

// Import is one module-level import declaration, resolved by the loader
// (component G) into a ModuleDecl once its metadata is found.
type Import struct {
	Name source.StringID
	Span source.Span
	Decl ExprID // ExprModuleDecl once resolved
}

// Module is the top-level unit sema.Check operates on: one source file's
// worth of declarations plus its own Builder, the way the teacher's
// Files/File own one parsed unit (internal/ast/file.go), generalised
// here to also be the arena owner spec.md §4.D assigns the module.
type Module struct {
	File    source.FileID
	Builder *Builder
	Imports []Import
	Decls   []ExprID // top-level ExprFnDecl/ExprTypeDecl/ExprAliasDecl/ExprVarDecl
	Scope   ScopeID  // the module's global scope
}

// NewModule allocates a Module with a fresh Builder.
func NewModule(file source.FileID) *Module {
	return &Module{File: file, Builder: NewBuilder(0)}
}
