// Package symbols implements the lexical scope tree (spec.md §4.E),
// grounded on the teacher's internal/symbols/scope.go and table.go,
// trimmed of Surge's visibility/contract/extern machinery (no
// counterpart in spec.md) down to the parent-pointer scope graph with
// ordered per-name declaration lists.
package symbols

import (
	"glint/internal/ast"
	"glint/internal/source"
)

// ScopeKind enumerates the scope categories spec.md §4.E names.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeFile
	ScopeModule
	ScopeFunction
	ScopeBlock
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeFile:
		return "file"
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// ScopeID addresses a Scope inside a Scopes arena.
type ScopeID uint32

// NoScopeID marks the absence of a scope.
const NoScopeID ScopeID = 0

// Scope is a lexical scope: a parent pointer plus an ordered mapping
// from name to the declarations introduced under that name, per
// spec.md §4.E.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Span      source.Span
	names     map[source.StringID][]ast.ExprID
	order     []source.StringID // insertion order, for deterministic iteration
}

// Scopes is the arena owning every Scope in a compilation.
type Scopes struct {
	data []Scope
}

// NewScopes allocates a Scopes arena with capHint as a capacity hint.
func NewScopes(capHint uint32) *Scopes {
	return &Scopes{data: make([]Scope, 0, capHint)}
}

// New allocates a fresh scope and returns its ID.
func (s *Scopes) New(kind ScopeKind, parent ScopeID, span source.Span) ScopeID {
	s.data = append(s.data, Scope{
		Kind:   kind,
		Parent: parent,
		Span:   span,
		names:  make(map[source.StringID][]ast.ExprID),
	})
	return ScopeID(len(s.data))
}

// Get returns a pointer to the scope at id, or nil for NoScopeID.
func (s *Scopes) Get(id ScopeID) *Scope {
	if id == NoScopeID {
		return nil
	}
	return &s.data[id-1]
}

// Find returns the current scope's declaration list for name only
// (spec.md §4.E: "find(name) returns only the current scope's list").
func (s *Scopes) Find(id ScopeID, name source.StringID) []ast.ExprID {
	scope := s.Get(id)
	if scope == nil {
		return nil
	}
	return scope.names[name]
}

// FindRecursive walks id and its ancestors, returning the first
// non-empty hit (spec.md §4.E).
func (s *Scopes) FindRecursive(id ScopeID, name source.StringID) []ast.ExprID {
	for cur := id; cur != NoScopeID; {
		scope := s.Get(cur)
		if scope == nil {
			return nil
		}
		if decls := scope.names[name]; len(decls) > 0 {
			return decls
		}
		cur = scope.Parent
	}
	return nil
}

// AllVisibleNames returns every name reachable from id by walking up
// the ancestor chain, used by sema's auto-correct distance search
// (spec.md §4.H).
func (s *Scopes) AllVisibleNames(id ScopeID) []source.StringID {
	var names []source.StringID
	seen := make(map[source.StringID]bool)
	for cur := id; cur != NoScopeID; {
		scope := s.Get(cur)
		if scope == nil {
			break
		}
		for _, n := range scope.order {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
		cur = scope.Parent
	}
	return names
}

// OnlyAtTopLevel reports whether name resolves only in the outermost
// (file/module) ancestor of id, used for sema's "consider marking
// static" note (spec.md §4.H).
func (s *Scopes) OnlyAtTopLevel(id ScopeID, name source.StringID) bool {
	var top ScopeID
	found := false
	for cur := id; cur != NoScopeID; {
		scope := s.Get(cur)
		if scope == nil {
			break
		}
		if len(scope.names[name]) > 0 {
			found = true
			top = cur
		}
		if scope.Kind == ScopeFile || scope.Kind == ScopeModule {
			return found && top == cur
		}
		cur = scope.Parent
	}
	return false
}

// isFunctionDecl reports whether decl is an ExprFnDecl, the only kind
// Declare permits to coexist under a shared name.
func isFunctionDecl(b *ast.Builder, decl ast.ExprID) bool {
	e := b.Get(decl)
	return e != nil && e.Kind == ast.ExprFnDecl
}

// Declare adds decl under name in scope id. It succeeds unless the
// existing binding and the new one are not both functions, per
// spec.md §4.E's conflict rule; a name with only function bindings
// accumulates into an overload candidate set resolved later by sema.
func (s *Scopes) Declare(b *ast.Builder, id ScopeID, name source.StringID, decl ast.ExprID) bool {
	scope := s.Get(id)
	if scope == nil {
		return false
	}
	existing := scope.names[name]
	if len(existing) > 0 {
		if !isFunctionDecl(b, decl) {
			return false
		}
		for _, e := range existing {
			if !isFunctionDecl(b, e) {
				return false
			}
		}
	}
	if len(existing) == 0 {
		scope.order = append(scope.order, name)
	}
	scope.names[name] = append(scope.names[name], decl)
	return true
}
