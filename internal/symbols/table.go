package symbols

import "glint/internal/source"

// Table aggregates the scope arena plus the per-file/per-module root
// memoization, grounded on the teacher's internal/symbols/table.go.
type Table struct {
	Scopes   *Scopes
	fileRoot map[source.FileID]ScopeID
	modRoot  map[string]ScopeID
}

// NewTable builds an empty Table with capHint as the scope arena's
// initial capacity hint.
func NewTable(capHint uint32) *Table {
	return &Table{
		Scopes:   NewScopes(capHint),
		fileRoot: make(map[source.FileID]ScopeID),
		modRoot:  make(map[string]ScopeID),
	}
}

// FileRoot returns (creating if needed) the file-level scope for file.
func (t *Table) FileRoot(file source.FileID, span source.Span) ScopeID {
	if id, ok := t.fileRoot[file]; ok {
		return id
	}
	id := t.Scopes.New(ScopeFile, NoScopeID, span)
	t.fileRoot[file] = id
	return id
}

// ModuleRoot returns (creating if needed) the module-level scope for
// moduleKey, parented under parent.
func (t *Table) ModuleRoot(moduleKey string, parent ScopeID, span source.Span) ScopeID {
	if moduleKey != "" {
		if id, ok := t.modRoot[moduleKey]; ok {
			return id
		}
	}
	id := t.Scopes.New(ScopeModule, parent, span)
	if moduleKey != "" {
		t.modRoot[moduleKey] = id
	}
	return id
}
