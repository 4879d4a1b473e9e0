package binder

import "github.com/blb-lang/blbc/internal/ast"

// scopedMap is a stack of hash maps with innermost-first lookup, realizing
// block scoping and shadowing for local names.
type scopedMap struct {
	stack []map[string]*ast.LetDecl
}

func newScopedMap() *scopedMap {
	return &scopedMap{}
}

func (m *scopedMap) pushScope() {
	m.stack = append(m.stack, make(map[string]*ast.LetDecl))
}

func (m *scopedMap) popScope() {
	m.stack = m.stack[:len(m.stack)-1]
}

func (m *scopedMap) define(name string, decl *ast.LetDecl) {
	m.stack[len(m.stack)-1][name] = decl
}

// find walks the stack top-down, returning the innermost binding.
func (m *scopedMap) find(name string) *ast.LetDecl {
	for i := len(m.stack) - 1; i >= 0; i-- {
		if decl, ok := m.stack[i][name]; ok {
			return decl
		}
	}
	return nil
}
