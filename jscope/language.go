package jscope

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/jscope/syntax"
)

// Language defines the interface for a supported programming language.
type Language interface {
	// Name returns the language identifier (e.g., "java").
	Name() string

	// Extensions returns file extensions for this language (e.g., [".java"]).
	Extensions() []string

	// TreeSitterLang returns the tree-sitter language grammar.
	TreeSitterLang() *sitter.Language

	// Lower converts a concrete syntax tree into the arena form that scope
	// resolution runs over.
	Lower(cst *sitter.Tree, source []byte, path string) (*syntax.Parsed, error)
}

// registry holds all registered languages.
var registry = make(map[string]Language)

// Register adds a language to the registry.
// This is typically called from init() functions in language implementation files.
func Register(lang Language) {
	registry[lang.Name()] = lang
}

// Get returns a language by name, or nil if not found.
func Get(name string) Language {
	return registry[name]
}

// List returns all registered language names.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// ByExtension finds a language by file extension.
func ByExtension(ext string) Language {
	for _, lang := range registry {
		for _, e := range lang.Extensions() {
			if e == ext {
				return lang
			}
		}
	}
	return nil
}
