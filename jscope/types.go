package jscope

import (
	"path/filepath"

	"github.com/arjunmahishi/jscope/scope"
	"github.com/arjunmahishi/jscope/syntax"
)

// Position represents a location in a source file.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Range represents a span in a source file.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

func spanRange(s syntax.Span) Range {
	return Range{
		Start: Position{Line: s.Start.Line, Column: s.Start.Column},
		End:   Position{Line: s.End.Line, Column: s.End.Column},
	}
}

// ScopeResult is the scope chain at one source position.
type ScopeResult struct {
	File     string      `json:"file"`
	Position Position    `json:"position"`
	NodeType string      `json:"node_type"`
	Text     string      `json:"text"`
	Scope    scope.Chain `json:"scope"`
}

// Declaration is a scope-introducing declaration found in a file.
type Declaration struct {
	Name     string          `json:"name"`
	Category syntax.Category `json:"category"`
	Range    Range           `json:"range"`
	Depth    int             `json:"depth"`
	Entry    scope.Entry     `json:"entry"`
	Scope    scope.Chain     `json:"scope"` // enclosing declarations, innermost first
}

// FileOutline lists the declarations of one file in source order.
type FileOutline struct {
	File         string        `json:"file"`
	Package      string        `json:"package,omitempty"`
	Declarations []Declaration `json:"declarations"`
}

// QueryMatch represents a raw tree-sitter query match.
type QueryMatch struct {
	File     string          `json:"file"`
	Pattern  int             `json:"pattern"`
	Captures []CaptureResult `json:"captures"`
}

// CaptureResult represents a single capture within a query match, with the
// scope chain of the captured node.
type CaptureResult struct {
	Name     string      `json:"name"`
	NodeType string      `json:"node_type"`
	Text     string      `json:"text"`
	Range    Range       `json:"range"`
	Scope    scope.Chain `json:"scope"`
}

// FileJob represents a file to be processed.
type FileJob struct {
	AbsPath     string
	DisplayPath string
}

// Name returns the file name without its directory.
func (j FileJob) Name() string {
	return filepath.Base(j.AbsPath)
}

// FileSet is the result of a directory scan.
type FileSet []FileJob

// Lookup finds a file by its name. The first match in scan order wins.
func (s FileSet) Lookup(name string) (FileJob, bool) {
	for _, f := range s {
		if f.Name() == name {
			return f, true
		}
	}
	return FileJob{}, false
}
