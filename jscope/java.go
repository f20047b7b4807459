package jscope

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/jscope/syntax"
)

// Java implements the Language interface for Java source code.
type Java struct{}

func init() {
	Register(&Java{})
}

func (j *Java) Name() string {
	return "java"
}

func (j *Java) Extensions() []string {
	return []string{".java"}
}

func (j *Java) TreeSitterLang() *sitter.Language {
	return syntax.JavaLanguage()
}

func (j *Java) Lower(cst *sitter.Tree, source []byte, path string) (*syntax.Parsed, error) {
	return syntax.Lower(cst, source, path)
}
