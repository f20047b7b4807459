package jscope

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/jscope/scope"
	"github.com/arjunmahishi/jscope/syntax"
)

// parser wraps a tree-sitter parser for a specific language.
type parser struct {
	parser *sitter.Parser
	lang   Language
}

// newParser creates a new parser for the given language.
func newParser(language Language) *parser {
	p := sitter.NewParser()
	p.SetLanguage(language.TreeSitterLang())
	return &parser{
		parser: p,
		lang:   language,
	}
}

// parse parses source code and lowers it into an arena tree.
func (p *parser) parse(source []byte, path string) (*syntax.Parsed, error) {
	cst, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return p.lang.Lower(cst, source, path)
}

// parseFile reads and parses a file. Errors name the file by its display path.
func (p *parser) parseFile(job FileJob) (*syntax.Parsed, error) {
	source, err := os.ReadFile(job.AbsPath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return p.parse(source, job.DisplayPath)
}

// query represents a compiled tree-sitter query.
type query struct {
	query        *sitter.Query
	captureNames []string
}

// newQuery compiles a tree-sitter query string.
func newQuery(queryStr string, language Language) (*query, error) {
	q, err := sitter.NewQuery([]byte(queryStr), language.TreeSitterLang())
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}

	captureCount := int(q.CaptureCount())
	captureNames := make([]string, captureCount)
	for i := 0; i < captureCount; i++ {
		captureNames[i] = q.CaptureNameForId(uint32(i))
	}

	return &query{
		query:        q,
		captureNames: captureNames,
	}, nil
}

// run executes the query on a parsed file and resolves the scope of every
// captured node.
func (q *query) run(parsed *syntax.Parsed, displayPath string) ([]QueryMatch, error) {
	cursor := sitter.NewQueryCursor()
	cursor.Exec(q.query, parsed.CST.RootNode())

	var matches []QueryMatch
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, parsed.Source)
		if len(match.Captures) == 0 {
			continue
		}

		result := QueryMatch{
			File:    displayPath,
			Pattern: int(match.PatternIndex),
		}

		for _, capture := range match.Captures {
			name := q.captureName(capture.Index)
			node := capture.Node
			start := node.StartPoint()
			end := node.EndPoint()

			chain, err := scope.Resolve(parsed.Tree, parsed.Lookup(node))
			if err != nil {
				return nil, fmt.Errorf("%s:%d:%d: %w", displayPath, start.Row+1, start.Column+1, err)
			}

			result.Captures = append(result.Captures, CaptureResult{
				Name:     name,
				NodeType: node.Type(),
				Text:     node.Content(parsed.Source),
				Range: Range{
					Start: Position{Line: int(start.Row) + 1, Column: int(start.Column) + 1},
					End:   Position{Line: int(end.Row) + 1, Column: int(end.Column) + 1},
				},
				Scope: chain,
			})
		}

		matches = append(matches, result)
	}

	return matches, nil
}

func (q *query) captureName(index uint32) string {
	if int(index) >= len(q.captureNames) {
		return fmt.Sprintf("capture_%d", index)
	}
	return q.captureNames[index]
}
