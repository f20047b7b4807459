// Package jscope resolves the enclosing declarations of Java source
// constructs across files and projects.
package jscope

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/arjunmahishi/jscope/scope"
	"github.com/arjunmahishi/jscope/syntax"
)

const (
	defaultLanguage = "java"
	defaultMaxBytes = 2 * 1024 * 1024
)

func lookupLanguage(name string) (Language, error) {
	if name == "" {
		name = defaultLanguage
	}
	language := Get(name)
	if language == nil {
		return nil, errors.New(name + " language not registered")
	}
	return language, nil
}

// collectFiles resolves the files an operation runs over: a single file when
// file is set, otherwise every supported file under root.
func collectFiles(cfg scannerConfig, file string) (FileSet, error) {
	sc, err := newScanner(cfg)
	if err != nil {
		return nil, err
	}
	if file != "" {
		job, err := sc.collectSingle(file)
		if err != nil {
			return nil, err
		}
		return FileSet{job}, nil
	}
	return sc.collect()
}

// Scope resolves the scope chain at a source position.
func Scope(opts ScopeOptions) (*ScopeResult, error) {
	if opts.File == "" {
		return nil, errors.New("file is required")
	}
	if opts.Line < 1 || opts.Column < 1 {
		return nil, errors.New("line and column must be positive")
	}

	language, err := lookupLanguage(opts.Language)
	if err != nil {
		return nil, err
	}

	job, err := resolveFile(opts.File, opts.Path, language)
	if err != nil {
		return nil, err
	}

	p := newParser(language)
	parsed, err := p.parseFile(job)
	if err != nil {
		return nil, err
	}

	tree := parsed.Tree
	id := tree.NodeAt(syntax.Point{Line: opts.Line, Column: opts.Column})
	if id == syntax.NoNode {
		return nil, fmt.Errorf("%s:%d:%d: position outside file", job.DisplayPath, opts.Line, opts.Column)
	}

	chain, err := scope.Resolve(tree, id)
	if err != nil {
		return nil, err
	}

	n := tree.Node(id)
	return &ScopeResult{
		File:     job.DisplayPath,
		Position: Position{Line: opts.Line, Column: opts.Column},
		NodeType: n.Type,
		Text:     truncateText(n.Text, 80),
		Scope:    chain,
	}, nil
}

// resolveFile turns the file argument of a single-file operation into a
// job. A bare name missing from the working directory is searched for
// under root.
func resolveFile(file, root string, language Language) (FileJob, error) {
	sc, err := newScanner(scannerConfig{root: root, language: language})
	if err != nil {
		return FileJob{}, err
	}
	if root == "" || filepath.Base(file) != file {
		return sc.collectSingle(file)
	}
	if _, err := os.Stat(file); err == nil {
		return sc.collectSingle(file)
	}

	files, err := sc.collect()
	if err != nil {
		return FileJob{}, err
	}
	job, ok := files.Lookup(file)
	if !ok {
		return FileJob{}, fmt.Errorf("%s: not found under %s", file, root)
	}
	return job, nil
}

// Query executes a custom tree-sitter query and returns matches, each
// capture carrying the scope chain of its node.
func Query(opts QueryOptions) ([]QueryMatch, error) {
	if opts.Query == "" {
		return nil, errors.New("query is required")
	}
	if opts.Path == "" {
		opts.Path = "."
	}
	if opts.Jobs == 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if opts.MaxBytes == 0 {
		opts.MaxBytes = defaultMaxBytes
	}

	language, err := lookupLanguage(opts.Language)
	if err != nil {
		return nil, err
	}

	q, err := newQuery(opts.Query, language)
	if err != nil {
		return nil, err
	}

	files, err := collectFiles(scannerConfig{
		root:     opts.Path,
		language: language,
		maxBytes: opts.MaxBytes,
		include:  opts.Include,
		exclude:  opts.Exclude,
	}, opts.File)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return []QueryMatch{}, nil
	}

	matches := runWorkers(language, files, opts.Jobs, func(job FileJob, parsed *syntax.Parsed) ([]QueryMatch, error) {
		return q.run(parsed, job.DisplayPath)
	})
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].File < matches[j].File
	})
	return matches, nil
}

// Outline lists the declarations of a single file.
func Outline(opts OutlineOptions) (FileOutline, error) {
	if opts.File == "" {
		return FileOutline{}, errors.New("file is required")
	}

	language, err := lookupLanguage(opts.Language)
	if err != nil {
		return FileOutline{}, err
	}

	sc, err := newScanner(scannerConfig{language: language})
	if err != nil {
		return FileOutline{}, err
	}
	job, err := sc.collectSingle(opts.File)
	if err != nil {
		return FileOutline{}, err
	}

	p := newParser(language)
	parsed, err := p.parseFile(job)
	if err != nil {
		return FileOutline{}, err
	}

	return buildOutline(parsed.Tree, job.DisplayPath, nil)
}

// DeclarationsResult is the output format for declaration listing.
type DeclarationsResult struct {
	File         string        `json:"file"`
	Package      string        `json:"package,omitempty"`
	Declarations []Declaration `json:"declarations"`
}

// Declarations lists the declarations of every file under a root.
func Declarations(opts DeclarationsOptions) ([]DeclarationsResult, error) {
	if opts.Path == "" {
		opts.Path = "."
	}
	if opts.Jobs == 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if opts.MaxBytes == 0 {
		opts.MaxBytes = defaultMaxBytes
	}

	var keep func(syntax.Category) bool
	if opts.Category != "" {
		want, ok := syntax.ParseCategory(opts.Category)
		if !ok || !want.IsDeclaration() {
			return nil, fmt.Errorf("unknown declaration category %q", opts.Category)
		}
		keep = func(c syntax.Category) bool { return c == want }
	}

	language, err := lookupLanguage(opts.Language)
	if err != nil {
		return nil, err
	}

	files, err := collectFiles(scannerConfig{
		root:     opts.Path,
		language: language,
		maxBytes: opts.MaxBytes,
		include:  opts.Include,
		exclude:  opts.Exclude,
	}, opts.File)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return []DeclarationsResult{}, nil
	}

	results := runWorkers(language, files, opts.Jobs, func(job FileJob, parsed *syntax.Parsed) ([]DeclarationsResult, error) {
		outline, err := buildOutline(parsed.Tree, job.DisplayPath, keep)
		if err != nil {
			return nil, err
		}
		if len(outline.Declarations) == 0 {
			return nil, nil
		}
		return []DeclarationsResult{DeclarationsResult(outline)}, nil
	})
	sort.Slice(results, func(i, j int) bool {
		return results[i].File < results[j].File
	})
	return results, nil
}

// runWorkers parses files on a pool of workers, each with its own parser,
// and gathers what process returns. Files that fail to parse or process are
// logged and skipped.
func runWorkers[T any](
	language Language,
	files []FileJob,
	jobs int,
	process func(job FileJob, parsed *syntax.Parsed) ([]T, error),
) []T {
	results := make(chan T, 128)
	jobQueue := make(chan FileJob, 128)
	var wg sync.WaitGroup

	workerCount := jobs
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(files) {
		workerCount = len(files)
	}

	worker := func() {
		defer wg.Done()
		p := newParser(language)
		for job := range jobQueue {
			parsed, err := p.parseFile(job)
			if err != nil {
				slog.Warn("skipping file", "file", job.DisplayPath, "error", err)
				continue
			}
			out, err := process(job, parsed)
			if err != nil {
				slog.Warn("skipping file", "file", job.DisplayPath, "error", err)
				continue
			}
			for _, r := range out {
				results <- r
			}
		}
	}

	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go worker()
	}

	go func() {
		for _, f := range files {
			jobQueue <- f
		}
		close(jobQueue)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var all []T
	for r := range results {
		all = append(all, r)
	}

	return all
}

// buildOutline collects the package and the declarations of a tree in
// source order. A nil keep keeps every declaration.
func buildOutline(tree *syntax.Tree, file string, keep func(syntax.Category) bool) (FileOutline, error) {
	outline := FileOutline{
		File:         file,
		Declarations: []Declaration{},
	}

	var walkErr error
	tree.Walk(tree.Root, func(id syntax.NodeID) bool {
		if walkErr != nil {
			return false
		}

		c := tree.Category(id)
		switch {
		case c == syntax.Package:
			entry, err := scope.NewEntry(tree, id)
			if err != nil {
				walkErr = err
				return false
			}
			outline.Package = entry.MemberName
			return false
		case !c.IsDeclaration():
			return true
		}

		if keep != nil && !keep(c) {
			return true
		}

		entry, err := scope.NewEntry(tree, id)
		if err != nil {
			walkErr = err
			return false
		}
		enclosing, err := scope.Resolve(tree, id)
		if err != nil {
			walkErr = err
			return false
		}

		outline.Declarations = append(outline.Declarations, Declaration{
			Name:     entry.MemberName,
			Category: c,
			Range:    spanRange(tree.Node(id).Span),
			Depth:    enclosing.Depth(),
			Entry:    entry,
			Scope:    enclosing,
		})
		return true
	})

	if walkErr != nil {
		return FileOutline{}, walkErr
	}
	return outline, nil
}

// truncateText keeps the first max runes of text.
func truncateText(text string, max int) string {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	n := 0
	for i := range text {
		if n == max {
			return text[:i] + "..."
		}
		n++
	}
	return text
}
