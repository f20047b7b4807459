package jscope

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// defaultIgnoreDirs returns the default list of directories to ignore.
func defaultIgnoreDirs() map[string]struct{} {
	return map[string]struct{}{
		".git":    {},
		".hg":     {},
		".svn":    {},
		".jj":     {},
		".idea":   {},
		".gradle": {},
		".mvn":    {},
		"build":   {},
		"target":  {},
		"out":     {},
		"bin":     {},
		".cache":  {},
	}
}

// scannerConfig holds scanner configuration.
type scannerConfig struct {
	root       string
	language   Language
	ignoreDirs map[string]struct{}
	maxBytes   int64
	include    []string
	exclude    []string
}

// scanner discovers files for processing.
type scanner struct {
	cfg     scannerConfig
	include []glob.Glob
	exclude []glob.Glob
}

// newScanner creates a new scanner with the given configuration.
func newScanner(cfg scannerConfig) (*scanner, error) {
	if cfg.ignoreDirs == nil {
		cfg.ignoreDirs = defaultIgnoreDirs()
	}
	include, err := compileGlobs(cfg.include)
	if err != nil {
		return nil, err
	}
	exclude, err := compileGlobs(cfg.exclude)
	if err != nil {
		return nil, err
	}
	return &scanner{cfg: cfg, include: include, exclude: exclude}, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// collect finds all matching files and returns them as FileJobs.
func (s *scanner) collect() (FileSet, error) {
	absRoot, err := filepath.Abs(s.cfg.root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	var jobs FileSet
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == absRoot {
				return nil
			}
			if s.shouldIgnoreDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.isSupportedFile(d.Name()) {
			return nil
		}

		if s.cfg.maxBytes > 0 {
			info, err := d.Info()
			if err != nil {
				// Skip files we can't stat
				return nil
			}
			if info.Size() > s.cfg.maxBytes {
				return nil
			}
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		if !s.selected(rel) {
			return nil
		}

		jobs = append(jobs, FileJob{
			AbsPath:     path,
			DisplayPath: rel,
		})
		return nil
	})

	if err != nil {
		return nil, err
	}

	return jobs, nil
}

// collectSingle returns a single file as a FileJob.
func (s *scanner) collectSingle(filePath string) (FileJob, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return FileJob{}, fmt.Errorf("resolve path: %w", err)
	}

	return FileJob{
		AbsPath:     absPath,
		DisplayPath: filepath.Base(absPath),
	}, nil
}

// selected applies the include and exclude patterns to a slash-separated
// relative path.
func (s *scanner) selected(rel string) bool {
	if len(s.include) > 0 {
		ok := false
		for _, g := range s.include {
			if g.Match(rel) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	for _, g := range s.exclude {
		if g.Match(rel) {
			return false
		}
	}
	return true
}

func (s *scanner) shouldIgnoreDir(name string) bool {
	_, ok := s.cfg.ignoreDirs[name]
	return ok
}

func (s *scanner) isSupportedFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, e := range s.cfg.language.Extensions() {
		if ext == e {
			return true
		}
	}
	return false
}
