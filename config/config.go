// Package config holds the project registry: where the benchmark sources
// and their analysis databases live, and which projects exist.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// FileName is the registry file looked up when none is given.
	FileName = "jscope.toml"

	// OriginRef is the ref whose databases use the .udb extension. Every
	// other ref uses .oudb.
	OriginRef = "origin"
)

// ErrNoConfig is returned by Find when no registry file exists.
var ErrNoConfig = errors.New("no " + FileName + " found")

// ErrUnknownProject is returned when a selector names no registered project.
var ErrUnknownProject = errors.New("unknown project")

// Config is a project registry loaded from TOML.
type Config struct {
	Databases  string    `toml:"databases"`
	Benchmarks string    `toml:"benchmarks"`
	Projects   []Project `toml:"projects"`

	// base is the directory relative roots resolve against.
	base string
}

// Project is one registry entry.
type Project struct {
	Name string `toml:"name"`
}

// ProjectInfo locates one project for one ref. All paths are absolute.
type ProjectInfo struct {
	Name        string `json:"project_name"`
	DBPath      string `json:"db_path"`
	ProjectPath string `json:"project_path"`
}

// Find looks for FileName in dir and then in each of its parents.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, FileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoConfig
		}
		dir = parent
	}
}

// Load reads a TOML registry. Relative roots resolve against the directory
// of the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	cfg.base = filepath.Dir(abs)

	normalizeProjects(&cfg)
	if err := validateRoots(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := validateProjects(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func normalizeProjects(cfg *Config) {
	cfg.Databases = strings.TrimSpace(cfg.Databases)
	cfg.Benchmarks = strings.TrimSpace(cfg.Benchmarks)
	for i := range cfg.Projects {
		cfg.Projects[i].Name = strings.TrimSpace(cfg.Projects[i].Name)
	}
}

func validateRoots(cfg *Config) error {
	if cfg.Databases == "" {
		return errors.New("databases is required")
	}
	if cfg.Benchmarks == "" {
		return errors.New("benchmarks is required")
	}
	return nil
}

func validateProjects(cfg *Config) error {
	seen := make(map[string]struct{}, len(cfg.Projects))
	for i, p := range cfg.Projects {
		if p.Name == "" {
			return fmt.Errorf("projects[%d]: name is required", i)
		}
		if filepath.Base(p.Name) != p.Name || p.Name == "." || p.Name == ".." {
			return fmt.Errorf("projects[%d]: name %q must not contain a path", i, p.Name)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("projects[%d]: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}

// Names lists the registered projects in registry order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Projects))
	for _, p := range c.Projects {
		names = append(names, p.Name)
	}
	return names
}

// Project locates a project by name, or by its index in the registry, for
// the given ref. An empty ref means OriginRef.
func (c *Config) Project(selector, ref string) (ProjectInfo, error) {
	name, err := c.lookup(selector)
	if err != nil {
		return ProjectInfo{}, err
	}

	if ref == "" {
		ref = OriginRef
	}
	if filepath.Base(ref) != ref || ref == "." || ref == ".." {
		return ProjectInfo{}, fmt.Errorf("invalid ref %q", ref)
	}

	ext := ".oudb"
	if ref == OriginRef {
		ext = ".udb"
	}

	dbPath, err := c.abs(filepath.Join(c.Databases, ref, name+ext))
	if err != nil {
		return ProjectInfo{}, err
	}
	projectPath, err := c.abs(filepath.Join(c.Benchmarks, name))
	if err != nil {
		return ProjectInfo{}, err
	}

	return ProjectInfo{
		Name:        name,
		DBPath:      dbPath,
		ProjectPath: projectPath,
	}, nil
}

func (c *Config) lookup(selector string) (string, error) {
	for _, p := range c.Projects {
		if p.Name == selector {
			return p.Name, nil
		}
	}
	if i, err := strconv.Atoi(selector); err == nil {
		if i < 0 || i >= len(c.Projects) {
			return "", fmt.Errorf("%w: index %d out of range [0, %d)", ErrUnknownProject, i, len(c.Projects))
		}
		return c.Projects[i].Name, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProject, selector)
}

func (c *Config) abs(path string) (string, error) {
	if !filepath.IsAbs(path) && c.base != "" {
		path = filepath.Join(c.base, path)
	}
	return filepath.Abs(path)
}
