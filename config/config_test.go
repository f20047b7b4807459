package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jscope.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
databases = "/data/db"
benchmarks = "bench"

[[projects]]
name = " calculator_app "

[[projects]]
name = "JSON"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/data/db", cfg.Databases)
	require.Equal(t, "bench", cfg.Benchmarks)
	require.Equal(t, []string{"calculator_app", "JSON"}, cfg.Names())

	info, err := cfg.Project("JSON", "origin")
	require.NoError(t, err)
	require.Equal(t, ProjectInfo{
		Name:        "JSON",
		DBPath:      filepath.Join("/data/db", "origin", "JSON.udb"),
		ProjectPath: filepath.Join(filepath.Dir(path), "bench", "JSON"),
	}, info)
}

func TestLoadErrors(t *testing.T) {
	const roots = "databases = \"d\"\nbenchmarks = \"b\"\n"

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing_databases",
			content: "benchmarks = \"b\"\n",
			wantErr: "databases is required",
		},
		{
			name:    "missing_benchmarks",
			content: "databases = \"d\"\n",
			wantErr: "benchmarks is required",
		},
		{
			name:    "syntax",
			content: "databases = ",
			wantErr: "decode",
		},
		{
			name:    "unknown_key",
			content: "database = \"x\"\n",
			wantErr: `unknown key "database"`,
		},
		{
			name:    "missing_name",
			content: roots + "[[projects]]\nname = \"  \"\n",
			wantErr: "projects[0]: name is required",
		},
		{
			name:    "duplicate_name",
			content: roots + "[[projects]]\nname = \"a\"\n[[projects]]\nname = \"a\"\n",
			wantErr: `projects[1]: duplicate name "a"`,
		},
		{
			name:    "path_in_name",
			content: roots + "[[projects]]\nname = \"a/b\"\n",
			wantErr: `projects[0]: name "a/b" must not contain a path`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			require.ErrorContains(t, err, tc.wantErr)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestProject(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "benchmarks.toml"))
	require.NoError(t, err)
	require.Len(t, cfg.Names(), 10)

	t.Run("by_index", func(t *testing.T) {
		info, err := cfg.Project("0", "origin")
		require.NoError(t, err)
		require.Equal(t, "calculator_app", info.Name)
		require.True(t, filepath.IsAbs(info.DBPath))
		require.True(t, filepath.IsAbs(info.ProjectPath))
		require.Equal(t, "calculator_app.udb", filepath.Base(info.DBPath))
		require.Equal(t, "origin", filepath.Base(filepath.Dir(info.DBPath)))
		require.Equal(t, "calculator_app", filepath.Base(info.ProjectPath))
	})

	t.Run("relative_to_file", func(t *testing.T) {
		dir, err := filepath.Abs("testdata")
		require.NoError(t, err)
		info, err := cfg.Project("custom", "")
		require.NoError(t, err)
		require.Equal(t, filepath.Join(dir, "../../../databases", "origin", "custom.udb"), info.DBPath)
		require.Equal(t, filepath.Join(dir, "../../../benchmarks", "custom"), info.ProjectPath)
	})

	t.Run("other_ref", func(t *testing.T) {
		info, err := cfg.Project("jfreechart", "refactored")
		require.NoError(t, err)
		require.Equal(t, "jfreechart.oudb", filepath.Base(info.DBPath))
		require.Equal(t, "refactored", filepath.Base(filepath.Dir(info.DBPath)))
	})

	t.Run("ref_does_not_move_sources", func(t *testing.T) {
		a, err := cfg.Project("JSON", "origin")
		require.NoError(t, err)
		b, err := cfg.Project("JSON", "refactored")
		require.NoError(t, err)
		require.Equal(t, a.ProjectPath, b.ProjectPath)
		require.NotEqual(t, a.DBPath, b.DBPath)
	})

	t.Run("unknown", func(t *testing.T) {
		for _, sel := range []string{"nope", "10", "-1"} {
			_, err := cfg.Project(sel, "origin")
			require.ErrorIs(t, err, ErrUnknownProject, sel)
		}
	})

	t.Run("invalid_ref", func(t *testing.T) {
		_, err := cfg.Project("JSON", "../x")
		require.ErrorContains(t, err, `invalid ref "../x"`)
	})
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	want := filepath.Join(root, FileName)
	if got, err := Find(nested); err == nil {
		require.NotEqual(t, want, got)
	} else {
		require.ErrorIs(t, err, ErrNoConfig)
	}

	require.NoError(t, os.WriteFile(want, []byte("databases = \"d\"\nbenchmarks = \"b\"\n"), 0644))

	got, err := Find(nested)
	require.NoError(t, err)
	require.Equal(t, want, got)

	got, err = Find(root)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
