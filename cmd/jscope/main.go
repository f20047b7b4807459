package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/arjunmahishi/jscope/config"
	"github.com/arjunmahishi/jscope/jscope"
	"github.com/arjunmahishi/jscope/output"
	"github.com/urfave/cli/v3"
)

func main() {
	// Import side effect: register Java language
	_ = jscope.Java{}

	app := &cli.Command{
		Name:  "jscope",
		Usage: "resolve the enclosing declarations of Java code",
		Flags: rootFlags(),
		Commands: []*cli.Command{
			scopeCommand(),
			queryCommand(),
			outlineCommand(),
			declarationsCommand(),
			projectsCommand(),
			examplesCommand(),
			skillCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		output.WriteError(os.Stderr, err)
		os.Exit(1)
	}
}

func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "project registry (TOML); defaults to the nearest " + config.FileName,
		},
		&cli.StringFlag{
			Name:  "project",
			Usage: "project name or index; its sources become the default --path",
		},
		&cli.StringFlag{
			Name:  "ref",
			Value: config.OriginRef,
			Usage: "ref whose database paths are reported",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "log skipped files and other diagnostics",
		},
	}
}

// setupLogging installs the default logger. Diagnostics go to stderr so
// stdout stays valid JSON.
func setupLogging(cmd *cli.Command) {
	level := slog.LevelWarn
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadConfig reads the registry named by --config, or the nearest
// jscope.toml above the working directory.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	path := cmd.String("config")
	if path == "" {
		found, err := config.Find(".")
		if err != nil {
			return nil, fmt.Errorf("%w: pass --config or create one (see config/testdata/benchmarks.toml)", err)
		}
		slog.Debug("using registry", "path", found)
		path = found
	}
	return config.Load(path)
}

// rootPath picks the directory to scan: --path when given, else the
// selected project's sources, else the working directory.
func rootPath(cmd *cli.Command) (string, error) {
	if cmd.IsSet("path") {
		return cmd.String("path"), nil
	}
	project := cmd.String("project")
	if project == "" {
		return cmd.String("path"), nil
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", err
	}
	info, err := cfg.Project(project, cmd.String("ref"))
	if err != nil {
		return "", err
	}
	slog.Debug("using project", "name", info.Name, "path", info.ProjectPath)
	return info.ProjectPath, nil
}

func pathFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "path",
		Value: ".",
		Usage: "root path to scan",
	}
}

func compactFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "compact",
		Usage: "minimize output",
	}
}

func scanFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "only scan files whose relative path matches this glob (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "skip files whose relative path matches this glob (repeatable)",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Value:   runtime.NumCPU(),
			Usage:   "number of parallel workers",
		},
		&cli.Int64Flag{
			Name:  "max-bytes",
			Value: 2 * 1024 * 1024,
			Usage: "skip files larger than this",
		},
	}
}

func scopeCommand() *cli.Command {
	return &cli.Command{
		Name:  "scope",
		Usage: "show the declarations enclosing a source position",
		Description: "A bare file name that does not exist in the working directory is\n" +
			"looked up under --path (or the --project sources).\n\n" +
			"Examples:\n" +
			"  jscope scope -f src/Calc.java -l 12 -c 9\n" +
			"  jscope --project calculator_app scope -f Calc.java -l 12 -c 9",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "file to inspect (required)",
				Required: true,
			},
			&cli.IntFlag{
				Name:     "line",
				Aliases:  []string{"l"},
				Usage:    "1-based line (required)",
				Required: true,
			},
			&cli.IntFlag{
				Name:     "column",
				Aliases:  []string{"c"},
				Usage:    "1-based column (required)",
				Required: true,
			},
			pathFlag(),
			compactFlag(),
		},
		Action: runScope,
	}
}

func runScope(_ context.Context, cmd *cli.Command) error {
	setupLogging(cmd)

	root, err := rootPath(cmd)
	if err != nil {
		return err
	}

	result, err := jscope.Scope(jscope.ScopeOptions{
		File:   cmd.String("file"),
		Path:   root,
		Line:   cmd.Int("line"),
		Column: cmd.Int("column"),
	})
	if err != nil {
		return err
	}

	return writeJSON(result, cmd.Bool("compact"))
}

func queryCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "query",
			Aliases: []string{"q"},
			Usage:   "tree-sitter query string",
		},
		&cli.StringFlag{
			Name:  "query-file",
			Usage: "path to a tree-sitter query file",
		},
		pathFlag(),
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "single file to query",
		},
		compactFlag(),
	}
	return &cli.Command{
		Name:   "query",
		Usage:  "run a tree-sitter query and resolve the scope of every capture",
		Flags:  append(flags, scanFlags()...),
		Action: runQuery,
	}
}

func runQuery(_ context.Context, cmd *cli.Command) error {
	setupLogging(cmd)

	querySource, err := resolveQuery(cmd.String("query"), cmd.String("query-file"))
	if err != nil {
		return err
	}
	root, err := rootPath(cmd)
	if err != nil {
		return err
	}

	matches, err := jscope.Query(jscope.QueryOptions{
		Query:    querySource,
		Path:     root,
		File:     cmd.String("file"),
		Include:  cmd.StringSlice("include"),
		Exclude:  cmd.StringSlice("exclude"),
		Jobs:     cmd.Int("jobs"),
		MaxBytes: cmd.Int64("max-bytes"),
	})
	if err != nil {
		return err
	}

	return writeJSON(matches, cmd.Bool("compact"))
}

func resolveQuery(text, filePath string) (string, error) {
	if text != "" && filePath != "" {
		return "", errors.New("use --query or --query-file, not both")
	}
	if text != "" {
		return text, nil
	}
	if filePath == "" {
		return "", errors.New("--query or --query-file is required")
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func outlineCommand() *cli.Command {
	return &cli.Command{
		Name:  "outline",
		Usage: "list the declarations of a file with their scopes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "file to analyze (required)",
				Required: true,
			},
			compactFlag(),
		},
		Action: runOutline,
	}
}

func runOutline(_ context.Context, cmd *cli.Command) error {
	setupLogging(cmd)

	outline, err := jscope.Outline(jscope.OutlineOptions{
		File: cmd.String("file"),
	})
	if err != nil {
		return err
	}

	return writeJSON(outline, cmd.Bool("compact"))
}

func declarationsCommand() *cli.Command {
	flags := []cli.Flag{
		pathFlag(),
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "single file to analyze",
		},
		&cli.StringFlag{
			Name:  "category",
			Usage: "filter: class, interface, annotation, method",
		},
		compactFlag(),
	}
	return &cli.Command{
		Name:   "declarations",
		Usage:  "list the declarations of every file under a root",
		Flags:  append(flags, scanFlags()...),
		Action: runDeclarations,
	}
}

func runDeclarations(_ context.Context, cmd *cli.Command) error {
	setupLogging(cmd)

	root, err := rootPath(cmd)
	if err != nil {
		return err
	}

	results, err := jscope.Declarations(jscope.DeclarationsOptions{
		Path:     root,
		File:     cmd.String("file"),
		Category: cmd.String("category"),
		Include:  cmd.StringSlice("include"),
		Exclude:  cmd.StringSlice("exclude"),
		Jobs:     cmd.Int("jobs"),
		MaxBytes: cmd.Int64("max-bytes"),
	})
	if err != nil {
		return err
	}

	return writeJSON(results, cmd.Bool("compact"))
}

func writeJSON(v any, compact bool) error {
	return output.New(output.Config{Compact: compact}).Write(v)
}
