package main

import (
	"context"

	"github.com/arjunmahishi/jscope/config"
	"github.com/urfave/cli/v3"
)

func projectsCommand() *cli.Command {
	return &cli.Command{
		Name:  "projects",
		Usage: "list registered projects with their source and database paths",
		Description: "Without --project every registered project is listed.\n\n" +
			"Examples:\n" +
			"  jscope projects\n" +
			"  jscope --ref refactored --project 3 projects\n" +
			"  jscope --config bench.toml projects",
		Flags: []cli.Flag{
			compactFlag(),
		},
		Action: runProjects,
	}
}

func runProjects(_ context.Context, cmd *cli.Command) error {
	setupLogging(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	selectors := cfg.Names()
	if project := cmd.String("project"); project != "" {
		selectors = []string{project}
	}

	infos := make([]config.ProjectInfo, 0, len(selectors))
	for _, sel := range selectors {
		info, err := cfg.Project(sel, cmd.String("ref"))
		if err != nil {
			return err
		}
		infos = append(infos, info)
	}

	return writeJSON(infos, cmd.Bool("compact"))
}
