package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccview/ccview/internal/config"
	"github.com/ccview/ccview/internal/transcript"
)

func projectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List known projects as TSV (directory name, path, session count)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			projects, err := transcript.ListProjects(cfg.ProjectsRoot)
			if err != nil {
				return fmt.Errorf("list projects: %w", err)
			}

			for _, p := range projects {
				fmt.Printf("%s\t%s\t%d\n", p.DirName, p.OriginalPath, p.SessionCount)
			}
			return nil
		},
	}
}
