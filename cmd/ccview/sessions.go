package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccview/ccview/internal/config"
	"github.com/ccview/ccview/internal/transcript"
)

func sessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions <project-dir-name>",
		Short: "List the sessions of a project as TSV, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			sessions, err := transcript.ListSessions(cfg.ProjectsRoot, args[0])
			if err != nil {
				return fmt.Errorf("list sessions: %w", err)
			}

			for _, s := range sessions {
				preview := strings.ReplaceAll(s.Preview, "\n", " ")
				preview = strings.ReplaceAll(preview, "\t", " ")
				fmt.Printf("%s\t%s\t%d\t%s\t%s\n",
					s.SessionID, s.TimestampString(), s.MessageCount, s.GitBranch, preview)
			}
			return nil
		},
	}
}
