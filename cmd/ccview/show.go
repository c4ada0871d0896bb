package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ccview/ccview/internal/config"
	"github.com/ccview/ccview/internal/render"
	"github.com/ccview/ccview/internal/transcript"
)

func showCmd() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "show <project-dir-name> <session-id>",
		Short: "Print a full conversation with role coloring",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			messages, err := transcript.LoadSession(cfg.ProjectsRoot, args[0], args[1])
			if err != nil {
				return fmt.Errorf("load session: %w", err)
			}

			if width == 0 {
				if term.IsTerminal(int(os.Stdout.Fd())) {
					if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
						width = w
					}
				}
			}

			fmt.Print(render.Conversation(messages, render.Options{Width: width}))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Wrap width (0 = terminal width, or no wrap when piped)")

	return cmd
}
