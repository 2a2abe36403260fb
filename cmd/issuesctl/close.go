package main

import (
	"github.com/spf13/cobra"

	"github.com/sumire/issuetracker/internal/domain"
	"github.com/sumire/issuetracker/internal/output"
)

func newCloseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "close <id>",
		Short: "Mark an issue as closed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}

			closed := false
			if err := svc.Update(cmd.Context(), args[0], domain.IssuePatch{Open: &closed}); err != nil {
				return err
			}

			a.ui.Success("Closed issue %s", output.Cyan(args[0]))
			return nil
		},
	}
}
