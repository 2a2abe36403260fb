package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sumire/issuetracker/internal/output"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}

			issue, err := svc.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("show issue %s: %w", args[0], err)
			}

			w := a.ui.Out
			fmt.Fprintf(w, "%s  %s\n", output.Cyan(issue.ID), issue.IssueTitle)
			fmt.Fprintf(w, "  Project:     %s\n", issue.Project)
			fmt.Fprintf(w, "  State:       %s\n", output.OpenColor(issue.Open))
			fmt.Fprintf(w, "  Status:      %s\n", issue.StatusText)
			fmt.Fprintf(w, "  Created by:  %s\n", issue.CreatedBy)
			fmt.Fprintf(w, "  Assigned to: %s\n", issue.AssignedTo)
			fmt.Fprintf(w, "  Created:     %s\n", issue.CreatedOn.Format(time.RFC3339))
			fmt.Fprintf(w, "  Updated:     %s\n", issue.UpdatedOn.Format(time.RFC3339))
			fmt.Fprintf(w, "\n%s\n", issue.IssueText)
			return nil
		},
	}
}
