package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sumire/issuetracker/internal/output"
)

func newListCmd(a *app) *cobra.Command {
	var (
		project string
		filters []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the issues of a project",
		Example: `  issuesctl list --project apitest
  issuesctl list --project apitest --filter open=true --filter assigned_to=joe`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := parseFilters(filters)
			if err != nil {
				return err
			}

			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}

			issues, err := svc.List(cmd.Context(), project, params)
			if err != nil {
				return err
			}

			if len(issues) == 0 {
				a.ui.Info("No issues in project %s.", output.Cyan(project))
				return nil
			}

			table := a.ui.Table([]string{"ID", "Title", "Created By", "Assigned To", "Status", "State", "Updated"})
			for _, issue := range issues {
				_ = table.Append([]string{
					issue.ID,
					issue.IssueTitle,
					issue.CreatedBy,
					issue.AssignedTo,
					issue.StatusText,
					output.OpenColor(issue.Open),
					issue.UpdatedOn.Format("2006-01-02 15:04"),
				})
			}
			return table.Render()
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Project name")
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "Exact-match filter as field=value (repeatable)")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func parseFilters(filters []string) (map[string][]string, error) {
	params := make(map[string][]string, len(filters))
	for _, f := range filters {
		key, value, ok := strings.Cut(f, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q: expected field=value", f)
		}
		params[key] = append(params[key], value)
	}
	return params, nil
}
