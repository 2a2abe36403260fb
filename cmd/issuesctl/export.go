package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		project string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump every issue of a project as JSON or YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unsupported format %q: use json or yaml", format)
			}

			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}

			issues, err := svc.List(cmd.Context(), project, nil)
			if err != nil {
				return err
			}

			if format == "yaml" {
				enc := yaml.NewEncoder(a.ui.Out)
				enc.SetIndent(2)
				if err := enc.Encode(issues); err != nil {
					return fmt.Errorf("encode yaml: %w", err)
				}
				return enc.Close()
			}

			enc := json.NewEncoder(a.ui.Out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(issues); err != nil {
				return fmt.Errorf("encode json: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Project name")
	cmd.Flags().StringVar(&format, "format", "json", "Output format (json|yaml)")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
