package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	leadform "github.com/goliatone/go-leadform"
	"github.com/goliatone/go-leadform/pkg/countries"
)

func renderCmd(configPath *string) *cobra.Command {
	var (
		formID string
		output string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a form as a standalone HTML fragment",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			opts := leadform.RenderOptions{}
			if formID == leadform.InquiryFormID {
				code, err := a.generator().Generate()
				if err != nil {
					return err
				}
				opts.Challenge = code.String()
				list := countries.NewTolerant(a.countries(), a.logger).List(cmd.Context())
				opts.Options = map[string][]string{"countries": list}
			}

			formOpts, err := a.formOptions()
			if err != nil {
				return err
			}
			html, err := leadform.GenerateHTML(cmd.Context(), formID, opts, formOpts...)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(html)
				return err
			}
			if err := os.WriteFile(output, html, 0o644); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&formID, "form", "f", leadform.InquiryFormID, "Form operation id")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, stdout when empty")
	return cmd
}
