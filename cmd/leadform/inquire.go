package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"

	"github.com/spf13/cobra"

	leadform "github.com/goliatone/go-leadform"
	"github.com/goliatone/go-leadform/pkg/countries"
	pkgmodel "github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/renderers/tui"
	"github.com/goliatone/go-leadform/pkg/session"
)

const maxInquiryRounds = 5

// collector prompts for form values. *tui.Renderer satisfies it.
type collector interface {
	Collect(ctx context.Context, form pkgmodel.FormDefinition, opts leadform.RenderOptions, only []string) (pkgmodel.Values, error)
}

func inquireCmd(configPath *string) *cobra.Command {
	var maxAttempts int

	cmd := &cobra.Command{
		Use:   "inquire",
		Short: "Fill in and send the inquiry form from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			forms, err := a.forms(ctx)
			if err != nil {
				return err
			}
			sub, err := a.submitter()
			if err != nil {
				return err
			}
			ctrl, err := session.NewController("cli", forms.Inquiry, a.sessionOptions(sub)...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			prompts := tui.New(
				tui.WithPromptDriver(tui.NewSurveyDriver(out)),
				tui.WithMaxAttempts(maxAttempts),
			)
			list := countries.NewTolerant(a.countries(), a.logger).List(ctx)

			err = runInquiry(ctx, ctrl, prompts, list, out)
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(out, "Inquiry cancelled.")
				return nil
			}
			return err
		},
	}
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 3, "Re-prompts per field before giving up, 0 for unlimited")
	return cmd
}

// runInquiry prompts for every field, submits and waits for delivery. After
// a rejected attempt only the failing fields are asked again; a failed
// delivery asks for nothing and retries with the same values.
func runInquiry(ctx context.Context, ctrl *session.Controller, prompts collector, countryList []string, out io.Writer) error {
	var only []string
	for round := 0; round < maxInquiryRounds; round++ {
		snap := ctrl.Snapshot()
		opts := leadform.RenderOptions{
			Values:    snap.Values,
			Errors:    snap.Errors,
			Challenge: snap.Challenge.String(),
			Options:   map[string][]string{"countries": countryList},
		}
		if snap.Status == session.StatusFailed {
			opts.FormErrors = []string{"We could not send your inquiry. Please try again."}
		}

		if round == 0 || len(only) > 0 {
			values, err := prompts.Collect(ctx, ctrl.Form(), opts, only)
			if err != nil {
				return err
			}
			if err := ctrl.SetValues(values); err != nil {
				return err
			}
		}

		outcome, err := ctrl.Submit(ctx)
		if err != nil {
			return err
		}
		if outcome != session.OutcomeSubmitting {
			only = failedFields(ctrl.Snapshot().Errors)
			continue
		}

		if err := ctrl.Wait(ctx); err != nil {
			return err
		}
		snap = ctrl.Snapshot()
		if snap.Status == session.StatusSucceeded {
			fmt.Fprintln(out, "Inquiry sent. We will get back to you soon.")
			return nil
		}
		fmt.Fprintf(out, "Delivery failed: %s\n", snap.LastError)
		only = nil
	}
	return fmt.Errorf("inquire: giving up after %d attempts", maxInquiryRounds)
}

func failedFields(errs pkgmodel.ValidationResult) []string {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
