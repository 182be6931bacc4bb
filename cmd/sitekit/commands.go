package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-sitekit/pkg/enhance"
	"github.com/goliatone/go-sitekit/pkg/fontsize"
	"github.com/goliatone/go-sitekit/pkg/prompt"
)

func newEnhanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "enhance [page.html]",
		Short: "Run every enhancement step and print the resulting page",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.openPage(cmd.Context(), inputArg(args))
			if err != nil {
				return err
			}
			if a.output == "" {
				return p.Render(a.stdout)
			}
			if err := a.writeOutput(p); err != nil {
				return err
			}
			printReport(a.stdout, stateReport("enhanced", p.State()))
			return nil
		},
	}
}

func newThemeCmd(a *app) *cobra.Command {
	var toggles int
	cmd := &cobra.Command{
		Use:   "theme [page.html]",
		Short: "Click the theme button and store the preference",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.openPage(cmd.Context(), inputArg(args))
			if err != nil {
				return err
			}
			for i := 0; i < toggles; i++ {
				if err := p.Click(cmd.Context(), "#"+enhance.ThemeButtonID); err != nil {
					return err
				}
			}
			if err := a.writeOutput(p); err != nil {
				return err
			}
			printReport(a.stdout, stateReport("theme", p.State()))
			return nil
		},
	}
	cmd.Flags().IntVarP(&toggles, "toggles", "n", 1, "how many times to click the theme button")
	return cmd
}

func newFontCmd(a *app) *cobra.Command {
	var (
		key   string
		times int
	)
	cmd := &cobra.Command{
		Use:   "font [page.html]",
		Short: "Press ArrowUp or ArrowDown to change the body font size",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pressed string
			switch strings.ToLower(key) {
			case "up":
				pressed = fontsize.KeyIncrease
			case "down":
				pressed = fontsize.KeyDecrease
			default:
				return fmt.Errorf("unknown key %q, want up or down", key)
			}
			p, err := a.openPage(cmd.Context(), inputArg(args))
			if err != nil {
				return err
			}
			for i := 0; i < times; i++ {
				if _, err := p.KeyDown(cmd.Context(), pressed); err != nil {
					return err
				}
			}
			if err := a.writeOutput(p); err != nil {
				return err
			}
			printReport(a.stdout, stateReport("font", p.State()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&key, "key", "k", "up", "arrow key to press: up or down")
	cmd.Flags().IntVarP(&times, "times", "n", 1, "how many times to press it")
	return cmd
}

func newSubmitCmd(a *app) *cobra.Command {
	var (
		formSelector string
		values       []string
	)
	cmd := &cobra.Command{
		Use:     "submit [page.html]",
		Short:   "Fill form fields and submit the form",
		Example: `  sitekit submit contacts.html --set '#name=Олена' --set '#email=olena@example.com'`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.openPage(cmd.Context(), inputArg(args))
			if err != nil {
				return err
			}
			for _, pair := range values {
				selector, value, ok := strings.Cut(pair, "=")
				if !ok {
					return fmt.Errorf("--set %q: want selector=value", pair)
				}
				if err := p.Fill(strings.TrimSpace(selector), value); err != nil {
					return fmt.Errorf("--set %q: %w", pair, err)
				}
			}
			if err := p.Submit(cmd.Context(), formSelector); err != nil {
				return err
			}
			if err := a.writeOutput(p); err != nil {
				return err
			}
			printReport(a.stdout, submissionReport(p))
			return nil
		},
	}
	cmd.Flags().StringVarP(&formSelector, "form", "f", "form", "selector of the form to submit")
	cmd.Flags().StringArrayVar(&values, "set", nil, "selector=value to type before submitting (repeatable)")
	return cmd
}

func newFillCmd(a *app) *cobra.Command {
	var formSelector string
	cmd := &cobra.Command{
		Use:   "fill [page.html]",
		Short: "Ask for each form field interactively, then submit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := a.openPage(ctx, args[0])
			if err != nil {
				return err
			}
			fields, err := p.Fields(formSelector)
			if err != nil {
				return err
			}
			driver := prompt.NewSurveyDriver(a.stdout)
			answers, err := prompt.Fill(ctx, driver, fields, p.Rules())
			if err != nil {
				return err
			}
			for _, answer := range answers {
				if err := p.Fill(answer.Selector, answer.Value); err != nil {
					return err
				}
			}
			if err := p.Submit(ctx, formSelector); err != nil {
				return err
			}
			if err := a.writeOutput(p); err != nil {
				return err
			}
			return driver.Info(ctx, submissionReport(p))
		},
	}
	cmd.Flags().StringVarP(&formSelector, "form", "f", "form", "selector of the form to fill")
	return cmd
}
