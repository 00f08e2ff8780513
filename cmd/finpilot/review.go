package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Veraticus/finpilot/internal/cli"
	"github.com/Veraticus/finpilot/internal/common"
	"github.com/Veraticus/finpilot/internal/tui"
	"github.com/spf13/cobra"
)

func reviewCmd() *cobra.Command {
	var (
		year, month int
		plain       bool
	)

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Show a month in review",
		Long: `Show income, spending, savings and highlights for one month.
Defaults to the current month.`,
		Example: `  finpilot review
  finpilot review --year 2026 --month 9 --plain`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			now := time.Now()
			if year == 0 {
				year = now.Year()
			}
			if month == 0 {
				month = int(now.Month())
			}
			if month < 1 || month > 12 {
				return common.NewUserError("Month must be between 1 and 12", common.ErrInvalidInput)
			}

			if plain {
				a, err := openApp(ctx, os.Stdout)
				if err != nil {
					return err
				}
				defer a.Close()

				if _, err := a.signIn(ctx); err != nil {
					return err
				}
				review, err := a.engine.MonthlyReview(ctx, year, month)
				if err != nil {
					return common.NewUserError("Could not load the monthly review", err)
				}
				fmt.Print(cli.RenderReview(review))
				return nil
			}

			toasts := tui.NewToasts()
			a, err := openApp(ctx, io.Discard, toasts)
			if err != nil {
				return err
			}
			defer a.Close()

			session, err := a.signIn(ctx)
			if err != nil {
				return err
			}

			return tui.Run(ctx, a.engine,
				tui.WithToasts(toasts),
				tui.WithUserName(session.Name),
				tui.WithAnimation(appCfg.UI.AnimationDuration()),
				tui.WithReview(year, month),
			)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year (default: current)")
	cmd.Flags().IntVar(&month, "month", 0, "Month 1-12 (default: current)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print the review instead of opening the dashboard")
	return cmd
}
