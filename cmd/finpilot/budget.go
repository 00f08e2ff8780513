package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Veraticus/finpilot/internal/cli"
	"github.com/Veraticus/finpilot/internal/common"
	"github.com/Veraticus/finpilot/internal/model"
	"github.com/Veraticus/finpilot/internal/money"
	"github.com/Veraticus/finpilot/internal/tui"
	"github.com/Veraticus/finpilot/internal/tui/themes"
	"github.com/Veraticus/finpilot/internal/vocab"
	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	var (
		plain bool
		theme string
	)

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Open the live budget dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if plain {
				a, err := openApp(ctx, os.Stdout)
				if err != nil {
					return err
				}
				defer a.Close()

				if _, err := a.signIn(ctx); err != nil {
					return err
				}
				fmt.Println(cli.RenderDashboard(a.engine.Store().Snapshot()))
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
				tui.WithTheme(themes.GetTheme(theme)),
				tui.WithToasts(toasts),
				tui.WithUserName(session.Name),
				tui.WithAnimation(appCfg.UI.AnimationDuration()),
			)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print the budget once instead of opening the dashboard")
	cmd.Flags().StringVar(&theme, "theme", "default", "Dashboard theme (default, catppuccin-mocha)")
	return cmd
}

func predictCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "predict <salary>",
		Short: "Plan this month's budget from a salary",
		Example: `  finpilot predict 5000
  finpilot predict '$4,250.50'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			salary, err := money.Parse(args[0])
			if err != nil {
				return common.NewUserError("Please enter a valid salary", err)
			}

			a, err := openApp(ctx, os.Stdout)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.signIn(ctx); err != nil {
				return err
			}
			if _, err := a.engine.PredictBudget(ctx, salary); err != nil {
				return reported(err)
			}

			fmt.Println(cli.RenderDashboard(a.engine.Store().Snapshot()))
			return nil
		},
	}
}

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transactions"},
		Short:   "Record and list transactions",
	}
	cmd.AddCommand(txAddCmd())
	cmd.AddCommand(txListCmd())
	cmd.AddCommand(txCategoryCmd())
	return cmd
}

func txAddCmd() *cobra.Command {
	var category, amount, kind, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense or income",
		Example: `  finpilot tx add --category Food --amount 42.50 --description "groceries"
  finpilot tx add --category Savings --amount 500 --kind income`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			id, err := categoryID(category)
			if err != nil {
				return err
			}
			value, err := money.Parse(amount)
			if err != nil {
				return common.NewUserError("Please enter a valid amount", err)
			}
			txKind, err := model.ParseTransactionKind(kind)
			if err != nil {
				return common.NewUserError("Kind must be expense or income", err)
			}

			a, err := openApp(ctx, os.Stdout)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.signIn(ctx); err != nil {
				return err
			}
			return reported(a.engine.AddTransaction(ctx, id, value, txKind, description))
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category name ("+strings.Join(vocab.Names(), ", ")+")")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount, e.g. 42.50")
	cmd.Flags().StringVarP(&kind, "kind", "k", string(model.KindExpense), "expense or income")
	cmd.Flags().StringVarP(&description, "description", "d", "", "What it was for")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func txListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your transaction history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, os.Stdout)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.signIn(ctx); err != nil {
				return err
			}

			st := a.engine.Store().Snapshot()
			fmt.Println(cli.RenderTransactions(st.Transactions, st.Categories))
			return nil
		},
	}
}

func txCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "category <name>",
		Short: "List the transactions of one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := categoryID(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(ctx, os.Stdout)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.signIn(ctx); err != nil {
				return err
			}

			txns, err := a.engine.CategoryTransactions(ctx, id)
			if err != nil {
				return err
			}
			fmt.Println(cli.RenderTransactions(txns, a.engine.Store().Snapshot().Categories))
			return nil
		},
	}
}

func categoryID(name string) (string, error) {
	id, err := vocab.CategoryIDForName(strings.TrimSpace(name))
	if err != nil {
		return "", common.NewUserError(
			fmt.Sprintf("Unknown category %q. Choose one of: %s", name, strings.Join(vocab.Names(), ", ")),
			err,
		)
	}
	return id, nil
}
