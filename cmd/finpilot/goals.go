package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/finpilot/internal/budget"
	"github.com/Veraticus/finpilot/internal/cli"
	"github.com/Veraticus/finpilot/internal/common"
	"github.com/Veraticus/finpilot/internal/model"
	"github.com/Veraticus/finpilot/internal/money"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

const deadlineLayout = "2006-01-02"

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Track savings goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return goalsListCmd().RunE(cmd, args)
		},
	}
	cmd.AddCommand(goalsListCmd())
	cmd.AddCommand(goalsAddCmd())
	cmd.AddCommand(goalsProgressCmd())
	cmd.AddCommand(goalsDeleteCmd())
	return cmd
}

func goalsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List savings goals",
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
			fmt.Print(cli.RenderGoals(a.engine.Store().Snapshot().Goals))
			return nil
		},
	}
}

func goalsAddCmd() *cobra.Command {
	var name, target, deadline, icon string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a savings goal and get a monthly plan",
		Example: `  finpilot goals add --name "Emergency fund" --target 6000 --deadline 2026-12-31
  finpilot goals add`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if name == "" || target == "" {
				form := huh.NewForm(huh.NewGroup(
					huh.NewInput().Title("Goal name").Value(&name).Validate(required("Goal name")),
					huh.NewInput().Title("Target amount").Value(&target).Validate(func(s string) error {
						_, err := money.Parse(s)
						return err
					}),
					huh.NewInput().Title("Deadline (YYYY-MM-DD, optional)").Value(&deadline).Validate(func(s string) error {
						_, err := parseDeadline(s)
						return err
					}),
					huh.NewSelect[string]().Title("Icon").Options(huh.NewOptions(model.GoalIcons...)...).Value(&icon),
				))
				if err := form.RunWithContext(ctx); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						return common.NewUserError("Cancelled", err)
					}
					return fmt.Errorf("failed to read goal: %w", err)
				}
			}

			amount, err := money.Parse(target)
			if err != nil {
				return common.NewUserError("Please enter a valid target amount", err)
			}
			due, err := parseDeadline(deadline)
			if err != nil {
				return common.NewUserError("Deadline must look like 2026-12-31", err)
			}

			a, err := openApp(ctx, os.Stdout)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.signIn(ctx); err != nil {
				return err
			}
			if err := a.engine.AddGoal(ctx, budget.GoalInput{
				Name:         name,
				TargetAmount: amount,
				Deadline:     due,
				Icon:         icon,
			}); err != nil {
				return reported(err)
			}

			goals := a.engine.Store().Snapshot().Goals
			fmt.Print(cli.RenderGoals(goals[len(goals)-1:]))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Goal name")
	cmd.Flags().StringVarP(&target, "target", "t", "", "Target amount")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline as YYYY-MM-DD")
	cmd.Flags().StringVar(&icon, "icon", "", "Emoji shown next to the goal")
	return cmd
}

func goalsProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "progress <goal-id> <amount>",
		Aliases: []string{"contribute"},
		Short:   "Add money to a goal",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := money.Parse(args[1])
			if err != nil {
				return common.NewUserError("Please enter a valid amount", err)
			}

			a, err := openApp(ctx, os.Stdout)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.signIn(ctx); err != nil {
				return err
			}
			if err := a.engine.UpdateGoalProgress(ctx, args[0], amount); err != nil {
				return reported(err)
			}

			for _, g := range a.engine.Store().Snapshot().Goals {
				if g.ID == args[0] {
					fmt.Print(cli.RenderGoals([]model.SavingsGoal{g}))
				}
			}
			return nil
		},
	}
}

func goalsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <goal-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a goal",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, os.Stdout)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.signIn(ctx); err != nil {
				return err
			}

			if !yes {
				label := args[0]
				for _, g := range a.engine.Store().Snapshot().Goals {
					if g.ID == args[0] {
						label = g.Icon + " " + g.Name
					}
				}
				ok, err := cli.NewLineReader(os.Stdin, os.Stdout).Confirm(ctx, fmt.Sprintf("Delete %s?", label))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println(cli.FormatInfo("Kept"))
					return nil
				}
			}

			return reported(a.engine.DeleteGoal(ctx, args[0]))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")
	return cmd
}

func parseDeadline(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(deadlineLayout, s, time.Local)
	if err != nil {
		return nil, err
	}
	end := t.Add(24*time.Hour - time.Second)
	return &end, nil
}
