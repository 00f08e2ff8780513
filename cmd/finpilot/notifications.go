package main

import (
	"fmt"

	"github.com/Veraticus/finpilot/internal/cli"
	"github.com/spf13/cobra"
)

func notificationsCmd() *cobra.Command {
	var (
		limit int
		keep  int
	)

	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"log"},
		Short:   "Show recent success and error messages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if cmd.Flags().Changed("prune") {
				removed, err := store.PruneNotifications(ctx, keep)
				if err != nil {
					return fmt.Errorf("failed to prune notifications: %w", err)
				}
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Removed %d old notifications", removed)))
				return nil
			}

			entries, err := store.RecentNotifications(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to load notifications: %w", err)
			}
			fmt.Print(cli.RenderNotifications(entries))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "How many entries to show")
	cmd.Flags().IntVar(&keep, "prune", 100, "Delete all but the newest N entries")
	return cmd
}
