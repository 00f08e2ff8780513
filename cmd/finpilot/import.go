package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/finpilot/internal/classification"
	"github.com/Veraticus/finpilot/internal/cli"
	"github.com/Veraticus/finpilot/internal/common"
	"github.com/Veraticus/finpilot/internal/config"
	"github.com/Veraticus/finpilot/internal/importer"
	"github.com/Veraticus/finpilot/internal/model"
	"github.com/Veraticus/finpilot/internal/money"
	"github.com/Veraticus/finpilot/internal/ofx"
	"github.com/Veraticus/finpilot/internal/plaid"
	"github.com/Veraticus/finpilot/internal/simplefin"
	"github.com/Veraticus/finpilot/internal/vocab"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// importFlags are shared by every import source.
type importFlags struct {
	category string
	since    string
	dryRun   bool
	auto     bool
}

func (f *importFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.category, "category", "c", vocab.FallbackCategory, "Category to record imported transactions under")
	cmd.Flags().StringVar(&f.since, "since", "", `Skip transactions before this date (YYYY-MM-DD, or "all"; default: start of this month)`)
	cmd.Flags().BoolVarP(&f.dryRun, "dry-run", "d", false, "Preview import without recording")
	cmd.Flags().BoolVar(&f.auto, "auto-categorize", false, "Pick categories from merchant rules, falling back to --category")
}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Record transactions from bank statements or Plaid",
		Long: `Record transactions from OFX/QFX statements, Plaid or SimpleFIN.

The budget service books every transaction on the day it is recorded, so a
statement line from last month would count against this month's spending.
Imports therefore skip lines dated before the start of the current month
unless --since says otherwise.`,
	}
	cmd.AddCommand(importOFXCmd())
	cmd.AddCommand(importPlaidCmd())
	cmd.AddCommand(importSimpleFINCmd())
	return cmd
}

func importOFXCmd() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Record the transactions of OFX or QFX (Quicken) files exported from your bank.

Examples:
  # Import a single file
  finpilot import ofx ~/Downloads/checking_sep.qfx

  # Import every statement in a directory into Food
  finpilot import ofx ~/Downloads/*.qfx --category Food`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			parser := ofx.NewParser()
			sources := make([]importer.Source, 0, len(files))
			for _, f := range files {
				sources = append(sources, parser.FileSource(f))
			}
			return runImport(cmd.Context(), flags, sources...)
		},
	}

	flags.register(cmd)
	return cmd
}

func importPlaidCmd() *cobra.Command {
	var (
		flags importFlags
		days  int
	)

	cmd := &cobra.Command{
		Use:   "plaid",
		Short: "Import recent transactions from a Plaid-linked account",
		Long: `Fetch recent transactions through Plaid and record them.

Requires plaid.client_id, plaid.secret and plaid.access_token in the config
file, or PLAID_CLIENT_ID, PLAID_SECRET and PLAID_ACCESS_TOKEN.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadPlaidConfig(viper.GetViper())
			if err != nil {
				return common.NewUserError("Plaid is not configured: "+err.Error(), err)
			}
			client, err := plaid.NewClient(*cfg)
			if err != nil {
				return fmt.Errorf("failed to create Plaid client: %w", err)
			}

			end := time.Now()
			start := end.AddDate(0, 0, -days)
			return runImport(cmd.Context(), flags, client.Source(start, end))
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&days, "days", 30, "How many days back to fetch")
	return cmd
}

func importSimpleFINCmd() *cobra.Command {
	var (
		flags importFlags
		days  int
	)

	cmd := &cobra.Command{
		Use:   "simplefin",
		Short: "Import recent transactions from a SimpleFIN bridge",
		Long: `Fetch recent transactions through SimpleFIN and record them.

The first run claims the setup token from simplefin.token or SIMPLEFIN_TOKEN
and saves the resulting access URL; later runs reuse it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			statePath, err := config.SimpleFINStatePath()
			if err != nil {
				return err
			}
			auth, err := simplefin.LoadOrClaim(ctx, config.SimpleFINToken(viper.GetViper()), statePath)
			if err != nil {
				if errors.Is(err, common.ErrMissingConfig) {
					return common.NewUserError("SimpleFIN is not configured: set simplefin.token or SIMPLEFIN_TOKEN", err)
				}
				return err
			}
			client, err := simplefin.NewClient(auth.AccessURL, appCfg.API.Timeout)
			if err != nil {
				return err
			}

			end := time.Now()
			start := end.AddDate(0, 0, -days)
			return runImport(ctx, flags, client.Source(start, end))
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&days, "days", 30, "How many days back to fetch")
	return cmd
}

// runImport collects drafts from every source, drops duplicates across
// sources and records the rest.
func runImport(ctx context.Context, flags importFlags, sources ...importer.Source) error {
	fallbackID, err := categoryID(flags.category)
	if err != nil {
		return err
	}
	since, err := parseSince(flags.since, time.Now())
	if err != nil {
		return err
	}

	var categorizer importer.Categorizer
	if flags.auto {
		rules, err := config.LoadImportRules(viper.GetViper())
		if err != nil {
			return err
		}
		c, err := classification.New(rules)
		if err != nil {
			return common.NewUserError("Invalid import rule: "+err.Error(), err)
		}
		categorizer = c
	}

	drafts, err := collectDrafts(ctx, sources)
	if err != nil {
		return err
	}
	drafts = draftsSince(drafts, since)
	if len(drafts) == 0 {
		fmt.Println(cli.FormatWarning("No transactions found"))
		return nil
	}

	if flags.dryRun {
		printDrafts(os.Stdout, drafts, categorizer, fallbackID)
		fmt.Println(cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions would be recorded", len(drafts))))
		return nil
	}

	// Per-transaction notifications would interleave with the progress bar;
	// they are journaled only.
	a, err := openApp(ctx, io.Discard)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.signIn(ctx); err != nil {
		return err
	}

	im, err := importer.New(a.engine, importer.Options{
		CategoryID:  fallbackID,
		Categorizer: categorizer,
		Since:       since,
		Progress:    os.Stderr,
		Rate:        appCfg.Import.Rate,
		Burst:       appCfg.Import.Burst,
	})
	if err != nil {
		return err
	}

	// The handler owns Ctrl-C here so the partial summary is shown.
	handler := cli.NewInterruptHandler(os.Stdout)
	runCtx := handler.HandleInterrupts(context.WithoutCancel(ctx), func() string {
		return im.Progress().Summary()
	})

	result, err := im.Run(runCtx, drafts)
	if handler.WasInterrupted() {
		return nil
	}
	if err != nil {
		return err
	}

	msg := "Imported " + result.Summary()
	if result.Failed > 0 {
		fmt.Println(cli.FormatWarning(msg + " (see `finpilot notifications` for failures)"))
		return nil
	}
	fmt.Println(cli.FormatSuccess(msg))
	return nil
}

// parseSince reads --since. Empty means the start of now's month and "all"
// keeps every draft.
func parseSince(value string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		now = now.Local()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local), nil
	case "all":
		return time.Time{}, nil
	}
	since, err := time.ParseInLocation(deadlineLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, common.NewUserError(`--since must look like 2026-09-01 or be "all"`, err)
	}
	return since, nil
}

func draftsSince(drafts []importer.Draft, since time.Time) []importer.Draft {
	if since.IsZero() {
		return drafts
	}
	kept := drafts[:0]
	for _, d := range drafts {
		if !d.Date.Before(since) {
			kept = append(kept, d)
		}
	}
	if skipped := len(drafts) - len(kept); skipped > 0 {
		slog.Info("Skipped transactions before --since", "since", since.Format(deadlineLayout), "skipped", skipped)
	}
	return kept
}

func collectDrafts(ctx context.Context, sources []importer.Source) ([]importer.Draft, error) {
	var all []importer.Draft
	seen := make(map[string]bool)

	for i, src := range sources {
		drafts, err := src.Drafts(ctx)
		if err != nil {
			if len(sources) == 1 {
				return nil, err
			}
			common.LogError(err, "Failed to read import source", common.Fields{"source": i + 1, "sources": len(sources)})
			continue
		}

		added := 0
		for _, d := range drafts {
			if d.ExternalID != "" {
				if seen[d.ExternalID] {
					continue
				}
				seen[d.ExternalID] = true
			}
			all = append(all, d)
			added++
		}
		common.LogInfo("Read import source", common.Fields{
			"source":             i + 1,
			"transactions_found": len(drafts),
			"added":              added,
			"duplicates":         len(drafts) - added,
		})
	}
	return all, nil
}

func printDrafts(w io.Writer, drafts []importer.Draft, categorizer importer.Categorizer, fallbackID string) {
	names := make(map[string]string)
	for _, c := range model.DefaultCategories() {
		names[c.ID] = c.Name
	}

	for _, d := range drafts {
		id := fallbackID
		if categorizer != nil {
			if matched, ok := categorizer.Category(d.Description); ok {
				id = matched
			}
		}
		_, _ = fmt.Fprintf(w, "  %-10s %-7s %12s  %-13s %s\n",
			d.Date.Format(deadlineLayout), d.Kind, money.Format(d.Amount), names[id], d.Description)
	}
}

// expandFiles resolves glob patterns the shell left unexpanded.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(config.ExpandPath(pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, common.NewUserError("No files found to import", common.ErrInvalidInput)
	}
	return files, nil
}
