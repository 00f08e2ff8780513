package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Veraticus/finpilot/internal/cli"
	"github.com/Veraticus/finpilot/internal/common"
	"github.com/Veraticus/finpilot/internal/config"
	"github.com/Veraticus/finpilot/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export your budget to other tools",
	}
	cmd.AddCommand(exportSheetsCmd())
	return cmd
}

func exportSheetsCmd() *cobra.Command {
	var (
		auth          bool
		spreadsheetID string
		callbackAddr  string
	)

	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Write budget, transactions and goals to Google Sheets",
		Long: `Write the current budget, transaction history and goals to a Google
spreadsheet with Budget, Transactions and Goals tabs.

Authenticate once with a service account (sheets.service_account_path) or
with OAuth2:
  finpilot export sheets --auth`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			v := viper.GetViper()

			tokenPath, err := config.SheetsTokenPath()
			if err != nil {
				return err
			}

			if auth {
				c := sheets.DefaultConfig()
				c.ClientID = v.GetString("sheets.client_id")
				c.ClientSecret = v.GetString("sheets.client_secret")
				c.LoadFromEnv()
				if c.ClientID == "" || c.ClientSecret == "" {
					return common.NewUserError("Set sheets.client_id and sheets.client_secret (or GOOGLE_SHEETS_CLIENT_ID and GOOGLE_SHEETS_CLIENT_SECRET) first", common.ErrMissingConfig)
				}

				token, err := sheets.AuthenticateOAuth2Interactive(ctx, sheets.OAuth2Config{
					ClientID:     c.ClientID,
					ClientSecret: c.ClientSecret,
					TokenFile:    tokenPath,
					CallbackAddr: callbackAddr,
				}, func(url string) {
					fmt.Println(cli.FormatInfo("Open this URL in your browser to authorize finpilot:"))
					fmt.Println(url)
				})
				if err != nil {
					return fmt.Errorf("authorization failed: %w", err)
				}
				if token.RefreshToken == "" {
					fmt.Println(cli.FormatWarning("No refresh token was returned; revoke access and try again"))
					return nil
				}
				fmt.Println(cli.FormatSuccess("Authorized. Token saved to " + tokenPath))
				return nil
			}

			if v.GetString("sheets.refresh_token") == "" && os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN") == "" {
				if token, err := sheets.LoadToken(tokenPath); err == nil && token.RefreshToken != "" {
					v.Set("sheets.refresh_token", token.RefreshToken)
				} else if err != nil && !os.IsNotExist(err) {
					slog.Warn("Failed to read saved Sheets token", "file", tokenPath, "error", err)
				}
			}
			if spreadsheetID != "" {
				v.Set("sheets.spreadsheet_id", spreadsheetID)
			}

			cfg, err := config.LoadSheetsConfig(v)
			if err != nil {
				return common.NewUserError("Google Sheets is not configured: "+err.Error(), err)
			}

			a, err := openApp(ctx, os.Stdout)
			if err != nil {
				return err
			}
			defer a.Close()

			session, err := a.signIn(ctx)
			if err != nil {
				return err
			}

			writer, err := sheets.NewWriter(ctx, *cfg, nil)
			if err != nil {
				return err
			}

			snap := sheets.FromState(a.engine.Store().Snapshot(), session.Name, time.Now())
			if err := writer.Write(ctx, snap); err != nil {
				return fmt.Errorf("failed to export to Google Sheets: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Exported to Google Sheets"))
			if id := writer.SpreadsheetID(); id != "" {
				fmt.Println(sheets.SpreadsheetURL(id))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&auth, "auth", false, "Run the OAuth2 browser flow and save the token")
	cmd.Flags().StringVar(&spreadsheetID, "spreadsheet-id", "", "Write to this spreadsheet instead of the configured one")
	cmd.Flags().StringVar(&callbackAddr, "callback-addr", sheets.DefaultCallbackAddr, "Address for the OAuth2 callback server")
	return cmd
}
