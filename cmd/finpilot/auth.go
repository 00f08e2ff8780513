package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Veraticus/finpilot/internal/cli"
	"github.com/Veraticus/finpilot/internal/common"
	"github.com/Veraticus/finpilot/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func registerCmd() *cobra.Command {
	var req service.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := promptMissing(ctx,
				field{"Name", &req.Name, false},
				field{"Email", &req.Email, false},
				field{"Password", &req.Password, true},
			); err != nil {
				return err
			}

			a, err := openApp(ctx, os.Stdout)
			if err != nil {
				return err
			}
			defer a.Close()

			session, err := a.client.Register(ctx, req)
			if err != nil {
				return common.NewUserError("Registration failed: "+common.UserMessage(err), err)
			}
			if err := a.startSession(ctx, session); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Welcome to finpilot, %s!", session.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Your name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (prompted when omitted)")
	return cmd
}

func loginCmd() *cobra.Command {
	var req service.LoginRequest

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the budget service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := promptMissing(ctx,
				field{"Email", &req.Email, false},
				field{"Password", &req.Password, true},
			); err != nil {
				return err
			}

			a, err := openApp(ctx, os.Stdout)
			if err != nil {
				return err
			}
			defer a.Close()

			session, err := a.client.Login(ctx, req)
			if err != nil {
				return common.NewUserError("Login failed: "+common.UserMessage(err), err)
			}
			if err := a.startSession(ctx, session); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Welcome back, %s!", session.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (prompted when omitted)")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, io.Discard)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.endSession(ctx); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Logged out"))
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			session, err := store.LoadSession(ctx)
			if errors.Is(err, common.ErrNotFound) {
				fmt.Println(cli.FormatInfo("Not logged in"))
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to load session: %w", err)
			}

			fmt.Println(cli.RenderBox("Signed in", fmt.Sprintf(
				"Name:    %s\nEmail:   %s\nUser ID: %s\nSince:   %s",
				session.Name, session.Email, session.UserID, session.CreatedAt.Local().Format("Jan 2, 2006 15:04"),
			)))
			return nil
		},
	}
}

// field is one value promptMissing asks for when it was not given as a flag.
type field struct {
	title  string
	value  *string
	secret bool
}

// promptMissing shows a form for the fields that are still empty.
func promptMissing(ctx context.Context, fields ...field) error {
	var inputs []huh.Field
	for _, f := range fields {
		if strings.TrimSpace(*f.value) != "" {
			continue
		}
		input := huh.NewInput().
			Title(f.title).
			Value(f.value).
			Validate(required(f.title))
		if f.secret {
			input = input.EchoMode(huh.EchoModePassword)
		}
		inputs = append(inputs, input)
	}
	if len(inputs) == 0 {
		return nil
	}

	if err := huh.NewForm(huh.NewGroup(inputs...)).RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return common.NewUserError("Cancelled", err)
		}
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", strings.ToLower(name))
		}
		return nil
	}
}
