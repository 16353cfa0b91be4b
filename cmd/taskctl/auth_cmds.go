package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskmind/go-task-client/token"
)

func newRegisterCmd(a *app) *cobra.Command {
	var email, password, confirm string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account on the task service",
		RunE: func(cmd *cobra.Command, args []string) error {
			result := a.session.Register(cmd.Context(), email, password, confirm)
			if !result.Success {
				return fmt.Errorf("%s", result.Error)
			}
			fmt.Printf("Registered %s. Run 'taskctl login' to sign in.\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "password confirmation")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("confirm")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			result := a.session.Login(cmd.Context(), email, password)
			if !result.Success {
				return fmt.Errorf("%s", result.Error)
			}
			fmt.Printf("Logged in as %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.session.Logout()
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := a.session.Bootstrap()
			fmt.Printf("Session: %s\n", state)

			raw := a.store.Get()
			if raw == "" {
				return nil
			}
			claims, err := token.Decode(raw)
			if err != nil {
				return fmt.Errorf("stored token is not decodable: %w", err)
			}
			fmt.Printf("User ID: %d\n", claims.UserID)
			fmt.Printf("Expires: %s\n", time.Unix(claims.Exp, 0).Format(time.RFC3339))
			return nil
		},
	}
}
