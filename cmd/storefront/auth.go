package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"drivehub/pkg/apiresult"
	"drivehub/pkg/client"
	"drivehub/pkg/session"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *cli) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to DriveHub",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordOrPrompt(cmd, password)
			if err != nil {
				return err
			}
			env := app.api.Auth.Login(cmd.Context(), strings.TrimSpace(email), pw)
			return report(app, cmd, env, func(w io.Writer, res client.AuthResult) {
				fmt.Fprintf(w, "Signed in as %s (%s)\n", res.User.Username, res.User.Role)
			})
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newSignupCmd(app *cli) *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a customer account",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordOrPrompt(cmd, password)
			if err != nil {
				return err
			}
			env := app.api.Auth.Signup(cmd.Context(), strings.TrimSpace(username), strings.TrimSpace(email), pw)
			return report(app, cmd, env, func(w io.Writer, res client.AuthResult) {
				fmt.Fprintf(w, "Welcome, %s\n", res.User.Username)
			})
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "display name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(app, cmd, app.api.Auth.Logout(cmd.Context()), nil)
		},
	}
}

func newWhoamiCmd(app *cli) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if refresh {
				return report(app, cmd, app.api.Auth.Me(cmd.Context()), printUser)
			}
			u, ok := app.api.Auth.CurrentUser(cmd.Context())
			if !ok {
				return report(app, cmd, apiresult.Build(false, session.User{}, "Not logged in.", 0), nil)
			}
			return report(app, cmd, apiresult.OK(*u, ""), printUser)
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload the profile from the server")
	return cmd
}

func printUser(w io.Writer, u session.User) {
	fmt.Fprintf(w, "%s <%s> role=%s id=%s\n", u.Username, u.Email, u.Role, u.ID)
}

// passwordOrPrompt reads one line from stdin when no password flag was given
func passwordOrPrompt(cmd *cobra.Command, password string) (string, error) {
	if password != "" {
		return password, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
