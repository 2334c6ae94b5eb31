package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/AnshRaj112/serenify-wellness/internal/models"
	"github.com/AnshRaj112/serenify-wellness/internal/services"
)

func init() {
	// signup
	var name string
	signupCmd := &cobra.Command{
		Use:         "signup",
		Short:       "Create an account and sign in",
		Annotations: map[string]string{skipLogin: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if emailFlag == "" || passwordFlag == "" {
				return fmt.Errorf("--email and --password required")
			}
			return runSignup(cmd.Context(), app.ws, name, emailFlag, passwordFlag, cmd.OutOrStdout())
		},
	}
	signupCmd.Flags().StringVarP(&name, "name", "n", "", "Display name (required)")
	_ = signupCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(signupCmd)

	// login
	rootCmd.AddCommand(&cobra.Command{
		Use:         "login",
		Short:       "Sign in and remember the session",
		Annotations: map[string]string{skipLogin: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if emailFlag == "" {
				return fmt.Errorf("--email required")
			}
			return runLogin(cmd.Context(), app.ws, emailFlag, passwordFlag, cmd.OutOrStdout())
		},
	})

	// logout
	rootCmd.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(cmd.Context(), app.ws, cmd.OutOrStdout())
		},
	})

	// whoami
	rootCmd.AddCommand(&cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := requireUser(app.ws)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", u.Name, u.Email)
			return nil
		},
	})
}

func runSignup(ctx context.Context, ws *services.Workspace, name, email, password string, out io.Writer) error {
	u, err := ws.Identity.Signup(ctx, name, email, password)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Welcome, %s! You are signed in as %s.\n", u.Name, u.Email)
	return nil
}

func runLogin(ctx context.Context, ws *services.Workspace, email, password string, out io.Writer) error {
	u, err := ws.Identity.Login(ctx, email, password)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Signed in as %s.\n", u.Email)
	return nil
}

func runLogout(ctx context.Context, ws *services.Workspace, out io.Writer) error {
	if !ws.Identity.Authenticated() {
		_, _ = fmt.Fprintln(out, "Not signed in.")
		return nil
	}
	if err := ws.Identity.Logout(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, "Signed out.")
	return nil
}

func requireUser(ws *services.Workspace) (models.User, error) {
	u, ok := ws.Identity.CurrentUser()
	if !ok {
		return models.User{}, fmt.Errorf("%w (run `wellnessctl login --email ...`)", services.ErrNotSignedIn)
	}
	return u, nil
}
