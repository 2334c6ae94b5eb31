package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AnshRaj112/serenify-wellness/internal/config"
	"github.com/AnshRaj112/serenify-wellness/internal/database"
	"github.com/AnshRaj112/serenify-wellness/internal/logger"
	"github.com/AnshRaj112/serenify-wellness/internal/services"
)

// skipLogin marks commands that sign in on their own.
const skipLogin = "skip-login"

var (
	emailFlag    string
	passwordFlag string
	verboseFlag  bool

	app     *cliApp
	rootCmd = &cobra.Command{
		Use:               "wellnessctl",
		Short:             "Track moods, keep a journal and meditate from the terminal",
		SilenceUsage:      true,
		PersistentPreRunE: openApp,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.close()
		},
	}
)

type cliApp struct {
	backend *database.Backend
	ws      *services.Workspace
	log     *zap.Logger
}

func (a *cliApp) close() error {
	if a == nil {
		return nil
	}
	_ = a.log.Sync()
	return a.backend.Close()
}

func main() {
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVarP(&emailFlag, "email", "e", "", "Sign in as this email for this run only; the saved session is left alone")
	rootCmd.PersistentFlags().StringVarP(&passwordFlag, "password", "p", "", "Password for --email")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Log storage activity to stderr")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openApp connects the configured backend and restores the saved session,
// or signs in with --email when given.
func openApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level := "warn"
	if verboseFlag {
		level = "debug"
	}
	zl, err := logger.New(cfg.Environment, level)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	backend, err := database.Open(ctx, cfg, zl)
	if err != nil {
		return err
	}

	email := emailFlag
	if cmd.Annotations[skipLogin] != "" {
		email = ""
	}
	ws, err := openWorkspace(ctx, backend.Store, zl, email, passwordFlag)
	if err != nil {
		_ = backend.Close()
		return err
	}
	app = &cliApp{backend: backend, ws: ws, log: zl}
	return nil
}

// openWorkspace restores the saved session, or signs in as email for this
// run without touching it.
func openWorkspace(ctx context.Context, kv database.KeyValueStore, log *zap.Logger, email, password string) (*services.Workspace, error) {
	ws := services.NewWorkspace(kv, services.WorkspaceConfig{PersistSession: email == "", Logger: log})
	if err := ws.Open(ctx); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if email != "" {
		if _, err := ws.Identity.Login(ctx, email, password); err != nil {
			return nil, err
		}
	}
	return ws, nil
}
