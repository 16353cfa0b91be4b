package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/taskmind/go-task-client/api"
	"github.com/taskmind/go-task-client/chat"
	"github.com/taskmind/go-task-client/internal/config"
	"github.com/taskmind/go-task-client/internal/logging"
	"github.com/taskmind/go-task-client/session"
	"github.com/taskmind/go-task-client/todos"
	"github.com/taskmind/go-task-client/tokenstore"
)

// app bundles the collaborators every command needs. It is built once in
// run and passed by reference; there are no package-level singletons.
type app struct {
	cfg     config.Config
	logger  zerolog.Logger
	store   *tokenstore.Store
	client  *api.Client
	session *session.Manager
	todos   *todos.Service
	chat    *chat.Service
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.New()
	logger := logging.New(cfg)

	storage, err := tokenstore.NewFileStorage(cfg.GetDataFolder())
	if err != nil {
		return fmt.Errorf("failed to open token storage: %w", err)
	}
	store := tokenstore.New(storage)

	client := api.New(cfg.GetBaseURL(), store, logger, &http.Client{Timeout: cfg.GetRequestTimeout()})

	a := &app{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		client:  client,
		session: session.NewManager(store, client, logger),
		todos:   todos.NewService(client),
		chat:    chat.NewService(client),
	}

	return newRootCmd(a).Execute()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "taskctl",
		Short:         "taskctl - command-line client for the task service",
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			displayAppname(a.cfg.GetAppName())
			_ = cmd.Help()
		},
	}

	root.AddCommand(newRegisterCmd(a))
	root.AddCommand(newLoginCmd(a))
	root.AddCommand(newLogoutCmd(a))
	root.AddCommand(newWhoamiCmd(a))
	root.AddCommand(newTodoCmd(a))
	root.AddCommand(newChatCmd(a))
	return root
}

// requireAuth runs the mount-time session check and fails early when the
// session is anonymous, so commands never send requests with a stale token.
func requireAuth(a *app) error {
	if a.session.Bootstrap() != session.StateAuthenticated {
		return fmt.Errorf("not logged in: run 'taskctl login' first")
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
