package main

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"time"

	"drivehub/pkg/client"
	"drivehub/pkg/logger"
	"drivehub/pkg/session"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli holds what every command needs once flags are parsed
type cli struct {
	v       *viper.Viper
	cfgFile string
	jsonOut bool

	cfg     *Config
	api     *client.Client
	closers []func() error
}

func newCLI() *cli {
	return &cli{v: viper.New()}
}

func (app *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "DriveHub car rental storefront",
		Long:          "Browse cars, book rentals and manage the fleet from the terminal.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.cfgFile, "config", "", "config file (default $HOME/.drivehub.yaml)")
	flags.BoolVar(&app.jsonOut, "json", false, "print the full response envelope as JSON")
	flags.String("api-url", "", "DriveHub API base URL")
	flags.String("session-path", "", "session file location")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	_ = app.v.BindPFlag("api_url", flags.Lookup("api-url"))
	_ = app.v.BindPFlag("session_path", flags.Lookup("session-path"))
	_ = app.v.BindPFlag("log_level", flags.Lookup("log-level"))

	root.AddCommand(
		newLoginCmd(app),
		newSignupCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newCarsCmd(app),
		newBookCmd(app),
		newBookingsCmd(app),
		newAdminCmd(app),
	)
	return root
}

func (app *cli) setup() error {
	cfg, err := loadConfig(app.v, app.cfgFile)
	if err != nil {
		return err
	}
	app.cfg = cfg

	log := logger.NewWithWriter(os.Stderr, cfg.LogLevel)
	logger.SetDefault(log)

	store, err := app.openStore()
	if err != nil {
		return err
	}

	app.api = client.New(client.Config{
		BaseURL:           cfg.APIURL,
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
	}, store, log)
	return nil
}

func (app *cli) openStore() (session.Store, error) {
	switch app.cfg.SessionBackend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:        app.cfg.RedisAddr,
			DialTimeout: 5 * time.Second,
		})
		app.closers = append(app.closers, rdb.Close)
		return session.NewRedisStore(rdb, sessionNamespace(), 30*24*time.Hour), nil
	default:
		path := app.cfg.SessionPath
		if path == "" {
			p, err := session.DefaultPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return session.NewFileStore(path), nil
	}
}

// execute runs root and releases the session backend even when the command fails
func (app *cli) execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if closeErr := app.close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

func (app *cli) close() error {
	var firstErr error
	for _, c := range app.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	app.closers = nil
	return firstErr
}

// sessionNamespace separates redis sessions of different local accounts
func sessionNamespace() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	host, _ := os.Hostname()
	return host
}

// currentUser returns the signed-in user or an error telling how to sign in
func (app *cli) currentUser(cmd *cobra.Command) (*session.User, error) {
	u, ok := app.api.Auth.CurrentUser(cmd.Context())
	if !ok {
		return nil, fmt.Errorf("not logged in, run `storefront login` first")
	}
	return u, nil
}
