package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"pomodoro/internal/config"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
)

// Options holds command line overrides for the config file.
type Options struct {
	ConfigPath string
	Backend    string
	ServerURL  string
	RedisAddr  string
	Profile    string
	LogLevel   string
}

// RunFunc starts the desktop app with the resolved configuration.
type RunFunc func(cfg *config.Config) error

type root struct {
	appName string
	opts    Options
	cfg     *config.Config
}

// NewRootCommand builds the pomodoro command tree.
func NewRootCommand(appName string, run RunFunc) *cobra.Command {
	r := &root{appName: appName}

	cmd := &cobra.Command{
		Use:           "pomodoro",
		Short:         "Pomodoro timer that keeps its session in sync with a store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(r.opts)
			if err != nil {
				return err
			}
			SetupLogging(cfg.Log)
			r.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(r.cfg)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&r.opts.ConfigPath, "config", "c", "", "Path to a YAML config file")
	flags.StringVar(&r.opts.Backend, "store", "", "Session store backend (http, redis, file, none)")
	flags.StringVar(&r.opts.ServerURL, "server", "", "Base URL of the pomodoro backend")
	flags.StringVar(&r.opts.RedisAddr, "redis-addr", "", "Redis address for the redis store")
	flags.StringVar(&r.opts.Profile, "profile", "", "Session profile name for the redis store")
	flags.StringVar(&r.opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(r.newStatusCmd(), r.newResetCmd())
	return cmd
}

// LoadConfig reads the config file and applies command line overrides.
func LoadConfig(opts Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Backend != "" {
		cfg.Store.Backend = opts.Backend
	}
	if opts.ServerURL != "" {
		cfg.Store.ServerURL = opts.ServerURL
	}
	if opts.RedisAddr != "" {
		cfg.Store.Redis.Addr = opts.RedisAddr
	}
	if opts.Profile != "" {
		cfg.Store.Profile = opts.Profile
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogging configures the global zerolog logger.
func SetupLogging(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func (r *root) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withStore(cmd.Context(), func(ctx context.Context, store timekeeper.Store) error {
				snapshot, err := store.Load(ctx)
				if errors.Is(err, timekeeper.ErrNoState) {
					fmt.Fprintln(cmd.OutOrStdout(), "no stored session")
					return nil
				}
				if err != nil {
					return errors.Wrap(err, "load session")
				}
				fmt.Fprintln(cmd.OutOrStdout(), snapshot.Status())
				return nil
			})
		},
	}
}

func (r *root) newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the stored session to idle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withStore(cmd.Context(), func(ctx context.Context, store timekeeper.Store) error {
				sessionConfig := model.DefaultSessionConfig()
				snapshot, err := store.Load(ctx)
				switch {
				case err == nil:
					sessionConfig = snapshot.Config
				case errors.Is(err, timekeeper.ErrNoState):
				default:
					return errors.Wrap(err, "load session")
				}

				reset := timekeeper.Snapshot{State: timekeeper.ResetState(sessionConfig), Config: sessionConfig}
				if err := store.Save(ctx, reset); err != nil {
					return errors.Wrap(err, "save session")
				}
				log.Info().Msg("session reset")
				fmt.Fprintln(cmd.OutOrStdout(), reset.Status())
				return nil
			})
		},
	}
}

func (r *root) withStore(parent context.Context, fn func(context.Context, timekeeper.Store) error) error {
	store, closeStore, err := OpenStore(r.appName, r.cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	if store == nil {
		return errors.New("no session store configured")
	}

	ctx, cancel := context.WithTimeout(parent, r.cfg.Store.Timeout)
	defer cancel()
	return fn(ctx, store)
}
