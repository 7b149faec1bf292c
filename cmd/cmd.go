package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/worksync/worksync/internal"
	"github.com/worksync/worksync/internal/api"
	"github.com/worksync/worksync/internal/leave"
	"github.com/worksync/worksync/internal/session"
	"github.com/worksync/worksync/internal/user"
	"github.com/worksync/worksync/pkg/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "worksync",
	Short: "WorkSync leave management",
	Long:  `Command-line client for the WorkSync leave-management API.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, internal.UserMessage(err))
		os.Exit(1)
	}
}

func loadConfig(path string) (*internal.Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix("WORKSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg internal.Config
	if err := v.ReadInConfig(); err != nil {
		// No config file is fine for a CLI: defaults plus environment
		// variables cover the common case.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}
	return &cfg, nil
}

// app is everything a command needs, wired once per invocation.
type app struct {
	cfg      *internal.Config
	logger   *slog.Logger
	sessions session.Store
	client   *api.Client
	leaves   *leave.Service
	users    *user.Service
}

func newApp() (*app, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger.Init(cfg.Logging.Format, cfg.Logging.Level)
	lg := logger.LoggerWrapper()

	sessions := session.NewFileStore(cfg.Session.Path)
	client := api.NewClient(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, sessions, lg)

	// The CLI's equivalent of the login redirect: the session is already
	// cleared by the service when this fires.
	onUnauthorized := func() {
		fmt.Fprintln(os.Stderr, "Your session has expired. Run 'worksync login' to sign in again.")
	}

	return &app{
		cfg:      cfg,
		logger:   lg,
		sessions: sessions,
		client:   client,
		leaves:   leave.NewService(client, sessions, onUnauthorized, lg),
		users:    user.NewService(client, lg),
	}, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "directory containing config.yml")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(leaveCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(mockServerCmd)
}
