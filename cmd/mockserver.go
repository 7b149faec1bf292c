package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/worksync/worksync/internal/mockapi"
	"github.com/worksync/worksync/internal/user"
	"github.com/worksync/worksync/pkg/logger"
)

var (
	mockAddr          string
	mockAdminEmail    string
	mockAdminPassword string
)

var mockServerCmd = &cobra.Command{
	Use:   "mock-server",
	Short: "Run a local fake of the WorkSync API",
	Long: `Serves the same REST contract the CLI consumes, backed by in-memory
fixtures. Useful for trying the client without a real backend. Tokens are
signed with a throwaway secret; never point production data at this.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		logger.Init(cfg.Logging.Format, cfg.Logging.Level)
		lg := logger.LoggerWrapper()

		server := mockapi.New(fmt.Sprintf("mock-secret-%d", time.Now().UnixNano()), lg)
		server.SeedUser("Admin", mockAdminEmail, mockAdminPassword, user.RoleAdmin)

		lg.Info("mock API listening", "addr", mockAddr, "admin_email", mockAdminEmail)

		srv := &http.Server{
			Addr:              mockAddr,
			Handler:           server.Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		return srv.ListenAndServe()
	},
}

func init() {
	mockServerCmd.Flags().StringVar(&mockAddr, "addr", ":8080", "listen address")
	mockServerCmd.Flags().StringVar(&mockAdminEmail, "admin-email", "admin@worksync.local", "seeded admin email")
	mockServerCmd.Flags().StringVar(&mockAdminPassword, "admin-password", "changeme123", "seeded admin password")
}
