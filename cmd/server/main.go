package main

import (
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/fandom-mart/internal/app"
	"github.com/fandom-mart/internal/config"
	"github.com/fandom-mart/internal/logger"
	"github.com/fandom-mart/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var (
	configPath string
	runMode    string
)

var rootCmd = &cobra.Command{
	Use:          "fandom-mart",
	Short:        "Fandom merch storefront API and order worker",
	SilenceUsage: true,
	RunE:         serve,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default: ./config.yml)")
	rootCmd.Flags().StringVar(&runMode, "mode", app.ModeAll, "all | api | worker")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func printBanner(w io.Writer, mode string) {
	const magenta, cyan, reset = "\033[95m", "\033[36m", "\033[0m"
	fmt.Fprintln(w, magenta+"Fandom Mart"+reset+" starting in "+cyan+mode+reset+" mode")
	fmt.Fprintln(w, cyan+"  api:    storefront + back-office HTTP"+reset)
	fmt.Fprintln(w, cyan+"  worker: order:mirror, order:status_notice, order:pending_expire"+reset)
}

func serve(cmd *cobra.Command, _ []string) error {
	mode, err := app.ParseMode(runMode)
	if err != nil {
		return err
	}
	printBanner(cmd.OutOrStdout(), mode)
	cfg, err := config.LoadPath(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	release := cfg.Server.Mode == "release"

	if err := app.CheckSecrets(cfg); err != nil {
		if release {
			return err
		}
		logger.Warnw("jwt_secret_weak", "mode", cfg.Server.Mode)
	}
	if err := app.PrepareStorage(cfg); err != nil {
		return err
	}

	password := os.Getenv("FM_DEFAULT_ADMIN_PASSWORD")
	if release && password == "" {
		logger.Warnw("bootstrap_admin_skipped", "reason", "FM_DEFAULT_ADMIN_PASSWORD unset")
	} else if err := models.InitDefaultAdmin(os.Getenv("FM_DEFAULT_ADMIN_USERNAME"), password); err != nil {
		logger.Warnw("bootstrap_admin_failed", "error", err)
	}

	if release {
		gin.SetMode(gin.ReleaseMode)
	}
	return app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	})
}
