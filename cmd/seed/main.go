package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fandom-mart/internal/app"
	"github.com/fandom-mart/internal/config"
	"github.com/fandom-mart/internal/logger"
	"github.com/fandom-mart/internal/models"
	"github.com/fandom-mart/internal/repository"
	"github.com/fandom-mart/internal/seed"
	"github.com/fandom-mart/internal/service"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the fandom-mart database",
	Long: `Seed demo data into the configured database.

Available subcommands:
  catalog - fandoms, categories and products
  admin   - an admin account`,
	SilenceUsage: true,
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Seed fandoms, categories and products",
	RunE:  runCatalog,
}

var (
	adminUsername string
	adminPassword string
	adminSuper    bool
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Create an admin account if it does not exist",
	RunE:  runAdmin,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: ./config.yml)")
	adminCmd.Flags().StringVar(&adminUsername, "username", "admin", "admin username")
	adminCmd.Flags().StringVar(&adminPassword, "password", os.Getenv("FM_DEFAULT_ADMIN_PASSWORD"), "admin password (env FM_DEFAULT_ADMIN_PASSWORD)")
	adminCmd.Flags().BoolVar(&adminSuper, "super", true, "grant super admin")
	rootCmd.AddCommand(catalogCmd, adminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap 加载配置、连接数据库并迁移
func bootstrap() (*config.Config, error) {
	cfg, err := config.LoadPath(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	if err := app.PrepareStorage(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	db := models.DB
	fandoms := repository.NewFandomRepository(db)
	categories := repository.NewCategoryRepository(db)
	products := repository.NewProductRepository(db)
	catalog := service.NewCatalogService(fandoms, categories, products, repository.NewOrderRepository(db), service.CatalogOptions{
		SiteCurrency: cfg.Currency.Site,
	})

	result, err := seed.NewSeeder(catalog, fandoms, categories, products).SeedCatalog(context.Background(), seed.DefaultCatalog())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "fandoms=%d categories=%d products=%d skipped=%d\n",
		result.Fandoms, result.Categories, result.Products, result.Skipped)
	return nil
}

func runAdmin(cmd *cobra.Command, _ []string) error {
	if strings.TrimSpace(adminPassword) == "" {
		return fmt.Errorf("--password is required")
	}
	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	auth := service.NewAuthService(cfg, repository.NewAdminRepository(models.DB))
	admin, created, err := seed.SeedAdmin(auth, adminUsername, adminPassword, adminSuper)
	if err != nil {
		return err
	}
	if !created {
		fmt.Fprintf(cmd.OutOrStdout(), "admin %s already exists\n", adminUsername)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "admin %s created (id=%d, super=%v)\n", admin.Username, admin.ID, admin.IsSuper)
	return nil
}
