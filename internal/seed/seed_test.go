package seed

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/fandom-mart/internal/config"
	"github.com/fandom-mart/internal/models"
	"github.com/fandom-mart/internal/repository"
	"github.com/fandom-mart/internal/service"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func TestSeedCatalogIsIdempotent(t *testing.T) {
	db := openSeedDB(t)
	fandoms := repository.NewFandomRepository(db)
	categories := repository.NewCategoryRepository(db)
	products := repository.NewProductRepository(db)
	catalog := service.NewCatalogService(fandoms, categories, products, repository.NewOrderRepository(db), service.CatalogOptions{
		SiteCurrency: "THB",
		Currencies:   []string{"THB"},
	})
	seeder := NewSeeder(catalog, fandoms, categories, products)
	data := DefaultCatalog()

	first, err := seeder.SeedCatalog(context.Background(), data)
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if first.Fandoms != len(data.Fandoms) || first.Categories != len(data.Categories) || first.Products != len(data.Products) {
		t.Fatalf("unexpected first result %+v", first)
	}

	raiden, err := products.GetBySlug("raiden-shogun-1-7-figure", false)
	if err != nil || raiden == nil {
		t.Fatalf("seeded product missing: %v", err)
	}
	if raiden.Code != "GEN-FIG-0001" {
		t.Fatalf("product code want GEN-FIG-0001 got %s", raiden.Code)
	}

	second, err := seeder.SeedCatalog(context.Background(), data)
	if err != nil {
		t.Fatalf("reseed failed: %v", err)
	}
	total := len(data.Fandoms) + len(data.Categories) + len(data.Products)
	if second.Products != 0 || second.Skipped != total {
		t.Fatalf("reseed should skip everything, got %+v", second)
	}
}

func TestSeedAdmin(t *testing.T) {
	db := openSeedDB(t)
	cfg := &config.Config{
		JWT:      config.JWTConfig{SecretKey: "seed-secret"},
		Security: config.SecurityConfig{PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8}},
	}
	auth := service.NewAuthService(cfg, repository.NewAdminRepository(db))

	admin, created, err := SeedAdmin(auth, "root", "rootpass1", true)
	if err != nil || !created || !admin.IsSuper {
		t.Fatalf("seed admin failed: admin=%+v created=%v err=%v", admin, created, err)
	}
	_, created, err = SeedAdmin(auth, "root", "rootpass1", true)
	if err != nil || created {
		t.Fatalf("existing admin should be skipped, created=%v err=%v", created, err)
	}
}
