package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fandom-mart/internal/config"
	"github.com/fandom-mart/internal/kvstore"
	"github.com/fandom-mart/internal/models"
	"github.com/fandom-mart/internal/queue"
	"github.com/fandom-mart/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type testEnv struct {
	db        *gorm.DB
	store     *kvstore.MemoryStore
	products  *repository.GormProductRepository
	fandoms   *repository.GormFandomRepository
	cats      *repository.GormCategoryRepository
	orderRepo *repository.GormOrderRepository
	purchases *PurchaseLedger
	ledger    *OrderLedger
	carts     *CartService
	orders    *OrderService
	catalog   *CatalogService
}

func openServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Fandom{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.SupportTicket{},
		&models.CustomRequest{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := openServiceDB(t)
	env := &testEnv{
		db:        db,
		store:     kvstore.NewMemoryStore(),
		products:  repository.NewProductRepository(db),
		fandoms:   repository.NewFandomRepository(db),
		cats:      repository.NewCategoryRepository(db),
		orderRepo: repository.NewOrderRepository(db),
	}
	locker := NewScopeLocker()
	env.purchases = NewPurchaseLedger(env.store)
	env.ledger = NewOrderLedger(env.store)
	env.carts = NewCartService(env.store, locker, env.purchases, env.products, "THB")
	queueClient, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}
	env.orders = NewOrderService(env.store, locker, env.carts, env.ledger, env.purchases,
		env.products, env.orderRepo, queueClient, OrderServiceOptions{Currency: "THB"})
	env.catalog = NewCatalogService(env.fandoms, env.cats, env.products, env.orderRepo, CatalogOptions{
		SiteCurrency: "THB",
		Currencies:   []string{"THB", "USD"},
	})
	return env
}

// seedCatalog 创建 GEN 作品与 FIG 品类
func (e *testEnv) seedCatalog(t *testing.T) (*models.Fandom, *models.Category) {
	t.Helper()
	fandom := &models.Fandom{Code: "GEN", Slug: "genshin", NameJSON: models.JSON{"en-US": "Genshin Impact"}, IsActive: true}
	if err := e.fandoms.Create(fandom); err != nil {
		t.Fatalf("create fandom failed: %v", err)
	}
	category := &models.Category{Code: "FIG", Slug: "figures", NameJSON: models.JSON{"en-US": "Figures"}}
	if err := e.cats.Create(category); err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return fandom, category
}

type productFixture struct {
	slug     string
	price    int64
	track    bool
	stock    int
	preOrder bool
}

func (e *testEnv) createProduct(t *testing.T, fx productFixture) *models.Product {
	t.Helper()
	fandom, err := e.fandoms.GetBySlug("genshin", false)
	if err != nil {
		t.Fatalf("get fandom failed: %v", err)
	}
	if fandom == nil {
		fandom, _ = e.seedCatalog(t)
	}
	category, err := e.cats.GetByCode("FIG")
	if err != nil || category == nil {
		t.Fatalf("get category failed: %v", err)
	}
	product, err := e.catalog.CreateProduct(testCtx(), ProductInput{
		FandomID:    fandom.ID,
		CategoryID:  category.ID,
		Slug:        fx.slug,
		TitleJSON:   map[string]interface{}{"en-US": "Item " + fx.slug},
		PriceAmount: decimal.NewFromInt(fx.price),
		TrackStock:  fx.track,
		Stock:       fx.stock,
		IsPreOrder:  fx.preOrder,
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}
