package provider

import (
	"time"

	"github.com/fandom-mart/internal/authz"
	"github.com/fandom-mart/internal/cache"
	"github.com/fandom-mart/internal/config"
	"github.com/fandom-mart/internal/kvstore"
	"github.com/fandom-mart/internal/logger"
	"github.com/fandom-mart/internal/models"
	"github.com/fandom-mart/internal/queue"
	"github.com/fandom-mart/internal/repository"
	"github.com/fandom-mart/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Store       kvstore.Store

	// Repositories
	AdminRepo         repository.AdminRepository
	UserRepo          repository.UserRepository
	FandomRepo        repository.FandomRepository
	CategoryRepo      repository.CategoryRepository
	ProductRepo       repository.ProductRepository
	OrderRepo         repository.OrderRepository
	TicketRepo        repository.TicketRepository
	CustomRequestRepo repository.CustomRequestRepository

	// Services
	AuthzService         *authz.Service
	AuthService          *service.AuthService
	UserAuthService      *service.UserAuthService
	UserAdminService     *service.UserAdminService
	CaptchaService       *service.CaptchaService
	CatalogService       *service.CatalogService
	ScopeLocker          *service.ScopeLocker
	PurchaseLedger       *service.PurchaseLedger
	OrderLedger          *service.OrderLedger
	CartService          *service.CartService
	OrderService         *service.OrderService
	TicketService        *service.TicketService
	CurrencyConverter    *service.CurrencyConverter
	CustomRequestService *service.CustomRequestService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	store, err := kvstore.Open(cfg.Storage.Driver, models.DB, cache.Client(), cfg.Storage.Prefix)
	if err != nil {
		logger.Errorw("provider_init_kvstore_failed", "driver", cfg.Storage.Driver, "error", err)
		panic(err)
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Store:       store,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.FandomRepo = repository.NewFandomRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.TicketRepo = repository.NewTicketRepository(db)
	c.CustomRequestRepo = repository.NewCustomRequestRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	cfg := c.Config
	c.AuthService = service.NewAuthService(cfg, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(cfg, c.UserRepo)
	c.UserAdminService = service.NewUserAdminService(c.UserRepo)
	c.CaptchaService = service.NewCaptchaService(cfg.Captcha)

	c.CurrencyConverter = service.NewCurrencyConverter(cfg.Currency)
	site := c.CurrencyConverter.Site()

	c.CatalogService = service.NewCatalogService(c.FandomRepo, c.CategoryRepo, c.ProductRepo, c.OrderRepo, service.CatalogOptions{
		SiteCurrency:   site,
		Currencies:     c.CurrencyConverter.Supported(),
		CacheTTL:       time.Duration(cfg.Catalog.CacheTTLSeconds) * time.Second,
		CaptchaEnabled: c.CaptchaService.Enabled(),
	})

	c.ScopeLocker = service.NewScopeLocker()
	c.PurchaseLedger = service.NewPurchaseLedger(c.Store)
	c.OrderLedger = service.NewOrderLedger(c.Store)
	c.CartService = service.NewCartService(c.Store, c.ScopeLocker, c.PurchaseLedger, c.ProductRepo, site)
	c.OrderService = service.NewOrderService(
		c.Store,
		c.ScopeLocker,
		c.CartService,
		c.OrderLedger,
		c.PurchaseLedger,
		c.ProductRepo,
		c.OrderRepo,
		c.QueueClient,
		service.OrderServiceOptions{
			Currency:      site,
			PendingExpire: time.Duration(cfg.Order.PendingExpireMinutes) * time.Minute,
		},
	)

	c.TicketService = service.NewTicketService(c.TicketRepo)
	c.CustomRequestService = service.NewCustomRequestService(c.CustomRequestRepo, c.FandomRepo, c.CurrencyConverter)
}
