package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/fandom-mart/internal/logger"
	"github.com/fandom-mart/internal/models"
	"github.com/fandom-mart/internal/repository"
	"github.com/fandom-mart/internal/service"

	"github.com/shopspring/decimal"
)

// FandomSeed 作品种子
type FandomSeed struct {
	Code string
	Slug string
	Name map[string]interface{}
}

// CategorySeed 品类种子
type CategorySeed struct {
	Code string
	Slug string
	Name map[string]interface{}
}

// ProductSeed 商品种子，通过代码引用作品与品类
type ProductSeed struct {
	Fandom   string
	Category string
	Slug     string
	Title    map[string]interface{}
	Price    string
	Stock    int
	PreOrder bool
	LimitOne bool
	Tags     []string
}

// Catalog 目录种子集合
type Catalog struct {
	Fandoms    []FandomSeed
	Categories []CategorySeed
	Products   []ProductSeed
}

// Result 写入统计
type Result struct {
	Fandoms    int
	Categories int
	Products   int
	Skipped    int
}

func names(th, en, zh string) map[string]interface{} {
	return map[string]interface{}{"th-TH": th, "en-US": en, "zh-CN": zh}
}

// DefaultCatalog 演示用目录
func DefaultCatalog() Catalog {
	return Catalog{
		Fandoms: []FandomSeed{
			{Code: "GEN", Slug: "genshin-impact", Name: names("เก็นชินอิมแพกต์", "Genshin Impact", "原神")},
			{Code: "HSR", Slug: "honkai-star-rail", Name: names("ฮงไก สตาร์เรล", "Honkai: Star Rail", "崩坏：星穹铁道")},
			{Code: "JJK", Slug: "jujutsu-kaisen", Name: names("มหาเวทย์ผนึกมาร", "Jujutsu Kaisen", "咒术回战")},
		},
		Categories: []CategorySeed{
			{Code: "FIG", Slug: "figures", Name: names("ฟิกเกอร์", "Figures", "手办")},
			{Code: "ACR", Slug: "acrylic-stands", Name: names("สแตนด์อะคริลิก", "Acrylic Stands", "亚克力立牌")},
			{Code: "PLU", Slug: "plushies", Name: names("ตุ๊กตา", "Plushies", "毛绒玩偶")},
		},
		Products: []ProductSeed{
			{Fandom: "GEN", Category: "FIG", Slug: "raiden-shogun-1-7-figure", Title: names("ฟิกเกอร์ไรเดนโชกุน 1/7", "Raiden Shogun 1/7 Figure", "雷电将军 1/7 手办"), Price: "6990", Stock: 5, LimitOne: true, Tags: []string{"limited"}},
			{Fandom: "GEN", Category: "ACR", Slug: "paimon-acrylic-stand", Title: names("สแตนด์อะคริลิกไพมอน", "Paimon Acrylic Stand", "派蒙亚克力立牌"), Price: "390"},
			{Fandom: "HSR", Category: "PLU", Slug: "pom-pom-plush", Title: names("ตุ๊กตาพอมพอม", "Pom-Pom Plush", "帕姆毛绒玩偶"), Price: "890", Stock: 20},
			{Fandom: "HSR", Category: "FIG", Slug: "kafka-scale-figure", Title: names("ฟิกเกอร์คาฟก้า", "Kafka Scale Figure", "卡芙卡比例手办"), Price: "8500", PreOrder: true, LimitOne: true, Tags: []string{"pre-order"}},
			{Fandom: "JJK", Category: "ACR", Slug: "gojo-acrylic-stand", Title: names("สแตนด์อะคริลิกโกโจ", "Gojo Acrylic Stand", "五条悟亚克力立牌"), Price: "450"},
		},
	}
}

// Seeder 通过目录服务写入种子，保证编码分配与缓存失效一致
type Seeder struct {
	catalog    *service.CatalogService
	fandoms    repository.FandomRepository
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

// NewSeeder 创建种子写入器
func NewSeeder(catalog *service.CatalogService, fandoms repository.FandomRepository, categories repository.CategoryRepository, products repository.ProductRepository) *Seeder {
	return &Seeder{catalog: catalog, fandoms: fandoms, categories: categories, products: products}
}

// SeedCatalog 幂等写入目录，已存在的条目跳过
func (s *Seeder) SeedCatalog(ctx context.Context, data Catalog) (Result, error) {
	var result Result
	fandomIDs := make(map[string]uint, len(data.Fandoms))
	for _, item := range data.Fandoms {
		existing, err := s.fandoms.GetByCode(item.Code)
		if err != nil {
			return result, err
		}
		if existing != nil {
			fandomIDs[item.Code] = existing.ID
			result.Skipped++
			continue
		}
		created, err := s.catalog.CreateFandom(ctx, service.FandomInput{Code: item.Code, Slug: item.Slug, NameJSON: item.Name})
		if err != nil {
			return result, fmt.Errorf("seed fandom %s: %w", item.Code, err)
		}
		fandomIDs[item.Code] = created.ID
		result.Fandoms++
	}

	categoryIDs := make(map[string]uint, len(data.Categories))
	for _, item := range data.Categories {
		existing, err := s.categories.GetByCode(item.Code)
		if err != nil {
			return result, err
		}
		if existing != nil {
			categoryIDs[item.Code] = existing.ID
			result.Skipped++
			continue
		}
		created, err := s.catalog.CreateCategory(ctx, service.CategoryInput{Code: item.Code, Slug: item.Slug, NameJSON: item.Name})
		if err != nil {
			return result, fmt.Errorf("seed category %s: %w", item.Code, err)
		}
		categoryIDs[item.Code] = created.ID
		result.Categories++
	}

	for _, item := range data.Products {
		existing, err := s.products.GetBySlug(item.Slug, false)
		if err != nil {
			return result, err
		}
		if existing != nil {
			result.Skipped++
			continue
		}
		fandomID, ok := fandomIDs[item.Fandom]
		if !ok {
			return result, fmt.Errorf("seed product %s: %w", item.Slug, service.ErrFandomNotFound)
		}
		categoryID, ok := categoryIDs[item.Category]
		if !ok {
			return result, fmt.Errorf("seed product %s: %w", item.Slug, service.ErrCategoryNotFound)
		}
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return result, fmt.Errorf("seed product %s: %w", item.Slug, err)
		}
		product, err := s.catalog.CreateProduct(ctx, service.ProductInput{
			FandomID:           fandomID,
			CategoryID:         categoryID,
			Slug:               item.Slug,
			TitleJSON:          item.Title,
			PriceAmount:        price,
			Tags:               item.Tags,
			TrackStock:         item.Stock > 0,
			Stock:              item.Stock,
			IsPreOrder:         item.PreOrder,
			LimitOnePerAccount: item.LimitOne,
		})
		if err != nil {
			return result, fmt.Errorf("seed product %s: %w", item.Slug, err)
		}
		logger.Infow("seed_product_created", "slug", product.Slug, "code", product.Code)
		result.Products++
	}
	return result, nil
}

// SeedAdmin 创建管理员，用户名已存在时视为成功
func SeedAdmin(auth *service.AuthService, username, password string, isSuper bool) (*models.Admin, bool, error) {
	admin, err := auth.CreateAdmin(username, password, isSuper)
	if errors.Is(err, service.ErrUsernameExists) {
		logger.Infow("seed_admin_exists", "username", username)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return admin, true, nil
}
