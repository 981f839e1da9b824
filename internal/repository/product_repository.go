package repository

import (
	"strings"

	"github.com/fandom-mart/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问，扣减库存需在事务内配合 WithTx 使用
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetBySlug(slug string, onlyActive bool) (*models.Product, error)
	GetByID(id uint) (*models.Product, error)
	GetByCode(code string) (*models.Product, error)
	ListByIDs(ids []uint) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID uint) (int64, error)
	CountByCodePrefix(prefix string) (int64, error)
	DecrementStock(productID uint, quantity int) (int64, error)
	IncrementStock(productID uint, quantity int) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

type GormProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 下单扣库存与订单落库共用同一事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// productSearch 商品搜索覆盖 slug、编码以及多语言标题与描述
func productSearch(db *gorm.DB, search string) func(*gorm.DB) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" {
		return whereIf(false, "")
	}
	condition, args := dialectOf(db).keywordCondition(search, []string{"slug", "code"}, []string{"title_json", "description_json"})
	return whereIf(true, condition, args...)
}

// List 按权重与上架时间倒序
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{}).Scopes(
		whereIf(filter.OnlyActive, "is_active = ?", true),
		whereIf(filter.FandomID != 0, "fandom_id = ?", filter.FandomID),
		whereIf(filter.CategoryID != 0, "category_id = ?", filter.CategoryID),
		whereIf(filter.PreOrderOnly, "is_pre_order = ?", true),
		productSearch(r.db, filter.Search),
	)
	total, err := count(query)
	if err != nil {
		return nil, 0, err
	}
	if filter.WithRelation {
		query = query.Preload("Fandom").Preload("Category")
	}
	var products []models.Product
	err = query.Scopes(paginate(filter.Page, filter.PageSize)).Order("sort_order DESC, created_at DESC").Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *GormProductRepository) first(query *gorm.DB) (*models.Product, error) {
	return firstOrNil[models.Product](query.Preload("Fandom").Preload("Category"))
}

func (r *GormProductRepository) GetBySlug(slug string, onlyActive bool) (*models.Product, error) {
	return r.first(r.db.Where("slug = ?", slug).Scopes(whereIf(onlyActive, "is_active = ?", true)))
}

func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	return r.first(r.db.Where("id = ?", id))
}

// GetByCode 编码大小写不敏感，如 gen-fig-0007
func (r *GormProductRepository) GetByCode(code string) (*models.Product, error) {
	return r.first(r.db.Where("code = ?", normalizeCode(code)))
}

func (r *GormProductRepository) ListByIDs(ids []uint) ([]models.Product, error) {
	products := []models.Product{}
	if len(ids) == 0 {
		return products, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Omit("Fandom", "Category").Create(product).Error
}

func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Omit("Fandom", "Category").Save(product).Error
}

func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

func (r *GormProductRepository) CountBySlug(slug string, excludeID uint) (int64, error) {
	return count(r.db.Model(&models.Product{}).Where("slug = ?", slug).Scopes(excludingID(excludeID)))
}

// CountByCodePrefix 含软删除记录，已删除商品的编码不再复用
func (r *GormProductRepository) CountByCodePrefix(prefix string) (int64, error) {
	return count(r.db.Unscoped().Model(&models.Product{}).Where("code LIKE ?", prefix+"%"))
}

// adjustStock 只作用于 track_stock 的商品，返回受影响行数；0 表示未扣减
func (r *GormProductRepository) adjustStock(productID uint, delta int, guard string, args ...interface{}) (int64, error) {
	if productID == 0 || delta == 0 {
		return 0, nil
	}
	query := r.db.Model(&models.Product{}).Where("id = ? AND track_stock = ?", productID, true)
	if guard != "" {
		query = query.Where(guard, args...)
	}
	result := query.UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	return result.RowsAffected, result.Error
}

// DecrementStock 余量不足时不扣减
func (r *GormProductRepository) DecrementStock(productID uint, quantity int) (int64, error) {
	if quantity <= 0 {
		return 0, nil
	}
	return r.adjustStock(productID, -quantity, "stock >= ?", quantity)
}

func (r *GormProductRepository) IncrementStock(productID uint, quantity int) (int64, error) {
	if quantity <= 0 {
		return 0, nil
	}
	return r.adjustStock(productID, quantity, "")
}
