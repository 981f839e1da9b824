package repository

import (
	"time"

	"github.com/fandom-mart/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository 订单镜像数据访问接口
type OrderRepository interface {
	Upsert(order *models.Order, items []models.OrderItem, guard StatusGuard) (bool, error)
	GetByID(id uint) (*models.Order, error)
	GetByOrderNo(orderNo string) (*models.Order, error)
	ListAdmin(filter OrderListFilter) ([]models.Order, int64, error)
	UpdateStatus(orderNo string, status string, updates map[string]interface{}) error
	SumPreOrderReservations(productIDs []uint, excludeStatuses []string) ([]PreOrderReservation, error)
	WithTx(tx *gorm.DB) OrderRepository
}

// StatusGuard 判断镜像状态能否从 from 变为 to
type StatusGuard func(from, to string) bool

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Upsert 按订单号写入镜像并替换订单项，返回是否写入。
// 已有记录且 guard 不允许从库中状态流转到新状态时保持原样
func (r *GormOrderRepository) Upsert(order *models.Order, items []models.OrderItem, guard StatusGuard) (bool, error) {
	applied := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		stored, err := firstOrNil[models.Order](tx.Clauses(clause.Locking{Strength: "UPDATE"}), "order_no = ?", order.OrderNo)
		if err != nil {
			return err
		}
		now := time.Now()
		order.UpdatedAt = now
		if stored == nil {
			if err := tx.Omit("Items").Create(order).Error; err != nil {
				return err
			}
		} else {
			order.ID = stored.ID
			if stored.Status != order.Status && guard != nil && !guard(stored.Status, order.Status) {
				return nil
			}
			if err := tx.Model(&models.Order{}).Where("id = ?", stored.ID).Updates(map[string]interface{}{
				"status":       order.Status,
				"total_amount": order.TotalAmount,
				"item_count":   order.ItemCount,
				"canceled_at":  order.CanceledAt,
				"updated_at":   now,
			}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		applied = true
		return nil
	})
	return applied, err
}

func (r *GormOrderRepository) first(query *gorm.DB) (*models.Order, error) {
	return firstOrNil[models.Order](query.Preload("Items"))
}

// GetByID 根据 ID 获取订单
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	return r.first(r.db.Where("id = ?", id))
}

// GetByOrderNo 根据订单号获取订单
func (r *GormOrderRepository) GetByOrderNo(orderNo string) (*models.Order, error) {
	return r.first(r.db.Where("order_no = ?", orderNo))
}

// ListAdmin 管理端订单列表
func (r *GormOrderRepository) ListAdmin(filter OrderListFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	query := r.db.Model(&models.Order{})

	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.ScopeID != "" {
		query = query.Where("scope_id = ?", filter.ScopeID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no LIKE ?", "%"+filter.OrderNo+"%")
	}
	if filter.CreatedFrom != nil {
		query = query.Where("placed_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("placed_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Scopes(paginate(filter.Page, filter.PageSize))
	if err := query.Preload("Items").Order("placed_at desc, id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus 更新订单状态
func (r *GormOrderRepository) UpdateStatus(orderNo string, status string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	updates["updated_at"] = time.Now()
	return r.db.Model(&models.Order{}).Where("order_no = ?", orderNo).Updates(updates).Error
}

// SumPreOrderReservations 汇总商品在有效订单中的预订数量
func (r *GormOrderRepository) SumPreOrderReservations(productIDs []uint, excludeStatuses []string) ([]PreOrderReservation, error) {
	if len(productIDs) == 0 {
		return []PreOrderReservation{}, nil
	}
	query := r.db.Model(&models.OrderItem{}).
		Select("order_items.product_id AS product_id, COALESCE(SUM(order_items.quantity), 0) AS reserved_qty, COUNT(DISTINCT order_items.order_id) AS order_count").
		Joins("JOIN orders ON orders.id = order_items.order_id AND orders.deleted_at IS NULL").
		Where("order_items.product_id IN ?", productIDs)
	if len(excludeStatuses) > 0 {
		query = query.Where("orders.status NOT IN ?", excludeStatuses)
	}
	var rows []PreOrderReservation
	if err := query.Group("order_items.product_id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
