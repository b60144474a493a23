package repositories

import (
	"errors"
	"fmt"
	"kedai/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// Create persists a new order together with its lines.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Lines {
		if order.Lines[i].ID == "" {
			order.Lines[i].ID = uuid.New().String()
		}
		order.Lines[i].OrderID = order.ID
	}
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID returns an order with lines and status history loaded.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Lines").
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return &order, nil
}

// GetByIDForUser returns an order owned by the given user.
func (r *GORMOrderRepository) GetByIDForUser(id, userID string) (*models.Order, error) {
	order, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, models.ErrNotFound
	}
	return order, nil
}

// ListByUser returns the user's orders, newest first.
func (r *GORMOrderRepository) ListByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Lines").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// Save persists the order's mutable columns (status, totals).
func (r *GORMOrderRepository) Save(order *models.Order) error {
	err := r.db.Model(&models.Order{}).Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":          order.Status,
			"subtotal":        order.Subtotal,
			"discount_amount": order.DiscountAmount,
			"total_price":     order.TotalPrice,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to save order %s: %w", order.ID, err)
	}
	return nil
}

// AppendStatusHistory appends one history entry for a transition.
func (r *GORMOrderRepository) AppendStatusHistory(entry *models.OrderStatusHistory) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append status history: %w", err)
	}
	return nil
}

// DeleteLine removes one line from an order.
func (r *GORMOrderRepository) DeleteLine(orderID, lineID string) error {
	res := r.db.Delete(&models.OrderLine{}, "id = ? AND order_id = ?", lineID, orderID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order line %s: %w", lineID, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
