package repositories

import "kedai/internal/models"

// OrderRepository defines the interface for order data access. Reads load
// lines and status history; history entries are append-only.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	// GetByIDForUser returns models.ErrNotFound when the order does not
	// exist or belongs to a different user.
	GetByIDForUser(id, userID string) (*models.Order, error)
	ListByUser(userID string) ([]models.Order, error)
	Save(order *models.Order) error
	AppendStatusHistory(entry *models.OrderStatusHistory) error
	DeleteLine(orderID, lineID string) error
}
