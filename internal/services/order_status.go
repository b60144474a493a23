package services

import "kedai/internal/models"

// statusTransitions is the full set of legal order-status edges. Delivered
// and cancelled are terminal; cancellation is only possible before the
// order is on its way. Self-transitions are not edges, so repeating the
// current status is rejected like any other illegal change.
var statusTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPending:   {models.StatusPreparing, models.StatusCancelled},
	models.StatusPreparing: {models.StatusOnTheWay, models.StatusCancelled},
	models.StatusOnTheWay:  {models.StatusDelivered},
	models.StatusDelivered: {},
	models.StatusCancelled: {},
}

// CanTransition reports whether the edge from current to next is legal.
func CanTransition(current, next models.OrderStatus) bool {
	for _, allowed := range statusTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidStatus reports whether the given value is a known order status.
func ValidStatus(status models.OrderStatus) bool {
	_, ok := statusTransitions[status]
	return ok
}
