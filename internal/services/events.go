package services

// EventPublisher is the seam to the message broker. The order service
// publishes lifecycle events through it after its transaction has
// committed; a nil publisher disables publication entirely.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}
