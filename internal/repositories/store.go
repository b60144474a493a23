package repositories

// Store aggregates the per-entity repositories and provides the one
// transactional boundary the order flow needs: Atomically runs fn against
// a store whose writes either all commit or all roll back. Implementations
// must serialize stock reads taken through StockRepository.GetForUpdate
// against concurrent debits of the same product.
type Store interface {
	Users() UserRepository
	Addresses() AddressRepository
	Catalog() CatalogRepository
	Carts() CartRepository
	Stock() StockRepository
	Orders() OrderRepository
	Coupons() CouponRepository

	Atomically(fn func(Store) error) error
}
