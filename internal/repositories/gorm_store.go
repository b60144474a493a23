package repositories

import "gorm.io/gorm"

// GormStore is the GORM-backed Store. Atomically maps straight onto a
// database transaction, so the order-creation flow inherits the database's
// multi-statement atomicity and isolation.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by the given GORM handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserRepository { return NewGORMUserRepository(s.db) }

func (s *GormStore) Addresses() AddressRepository { return NewGORMAddressRepository(s.db) }

func (s *GormStore) Catalog() CatalogRepository { return NewGORMCatalogRepository(s.db) }

func (s *GormStore) Carts() CartRepository { return NewGORMCartRepository(s.db) }

func (s *GormStore) Stock() StockRepository { return NewGORMStockRepository(s.db) }

func (s *GormStore) Orders() OrderRepository { return NewGORMOrderRepository(s.db) }

func (s *GormStore) Coupons() CouponRepository { return NewGORMCouponRepository(s.db) }

// Atomically runs fn inside a database transaction; any error rolls every
// write back.
func (s *GormStore) Atomically(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGormStore(tx))
	})
}
