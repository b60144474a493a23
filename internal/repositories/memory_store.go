package repositories

import (
	"sort"
	"sync"
	"time"

	"kedai/internal/models"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory implementation of Store, used in unit tests
// and for running the service without a database. A single mutex guards
// all state; Atomically runs fn against a deep copy and adopts the copy
// only on success, so a failed multi-step operation leaves nothing behind.
type MemoryStore struct {
	mu sync.RWMutex

	users        map[string]models.User
	addresses    map[string]models.Address
	products     map[string]models.Product
	carts        map[string]models.Cart // keyed by cart ID
	stock        map[string]models.StockRecord
	stockTxns    []models.StockTransaction
	orders       map[string]models.Order
	history      []models.OrderStatusHistory
	coupons      map[string]models.Coupon
	couponUsages []models.CouponUsage
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[string]models.User),
		addresses: make(map[string]models.Address),
		products:  make(map[string]models.Product),
		carts:     make(map[string]models.Cart),
		stock:     make(map[string]models.StockRecord),
		orders:    make(map[string]models.Order),
		coupons:   make(map[string]models.Coupon),
	}
}

func (s *MemoryStore) Users() UserRepository { return memUserRepo{s} }

func (s *MemoryStore) Addresses() AddressRepository { return memAddressRepo{s} }

func (s *MemoryStore) Catalog() CatalogRepository { return memCatalogRepo{s} }

func (s *MemoryStore) Carts() CartRepository { return memCartRepo{s} }

func (s *MemoryStore) Stock() StockRepository { return memStockRepo{s} }

func (s *MemoryStore) Orders() OrderRepository { return memOrderRepo{s} }

func (s *MemoryStore) Coupons() CouponRepository { return memCouponRepo{s} }

// Atomically holds the store lock for the whole unit of work, which also
// serializes concurrent order creations the way row locks do for the GORM
// store.
func (s *MemoryStore) Atomically(fn func(Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.cloneLocked()
	if err := fn(work); err != nil {
		return err
	}
	s.adoptLocked(work)
	return nil
}

func (s *MemoryStore) cloneLocked() *MemoryStore {
	clone := NewMemoryStore()
	for k, v := range s.users {
		clone.users[k] = v
	}
	for k, v := range s.addresses {
		clone.addresses[k] = v
	}
	for k, v := range s.products {
		clone.products[k] = v
	}
	for k, v := range s.carts {
		v.Lines = append([]models.CartLine(nil), v.Lines...)
		clone.carts[k] = v
	}
	for k, v := range s.stock {
		clone.stock[k] = v
	}
	clone.stockTxns = append([]models.StockTransaction(nil), s.stockTxns...)
	for k, v := range s.orders {
		v.Lines = append([]models.OrderLine(nil), v.Lines...)
		clone.orders[k] = v
	}
	clone.history = append([]models.OrderStatusHistory(nil), s.history...)
	for k, v := range s.coupons {
		clone.coupons[k] = v
	}
	clone.couponUsages = append([]models.CouponUsage(nil), s.couponUsages...)
	return clone
}

func (s *MemoryStore) adoptLocked(work *MemoryStore) {
	s.users = work.users
	s.addresses = work.addresses
	s.products = work.products
	s.carts = work.carts
	s.stock = work.stock
	s.stockTxns = work.stockTxns
	s.orders = work.orders
	s.history = work.history
	s.coupons = work.coupons
	s.couponUsages = work.couponUsages
}

// --- users ---

type memUserRepo struct{ s *MemoryStore }

func (r memUserRepo) Create(user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r memUserRepo) GetByUsername(username string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r memUserRepo) GetByEmail(email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r memUserRepo) GetByID(id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

// --- addresses ---

type memAddressRepo struct{ s *MemoryStore }

func (r memAddressRepo) Create(address *models.Address) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if address.ID == "" {
		address.ID = uuid.New().String()
	}
	address.CreatedAt = time.Now()
	r.s.addresses[address.ID] = *address
	return nil
}

func (r memAddressRepo) GetByIDForUser(id, userID string) (*models.Address, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.addresses[id]
	if !ok || a.UserID != userID {
		return nil, models.ErrNotFound
	}
	return &a, nil
}

func (r memAddressRepo) ListByUser(userID string) ([]models.Address, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Address
	for _, a := range r.s.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// --- catalog ---

type memCatalogRepo struct{ s *MemoryStore }

func (r memCatalogRepo) GetAll() ([]models.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, p)
	}
	return out, nil
}

func (r memCatalogRepo) GetByID(id string) (*models.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &p, nil
}

func (r memCatalogRepo) Create(product *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r memCatalogRepo) Update(product *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; !ok {
		return models.ErrNotFound
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r memCatalogRepo) SetAvailability(id string, available bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return models.ErrNotFound
	}
	p.IsAvailable = available
	r.s.products[id] = p
	return nil
}

// --- carts ---

type memCartRepo struct{ s *MemoryStore }

func (r memCartRepo) GetOrCreateByUser(userID string) (*models.Cart, error) {
	cart, err := r.GetByUser(userID)
	if err == nil {
		return cart, nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := models.Cart{ID: uuid.New().String(), UserID: userID, CreatedAt: time.Now()}
	r.s.carts[c.ID] = c
	return &c, nil
}

func (r memCartRepo) GetByUser(userID string) (*models.Cart, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.carts {
		if c.UserID == userID {
			c.Lines = append([]models.CartLine(nil), c.Lines...)
			cart := c
			return &cart, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r memCartRepo) UpsertLine(cart *models.Cart, line *models.CartLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.carts[cart.ID]
	if !ok {
		return models.ErrNotFound
	}
	if stored.Version != cart.Version {
		return models.ErrConcurrencyConflict
	}
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	line.CartID = cart.ID
	replaced := false
	for i := range stored.Lines {
		if stored.Lines[i].ID == line.ID {
			stored.Lines[i] = *line
			replaced = true
			break
		}
	}
	if !replaced {
		stored.Lines = append(stored.Lines, *line)
	}
	stored.Version++
	cart.Version = stored.Version
	r.s.carts[cart.ID] = stored
	return nil
}

func (r memCartRepo) DeleteLine(cart *models.Cart, lineID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.carts[cart.ID]
	if !ok {
		return models.ErrNotFound
	}
	if stored.Version != cart.Version {
		return models.ErrConcurrencyConflict
	}
	for i := range stored.Lines {
		if stored.Lines[i].ID == lineID {
			stored.Lines = append(stored.Lines[:i], stored.Lines[i+1:]...)
			stored.Version++
			cart.Version = stored.Version
			r.s.carts[cart.ID] = stored
			return nil
		}
	}
	return models.ErrNotFound
}

func (r memCartRepo) Clear(cartID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.carts[cartID]
	if !ok {
		return models.ErrNotFound
	}
	stored.Lines = nil
	stored.Version++
	r.s.carts[cartID] = stored
	return nil
}

// --- stock ---

type memStockRepo struct{ s *MemoryStore }

func (r memStockRepo) Create(record *models.StockRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stock[record.ProductID] = *record
	return nil
}

func (r memStockRepo) Get(productID string) (*models.StockRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.stock[productID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &rec, nil
}

// GetForUpdate is equivalent to Get here; Atomically already holds the
// store-wide lock.
func (r memStockRepo) GetForUpdate(productID string) (*models.StockRecord, error) {
	return r.Get(productID)
}

func (r memStockRepo) Save(record *models.StockRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.stock[record.ProductID]; !ok {
		return models.ErrNotFound
	}
	r.s.stock[record.ProductID] = *record
	return nil
}

func (r memStockRepo) AppendTransaction(txn *models.StockTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	txn.CreatedAt = time.Now()
	r.s.stockTxns = append(r.s.stockTxns, *txn)
	return nil
}

func (r memStockRepo) Transactions(productID string) ([]models.StockTransaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.StockTransaction
	for _, t := range r.s.stockTxns {
		if t.ProductID == productID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r memStockRepo) LowStock() ([]models.StockRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.StockRecord
	for _, rec := range r.s.stock {
		if rec.IsLowStock() {
			out = append(out, rec)
		}
	}
	return out, nil
}

// --- orders ---

type memOrderRepo struct{ s *MemoryStore }

func (r memOrderRepo) Create(order *models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()
	for i := range order.Lines {
		if order.Lines[i].ID == "" {
			order.Lines[i].ID = uuid.New().String()
		}
		order.Lines[i].OrderID = order.ID
	}
	stored := *order
	stored.Lines = append([]models.OrderLine(nil), order.Lines...)
	stored.History = nil
	r.s.orders[order.ID] = stored
	return nil
}

func (r memOrderRepo) GetByID(id string) (*models.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.getLocked(id)
}

func (r memOrderRepo) getLocked(id string) (*models.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	o.Lines = append([]models.OrderLine(nil), o.Lines...)
	o.History = nil
	for _, h := range r.s.history {
		if h.OrderID == id {
			o.History = append(o.History, h)
		}
	}
	order := o
	return &order, nil
}

func (r memOrderRepo) GetByIDForUser(id, userID string) (*models.Order, error) {
	order, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, models.ErrNotFound
	}
	return order, nil
}

func (r memOrderRepo) ListByUser(userID string) ([]models.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Order
	for id, o := range r.s.orders {
		if o.UserID == userID {
			order, _ := r.getLocked(id)
			out = append(out, *order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memOrderRepo) Save(order *models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.orders[order.ID]
	if !ok {
		return models.ErrNotFound
	}
	stored.Status = order.Status
	stored.Subtotal = order.Subtotal
	stored.DiscountAmount = order.DiscountAmount
	stored.TotalPrice = order.TotalPrice
	r.s.orders[order.ID] = stored
	return nil
}

func (r memOrderRepo) AppendStatusHistory(entry *models.OrderStatusHistory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CreatedAt = time.Now()
	r.s.history = append(r.s.history, *entry)
	return nil
}

func (r memOrderRepo) DeleteLine(orderID, lineID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.orders[orderID]
	if !ok {
		return models.ErrNotFound
	}
	for i := range stored.Lines {
		if stored.Lines[i].ID == lineID {
			stored.Lines = append(stored.Lines[:i], stored.Lines[i+1:]...)
			r.s.orders[orderID] = stored
			return nil
		}
	}
	return models.ErrNotFound
}

// --- coupons ---

type memCouponRepo struct{ s *MemoryStore }

func (r memCouponRepo) Create(coupon *models.Coupon) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if coupon.ID == "" {
		coupon.ID = uuid.New().String()
	}
	r.s.coupons[coupon.ID] = *coupon
	return nil
}

func (r memCouponRepo) GetByCode(code string) (*models.Coupon, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.coupons {
		if c.Code == code {
			coupon := c
			return &coupon, nil
		}
	}
	return nil, models.ErrNotFound
}

// GetByCodeForUpdate is equivalent to GetByCode here; Atomically already
// holds the store-wide lock.
func (r memCouponRepo) GetByCodeForUpdate(code string) (*models.Coupon, error) {
	return r.GetByCode(code)
}

func (r memCouponRepo) GetAll() ([]models.Coupon, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Coupon, 0, len(r.s.coupons))
	for _, c := range r.s.coupons {
		out = append(out, c)
	}
	return out, nil
}

func (r memCouponRepo) IncrementUsage(couponID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.coupons[couponID]
	if !ok {
		return models.ErrNotFound
	}
	c.UsageCount++
	r.s.coupons[couponID] = c
	return nil
}

func (r memCouponRepo) CountUsageByUser(couponID, userID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var count int64
	for _, u := range r.s.couponUsages {
		if u.CouponID == couponID && u.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r memCouponRepo) RecordUsage(usage *models.CouponUsage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if usage.ID == "" {
		usage.ID = uuid.New().String()
	}
	usage.CreatedAt = time.Now()
	r.s.couponUsages = append(r.s.couponUsages, *usage)
	return nil
}
