package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the per-entity repositories behind one handle so services can
// run a group of calls inside a single transaction via WithinTx.
type Store interface {
	Users() UserRepository
	Products() ProductRepository
	Categories() CategoryRepository
	Brands() BrandRepository
	Cart() CartRepository
	Orders() OrderRepository
	Favorites() FavoriteRepository
	AuditLogs() AuditLogRepository
	Analytics() AnalyticsRepository

	// WithinTx runs fn against a transaction-scoped Store. Any error returned
	// by fn rolls the whole transaction back.
	WithinTx(ctx context.Context, fn func(Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore creates a gorm-backed Store
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() UserRepository { return &userRepository{db: s.db} }
func (s *gormStore) Products() ProductRepository { return &productRepository{db: s.db} }
func (s *gormStore) Categories() CategoryRepository { return &categoryRepository{db: s.db} }
func (s *gormStore) Brands() BrandRepository { return &brandRepository{db: s.db} }
func (s *gormStore) Cart() CartRepository { return &cartRepository{db: s.db} }
func (s *gormStore) Orders() OrderRepository { return &orderRepository{db: s.db} }
func (s *gormStore) Favorites() FavoriteRepository { return &favoriteRepository{db: s.db} }
func (s *gormStore) AuditLogs() AuditLogRepository { return &auditLogRepository{db: s.db} }
func (s *gormStore) Analytics() AnalyticsRepository { return &analyticsRepository{db: s.db} }

func (s *gormStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
