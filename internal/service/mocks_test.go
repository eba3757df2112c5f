package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/iamsashka/Kursach/internal/model"
	"github.com/iamsashka/Kursach/internal/repository"
	"github.com/iamsashka/Kursach/pkg/config"
	"github.com/iamsashka/Kursach/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	prometheus.InitMetrics(&config.Config{Metrics: config.MetricsConfig{Prefix: "test"}})
	os.Exit(m.Run())
}

// mockStore bundles the per-entity mocks behind the Store interface.
// WithinTx simply runs fn against the same store, so transactional services
// can be exercised without a database.
type mockStore struct {
	users     *mockUserRepo
	products  *mockProductRepo
	categories *mockCategoryRepo
	brands    *mockBrandRepo
	cart      *mockCartRepo
	orders    *mockOrderRepo
	favorites *mockFavoriteRepo
	audits    *mockAuditRepo
	analytics *mockAnalyticsRepo
}

func newMockStore() *mockStore {
	return &mockStore{
		users:     &mockUserRepo{},
		products:  &mockProductRepo{},
		categories: &mockCategoryRepo{},
		brands:    &mockBrandRepo{},
		cart:      &mockCartRepo{},
		orders:    &mockOrderRepo{},
		favorites: &mockFavoriteRepo{},
		audits:    &mockAuditRepo{},
		analytics: &mockAnalyticsRepo{},
	}
}

func (s *mockStore) Users() repository.UserRepository          { return s.users }
func (s *mockStore) Products() repository.ProductRepository    { return s.products }
func (s *mockStore) Categories() repository.CategoryRepository { return s.categories }
func (s *mockStore) Brands() repository.BrandRepository        { return s.brands }
func (s *mockStore) Cart() repository.CartRepository           { return s.cart }
func (s *mockStore) Orders() repository.OrderRepository        { return s.orders }
func (s *mockStore) Favorites() repository.FavoriteRepository  { return s.favorites }
func (s *mockStore) AuditLogs() repository.AuditLogRepository  { return s.audits }
func (s *mockStore) Analytics() repository.AnalyticsRepository { return s.analytics }

func (s *mockStore) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

// allowAuditWrites accepts any audit entry; audit content is covered by its
// own tests.
func (s *mockStore) allowAuditWrites() {
	s.audits.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) List(ctx context.Context, search string, page, pageSize int) ([]model.User, int64, error) {
	args := m.Called(ctx, search, page, pageSize)
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}
func (m *mockUserRepo) ListArchived(ctx context.Context, page, pageSize int) ([]model.User, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}
func (m *mockUserRepo) SoftDelete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockUserRepo) Restore(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockUserRepo) HardDelete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockUserRepo) TouchLastActivity(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockUserRepo) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) Create(ctx context.Context, product *model.Product) error {
	return m.Called(ctx, product).Error(0)
}
func (m *mockProductRepo) Update(ctx context.Context, product *model.Product) error {
	return m.Called(ctx, product).Error(0)
}
func (m *mockProductRepo) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}
func (m *mockProductRepo) FindByName(ctx context.Context, name string) (*model.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}
func (m *mockProductRepo) List(ctx context.Context, filter repository.CatalogFilter) ([]model.Product, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.Product), args.Get(1).(int64), args.Error(2)
}
func (m *mockProductRepo) ListArchived(ctx context.Context, page, pageSize int) ([]model.Product, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]model.Product), args.Get(1).(int64), args.Error(2)
}
func (m *mockProductRepo) SoftDelete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockProductRepo) Restore(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockProductRepo) DecrementStock(ctx context.Context, id uint, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}
func (m *mockProductRepo) IncrementViews(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockProductRepo) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockCategoryRepo struct{ mock.Mock }

func (m *mockCategoryRepo) Create(ctx context.Context, category *model.Category) error {
	return m.Called(ctx, category).Error(0)
}
func (m *mockCategoryRepo) Update(ctx context.Context, category *model.Category) error {
	return m.Called(ctx, category).Error(0)
}
func (m *mockCategoryRepo) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}
func (m *mockCategoryRepo) FindByName(ctx context.Context, name string) (*model.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}
func (m *mockCategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Category), args.Error(1)
}
func (m *mockCategoryRepo) ListArchived(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Category), args.Error(1)
}
func (m *mockCategoryRepo) SoftDelete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockCategoryRepo) Restore(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockBrandRepo struct{ mock.Mock }

func (m *mockBrandRepo) Create(ctx context.Context, brand *model.Brand) error {
	return m.Called(ctx, brand).Error(0)
}
func (m *mockBrandRepo) Update(ctx context.Context, brand *model.Brand) error {
	return m.Called(ctx, brand).Error(0)
}
func (m *mockBrandRepo) FindByID(ctx context.Context, id uint) (*model.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Brand), args.Error(1)
}
func (m *mockBrandRepo) FindByName(ctx context.Context, name string) (*model.Brand, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Brand), args.Error(1)
}
func (m *mockBrandRepo) List(ctx context.Context) ([]model.Brand, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Brand), args.Error(1)
}
func (m *mockBrandRepo) ListArchived(ctx context.Context) ([]model.Brand, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Brand), args.Error(1)
}
func (m *mockBrandRepo) SoftDelete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockBrandRepo) Restore(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockCartRepo struct{ mock.Mock }

func (m *mockCartRepo) ListByUser(ctx context.Context, userID uint) ([]model.CartItem, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.CartItem), args.Error(1)
}
func (m *mockCartRepo) FindVariant(ctx context.Context, userID, productID uint, size, color string) (*model.CartItem, error) {
	args := m.Called(ctx, userID, productID, size, color)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItem), args.Error(1)
}
func (m *mockCartRepo) FindByIDForUser(ctx context.Context, id, userID uint) (*model.CartItem, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItem), args.Error(1)
}
func (m *mockCartRepo) Create(ctx context.Context, item *model.CartItem) error {
	return m.Called(ctx, item).Error(0)
}
func (m *mockCartRepo) UpdateQuantity(ctx context.Context, id uint, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}
func (m *mockCartRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockCartRepo) ClearUser(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *mockCartRepo) CountByUser(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockCartRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) Create(ctx context.Context, order *model.Order) error {
	return m.Called(ctx, order).Error(0)
}
func (m *mockOrderRepo) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}
func (m *mockOrderRepo) ExistsNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}
func (m *mockOrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.Order), args.Get(1).(int64), args.Error(2)
}
func (m *mockOrderRepo) ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]model.Order), args.Get(1).(int64), args.Error(2)
}
func (m *mockOrderRepo) ListArchived(ctx context.Context, page, pageSize int) ([]model.Order, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]model.Order), args.Get(1).(int64), args.Error(2)
}
func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *mockOrderRepo) SoftDelete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockOrderRepo) Restore(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockOrderRepo) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockOrderRepo) SumRevenue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockFavoriteRepo struct{ mock.Mock }

func (m *mockFavoriteRepo) ListByUser(ctx context.Context, userID uint) ([]model.Favorite, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Favorite), args.Error(1)
}
func (m *mockFavoriteRepo) Find(ctx context.Context, userID, productID uint) (*model.Favorite, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Favorite), args.Error(1)
}
func (m *mockFavoriteRepo) Create(ctx context.Context, favorite *model.Favorite) error {
	return m.Called(ctx, favorite).Error(0)
}
func (m *mockFavoriteRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockFavoriteRepo) DeleteByUserProduct(ctx context.Context, userID, productID uint) error {
	return m.Called(ctx, userID, productID).Error(0)
}
func (m *mockFavoriteRepo) ClearUser(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *mockFavoriteRepo) CountByUser(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockFavoriteRepo) OldestByUser(ctx context.Context, userID uint) (*model.Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Favorite), args.Error(1)
}
func (m *mockFavoriteRepo) ProductIDsForUser(ctx context.Context, userID uint, productIDs []uint) ([]uint, error) {
	args := m.Called(ctx, userID, productIDs)
	return args.Get(0).([]uint), args.Error(1)
}

type mockAuditRepo struct{ mock.Mock }

func (m *mockAuditRepo) Create(ctx context.Context, entry *model.AuditLog) error {
	return m.Called(ctx, entry).Error(0)
}
func (m *mockAuditRepo) List(ctx context.Context, filter repository.AuditFilter) ([]model.AuditLog, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.AuditLog), args.Get(1).(int64), args.Error(2)
}

type mockAnalyticsRepo struct{ mock.Mock }

func (m *mockAnalyticsRepo) CountUsersRegisteredBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockAnalyticsRepo) CountOrdersBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockAnalyticsRepo) SumRevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *mockAnalyticsRepo) RevenueByCategory(ctx context.Context, from, to time.Time) ([]repository.CategoryRevenue, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]repository.CategoryRevenue), args.Error(1)
}
func (m *mockAnalyticsRepo) OrdersByDay(ctx context.Context, from, to time.Time) ([]repository.DailyOrderCount, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]repository.DailyOrderCount), args.Error(1)
}
func (m *mockAnalyticsRepo) TopSellingProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.ProductSales, error) {
	args := m.Called(ctx, from, to, limit)
	return args.Get(0).([]repository.ProductSales), args.Error(1)
}
