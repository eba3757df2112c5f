package service

import (
	"context"
	"testing"
	"time"

	"github.com/iamsashka/Kursach/internal/model"
	"github.com/iamsashka/Kursach/pkg/jwtutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type mockSessionStore struct{ mock.Mock }

func (m *mockSessionStore) Create(ctx context.Context, userID uint, ttl time.Duration) (string, error) {
	args := m.Called(ctx, userID, ttl)
	return args.String(0), args.Error(1)
}
func (m *mockSessionStore) Get(ctx context.Context, token string) (uint, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uint), args.Error(1)
}
func (m *mockSessionStore) Delete(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func newAuthFixture() (*AuthService, *mockStore, *mockSessionStore) {
	store := newMockStore()
	store.allowAuditWrites()
	sessions := &mockSessionStore{}
	jwt := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "test-secret", ExpirationHours: 1})
	return NewAuthService(store, jwt, sessions, time.Hour, NewAuditService(store)), store, sessions
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestRegister_NormalizesEmailAndHashes(t *testing.T) {
	svc, store, _ := newAuthFixture()

	store.users.On("FindByEmail", mock.Anything, "anna@example.com").
		Return(nil, gorm.ErrRecordNotFound).Once()
	store.users.On("FindByUsername", mock.Anything, "anna").
		Return(nil, gorm.ErrRecordNotFound).Once()
	store.users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "anna@example.com" &&
			u.Role == model.RoleCustomer &&
			u.Enabled &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("s3cret")) == nil
	})).Return(nil).Once()

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    " Anna@Example.com ",
		Username: "anna",
		Password: "s3cret",
	})

	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", user.Email)
	store.users.AssertExpectations(t)
}

func TestRegister_EmailTaken(t *testing.T) {
	svc, store, _ := newAuthFixture()

	store.users.On("FindByEmail", mock.Anything, "anna@example.com").
		Return(&model.User{ID: 1, Email: "anna@example.com"}, nil).Once()

	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "anna@example.com", Username: "anna2", Password: "x",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_UsernameTaken(t *testing.T) {
	svc, store, _ := newAuthFixture()

	store.users.On("FindByEmail", mock.Anything, "anna@example.com").
		Return(nil, gorm.ErrRecordNotFound).Once()
	store.users.On("FindByUsername", mock.Anything, "anna").
		Return(&model.User{ID: 2, Username: "anna"}, nil).Once()

	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "anna@example.com", Username: "anna", Password: "x",
	})

	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin_Success(t *testing.T) {
	svc, store, sessions := newAuthFixture()

	user := &model.User{
		ID: 7, Email: "anna@example.com", Username: "anna",
		Password: hashPassword(t, "s3cret"),
		Role:     model.RoleCustomer, Enabled: true,
	}
	store.users.On("FindByEmail", mock.Anything, "anna@example.com").Return(user, nil).Once()
	store.users.On("TouchLastActivity", mock.Anything, uint(7)).Return(nil).Once()
	sessions.On("Create", mock.Anything, uint(7), time.Hour).Return("session-token", nil).Once()

	result, err := svc.Login(context.Background(), "Anna@Example.com", "s3cret")

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "session-token", result.SessionToken)
	assert.Equal(t, uint(7), result.User.ID)
	sessions.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, store, _ := newAuthFixture()

	user := &model.User{ID: 7, Email: "anna@example.com",
		Password: hashPassword(t, "s3cret"), Enabled: true}
	store.users.On("FindByEmail", mock.Anything, "anna@example.com").Return(user, nil).Once()

	_, err := svc.Login(context.Background(), "anna@example.com", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, store, _ := newAuthFixture()

	store.users.On("FindByEmail", mock.Anything, "ghost@example.com").
		Return(nil, gorm.ErrRecordNotFound).Once()

	_, err := svc.Login(context.Background(), "ghost@example.com", "x")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, store, _ := newAuthFixture()

	user := &model.User{ID: 7, Email: "anna@example.com",
		Password: hashPassword(t, "s3cret"), Enabled: false}
	store.users.On("FindByEmail", mock.Anything, "anna@example.com").Return(user, nil).Once()

	_, err := svc.Login(context.Background(), "anna@example.com", "s3cret")

	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestLogout(t *testing.T) {
	svc, _, sessions := newAuthFixture()

	sessions.On("Delete", mock.Anything, "session-token").Return(nil).Once()
	require.NoError(t, svc.Logout(context.Background(), "session-token"))

	// Blank token is a no-op
	require.NoError(t, svc.Logout(context.Background(), ""))
	sessions.AssertNumberOfCalls(t, "Delete", 1)
}
