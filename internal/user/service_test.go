package user

import (
	"context"
	"testing"

	"lokatiket/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, name, email, passwordHash, role string) (*User, error) {
	args := m.Called(ctx, name, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id int) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func TestRegister_SellerAccount(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("EmailExists", mock.Anything, "seller@candi.id").Return(false, nil)
	repo.On("Create", mock.Anything, "Wayan", "seller@candi.id", mock.AnythingOfType("string"), auth.RoleSeller).
		Return(&User{ID: 1, Name: "Wayan", Email: "seller@candi.id", Role: auth.RoleSeller}, nil)

	service := NewService(repo, "test-secret")

	user, accessToken, refreshToken, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Wayan",
		Email:    "seller@candi.id",
		Password: "rahasia123",
		Role:     auth.RoleSeller,
	})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleSeller, user.Role)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
}

func TestRegister_DefaultsToCustomer(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("EmailExists", mock.Anything, "c@x.id").Return(false, nil)
	repo.On("Create", mock.Anything, "C", "c@x.id", mock.AnythingOfType("string"), auth.RoleCustomer).
		Return(&User{ID: 2, Role: auth.RoleCustomer, Email: "c@x.id"}, nil)

	service := NewService(repo, "test-secret")

	user, _, _, err := service.Register(context.Background(), RegisterRequest{
		Name: "C", Email: "c@x.id", Password: "rahasia123",
	})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleCustomer, user.Role)
}

func TestRegister_RejectsAdminRole(t *testing.T) {
	repo := new(MockUserRepo)
	service := NewService(repo, "test-secret")

	_, _, _, err := service.Register(context.Background(), RegisterRequest{
		Name: "A", Email: "a@x.id", Password: "rahasia123", Role: auth.RoleAdmin,
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_EmailTaken(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("EmailExists", mock.Anything, "dup@x.id").Return(true, nil)

	service := NewService(repo, "test-secret")

	_, _, _, err := service.Register(context.Background(), RegisterRequest{
		Name: "D", Email: "dup@x.id", Password: "rahasia123",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLogin_Success(t *testing.T) {
	hash, err := auth.HashPassword("rahasia123")
	require.NoError(t, err)

	repo := new(MockUserRepo)
	repo.On("FindByEmail", mock.Anything, "seller@candi.id").
		Return(&User{ID: 1, Email: "seller@candi.id", PasswordHash: hash, Role: auth.RoleSeller}, nil)

	service := NewService(repo, "test-secret")

	user, accessToken, _, err := service.Login(context.Background(), LoginRequest{
		Email: "seller@candi.id", Password: "rahasia123",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)

	claims, err := auth.ValidateToken(accessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleSeller, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("rahasia123")
	require.NoError(t, err)

	repo := new(MockUserRepo)
	repo.On("FindByEmail", mock.Anything, "seller@candi.id").
		Return(&User{ID: 1, PasswordHash: hash}, nil)

	service := NewService(repo, "test-secret")

	_, _, _, err = service.Login(context.Background(), LoginRequest{
		Email: "seller@candi.id", Password: "salah",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("FindByEmail", mock.Anything, "ghost@x.id").Return(nil, ErrUserNotFound)

	service := NewService(repo, "test-secret")

	_, _, _, err := service.Login(context.Background(), LoginRequest{
		Email: "ghost@x.id", Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
