package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/htmw/2025Su-ByteSquad/internal/auth"
	"github.com/htmw/2025Su-ByteSquad/internal/domain"
	apperrors "github.com/htmw/2025Su-ByteSquad/pkg/errors"
)

// --- Mock User Repository ---

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Test Helpers ---

func newTestUserService(repo *mockUserRepository) *UserService {
	jwtManager := auth.NewJWTManager("test-secret-key-for-testing", 15*time.Minute)
	return NewUserService(repo, jwtManager, newTestEventProducer(), newTestLogger())
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

// hashForTest creates a bcrypt hash with cost 4 for fast tests.
func hashForTest(password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), 4)
	if err != nil {
		panic(err)
	}
	return string(h)
}

func testUser(password string) *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:           "user-1",
		Email:        "jamie@example.com",
		PasswordHash: hashForTest(password),
		FirstName:    "Jamie",
		LastName:     "Lee",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// --- Register Tests ---

func TestRegister_Success(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	result, err := svc.Register(ctx, RegisterInput{
		Email:     "Jamie@Example.com",
		Password:  "SecurePass123",
		FirstName: "Jamie",
		LastName:  "Lee",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.User.ID)
	assert.Equal(t, "jamie@example.com", result.User.Email)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEqual(t, "SecurePass123", result.User.PasswordHash)
	repo.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
		Return(apperrors.AlreadyExists("user", "email", "jamie@example.com"))

	result, err := svc.Register(ctx, RegisterInput{
		Email:     "jamie@example.com",
		Password:  "SecurePass123",
		FirstName: "Jamie",
		LastName:  "Lee",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestRegister_ShortPassword(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)

	result, err := svc.Register(context.Background(), RegisterInput{
		Email:    "jamie@example.com",
		Password: "short",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_MissingEmail(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)

	result, err := svc.Register(context.Background(), RegisterInput{Password: "SecurePass123"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

// --- Login Tests ---

func TestLogin_Success(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "jamie@example.com").Return(testUser("SecurePass123"), nil)

	result, err := svc.Login(ctx, LoginInput{Email: "jamie@example.com", Password: "SecurePass123"})

	require.NoError(t, err)
	assert.Equal(t, "user-1", result.User.ID)
	assert.NotEmpty(t, result.AccessToken)
	repo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "jamie@example.com").Return(testUser("SecurePass123"), nil)

	result, err := svc.Login(ctx, LoginInput{Email: "jamie@example.com", Password: "WrongPass456"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, apperrors.NotFound("user", "nobody@example.com"))

	result, err := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "SecurePass123"})

	assert.Nil(t, result)
	// Unknown email maps to the same error as a wrong password.
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

// --- Profile Tests ---

func TestGetProfile_Success(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, "user-1").Return(testUser("SecurePass123"), nil)

	user, err := svc.GetProfile(ctx, "user-1")

	require.NoError(t, err)
	assert.Equal(t, "jamie@example.com", user.Email)
}

func TestGetProfile_NotFound(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, "ghost").Return(nil, apperrors.NotFound("user", "ghost"))

	user, err := svc.GetProfile(ctx, "ghost")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, "user-1").Return(testUser("SecurePass123"), nil)
	repo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.UpdateProfile(ctx, "user-1", UpdateProfileInput{
		HeightCm:    floatPtr(178),
		WeightKg:    floatPtr(74.5),
		FitnessGoal: strPtr(domain.GoalMuscleGain),
	})

	require.NoError(t, err)
	assert.Equal(t, 178.0, user.HeightCm)
	assert.Equal(t, 74.5, user.WeightKg)
	assert.Equal(t, domain.GoalMuscleGain, user.FitnessGoal)
	// Fields not in the input stay untouched.
	assert.Equal(t, "Jamie", user.FirstName)
	repo.AssertExpectations(t)
}

func TestUpdateProfile_InvalidGoal(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)

	user, err := svc.UpdateProfile(context.Background(), "user-1", UpdateProfileInput{
		FitnessGoal: strPtr("bulking"),
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateProfile_InvalidMetrics(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, "user-1", UpdateProfileInput{HeightCm: floatPtr(-1)})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.UpdateProfile(ctx, "user-1", UpdateProfileInput{WeightKg: floatPtr(0)})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

// --- ChangePassword Tests ---

func TestChangePassword_Success(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)
	ctx := context.Background()

	user := testUser("OldPass12345")
	repo.On("GetByID", ctx, "user-1").Return(user, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	err := svc.ChangePassword(ctx, "user-1", ChangePasswordInput{
		CurrentPassword: "OldPass12345",
		NewPassword:     "NewPass67890",
	})

	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("NewPass67890")))
	repo.AssertExpectations(t)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, "user-1").Return(testUser("OldPass12345"), nil)

	err := svc.ChangePassword(ctx, "user-1", ChangePasswordInput{
		CurrentPassword: "WrongPass",
		NewPassword:     "NewPass67890",
	})

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestChangePassword_ShortNewPassword(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)

	err := svc.ChangePassword(context.Background(), "user-1", ChangePasswordInput{
		CurrentPassword: "OldPass12345",
		NewPassword:     "short",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

// --- DeleteAccount Tests ---

func TestDeleteAccount_Success(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)
	ctx := context.Background()

	repo.On("Delete", ctx, "user-1").Return(nil)

	err := svc.DeleteAccount(ctx, "user-1")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDeleteAccount_NotFound(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestUserService(repo)
	ctx := context.Background()

	repo.On("Delete", ctx, "ghost").Return(apperrors.NotFound("user", "ghost"))

	err := svc.DeleteAccount(ctx, "ghost")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
