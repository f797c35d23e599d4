package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olehsv/check-service/internal/apperrors"
	"github.com/olehsv/check-service/internal/lib/password"
	"github.com/olehsv/check-service/internal/models"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) CreateUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepositoryMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepositoryMock) CountUsersByEmail(ctx context.Context, email string) (int, error) {
	args := m.Called(ctx, email)
	return args.Int(0), args.Error(1)
}

type SessionCreatorMock struct {
	mock.Mock
}

func (m *SessionCreatorMock) Create(ctx context.Context, user *models.User) (*models.Session, error) {
	args := m.Called(ctx, user)
	session, _ := args.Get(0).(*models.Session)
	return session, args.Error(1)
}

func TestRegister(t *testing.T) {
	users := new(UserRepositoryMock)
	sessions := new(SessionCreatorMock)
	svc := New(users, sessions, password.NewHasher("pepper"))

	wantSession := &models.Session{AccessToken: "access", RefreshToken: "refresh"}

	users.On("CountUsersByEmail", mock.Anything, "alice@example.com").Return(0, nil).Once()
	users.On("CreateUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
		return user.Name == "alice" &&
			user.Email == "alice@example.com" &&
			user.UUID != "" &&
			user.HashedPassword != "password123"
	})).Return(nil).Once()
	sessions.On("Create", mock.Anything, mock.Anything).Return(wantSession, nil).Once()

	session, err := svc.Register(context.Background(), "alice", "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, wantSession, session)
	users.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

func TestRegisterWithoutEmailSkipsUniquenessCheck(t *testing.T) {
	users := new(UserRepositoryMock)
	sessions := new(SessionCreatorMock)
	svc := New(users, sessions, password.NewHasher("pepper"))

	users.On("CreateUser", mock.Anything, mock.Anything).Return(nil).Once()
	sessions.On("Create", mock.Anything, mock.Anything).Return(&models.Session{}, nil).Once()

	_, err := svc.Register(context.Background(), "alice", "", "password123")
	require.NoError(t, err)
	users.AssertNotCalled(t, "CountUsersByEmail")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := new(UserRepositoryMock)
	sessions := new(SessionCreatorMock)
	svc := New(users, sessions, password.NewHasher("pepper"))

	users.On("CountUsersByEmail", mock.Anything, "alice@example.com").Return(1, nil).Once()

	session, err := svc.Register(context.Background(), "alice", "alice@example.com", "password123")
	assert.Nil(t, session)
	assert.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
	users.AssertNotCalled(t, "CreateUser")
	sessions.AssertNotCalled(t, "Create")
}

func TestLogin(t *testing.T) {
	hasher := password.NewHasher("pepper")
	hash, err := hasher.Hash("password123")
	require.NoError(t, err)

	user := &models.User{
		UUID:           "user-uuid",
		Name:           "alice",
		Email:          "alice@example.com",
		HashedPassword: hash,
	}
	wantSession := &models.Session{AccessToken: "access", RefreshToken: "refresh"}

	tests := []struct {
		name        string
		password    string
		storedUser  *models.User
		storedErr   error
		wantSession *models.Session
		wantErr     error
	}{
		{
			name:        "success",
			password:    "password123",
			storedUser:  user,
			wantSession: wantSession,
		},
		{
			name:       "wrong password",
			password:   "wrong-password",
			storedUser: user,
			wantErr:    apperrors.ErrIncorrectPassword,
		},
		{
			name:      "unknown email",
			password:  "password123",
			storedErr: apperrors.ErrUserNotFound,
			wantErr:   apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UserRepositoryMock)
			sessions := new(SessionCreatorMock)
			svc := New(users, sessions, hasher)

			users.On("GetUserByEmail", mock.Anything, "alice@example.com").
				Return(tt.storedUser, tt.storedErr).Once()
			if tt.wantSession != nil {
				sessions.On("Create", mock.Anything, tt.storedUser).Return(tt.wantSession, nil).Once()
			}

			session, err := svc.Login(context.Background(), "alice@example.com", tt.password)
			if tt.wantErr != nil {
				assert.Nil(t, session)
				assert.ErrorIs(t, err, tt.wantErr)
				sessions.AssertNotCalled(t, "Create")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantSession, session)
			}
			users.AssertExpectations(t)
			sessions.AssertExpectations(t)
		})
	}
}

func TestRegisterStorageFailure(t *testing.T) {
	users := new(UserRepositoryMock)
	sessions := new(SessionCreatorMock)
	svc := New(users, sessions, password.NewHasher("pepper"))

	users.On("CountUsersByEmail", mock.Anything, "alice@example.com").Return(0, nil).Once()
	users.On("CreateUser", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	session, err := svc.Register(context.Background(), "alice", "alice@example.com", "password123")
	assert.Nil(t, session)
	assert.Error(t, err)
	sessions.AssertNotCalled(t, "Create")
}
