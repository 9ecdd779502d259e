package service

import (
	"context"
	"testing"
	"time"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
	"alcyxob/gym-management/internal/repository/mocks"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Register(t *testing.T) {
	users := new(mocks.UserRepository)
	svc := NewAuthService(users, "secret", time.Hour)
	ctx := context.Background()
	id := primitive.NewObjectID()

	users.On("GetByEmail", mock.Anything, "new@gym.com").Return(nil, repository.ErrNotFound).Once()
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "new@gym.com" && bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("pw")) == nil
	})).Return(id, nil).Once()

	user, err := svc.Register(ctx, "New", " New@Gym.com ", "pw", domain.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Empty(t, user.PasswordHash)

	users.On("GetByEmail", mock.Anything, "taken@gym.com").Return(&domain.User{}, nil).Once()
	_, err = svc.Register(ctx, "Taken", "taken@gym.com", "pw", domain.RoleStaff)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	_, err = svc.Register(ctx, "Odd", "odd@gym.com", "pw", domain.Role("trainer"))
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestAuthService_Login(t *testing.T) {
	users := new(mocks.UserRepository)
	svc := NewAuthService(users, "secret", time.Hour)
	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &domain.User{ID: primitive.NewObjectID(), Email: "fred@rocks.com", PasswordHash: string(hash), Role: domain.RoleClient}
	users.On("GetByEmail", mock.Anything, "fred@rocks.com").Return(stored, nil)
	users.On("GetByEmail", mock.Anything, "nobody@rocks.com").Return(nil, repository.ErrNotFound)

	_, _, err = svc.Login(context.Background(), "fred@rocks.com", "wrong")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	_, _, err = svc.Login(context.Background(), "nobody@rocks.com", "right")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	token, user, err := svc.Login(context.Background(), "Fred@Rocks.com", "right")
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) { return []byte("secret"), nil })
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, TokenIssuer, claims.Issuer)
	assert.Equal(t, domain.Actor{UserID: stored.ID.Hex(), Email: "fred@rocks.com", Role: domain.RoleClient}, claims.Actor())
}
