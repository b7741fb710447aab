package user_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/tilly/internal/user"
)

func hashOf(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return string(hash)
}

func TestService_Authenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := user.NewMockRepository(ctrl)
	svc := user.NewService(repo)

	stored := &user.User{ID: 1, Username: "amy", Password: hashOf(t, "s3cret"), Role: user.RoleCashier}

	repo.EXPECT().GetUserByUsername(gomock.Any(), "amy").Return(stored, nil)

	got, err := svc.Authenticate(context.Background(), "amy", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, user.RoleCashier, got.Role)
}

func TestService_Authenticate_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := user.NewMockRepository(ctrl)
	svc := user.NewService(repo)

	stored := &user.User{ID: 1, Username: "amy", Password: hashOf(t, "s3cret")}

	repo.EXPECT().GetUserByUsername(gomock.Any(), "amy").Return(stored, nil)

	got, err := svc.Authenticate(context.Background(), "amy", "wrong")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	assert.Nil(t, got)
}

func TestService_Authenticate_UnknownUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := user.NewMockRepository(ctrl)
	svc := user.NewService(repo)

	repo.EXPECT().GetUserByUsername(gomock.Any(), "nobody").Return(nil, user.ErrNotFound)

	got, err := svc.Authenticate(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	assert.Nil(t, got)
}

func TestService_Authenticate_LegacyPlaintextRehash(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := user.NewMockRepository(ctrl)
	svc := user.NewService(repo)

	// A seeded row still carries its plaintext password. A successful login
	// upgrades it to a bcrypt hash in place.
	stored := &user.User{ID: 1, Username: "admin", Password: "admin", Role: user.RoleAdmin}

	repo.EXPECT().GetUserByUsername(gomock.Any(), "admin").Return(stored, nil)
	repo.EXPECT().
		UpdatePassword(gomock.Any(), int64(1), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, hash string) error {
			assert.True(t, strings.HasPrefix(hash, "$2"))
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("admin")))
			return nil
		})

	got, err := svc.Authenticate(context.Background(), "admin", "admin")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.Password, "$2"))
}

func TestService_Authenticate_LegacyPlaintextWrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := user.NewMockRepository(ctrl)
	svc := user.NewService(repo)

	stored := &user.User{ID: 1, Username: "admin", Password: "admin"}

	repo.EXPECT().GetUserByUsername(gomock.Any(), "admin").Return(stored, nil)

	got, err := svc.Authenticate(context.Background(), "admin", "nope")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	assert.Nil(t, got)
}

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := user.NewMockRepository(ctrl)
	svc := user.NewService(repo)

	repo.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *user.User) error {
			assert.NotEqual(t, "s3cret", u.Password)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("s3cret")))
			u.ID = 5
			return nil
		})

	got, err := svc.Create(context.Background(), user.CreateParams{
		Username: "bob",
		Password: "s3cret",
		Role:     user.RoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)
	assert.Equal(t, user.RoleManager, got.Role)
}

func TestService_Create_EmptyCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := user.NewMockRepository(ctrl)
	svc := user.NewService(repo)

	for _, params := range []user.CreateParams{
		{Username: "", Password: "x"},
		{Username: "  ", Password: "x"},
		{Username: "bob", Password: ""},
	} {
		got, err := svc.Create(context.Background(), params)
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
		assert.Nil(t, got)
	}
}

func TestService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := user.NewMockRepository(ctrl)
	svc := user.NewService(repo)

	repo.EXPECT().
		UpdatePassword(gomock.Any(), int64(1), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, hash string) error {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("newpass")))
			return nil
		})

	err := svc.ChangePassword(context.Background(), 1, "newpass")
	assert.NoError(t, err)
}
