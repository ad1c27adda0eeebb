package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardrobe-backend/internal/auth"
	"wardrobe-backend/internal/config"
	"wardrobe-backend/internal/models"
)

// fakeUserStore is an in-memory UserStore for service tests
type fakeUserStore struct {
	users  []*models.User
	nextID int
}

func (s *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	s.nextID++
	user.ID = s.nextID
	copied := *user
	s.users = append(s.users, &copied)
	return nil
}

func (s *fakeUserStore) Get(ctx context.Context, id int) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, errors.New("no rows in result set")
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) GetByPhone(ctx context.Context, countryCode, phone string) (*models.User, error) {
	for _, u := range s.users {
		if u.CountryCode == countryCode && u.Phone == phone {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	for _, u := range s.users {
		if u.ID == id {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return nil
}

func (s *fakeUserStore) MarkPhoneVerified(ctx context.Context, id int) error {
	for _, u := range s.users {
		if u.ID == id {
			u.PhoneVerified = true
			return nil
		}
	}
	return nil
}

func newUserService(store *fakeUserStore) *UserService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 24
	cfg.JWT.Issuer = "wardrobe-backend"
	return NewUserService(store, auth.NewJWTManager(cfg))
}

func signupRequest() *models.SignupRequest {
	return &models.SignupRequest{
		Name:        "Priya",
		Email:       "priya@example.com",
		Phone:       "9166677888",
		CountryCode: "+91",
		Password:    "hunter2hunter2",
	}
}

func TestSignup_CreatesAccountWithToken(t *testing.T) {
	store := &fakeUserStore{}
	svc := newUserService(store)

	resp, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, 1, resp.User.ID)
	assert.True(t, resp.User.IsActive)
	assert.NotEqual(t, "hunter2hunter2", resp.User.PasswordHash)
	assert.True(t, auth.VerifyPassword(resp.User.PasswordHash, "hunter2hunter2"))
}

func TestSignup_RejectsDuplicateEmail(t *testing.T) {
	store := &fakeUserStore{}
	svc := newUserService(store)

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), signupRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Len(t, store.users, 1)
}

func TestLogin_FailuresUseGenericMessage(t *testing.T) {
	store := &fakeUserStore{}
	svc := newUserService(store)

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "priya@example.com", "not-the-password"},
		{"unknown email", "nobody@example.com", "hunter2hunter2"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.email, tc.password)
			require.Error(t, err)
			assert.EqualError(t, err, "invalid email or password")
		})
	}
}

func TestLogin_ValidCredentials(t *testing.T) {
	store := &fakeUserStore{}
	svc := newUserService(store)

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), "priya@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginByPhone_MarksPhoneVerified(t *testing.T) {
	store := &fakeUserStore{}
	svc := newUserService(store)

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)
	require.False(t, store.users[0].PhoneVerified)

	resp, err := svc.LoginByPhone(context.Background(), "+91", "9166677888")
	require.NoError(t, err)
	assert.True(t, resp.User.PhoneVerified)
	assert.True(t, store.users[0].PhoneVerified)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginByPhone_UnknownPhone(t *testing.T) {
	store := &fakeUserStore{}
	svc := newUserService(store)

	_, err := svc.LoginByPhone(context.Background(), "+91", "0000000000")
	require.Error(t, err)
	assert.EqualError(t, err, "no account found for this phone number")
}

func TestChangePassword_RejectsWrongCurrentPassword(t *testing.T) {
	store := &fakeUserStore{}
	svc := newUserService(store)

	resp, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), resp.User.ID, "wrong-current", "newpassword123")
	require.Error(t, err)
	assert.EqualError(t, err, "current password is incorrect")
}

func TestChangePassword_UpdatesHash(t *testing.T) {
	store := &fakeUserStore{}
	svc := newUserService(store)

	resp, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(context.Background(), resp.User.ID, "hunter2hunter2", "newpassword123"))
	assert.True(t, auth.VerifyPassword(store.users[0].PasswordHash, "newpassword123"))

	_, err = svc.Login(context.Background(), "priya@example.com", "newpassword123")
	require.NoError(t, err)
}
