package service

import (
	"context"
	"testing"
	"time"

	"realestate-agent/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(repo *fakeRepo) *AuthService {
	s := NewAuthService(repo, NewTokenIssuer("test-secret", time.Hour))
	s.cost = bcrypt.MinCost
	return s
}

func TestAuthService_SignupAndLogin(t *testing.T) {
	repo := newFakeRepo()
	s := newTestAuth(repo)
	ctx := context.Background()

	resp, err := s.Signup(ctx, model.SignupRequest{Email: " Amal@Example.com ", Name: "Amal", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "amal@example.com", resp.User.Email)
	assert.Equal(t, TokenType, resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEqual(t, "secret1", repo.users["amal@example.com"].HashedPassword)

	login, err := s.Login(ctx, model.LoginRequest{Email: "amal@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	claims, err := s.tokens.Parse(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "amal@example.com", claims.Subject)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestAuthService_SignupDuplicate(t *testing.T) {
	s := newTestAuth(newFakeRepo())
	req := model.SignupRequest{Email: "a@b.com", Name: "A", Password: "secret1"}

	_, err := s.Signup(context.Background(), req)
	require.NoError(t, err)
	_, err = s.Signup(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_LoginFailures(t *testing.T) {
	repo := newFakeRepo()
	s := newTestAuth(repo)
	_, err := s.Signup(context.Background(), model.SignupRequest{Email: "a@b.com", Name: "A", Password: "secret1"})
	require.NoError(t, err)
	repo.users["oauth@b.com"] = model.User{ID: 99, Email: "oauth@b.com", IsOAuth: true}

	tests := []struct {
		name  string
		email string
		pass  string
	}{
		{"unknown email", "x@b.com", "secret1"},
		{"wrong password", "a@b.com", "nope"},
		{"oauth account without password", "oauth@b.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Login(context.Background(), model.LoginRequest{Email: tt.email, Password: tt.pass})
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestTokenIssuer_Expiry(t *testing.T) {
	issuer := NewTokenIssuer("k", time.Minute)
	start := time.Now()
	issuer.now = func() time.Time { return start }

	token, err := issuer.Issue(model.User{ID: 1, Email: "a@b.com"})
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	require.NoError(t, err)

	issuer.now = func() time.Time { return start.Add(2 * time.Minute) }
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_RejectsForeignTokens(t *testing.T) {
	issuer := NewTokenIssuer("k", time.Minute)

	other, err := NewTokenIssuer("other", time.Minute).Issue(model.User{ID: 1})
	require.NoError(t, err)
	_, err = issuer.Parse(other)
	assert.ErrorIs(t, err, ErrInvalidToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": 1}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Parse(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenIssuer_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTokenTTL, NewTokenIssuer("k", 0).ttl)
}
