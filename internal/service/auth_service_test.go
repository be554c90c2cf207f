package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/edu-portal-api/internal/models"
	appErrors "github.com/noah-isme/edu-portal-api/pkg/errors"
	"github.com/noah-isme/edu-portal-api/pkg/validation"
)

type mockAuthRepo struct {
	users               map[string]*models.User
	findErr             error
	refreshTokens       map[string]*models.RefreshToken
	createRefreshErr    error
	revokeUserTokensErr error
	lastLoginUpdated    bool
}

func newMockAuthRepo(users ...*models.User) *mockAuthRepo {
	repo := &mockAuthRepo{users: map[string]*models.User{}, refreshTokens: map[string]*models.RefreshToken{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (m *mockAuthRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	m.lastLoginUpdated = true
	return nil
}

func (m *mockAuthRepo) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	if u, ok := m.users[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (m *mockAuthRepo) RevokeUserRefreshTokens(ctx context.Context, userID string) error {
	return m.revokeUserTokensErr
}

func (m *mockAuthRepo) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	if m.createRefreshErr != nil {
		return m.createRefreshErr
	}
	m.refreshTokens[token.Token] = token
	return nil
}

func (m *mockAuthRepo) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := m.refreshTokens[token]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return rt, nil
}

func (m *mockAuthRepo) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	for _, token := range m.refreshTokens {
		if token.ID == id {
			token.Revoked = true
			token.RevokedAt = &revokedAt
		}
	}
	return nil
}

func testAuthConfig() AuthConfig {
	return AuthConfig{AccessTokenSecret: "secret", AccessTokenExpiry: time.Hour, RefreshTokenExpiry: 24 * time.Hour, Issuer: "edu-portal-api"}
}

func hashPassword(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	repo := newMockAuthRepo(&models.User{ID: "123", Username: "admin", PasswordHash: hashPassword(t, "password"), IsAdmin: true})
	audit := &fakeAudit{}
	svc := NewAuthService(repo, audit, validation.New(), zap.NewNop(), testAuthConfig())

	res, err := svc.Login(context.Background(), models.LoginRequest{Username: " admin ", Password: "password"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.True(t, res.User.IsAdmin)
	assert.True(t, repo.lastLoginUpdated)
	assert.Len(t, repo.refreshTokens, 1)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionLogin, audit.entries[0].Action)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	repo := newMockAuthRepo(&models.User{ID: "123", Username: "admin", PasswordHash: hashPassword(t, "password")})
	svc := NewAuthService(repo, nil, nil, nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "nope"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), models.LoginRequest{Username: "ghost", Password: "nope"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestAuthServiceLoginValidation(t *testing.T) {
	svc := NewAuthService(newMockAuthRepo(), nil, nil, nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin"})
	require.Error(t, err)
	assert.Equal(t, []string{"password"}, appErrors.FromError(err).Fields)
}

func TestAuthServiceRefreshToken(t *testing.T) {
	user := &models.User{ID: "u1", Username: "admin", IsAdmin: true}
	repo := newMockAuthRepo(user)
	repo.refreshTokens["token"] = &models.RefreshToken{ID: "rt1", UserID: user.ID, Token: "token", ExpiresAt: time.Now().Add(time.Hour)}
	svc := NewAuthService(repo, nil, nil, nil, testAuthConfig())

	res, err := svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: "token"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEqual(t, "token", res.RefreshToken)
	assert.True(t, repo.refreshTokens["token"].Revoked)

	_, err = svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: "token"})
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestAuthServiceLogoutForeignToken(t *testing.T) {
	repo := newMockAuthRepo(&models.User{ID: "u1"})
	repo.refreshTokens["token"] = &models.RefreshToken{ID: "rt1", UserID: "u2", Token: "token", ExpiresAt: time.Now().Add(time.Hour)}
	svc := NewAuthService(repo, nil, nil, nil, testAuthConfig())

	err := svc.Logout(context.Background(), &models.JWTClaims{UserID: "u1"}, "token", models.Session{})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	assert.False(t, repo.refreshTokens["token"].Revoked)
}

func TestAuthServiceChangePassword(t *testing.T) {
	oldHash := hashPassword(t, "old-password")
	repo := newMockAuthRepo(&models.User{ID: "u1", PasswordHash: oldHash})
	svc := NewAuthService(repo, nil, nil, nil, testAuthConfig())

	err := svc.ChangePassword(context.Background(), "u1", models.ChangePasswordRequest{OldPassword: "old-password", NewPassword: "newpassword"}, models.Session{})
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, repo.users["u1"].PasswordHash)

	err = svc.ChangePassword(context.Background(), "u1", models.ChangePasswordRequest{OldPassword: "old-password", NewPassword: "another1"}, models.Session{})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestValidateToken(t *testing.T) {
	svc := NewAuthService(newMockAuthRepo(), nil, nil, nil, testAuthConfig())
	user := &models.User{ID: "u1", Username: "admin", IsAdmin: true}
	token, err := svc.generateAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.True(t, claims.IsAdmin)

	other := NewAuthService(newMockAuthRepo(), nil, nil, nil, AuthConfig{AccessTokenSecret: "other", AccessTokenExpiry: time.Hour})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestValidateTokenExpired(t *testing.T) {
	cfg := testAuthConfig()
	cfg.AccessTokenExpiry = -time.Minute
	svc := NewAuthService(newMockAuthRepo(), nil, nil, nil, cfg)
	token, err := svc.generateAccessToken(&models.User{ID: "u1"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestAuthorize(t *testing.T) {
	admin := &models.User{ID: "a1", Username: "admin", IsAdmin: true}
	editor := &models.User{ID: "e1", Username: "editor"}
	repo := newMockAuthRepo(admin, editor)
	svc := NewAuthService(repo, nil, nil, nil, testAuthConfig())

	adminToken, err := svc.generateAccessToken(admin)
	require.NoError(t, err)
	editorToken, err := svc.generateAccessToken(editor)
	require.NoError(t, err)

	claims, err := svc.Authorize(context.Background(), models.Session{Token: adminToken})
	require.NoError(t, err)
	assert.Equal(t, "a1", claims.UserID)

	_, err = svc.Authorize(context.Background(), models.Session{})
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	_, err = svc.Authorize(context.Background(), models.Session{Token: "garbage"})
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	_, err = svc.Authorize(context.Background(), models.Session{Token: editorToken})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	delete(repo.users, "a1")
	_, err = svc.Authorize(context.Background(), models.Session{Token: adminToken})
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestAuthorizeDemotedAdmin(t *testing.T) {
	admin := &models.User{ID: "a1", Username: "admin", IsAdmin: true}
	repo := newMockAuthRepo(admin)
	svc := NewAuthService(repo, nil, nil, nil, testAuthConfig())
	token, err := svc.generateAccessToken(admin)
	require.NoError(t, err)

	admin.IsAdmin = false
	_, err = svc.Authorize(context.Background(), models.Session{Token: token})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestAuthorizeStoreFailure(t *testing.T) {
	admin := &models.User{ID: "a1", IsAdmin: true}
	repo := newMockAuthRepo(admin)
	svc := NewAuthService(repo, nil, nil, nil, testAuthConfig())
	token, err := svc.generateAccessToken(admin)
	require.NoError(t, err)

	repo.findErr = errors.New("db down")
	_, err = svc.Authorize(context.Background(), models.Session{Token: token})
	assert.ErrorIs(t, err, appErrors.ErrStoreUnavailable)
}
