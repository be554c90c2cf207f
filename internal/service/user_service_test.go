package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/edu-portal-api/internal/models"
	appErrors "github.com/noah-isme/edu-portal-api/pkg/errors"
)

type memUserRepo struct {
	users []models.User
	calls int
}

func (m *memUserRepo) List(ctx context.Context) ([]models.User, error) {
	m.calls++
	return append([]models.User{}, m.users...), nil
}

func (m *memUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	m.calls++
	for _, u := range m.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUserRepo) Create(ctx context.Context, user *models.User) error {
	m.calls++
	user.ID = "user-new"
	m.users = append(m.users, *user)
	return nil
}

func (m *memUserRepo) Delete(ctx context.Context, id string) error {
	m.calls++
	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func TestUserServiceCreate(t *testing.T) {
	repo := &memUserRepo{users: []models.User{{ID: "admin-1", Username: "admin", IsAdmin: true}}}
	audit := &fakeAudit{}
	svc := NewUserService(repo, newStubAuthorizer(), audit, nil, zap.NewNop())

	user, err := svc.Create(context.Background(), adminSession, CreateUserRequest{Username: " editor ", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.Equal(t, "editor", user.Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cretpass")))
	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionUserCreate, audit.entries[0].Action)

	_, err = svc.Create(context.Background(), adminSession, CreateUserRequest{Username: "editor", Password: "s3cretpass"})
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestUserServiceRequiresAdmin(t *testing.T) {
	repo := &memUserRepo{}
	svc := NewUserService(repo, newStubAuthorizer(), nil, nil, nil)

	_, err := svc.List(context.Background(), models.Session{})
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	_, err = svc.List(context.Background(), editorSession)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	assert.Zero(t, repo.calls)
}

func TestUserServiceDelete(t *testing.T) {
	repo := &memUserRepo{users: []models.User{{ID: "admin-1"}, {ID: "user-2"}}}
	svc := NewUserService(repo, newStubAuthorizer(), nil, nil, nil)

	err := svc.Delete(context.Background(), adminSession, "admin-1")
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), adminSession, "user-2"))
	err = svc.Delete(context.Background(), adminSession, "user-2")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
