package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/edu-portal-api/internal/models"
	appErrors "github.com/noah-isme/edu-portal-api/pkg/errors"
)

// memStore is an in-memory content repository counting every call.
type memStore[T any] struct {
	items  []T
	id     func(*T) string
	slug   func(*T) string
	setID  func(*T, string)
	err    error
	calls  int
	nextID int
}

func (m *memStore[T]) ListAll(ctx context.Context) ([]T, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return append([]T{}, m.items...), nil
}

func (m *memStore[T]) find(match func(*T) bool) (*T, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.items {
		if match(&m.items[i]) {
			item := m.items[i]
			return &item, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memStore[T]) FindByID(ctx context.Context, id string) (*T, error) {
	return m.find(func(v *T) bool { return m.id(v) == id })
}

func (m *memStore[T]) FindBySlug(ctx context.Context, slug string) (*T, error) {
	return m.find(func(v *T) bool { return m.slug(v) == slug })
}

func (m *memStore[T]) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	m.calls++
	if m.err != nil {
		return false, m.err
	}
	for i := range m.items {
		if m.slug(&m.items[i]) == slug && m.id(&m.items[i]) != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore[T]) Create(ctx context.Context, item *T) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.nextID++
	m.setID(item, fmt.Sprintf("id-%d", m.nextID))
	m.items = append(m.items, *item)
	return nil
}

func (m *memStore[T]) Update(ctx context.Context, item *T) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	for i := range m.items {
		if m.id(&m.items[i]) == m.id(item) {
			m.items[i] = *item
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memStore[T]) Delete(ctx context.Context, id string) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	for i := range m.items {
		if m.id(&m.items[i]) == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func newScholarshipStore(items ...models.Scholarship) *memStore[models.Scholarship] {
	return &memStore[models.Scholarship]{
		items: items,
		id:    func(v *models.Scholarship) string { return v.ID },
		slug:  func(v *models.Scholarship) string { return v.Slug },
		setID: func(v *models.Scholarship, id string) { v.ID = id },
	}
}

func newArticleStore(items ...models.Article) *memStore[models.Article] {
	return &memStore[models.Article]{
		items: items,
		id:    func(v *models.Article) string { return v.ID },
		slug:  func(v *models.Article) string { return v.Slug },
		setID: func(v *models.Article, id string) { v.ID = id },
	}
}

func newCountryStore(items ...models.Country) *memStore[models.Country] {
	return &memStore[models.Country]{
		items: items,
		id:    func(v *models.Country) string { return v.ID },
		slug:  func(v *models.Country) string { return v.Slug },
		setID: func(v *models.Country, id string) { v.ID = id },
	}
}

func newUniversityStore(items ...models.University) *memStore[models.University] {
	return &memStore[models.University]{
		items: items,
		id:    func(v *models.University) string { return v.ID },
		slug:  func(v *models.University) string { return v.Slug },
		setID: func(v *models.University, id string) { v.ID = id },
	}
}

func newNewsStore(items ...models.News) *memStore[models.News] {
	return &memStore[models.News]{
		items: items,
		id:    func(v *models.News) string { return v.ID },
		slug:  func(v *models.News) string { return v.Slug },
		setID: func(v *models.News, id string) { v.ID = id },
	}
}

func newMenuStore(items ...models.Menu) *memStore[models.Menu] {
	return &memStore[models.Menu]{
		items: items,
		id:    func(v *models.Menu) string { return v.ID },
		slug:  func(v *models.Menu) string { return "" },
		setID: func(v *models.Menu, id string) { v.ID = id },
	}
}

// stubAuthorizer admits sessions by token.
type stubAuthorizer struct {
	tokens map[string]*models.JWTClaims
	calls  int
}

func (s *stubAuthorizer) Authorize(ctx context.Context, session models.Session) (*models.JWTClaims, error) {
	s.calls++
	claims, ok := s.tokens[session.Token]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	if !claims.IsAdmin {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "administrator access required")
	}
	return claims, nil
}

func newStubAuthorizer() *stubAuthorizer {
	return &stubAuthorizer{tokens: map[string]*models.JWTClaims{
		"admin-token":  {UserID: "admin-1", Username: "admin", IsAdmin: true},
		"editor-token": {UserID: "user-2", Username: "editor"},
	}}
}

var (
	adminSession  = models.Session{Token: "admin-token", IP: "127.0.0.1", UserAgent: "test"}
	editorSession = models.Session{Token: "editor-token"}
)

// fakeCache is an in-memory CacheRepository.
type fakeCache struct {
	mu       sync.Mutex
	entries  map[string][]byte
	counters map[string]int64
	deleted  []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}, counters: map[string]int64{}}
}

func (f *fakeCache) Counter(ctx context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counters[key], nil
}

func (f *fakeCache) Incr(ctx context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters[key]++
	return f.counters[key], nil
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = raw
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.entries, k)
		f.deleted = append(f.deleted, k)
	}
	return nil
}

func (f *fakeCache) DeleteByPattern(ctx context.Context, pattern string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range f.entries {
		if strings.HasPrefix(k, prefix) {
			delete(f.entries, k)
		}
	}
	f.deleted = append(f.deleted, pattern)
	return nil
}

func (f *fakeCache) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[key]
	return ok
}

// fakeAudit collects recorded entries synchronously.
type fakeAudit struct {
	entries []models.AuditLog
}

func (f *fakeAudit) Record(ctx context.Context, entry models.AuditLog) {
	f.entries = append(f.entries, entry)
}
