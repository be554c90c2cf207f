package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/edu-portal-api/internal/models"
)

type fakeUserStore struct {
	existing map[string]bool
	created  []*models.User
}

func (f *fakeUserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return f.existing[username], nil
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	user.ID = "user-1"
	f.created = append(f.created, user)
	return nil
}

func TestCreateAdmin(t *testing.T) {
	store := &fakeUserStore{existing: map[string]bool{"root": true}}

	user, err := createAdmin(context.Background(), store, " admin ", "longenough")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	assert.True(t, user.IsAdmin)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("longenough")))

	_, err = createAdmin(context.Background(), store, "root", "longenough")
	assert.Error(t, err)

	_, err = createAdmin(context.Background(), store, "other", "short")
	assert.Error(t, err)
	assert.Len(t, store.created, 1)
}

func TestLoadMenu(t *testing.T) {
	doc := `
menu:
  - title: Home
    url: /
  - title: Study
    url: /study
    position: 5
    children:
      - title: Countries
        url: /countries
      - id: fixed
        title: Scholarships
        url: /scholarships
`
	items, err := loadMenu(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 0, items[0].Position)
	assert.NotNil(t, items[0].Children)
	assert.Equal(t, 5, items[1].Position)
	require.Len(t, items[1].Children, 2)
	assert.NotEmpty(t, items[1].Children[0].ID)
	assert.Equal(t, "fixed", items[1].Children[1].ID)
}

func TestLoadMenuRejectsInvalidEntries(t *testing.T) {
	_, err := loadMenu(strings.NewReader("menu:\n  - title: Home\n"))
	assert.Error(t, err)

	_, err = loadMenu(strings.NewReader("menu:\n  - title: Home\n    url: /\n    colour: red\n"))
	assert.Error(t, err)
}

type fakeMenuStore struct {
	items []models.Menu
	err   error
}

func (f *fakeMenuStore) Replace(ctx context.Context, items []models.Menu) error {
	if f.err != nil {
		return f.err
	}
	f.items = items
	return nil
}

func TestSeedMenu(t *testing.T) {
	store := &fakeMenuStore{}
	require.NoError(t, seedMenu(context.Background(), store, []models.Menu{{Title: "Home", URL: "/"}}))
	assert.Len(t, store.items, 1)

	store.err = errors.New("tx aborted")
	assert.Error(t, seedMenu(context.Background(), store, nil))
}

func TestDecodeDocumentsNormalizesIDs(t *testing.T) {
	raw := []byte(`[
		{"_id": {"$oid": "65f0c0ffee"}, "title": "Fulbright", "country": "USA", "tags": ["masters"]},
		{"id": "abc", "_id": "ignored", "title": "Erasmus"}
	]`)
	items, err := decodeDocuments[models.Scholarship](raw)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "65f0c0ffee", items[0].ID)
	assert.Equal(t, []string{"masters"}, []string(items[0].Tags))
	assert.Equal(t, "abc", items[1].ID)

	_, err = decodeDocuments[models.Scholarship]([]byte(`{"title":"not an array"}`))
	assert.Error(t, err)
}

type fakeCreator[T any] struct{ created []T }

func (f *fakeCreator[T]) Create(ctx context.Context, item *T) error {
	f.created = append(f.created, *item)
	return nil
}

func TestImportAllDerivesSlugs(t *testing.T) {
	store := &fakeCreator[models.Country]{}
	raw := []byte(`[{"_id":"c1","name":"South Korea"},{"id":"c2","name":"Japan","slug":" Nihon Koku "}]`)

	n, err := importAll[models.Country](context.Background(), raw, false, store, func(v *models.Country) {
		v.Slug = ensureSlug(v.Slug, v.Name)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, store.created, 2)
	assert.Equal(t, "south-korea", store.created[0].Slug)
	assert.Equal(t, "c1", store.created[0].ID)
	assert.Equal(t, "nihon-koku", store.created[1].Slug)

	dry := &fakeCreator[models.Country]{}
	n, err = importAll[models.Country](context.Background(), raw, true, dry, func(*models.Country) {})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, dry.created)
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCommand()
	for _, path := range [][]string{{"migrate", "up"}, {"migrate", "status"}, {"create-admin"}, {"seed-menu"}, {"import"}} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, strings.Join(path, " "))
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "portalctl dev")
}

func TestImportersCoverEveryCollection(t *testing.T) {
	for _, name := range []string{"scholarships", "articles", "countries", "universities", "news", "menu"} {
		assert.Contains(t, importers, name)
	}
}

func TestRunMigrationRejectsUnknownDirection(t *testing.T) {
	err := runMigration(context.Background(), nil, "sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sideways")
}
