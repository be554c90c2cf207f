package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/gosimple/slug"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/edu-portal-api/internal/models"
	"github.com/noah-isme/edu-portal-api/internal/repository"
)

// identifiable constrains T so that *T can receive a decoded document id.
type identifiable[T any] interface {
	*T
	models.Identifiable
}

type creator[T any] interface {
	Create(ctx context.Context, item *T) error
}

// importer loads one collection from a JSON array; dryRun skips writes.
type importer func(ctx context.Context, db *sqlx.DB, raw []byte, dryRun bool) (int, error)

var importers = map[string]importer{
	"scholarships": func(ctx context.Context, db *sqlx.DB, raw []byte, dryRun bool) (int, error) {
		return importAll(ctx, raw, dryRun, repository.NewScholarshipRepository(db), func(v *models.Scholarship) {
			v.Slug = ensureSlug(v.Slug, v.Title)
			if v.Tags == nil {
				v.Tags = []string{}
			}
		})
	},
	"articles": func(ctx context.Context, db *sqlx.DB, raw []byte, dryRun bool) (int, error) {
		return importAll(ctx, raw, dryRun, repository.NewArticleRepository(db), func(v *models.Article) {
			v.Slug = ensureSlug(v.Slug, v.Title)
		})
	},
	"countries": func(ctx context.Context, db *sqlx.DB, raw []byte, dryRun bool) (int, error) {
		return importAll(ctx, raw, dryRun, repository.NewCountryRepository(db), func(v *models.Country) {
			v.Slug = ensureSlug(v.Slug, v.Name)
		})
	},
	"universities": func(ctx context.Context, db *sqlx.DB, raw []byte, dryRun bool) (int, error) {
		return importAll(ctx, raw, dryRun, repository.NewUniversityRepository(db), func(v *models.University) {
			v.Slug = ensureSlug(v.Slug, v.Name)
			if v.Features == nil {
				v.Features = []string{}
			}
		})
	},
	"news": func(ctx context.Context, db *sqlx.DB, raw []byte, dryRun bool) (int, error) {
		return importAll(ctx, raw, dryRun, repository.NewNewsRepository(db), func(v *models.News) {
			v.Slug = ensureSlug(v.Slug, v.Title)
		})
	},
	"menu": func(ctx context.Context, db *sqlx.DB, raw []byte, dryRun bool) (int, error) {
		return importAll(ctx, raw, dryRun, repository.NewMenuRepository(db), func(v *models.Menu) {
			if v.Children == nil {
				v.Children = models.MenuItems{}
			}
		})
	},
}

func newImportCommand() *cobra.Command {
	var collection, file string
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load a JSON export into a collection",
		Long: `Load a JSON array of documents into a collection.

Documents may carry their identifier as "id" or as a legacy "_id" (plain or {"$oid": ...});
either becomes the record id. Missing slugs are derived from the title or name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			load, ok := importers[strings.ToLower(collection)]
			if !ok {
				return fmt.Errorf("unknown collection %q", collection)
			}
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("reading %s: %w", file, err)
			}

			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			n, err := load(cmd.Context(), e.db, raw, dryRun)
			if err != nil {
				return err
			}
			e.logger.Info("collection imported", zap.String("collection", collection), zap.Int("records", n), zap.Bool("dry_run", dryRun))
			verb := "Imported"
			if dryRun {
				verb = "Validated"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d %s record(s).\n", verb, n, collection)
			return nil
		},
	}
	cmd.Flags().StringVar(&collection, "collection", "", "target collection (scholarships, articles, countries, universities, news, menu)")
	cmd.Flags().StringVar(&file, "file", "", "JSON file containing an array of documents")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "decode and count documents without writing")
	_ = cmd.MarkFlagRequired("collection")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// decodeDocuments splits a JSON array and decodes each element into T.
func decodeDocuments[T any, PT identifiable[T]](raw []byte) ([]T, error) {
	var docs []json.RawMessage
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("expected a JSON array of documents: %w", err)
	}
	items := make([]T, len(docs))
	for i, doc := range docs {
		if err := models.DecodeDocument(doc, PT(&items[i])); err != nil {
			return nil, fmt.Errorf("document %d: %w", i+1, err)
		}
	}
	return items, nil
}

func importAll[T any, PT identifiable[T]](ctx context.Context, raw []byte, dryRun bool, store creator[T], prepare func(*T)) (int, error) {
	items, err := decodeDocuments[T, PT](raw)
	if err != nil {
		return 0, err
	}
	for i := range items {
		prepare(&items[i])
	}
	if dryRun {
		return len(items), nil
	}
	for i := range items {
		if err := store.Create(ctx, &items[i]); err != nil {
			return i, fmt.Errorf("document %d: %w", i+1, err)
		}
	}
	return len(items), nil
}

// ensureSlug normalizes current, or derives a slug from fallback when it is blank.
func ensureSlug(current, fallback string) string {
	if s := strings.TrimSpace(current); s != "" {
		return slug.Make(s)
	}
	return slug.Make(fallback)
}
