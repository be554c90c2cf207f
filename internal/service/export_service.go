package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/edu-portal-api/internal/models"
	appErrors "github.com/noah-isme/edu-portal-api/pkg/errors"
	"github.com/noah-isme/edu-portal-api/pkg/export"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// ExportSources are the collections that can be exported.
type ExportSources struct {
	SearchSources
	Menu menuLister
}

// ExportResult is a rendered document ready for download.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
	Rows        int
}

// ExportService renders whole collections as CSV or PDF for administrators.
type ExportService struct {
	sources   ExportSources
	auth      authorizer
	audit     auditRecorder
	renderers map[string]export.Renderer
	logger    *zap.Logger
}

// NewExportService constructs an ExportService with the CSV and PDF renderers.
func NewExportService(sources ExportSources, auth authorizer, audit auditRecorder, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		sources: sources,
		auth:    auth,
		audit:   audit,
		renderers: map[string]export.Renderer{
			ExportFormatCSV: export.NewCSVExporter(),
			ExportFormatPDF: export.NewPDFExporter(),
		},
		logger: logger,
	}
}

// Export renders collection in format after checking the session.
func (s *ExportService) Export(ctx context.Context, session models.Session, collection, format string) (*ExportResult, error) {
	if session.Anonymous() || s.auth == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing bearer token")
	}
	claims, err := s.auth.Authorize(ctx, session)
	if err != nil {
		return nil, err
	}

	collection = strings.ToLower(strings.TrimSpace(collection))
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Validation(fmt.Sprintf("unsupported export format %q", format), "format")
	}

	dataset, err := s.dataset(ctx, collection)
	if err != nil {
		return nil, err
	}

	body, err := renderer.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	if s.audit != nil {
		s.audit.Record(ctx, auditEntry(claims, session, models.AuditActionExport, collection, "", map[string]interface{}{"format": format, "rows": len(dataset.Rows)}))
	}

	return &ExportResult{
		Filename:    fmt.Sprintf("%s_%s.%s", collection, time.Now().UTC().Format("20060102_150405"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
		Rows:        len(dataset.Rows),
	}, nil
}

func (s *ExportService) dataset(ctx context.Context, collection string) (export.Dataset, error) {
	title := collection
	if title != "" {
		title = strings.ToUpper(title[:1]) + title[1:]
	}
	switch collection {
	case CollectionScholarships:
		items, err := s.sources.Scholarships.ListAll(ctx)
		if err != nil {
			return export.Dataset{}, s.fail(collection, err)
		}
		data := export.Dataset{Title: title, Headers: []string{"id", "slug", "title", "country", "amount", "deadline", "tags"}}
		for _, v := range items {
			data.Append(v.ID, v.Slug, v.Title, v.Country, v.Amount, v.Deadline, strings.Join(v.Tags, "; "))
		}
		return data, nil
	case CollectionArticles:
		items, err := s.sources.Articles.ListAll(ctx)
		if err != nil {
			return export.Dataset{}, s.fail(collection, err)
		}
		data := export.Dataset{Title: title, Headers: []string{"id", "slug", "title", "author", "category", "publishDate", "summary"}}
		for _, v := range items {
			data.Append(v.ID, v.Slug, v.Title, v.Author, v.Category, formatDate(v.PublishDate), v.Summary)
		}
		return data, nil
	case CollectionCountries:
		items, err := s.sources.Countries.ListAll(ctx)
		if err != nil {
			return export.Dataset{}, s.fail(collection, err)
		}
		data := export.Dataset{Title: title, Headers: []string{"id", "slug", "name", "universities", "acceptanceRate"}}
		for _, v := range items {
			data.Append(v.ID, v.Slug, v.Name, strconv.Itoa(v.Universities), strconv.FormatFloat(v.AcceptanceRate, 'f', -1, 64))
		}
		return data, nil
	case CollectionUniversities:
		items, err := s.sources.Universities.ListAll(ctx)
		if err != nil {
			return export.Dataset{}, s.fail(collection, err)
		}
		data := export.Dataset{Title: title, Headers: []string{"id", "slug", "name", "country", "ranking", "features"}}
		for _, v := range items {
			ranking := ""
			if v.Ranking != nil {
				ranking = strconv.Itoa(*v.Ranking)
			}
			data.Append(v.ID, v.Slug, v.Name, v.Country, ranking, strings.Join(v.Features, "; "))
		}
		return data, nil
	case CollectionNews:
		items, err := s.sources.News.ListAll(ctx)
		if err != nil {
			return export.Dataset{}, s.fail(collection, err)
		}
		data := export.Dataset{Title: title, Headers: []string{"id", "slug", "title", "category", "isFeatured", "publishDate"}}
		for _, v := range items {
			data.Append(v.ID, v.Slug, v.Title, v.Category, strconv.FormatBool(v.IsFeatured), formatDate(v.PublishDate))
		}
		return data, nil
	case CollectionMenu:
		items, err := s.sources.Menu.ListAll(ctx)
		if err != nil {
			return export.Dataset{}, s.fail(collection, err)
		}
		data := export.Dataset{Title: title, Headers: []string{"id", "title", "url", "position", "children"}}
		for _, v := range items {
			data.Append(v.ID, v.Title, v.URL, strconv.Itoa(v.Position), strconv.Itoa(len(v.Children)))
		}
		return data, nil
	}
	return export.Dataset{}, appErrors.Validation(fmt.Sprintf("unknown collection %q", collection), "collection")
}

func (s *ExportService) fail(collection string, err error) error {
	s.logger.Error("export store failure", zap.String("collection", collection), zap.Error(err))
	return appErrors.Unavailable(err, "failed to export "+collection)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
