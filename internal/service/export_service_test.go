package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-portal-api/internal/models"
	appErrors "github.com/noah-isme/edu-portal-api/pkg/errors"
)

func newTestExportService(audit auditRecorder) *ExportService {
	sources, _ := searchFixture()
	return NewExportService(ExportSources{
		SearchSources: sources,
		Menu:          newMenuStore(models.Menu{ID: "m1", Title: "Home", URL: "/"}),
	}, newStubAuthorizer(), audit, nil)
}

func TestExportCSV(t *testing.T) {
	audit := &fakeAudit{}
	svc := newTestExportService(audit)

	res, err := svc.Export(context.Background(), adminSession, "Scholarships", "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", res.ContentType)
	assert.Equal(t, 2, res.Rows)
	assert.True(t, strings.HasPrefix(res.Filename, "scholarships_"))
	assert.True(t, strings.HasSuffix(res.Filename, ".csv"))
	assert.Contains(t, string(res.Body), "Fulbright")
	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionExport, audit.entries[0].Action)
}

func TestExportPDF(t *testing.T) {
	svc := newTestExportService(nil)

	res, err := svc.Export(context.Background(), adminSession, "menu", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", res.ContentType)
	assert.True(t, strings.HasPrefix(string(res.Body), "%PDF"))
}

func TestExportRejectsUnknownInput(t *testing.T) {
	svc := newTestExportService(nil)

	_, err := svc.Export(context.Background(), adminSession, "news", "xlsx")
	require.Error(t, err)
	assert.Equal(t, []string{"format"}, appErrors.FromError(err).Fields)

	_, err = svc.Export(context.Background(), adminSession, "users", "csv")
	require.Error(t, err)
	assert.Equal(t, []string{"collection"}, appErrors.FromError(err).Fields)
}

func TestExportRequiresAdmin(t *testing.T) {
	svc := newTestExportService(nil)

	_, err := svc.Export(context.Background(), models.Session{}, "news", "csv")
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	_, err = svc.Export(context.Background(), editorSession, "news", "csv")
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}
