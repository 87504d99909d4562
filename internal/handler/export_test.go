package handler_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tribute-wall/internal/domain"
	"github.com/pkordes/tribute-wall/internal/handler"
)

// ---- mock ExportServicer ---------------------------------------------------

type mockExportServicer struct {
	export func(ctx context.Context) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context) ([]domain.ExportRow, error) {
	return m.export(ctx)
}

// compile-time check: mockExportServicer must satisfy handler.ExportServicer.
var _ handler.ExportServicer = (*mockExportServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newExportHTTPHandler wires a Server with only the export service mock.
func newExportHTTPHandler(exportSvc handler.ExportServicer) http.Handler {
	return handler.NewServer(nil, nil, exportSvc, domain.Subject{}, handler.Options{}).Handler()
}

func exportRowsFixture() []domain.ExportRow {
	return []domain.ExportRow{
		{
			ID: "t-1", Name: "Thabo", Relationship: "Husband", Message: "Miss you, always",
			Timestamp: 1_700_000_000_000, PostedAt: "2023-11-14T22:13:20Z",
			AttachmentType: "picture", AttachmentValue: "/assets/images/rose.png",
		},
		{
			ID: "seed-family", Name: "The Family", Relationship: "Family", Message: "Forever loved",
			Timestamp: 1000, PostedAt: "1970-01-01T00:00:01Z", Seed: true,
		},
	}
}

func staticExport(rows []domain.ExportRow) *mockExportServicer {
	return &mockExportServicer{
		export: func(context.Context) ([]domain.ExportRow, error) { return rows, nil },
	}
}

// ---- GET /tributes/export: JSON --------------------------------------------

func TestGetExport_DefaultJSON_EmptyResult(t *testing.T) {
	rec := httptest.NewRecorder()
	newExportHTTPHandler(staticExport([]domain.ExportRow{})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tributes/export", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var rows []handler.ExportRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestGetExport_FormatJSON_ExplicitParam(t *testing.T) {
	rec := httptest.NewRecorder()
	newExportHTTPHandler(staticExport(exportRowsFixture())).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tributes/export?format=json", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var rows []handler.ExportRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "t-1", rows[0].ID)
	assert.Equal(t, "picture", rows[0].AttachmentType)
	assert.True(t, rows[1].Seed)
	assert.Empty(t, rows[1].AttachmentType)
}

// ---- GET /tributes/export: CSV ---------------------------------------------

func TestGetExport_CSV_EmptyResult_HasHeaderRow(t *testing.T) {
	rec := httptest.NewRecorder()
	newExportHTTPHandler(staticExport([]domain.ExportRow{})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tributes/export?format=csv", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Equal(t, "id,name,relationship,message,timestamp,posted_at,attachment_type,attachment_value,seed\n", rec.Body.String())
}

func TestGetExport_CSV_Rows(t *testing.T) {
	rec := httptest.NewRecorder()
	newExportHTTPHandler(staticExport(exportRowsFixture())).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tributes/export?format=csv", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "tributes.csv")

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{
		"t-1", "Thabo", "Husband", "Miss you, always", "1700000000000",
		"2023-11-14T22:13:20Z", "picture", "/assets/images/rose.png", "false",
	}, records[1])
	assert.Equal(t, "true", records[2][8])
}

func TestGetExport_CSV_FormulaCellsQuoted(t *testing.T) {
	rows := []domain.ExportRow{{
		ID: "t-2", Name: "=HYPERLINK(\"http://evil.example\")", Relationship: "+Cousin",
		Message: "-1 day without you", Timestamp: 1_700_000_000_000, PostedAt: "2023-11-14T22:13:20Z",
		AttachmentType: "icon", AttachmentValue: "@rose",
	}, {
		ID: "t-3", Name: "\tSipho", Relationship: "Friend", Message: "Rest well, 2+2 memories",
		Timestamp: 1_700_000_000_001, PostedAt: "2023-11-14T22:13:20Z",
	}}

	rec := httptest.NewRecorder()
	newExportHTTPHandler(staticExport(rows)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tributes/export?format=csv", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{
		"t-2", "'=HYPERLINK(\"http://evil.example\")", "'+Cousin", "'-1 day without you", "1700000000000",
		"2023-11-14T22:13:20Z", "icon", "'@rose", "false",
	}, records[1])
	assert.Equal(t, "'\tSipho", records[2][1])
	assert.Equal(t, "Rest well, 2+2 memories", records[2][3], "only a leading trigger is quoted")

	// JSON keeps the text as posted.
	rec = httptest.NewRecorder()
	newExportHTTPHandler(staticExport(rows)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tributes/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got []handler.ExportRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, "+Cousin", got[0].Relationship)
}

func TestGetExport_422_UnknownFormat(t *testing.T) {
	rec := httptest.NewRecorder()
	newExportHTTPHandler(staticExport(nil)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tributes/export?format=xml", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetExport_500_ServiceError(t *testing.T) {
	svc := &mockExportServicer{
		export: func(context.Context) ([]domain.ExportRow, error) { return nil, errors.New("boom") },
	}

	rec := httptest.NewRecorder()
	newExportHTTPHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tributes/export", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
