package emails

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/clippy-app/core/internal/models"
	"github.com/clippy-app/core/internal/modules/export"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestRouter(st Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(st)).RegisterRoutes(r.Group("/api/v2"))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListEndpoint(t *testing.T) {
	now := time.Now().UTC()
	st := &fakeStore{
		records: []models.EmailRecord{
			record("newest@b.com", now, models.StatusActive),
			record("older@b.com", now.Add(-time.Hour), models.StatusActive),
		},
		total: 5, // independent count may disagree with the list length
	}

	w := get(newTestRouter(st), "/api/v2/emails")

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data  []models.EmailRecord `json:"data"`
		Total int64                `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "newest@b.com", resp.Data[0].Email)
	assert.Equal(t, int64(5), resp.Total)
}

func TestListEndpointStoreUnavailable(t *testing.T) {
	st := &fakeStore{listErr: ErrStoreUnavailable}

	w := get(newTestRouter(st), "/api/v2/emails")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestExportEndpointCSV(t *testing.T) {
	now := time.Now().UTC()
	st := &fakeStore{
		records: []models.EmailRecord{record("a@b.com", now, models.StatusActive)},
		total:   1,
	}

	w := get(newTestRouter(st), "/api/v2/emails/export?format=csv")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))

	wantName := export.Filename(ExportBaseName, "csv", time.Now())
	assert.Equal(t, fmt.Sprintf(`attachment; filename="%s"`, wantName), w.Header().Get("Content-Disposition"))

	lines := strings.Split(w.Body.String(), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"S.No","Email","Date","Time","Status","Timestamp"`, lines[0])
	assert.Contains(t, lines[1], `"a@b.com"`)
}

func TestExportEndpointCSVFilteredToEmpty(t *testing.T) {
	st := &fakeStore{
		records: []models.EmailRecord{record("a@b.com", time.Now(), models.StatusActive)},
		total:   1,
	}

	w := get(newTestRouter(st), "/api/v2/emails/export?format=csv&q=zzz")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `"S.No","Email","Date","Time","Status","Timestamp"`, w.Body.String(), "header-only file")
}

func TestExportEndpointCSVAppliesFilter(t *testing.T) {
	now := time.Now()
	st := &fakeStore{
		records: []models.EmailRecord{
			record("keep@match.com", now, models.StatusActive),
			record("drop@other.org", now, models.StatusActive),
		},
		total: 2,
	}

	w := get(newTestRouter(st), "/api/v2/emails/export?format=csv&q=match.com")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "keep@match.com")
	assert.NotContains(t, body, "drop@other.org")
	assert.Contains(t, body, `"1","keep@match.com"`, "sequence numbers follow the filtered order")
}

func TestExportEndpointXLSX(t *testing.T) {
	now := time.Now().UTC()
	st := &fakeStore{
		records: []models.EmailRecord{record("a@b.com", now, models.StatusActive)},
		total:   1,
	}

	w := get(newTestRouter(st), "/api/v2/emails/export?format=xlsx")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue(export.SheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got)
}

func TestExportEndpointUnknownFormat(t *testing.T) {
	w := get(newTestRouter(&fakeStore{}), "/api/v2/emails/export?format=pdf")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportEndpointStoreUnavailable(t *testing.T) {
	st := &fakeStore{countErr: ErrStoreUnavailable}

	w := get(newTestRouter(st), "/api/v2/emails/export?format=csv")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestExportEndpointDefaultsToCSV(t *testing.T) {
	st := &fakeStore{
		records: []models.EmailRecord{record("a@b.com", time.Now(), models.StatusActive)},
		total:   1,
	}

	w := get(newTestRouter(st), "/api/v2/emails/export")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
}
