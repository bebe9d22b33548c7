package emails

import (
	"net/http"
	"time"

	"github.com/clippy-app/core/internal/modules/export"
	"github.com/clippy-app/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// ExportBaseName is the default base for download filenames.
const ExportBaseName = "clippy_emails"

const (
	csvContentType  = "text/csv"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Handler serves the management screen's data: the full list with its
// independent total, and filtered exports.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/emails")
	g.GET("", h.list)
	g.GET("/export", h.export)
}

func (h *Handler) list(c *gin.Context) {
	overview, err := h.svc.Load(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{
		"data":  overview.Records,
		"total": overview.Total,
	})
}

// export downloads the currently filtered subset. Filtering happens here,
// over the freshly loaded list, mirroring the admin table's client-side
// filter; an empty match still yields a header-only file.
func (h *Handler) export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		response.BadRequest(c, "format must be csv or xlsx")
		return
	}

	overview, err := h.svc.Load(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	records := Filter(overview.Records, c.Query("q"))

	var (
		payload     []byte
		contentType string
	)
	switch format {
	case "csv":
		payload, err = export.CSV(records)
		contentType = csvContentType
	case "xlsx":
		payload, err = export.Spreadsheet(records)
		contentType = xlsxContentType
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	filename := export.Filename(ExportBaseName, format, time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, payload)
}
