package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "sheetlens/internal/errors"
	"sheetlens/internal/exporter"
	"sheetlens/internal/files"
	"sheetlens/internal/services"
	"sheetlens/internal/tabular"
	api "sheetlens/pkg/contracts/api/v1"
	"sheetlens/pkg/contracts/domain"
)

const (
	// uploadFormField is the multipart field carrying the workbook
	uploadFormField = "file"

	// multipartOverhead is the slack allowed on top of the file size limit
	// for multipart boundaries and part headers
	multipartOverhead = 1 << 20

	// multipartMemory is kept in memory while parsing; larger parts spill
	// to temporary files
	multipartMemory = 8 << 20
)

// FilesHandler serves uploads and workbook analysis under /api/files
type FilesHandler struct {
	files        FileServiceInterface
	analysis     AnalysisServiceInterface
	validator    RequestValidator
	maxUpload    int64
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewFilesHandler creates a files handler. maxUploadBytes bounds the
// accepted workbook size.
func NewFilesHandler(fileService FileServiceInterface, analysis AnalysisServiceInterface, validator RequestValidator,
	maxUploadBytes int64, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *FilesHandler {
	return &FilesHandler{
		files:        fileService,
		analysis:     analysis,
		validator:    validator,
		maxUpload:    maxUploadBytes,
		logger:       logger.With(slog.String("component", "files_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the /api/files routes
func (h *FilesHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/upload", h.Upload)

	r.Route("/{fileId}", func(r chi.Router) {
		r.Use(h.FileCtx)
		r.Delete("/", h.Delete)
		r.Get("/sheets", h.Sheets)
		r.Get("/preview", h.Preview)
		r.Get("/profile", h.Profile)
		r.Get("/aggregate", h.Aggregate)
		r.Post("/charts", h.Charts)
	})

	return r
}

// FileCtx rejects malformed file ids before they reach the services
func (h *FilesHandler) FileCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fileID := chi.URLParam(r, "fileId")
		if !files.ValidID(fileID) {
			h.errorHandler.HandleError(w, r, apierrors.NewNotFoundError(fmt.Sprintf("file '%s' not found", fileID), nil).
				WithContext("resource", "file"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Upload handles POST /api/files/upload
func (h *FilesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		h.handleFormError(w, r, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		h.handleFormError(w, r, err)
		return
	}
	defer file.Close()

	h.logger.InfoContext(r.Context(), "receiving upload",
		slog.String("request_id", reqID),
		slog.String("file", header.Filename),
		slog.Int64("size", header.Size),
	)

	upload, err := h.files.Upload(r.Context(), header.Filename, header.Size, file)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, upload)
}

func (h *FilesHandler) handleFormError(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		h.errorHandler.HandleError(w, r, err)
	case errors.Is(err, http.ErrMissingFile):
		h.errorHandler.HandleError(w, r, apierrors.ErrFileRequired)
	default:
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
	}
}

// Delete handles DELETE /api/files/{fileId}
func (h *FilesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.files.Delete(r.Context(), chi.URLParam(r, "fileId")); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Sheets handles GET /api/files/{fileId}/sheets
func (h *FilesHandler) Sheets(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileId")
	sheets, err := h.analysis.Sheets(r.Context(), fileID)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"fileId": fileID,
		"sheets": sheets,
	})
}

// Preview handles GET /api/files/{fileId}/preview
func (h *FilesHandler) Preview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var req api.PreviewRequest
	var err error
	if req.MaxRows, err = queryInt(q, "maxRows"); err == nil {
		req.Sheet = strings.TrimSpace(q.Get("sheet"))
		err = h.validator.Validate(req)
	}
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	preview, err := h.analysis.Preview(r.Context(), chi.URLParam(r, "fileId"), services.PreviewQuery{
		Sheet:   req.Sheet,
		MaxRows: req.MaxRows,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, preview)
}

// Profile handles GET /api/files/{fileId}/profile
func (h *FilesHandler) Profile(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var req api.ProfileRequest
	err := decodeQueryInts(q, map[string]*int{
		"scanRows":   &req.ScanRows,
		"sampleRows": &req.SampleRows,
	})
	if err == nil {
		req.Sheet = strings.TrimSpace(q.Get("sheet"))
		err = h.validator.Validate(req)
	}
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	profile, err := h.analysis.Profile(r.Context(), chi.URLParam(r, "fileId"), services.ProfileQuery{
		Sheet:      req.Sheet,
		ScanRows:   req.ScanRows,
		SampleRows: req.SampleRows,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, profile)
}

// Aggregate handles GET /api/files/{fileId}/aggregate
func (h *FilesHandler) Aggregate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := api.AggregateRequest{
		GroupBy: strings.TrimSpace(q.Get("groupBy")),
		Value:   strings.TrimSpace(q.Get("value")),
		Agg:     q.Get("agg"),
		Sheet:   strings.TrimSpace(q.Get("sheet")),
		Format:  strings.ToLower(strings.TrimSpace(q.Get("format"))),
	}
	err := decodeQueryInts(q, map[string]*int{
		"top":     &req.Top,
		"maxRows": &req.MaxRows,
	})
	if err == nil {
		err = h.validator.Validate(req)
	}
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.analysis.Aggregate(r.Context(), chi.URLParam(r, "fileId"), services.AggregateQuery{
		Sheet:   req.Sheet,
		GroupBy: req.GroupBy,
		Value:   req.Value,
		Agg:     req.Agg,
		Top:     req.Top,
		MaxRows: req.MaxRows,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if req.Format == "csv" {
		h.writeCSV(w, r, result)
		return
	}
	render.JSON(w, r, result)
}

// writeCSV sends an aggregate result as a CSV attachment
func (h *FilesHandler) writeCSV(w http.ResponseWriter, r *http.Request, result *domain.AggregateResult) {
	headers, records := exporter.AggregateRecords(result)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-by-%s.csv"`,
		tabular.NormalizeName(result.Value), tabular.NormalizeName(result.GroupBy)))
	if err := exporter.WriteCSV(w, headers, records, exporter.WriteOptions{}); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write csv response",
			slog.String("error", err.Error()))
	}
}

// Charts handles POST /api/files/{fileId}/charts
func (h *FilesHandler) Charts(w http.ResponseWriter, r *http.Request) {
	var req api.ChartBatchRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if !errors.As(err, &maxBytesErr) {
			err = apierrors.InvalidRequestWithError(err)
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if err := h.validator.Validate(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	charts, err := h.analysis.Charts(r.Context(), chi.URLParam(r, "fileId"), strings.TrimSpace(req.Sheet), req.Charts)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, charts)
}

// queryInt parses an optional integer query parameter; absent means 0
func queryInt(q url.Values, name string) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierrors.ErrValidation(name, fmt.Sprintf("%s must be an integer", name))
	}
	return v, nil
}

func decodeQueryInts(q url.Values, targets map[string]*int) error {
	for name, dst := range targets {
		v, err := queryInt(q, name)
		if err != nil {
			return err
		}
		*dst = v
	}
	return nil
}
