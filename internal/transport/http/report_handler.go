package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "liqreport/internal/errors"
	reqmw "liqreport/internal/middleware"
	"liqreport/internal/ingest"
	"liqreport/internal/services"
	"liqreport/pkg/contracts/domain"
)

// maxUploadSize bounds XLSX uploads. Venue exports are small; anything
// larger is a client mistake.
const maxUploadSize = 10 * 1024 * 1024

// ReportHandler handles report ingestion and generation requests.
type ReportHandler struct {
	service  ReportServiceInterface
	printer  Printer
	validate *validator.Validate
	logger   *slog.Logger
}

// NewReportHandler creates a report handler. printer may be nil to disable
// PDF output.
func NewReportHandler(service ReportServiceInterface, printer Printer, logger *slog.Logger) *ReportHandler {
	v := validator.New()

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &ReportHandler{
		service:  service,
		printer:  printer,
		validate: v,
		logger:   logger.With(slog.String("component", "report_handler")),
	}
}

// Routes returns the report routes.
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/csv", h.IngestCSV)
	r.Post("/xlsx", h.IngestXLSX)
	r.Post("/sheet", h.IngestSheet)
	r.Post("/generate", h.Generate)

	return r
}

type ingestCSVRequest struct {
	CSV        string `json:"csv" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Commentary string `json:"commentary"`
}

// IngestCSV handles POST /api/reports/csv. It parses pasted CSV text into a
// report skeleton and returns it for the client to review and edit.
func (h *ReportHandler) IngestCSV(w http.ResponseWriter, r *http.Request) {
	var req ingestCSVRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	h.logger.InfoContext(r.Context(), "ingesting csv",
		slog.String("request_id", reqmw.GetRequestID(r.Context())),
		slog.Int("bytes", len(req.CSV)),
	)

	data, err := h.service.FromCSV(r.Context(), req.CSV, req.Date, req.Commentary)
	if err != nil {
		h.renderIngestError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, reportResponse(data))
}

// IngestXLSX handles POST /api/reports/xlsx. The workbook arrives as a
// multipart upload in the "file" field; "date" and "commentary" are form
// fields.
func (h *ReportHandler) IngestXLSX(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.InvalidRequestWithError(err)))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.New(
			http.StatusBadRequest, "MISSING_FILE", `multipart field "file" is required`)))
		return
	}
	defer file.Close()

	date := r.FormValue("date")
	if err := h.validate.Var(date, "required,datetime=2006-01-02"); err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.New(
			http.StatusBadRequest, "INVALID_REQUEST", "date must be a YYYY-MM-DD date")))
		return
	}

	h.logger.InfoContext(r.Context(), "ingesting workbook",
		slog.String("request_id", reqmw.GetRequestID(r.Context())),
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size),
	)

	data, err := h.service.FromXLSX(r.Context(), io.LimitReader(file, maxUploadSize), date, r.FormValue("commentary"))
	if err != nil {
		h.renderIngestError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, reportResponse(data))
}

type ingestSheetRequest struct {
	URL  string `json:"url" validate:"required,url"`
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// IngestSheet handles POST /api/reports/sheet. It fetches the three report
// tabs from a Google Sheet and returns the imported report, including any
// balance staleness warning.
func (h *ReportHandler) IngestSheet(w http.ResponseWriter, r *http.Request) {
	var req ingestSheetRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	h.logger.InfoContext(r.Context(), "importing sheet",
		slog.String("request_id", reqmw.GetRequestID(r.Context())),
	)

	data, err := h.service.FromSheet(r.Context(), req.URL, req.Date)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSheetImportUnavailable):
			render.Render(w, r, apierrors.NewErrorResponse(apierrors.New(
				http.StatusServiceUnavailable, "SHEET_IMPORT_DISABLED", "Sheet import is not configured on this server")))
		case errors.Is(err, ingest.ErrInvalidSheetURL):
			render.Render(w, r, apierrors.NewErrorResponse(apierrors.InvalidRequestWithError(err)))
		case errors.Is(err, ingest.ErrMissingHeader), errors.Is(err, ingest.ErrNoExchangeData):
			render.Render(w, r, apierrors.NewErrorResponse(apierrors.IngestionError(err)))
		default:
			h.logger.ErrorContext(r.Context(), "sheet import failed",
				slog.String("request_id", reqmw.GetRequestID(r.Context())),
				slog.String("error", err.Error()),
			)
			render.Render(w, r, apierrors.NewErrorResponse(apierrors.UpstreamError("Google Sheets", err)))
		}
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, reportResponse(data))
}

// Generate handles POST /api/reports/generate. The body is the full report
// data, typically a reviewed and edited ingestion response. On success the
// rendered document comes back directly; ?format=pdf asks for a printed PDF
// when the server has a printer configured. Validation findings return 400
// with the full list.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var data domain.ReportData
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.InvalidRequestWithError(err)))
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "html"
	}
	if format != "html" && format != "pdf" {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.New(
			http.StatusBadRequest, "INVALID_REQUEST", "format must be html or pdf")))
		return
	}
	if format == "pdf" && h.printer == nil {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.New(
			http.StatusServiceUnavailable, "PDF_DISABLED", "PDF output is not configured on this server")))
		return
	}

	html, verrs, err := h.service.Generate(r.Context(), &data)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "report generation failed",
			slog.String("request_id", reqmw.GetRequestID(r.Context())),
			slog.String("error", err.Error()),
		)
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrInternalServer))
		return
	}
	if len(verrs) > 0 {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ReportValidationError(verrs)))
		return
	}

	if format == "pdf" {
		pdf, err := h.printer.Print(r.Context(), html)
		if err != nil {
			h.logger.ErrorContext(r.Context(), "pdf print failed",
				slog.String("request_id", reqmw.GetRequestID(r.Context())),
				slog.String("error", err.Error()),
			)
			render.Render(w, r, apierrors.NewErrorResponse(apierrors.New(
				http.StatusInternalServerError, "PDF_RENDER_FAILED", "Could not print report to PDF")))
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="liquidity-report.pdf"`)
		w.WriteHeader(http.StatusOK)
		w.Write(pdf)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(html)
}

// decodeAndValidate decodes the JSON body into req and checks its validation
// tags. It writes the error response itself and reports whether the handler
// should continue.
func (h *ReportHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := render.DecodeJSON(r.Body, req); err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.InvalidRequestWithError(err)))
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		var details []map[string]string
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				details = append(details, map[string]string{
					"field": fe.Field(),
					"rule":  fe.Tag(),
				})
			}
		}
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.NewWithDetails(
			http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", details)))
		return false
	}
	return true
}

func (h *ReportHandler) renderIngestError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ingest.ErrMissingHeader) || errors.Is(err, ingest.ErrNoExchangeData) {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.IngestionError(err)))
		return
	}
	h.logger.ErrorContext(r.Context(), "ingestion failed",
		slog.String("request_id", reqmw.GetRequestID(r.Context())),
		slog.String("error", err.Error()),
	)
	render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrInternalServer))
}

func reportResponse(data *domain.ReportData) map[string]interface{} {
	return map[string]interface{}{
		"status": "success",
		"data":   data,
	}
}
