// convert.go handles the PDF → Excel endpoint.
//
// POST /api/v1/convert/pdf-to-excel: multipart upload, responds with the XLSX
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Shimizu-Technology/pdfhustle-api/internal/middleware"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/models"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/services/converter"
	pdfservice "github.com/Shimizu-Technology/pdfhustle-api/internal/services/pdf"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/services/spreadsheet"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/services/worker"
)

// multipartOverhead is the slack allowed on top of the file size for
// multipart boundaries and the other form fields.
const multipartOverhead = 1 << 20

// ConvertPDFToExcel converts an uploaded PDF's tables into a workbook.
// POST /api/v1/convert/pdf-to-excel
//
// Form fields:
//   - file        the PDF (required)
//   - page_range  "all" (default) or e.g. "1-3, 5"
//
// The response body is the XLSX file. X-Page-Count and X-Table-Count
// report what was found.
func (h *Handler) ConvertPDFToExcel(c *gin.Context) {
	owner, plan, ok := middleware.Caller(c)
	if !ok {
		errorJSON(c, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}
	if h.Owner.Request(c) {
		plan = models.PlanPro
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+multipartOverhead)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			errorJSON(c, http.StatusRequestEntityTooLarge, "file_too_large", h.sizeMessage())
			return
		}
		errorJSON(c, http.StatusBadRequest, "invalid_request",
			"No PDF file provided. Upload a file with the field name 'file'. "+h.sizeMessage())
		return
	}
	defer file.Close()

	if header.Size > h.MaxUploadBytes {
		errorJSON(c, http.StatusRequestEntityTooLarge, "file_too_large", h.sizeMessage())
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" {
		errorJSON(c, http.StatusBadRequest, "invalid_file_type",
			fmt.Sprintf("Unsupported file format '%s'. Only .pdf files are accepted.", ext))
		return
	}

	// The PDF reader needs random access, so the whole file is read into memory.
	data, err := io.ReadAll(file)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "read_error", "Failed to read uploaded file")
		return
	}

	if !pdfservice.ValidatePDF(data) {
		errorJSON(c, http.StatusBadRequest, "invalid_pdf", "The uploaded file does not appear to be a valid PDF")
		return
	}

	ctx := c.Request.Context()
	quota, err := h.Meter.Check(ctx, owner, plan)
	if err != nil {
		log.Error().Err(err).Str("subject", owner.Subject()).Msg("❌ Usage check failed")
		errorJSON(c, http.StatusInternalServerError, "usage_error", "Could not verify your usage. Please try again.")
		return
	}
	if !quota.Allowed {
		errorJSON(c, http.StatusForbidden, "daily_limit_reached",
			fmt.Sprintf("Daily limit reached (%d/%d). Upgrade to Pro for unlimited conversions.", quota.Used, quota.Limit))
		return
	}

	opts := converter.Options{PageRange: c.PostForm("page_range")}
	jobID := uuid.New().String()

	var result *converter.Result
	err = h.Pool.Do(ctx, jobID, func(ctx context.Context) error {
		var convErr error
		result, convErr = h.Converter.Convert(ctx, data, opts)
		return convErr
	})

	record := &models.Conversion{
		Type:         models.ConversionTypePDFToExcel,
		OriginalName: header.Filename,
		FileSize:     int64(len(data)),
	}
	if owner.APIKeyID != "" {
		record.APIKeyID = &owner.APIKeyID
	}
	if owner.UserID != "" {
		record.UserID = &owner.UserID
	}

	switch {
	case errors.Is(err, worker.ErrQueueFull), errors.Is(err, worker.ErrStopped):
		log.Warn().Str("job_id", jobID).Msg("⚠️  Conversion pool saturated")
		errorJSON(c, http.StatusServiceUnavailable, "busy", "The server is busy converting other files. Please retry shortly.")
		return

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Info().Str("job_id", jobID).Str("file", header.Filename).Msg("🚫 Client went away before the conversion finished")
		c.AbortWithStatus(http.StatusRequestTimeout)
		return

	case err != nil:
		status, code := conversionStatus(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Str("job_id", jobID).Str("file", header.Filename).Msg("❌ Conversion failed")
		} else {
			log.Info().Err(err).Str("job_id", jobID).Str("file", header.Filename).Msg("📄 Conversion rejected")
		}

		record.Status = models.StatusFailed
		record.ErrorMessage = converter.Message(err)
		h.saveConversion(ctx, record)

		errorJSON(c, status, code, converter.Message(err))
		return
	}

	record.Status = models.StatusCompleted
	record.PageCount = result.PageCount
	record.TableCount = result.TableCount
	h.saveConversion(ctx, record)

	if err := h.Meter.Record(ctx, owner); err != nil {
		log.Warn().Err(err).Str("subject", owner.Subject()).Msg("⚠️  Failed to record usage")
	}

	log.Info().
		Str("job_id", jobID).
		Str("file", header.Filename).
		Int("pages", result.PageCount).
		Int("tables", result.TableCount).
		Msg("✅ Converted PDF to Excel")

	c.Header("Content-Disposition", contentDisposition(downloadName(header.Filename)))
	c.Header("X-Page-Count", strconv.Itoa(result.PageCount))
	c.Header("X-Table-Count", strconv.Itoa(result.TableCount))
	c.Data(http.StatusOK, spreadsheet.ContentType, result.Workbook)
}

// conversionStatus maps a Convert error kind to an HTTP status and error code.
func conversionStatus(err error) (int, string) {
	switch {
	case errors.Is(err, converter.ErrDocumentUnreadable):
		return http.StatusUnprocessableEntity, "document_unreadable"
	case errors.Is(err, converter.ErrNoTabularContent):
		return http.StatusUnprocessableEntity, "no_tabular_content"
	case errors.Is(err, converter.ErrInvalidPageRange):
		return http.StatusBadRequest, "invalid_page_range"
	default:
		return http.StatusInternalServerError, "conversion_failed"
	}
}

// saveConversion writes the history row. A failure here never fails the
// request: the caller already has (or is about to get) their answer.
func (h *Handler) saveConversion(ctx context.Context, record *models.Conversion) {
	if err := h.DB.CreateConversion(ctx, record); err != nil {
		log.Error().Err(err).Str("file", record.OriginalName).Msg("❌ Failed to save conversion record")
	}
}

func (h *Handler) sizeMessage() string {
	return fmt.Sprintf("Max size: %dMB.", h.MaxUploadBytes>>20)
}
