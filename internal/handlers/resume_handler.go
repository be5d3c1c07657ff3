package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/abhishekagarwal777/resume-analyzer/internal/apperrors"
	"github.com/abhishekagarwal777/resume-analyzer/internal/repositories"
	"github.com/abhishekagarwal777/resume-analyzer/internal/services"
)

type ResumeHandler struct {
	repo        repositories.AnalysisRepository
	analyzer    services.Analyzer
	maxFileSize int64
}

func NewResumeHandler(
	repo repositories.AnalysisRepository,
	analyzer services.Analyzer,
	maxFileSize int64,
) *ResumeHandler {
	return &ResumeHandler{
		repo:        repo,
		analyzer:    analyzer,
		maxFileSize: maxFileSize,
	}
}

// RegisterRoutes mounts the resume API. Fixed paths are registered before
// the :id routes so they are not captured by the parameter.
func (h *ResumeHandler) RegisterRoutes(api fiber.Router, uploadLimiter fiber.Handler) {
	api.Post("/upload", uploadLimiter, h.Upload)
	api.Get("/stats", h.Stats)
	api.Get("/search", notImplemented("Search"))
	api.Get("/export", notImplemented("Export"))
	api.Post("/bulk-upload", notImplemented("Bulk upload"))
	api.Get("/", h.List)
	api.Get("/:id", h.Get)
	api.Put("/:id", notImplemented("Update"))
	api.Delete("/:id", h.Delete)
	api.Post("/:id/reanalyze", notImplemented("Reanalysis"))
}

func (h *ResumeHandler) Upload(c *fiber.Ctx) error {
	const op = "ResumeHandler.Upload"

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return apperrors.E(apperrors.CodeInvalidArgument, op,
			"A resume file is required under the 'resume' form field.", err)
	}

	if fileHeader.Size > h.maxFileSize {
		return apperrors.E(apperrors.CodeInvalidArgument, op,
			fmt.Sprintf("The uploaded file exceeds the %d MB size limit.", h.maxFileSize/(1024*1024)), nil)
	}

	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".pdf" {
		return apperrors.E(apperrors.CodeInvalidArgument, op,
			"Only PDF resumes are supported.", nil)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return apperrors.E(apperrors.CodeInternal, op, "Failed to open the uploaded file.", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return apperrors.E(apperrors.CodeInternal, op, "Failed to read the uploaded file.", err)
	}

	if ct := http.DetectContentType(data); ct != "application/pdf" {
		return apperrors.E(apperrors.CodeInvalidArgument, op,
			"Only PDF resumes are supported.", fmt.Errorf("detected content type %q", ct))
	}

	record, err := h.analyzer.Analyze(c.Context(), data, fileHeader.Filename)
	if err != nil {
		return err
	}

	if err := h.repo.Create(c.Context(), record); err != nil {
		return err
	}

	return success(c, fiber.StatusCreated, "Resume analyzed and stored successfully.", record)
}

func (h *ResumeHandler) List(c *fiber.Ctx) error {
	summaries, err := h.repo.FindAll(c.Context())
	if err != nil {
		return err
	}
	return successList(c, summaries, len(summaries))
}

func (h *ResumeHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	record, err := h.repo.FindByID(c.Context(), id)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, "", record)
}

func (h *ResumeHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	summary, err := h.repo.DeleteByID(c.Context(), id)
	if err != nil {
		return err
	}

	return success(c, fiber.StatusOK, "Resume deleted successfully.", fiber.Map{
		"id":        summary.ID,
		"file_name": summary.FileName,
	})
}

func (h *ResumeHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.repo.Stats(c.Context())
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, "", stats)
}

func parseID(c *fiber.Ctx) (uint, error) {
	const op = "ResumeHandler.parseID"

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.E(apperrors.CodeInvalidArgument, op,
			"Invalid resume id. It must be a positive integer.", err)
	}
	return uint(id), nil
}

// notImplemented marks reserved API surface that is intentionally not built
// yet; it responds 501 rather than 404 so clients can tell it apart from a
// wrong path.
func notImplemented(feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotImplemented,
			fmt.Sprintf("%s is not implemented yet.", feature))
	}
}
