package importer

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"forecast-backend/internal/config"
	"forecast-backend/internal/database"
	"forecast-backend/internal/httpx"
	"forecast-backend/internal/models"
	"forecast-backend/internal/queue"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func parseKind(s string) (models.ImportKind, error) {
	switch models.ImportKind(s) {
	case models.ImportCategories, models.ImportStores, models.ImportSales:
		return models.ImportKind(s), nil
	default:
		return "", fmt.Errorf("unknown import kind %q", s)
	}
}

// POST /api/admin/import/:kind  (multipart "file"; ?async=true to queue)
// Inline runs answer with the import result; queued runs answer 202 with the
// job id to poll on /api/admin/import-jobs.
func UploadHandler(cfg *config.Config, q *queue.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := parseKind(c.Params("kind"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "file upload missing: "+err.Error())
		}
		name := strings.ToLower(fileHeader.Filename)
		if !strings.HasSuffix(name, ".csv") && !strings.HasSuffix(name, ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "only .csv and .xlsx files are accepted")
		}

		if c.Query("async") == "true" {
			if q == nil {
				return fiber.NewError(fiber.StatusServiceUnavailable, "import queue is not configured")
			}
			return enqueue(c, cfg, q, kind, fileHeader)
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "cannot open upload")
		}
		defer file.Close()

		result, err := Run(database.DB, kind, file, fileHeader.Filename)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return httpx.Data(c, result)
	}
}

func enqueue(c *fiber.Ctx, cfg *config.Config, q *queue.Client, kind models.ImportKind, fileHeader *multipart.FileHeader) error {
	job := models.ImportJob{
		ID:       uuid.NewString(),
		Kind:     kind,
		FileName: fileHeader.Filename,
		Status:   models.ImportPending,
	}
	job.FilePath = filepath.Join(cfg.UploadDir, job.ID+filepath.Ext(fileHeader.Filename))

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "cannot store upload")
	}
	if err := c.SaveFile(fileHeader, job.FilePath); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "cannot store upload")
	}
	if err := database.DB.Create(&job).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "cannot record import job")
	}
	if err := q.PublishJob(c.Context(), job.ID); err != nil {
		database.DB.Model(&job).Updates(map[string]any{
			"status": models.ImportFailed,
			"error":  "queue publish failed: " + err.Error(),
		})
		return fiber.NewError(fiber.StatusServiceUnavailable, "cannot enqueue import job")
	}

	return httpx.Accepted(c, job)
}

// GET /api/admin/import-jobs?status=
func ListJobsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.ImportJob{}).Order("created_at DESC").Limit(100)
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}

		var jobs []models.ImportJob
		if err := q.Find(&jobs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load import jobs")
		}
		return httpx.Data(c, jobs)
	}
}
