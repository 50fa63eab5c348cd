package importer

import (
	"fmt"
	"log"
	"os"
	"strings"

	"forecast-backend/internal/database"
	"forecast-backend/internal/models"
)

// ExecuteJob runs one queued import end to end: pending → running → done or
// failed, with counts and row errors written back to the job record.
func ExecuteJob(jobID string) {
	var job models.ImportJob
	if err := database.DB.First(&job, "id = ?", jobID).Error; err != nil {
		log.Printf("import job %s not found: %v", jobID, err)
		return
	}
	if job.Status != models.ImportPending {
		log.Printf("import job %s already %s, skipping", jobID, job.Status)
		return
	}

	database.DB.Model(&job).Update("status", models.ImportRunning)

	file, err := os.Open(job.FilePath)
	if err != nil {
		fail(&job, fmt.Errorf("cannot open upload: %w", err))
		return
	}
	defer file.Close()

	result, err := Run(database.DB, job.Kind, file, job.FileName)
	if err != nil {
		fail(&job, err)
		return
	}

	updates := map[string]any{
		"status":   models.ImportDone,
		"imported": result.Imported,
		"skipped":  result.Skipped,
	}
	if len(result.Errors) > 0 {
		updates["error"] = joinRowErrors(result.Errors)
	}
	database.DB.Model(&job).Updates(updates)
	log.Printf("import job %s done: %d imported, %d skipped", jobID, result.Imported, result.Skipped)
}

func fail(job *models.ImportJob, err error) {
	log.Printf("import job %s failed: %v", job.ID, err)
	database.DB.Model(job).Updates(map[string]any{
		"status": models.ImportFailed,
		"error":  err.Error(),
	})
}

func joinRowErrors(errs []RowError) string {
	const maxReported = 50
	parts := make([]string, 0, len(errs))
	for i, e := range errs {
		if i == maxReported {
			parts = append(parts, fmt.Sprintf("... and %d more", len(errs)-maxReported))
			break
		}
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}
