package handlers

import (
	"github.com/gofiber/fiber/v2"

	"jobtrackr/fit-engine/internal/models"
	"jobtrackr/fit-engine/internal/repositories"
	"jobtrackr/fit-engine/internal/services"
)

// MatchHandler exposes the heuristic aligner directly: cheap, offline
// scoring with no LLM involved.
type MatchHandler struct {
	jobRepo repositories.JobRepository
	cvRepo  repositories.CVRepository
	aligner *services.HeuristicAligner
	batch   *services.BatchScorer
}

func NewMatchHandler(jobRepo repositories.JobRepository, cvRepo repositories.CVRepository, aligner *services.HeuristicAligner, batch *services.BatchScorer) *MatchHandler {
	return &MatchHandler{
		jobRepo: jobRepo,
		cvRepo:  cvRepo,
		aligner: aligner,
		batch:   batch,
	}
}

// HandleMatch handles POST /match.
func (h *MatchHandler) HandleMatch(c *fiber.Ctx) error {
	var req models.MatchRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.JobID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_id is required",
		})
	}

	cvText, err := h.resolveCVText(req.CVText, req.CVID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "CV not found",
		})
	}

	job, err := h.jobRepo.FindByJobID(req.JobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	return c.JSON(models.MatchResponse{
		JobID:     req.JobID,
		Alignment: h.aligner.Align(job, cvText),
	})
}

// HandleBatchMatch handles POST /match/batch.
func (h *MatchHandler) HandleBatchMatch(c *fiber.Ctx) error {
	var req models.BatchMatchRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if len(req.JobIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_ids is required",
		})
	}

	cvText, err := h.resolveCVText(req.CVText, req.CVID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "CV not found",
		})
	}

	results := h.batch.ScoreHeuristic(c.Context(), req.JobIDs, cvText)

	return c.JSON(models.BatchMatchResponse{
		Results:  results,
		Total:    len(req.JobIDs),
		Failures: len(req.JobIDs) - len(results),
	})
}

func (h *MatchHandler) resolveCVText(cvText string, cvID uint) (string, error) {
	if cvText != "" || cvID == 0 {
		return cvText, nil
	}
	cv, err := h.cvRepo.FindByID(cvID)
	if err != nil {
		return "", err
	}
	return cv.ParsedContent, nil
}
