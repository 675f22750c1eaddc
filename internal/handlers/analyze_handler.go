package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"jobtrackr/fit-engine/internal/models"
	"jobtrackr/fit-engine/internal/services"
)

type AnalyzeHandler struct {
	analyzer       services.AnalyzerService
	logger         *zap.Logger
	progressBuffer int
}

func NewAnalyzeHandler(analyzer services.AnalyzerService, logger *zap.Logger, progressBuffer int) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:       analyzer,
		logger:         logger,
		progressBuffer: progressBuffer,
	}
}

// HandleAnalyze handles POST /analyses. With ?stream=true the response is
// newline-delimited JSON progress events followed by the final result.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest

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
	if req.CVID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "cv_id is required",
		})
	}
	if req.UserID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id is required",
		})
	}

	if c.Query("stream") == "true" {
		return h.streamAnalysis(c, &req)
	}

	result, err := h.analyzer.Analyze(c.Context(), req.JobID, req.CVID, req.UserID, nil)
	if err != nil {
		status, message := statusForError(err)
		return c.Status(status).JSON(fiber.Map{"error": message})
	}

	return c.JSON(models.AnalyzeResponse{
		JobID:  req.JobID,
		CVID:   req.CVID,
		UserID: req.UserID,
		Result: result,
	})
}

type analysisOutcome struct {
	result *models.AnalysisResult
	err    error
}

func (h *AnalyzeHandler) streamAnalysis(c *fiber.Ctx, req *models.AnalyzeRequest) error {
	c.Set(fiber.HeaderContentType, "application/x-ndjson")
	c.Set(fiber.HeaderCacheControl, "no-cache")

	progress := services.NewProgress(h.progressBuffer)
	done := make(chan analysisOutcome, 1)

	// Detach from the request context: fiber recycles it once the handler
	// returns, but the analysis keeps running while the stream writer runs.
	ctx := context.Background()
	jobID, cvID, userID := req.JobID, req.CVID, req.UserID

	go func() {
		result, err := h.analyzer.Analyze(ctx, jobID, cvID, userID, progress)
		done <- analysisOutcome{result: result, err: err}
	}()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		encoder := json.NewEncoder(w)

		for step := range progress.Steps() {
			if err := encoder.Encode(step); err != nil {
				h.logger.Debug("progress stream closed by client", zap.Error(err))
				break
			}
			_ = w.Flush()
		}

		outcome := <-done
		if outcome.err != nil {
			_, message := statusForError(outcome.err)
			_ = encoder.Encode(fiber.Map{"error": message})
		} else {
			_ = encoder.Encode(fiber.Map{"result": outcome.result})
		}
		_ = w.Flush()
	}))

	return nil
}

// statusForError maps the scoring-engine error taxonomy onto HTTP codes.
func statusForError(err error) (int, string) {
	var notFound *services.NotFoundError
	if errors.As(err, &notFound) {
		return fiber.StatusNotFound, notFound.Error()
	}

	var validation *services.ValidationError
	if errors.As(err, &validation) {
		return fiber.StatusBadRequest, validation.Error()
	}

	var external *services.ExternalServiceError
	if errors.As(err, &external) {
		return fiber.StatusBadGateway, external.Error()
	}

	var malformed *services.MalformedResponseError
	if errors.As(err, &malformed) {
		return fiber.StatusBadGateway, malformed.Error()
	}

	return fiber.StatusInternalServerError, err.Error()
}
