package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"jobtrackr/fit-engine/internal/logger"
	"jobtrackr/fit-engine/internal/models"
	"jobtrackr/fit-engine/internal/repositories"
)

// AnalyzerService runs the full AI analysis of one job against one CV:
// cache check, prompt build, bounded tool-calling loop, result parse,
// persistence. Progress events stream through the optional Progress channel.
type AnalyzerService interface {
	Analyze(ctx context.Context, jobID string, cvID, userID uint, progress *Progress) (*models.AnalysisResult, error)
}

type analyzerService struct {
	jobRepo      repositories.JobRepository
	cvRepo       repositories.CVRepository
	analysisRepo repositories.AnalysisRepository
	trainingRepo repositories.TrainingRepository
	gemini       GeminiService
	tools        *ToolRegistry
	prompts      *PromptBuilder
	logger       *zap.Logger

	maxToolRounds int
	maxRetries    int
	modelName     string

	// One in-flight analysis per (job, cv, user) key. The second caller
	// waits and is served from cache instead of paying for a duplicate
	// model conversation.
	keyMu    sync.Mutex
	keyLocks map[string]*sync.Mutex
}

func NewAnalyzerService(
	jobRepo repositories.JobRepository,
	cvRepo repositories.CVRepository,
	analysisRepo repositories.AnalysisRepository,
	trainingRepo repositories.TrainingRepository,
	gemini GeminiService,
	tools *ToolRegistry,
	log *zap.Logger,
	maxToolRounds int,
	maxRetries int,
	modelName string,
) AnalyzerService {
	if maxToolRounds <= 0 {
		maxToolRounds = 10
	}
	return &analyzerService{
		jobRepo:       jobRepo,
		cvRepo:        cvRepo,
		analysisRepo:  analysisRepo,
		trainingRepo:  trainingRepo,
		gemini:        gemini,
		tools:         tools,
		prompts:       NewPromptBuilder(),
		logger:        log,
		maxToolRounds: maxToolRounds,
		maxRetries:    maxRetries,
		modelName:     modelName,
		keyLocks:      make(map[string]*sync.Mutex),
	}
}

// Analyze implements AnalyzerService.
func (s *analyzerService) Analyze(ctx context.Context, jobID string, cvID, userID uint, progress *Progress) (result *models.AnalysisResult, err error) {
	defer progress.Close()
	defer func() {
		if err != nil {
			progress.Emit(StepError, err.Error(), nil)
		}
	}()

	unlock := s.lockKey(analysisKey(jobID, cvID, userID))
	defer unlock()

	job, findErr := s.jobRepo.FindByJobID(jobID)
	if findErr != nil {
		return nil, &NotFoundError{Entity: "job", ID: jobID}
	}

	cv, findErr := s.cvRepo.FindByID(cvID)
	if findErr != nil {
		return nil, &NotFoundError{Entity: "cv", ID: fmt.Sprintf("%d", cvID)}
	}

	cached, cacheErr := s.analysisRepo.FindCached(jobID, cvID, userID)
	if cacheErr != nil {
		return nil, fmt.Errorf("cache lookup failed: %w", cacheErr)
	}
	if cached != nil {
		s.logger.Info("serving cached analysis",
			zap.String("job_id", jobID),
			zap.Uint("cv_id", cvID),
			zap.Uint("user_id", userID),
		)
		progress.Emit(StepCacheHit, "Using a previously computed analysis for this job and CV.", nil)
		progress.Emit(StepComplete, "Analysis complete.", nil)
		return cached.Result(), nil
	}

	started := time.Now()

	promptText := s.prompts.BuildAnalysisPrompt(job, cv.ParsedContent)
	system := s.prompts.SystemInstruction()

	s.logger.Debug("analysis prompt built",
		zap.String("job_id", jobID),
		zap.Int("prompt_length", len(promptText)),
		zap.String("prompt_preview", logger.TruncateForLog(promptText, 200)),
	)

	finalText, rounds, loopErr := s.runToolLoop(ctx, system, promptText, progress)
	if loopErr != nil {
		return nil, loopErr
	}

	parsed, parseErr := parseAnalysisResult(finalText)
	if parseErr != nil {
		// The conversation already happened; keep it for the training log
		// even though the run failed.
		s.appendTrainingRecord(uuid.Nil, jobID, cvID, userID, system+"\n\n"+promptText, finalText, false, rounds, started)
		return nil, parseErr
	}

	parsed.Normalize()

	row := models.NewAIAnalysis(jobID, cvID, userID, parsed)
	analysisID, upsertErr := s.analysisRepo.Upsert(row)
	if upsertErr != nil {
		return nil, fmt.Errorf("failed to persist analysis: %w", upsertErr)
	}

	s.appendTrainingRecord(analysisID, jobID, cvID, userID, system+"\n\n"+promptText, finalText, true, rounds, started)

	s.logger.Info("analysis completed",
		zap.String("job_id", jobID),
		zap.Uint("cv_id", cvID),
		zap.Int("overall_score", parsed.OverallScore),
		zap.String("recommendation", string(parsed.Recommendation)),
		zap.Int("tool_rounds", rounds),
		zap.Duration("elapsed", time.Since(started)),
	)

	progress.Emit(StepComplete, "Analysis complete.", map[string]any{
		"overall_score":  parsed.OverallScore,
		"recommendation": parsed.Recommendation,
	})

	return parsed, nil
}

// runToolLoop drives the bounded tool-calling conversation and returns the
// model's final text content. Tool-level failures are fed back to the model;
// transport failures abort.
func (s *analyzerService) runToolLoop(ctx context.Context, system, promptText string, progress *Progress) (string, int, error) {
	history := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: promptText}},
	}}
	toolDecls := s.tools.Declarations()

	var lastText string
	rounds := 0

	for rounds < s.maxToolRounds {
		rounds++
		progress.Emit(StepThinking, fmt.Sprintf("Analyzing (round %d)...", rounds), nil)

		turn, err := s.gemini.ChatWithRetry(ctx, &ChatRequest{
			System:  system,
			History: history,
			Tools:   toolDecls,
		}, s.maxRetries)
		if err != nil {
			return "", rounds, &ExternalServiceError{Service: "llm", Err: err}
		}

		history = append(history, turn.Content)
		if turn.Text != "" {
			lastText = turn.Text
		}

		if len(turn.FunctionCalls) == 0 {
			return lastText, rounds, nil
		}

		// Tool calls run one after another: a later result may be referenced
		// by the same conversational turn.
		for _, call := range turn.FunctionCalls {
			progress.Emit(StepToolCall, fmt.Sprintf("Running %s...", call.Name), map[string]any{
				"tool": call.Name,
			})

			payload, execErr := s.tools.Execute(ctx, call)
			if execErr != nil {
				return "", rounds, execErr
			}

			if msg, ok := payload["error"].(string); ok {
				s.logger.Warn("tool call returned error payload",
					zap.String("tool", call.Name),
					zap.String("error", msg),
				)
			}

			progress.Emit(StepToolResult, fmt.Sprintf("%s finished.", call.Name), map[string]any{
				"tool":   call.Name,
				"result": payload,
			})

			history = append(history, &genai.Content{
				Role: genai.RoleUser,
				Parts: []*genai.Part{{
					FunctionResponse: &genai.FunctionResponse{
						ID:       call.ID,
						Name:     call.Name,
						Response: payload,
					},
				}},
			})
		}
	}

	// Round budget exhausted with the model still asking for tools. Not
	// fatal: parse whatever content it has produced so far.
	s.logger.Warn("tool round budget exhausted, parsing last content",
		zap.Int("rounds", rounds),
	)
	progress.Emit(StepWarning, "Tool budget exhausted; finalizing with available content.", nil)

	return lastText, rounds, nil
}

func (s *analyzerService) appendTrainingRecord(analysisID uuid.UUID, jobID string, cvID, userID uint, prompt, rawResponse string, parseSuccess bool, rounds int, started time.Time) {
	record := &models.TrainingRecord{
		ID:                uuid.New(),
		AnalysisID:        analysisID,
		JobID:             jobID,
		CVID:              cvID,
		UserID:            userID,
		Prompt:            prompt,
		RawResponse:       rawResponse,
		ParseSuccess:      parseSuccess,
		ToolRounds:        rounds,
		ElapsedMS:         time.Since(started).Milliseconds(),
		PromptTokensEst:   models.EstimateTokens(prompt),
		ResponseTokensEst: models.EstimateTokens(rawResponse),
		ModelName:         s.modelName,
	}

	if err := s.trainingRepo.Append(record); err != nil {
		// Training data is bookkeeping; a failed append must not undo a
		// completed analysis.
		s.logger.Warn("failed to append training record", zap.Error(err))
	}
}

func (s *analyzerService) lockKey(key string) func() {
	s.keyMu.Lock()
	lock, ok := s.keyLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.keyLocks[key] = lock
	}
	s.keyMu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func analysisKey(jobID string, cvID, userID uint) string {
	return fmt.Sprintf("%s|%d|%d", jobID, cvID, userID)
}

var fencedJSONPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// parseAnalysisResult tries the strict parse first, then a fenced ```json
// block. Anything else is a MalformedResponseError carrying an excerpt.
func parseAnalysisResult(raw string) (*models.AnalysisResult, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &MalformedResponseError{
			Excerpt: "",
			Err:     errors.New("model produced no final content"),
		}
	}

	var direct models.AnalysisResult
	directErr := json.Unmarshal([]byte(trimmed), &direct)
	if directErr == nil {
		return &direct, nil
	}

	if match := fencedJSONPattern.FindStringSubmatch(trimmed); match != nil {
		var fenced models.AnalysisResult
		if err := json.Unmarshal([]byte(match[1]), &fenced); err == nil {
			return &fenced, nil
		}
	}

	return nil, &MalformedResponseError{
		Excerpt: logger.TruncateForLog(trimmed, 160),
		Err:     directErr,
	}
}
