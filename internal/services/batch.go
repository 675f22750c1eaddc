package services

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jobtrackr/fit-engine/internal/models"
	"jobtrackr/fit-engine/internal/repositories"
)

// BatchScorer applies the scoring engine over many jobs against one CV.
// Individual failures are skipped; only the successful subset is returned,
// and the caller can infer the failure count from the lengths.
type BatchScorer struct {
	jobRepo     repositories.JobRepository
	aligner     *HeuristicAligner
	analyzer    AnalyzerService
	logger      *zap.Logger
	concurrency int
}

func NewBatchScorer(jobRepo repositories.JobRepository, aligner *HeuristicAligner, analyzer AnalyzerService, logger *zap.Logger, concurrency int) *BatchScorer {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &BatchScorer{
		jobRepo:     jobRepo,
		aligner:     aligner,
		analyzer:    analyzer,
		logger:      logger,
		concurrency: concurrency,
	}
}

// ScoreHeuristic runs the pure keyword aligner over every job id. The
// aligner has no shared state, so jobs are scored with bounded concurrency;
// input order is preserved in the output.
func (b *BatchScorer) ScoreHeuristic(ctx context.Context, jobIDs []string, cvText string) []models.MatchResponse {
	slots := make([]*models.MatchResponse, len(jobIDs))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, jobID := range jobIDs {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			job, err := b.jobRepo.FindByJobID(jobID)
			if err != nil {
				b.logger.Warn("skipping job in batch score",
					zap.String("job_id", jobID),
					zap.Error(err),
				)
				return nil
			}

			alignment := b.aligner.Align(job, cvText)

			mu.Lock()
			slots[i] = &models.MatchResponse{JobID: jobID, Alignment: alignment}
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; failures are simply absent from slots.
	_ = g.Wait()

	results := make([]models.MatchResponse, 0, len(jobIDs))
	for _, slot := range slots {
		if slot != nil {
			results = append(results, *slot)
		}
	}
	return results
}

// AnalyzeAll runs the full AI analysis per job, sequentially: the calls
// share one model budget and there is no point racing them. Failures are
// logged and skipped.
func (b *BatchScorer) AnalyzeAll(ctx context.Context, jobIDs []string, cvID, userID uint) []models.AnalyzeResponse {
	results := make([]models.AnalyzeResponse, 0, len(jobIDs))
	for _, jobID := range jobIDs {
		if ctx.Err() != nil {
			break
		}

		result, err := b.analyzer.Analyze(ctx, jobID, cvID, userID, nil)
		if err != nil {
			b.logger.Warn("skipping job in batch analysis",
				zap.String("job_id", jobID),
				zap.Error(err),
			)
			continue
		}

		results = append(results, models.AnalyzeResponse{
			JobID:  jobID,
			CVID:   cvID,
			UserID: userID,
			Result: result,
		})
	}
	return results
}
