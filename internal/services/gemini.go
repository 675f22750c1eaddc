package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"jobtrackr/fit-engine/internal/config"
)

// ChatRequest is one conversation turn sent to the model: the accumulated
// history plus the tool schemas it may call.
type ChatRequest struct {
	System  string
	History []*genai.Content
	Tools   []*genai.Tool
}

// ChatTurn is the model's reply: assistant text, zero or more requested tool
// calls, and the raw content to append to the conversation history.
type ChatTurn struct {
	Text          string
	FunctionCalls []*genai.FunctionCall
	Content       *genai.Content
}

type GeminiService interface {
	Chat(ctx context.Context, req *ChatRequest) (*ChatTurn, error)
	ChatWithRetry(ctx context.Context, req *ChatRequest, maxRetries int) (*ChatTurn, error)
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
	logger     *zap.Logger
}

func NewGeminiService(ctx context.Context, cfg config.GeminiConfig, logger *zap.Logger) (GeminiService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		modelName:  cfg.Model,
		embedModel: cfg.EmbedModel,
		logger:     logger,
	}, nil
}

// Chat implements GeminiService.
func (g *geminiService) Chat(ctx context.Context, req *ChatRequest) (*ChatTurn, error) {
	temperature := float32(0.3)
	genConfig := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 8192,
	}

	if req.System != "" {
		genConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	if len(req.Tools) > 0 {
		genConfig.Tools = req.Tools
		genConfig.ToolConfig = &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode: genai.FunctionCallingConfigModeAuto,
			},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, req.History, genConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty completion response")
	}

	content := resp.Candidates[0].Content

	turn := &ChatTurn{Content: content}
	for _, part := range content.Parts {
		if part == nil {
			continue
		}
		if part.FunctionCall != nil {
			turn.FunctionCalls = append(turn.FunctionCalls, part.FunctionCall)
		}
		if part.Text != "" {
			if turn.Text != "" {
				turn.Text += "\n"
			}
			turn.Text += part.Text
		}
	}

	return turn, nil
}

// ChatWithRetry implements GeminiService. Only transport failures are
// retried; a successful call with unusable content is the caller's problem.
func (g *geminiService) ChatWithRetry(ctx context.Context, req *ChatRequest, maxRetries int) (*ChatTurn, error) {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		turn, err := g.Chat(ctx, req)
		if err == nil {
			return turn, nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if attempt < maxRetries {
			g.logger.Warn("gemini chat attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}

// EmbedTexts implements GeminiService.
func (g *geminiService) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		// ~10k token ceiling on the embedding model
		if len(text) > 40000 {
			text = text[:40000]
		}
		contents = append(contents, &genai.Content{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: text}},
		})
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	vectors := make([][]float32, 0, len(result.Embeddings))
	for _, embedding := range result.Embeddings {
		vectors = append(vectors, embedding.Values)
	}

	return vectors, nil
}
