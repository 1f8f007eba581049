package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/proseward/proseward/pkg/domain/embedding"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

const (
	openAIEmbeddingsURL   = "https://api.openai.com/v1/embeddings"
	defaultRequestTimeout = 30 * time.Second
)

// Doer is the subset of fasthttp.Client used by the service.
type Doer interface {
	DoTimeout(req *fasthttp.Request, resp *fasthttp.Response, timeout time.Duration) error
}

type Config struct {
	APIKey    string
	Model     string
	Dimension int
}

type embeddingService struct {
	client Doer
	cfg    Config
	logger *logrus.Logger
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingData struct {
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}

type openAIEmbeddingResponse struct {
	Data []embeddingData `json:"data"`
}

func NewEmbeddingService(client Doer, cfg Config, logger *logrus.Logger) (embedding.Creator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("embeddings API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("embeddings model is required")
	}
	if cfg.Dimension <= 0 {
		return nil, fmt.Errorf("embeddings dimension must be positive, got %d", cfg.Dimension)
	}
	return &embeddingService{client: client, cfg: cfg, logger: logger}, nil
}

func (s *embeddingService) Generate(ctx context.Context, text string) (*embedding.Embedding, error) {
	batch, err := s.GenerateBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return batch[0], nil
}

func (s *embeddingService) GenerateBatch(ctx context.Context, texts []string) ([]*embedding.Embedding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pBytes, err := json.Marshal(embeddingRequest{
		Model: s.cfg.Model,
		Input: texts,
	})
	if err != nil {
		s.logger.WithError(err).Error("failed to marshal embedding request payload")
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(openAIEmbeddingsURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.cfg.APIKey))
	req.SetBody(pBytes)

	if err := s.doRequestWithContext(ctx, req, resp); err != nil {
		return nil, err
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		s.logger.WithField("response", string(resp.Body())).Error("non-OK response from embeddings API")
		return nil, fmt.Errorf("%w: %d", embedding.ErrProviderNonOKResponse, resp.StatusCode())
	}

	var embResp openAIEmbeddingResponse
	if err := json.Unmarshal(resp.Body(), &embResp); err != nil {
		s.logger.WithError(err).Error("failed to decode embeddings response")
		return nil, err
	}

	if len(embResp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(embResp.Data))
	}

	now := time.Now()
	out := make([]*embedding.Embedding, len(texts))
	for _, data := range embResp.Data {
		if data.Index < 0 || data.Index >= len(texts) {
			return nil, fmt.Errorf("embedding index %d out of range", data.Index)
		}
		if len(data.Embedding) == 0 {
			return nil, embedding.ErrEmptyEmbedding
		}
		if len(data.Embedding) != s.cfg.Dimension {
			return nil, fmt.Errorf("%w: got %d, want %d",
				embedding.ErrDimensionMismatch, len(data.Embedding), s.cfg.Dimension)
		}
		out[data.Index] = &embedding.Embedding{
			Value:     data.Embedding,
			CreatedAt: now,
		}
	}
	for i, e := range out {
		if e == nil {
			return nil, fmt.Errorf("missing embedding for input %d", i)
		}
	}
	return out, nil
}

func (s *embeddingService) doRequestWithContext(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.client.DoTimeout(req, resp, defaultRequestTimeout)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		if err != nil {
			s.logger.WithError(err).Error("error performing HTTP request for embeddings")
		}
		return err
	}
}
