// Package ollama talks to a local model server for the non-RAG text
// transforms (grammar fixing, summarization). The transform itself is opaque;
// this client only enforces the request/response contract and length bounds.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultTimeout = 120 * time.Second

// Client transforms text through one fixed local model.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(baseURL, model string, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Transform runs the model over text with a bounded output length. minLength
// is advisory: servers that do not support a lower bound ignore it.
func (c *Client) Transform(ctx context.Context, text string, maxLength, minLength int) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: text,
		Stream: false,
		Options: map[string]any{
			"num_predict": maxLength,
			"min_tokens":  minLength,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshalling transform request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating transform request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting transform: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"model":  c.model,
			"status": resp.StatusCode,
		}).Error("non-OK response from transform server")
		return "", fmt.Errorf("transform server returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding transform response: %w", err)
	}
	return out.Response, nil
}
