package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mitchellh/mapstructure"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/proseward/proseward/pkg/infra/providers"
)

// openaiOptions captures free-form model parameters carried in the provider
// config's Options map.
type openaiOptions struct {
	TopP float64 `json:"top_p" mapstructure:"top_p"`
	N    int     `json:"n" mapstructure:"n"`
}

type client struct {
	inner openai.Client
	cfg   providers.Config
	opts  openaiOptions
}

// NewClient builds an OpenAI chat-completion client from an immutable config.
func NewClient(cfg providers.Config) (providers.Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	var opts openaiOptions
	if len(cfg.Options) > 0 {
		if err := mapstructure.Decode(cfg.Options, &opts); err != nil {
			return nil, fmt.Errorf("decoding provider options: %w", err)
		}
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Organization != "" {
		reqOpts = append(reqOpts, option.WithOrganization(cfg.Organization))
	}

	return &client{
		inner: openai.NewClient(reqOpts...),
		cfg:   cfg,
		opts:  opts,
	}, nil
}

func (c *client) ChatCompletion(
	ctx context.Context,
	messages []providers.Message,
) (*providers.CompletionResponse, error) {
	resp, err := c.inner.Chat.Completions.New(ctx, c.buildParams(messages))
	if err != nil {
		return nil, classify(err)
	}

	out := &providers.CompletionResponse{
		ID:      resp.ID,
		Model:   resp.Model,
		Choices: make([]providers.Choice, len(resp.Choices)),
		Usage: providers.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
		Raw: []byte(resp.RawJSON()),
	}
	for i, choice := range resp.Choices {
		out.Choices[i] = providers.Choice{
			Content:      choice.Message.Content,
			FinishReason: string(choice.FinishReason),
		}
	}
	return out, nil
}

func (c *client) buildParams(messages []providers.Message) openai.ChatCompletionNewParams {
	var msgs []openai.ChatCompletionMessageParamUnion
	for _, m := range messages {
		switch m.Role {
		case providers.RoleSystem:
			msgs = append(msgs, openai.SystemMessage(m.Content))
		case providers.RoleUser:
			msgs = append(msgs, openai.UserMessage(m.Content))
		case providers.RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    c.cfg.Model,
		Messages: msgs,
	}
	if c.cfg.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(c.cfg.MaxTokens))
	}
	if c.cfg.Temperature > 0 {
		params.Temperature = openai.Float(c.cfg.Temperature)
	}
	if c.opts.TopP > 0 {
		params.TopP = openai.Float(c.opts.TopP)
	}
	if c.opts.N > 0 {
		params.N = openai.Int(int64(c.opts.N))
	}
	return params
}

// classify maps SDK errors onto the provider error taxonomy. A 400 from the
// API is a non-retryable request rejection; everything else stays transient.
func classify(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) && apierr.StatusCode == http.StatusBadRequest {
		return fmt.Errorf("%w: %v", providers.ErrBadRequest, err)
	}
	return fmt.Errorf("openai chat completion failed: %w", err)
}
