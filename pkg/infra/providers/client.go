package providers

import (
	"context"
	"errors"
)

// ErrBadRequest marks a client-side request rejection. Calls failing with this
// class are never retried: the same request cannot succeed on a second attempt.
var ErrBadRequest = errors.New("provider rejected request")

type Config struct {
	Model        string         `json:"model"`
	Organization string         `json:"organization,omitempty"`
	APIKey       string         `json:"-"`
	MaxTokens    int            `json:"max_tokens,omitempty"`
	Temperature  float64        `json:"temperature,omitempty"`
	Options      map[string]any `json:"options,omitempty"`
}

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter

// Client is a chat-completion provider. Implementations hold only immutable
// configuration and are safe for concurrent use.
type Client interface {
	ChatCompletion(ctx context.Context, messages []Message) (*CompletionResponse, error)
}
