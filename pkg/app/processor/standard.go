package processor

import (
	"context"
	"fmt"
	"strings"

	"github.com/proseward/proseward/pkg/app/prompt"
	"github.com/proseward/proseward/pkg/infra/providers"
)

// standardEnglishChecker chains a grammar pass into a style pass: the nested
// processor runs first and its output is fed into the combined prompt next to
// the original text. The nested processor is injected, not owned by type.
type standardEnglishChecker struct {
	grammar Processor
	caller  ChatCaller
}

// NewStandardEnglishChecker builds the chained grammar-then-style processor.
func NewStandardEnglishChecker(grammar Processor, caller ChatCaller) Processor {
	return &standardEnglishChecker{grammar: grammar, caller: caller}
}

func (p *standardEnglishChecker) Name() string { return "standard-english" }

func (p *standardEnglishChecker) Process(ctx context.Context, text string) (string, error) {
	corrected, err := p.grammar.Process(ctx, text)
	if err != nil {
		// The chain has no best-effort fallback: a failed grammar pass
		// aborts before this processor's own call is made.
		return "", fmt.Errorf("standard-english: grammar pass: %w", err)
	}

	messages := []providers.Message{
		providers.SystemMessage(prompt.StandardEnglish(text, corrected)),
	}
	result, err := p.caller.Call(ctx, messages, text)
	if err != nil {
		return "", fmt.Errorf("standard-english: %w", err)
	}
	return strings.TrimSpace(result.Text), nil
}
