package processor

import (
	"context"
	"fmt"
	"strings"

	"github.com/proseward/proseward/pkg/app/prompt"
	"github.com/proseward/proseward/pkg/app/retrieval"
	"github.com/proseward/proseward/pkg/infra/providers"
)

// ragChecker is the shared retrieve -> build prompt -> call -> trim pipeline
// behind the two retrieval-augmented variants.
type ragChecker struct {
	name      string
	retriever RuleRetriever
	caller    ChatCaller
	build     func(text string, rules []string) string
	topK      int
}

// RAGOption tweaks a retrieval-augmented checker at construction time.
type RAGOption func(*ragChecker)

// WithTopK overrides how many rules are retrieved per request.
func WithTopK(k int) RAGOption {
	return func(p *ragChecker) {
		if k > 0 {
			p.topK = k
		}
	}
}

// NewStyleChecker improves both grammar and style, grounded on retrieved
// language rules.
func NewStyleChecker(retriever RuleRetriever, caller ChatCaller, opts ...RAGOption) Processor {
	return newRAGChecker("style-checker", retriever, caller, prompt.StyleImprovement, opts)
}

// NewGrammarChecker corrects grammar only, leaving style and spelling alone
// except where a retrieved rule requires a change.
func NewGrammarChecker(retriever RuleRetriever, caller ChatCaller, opts ...RAGOption) Processor {
	return newRAGChecker("grammar-checker", retriever, caller, prompt.GrammarCorrection, opts)
}

func newRAGChecker(
	name string,
	retriever RuleRetriever,
	caller ChatCaller,
	build func(text string, rules []string) string,
	opts []RAGOption,
) Processor {
	p := &ragChecker{
		name:      name,
		retriever: retriever,
		caller:    caller,
		build:     build,
		topK:      retrieval.DefaultTopK,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *ragChecker) Name() string { return p.name }

func (p *ragChecker) Process(ctx context.Context, text string) (string, error) {
	rules, err := p.retriever.Retrieve(ctx, text, p.topK)
	if err != nil {
		return "", fmt.Errorf("%s: %w", p.name, err)
	}

	messages := []providers.Message{providers.SystemMessage(p.build(text, rules))}
	result, err := p.caller.Call(ctx, messages, text)
	if err != nil {
		return "", fmt.Errorf("%s: %w", p.name, err)
	}
	return strings.TrimSpace(result.Text), nil
}
