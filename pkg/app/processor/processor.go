// Package processor holds the public text-processing strategies. Every
// variant implements the same Process capability; composition (retrieval,
// prompt assembly, generative calls, chaining) happens behind it.
package processor

import (
	"context"

	"github.com/proseward/proseward/pkg/app/completion"
	"github.com/proseward/proseward/pkg/infra/providers"
)

//go:generate mockery --name=Processor --dir=. --output=./mocks --filename=processor_mock.go --case=underscore --with-expecter

// Processor is the unit of work: text in, improved text out.
type Processor interface {
	Name() string
	Process(ctx context.Context, text string) (string, error)
}

// ChatCaller is the slice of completion.Caller the processors depend on.
type ChatCaller interface {
	Call(ctx context.Context, messages []providers.Message, correlation any) (completion.Result, error)
}

// RuleRetriever returns the k knowledge-base rules most relevant to a query,
// nearest first.
type RuleRetriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]string, error)
}

// Transformer is the external local text-transform capability used by the
// non-RAG variants. Behavior beyond the length bounds is opaque.
type Transformer interface {
	Transform(ctx context.Context, text string, maxLength, minLength int) (string, error)
}
