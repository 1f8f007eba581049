package embedding

import (
	"context"
)

//go:generate mockery --name=Creator --dir=. --output=./mocks --filename=embedding_creator_mock.go --case=underscore --with-expecter

// Creator turns text into a fixed-dimension embedding vector. Implementations
// must be deterministic for a fixed model identity.
type Creator interface {
	Generate(ctx context.Context, text string) (*Embedding, error)
	GenerateBatch(ctx context.Context, texts []string) ([]*Embedding, error)
}
