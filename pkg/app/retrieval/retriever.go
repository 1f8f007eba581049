package retrieval

import (
	"context"
	"errors"
	"fmt"

	"github.com/proseward/proseward/pkg/domain/embedding"
	"github.com/proseward/proseward/pkg/domain/knowledge"
	"github.com/proseward/proseward/pkg/infra/index"
	"github.com/sirupsen/logrus"
)

// DefaultTopK is the number of rules retrieved when callers have no better idea.
const DefaultTopK = 2

var ErrEmptyKnowledgeBase = errors.New("knowledge base must not be empty")

// Retriever answers "which rules are most relevant to this text" by embedding
// the query and running a nearest-neighbor search over the pre-embedded
// knowledge base. The base and its index are built once at construction and
// never change, so Retrieve is safe for concurrent use.
type Retriever struct {
	creator embedding.Creator
	idx     *index.Flat
	base    knowledge.Base
	logger  *logrus.Logger
}

// NewRetriever embeds every rule of the knowledge base with the given creator
// and builds the similarity index over the result.
func NewRetriever(
	ctx context.Context,
	creator embedding.Creator,
	base knowledge.Base,
	logger *logrus.Logger,
) (*Retriever, error) {
	if base.Len() == 0 {
		return nil, ErrEmptyKnowledgeBase
	}

	embeddings, err := creator.GenerateBatch(ctx, base.Rules())
	if err != nil {
		return nil, fmt.Errorf("embedding knowledge base: %w", err)
	}

	vectors := make([][]float64, len(embeddings))
	for i, e := range embeddings {
		vectors[i] = e.Value
	}
	idx, err := index.NewFlat(vectors)
	if err != nil {
		return nil, fmt.Errorf("building knowledge index: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"rules":     base.Len(),
		"dimension": idx.Dimension(),
	}).Debug("knowledge index built")

	return &Retriever{creator: creator, idx: idx, base: base, logger: logger}, nil
}

// Retrieve returns the k rules most relevant to the query, nearest first.
// k <= 0 yields an empty result; k larger than the base is clamped. An
// encoder failure propagates unchanged, there is no retry here.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]string, error) {
	if k <= 0 {
		return nil, nil
	}

	emb, err := r.creator.Generate(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	matches, err := r.idx.Search(emb.Value, k)
	if err != nil {
		return nil, fmt.Errorf("searching knowledge index: %w", err)
	}

	rules := make([]string, len(matches))
	for i, m := range matches {
		rules[i] = r.base.Rule(m.Position)
	}
	return rules, nil
}
