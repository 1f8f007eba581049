package retrieval

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/proseward/proseward/pkg/domain/embedding"
	"github.com/proseward/proseward/pkg/domain/knowledge"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCreator is a deterministic encoder: each known text maps to a fixed
// vector, everything else to the zero vector.
type stubCreator struct {
	vectors map[string][]float64
	dim     int
	err     error
}

func (s *stubCreator) Generate(_ context.Context, text string) (*embedding.Embedding, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &embedding.Embedding{Value: s.vector(text), CreatedAt: time.Now()}, nil
}

func (s *stubCreator) GenerateBatch(_ context.Context, texts []string) ([]*embedding.Embedding, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*embedding.Embedding, len(texts))
	for i, t := range texts {
		out[i] = &embedding.Embedding{Value: s.vector(t), CreatedAt: time.Now()}
	}
	return out, nil
}

func (s *stubCreator) vector(text string) []float64 {
	if v, ok := s.vectors[text]; ok {
		cp := make([]float64, len(v))
		copy(cp, v)
		return cp
	}
	return make([]float64, s.dim)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	return logger
}

func newTestRetriever(t *testing.T) *Retriever {
	t.Helper()
	creator := &stubCreator{
		dim: 2,
		vectors: map[string][]float64{
			"rule a": {0, 1},
			"rule b": {1, 0},
			"rule c": {5, 5},
			"near b": {0.9, 0},
		},
	}
	base := knowledge.NewBase([]string{"rule a", "rule b", "rule c"})
	r, err := NewRetriever(context.Background(), creator, base, testLogger())
	require.NoError(t, err)
	return r
}

func TestRetrieveOrdersByDistance(t *testing.T) {
	r := newTestRetriever(t)

	rules, err := r.Retrieve(context.Background(), "near b", 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"rule b", "rule a"}, rules)
}

func TestRetrieveClampsAndCounts(t *testing.T) {
	r := newTestRetriever(t)

	for _, k := range []int{1, 2, 3, 10} {
		rules, err := r.Retrieve(context.Background(), "near b", k)
		require.NoError(t, err)

		want := k
		if want > 3 {
			want = 3
		}
		assert.Len(t, rules, want, "k=%d", k)

		seen := map[string]bool{}
		for _, rule := range rules {
			assert.False(t, seen[rule], "duplicate rule for k=%d", k)
			seen[rule] = true
		}
	}
}

func TestRetrieveKNonPositive(t *testing.T) {
	r := newTestRetriever(t)

	rules, err := r.Retrieve(context.Background(), "anything", 0)
	require.NoError(t, err)
	assert.Empty(t, rules)

	rules, err = r.Retrieve(context.Background(), "anything", -1)
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestRetrieveDeterministic(t *testing.T) {
	r := newTestRetriever(t)

	first, err := r.Retrieve(context.Background(), "near b", 2)
	require.NoError(t, err)
	second, err := r.Retrieve(context.Background(), "near b", 2)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRetrieveEncoderFailurePropagates(t *testing.T) {
	creator := &stubCreator{dim: 2, vectors: map[string][]float64{}}
	base := knowledge.NewBase([]string{"rule a"})
	r, err := NewRetriever(context.Background(), creator, base, testLogger())
	require.NoError(t, err)

	encodeErr := errors.New("encoder down")
	creator.err = encodeErr

	_, err = r.Retrieve(context.Background(), "query", 1)
	assert.ErrorIs(t, err, encodeErr)
}

func TestNewRetrieverRejectsEmptyBase(t *testing.T) {
	creator := &stubCreator{dim: 2}
	_, err := NewRetriever(context.Background(), creator, knowledge.NewBase(nil), testLogger())
	assert.ErrorIs(t, err, ErrEmptyKnowledgeBase)
}

func TestNewRetrieverEmbedFailure(t *testing.T) {
	batchErr := errors.New("batch embed failed")
	creator := &stubCreator{dim: 2, err: batchErr}
	_, err := NewRetriever(context.Background(), creator, knowledge.DefaultBase(), testLogger())
	assert.ErrorIs(t, err, batchErr)
}
