package processor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTransformer struct {
	out    string
	err    error
	calls  int
	gotMax int
	gotMin int
}

func (s *stubTransformer) Transform(_ context.Context, _ string, maxLength, minLength int) (string, error) {
	s.calls++
	s.gotMax = maxLength
	s.gotMin = minLength
	return s.out, s.err
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestGrammarFixerLengthPolicy(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMax int
	}{
		{"ten words", words(10), 12},
		{"hundred words", words(100), 120},
		{"thousand words caps at ceiling", words(1000), 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transformer := &stubTransformer{out: "fixed"}
			p := NewGrammarFixer(transformer)

			out, err := p.Process(context.Background(), tt.input)
			require.NoError(t, err)

			assert.Equal(t, "fixed", out)
			assert.Equal(t, tt.wantMax, transformer.gotMax)
		})
	}
}

func TestSummarizerShortInputReturnedUnchanged(t *testing.T) {
	transformer := &stubTransformer{out: "never used"}
	p := NewSummarizer(transformer)

	input := "nineteen chars !!!!" // 19 characters
	require.Len(t, input, 19)

	out, err := p.Process(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, input, out)
	assert.Equal(t, 0, transformer.calls)
}

func TestSummarizerLengthPolicy(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMax int
	}{
		{"small input floors at 30", words(10), 30},
		{"hundred words", words(100), 50},
		{"thousand words caps at ceiling", words(1000), 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transformer := &stubTransformer{out: "summary"}
			p := NewSummarizer(transformer)

			out, err := p.Process(context.Background(), tt.input)
			require.NoError(t, err)

			assert.Equal(t, "summary", out)
			assert.Equal(t, tt.wantMax, transformer.gotMax)
			assert.Equal(t, summaryMinLength, transformer.gotMin)
		})
	}
}

func TestLocalProcessorsPropagateTransformErrors(t *testing.T) {
	transformErr := errors.New("model not loaded")

	_, err := NewGrammarFixer(&stubTransformer{err: transformErr}).Process(context.Background(), words(10))
	assert.ErrorIs(t, err, transformErr)

	_, err = NewSummarizer(&stubTransformer{err: transformErr}).Process(context.Background(), words(10))
	assert.ErrorIs(t, err, transformErr)
}

func TestLocalProcessorNames(t *testing.T) {
	assert.Equal(t, "grammar-fixer", NewGrammarFixer(&stubTransformer{}).Name())
	assert.Equal(t, "summarizer", NewSummarizer(&stubTransformer{}).Name())
}
