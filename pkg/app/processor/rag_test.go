package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/proseward/proseward/pkg/app/completion"
	"github.com/proseward/proseward/pkg/app/prompt"
	"github.com/proseward/proseward/pkg/infra/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRetriever struct {
	rules []string
	err   error
	gotK  int
}

func (s *stubRetriever) Retrieve(_ context.Context, _ string, k int) ([]string, error) {
	s.gotK = k
	return s.rules, s.err
}

type stubCaller struct {
	text     string
	err      error
	calls    int
	messages []providers.Message
}

func (s *stubCaller) Call(_ context.Context, messages []providers.Message, correlation any) (completion.Result, error) {
	s.calls++
	s.messages = messages
	if s.err != nil {
		return completion.Result{}, s.err
	}
	return completion.Result{Text: s.text, Correlation: correlation}, nil
}

func TestStyleCheckerBuildsPromptFromRetrievedRules(t *testing.T) {
	retriever := &stubRetriever{rules: []string{"rule one", "rule two"}}
	caller := &stubCaller{text: "  improved text  \n"}

	p := NewStyleChecker(retriever, caller)
	out, err := p.Process(context.Background(), "some input")
	require.NoError(t, err)

	assert.Equal(t, "improved text", out, "result must be trimmed")
	assert.Equal(t, 2, retriever.gotK)

	require.Len(t, caller.messages, 1)
	msg := caller.messages[0]
	assert.Equal(t, providers.RoleSystem, msg.Role)
	assert.Equal(t, prompt.StyleImprovement("some input", retriever.rules), msg.Content)
}

func TestGrammarCheckerBuildsGrammarPrompt(t *testing.T) {
	retriever := &stubRetriever{rules: []string{"a rule"}}
	caller := &stubCaller{text: "corrected"}

	p := NewGrammarChecker(retriever, caller)
	_, err := p.Process(context.Background(), "input text")
	require.NoError(t, err)

	require.Len(t, caller.messages, 1)
	assert.Equal(t, prompt.GrammarCorrection("input text", retriever.rules), caller.messages[0].Content)
}

func TestRAGCheckerTopKOverride(t *testing.T) {
	retriever := &stubRetriever{rules: []string{"r"}}
	caller := &stubCaller{text: "out"}

	p := NewStyleChecker(retriever, caller, WithTopK(5))
	_, err := p.Process(context.Background(), "input")
	require.NoError(t, err)
	assert.Equal(t, 5, retriever.gotK)
}

func TestRAGCheckerRetrievalFailureAborts(t *testing.T) {
	retrieveErr := errors.New("index unavailable")
	retriever := &stubRetriever{err: retrieveErr}
	caller := &stubCaller{text: "never"}

	p := NewGrammarChecker(retriever, caller)
	_, err := p.Process(context.Background(), "input")

	assert.ErrorIs(t, err, retrieveErr)
	assert.Equal(t, 0, caller.calls)
}

func TestRAGCheckerCallerFailurePropagates(t *testing.T) {
	callErr := errors.New("model unavailable")
	retriever := &stubRetriever{rules: []string{"r"}}
	caller := &stubCaller{err: callErr}

	p := NewStyleChecker(retriever, caller)
	_, err := p.Process(context.Background(), "input")
	assert.ErrorIs(t, err, callErr)
}

func TestProcessorNames(t *testing.T) {
	retriever := &stubRetriever{}
	caller := &stubCaller{}

	assert.Equal(t, "style-checker", NewStyleChecker(retriever, caller).Name())
	assert.Equal(t, "grammar-checker", NewGrammarChecker(retriever, caller).Name())
}
