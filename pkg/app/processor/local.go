package processor

import (
	"context"
	"fmt"
	"strings"
)

const (
	// maxTransformLength caps every requested output length.
	maxTransformLength = 500

	// summaryFloor is the smallest output length requested from the
	// summarization model.
	summaryFloor = 30

	// summaryMinLength is passed to the transform as its lower output bound.
	summaryMinLength = 10

	// minSummarizeChars: inputs shorter than this are returned unchanged,
	// there is nothing worth summarizing.
	minSummarizeChars = 20
)

// grammarFixer delegates to a local grammar-correction model. Only the
// length-capping policy lives here: the requested output length grows
// proportionally with the input (1.2x its word count) up to the cap.
type grammarFixer struct {
	transformer Transformer
}

func NewGrammarFixer(transformer Transformer) Processor {
	return &grammarFixer{transformer: transformer}
}

func (p *grammarFixer) Name() string { return "grammar-fixer" }

func (p *grammarFixer) Process(ctx context.Context, text string) (string, error) {
	words := len(strings.Fields(text))
	maxLength := int(float64(words) * 1.2)
	if maxLength > maxTransformLength {
		maxLength = maxTransformLength
	}

	out, err := p.transformer.Transform(ctx, text, maxLength, 1)
	if err != nil {
		return "", fmt.Errorf("grammar-fixer: %w", err)
	}
	return out, nil
}

// summarizer delegates to a local summarization model, requesting a summary
// around half the input's word count, floored at summaryFloor and capped at
// maxTransformLength. Very short inputs are returned unchanged.
type summarizer struct {
	transformer Transformer
}

func NewSummarizer(transformer Transformer) Processor {
	return &summarizer{transformer: transformer}
}

func (p *summarizer) Name() string { return "summarizer" }

func (p *summarizer) Process(ctx context.Context, text string) (string, error) {
	if len(text) < minSummarizeChars {
		return text, nil
	}

	words := len(strings.Fields(text))
	maxLength := words / 2
	if maxLength < summaryFloor {
		maxLength = summaryFloor
	}
	if maxLength > maxTransformLength {
		maxLength = maxTransformLength
	}

	out, err := p.transformer.Transform(ctx, text, maxLength, summaryMinLength)
	if err != nil {
		return "", fmt.Errorf("summarizer: %w", err)
	}
	return out, nil
}
