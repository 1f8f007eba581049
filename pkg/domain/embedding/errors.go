package embedding

import "errors"

var (
	ErrProviderNonOKResponse = errors.New("embeddings provider returned non-OK response")
	ErrEmptyEmbedding        = errors.New("empty embedding received from provider")
	ErrDimensionMismatch     = errors.New("embedding dimension mismatch")
)
