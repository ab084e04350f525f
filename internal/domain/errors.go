package domain

import "errors"

var (
	ErrInvalidCount        = errors.New("card count must be between 1 and 10")
	ErrInsufficientCatalog = errors.New("card count exceeds catalog size")
	ErrCatalogNotFound     = errors.New("catalog not found")
	ErrUnknownCategory     = errors.New("unknown ritual category")
	ErrUnknownReadingType  = errors.New("unknown reading type")
	ErrUnknownStyle        = errors.New("unknown deck style")
	ErrIncompleteRequest   = errors.New("reading request is incomplete")
	ErrInvalidTransition   = errors.New("invalid wizard transition")
	ErrUpstreamLLM         = errors.New("upstream LLM failure")
	ErrInvalidLLMJSON      = errors.New("LLM returned invalid JSON after retry")
	ErrProfileNotFound     = errors.New("profile key not found")
	ErrSessionNotFound     = errors.New("session not found")
)
