// Package placeholder provides a no-network artwork generator for running
// without an image provider configured.
package placeholder

import (
	"context"

	"github.com/kolombo420/tarot/internal/domain"
	"github.com/kolombo420/tarot/internal/ports"
)

// ArtworkGenerator returns deterministic stock image URLs instead of
// calling an image model.
type ArtworkGenerator struct{}

func NewArtworkGenerator() *ArtworkGenerator {
	return &ArtworkGenerator{}
}

func (g *ArtworkGenerator) GenerateArtwork(_ context.Context, in ports.ArtworkInput) (string, error) {
	return domain.PlaceholderArtwork(in.CardName), nil
}
