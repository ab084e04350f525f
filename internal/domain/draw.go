package domain

import (
	"fmt"
	"net/url"
)

// DrawCards draws n unique cards from the catalog using the provided RNG.
// The draw is a uniform shuffle of the full catalog, independent of which
// face-down slots the user clicked: the clicked indices only complete the
// selection ritual, never which cards appear.
func DrawCards(cards []Card, n int, rng RNG) ([]Card, error) {
	if n < 1 || n > 10 {
		return nil, ErrInvalidCount
	}
	if n > len(cards) {
		return nil, fmt.Errorf("%w: need %d of %d", ErrInsufficientCatalog, n, len(cards))
	}

	// Fisher-Yates shuffle of index positions; only the first n are used.
	indices := make([]int, len(cards))
	for i := range indices {
		indices[i] = i
	}
	for i := len(indices) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		indices[i], indices[j] = indices[j], indices[i]
	}

	drawn := make([]Card, n)
	for i := range n {
		drawn[i] = cards[indices[i]]
	}
	return drawn, nil
}

// PlaceholderArtwork returns a deterministic seeded placeholder image URL,
// used whenever artwork generation fails or no image backend is configured.
func PlaceholderArtwork(seed string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/400/700", url.PathEscape(seed))
}

// FallbackOutcome is the fixed outcome narrative substituted when the
// narrative call fails.
func FallbackOutcome(lang string) string {
	if lang == "ru" {
		return "Космос временно недоступен. Карты сохраняют своё значение — доверьтесь их исконному смыслу."
	}
	return "The cosmos is temporarily silent. The cards keep their meaning; trust their original sense."
}
