package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kolombo420/tarot/internal/domain"
	"github.com/kolombo420/tarot/internal/ports"
)

// ReadingService turns a complete ReadingRequest into a Reading by fanning
// out one artwork call per drawn card plus one narrative call, all
// concurrent. Individual call failures degrade to fallback content; only a
// failure before any call is issued is fatal.
type ReadingService struct {
	catalog ports.CatalogStore
	artwork ports.ArtworkGenerator
	interp  ports.Interpreter
	rng     domain.RNG
	// timeout bounds each external call so a hung upstream can never hang
	// the reading.
	timeout time.Duration
	logger  *slog.Logger
}

func NewReadingService(cs ports.CatalogStore, art ports.ArtworkGenerator, interp ports.Interpreter, rng domain.RNG, timeout time.Duration, logger *slog.Logger) *ReadingService {
	return &ReadingService{
		catalog: cs,
		artwork: art,
		interp:  interp,
		rng:     rng,
		timeout: timeout,
		logger:  logger,
	}
}

func (s *ReadingService) Generate(ctx context.Context, req domain.ReadingRequest) (*domain.Reading, error) {
	if !req.Complete() {
		return nil, domain.ErrIncompleteRequest
	}

	catalog, err := s.catalog.GetCatalog(ctx, domain.CatalogMajorArcana)
	if err != nil {
		return nil, fmt.Errorf("get catalog: %w", err)
	}

	n := req.ReadingType.Count
	drawn, err := domain.DrawCards(catalog.Cards, n, s.rng)
	if err != nil {
		return nil, fmt.Errorf("draw cards: %w", err)
	}

	style := req.PromptStyle()
	refs := make([]string, n)
	fellBack := make([]bool, n)
	var narrative ports.NarrativeOutput
	var narrativeErr error

	g, gctx := errgroup.WithContext(ctx)
	for i, card := range drawn {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(gctx, s.timeout)
			defer cancel()
			ref, err := s.artwork.GenerateArtwork(cctx, ports.ArtworkInput{
				CardName:        card.Name,
				VisualHints:     card.VisualHints,
				StyleDescriptor: style,
			})
			if err != nil {
				s.logger.WarnContext(ctx, "artwork generation failed, using placeholder",
					"card", card.ID, "position", i+1, "error", err)
				refs[i] = domain.PlaceholderArtwork(card.ID)
				fellBack[i] = true
				return nil
			}
			refs[i] = ref
			return nil
		})
	}
	g.Go(func() error {
		cctx, cancel := context.WithTimeout(gctx, s.timeout)
		defer cancel()
		narrative, narrativeErr = s.interp.Interpret(cctx, narrativeInput(req, drawn))
		return nil
	})
	// Goroutines never return errors: each slot falls back on its own.
	_ = g.Wait()

	degraded := false
	for _, fb := range fellBack {
		degraded = degraded || fb
	}
	if narrativeErr != nil {
		s.logger.WarnContext(ctx, "narrative generation failed, using fallback",
			"category", req.Category, "error", narrativeErr)
		narrative = fallbackNarrative(req.Lang, drawn)
		degraded = true
	}

	cards := make([]domain.GeneratedCard, n)
	for i, card := range drawn {
		text := cardFallbackText(req.Lang, card)
		if i < len(narrative.Cards) && narrative.Cards[i] != "" {
			text = narrative.Cards[i]
		}
		cards[i] = domain.GeneratedCard{
			Card:           card,
			Position:       i + 1,
			ArtworkRef:     refs[i],
			Interpretation: text,
		}
	}

	return &domain.Reading{
		ID:        uuid.NewString(),
		Category:  req.Category,
		Title:     req.ReadingType.Title,
		Cards:     cards,
		Outcome:   narrative.Outcome,
		Degraded:  degraded,
		Model:     narrative.Model,
		CreatedAt: time.Now().UTC(),
		Request:   req,
	}, nil
}

func narrativeInput(req domain.ReadingRequest, drawn []domain.Card) ports.NarrativeInput {
	in := ports.NarrativeInput{
		Category:     string(req.Category),
		ReadingTitle: req.ReadingType.Title,
		Lang:         req.Lang,
		Cards:        make([]ports.CardContext, len(drawn)),
	}
	for i, c := range drawn {
		in.Cards[i] = ports.CardContext{Name: c.Name, Position: i + 1, Description: c.Description}
	}

	switch t := req.Tuning.(type) {
	case domain.TarotTuning:
		in.Spell = t.Question
	case domain.HexTuning:
		in.Spell = t.Spell
		in.Outcome = t.Outcome
	case domain.LoveTuning:
		in.Spell = t.Spell
		in.Outcome = t.Outcome
	case domain.DivinationTuning:
		in.Spell = t.Question
	}
	return in
}

func fallbackNarrative(lang string, drawn []domain.Card) ports.NarrativeOutput {
	cards := make([]string, len(drawn))
	for i, c := range drawn {
		cards[i] = cardFallbackText(lang, c)
	}
	return ports.NarrativeOutput{
		Outcome: domain.FallbackOutcome(lang),
		Cards:   cards,
	}
}

// cardFallbackText is the per-card substitute for a missing narrative
// fragment, in the request's language.
func cardFallbackText(lang string, c domain.Card) string {
	if lang == "ru" {
		return c.DescriptionRU
	}
	return c.Description
}
