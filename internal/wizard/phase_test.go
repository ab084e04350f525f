package wizard_test

import (
	"errors"
	"testing"

	"github.com/kolombo420/tarot/internal/domain"
	"github.com/kolombo420/tarot/internal/wizard"
)

func apply(t *testing.T, s wizard.State, events ...wizard.Event) wizard.State {
	t.Helper()
	for _, e := range events {
		next, err := wizard.Transition(s, e)
		if err != nil {
			t.Fatalf("transition %T from %s: %v", e, s.Phase, err)
		}
		s = next
	}
	return s
}

func testReading(n int) *domain.Reading {
	cards := make([]domain.GeneratedCard, n)
	for i := range n {
		cards[i] = domain.GeneratedCard{
			Card:           domain.Card{ID: "card_" + string(rune('a'+i))},
			Position:       i + 1,
			ArtworkRef:     "ref",
			Interpretation: "text",
		}
	}
	return &domain.Reading{ID: "r1", Cards: cards, Outcome: "outcome"}
}

func TestTransition_TarotHappyPath(t *testing.T) {
	s := wizard.Initial("en")
	if s.Phase != wizard.PhaseCategorySelect {
		t.Fatalf("initial phase: %s", s.Phase)
	}

	s = apply(t, s, wizard.SelectCategory{Category: domain.CategoryTarot})
	if s.Phase != wizard.PhaseStyleSelect {
		t.Fatalf("TAROT must offer styles, got %s", s.Phase)
	}

	s = apply(t, s,
		wizard.SelectStyle{StyleID: "MARSEILLE"},
		wizard.Configure{ReadingTypeID: "t2", Tuning: domain.TarotTuning{Question: "What lies ahead?"}},
	)
	if s.Phase != wizard.PhaseSelectItems {
		t.Fatalf("expected SELECT_ITEMS, got %s", s.Phase)
	}
	if s.Loading {
		t.Error("loading outside GENERATING")
	}

	s = apply(t, s, wizard.PickSlot{Index: 1}, wizard.PickSlot{Index: 5})
	if s.Phase != wizard.PhaseSelectItems {
		t.Fatalf("premature phase change after 2 of 3 picks: %s", s.Phase)
	}

	s = apply(t, s, wizard.PickSlot{Index: 9})
	if s.Phase != wizard.PhaseGenerating {
		t.Fatalf("third pick must start generation, got %s", s.Phase)
	}
	if !s.Loading {
		t.Error("loading must be true in GENERATING")
	}
	if got := s.Request.PickedSlots; len(got) != 3 || got[0] != 1 || got[1] != 5 || got[2] != 9 {
		t.Errorf("picked slots out of order: %v", got)
	}

	s = apply(t, s, wizard.GenerationSucceeded{Reading: testReading(3)})
	if s.Phase != wizard.PhaseResult {
		t.Fatalf("expected RESULT, got %s", s.Phase)
	}
	if s.Loading {
		t.Error("loading must clear on RESULT")
	}
	for i, c := range s.Reading.Cards {
		if c.Revealed {
			t.Errorf("card %d revealed before user action", i)
		}
	}
}

func TestTransition_HexSkipsStyleSelect(t *testing.T) {
	s := apply(t, wizard.Initial("en"), wizard.SelectCategory{Category: domain.CategoryHex})
	if s.Phase != wizard.PhaseConfig {
		t.Fatalf("HEX has no deck styles, expected CONFIG, got %s", s.Phase)
	}
}

func TestTransition_SingleCardReading(t *testing.T) {
	s := apply(t, wizard.Initial("en"),
		wizard.SelectCategory{Category: domain.CategoryDivination},
		wizard.Configure{ReadingTypeID: "d1"},
		wizard.PickSlot{Index: 7},
	)
	if s.Phase != wizard.PhaseGenerating {
		t.Fatalf("single pick must start generation for N=1, got %s", s.Phase)
	}
}

func TestTransition_DuplicatePickIsSilent(t *testing.T) {
	s := apply(t, wizard.Initial("en"),
		wizard.SelectCategory{Category: domain.CategoryHex},
		wizard.Configure{ReadingTypeID: "h2"},
		wizard.PickSlot{Index: 4},
	)

	next, err := wizard.Transition(s, wizard.PickSlot{Index: 4})
	if err != nil {
		t.Fatalf("duplicate pick must not error: %v", err)
	}
	if next.Selection.Count() != 1 {
		t.Errorf("duplicate pick changed selection length: %d", next.Selection.Count())
	}
}

func TestTransition_BackThreeTimesFromResult(t *testing.T) {
	s := apply(t, wizard.Initial("en"),
		wizard.SelectCategory{Category: domain.CategoryHex},
		wizard.Configure{ReadingTypeID: "h1"},
		wizard.PickSlot{Index: 0},
		wizard.GenerationSucceeded{Reading: testReading(1)},
	)

	s = apply(t, s, wizard.Back{}, wizard.Back{}, wizard.Back{})
	if s.Phase != wizard.PhaseCategorySelect {
		t.Fatalf("expected CATEGORY_SELECT after three backs, got %s", s.Phase)
	}
	if s.Request.Category != "" || s.Request.ReadingType != nil || s.Request.PickedSlots != nil {
		t.Errorf("reading request not cleared: %+v", s.Request)
	}
	if s.Reading != nil {
		t.Error("reading survived navigation back to start")
	}
}

func TestTransition_BackPredecessorDependsOnStyles(t *testing.T) {
	// TAROT: CONFIG's predecessor is STYLE_SELECT.
	s := apply(t, wizard.Initial("en"),
		wizard.SelectCategory{Category: domain.CategoryTarot},
		wizard.SelectStyle{StyleID: "PAPUS"},
	)
	s = apply(t, s, wizard.Back{})
	if s.Phase != wizard.PhaseStyleSelect {
		t.Errorf("expected STYLE_SELECT, got %s", s.Phase)
	}
	if s.Request.Style != nil {
		t.Error("style survived back into style selection")
	}

	// LOVE: CONFIG's predecessor is CATEGORY_SELECT.
	s = apply(t, wizard.Initial("en"), wizard.SelectCategory{Category: domain.CategoryLove})
	s = apply(t, s, wizard.Back{})
	if s.Phase != wizard.PhaseCategorySelect {
		t.Errorf("expected CATEGORY_SELECT, got %s", s.Phase)
	}
}

func TestTransition_BackDuringGenerating(t *testing.T) {
	s := apply(t, wizard.Initial("en"),
		wizard.SelectCategory{Category: domain.CategoryHex},
		wizard.Configure{ReadingTypeID: "h1"},
		wizard.PickSlot{Index: 3},
	)
	if s.Phase != wizard.PhaseGenerating {
		t.Fatalf("setup: expected GENERATING, got %s", s.Phase)
	}

	s = apply(t, s, wizard.Back{})
	if s.Phase != wizard.PhaseSelectItems {
		t.Fatalf("expected SELECT_ITEMS, got %s", s.Phase)
	}
	if s.Loading {
		t.Error("loading must clear when leaving GENERATING")
	}
	if s.Selection.Count() != 0 {
		t.Errorf("selection not cleared: %d", s.Selection.Count())
	}
}

func TestTransition_BackAtStartIsNoOp(t *testing.T) {
	s := apply(t, wizard.Initial("en"), wizard.Back{})
	if s.Phase != wizard.PhaseCategorySelect {
		t.Errorf("expected CATEGORY_SELECT, got %s", s.Phase)
	}
}

func TestTransition_ErrorAcknowledgeRestarts(t *testing.T) {
	s := apply(t, wizard.Initial("ru"),
		wizard.SelectCategory{Category: domain.CategoryHex},
		wizard.Configure{ReadingTypeID: "h1"},
		wizard.PickSlot{Index: 0},
		wizard.GenerationFailed{Message: "the void answered"},
	)
	if s.Phase != wizard.PhaseError {
		t.Fatalf("expected ERROR, got %s", s.Phase)
	}
	if s.Loading {
		t.Error("loading must clear on ERROR")
	}

	// Back is not an exit from ERROR.
	if _, err := wizard.Transition(s, wizard.Back{}); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("back from ERROR: expected ErrInvalidTransition, got %v", err)
	}

	s = apply(t, s, wizard.AckError{})
	if s.Phase != wizard.PhaseCategorySelect {
		t.Fatalf("expected CATEGORY_SELECT, got %s", s.Phase)
	}
	if s.ErrMessage != "" {
		t.Errorf("error not cleared: %q", s.ErrMessage)
	}
	if s.Request.Lang != "ru" {
		t.Errorf("language lost on restart: %q", s.Request.Lang)
	}
}

func TestTransition_ResetFromError(t *testing.T) {
	s := apply(t, wizard.Initial("en"),
		wizard.SelectCategory{Category: domain.CategoryDivination},
		wizard.Configure{ReadingTypeID: "d1"},
		wizard.PickSlot{Index: 11},
		wizard.GenerationFailed{Message: "boom"},
		wizard.Reset{},
	)
	if s.Phase != wizard.PhaseCategorySelect {
		t.Fatalf("expected CATEGORY_SELECT, got %s", s.Phase)
	}
	if s.ErrMessage != "" {
		t.Errorf("error survived reset: %q", s.ErrMessage)
	}
}

func TestTransition_RevealIsIdempotent(t *testing.T) {
	s := apply(t, wizard.Initial("en"),
		wizard.SelectCategory{Category: domain.CategoryHex},
		wizard.Configure{ReadingTypeID: "h2"},
		wizard.PickSlot{Index: 0},
		wizard.PickSlot{Index: 1},
		wizard.PickSlot{Index: 2},
		wizard.GenerationSucceeded{Reading: testReading(3)},
	)

	once := apply(t, s, wizard.RevealCard{Index: 1})
	twice := apply(t, once, wizard.RevealCard{Index: 1})

	if !once.Reading.Cards[1].Revealed {
		t.Fatal("card not revealed")
	}
	for i := range twice.Reading.Cards {
		if twice.Reading.Cards[i].Revealed != once.Reading.Cards[i].Revealed {
			t.Errorf("card %d: double reveal changed state", i)
		}
	}
	if once.Reading.Cards[0].Revealed || once.Reading.Cards[2].Revealed {
		t.Error("reveal leaked to other cards")
	}
}

func TestTransition_HistoryOnlyFromStart(t *testing.T) {
	s := apply(t, wizard.Initial("en"), wizard.OpenHistory{})
	if s.Phase != wizard.PhaseHistory {
		t.Fatalf("expected HISTORY, got %s", s.Phase)
	}
	s = apply(t, s, wizard.CloseHistory{})
	if s.Phase != wizard.PhaseCategorySelect {
		t.Fatalf("expected CATEGORY_SELECT, got %s", s.Phase)
	}

	mid := apply(t, wizard.Initial("en"), wizard.SelectCategory{Category: domain.CategoryHex})
	if _, err := wizard.Transition(mid, wizard.OpenHistory{}); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestTransition_Validation(t *testing.T) {
	s := wizard.Initial("en")

	if _, err := wizard.Transition(s, wizard.SelectCategory{Category: "RUNES"}); !errors.Is(err, domain.ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}

	s = apply(t, s, wizard.SelectCategory{Category: domain.CategoryTarot})
	if _, err := wizard.Transition(s, wizard.SelectStyle{StyleID: "RIDER"}); !errors.Is(err, domain.ErrUnknownStyle) {
		t.Errorf("expected ErrUnknownStyle, got %v", err)
	}

	s = apply(t, s, wizard.SelectStyle{StyleID: "VISCONTI"})
	if _, err := wizard.Transition(s, wizard.Configure{ReadingTypeID: "h1"}); !errors.Is(err, domain.ErrUnknownReadingType) {
		t.Errorf("reading type from another category: expected ErrUnknownReadingType, got %v", err)
	}
	if _, err := wizard.Transition(s, wizard.Configure{ReadingTypeID: "t1", Tuning: domain.HexTuning{Spell: "x"}}); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("mismatched tuning variant: expected ErrInvalidTransition, got %v", err)
	}
}
