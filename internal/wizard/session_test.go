package wizard_test

import (
	"testing"

	"github.com/kolombo420/tarot/internal/domain"
	"github.com/kolombo420/tarot/internal/wizard"
)

func startGeneration(t *testing.T, s *wizard.Session) wizard.ApplyResult {
	t.Helper()
	events := []wizard.Event{
		wizard.SelectCategory{Category: domain.CategoryHex},
		wizard.Configure{ReadingTypeID: "h1"},
	}
	for _, e := range events {
		if _, err := s.Apply(e); err != nil {
			t.Fatalf("setup %T: %v", e, err)
		}
	}
	res, err := s.Apply(wizard.PickSlot{Index: 0})
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if !res.GenerationStarted {
		t.Fatal("final pick did not start generation")
	}
	return res
}

func TestSession_GenerationEpochIncrements(t *testing.T) {
	s := wizard.NewSession("s1", "en")

	first := startGeneration(t, s)
	if first.Epoch != 1 {
		t.Fatalf("expected epoch 1, got %d", first.Epoch)
	}

	if _, err := s.Apply(wizard.Reset{}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	second := startGeneration(t, s)
	if second.Epoch != 2 {
		t.Fatalf("expected epoch 2, got %d", second.Epoch)
	}
}

func TestSession_LateResultDiscardedAfterBack(t *testing.T) {
	s := wizard.NewSession("s1", "en")
	res := startGeneration(t, s)

	if _, err := s.Apply(wizard.Back{}); err != nil {
		t.Fatalf("back: %v", err)
	}

	st, applied := s.CompleteGeneration(res.Epoch, wizard.GenerationSucceeded{Reading: testReading(1)})
	if applied {
		t.Fatal("late result applied after back")
	}
	if st.Phase != wizard.PhaseSelectItems {
		t.Errorf("phase disturbed by late result: %s", st.Phase)
	}
	if st.Reading != nil {
		t.Error("abandoned reading attached to session")
	}
}

func TestSession_LateResultDiscardedAfterRestart(t *testing.T) {
	s := wizard.NewSession("s1", "en")
	stale := startGeneration(t, s)

	if _, err := s.Apply(wizard.Reset{}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	fresh := startGeneration(t, s)

	if _, applied := s.CompleteGeneration(stale.Epoch, wizard.GenerationSucceeded{Reading: testReading(1)}); applied {
		t.Fatal("stale-epoch result applied to a newer generation")
	}

	st, applied := s.CompleteGeneration(fresh.Epoch, wizard.GenerationSucceeded{Reading: testReading(1)})
	if !applied {
		t.Fatal("current-epoch result rejected")
	}
	if st.Phase != wizard.PhaseResult {
		t.Errorf("expected RESULT, got %s", st.Phase)
	}
}

func TestSession_GenerationFailureEntersError(t *testing.T) {
	s := wizard.NewSession("s1", "en")
	res := startGeneration(t, s)

	st, applied := s.CompleteGeneration(res.Epoch, wizard.GenerationFailed{Message: "ritual collapsed"})
	if !applied {
		t.Fatal("failure outcome rejected")
	}
	if st.Phase != wizard.PhaseError {
		t.Errorf("expected ERROR, got %s", st.Phase)
	}
	if st.ErrMessage != "ritual collapsed" {
		t.Errorf("unexpected error message: %q", st.ErrMessage)
	}
}
