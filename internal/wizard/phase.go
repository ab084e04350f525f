// Package wizard implements the reading wizard as a pure state machine:
// every user action is an Event, and Transition maps (State, Event) to the
// next State without side effects. Session wraps a State for concurrent use
// and guards in-flight generation with an epoch counter.
package wizard

import (
	"fmt"

	"github.com/kolombo420/tarot/internal/domain"
)

// Phase is the active wizard screen.
type Phase string

const (
	PhaseCategorySelect Phase = "CATEGORY_SELECT"
	PhaseStyleSelect    Phase = "STYLE_SELECT"
	PhaseConfig         Phase = "CONFIG"
	PhaseSelectItems    Phase = "SELECT_ITEMS"
	PhaseGenerating     Phase = "GENERATING"
	PhaseResult         Phase = "RESULT"
	PhaseError          Phase = "ERROR"
	PhaseHistory        Phase = "HISTORY"
)

// State is the complete wizard state. It is a value: transitions return a
// new State and never mutate their input.
type State struct {
	Phase     Phase
	Request   domain.ReadingRequest
	Selection domain.SelectionTracker
	Reading   *domain.Reading
	// ErrMessage is the user-facing error shown in the ERROR phase.
	ErrMessage string
	Loading    bool
}

// Initial returns the wizard's starting state.
func Initial(lang string) State {
	return State{
		Phase:   PhaseCategorySelect,
		Request: domain.ReadingRequest{Lang: lang},
	}
}

// Event is a user action or generation outcome fed into Transition.
type Event interface{ isEvent() }

// SelectCategory chooses the ritual category.
type SelectCategory struct{ Category domain.Category }

// SelectStyle chooses a deck style (TAROT only).
type SelectStyle struct{ StyleID string }

// Configure finalizes the reading type and optional personalization.
// A nil Tuning means the user skipped the tuning screen.
type Configure struct {
	ReadingTypeID string
	Tuning        domain.Personalization
}

// PickSlot clicks one face-down card slot.
type PickSlot struct{ Index int }

// GenerationSucceeded delivers the finished reading.
type GenerationSucceeded struct{ Reading *domain.Reading }

// GenerationFailed reports a fatal pre-flight generation failure.
type GenerationFailed struct{ Message string }

// RevealCard flips one result card face up.
type RevealCard struct{ Index int }

// Back navigates to the phase's predecessor.
type Back struct{}

// Reset returns to the initial state, discarding the session's request and
// result.
type Reset struct{}

// OpenHistory shows past readings; only reachable from category selection.
type OpenHistory struct{}

// CloseHistory returns from the history screen.
type CloseHistory struct{}

// AckError acknowledges a fatal error and restarts the wizard.
type AckError struct{}

func (SelectCategory) isEvent()      {}
func (SelectStyle) isEvent()         {}
func (Configure) isEvent()           {}
func (PickSlot) isEvent()            {}
func (GenerationSucceeded) isEvent() {}
func (GenerationFailed) isEvent()    {}
func (RevealCard) isEvent()          {}
func (Back) isEvent()                {}
func (Reset) isEvent()               {}
func (OpenHistory) isEvent()         {}
func (CloseHistory) isEvent()        {}
func (AckError) isEvent()            {}

// Transition applies an event to a state. Rejected picks and reveals are
// silent no-ops per the selection contract; everything else that does not
// fit the phase graph returns domain.ErrInvalidTransition.
//
// Loading is true exactly while the phase is GENERATING.
func Transition(s State, e Event) (State, error) {
	switch ev := e.(type) {
	case Reset:
		return Initial(s.Request.Lang), nil

	case SelectCategory:
		if s.Phase != PhaseCategorySelect {
			return s, invalid(s.Phase, "select category")
		}
		info, ok := domain.CategoryByID(ev.Category)
		if !ok {
			return s, domain.ErrUnknownCategory
		}
		next := Initial(s.Request.Lang)
		next.Request.Category = ev.Category
		if info.HasStyles {
			next.Phase = PhaseStyleSelect
		} else {
			next.Phase = PhaseConfig
		}
		return next, nil

	case SelectStyle:
		if s.Phase != PhaseStyleSelect {
			return s, invalid(s.Phase, "select style")
		}
		style, ok := domain.DeckStyleByID(ev.StyleID)
		if !ok {
			return s, domain.ErrUnknownStyle
		}
		s.Request.Style = &style
		s.Phase = PhaseConfig
		return s, nil

	case Configure:
		if s.Phase != PhaseConfig {
			return s, invalid(s.Phase, "configure")
		}
		rt, ok := domain.ReadingTypeByID(s.Request.Category, ev.ReadingTypeID)
		if !ok {
			return s, domain.ErrUnknownReadingType
		}
		if ev.Tuning != nil && ev.Tuning.Category() != s.Request.Category {
			return s, fmt.Errorf("%w: tuning variant %q does not match category %q",
				domain.ErrInvalidTransition, ev.Tuning.Category(), s.Request.Category)
		}
		s.Request.ReadingType = &rt
		s.Request.Tuning = ev.Tuning
		s.Request.PickedSlots = nil
		s.Selection = domain.NewSelectionTracker(rt.Count)
		s.Phase = PhaseSelectItems
		return s, nil

	case PickSlot:
		if s.Phase != PhaseSelectItems {
			return s, invalid(s.Phase, "pick")
		}
		updated, ok := s.Selection.Pick(ev.Index)
		if !ok {
			return s, nil
		}
		s.Selection = updated
		s.Request.PickedSlots = updated.Picked()
		if updated.Complete() {
			s.Phase = PhaseGenerating
			s.Loading = true
		}
		return s, nil

	case GenerationSucceeded:
		if s.Phase != PhaseGenerating {
			return s, invalid(s.Phase, "generation succeeded")
		}
		s.Phase = PhaseResult
		s.Loading = false
		s.Reading = ev.Reading
		return s, nil

	case GenerationFailed:
		if s.Phase != PhaseGenerating {
			return s, invalid(s.Phase, "generation failed")
		}
		s.Phase = PhaseError
		s.Loading = false
		s.ErrMessage = ev.Message
		s.Reading = nil
		return s, nil

	case RevealCard:
		if s.Phase != PhaseResult || s.Reading == nil {
			return s, invalid(s.Phase, "reveal")
		}
		if ev.Index < 0 || ev.Index >= len(s.Reading.Cards) {
			return s, nil
		}
		if s.Reading.Cards[ev.Index].Revealed {
			return s, nil
		}
		next := *s.Reading
		next.Cards = make([]domain.GeneratedCard, len(s.Reading.Cards))
		copy(next.Cards, s.Reading.Cards)
		next.Cards[ev.Index].Revealed = true
		s.Reading = &next
		return s, nil

	case Back:
		return back(s)

	case OpenHistory:
		if s.Phase != PhaseCategorySelect {
			return s, invalid(s.Phase, "open history")
		}
		s.Phase = PhaseHistory
		return s, nil

	case CloseHistory:
		if s.Phase != PhaseHistory {
			return s, invalid(s.Phase, "close history")
		}
		s.Phase = PhaseCategorySelect
		return s, nil

	case AckError:
		if s.Phase != PhaseError {
			return s, invalid(s.Phase, "acknowledge error")
		}
		return Initial(s.Request.Lang), nil

	default:
		return s, fmt.Errorf("%w: unknown event %T", domain.ErrInvalidTransition, e)
	}
}

// back resolves the category-dependent predecessor of the current phase.
// The predecessor of CONFIG depends on whether style selection was skipped.
func back(s State) (State, error) {
	switch s.Phase {
	case PhaseCategorySelect:
		return s, nil
	case PhaseStyleSelect:
		return Initial(s.Request.Lang), nil
	case PhaseConfig:
		if info, ok := domain.CategoryByID(s.Request.Category); ok && info.HasStyles {
			s.Phase = PhaseStyleSelect
			s.Request.Style = nil
			return s, nil
		}
		return Initial(s.Request.Lang), nil
	case PhaseSelectItems:
		s.Phase = PhaseConfig
		s.Request.ReadingType = nil
		s.Request.Tuning = nil
		s.Request.PickedSlots = nil
		s.Selection = domain.SelectionTracker{}
		return s, nil
	case PhaseGenerating, PhaseResult:
		// Leaving GENERATING abandons the in-flight request; the session
		// layer drops its late result by epoch. The selection is cleared so
		// the user picks afresh.
		s.Phase = PhaseSelectItems
		s.Loading = false
		s.Reading = nil
		s.Request.PickedSlots = nil
		s.Selection = domain.NewSelectionTracker(s.Request.ReadingType.Count)
		return s, nil
	case PhaseHistory:
		s.Phase = PhaseCategorySelect
		return s, nil
	default:
		return s, invalid(s.Phase, "back")
	}
}

func invalid(p Phase, action string) error {
	return fmt.Errorf("%w: cannot %s in phase %s", domain.ErrInvalidTransition, action, p)
}
