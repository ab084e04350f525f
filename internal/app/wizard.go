package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/kolombo420/tarot/internal/domain"
	"github.com/kolombo420/tarot/internal/ports"
	"github.com/kolombo420/tarot/internal/wizard"
)

const historyKey = "history_v1"

// readingGenerator is satisfied by ReadingService.
type readingGenerator interface {
	Generate(ctx context.Context, req domain.ReadingRequest) (*domain.Reading, error)
}

// WizardService owns the wizard sessions. It feeds user actions through the
// state machine, starts exactly one generation when a selection completes,
// discards late generation results by epoch, and maintains the bounded
// reading history with a best-effort profile snapshot.
type WizardService struct {
	gen     readingGenerator
	history *wizard.HistoryLog
	profile ports.ProfileStore
	logger  *slog.Logger
	lang    string

	mu       sync.Mutex
	sessions map[string]*wizard.Session
}

func NewWizardService(gen readingGenerator, profile ports.ProfileStore, logger *slog.Logger, lang string) *WizardService {
	return &WizardService{
		gen:      gen,
		history:  wizard.NewHistoryLog(),
		profile:  profile,
		logger:   logger,
		lang:     lang,
		sessions: make(map[string]*wizard.Session),
	}
}

// CreateSession mints a new session in the initial phase.
func (w *WizardService) CreateSession() *wizard.Session {
	sess := wizard.NewSession(uuid.NewString(), w.lang)
	w.mu.Lock()
	w.sessions[sess.ID()] = sess
	w.mu.Unlock()
	return sess
}

// Session looks up an existing session.
func (w *WizardService) Session(id string) (*wizard.Session, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	sess, ok := w.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// Apply routes one event into a session. When the event completes the
// selection, the resulting generation runs in the background; the caller
// observes progress by polling the session state.
func (w *WizardService) Apply(sessionID string, e wizard.Event) (wizard.State, error) {
	sess, err := w.Session(sessionID)
	if err != nil {
		return wizard.State{}, err
	}

	res, err := sess.Apply(e)
	if err != nil {
		return res.State, err
	}
	if res.GenerationStarted {
		go w.runGeneration(sess, res.Epoch, res.State.Request)
	}
	return res.State, nil
}

// runGeneration is detached from the triggering HTTP request: the wizard
// keeps loading until the reading settles even if the client disconnects.
func (w *WizardService) runGeneration(sess *wizard.Session, epoch uint64, req domain.ReadingRequest) {
	ctx := context.Background()

	reading, err := w.gen.Generate(ctx, req)
	if err != nil {
		w.logger.Error("generation failed", "session", sess.ID(), "error", err)
		sess.CompleteGeneration(epoch, wizard.GenerationFailed{Message: fatalMessage(req.Lang)})
		return
	}

	if _, applied := sess.CompleteGeneration(epoch, wizard.GenerationSucceeded{Reading: reading}); !applied {
		w.logger.Info("discarding late reading for abandoned request",
			"session", sess.ID(), "epoch", epoch, "reading", reading.ID)
		return
	}
	w.recordHistory(ctx, reading)
}

func (w *WizardService) recordHistory(ctx context.Context, reading *domain.Reading) {
	thumbs := make([]string, len(reading.Cards))
	for i, c := range reading.Cards {
		thumbs[i] = c.ArtworkRef
	}
	w.history.Append(domain.HistoryRecord{
		ID:         reading.ID,
		CreatedAt:  reading.CreatedAt,
		Category:   reading.Category,
		Title:      reading.Title,
		Outcome:    reading.Outcome,
		Thumbnails: thumbs,
	})

	blob, err := w.history.Snapshot()
	if err != nil {
		w.logger.Warn("history snapshot failed", "error", err)
		return
	}
	if err := w.profile.Set(ctx, historyKey, blob); err != nil {
		w.logger.Warn("history persist failed", "error", err)
	}
}

// History returns past readings, oldest first.
func (w *WizardService) History() []domain.HistoryRecord {
	return w.history.Records()
}

// LoadHistory restores the history log from the profile store. An absent key
// is a first run; any store failure is logged and ignored.
func (w *WizardService) LoadHistory(ctx context.Context) {
	blob, err := w.profile.Get(ctx, historyKey)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			w.logger.Warn("history load failed", "error", err)
		}
		return
	}
	if err := w.history.Restore(blob); err != nil {
		w.logger.Warn("history snapshot unreadable, starting fresh", "error", err)
	}
}

func fatalMessage(lang string) string {
	if lang == "ru" {
		return "Ритуал не удалось начать. Звёзды не сошлись — попробуйте с начала."
	}
	return "The ritual could not begin. The stars are misaligned; start over."
}
