package wizard

import (
	"encoding/json"
	"sync"

	"github.com/kolombo420/tarot/internal/domain"
)

// HistoryLimit caps the history log; the oldest record is evicted first.
const HistoryLimit = 30

// HistoryLog is a bounded, goroutine-safe log of past readings, newest last.
type HistoryLog struct {
	mu      sync.Mutex
	records []domain.HistoryRecord
}

func NewHistoryLog() *HistoryLog {
	return &HistoryLog{}
}

// Append adds a record, evicting the oldest when the log is full.
func (l *HistoryLog) Append(r domain.HistoryRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, r)
	if len(l.records) > HistoryLimit {
		l.records = l.records[len(l.records)-HistoryLimit:]
	}
}

// Records returns the log in insertion order (oldest first).
func (l *HistoryLog) Records() []domain.HistoryRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.HistoryRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records.
func (l *HistoryLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Snapshot serializes the log for the profile store.
func (l *HistoryLog) Snapshot() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return json.Marshal(l.records)
}

// Restore replaces the log contents from a snapshot, re-applying the bound
// in case the stored blob predates a smaller limit.
func (l *HistoryLog) Restore(data []byte) error {
	var records []domain.HistoryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	if len(records) > HistoryLimit {
		records = records[len(records)-HistoryLimit:]
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = records
	return nil
}
