package wizard_test

import (
	"fmt"
	"testing"

	"github.com/kolombo420/tarot/internal/domain"
	"github.com/kolombo420/tarot/internal/wizard"
)

func TestHistoryLog_EvictsOldestAtCapacity(t *testing.T) {
	log := wizard.NewHistoryLog()
	for i := range wizard.HistoryLimit + 1 {
		log.Append(domain.HistoryRecord{ID: fmt.Sprintf("r%d", i)})
	}

	records := log.Records()
	if len(records) != wizard.HistoryLimit {
		t.Fatalf("expected %d records, got %d", wizard.HistoryLimit, len(records))
	}
	if records[0].ID != "r1" {
		t.Errorf("oldest record not evicted, head is %s", records[0].ID)
	}
	if records[len(records)-1].ID != fmt.Sprintf("r%d", wizard.HistoryLimit) {
		t.Errorf("newest record missing, tail is %s", records[len(records)-1].ID)
	}
}

func TestHistoryLog_SnapshotRestore(t *testing.T) {
	log := wizard.NewHistoryLog()
	log.Append(domain.HistoryRecord{ID: "r1", Category: domain.CategoryTarot, Title: "Solar Transit", Outcome: "clarity"})
	log.Append(domain.HistoryRecord{ID: "r2", Category: domain.CategoryHex, Title: "Black Seal", Outcome: "warded"})

	blob, err := log.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	restored := wizard.NewHistoryLog()
	if err := restored.Restore(blob); err != nil {
		t.Fatalf("restore: %v", err)
	}
	records := restored.Records()
	if len(records) != 2 || records[0].ID != "r1" || records[1].ID != "r2" {
		t.Errorf("unexpected restored records: %+v", records)
	}
}

func TestHistoryLog_RestoreRejectsGarbage(t *testing.T) {
	log := wizard.NewHistoryLog()
	if err := log.Restore([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid snapshot")
	}
	if log.Len() != 0 {
		t.Errorf("garbage restore touched the log: %d records", log.Len())
	}
}
