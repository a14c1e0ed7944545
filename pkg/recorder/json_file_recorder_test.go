package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"upflow/internal/model"
)

func TestRecordAndReadRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "executions.json")
	rec := NewJSONFileRecorder(path)

	for _, id := range []string{"1", "2", "3"} {
		err := rec.Record(&model.ExecutionRecord{
			ID:        id,
			Market:    "KRW-ETH",
			Action:    "BUY",
			Timestamp: time.Now(),
			ExecutionResult: model.ExecutionResult{
				Success: true,
				OrderID: "order-" + id,
			},
		})
		if err != nil {
			t.Fatalf("Record() error: %v", err)
		}
	}

	records, err := rec.ReadRecent(2)
	if err != nil {
		t.Fatalf("ReadRecent() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	// 新的在前
	if records[0].ID != "3" || records[1].ID != "2" {
		t.Fatalf("order = %s,%s, want 3,2", records[0].ID, records[1].ID)
	}
	if records[0].OrderID != "order-3" {
		t.Fatalf("order id = %s, want order-3", records[0].OrderID)
	}
}

func TestReadRecentMissingFile(t *testing.T) {
	rec := NewJSONFileRecorder(filepath.Join(t.TempDir(), "absent.json"))
	records, err := rec.ReadRecent(10)
	if err != nil {
		t.Fatalf("ReadRecent() error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("len = %d, want 0", len(records))
	}
}
