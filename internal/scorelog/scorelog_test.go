package scorelog_test

import (
	"path/filepath"
	"testing"

	"structeval/internal/scorelog"
	"structeval/internal/vocabstore"
)

func TestLogAndRecent(t *testing.T) {
	store, err := vocabstore.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer store.Close()

	entries := []scorelog.Entry{
		{QuestionKey: "q1", Mode: "alignment", Score: 0.42, FlagsJSON: `{"off_topic":false}`},
		{QuestionKey: "q2", Mode: "legacy", Score: 0.58, Band: "BELIEF", Notes: "Add more detail."},
		{QuestionKey: "q1", Mode: "alignment", Score: 0.97},
	}
	for _, e := range entries {
		if err := scorelog.LogVerdict(store.DB(), e); err != nil {
			t.Fatalf("LogVerdict: %v", err)
		}
	}

	all, err := scorelog.Recent(store.DB(), "", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("entries: got %d, want 3", len(all))
	}
	// Newest first.
	if all[0].Score != 0.97 {
		t.Errorf("newest score: got %v, want 0.97", all[0].Score)
	}
	if all[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not populated")
	}

	q1, err := scorelog.Recent(store.DB(), "q1", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(q1) != 2 {
		t.Errorf("q1 entries: got %d, want 2", len(q1))
	}

	limited, err := scorelog.Recent(store.DB(), "", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("limited entries: got %d, want 1", len(limited))
	}

	oldest := q1[1]
	if oldest.Band != "" || oldest.FlagsJSON != `{"off_topic":false}` {
		t.Errorf("round-trip fields: %+v", oldest)
	}
}
