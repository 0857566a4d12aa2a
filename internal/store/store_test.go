package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.db

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSchemaCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{"kv", "attempts"} {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.KV().Put(ctx, "k", "v"); err != nil {
		t.Fatalf("put: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.KV().Get(ctx, "k")
	if err != nil || got != "v" {
		t.Fatalf("get after reopen = %q, %v", got, err)
	}
}

func TestKVRoundTrip(t *testing.T) {
	kv := openTestStore(t).KV()
	ctx := context.Background()

	if _, err := kv.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := kv.Put(ctx, "profile", `{"xp":10}`); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := kv.Put(ctx, "profile", `{"xp":20}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := kv.Get(ctx, "profile")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != `{"xp":20}` {
		t.Errorf("value = %q, want overwritten value", got)
	}

	if err := kv.Delete(ctx, "profile"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := kv.Delete(ctx, "profile"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if _, err := kv.Get(ctx, "profile"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestAttemptsAppendAndQuery(t *testing.T) {
	repo := openTestStore(t).Attempts()
	ctx := context.Background()

	var seqs []int64
	for i, correct := range []bool{true, false, true} {
		seq, err := repo.Append(ctx, AttemptData{
			Topic:    "flaw",
			Question: "Q",
			Picked:   "C",
			Answer:   "C",
			Correct:  correct,
			Source:   "offline",
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}
	for i := 1; i < len(seqs); i++ {
		if seqs[i] <= seqs[i-1] {
			t.Fatalf("sequence not increasing: %v", seqs)
		}
	}

	all, err := repo.Query(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d attempts, want 3", len(all))
	}
	if all[0].Sequence != seqs[2] {
		t.Errorf("expected newest first, got sequence %d", all[0].Sequence)
	}
	if all[0].Topic != "flaw" || all[0].Source != "offline" || !all[0].Correct {
		t.Errorf("unexpected record: %+v", all[0])
	}
	if all[0].Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	limited, err := repo.Query(ctx, QueryOpts{Limit: 1, Before: seqs[2]})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].Sequence != seqs[1] {
		t.Fatalf("unexpected limited result: %+v", limited)
	}

	after, err := repo.Query(ctx, QueryOpts{After: seqs[0]})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 2 {
		t.Fatalf("got %d attempts after first, want 2", len(after))
	}

	future, err := repo.Query(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("query future: %v", err)
	}
	if len(future) != 0 {
		t.Fatalf("expected no attempts in the future, got %d", len(future))
	}
}

func TestAttemptsQueryByTopicAndCorrectness(t *testing.T) {
	repo := openTestStore(t).Attempts()
	ctx := context.Background()

	for _, a := range []AttemptData{
		{Topic: "flaw", Picked: "A", Answer: "A", Correct: true},
		{Topic: "flaw", Picked: "B", Answer: "A", Correct: false},
		{Topic: "assumption", Picked: "C", Answer: "D", Correct: false},
		{Topic: "flaw", Picked: "E", Answer: "A", Correct: false},
	} {
		a.Question, a.Source = "Q", "offline"
		if _, err := repo.Append(ctx, a); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	yes, no := true, false
	tests := []struct {
		name string
		opts QueryOpts
		want int
	}{
		{"topic only", QueryOpts{Topic: "flaw"}, 3},
		{"unknown topic", QueryOpts{Topic: "parallel"}, 0},
		{"wrong only", QueryOpts{Correct: &no}, 3},
		{"correct only", QueryOpts{Correct: &yes}, 1},
		{"wrong flaw answers", QueryOpts{Topic: "flaw", Correct: &no}, 2},
		{"wrong flaw answers limited", QueryOpts{Topic: "flaw", Correct: &no, Limit: 1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Query(ctx, tt.opts)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("got %d attempts, want %d", len(got), tt.want)
			}
			for _, r := range got {
				if tt.opts.Topic != "" && r.Topic != tt.opts.Topic {
					t.Errorf("topic filter leaked %+v", r)
				}
				if tt.opts.Correct != nil && r.Correct != *tt.opts.Correct {
					t.Errorf("correctness filter leaked %+v", r)
				}
			}
		})
	}
}

func TestAttemptStats(t *testing.T) {
	repo := openTestStore(t).Attempts()
	ctx := context.Background()

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("stats (empty): %v", err)
	}
	if stats.Total != 0 || stats.Accuracy() != 0 {
		t.Fatalf("unexpected empty stats: %+v", stats)
	}

	for _, correct := range []bool{true, true, false, true} {
		if _, err := repo.Append(ctx, AttemptData{Correct: correct}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	stats, err = repo.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 4 || stats.Correct != 3 {
		t.Fatalf("stats = %+v, want 3/4", stats)
	}
	if stats.Accuracy() != 0.75 {
		t.Errorf("accuracy = %v, want 0.75", stats.Accuracy())
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if stats, _ = repo.Stats(ctx); stats.Total != 0 {
		t.Errorf("expected empty log after clear, got %d", stats.Total)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("LSAT_DB", filepath.Join(dir, "custom", "p.db"))
	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if p != filepath.Join(dir, "custom", "p.db") {
		t.Errorf("path = %q, want LSAT_DB value", p)
	}
	if _, err := os.Stat(filepath.Join(dir, "custom")); err != nil {
		t.Errorf("expected parent dir to be created: %v", err)
	}

	t.Setenv("LSAT_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if p != filepath.Join(dir, "lsatarcade", "lsatarcade.db") {
		t.Errorf("path = %q, want XDG location", p)
	}
}
