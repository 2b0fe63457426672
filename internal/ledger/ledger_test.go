package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(context.Background(), filepath.Join(t.TempDir(), "db", "ledger.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestLedger_RunLifecycle(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t)
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	id := NewRunID()

	if err := l.StartRun(ctx, RunStart{ID: id, Seed: 42, StartedAt: start}); err != nil {
		t.Fatalf("StartRun: %v", err)
	}

	for seq := 1; seq <= 3; seq++ {
		err := l.RecordReview(ctx, ReviewRecord{
			RunID: id, Day: 1, Sequence: seq, Patient: "Lily", Condition: "Flu",
			Personality: "Calm", Medication: "Tamiflu", Stars: 3 + seq%2,
			ReviewedAt: start.Add(time.Duration(seq) * time.Minute),
		})
		if err != nil {
			t.Fatalf("RecordReview %d: %v", seq, err)
		}
	}

	runs, err := l.RecentRuns(ctx, 5)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	if runs[0].Finished() {
		t.Error("run should not be finished before EndRun")
	}
	if runs[0].Patients != 3 || runs[0].Seed != 42 {
		t.Errorf("run = %+v", runs[0])
	}

	end := RunEnd{ID: id, Verdict: "stays-open", Average: 3.67, EndedAt: start.Add(time.Hour)}
	if err := l.EndRun(ctx, end); err != nil {
		t.Fatalf("EndRun: %v", err)
	}
	runs, err = l.RecentRuns(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	r := runs[0]
	if !r.Finished() || r.Verdict != "stays-open" || r.Average != 3.67 {
		t.Errorf("finished run = %+v", r)
	}
	if !r.EndedAt.Equal(end.EndedAt) || !r.StartedAt.Equal(start) {
		t.Errorf("times = %v .. %v", r.StartedAt, r.EndedAt)
	}
}

func TestLedger_ReviewsInPlayOrder(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t)
	id := NewRunID()
	now := time.Now()
	if err := l.StartRun(ctx, RunStart{ID: id, Seed: 1, StartedAt: now}); err != nil {
		t.Fatal(err)
	}

	order := []struct{ day, seq int }{{2, 1}, {1, 2}, {1, 1}, {2, 2}}
	for _, o := range order {
		err := l.RecordReview(ctx, ReviewRecord{
			RunID: id, Day: o.day, Sequence: o.seq, Patient: "Noah", Condition: "Sepsis",
			Personality: "Impatient", Medication: "none", TimedOut: true, Stars: 1,
			ReviewedAt: now,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	got, err := l.Reviews(ctx, id)
	if err != nil {
		t.Fatalf("Reviews: %v", err)
	}
	want := []struct{ day, seq int }{{1, 1}, {1, 2}, {2, 1}, {2, 2}}
	if len(got) != len(want) {
		t.Fatalf("got %d reviews, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Day != w.day || got[i].Sequence != w.seq {
			t.Errorf("review %d = day %d seq %d, want day %d seq %d", i, got[i].Day, got[i].Sequence, w.day, w.seq)
		}
		if !got[i].TimedOut || got[i].Admitted {
			t.Errorf("review %d flags = %+v", i, got[i])
		}
	}
}

func TestLedger_RecordReviewReplacesDuplicate(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t)
	id := NewRunID()
	if err := l.StartRun(ctx, RunStart{ID: id, StartedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	rec := ReviewRecord{RunID: id, Day: 1, Sequence: 1, Patient: "Ava", Condition: "Flu",
		Personality: "Calm", Medication: "Inhaler", Stars: 2, Reason: "Patient Ava reported poor treatment.",
		ReviewedAt: time.Now()}
	if err := l.RecordReview(ctx, rec); err != nil {
		t.Fatal(err)
	}
	rec.Stars = 3
	if err := l.RecordReview(ctx, rec); err != nil {
		t.Fatal(err)
	}
	got, err := l.Reviews(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Stars != 3 || got[0].Reason != rec.Reason {
		t.Errorf("reviews = %+v", got)
	}
}

func TestLedger_RecentRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 4; i++ {
		id := NewRunID()
		ids = append(ids, id)
		if err := l.StartRun(ctx, RunStart{ID: id, Seed: uint64(i), StartedAt: base.Add(time.Duration(i) * time.Hour)}); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := l.RecentRuns(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}
	for i, r := range runs {
		if r.ID != ids[3-i] {
			t.Errorf("run %d = %s, want %s", i, r.ID, ids[3-i])
		}
	}
}

func TestLedger_EndUnknownRun(t *testing.T) {
	l := openTestLedger(t)
	err := l.EndRun(context.Background(), RunEnd{ID: "missing", Verdict: "malpractice", EndedAt: time.Now()})
	if err == nil {
		t.Error("ending an unknown run should fail")
	}
}

func TestLedger_ReopenKeepsHistory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")
	l, err := Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	id := NewRunID()
	if err := l.StartRun(ctx, RunStart{ID: id, Seed: 7, StartedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	l.Close()

	l, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer l.Close()
	runs, err := l.RecentRuns(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != id {
		t.Errorf("runs after reopen = %+v", runs)
	}
}
