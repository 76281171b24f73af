package attendance

import (
	"context"
	"testing"
)

func TestMemoryFindOpenReturnsNewest(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	out := "10:00:00"
	repo.Create(ctx, Record{MatricNo: "A1", Name: "Jane", Date: "2024-03-15", ClockIn: "08:00:00", ClockOut: &out})
	repo.Create(ctx, Record{MatricNo: "A1", Name: "Jane", Date: "2024-03-15", ClockIn: "11:00:00"})
	newest, _ := repo.Create(ctx, Record{MatricNo: "A1", Name: "Jane", Date: "2024-03-15", ClockIn: "12:00:00"})

	open, err := repo.FindOpen(ctx, "A1")
	if err != nil {
		t.Fatal(err)
	}
	if open == nil || open.ID != newest.ID {
		t.Fatalf("want newest open record %d, got %+v", newest.ID, open)
	}

	if open, _ := repo.FindOpen(ctx, "B2"); open != nil {
		t.Fatalf("unknown matric must have no open record, got %+v", open)
	}
}

func TestMemoryLastDateAndDeleteAll(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if last, _ := repo.LastDate(ctx); last != "" {
		t.Fatalf("empty store must report no last date, got %q", last)
	}

	repo.Create(ctx, Record{MatricNo: "A1", Name: "Jane", Date: "2024-03-14", ClockIn: "09:00:00"})
	created, _ := repo.Create(ctx, Record{MatricNo: "A2", Name: "Bob", Date: "2024-03-15", ClockIn: "09:00:00"})

	if last, _ := repo.LastDate(ctx); last != "2024-03-15" {
		t.Fatalf("want newest date, got %q", last)
	}

	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatal(err)
	}
	recs, _ := repo.List(ctx)
	if len(recs) != 0 {
		t.Fatalf("delete all left %d records", len(recs))
	}

	// Ids must not restart after a clear.
	next, _ := repo.Create(ctx, Record{MatricNo: "A3", Name: "Eve", Date: "2024-03-15", ClockIn: "10:00:00"})
	if next.ID <= created.ID {
		t.Fatalf("id %d reused after clear (last was %d)", next.ID, created.ID)
	}
}
