package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"assessment-service/internal/domain"
)

func TestResultStoreAppendAssignsID(t *testing.T) {
	store := NewResultStore()
	result := &domain.Result{UserID: "u1", SectionID: "html", Score: 3, TotalQuestions: 50}

	if err := store.Append(context.Background(), result); err != nil {
		t.Fatalf("append: %v", err)
	}
	if result.ID == "" {
		t.Fatalf("expected assigned id")
	}
}

func TestResultStoreQueryFiltersInInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewResultStore()
	for i := 0; i < 3; i++ {
		_ = store.Append(ctx, &domain.Result{ID: fmt.Sprintf("r%d", i), UserID: "u1", SectionID: "html", Score: i})
	}
	_ = store.Append(ctx, &domain.Result{ID: "other", UserID: "u2", SectionID: "css"})

	got, err := store.Query(ctx, domain.ResultFilter{UserID: "u1", SectionID: "html"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}
	for i, r := range got {
		if r.ID != fmt.Sprintf("r%d", i) {
			t.Fatalf("insertion order broken at %d: %s", i, r.ID)
		}
	}
}

func TestResultStoreConcurrentAppendsLoseNothing(t *testing.T) {
	ctx := context.Background()
	store := NewResultStore()

	const writers = 32
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Append(ctx, &domain.Result{UserID: fmt.Sprintf("u%d", n), SectionID: "html"})
		}(i)
	}
	wg.Wait()

	got, _ := store.Query(ctx, domain.ResultFilter{})
	if len(got) != writers {
		t.Fatalf("lost appends: expected %d, got %d", writers, len(got))
	}
}

func TestResultStoreDetachesSelections(t *testing.T) {
	ctx := context.Background()
	store := NewResultStore()
	selections := map[int]int{0: 1}
	_ = store.Append(ctx, &domain.Result{ID: "r1", UserID: "u1", Selections: selections})

	selections[0] = 3
	got, _ := store.Query(ctx, domain.ResultFilter{UserID: "u1"})
	if got[0].Selections[0] != 1 {
		t.Fatalf("stored selections alias caller's map")
	}
}
