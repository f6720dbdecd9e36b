package chat

import (
	"testing"
)

func TestAggregateDeduplicatesAcrossCategories(t *testing.T) {
	idx := loadChatIndex(t)
	a := NewAggregator(idx, 10)

	// "cortacespedes" matches all three mowers; the narrower token matches
	// the electric one again
	got := a.Aggregate([]string{"cortacespedes", "cortacespedes-electricos"})

	seen := make(map[string]int)
	for _, p := range got {
		seen[p.ID]++
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("product %s appears %d times, want 1", id, n)
		}
	}
	if len(got) != 3 {
		t.Errorf("got %d products, want 3 unique mowers", len(got))
	}
}

func TestAggregateCapsPerCategory(t *testing.T) {
	idx := loadChatIndex(t)
	a := NewAggregator(idx, 2)

	got := a.Aggregate([]string{"cortacespedes"})
	if len(got) != 2 {
		t.Errorf("got %d products, want cap of 2", len(got))
	}
}

func TestAggregatePreservesFirstAppearanceOrder(t *testing.T) {
	idx := loadChatIndex(t)
	a := NewAggregator(idx, 10)

	got := a.Aggregate([]string{"desbrozadoras", "cortasetos"})
	if len(got) != 2 {
		t.Fatalf("got %d products, want 2", len(got))
	}
	if got[0].ID != "10004" || got[1].ID != "10005" {
		t.Errorf("order = [%s %s], want [10004 10005]", got[0].ID, got[1].ID)
	}
}

func TestAggregateEmptyInputs(t *testing.T) {
	idx := loadChatIndex(t)
	a := NewAggregator(idx, 10)

	if got := a.Aggregate(nil); len(got) != 0 {
		t.Errorf("Aggregate(nil) = %v, want empty", got)
	}
	if got := a.Aggregate([]string{"taladros"}); len(got) != 0 {
		t.Errorf("Aggregate(unknown) = %v, want empty", got)
	}
}
