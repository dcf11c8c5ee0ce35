package core

import (
	"reflect"
	"testing"
)

func TestFilterMatches(t *testing.T) {
	entry := tx(Expense, 5000, "Transport", "2024-02-01")

	cases := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"zero filter matches", Filter{}, true},
		{"kind match", Filter{Kind: Expense}, true},
		{"kind mismatch", Filter{Kind: Income}, false},
		{"category match", Filter{Category: "Transport"}, true},
		{"category mismatch", Filter{Category: "Food"}, false},
		{"from inclusive", Filter{From: "2024-02-01"}, true},
		{"from excludes earlier", Filter{From: "2024-02-02"}, false},
		{"to inclusive", Filter{To: "2024-02-01"}, true},
		{"to excludes later", Filter{To: "2024-01-31"}, false},
		{"all dimensions", Filter{Kind: Expense, Category: "Transport", From: "2024-01-01", To: "2024-12-31"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter.Matches(entry); got != tc.want {
				t.Errorf("Matches = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilterApplyScenario(t *testing.T) {
	txs := sampleLedger()
	f := Filter{Kind: Expense, From: "2024-02-01"}
	got := f.Apply(txs)
	if len(got) != 1 {
		t.Fatalf("got %d transactions, want 1", len(got))
	}
	if got[0].Category != "Transport" || got[0].Amount.Cents != 5000 {
		t.Fatalf("wrong transaction selected: %+v", got[0])
	}
}

func TestFilterApplyIsIdempotent(t *testing.T) {
	txs := sampleLedger()
	f := Filter{Kind: Expense}
	once := f.Apply(txs)
	twice := f.Apply(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("applying twice differs: %+v vs %+v", once, twice)
	}
}

func TestFilterApplyDoesNotMutateInput(t *testing.T) {
	txs := sampleLedger()
	orig := make([]Transaction, len(txs))
	copy(orig, txs)

	Filter{Kind: Income}.Apply(txs)
	Filter{}.Apply(txs)

	if !reflect.DeepEqual(txs, orig) {
		t.Fatal("input slice was mutated")
	}
	// Clearing filters is just using the original collection again.
	cleared := Filter{}.Apply(txs)
	if !reflect.DeepEqual(cleared, orig) {
		t.Fatalf("zero filter result differs from original: %+v", cleared)
	}
}

func TestFilterApplyEmpty(t *testing.T) {
	if got := (Filter{Kind: Expense}).Apply(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}
