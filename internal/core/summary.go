package core

import "sort"

// DefaultTopCategories is the breakdown truncation used by the dashboard.
const DefaultTopCategories = 5

type (
	// Summary holds the overall totals for a transaction collection.
	Summary struct {
		Income   Money `json:"income"`
		Expenses Money `json:"expenses"`
		Balance  Money `json:"balance"`
	}

	// CategoryTotal is an expense sum for a single category.
	CategoryTotal struct {
		Category string `json:"category"`
		Total    Money  `json:"total"`
	}

	// MonthFlow is the income/expense flow for one YYYY-MM month.
	MonthFlow struct {
		Month    string `json:"month"`
		Income   Money  `json:"income"`
		Expenses Money  `json:"expenses"`
	}
)

// Summarize partitions the collection by kind and sums each side.
// Balance is income minus expenses. An empty collection yields all zeros.
func Summarize(txs []Transaction) Summary {
	var s Summary
	for _, t := range txs {
		switch t.Kind {
		case Income:
			s.Income = s.Income.Add(t.Amount)
		case Expense:
			s.Expenses = s.Expenses.Add(t.Amount)
		}
	}
	s.Balance = s.Income.Sub(s.Expenses)
	return s
}

// CategoryBreakdown groups expenses by category and returns per-category
// totals in descending order, truncated to topK entries when topK > 0.
// The sort is stable, so categories with equal totals keep the order in
// which they were first encountered.
func CategoryBreakdown(txs []Transaction, topK int) []CategoryTotal {
	sums := make(map[string]int64)
	var order []string
	for _, t := range txs {
		if t.Kind != Expense {
			continue
		}
		if _, seen := sums[t.Category]; !seen {
			order = append(order, t.Category)
		}
		sums[t.Category] += t.Amount.Cents
	}

	out := make([]CategoryTotal, 0, len(order))
	for _, cat := range order {
		out = append(out, CategoryTotal{Category: cat, Total: Money{Cents: sums[cat]}})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.Cents > out[j].Total.Cents
	})
	if topK > 0 && len(out) > topK {
		out = out[:topK]
	}
	return out
}

// MonthlyTrend accumulates income and expense sums per YYYY-MM month and
// returns them in ascending chronological order. Lexicographic ordering is
// chronological here because the key format is fixed-width zero-padded.
func MonthlyTrend(txs []Transaction) []MonthFlow {
	flows := make(map[string]*MonthFlow)
	for _, t := range txs {
		ym := t.Date.YearMonth()
		f, ok := flows[ym]
		if !ok {
			f = &MonthFlow{Month: ym}
			flows[ym] = f
		}
		switch t.Kind {
		case Income:
			f.Income = f.Income.Add(t.Amount)
		case Expense:
			f.Expenses = f.Expenses.Add(t.Amount)
		}
	}

	out := make([]MonthFlow, 0, len(flows))
	for _, f := range flows {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
