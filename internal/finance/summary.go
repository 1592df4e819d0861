package finance

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"dashboard-core/internal/models"
)

// DefaultTopLimit bounds TopCategories results when no limit is given.
const DefaultTopLimit = 5

// Summarize aggregates the whole transaction collection into the
// report summary: lifetime totals and per-category breakdowns, plus
// income/expense trends for the 12 calendar months ending at now's
// month (oldest first). Transactions outside that window still count
// toward the totals, only the trend arrays exclude them.
func Summarize(transactions []models.Transaction, now time.Time) models.FinancialSummary {
	summary := models.FinancialSummary{
		IncomeByCategory:   make(map[string]float64),
		ExpensesByCategory: make(map[string]float64),
		MonthlyTrends: models.MonthlyTrends{
			Income:   make([]float64, 0, 12),
			Expenses: make([]float64, 0, 12),
		},
	}

	for _, tx := range transactions {
		if tx.Type == models.TransactionIncome {
			summary.TotalIncome += tx.Amount
			summary.IncomeByCategory[tx.Category] += tx.Amount
		} else {
			summary.TotalExpenses += tx.Amount
			summary.ExpensesByCategory[tx.Category] += tx.Amount
		}
	}
	summary.NetBalance = summary.TotalIncome - summary.TotalExpenses

	for _, month := range trailingMonths(now, 12) {
		var income, expenses float64
		for _, tx := range transactions {
			if !strings.HasPrefix(tx.Date, month) {
				continue
			}
			if tx.Type == models.TransactionIncome {
				income += tx.Amount
			} else {
				expenses += tx.Amount
			}
		}
		summary.MonthlyTrends.Income = append(summary.MonthlyTrends.Income, income)
		summary.MonthlyTrends.Expenses = append(summary.MonthlyTrends.Expenses, expenses)
	}

	return summary
}

// trailingMonths returns n "YYYY-MM" keys ending at now's month,
// oldest first.
func trailingMonths(now time.Time, n int) []string {
	months := make([]string, 0, n)
	year, month := now.Year(), now.Month()
	for i := n - 1; i >= 0; i-- {
		// time.Date normalizes out-of-range months.
		m := time.Date(year, month-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		months = append(months, m.Format("2006-01"))
	}
	return months
}

// YearSummary aggregates only transactions dated in now's calendar
// year: totals, net balance, and 12-slot monthly arrays indexed by
// month (0 = January). This is the variant embedded in the transaction
// slice and recomputed on every mutation; it is intentionally not the
// same window as Summarize.
func YearSummary(transactions []models.Transaction, now time.Time) models.YearSummary {
	summary := models.EmptyYearSummary()
	year := now.Year()

	for _, tx := range transactions {
		date, ok := parseTxDate(tx.Date)
		if !ok || date.Year() != year {
			continue
		}
		month := int(date.Month()) - 1
		if tx.Type == models.TransactionIncome {
			summary.TotalIncome += tx.Amount
			summary.MonthlyRevenue[month] += tx.Amount
		} else {
			summary.TotalExpenses += tx.Amount
			summary.MonthlyExpenses[month] += tx.Amount
		}
	}

	summary.NetBalance = summary.TotalIncome - summary.TotalExpenses
	return summary
}

func parseTxDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006-01"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CategoryShare is one row of a top-categories breakdown.
type CategoryShare struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// TopCategories groups transactions of the given type by category and
// returns at most limit rows, largest amount first, each carrying its
// percentage of the type total. A limit of zero or less falls back to
// DefaultTopLimit.
func TopCategories(transactions []models.Transaction, txType models.TransactionType, limit int) []CategoryShare {
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	totals := make(map[string]float64)
	var typeTotal float64
	for _, tx := range transactions {
		if tx.Type != txType {
			continue
		}
		totals[tx.Category] += tx.Amount
		typeTotal += tx.Amount
	}

	shares := make([]CategoryShare, 0, len(totals))
	for category, amount := range totals {
		shares = append(shares, CategoryShare{
			Category:   category,
			Amount:     amount,
			Percentage: Percentage(amount, typeTotal),
		})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].Amount != shares[j].Amount {
			return shares[i].Amount > shares[j].Amount
		}
		return shares[i].Category < shares[j].Category
	})

	if len(shares) > limit {
		shares = shares[:limit]
	}
	return shares
}

// BudgetMetric describes spending against a category budget.
// Remaining goes negative once the budget is exceeded.
type BudgetMetric struct {
	Spent      float64 `json:"spent"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
}

// BudgetMetrics computes spent/remaining/percentage per category with
// expense activity. Categories with no expenses never appear, even if
// budgeted. A missing or zero budget entry yields a 0 percentage.
func BudgetMetrics(transactions []models.Transaction, budget map[string]float64) map[string]BudgetMetric {
	metrics := make(map[string]BudgetMetric)

	for _, tx := range transactions {
		if tx.Type != models.TransactionExpense {
			continue
		}
		m := metrics[tx.Category]
		m.Spent += tx.Amount
		metrics[tx.Category] = m
	}

	for category, m := range metrics {
		b := budget[category]
		m.Remaining = b - m.Spent
		m.Percentage = Percentage(m.Spent, b)
		metrics[category] = m
	}

	return metrics
}

// Report renders a deterministic plain-text financial report: totals
// followed by the top five income and expense categories.
func Report(transactions []models.Transaction, now time.Time) string {
	summary := Summarize(transactions, now)
	topIncome := TopCategories(transactions, models.TransactionIncome, DefaultTopLimit)
	topExpenses := TopCategories(transactions, models.TransactionExpense, DefaultTopLimit)

	var b strings.Builder
	b.WriteString("Financial Report\n\n")
	fmt.Fprintf(&b, "Total Income: %s\n", FormatCurrency(summary.TotalIncome))
	fmt.Fprintf(&b, "Total Expenses: %s\n", FormatCurrency(summary.TotalExpenses))
	fmt.Fprintf(&b, "Net Balance: %s\n\n", FormatCurrency(summary.NetBalance))

	b.WriteString("Top Income Categories:\n")
	for _, share := range topIncome {
		fmt.Fprintf(&b, "%s: %s (%.1f%%)\n", share.Category, FormatCurrency(share.Amount), share.Percentage)
	}

	b.WriteString("\nTop Expense Categories:\n")
	for _, share := range topExpenses {
		fmt.Fprintf(&b, "%s: %s (%.1f%%)\n", share.Category, FormatCurrency(share.Amount), share.Percentage)
	}

	return b.String()
}
