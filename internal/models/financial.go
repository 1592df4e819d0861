package models

// MonthlyTrends holds parallel 12-element arrays for a rolling window
// of calendar months, oldest month first.
type MonthlyTrends struct {
	Income   []float64 `json:"income"`
	Expenses []float64 `json:"expenses"`
}

// FinancialSummary is the report-oriented aggregate over the full
// transaction collection: totals are unbounded in time, trends cover
// the 12 calendar months ending at the reference month.
type FinancialSummary struct {
	TotalIncome        float64            `json:"totalIncome"`
	TotalExpenses      float64            `json:"totalExpenses"`
	NetBalance         float64            `json:"netBalance"`
	IncomeByCategory   map[string]float64 `json:"incomeByCategory"`
	ExpensesByCategory map[string]float64 `json:"expensesByCategory"`
	MonthlyTrends      MonthlyTrends      `json:"monthlyTrends"`
}

// YearSummary is the narrower aggregate embedded in the transaction
// slice: totals and monthly arrays are bounded to the current calendar
// year, indexed by month (0 = January). It is recomputed in full on
// every mutation and is not interchangeable with FinancialSummary.
type YearSummary struct {
	TotalIncome     float64   `json:"totalIncome"`
	TotalExpenses   float64   `json:"totalExpenses"`
	NetBalance      float64   `json:"netBalance"`
	MonthlyRevenue  []float64 `json:"monthlyRevenue"`
	MonthlyExpenses []float64 `json:"monthlyExpenses"`
}

// EmptyYearSummary returns a zeroed summary with the monthly arrays
// allocated at their fixed length.
func EmptyYearSummary() YearSummary {
	return YearSummary{
		MonthlyRevenue:  make([]float64, 12),
		MonthlyExpenses: make([]float64, 12),
	}
}
