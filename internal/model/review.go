package model

// MonthlyReview is the month-in-review summary computed by the remote
// service. It is passed through untouched for presentation.
type MonthlyReview struct {
	BiggestTransaction     *ReviewTransaction `json:"biggest_transaction"`
	MonthName              string             `json:"month_name"`
	UserName               string             `json:"user_name"`
	MostConsistentCategory string             `json:"most_consistent_category"`
	HighestSpendingWeek    string             `json:"highest_spending_week"`
	BestSavingsWeek        string             `json:"best_savings_week"`
	TopSpendingDayOfWeek   string             `json:"top_spending_day_of_week"`
	TopCategories          []ReviewCategory   `json:"top_categories"`
	WeeklyData             []ReviewWeek       `json:"weekly_data"`
	FunComparisons         []string           `json:"fun_comparisons"`
	GoalsSummary           ReviewGoals        `json:"goals_summary"`
	Year                   int                `json:"year"`
	Month                  int                `json:"month"`
	TotalIncome            float64            `json:"total_income"`
	TotalExpenses          float64            `json:"total_expenses"`
	TotalSavings           float64            `json:"total_savings"`
	SavingsRate            float64            `json:"savings_rate"`
	IncomeChange           float64            `json:"income_change"`
	ExpenseChange          float64            `json:"expense_change"`
	SavingsChange          float64            `json:"savings_change"`
	TotalTransactions      int                `json:"total_transactions"`
	AverageDailySpending   float64            `json:"average_daily_spending"`
	DailyAverageSpend      float64            `json:"daily_average_spend"`
	TransactionsPerWeek    float64            `json:"transactions_per_week"`
	StreakDaysUnderBudget  int                `json:"streak_days_under_budget"`
}

// ReviewCategory is one entry of the top-categories breakdown.
type ReviewCategory struct {
	Category   string  `json:"category"`
	Icon       string  `json:"icon"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// ReviewTransaction describes the month's biggest transaction.
type ReviewTransaction struct {
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// ReviewWeek is one point of the weekly series.
type ReviewWeek struct {
	WeekLabel string  `json:"week_label"`
	Income    float64 `json:"income"`
	Expenses  float64 `json:"expenses"`
	Savings   float64 `json:"savings"`
}

// ReviewGoals summarizes goal completion for the month.
type ReviewGoals struct {
	TotalGoals  int     `json:"total_goals"`
	Completed   int     `json:"completed"`
	InProgress  int     `json:"in_progress"`
	TotalSaved  float64 `json:"total_saved"`
	TotalTarget float64 `json:"total_target"`
}
