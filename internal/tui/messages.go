package tui

import "github.com/Veraticus/finpilot/internal/model"

// storeChangedMsg means the store has a newer snapshot.
type storeChangedMsg struct{}

type refreshedMsg struct {
	err error
}

type drillDownMsg struct {
	err          error
	categoryID   string
	transactions []model.Transaction
}

type reviewMsg struct {
	err    error
	review *model.MonthlyReview
}

type toastMsg struct {
	toast Toast
}
