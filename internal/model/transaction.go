package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TransactionKind is the direction of money flow as the user sees it.
type TransactionKind string

const (
	// KindExpense is money leaving the budget.
	KindExpense TransactionKind = "expense"
	// KindIncome is money entering the budget.
	KindIncome TransactionKind = "income"
)

// Valid reports whether k is a known kind.
func (k TransactionKind) Valid() bool {
	return k == KindExpense || k == KindIncome
}

// ParseTransactionKind accepts expense/income and the service's debit/credit spelling.
func ParseTransactionKind(s string) (TransactionKind, error) {
	switch s {
	case "expense", "debit":
		return KindExpense, nil
	case "income", "credit":
		return KindIncome, nil
	default:
		return "", fmt.Errorf("unknown transaction kind %q", s)
	}
}

// Transaction is a single recorded expense or income entry. It is never
// mutated after creation.
type Transaction struct {
	Date        time.Time
	ID          string
	CategoryID  string
	Description string
	Kind        TransactionKind
	Amount      float64
}

// DefaultDescription is used when a transaction is recorded without one.
const DefaultDescription = "Transaction"

// LocalTransactionID derives an id for a locally recorded transaction:
// txn-<unix millis>-<random suffix>. The suffix keeps ids unique when several
// transactions are recorded within the same millisecond.
func LocalTransactionID(now time.Time) string {
	return fmt.Sprintf("txn-%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}
