package models

// TransactionType distinguishes money in from money out. Amounts are
// stored as non-negative magnitudes; the sign is implied by the type.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionCancelled TransactionStatus = "cancelled"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionPending, TransactionCompleted, TransactionCancelled:
		return true
	}
	return false
}

// Transaction is a single financial record. Date is a date string
// (YYYY-MM-DD or RFC3339) used for monthly bucketing.
type Transaction struct {
	ID            string            `json:"id"`
	Type          TransactionType   `json:"type"`
	Amount        float64           `json:"amount"`
	Category      string            `json:"category"`
	Description   string            `json:"description"`
	Date          string            `json:"date"`
	Status        TransactionStatus `json:"status"`
	PaymentMethod string            `json:"paymentMethod"`
	Reference     string            `json:"reference"`
	CreatedAt     string            `json:"createdAt"`
	UpdatedAt     string            `json:"updatedAt"`
	Attachments   []FileAttachment  `json:"attachments,omitempty"`
}
