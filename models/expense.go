package models

// Flag is a manual red/green tag on an expense: red marks avoidable
// spending, green marks spending worth keeping.
type Flag string

const (
	FlagRed   Flag = "red"
	FlagGreen Flag = "green"
)

// Valid reports whether f is one of the two allowed flag values.
func (f Flag) Valid() bool { return f == FlagRed || f == FlagGreen }

// Expense is a single ledger record. IDs are unique within one user's
// ledger only; two users can each own an expense with id 1.
type Expense struct {
	ID          int     `json:"id"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        Date    `json:"date"`
	Flag        *Flag   `json:"flag"`
}
