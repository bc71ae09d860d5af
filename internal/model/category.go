package model

// CategoryType scopes a category to a side of the ledger.
type CategoryType string

const (
	CategoryExpense CategoryType = "expense"
	CategoryIncome  CategoryType = "income"
	CategoryAll     CategoryType = "all"
)

// Category is a user-managed spending/income label.
type Category struct {
	ID        int          `json:"id"`
	Name      string       `json:"name"` // unique display label
	Type      CategoryType `json:"type"`
	Color     string       `json:"color,omitempty"`
	CreatedAt int64        `json:"createdAt"` // epoch millis
}

// CategoryRule maps a user regex to a category. Rules are consumed
// read-only by classification; lifecycle belongs to category management.
type CategoryRule struct {
	ID         int    `json:"id"`
	Pattern    string `json:"pattern"`
	Flags      string `json:"flags,omitempty"` // regex modifiers, default "i"
	CategoryID int    `json:"categoryId"`
	Enabled    bool   `json:"enabled"`
	CreatedAt  int64  `json:"createdAt"`
}
