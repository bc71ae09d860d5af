package model

// MerchantAlias maps a user regex to a canonical merchant name.
type MerchantAlias struct {
	ID            int    `json:"id"`
	Pattern       string `json:"pattern"`
	Flags         string `json:"flags,omitempty"` // default "i"
	CanonicalName string `json:"canonicalName"`
	Enabled       bool   `json:"enabled"`
	CreatedAt     int64  `json:"createdAt"`
}
