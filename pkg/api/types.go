// Package api provides the abstraccount REST API client and DTO types.
package api

import "github.com/shopspring/decimal"

// JournalMetadata describes a journal as returned by /api/journal/list.
// A journal is immutable once fetched and replaced wholesale on reload.
type JournalMetadata struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Subtitle    *string           `json:"subtitle,omitempty"`
	Currency    string            `json:"currency"`
	Commodities map[string]string `json:"commodities"`
}

// Tag is a key/value annotation on a transaction.
type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Entry is a single line of a transaction affecting one account.
// Entries belong to exactly one transaction.
type Entry struct {
	ID          string          `json:"id"`
	EntryOrder  int             `json:"entryOrder"`
	AccountID   string          `json:"accountId"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Commodity   string          `json:"commodity"`
	Amount      decimal.Decimal `json:"amount"`
	Note        *string         `json:"note,omitempty"`
}

// Transaction is a dated, described set of balancing entries.
type Transaction struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Status      string  `json:"status"`
	Description string  `json:"description"`
	PartnerID   *string `json:"partnerId,omitempty"`
	Tags        []Tag   `json:"tags"`
	Entries     []Entry `json:"entries"`
}

// Transaction status values as reported by the server.
const (
	StatusCleared   = "CLEARED"
	StatusPending   = "PENDING"
	StatusUncleared = "UNCLEARED"
)

// Posting is the flattened transaction+entry view returned by the postings
// endpoints. TransactionID is empty when the server reports no id.
type Posting struct {
	TransactionDate        string           `json:"transactionDate"` // YYYY-MM-DD
	TransactionStatus      string           `json:"transactionStatus"`
	TransactionDescription string           `json:"transactionDescription"`
	TransactionID          string           `json:"transactionId,omitempty"`
	AccountNumber          string           `json:"accountNumber"`
	AccountName            string           `json:"accountName"`
	AccountType            string           `json:"accountType"`
	Commodity              string           `json:"commodity"`
	Amount                 decimal.Decimal  `json:"amount"`
	RunningBalance         *decimal.Decimal `json:"runningBalance,omitempty"`
}

// AccountSummary describes an account declared in a journal.
type AccountSummary struct {
	AccountNumber string  `json:"accountNumber"`
	AccountName   string  `json:"accountName"`
	AccountType   string  `json:"accountType"`
	Note          *string `json:"note,omitempty"`
}

// AccountBalance holds the per-commodity balances of one account.
type AccountBalance struct {
	AccountNumber string                     `json:"accountNumber"`
	AccountName   string                     `json:"accountName"`
	AccountType   string                     `json:"accountType"`
	Balances      map[string]decimal.Decimal `json:"balances"`
}

// Demo is the backend's sample CRUD resource at /api/demo.
type Demo struct {
	ID string `json:"id"`
}

// AppConfig is the public client configuration served at /public/config.
type AppConfig struct {
	LogLevel string `json:"logLevel"`
}

// TransactionFilter holds the optional query parameters of the transaction
// listing endpoint. Empty fields are omitted from the request entirely.
type TransactionFilter struct {
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	PartnerID string
	Status    string
}

// PostingFilter holds the optional query parameters of the postings
// endpoints. AccountName only applies to the journal-wide listing.
type PostingFilter struct {
	StartDate   string // YYYY-MM-DD
	EndDate     string // YYYY-MM-DD
	Status      string
	AccountName string
}

// errorResponse is the server's wire error structure.
type errorResponse struct {
	ErrorCode        string `json:"errorCode"`
	ErrorDescription string `json:"error_description,omitempty"`
	ErrorURI         string `json:"error_uri,omitempty"`
}
