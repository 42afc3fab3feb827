package db

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/abstratium-dev/abstraccount/pkg/api"
)

// FetchRecord is one row of fetch history.
type FetchRecord struct {
	ID        int64
	Resource  string
	JournalID sql.NullString
	ItemCount int
	FetchedAt time.Time
}

// Stats summarizes the local fetch cache.
type Stats struct {
	TotalFetches   int
	ByResource     map[string]int
	CachedAccounts int
	LastFetch      sql.NullString
}

// FetchCache records API fetches and caches the last seen balances.
type FetchCache struct {
	conn *Connection
}

// NewFetchCache creates a new FetchCache instance.
func NewFetchCache(conn *Connection) *FetchCache {
	return &FetchCache{conn: conn}
}

// RecordFetch records one successful load. journalID may be empty for
// resources without journal scope.
func (f *FetchCache) RecordFetch(resource, journalID string, itemCount int) error {
	query := `
		INSERT INTO fetch_history (resource, journal_id, item_count)
		VALUES (?, ?, ?)
	`

	var jid any
	if journalID != "" {
		jid = journalID
	}

	if _, err := f.conn.Exec(query, resource, jid, itemCount); err != nil {
		return fmt.Errorf("failed to record fetch: %w", err)
	}
	return nil
}

// RecentFetches returns the newest fetch records, up to limit.
func (f *FetchCache) RecentFetches(limit int) ([]FetchRecord, error) {
	query := `
		SELECT id, resource, journal_id, item_count, fetched_at
		FROM fetch_history
		ORDER BY fetched_at DESC, id DESC
		LIMIT ?
	`

	rows, err := f.conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get fetch history: %w", err)
	}
	defer rows.Close()

	var records []FetchRecord
	for rows.Next() {
		var record FetchRecord
		if err := rows.Scan(
			&record.ID,
			&record.Resource,
			&record.JournalID,
			&record.ItemCount,
			&record.FetchedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan fetch record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// CacheBalances replaces the cached balances with the given set.
func (f *FetchCache) CacheBalances(balances []api.AccountBalance, asOfDate string) error {
	return f.conn.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM cached_balances`); err != nil {
			return fmt.Errorf("failed to clear cached balances: %w", err)
		}

		insert := `
			INSERT INTO cached_balances (account_number, account_name, account_type, commodity, amount, as_of_date)
			VALUES (?, ?, ?, ?, ?, ?)
		`
		for _, balance := range balances {
			for commodity, amount := range balance.Balances {
				if _, err := tx.Exec(insert,
					balance.AccountNumber,
					balance.AccountName,
					balance.AccountType,
					commodity,
					amount.String(),
					asOfDate,
				); err != nil {
					return fmt.Errorf("failed to cache balance for %s: %w", balance.AccountNumber, err)
				}
			}
		}
		return nil
	})
}

// CachedBalances reassembles the cached rows into account balances, ordered
// by account number.
func (f *FetchCache) CachedBalances() ([]api.AccountBalance, error) {
	query := `
		SELECT account_number, account_name, account_type, commodity, amount
		FROM cached_balances
		ORDER BY account_number, commodity
	`

	rows, err := f.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get cached balances: %w", err)
	}
	defer rows.Close()

	byAccount := make(map[string]*api.AccountBalance)
	var numbers []string

	for rows.Next() {
		var number, name, accountType, commodity, amountStr string
		if err := rows.Scan(&number, &name, &accountType, &commodity, &amountStr); err != nil {
			return nil, fmt.Errorf("failed to scan cached balance: %w", err)
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt cached amount %q for %s: %w", amountStr, number, err)
		}

		balance, ok := byAccount[number]
		if !ok {
			balance = &api.AccountBalance{
				AccountNumber: number,
				AccountName:   name,
				AccountType:   accountType,
				Balances:      make(map[string]decimal.Decimal),
			}
			byAccount[number] = balance
			numbers = append(numbers, number)
		}
		balance.Balances[commodity] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Strings(numbers)
	balances := make([]api.AccountBalance, 0, len(numbers))
	for _, number := range numbers {
		balances = append(balances, *byAccount[number])
	}
	return balances, nil
}

// GetStats retrieves fetch cache statistics.
func (f *FetchCache) GetStats() (*Stats, error) {
	stats := &Stats{ByResource: make(map[string]int)}

	err := f.conn.QueryRow(`SELECT COUNT(*) FROM fetch_history`).Scan(&stats.TotalFetches)
	if err != nil {
		return nil, fmt.Errorf("failed to get fetch count: %w", err)
	}

	rows, err := f.conn.Query(`SELECT resource, COUNT(*) FROM fetch_history GROUP BY resource`)
	if err != nil {
		return nil, fmt.Errorf("failed to get per-resource counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var resource string
		var count int
		if err := rows.Scan(&resource, &count); err != nil {
			return nil, fmt.Errorf("failed to scan resource count: %w", err)
		}
		stats.ByResource[resource] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = f.conn.QueryRow(`SELECT COUNT(DISTINCT account_number) FROM cached_balances`).Scan(&stats.CachedAccounts)
	if err != nil {
		return nil, fmt.Errorf("failed to get cached account count: %w", err)
	}

	err = f.conn.QueryRow(`SELECT MAX(fetched_at) FROM fetch_history`).Scan(&stats.LastFetch)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last fetch time: %w", err)
	}

	return stats, nil
}
