// Package db provides the local SQLite fetch cache: a history of successful
// API fetches and the last seen account balances, so statistics and balance
// display work without the server.
package db

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Fetch history table
-- One row per successful load from the abstraccount API
CREATE TABLE IF NOT EXISTS fetch_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    resource TEXT NOT NULL,            -- 'journals', 'transactions', 'postings', ...
    journal_id TEXT,                   -- journal scope, when the resource has one
    item_count INTEGER NOT NULL,       -- number of items returned
    fetched_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_fetch_history_resource
    ON fetch_history(resource);

CREATE INDEX IF NOT EXISTS idx_fetch_history_fetched_at
    ON fetch_history(fetched_at);

-- Cached balances table
-- Last seen per-commodity balance of each account
CREATE TABLE IF NOT EXISTS cached_balances (
    account_number TEXT NOT NULL,
    account_name TEXT NOT NULL,
    account_type TEXT NOT NULL,
    commodity TEXT NOT NULL,
    amount TEXT NOT NULL,              -- decimal string, exact
    as_of_date TEXT NOT NULL DEFAULT '', -- YYYY-MM-DD, '' when fetched without a date
    cached_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (account_number, commodity)
);
`

// InitializeSchema initializes the database schema. It creates all tables
// if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
