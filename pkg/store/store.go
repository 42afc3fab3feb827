// Package store holds the client-side session state: the collections last
// fetched from the API plus the loading flag and last error. It is
// independent of the transport layer; the controller writes into it and any
// number of consumers read from it.
package store

import (
	"sync"

	"github.com/abstratium-dev/abstraccount/pkg/api"
)

// Snapshot is the full store state at one point in time.
type Snapshot struct {
	Journals     []api.JournalMetadata
	Transactions []api.Transaction
	Postings     []api.Posting
	Accounts     []api.AccountSummary
	Balances     []api.AccountBalance
	Demos        []api.Demo
	Loading      bool
	Error        string // empty when no error
	Config       api.AppConfig
}

// Observer receives a snapshot after every write.
type Observer func(Snapshot)

// Store is the session state holder. Setters are atomic assignments that
// notify all registered observers synchronously before returning; each field
// is independent and setting one never resets another. Values are accepted
// verbatim, including nil collections.
type Store struct {
	mu        sync.RWMutex
	state     Snapshot
	observers []Observer
}

// New creates an empty store. One store is created at session start and
// lives for the whole session.
func New() *Store {
	return &Store{}
}

// Subscribe registers an observer for subsequent writes. Polling the getters
// works equally; observers exist for consumers that want push notification.
func (s *Store) Subscribe(fn Observer) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) Journals() []api.JournalMetadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Journals
}

func (s *Store) Transactions() []api.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Transactions
}

func (s *Store) Postings() []api.Posting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Postings
}

func (s *Store) Accounts() []api.AccountSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Accounts
}

func (s *Store) Balances() []api.AccountBalance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Balances
}

func (s *Store) Demos() []api.Demo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Demos
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Loading
}

// Error returns the last error message, or "" when there is none.
func (s *Store) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Error
}

func (s *Store) Config() api.AppConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Config
}

func (s *Store) SetJournals(journals []api.JournalMetadata) {
	s.set(func(state *Snapshot) { state.Journals = journals })
}

func (s *Store) SetTransactions(transactions []api.Transaction) {
	s.set(func(state *Snapshot) { state.Transactions = transactions })
}

func (s *Store) SetPostings(postings []api.Posting) {
	s.set(func(state *Snapshot) { state.Postings = postings })
}

func (s *Store) SetAccounts(accounts []api.AccountSummary) {
	s.set(func(state *Snapshot) { state.Accounts = accounts })
}

func (s *Store) SetBalances(balances []api.AccountBalance) {
	s.set(func(state *Snapshot) { state.Balances = balances })
}

func (s *Store) SetDemos(demos []api.Demo) {
	s.set(func(state *Snapshot) { state.Demos = demos })
}

func (s *Store) SetLoading(loading bool) {
	s.set(func(state *Snapshot) { state.Loading = loading })
}

// SetError records an error message; the empty string clears it.
func (s *Store) SetError(message string) {
	s.set(func(state *Snapshot) { state.Error = message })
}

func (s *Store) SetConfig(config api.AppConfig) {
	s.set(func(state *Snapshot) { state.Config = config })
}

// set applies one mutation and notifies observers with the resulting
// snapshot. Observers run outside the lock so they can read the store.
func (s *Store) set(mutate func(*Snapshot)) {
	s.mu.Lock()
	mutate(&s.state)
	snapshot := s.state
	observers := s.observers
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}
