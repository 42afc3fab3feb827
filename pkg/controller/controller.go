// Package controller orchestrates the request/store-update protocol between
// the API gateway and the session store. Load operations are best-effort:
// failures land in the store's error field and are never returned. Mutations
// return their error to the caller and, on success only, trigger a reload so
// the store reflects server-confirmed state.
package controller

import (
	"log/slog"
	"sync"

	"github.com/abstratium-dev/abstraccount/pkg/api"
	"github.com/abstratium-dev/abstraccount/pkg/store"
)

// Gateway is the external API collaborator. *api.Client implements it;
// tests substitute a fake. Timeouts and retries belong to the gateway, the
// controller has none of its own.
type Gateway interface {
	ListJournals() ([]api.JournalMetadata, error)
	GetJournalMetadata(journalID string) (*api.JournalMetadata, error)
	ListTransactions(journalID string, filter api.TransactionFilter) ([]api.Transaction, error)
	DeleteJournal(journalID string) error
	ListAccounts() ([]api.AccountSummary, error)
	GetAccountBalance(accountName, asOfDate string) (*api.AccountBalance, error)
	GetAccountPostings(accountName string, filter api.PostingFilter) ([]api.Posting, error)
	ListPostings(filter api.PostingFilter) ([]api.Posting, error)
	ListBalances(asOfDate string) ([]api.AccountBalance, error)
	UploadJournal(content string) error
	GetAppConfig() (*api.AppConfig, error)
	ListDemos() ([]api.Demo, error)
	CreateDemo(demo api.Demo) (*api.Demo, error)
	UpdateDemo(demo api.Demo) (*api.Demo, error)
	DeleteDemo(id string) error
}

// Resource keys for the stale-response guard.
const (
	resourceJournals     = "journals"
	resourceTransactions = "transactions"
	resourcePostings     = "postings"
	resourceAccounts     = "accounts"
	resourceBalances     = "balances"
	resourceDemos        = "demos"
)

// Controller applies gateway results to the store. Methods are synchronous;
// callers that want overlapping requests run them in goroutines. Each
// resource carries a generation counter: a load only applies its result when
// no newer load of the same resource has started, so a slow superseded
// response cannot overwrite a newer one.
type Controller struct {
	gateway Gateway
	store   *store.Store
	logger  *slog.Logger

	mu          sync.Mutex
	generations map[string]uint64
}

// New creates a controller. A nil logger falls back to slog.Default().
func New(gateway Gateway, st *store.Store, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		gateway:     gateway,
		store:       st,
		logger:      logger,
		generations: make(map[string]uint64),
	}
}

// Store returns the session store the controller writes into.
func (c *Controller) Store() *store.Store {
	return c.store
}

// LoadJournals replaces the store's journal list.
func (c *Controller) LoadJournals() {
	load(c, resourceJournals, "Failed to load journals",
		c.gateway.ListJournals, c.store.SetJournals)
}

// LoadTransactions replaces the store's transaction list with the filtered
// transactions of one journal.
func (c *Controller) LoadTransactions(journalID string, filter api.TransactionFilter) {
	load(c, resourceTransactions, "Failed to load transactions",
		func() ([]api.Transaction, error) { return c.gateway.ListTransactions(journalID, filter) },
		c.store.SetTransactions)
}

// LoadPostings replaces the store's posting list with the journal-wide
// filtered postings.
func (c *Controller) LoadPostings(filter api.PostingFilter) {
	load(c, resourcePostings, "Failed to load postings",
		func() ([]api.Posting, error) { return c.gateway.ListPostings(filter) },
		c.store.SetPostings)
}

// LoadAccountPostings replaces the store's posting list with the postings of
// one account.
func (c *Controller) LoadAccountPostings(accountName string, filter api.PostingFilter) {
	load(c, resourcePostings, "Failed to load postings",
		func() ([]api.Posting, error) { return c.gateway.GetAccountPostings(accountName, filter) },
		c.store.SetPostings)
}

// LoadAccounts replaces the store's account list.
func (c *Controller) LoadAccounts() {
	load(c, resourceAccounts, "Failed to load accounts",
		c.gateway.ListAccounts, c.store.SetAccounts)
}

// LoadBalances replaces the store's balance list, optionally as of a date.
func (c *Controller) LoadBalances(asOfDate string) {
	load(c, resourceBalances, "Failed to load balances",
		func() ([]api.AccountBalance, error) { return c.gateway.ListBalances(asOfDate) },
		c.store.SetBalances)
}

// LoadDemos replaces the store's demo list.
func (c *Controller) LoadDemos() {
	load(c, resourceDemos, "Failed to load demos",
		c.gateway.ListDemos, c.store.SetDemos)
}

// GetJournalMetadata fetches one journal's metadata. The result is passed
// through rather than stored; the error is returned to the caller.
func (c *Controller) GetJournalMetadata(journalID string) (*api.JournalMetadata, error) {
	journal, err := c.gateway.GetJournalMetadata(journalID)
	if err != nil {
		c.logger.Error("failed to get journal metadata", "journal_id", journalID, "error", err)
		return nil, err
	}
	return journal, nil
}

// GetAccountBalance fetches one account's balances, passed through like
// GetJournalMetadata.
func (c *Controller) GetAccountBalance(accountName, asOfDate string) (*api.AccountBalance, error) {
	balance, err := c.gateway.GetAccountBalance(accountName, asOfDate)
	if err != nil {
		c.logger.Error("failed to get account balance", "account", accountName, "error", err)
		return nil, err
	}
	return balance, nil
}

// LoadConfig fetches the public app config into the store. Unlike the list
// operations the error is returned: startup wants to know.
func (c *Controller) LoadConfig() (*api.AppConfig, error) {
	config, err := c.gateway.GetAppConfig()
	if err != nil {
		c.logger.Error("failed to load config", "error", err)
		return nil, err
	}
	c.store.SetConfig(*config)
	return config, nil
}

// DeleteJournal deletes a journal and reloads the journal list on success.
func (c *Controller) DeleteJournal(journalID string) error {
	return c.mutate("delete journal",
		func() error { return c.gateway.DeleteJournal(journalID) },
		c.LoadJournals)
}

// UploadJournal uploads raw journal text and reloads the journal list on
// success.
func (c *Controller) UploadJournal(content string) error {
	return c.mutate("upload journal",
		func() error { return c.gateway.UploadJournal(content) },
		c.LoadJournals)
}

// CreateDemo creates a demo record and reloads the demo list on success.
func (c *Controller) CreateDemo(demo api.Demo) (*api.Demo, error) {
	var created *api.Demo
	err := c.mutate("create demo",
		func() (err error) { created, err = c.gateway.CreateDemo(demo); return err },
		c.LoadDemos)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateDemo updates a demo record and reloads the demo list on success.
func (c *Controller) UpdateDemo(demo api.Demo) (*api.Demo, error) {
	var updated *api.Demo
	err := c.mutate("update demo",
		func() (err error) { updated, err = c.gateway.UpdateDemo(demo); return err },
		c.LoadDemos)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteDemo deletes a demo record and reloads the demo list on success.
func (c *Controller) DeleteDemo(id string) error {
	return c.mutate("delete demo",
		func() error { return c.gateway.DeleteDemo(id) },
		c.LoadDemos)
}

// mutate runs a mutation. On failure the error is logged and returned, the
// store's collections stay untouched and no reload happens. On success the
// reload runs, so last write wins when mutations overlap. Loading ends false
// either way.
func (c *Controller) mutate(action string, op func() error, reload func()) error {
	c.store.SetLoading(true)
	defer c.store.SetLoading(false)

	if err := op(); err != nil {
		c.logger.Error(action+" failed", "error", err)
		return err
	}
	reload()
	return nil
}

// begin starts a new generation for a resource and flags the load in the
// store.
func (c *Controller) begin(resource string) uint64 {
	c.mu.Lock()
	c.generations[resource]++
	gen := c.generations[resource]
	c.mu.Unlock()

	c.store.SetLoading(true)
	c.store.SetError("")
	return gen
}

// current reports whether gen is still the latest generation for resource.
func (c *Controller) current(resource string, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[resource] == gen
}

// load fetches one collection and applies it to the store. A failure is
// swallowed into the store's error field with a fixed message and the
// previous collection stays in place. A result that has been superseded by
// a newer load of the same resource is discarded entirely; the newer load
// owns the loading flag and error field.
func load[T any](c *Controller, resource, failureMessage string, fetch func() (T, error), apply func(T)) {
	gen := c.begin(resource)

	result, err := fetch()
	if !c.current(resource, gen) {
		c.logger.Debug("discarding stale response", "resource", resource, "generation", gen)
		return
	}
	if err != nil {
		c.logger.Error("load failed", "resource", resource, "error", err)
		c.store.SetError(failureMessage)
		c.store.SetLoading(false)
		return
	}

	apply(result)
	c.store.SetLoading(false)
}
