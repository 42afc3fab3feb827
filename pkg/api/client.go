package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ClientConfig represents the configuration for the abstraccount API client.
type ClientConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration // Default: 30 seconds
}

// Client is an abstraccount REST API client. It handles transport and error
// decoding only; retry policy and session handling live outside this package.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("api error (status %d): %s - %s", e.StatusCode, e.Code, e.Description)
	}
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Code)
}

// NewClient creates a new abstraccount API client.
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		token:   config.Token,
	}
}

// SetToken sets the bearer token for API requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// ListJournals lists all journals.
func (c *Client) ListJournals() ([]JournalMetadata, error) {
	var journals []JournalMetadata
	if err := c.get("/api/journal/list", nil, &journals); err != nil {
		return nil, err
	}
	return journals, nil
}

// GetJournalMetadata fetches the metadata of a single journal.
func (c *Client) GetJournalMetadata(journalID string) (*JournalMetadata, error) {
	var journal JournalMetadata
	path := fmt.Sprintf("/api/journal/%s/metadata", url.PathEscape(journalID))
	if err := c.get(path, nil, &journal); err != nil {
		return nil, err
	}
	return &journal, nil
}

// ListTransactions lists the transactions of a journal. Unset filter fields
// are not sent.
func (c *Client) ListTransactions(journalID string, filter TransactionFilter) ([]Transaction, error) {
	params := url.Values{}
	setIfPresent(params, "startDate", filter.StartDate)
	setIfPresent(params, "endDate", filter.EndDate)
	setIfPresent(params, "partnerId", filter.PartnerID)
	setIfPresent(params, "status", filter.Status)

	var transactions []Transaction
	path := fmt.Sprintf("/api/journal/%s/transactions", url.PathEscape(journalID))
	if err := c.get(path, params, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// DeleteJournal deletes a journal and everything it owns.
func (c *Client) DeleteJournal(journalID string) error {
	path := fmt.Sprintf("/api/journal/%s", url.PathEscape(journalID))
	return c.send(http.MethodDelete, path, nil, "", nil, nil)
}

// ListAccounts lists all declared accounts.
func (c *Client) ListAccounts() ([]AccountSummary, error) {
	var accounts []AccountSummary
	if err := c.get("/api/journal/accounts", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// GetAccountBalance fetches the balances of one account, optionally as of a
// date. Account names may contain spaces and are escaped in the path.
func (c *Client) GetAccountBalance(accountName, asOfDate string) (*AccountBalance, error) {
	params := url.Values{}
	setIfPresent(params, "asOfDate", asOfDate)

	var balance AccountBalance
	path := fmt.Sprintf("/api/journal/accounts/%s/balance", url.PathEscape(accountName))
	if err := c.get(path, params, &balance); err != nil {
		return nil, err
	}
	return &balance, nil
}

// GetAccountPostings lists the postings of one account.
func (c *Client) GetAccountPostings(accountName string, filter PostingFilter) ([]Posting, error) {
	params := url.Values{}
	setIfPresent(params, "startDate", filter.StartDate)
	setIfPresent(params, "endDate", filter.EndDate)
	setIfPresent(params, "status", filter.Status)

	var postings []Posting
	path := fmt.Sprintf("/api/journal/accounts/%s/postings", url.PathEscape(accountName))
	if err := c.get(path, params, &postings); err != nil {
		return nil, err
	}
	return postings, nil
}

// ListPostings lists postings across all accounts.
func (c *Client) ListPostings(filter PostingFilter) ([]Posting, error) {
	params := url.Values{}
	setIfPresent(params, "startDate", filter.StartDate)
	setIfPresent(params, "endDate", filter.EndDate)
	setIfPresent(params, "status", filter.Status)
	setIfPresent(params, "accountName", filter.AccountName)

	var postings []Posting
	if err := c.get("/api/journal/postings", params, &postings); err != nil {
		return nil, err
	}
	return postings, nil
}

// ListBalances lists the balances of all accounts, optionally as of a date.
func (c *Client) ListBalances(asOfDate string) ([]AccountBalance, error) {
	params := url.Values{}
	setIfPresent(params, "asOfDate", asOfDate)

	var balances []AccountBalance
	if err := c.get("/api/journal/balances", params, &balances); err != nil {
		return nil, err
	}
	return balances, nil
}

// UploadJournal uploads raw journal file content.
func (c *Client) UploadJournal(content string) error {
	return c.send(http.MethodPost, "/api/journal/upload", nil, "text/plain", strings.NewReader(content), nil)
}

// GetAppConfig fetches the public client configuration.
func (c *Client) GetAppConfig() (*AppConfig, error) {
	var config AppConfig
	if err := c.get("/public/config", nil, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// ListDemos lists all demo records.
func (c *Client) ListDemos() ([]Demo, error) {
	var demos []Demo
	if err := c.get("/api/demo", nil, &demos); err != nil {
		return nil, err
	}
	return demos, nil
}

// CreateDemo creates a demo record. The server assigns the id.
func (c *Client) CreateDemo(demo Demo) (*Demo, error) {
	var created Demo
	if err := c.sendJSON(http.MethodPost, "/api/demo", demo, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateDemo updates a demo record.
func (c *Client) UpdateDemo(demo Demo) (*Demo, error) {
	var updated Demo
	if err := c.sendJSON(http.MethodPut, "/api/demo", demo, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteDemo deletes a demo record by id.
func (c *Client) DeleteDemo(id string) error {
	path := fmt.Sprintf("/api/demo/%s", url.PathEscape(id))
	return c.send(http.MethodDelete, path, nil, "", nil, nil)
}

// get performs a GET request and decodes the JSON response into out.
func (c *Client) get(path string, params url.Values, out any) error {
	return c.send(http.MethodGet, path, params, "", nil, out)
}

// sendJSON performs a request with a JSON-encoded body.
func (c *Client) sendJSON(method, path string, body any, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	return c.send(method, path, nil, "application/json", strings.NewReader(string(encoded)), out)
}

// send performs a request and decodes a 2xx JSON response into out when out
// is non-nil. Non-2xx responses are returned as *APIError.
func (c *Client) send(method, path string, params url.Values, contentType string, body io.Reader, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint = fmt.Sprintf("%s?%s", endpoint, params.Encode())
	}

	req, err := http.NewRequest(method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}

	slog.Debug("api request", "method", method, "path", path, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.parseError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// parseError parses an error response from the abstraccount API.
func (c *Client) parseError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Code: "unreadable error response"}
	}

	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.ErrorCode == "" {
		return &APIError{StatusCode: resp.StatusCode, Code: strings.TrimSpace(string(body))}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        errResp.ErrorCode,
		Description: errResp.ErrorDescription,
	}
}

// setIfPresent sets a query parameter only when the value is non-empty, so
// unset filters are omitted from the request rather than sent blank.
func setIfPresent(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}
