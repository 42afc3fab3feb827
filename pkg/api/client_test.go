package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(ClientConfig{BaseURL: server.URL, Token: "test-token"})
	return client, server
}

func TestListJournals(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, expected GET", r.Method)
		}
		if r.URL.Path != "/api/journal/list" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("X-Request-Id header missing")
		}
		json.NewEncoder(w).Encode([]JournalMetadata{
			{ID: "j1", Title: "Business", Currency: "CHF", Commodities: map[string]string{"CHF": "2"}},
		})
	})
	defer server.Close()

	journals, err := client.ListJournals()
	if err != nil {
		t.Fatalf("ListJournals() error = %v", err)
	}
	if len(journals) != 1 || journals[0].Title != "Business" {
		t.Errorf("ListJournals() = %v", journals)
	}
}

func TestListTransactionsQueryParams(t *testing.T) {
	tests := []struct {
		name   string
		filter TransactionFilter
		query  string
	}{
		{"no filter", TransactionFilter{}, ""},
		{"full filter", TransactionFilter{
			StartDate: "2024-01-01",
			EndDate:   "2024-12-31",
			PartnerID: "p1",
			Status:    StatusCleared,
		}, "endDate=2024-12-31&partnerId=p1&startDate=2024-01-01&status=CLEARED"},
		{"partial filter omits empty fields", TransactionFilter{
			StartDate: "2024-06-01",
		}, "startDate=2024-06-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery string
			client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.RawQuery
				json.NewEncoder(w).Encode([]Transaction{})
			})
			defer server.Close()

			if _, err := client.ListTransactions("j1", tt.filter); err != nil {
				t.Fatalf("ListTransactions() error = %v", err)
			}
			if gotQuery != tt.query {
				t.Errorf("query = %q, expected %q", gotQuery, tt.query)
			}
		})
	}
}

func TestGetAccountBalanceEscapesAccountName(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		// Spaces in the account name must be escaped on the wire.
		if got := r.URL.EscapedPath(); got != "/api/journal/accounts/Bank%20Account/balance" {
			t.Errorf("escaped path = %q", got)
		}
		if r.URL.Path != "/api/journal/accounts/Bank Account/balance" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(AccountBalance{AccountNumber: "1020", AccountName: "Bank Account"})
	})
	defer server.Close()

	balance, err := client.GetAccountBalance("Bank Account", "")
	if err != nil {
		t.Fatalf("GetAccountBalance() error = %v", err)
	}
	if balance.AccountNumber != "1020" {
		t.Errorf("GetAccountBalance() = %v", balance)
	}
}

func TestGetAccountBalanceAsOfDate(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("asOfDate"); got != "2024-06-30" {
			t.Errorf("asOfDate = %q", got)
		}
		json.NewEncoder(w).Encode(AccountBalance{})
	})
	defer server.Close()

	if _, err := client.GetAccountBalance("1020", "2024-06-30"); err != nil {
		t.Fatalf("GetAccountBalance() error = %v", err)
	}
}

func TestDeleteJournal(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, expected DELETE", r.Method)
		}
		if r.URL.Path != "/api/journal/j1" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	defer server.Close()

	if err := client.DeleteJournal("j1"); err != nil {
		t.Fatalf("DeleteJournal() error = %v", err)
	}
}

func TestUploadJournal(t *testing.T) {
	const content = "; title: Business\n2024-01-15 * Coffee\n"

	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, expected POST", r.Method)
		}
		if r.URL.Path != "/api/journal/upload" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Content-Type"); got != "text/plain" {
			t.Errorf("Content-Type = %q, expected text/plain", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != content {
			t.Errorf("body = %q", string(body))
		}
		w.WriteHeader(http.StatusOK)
	})
	defer server.Close()

	if err := client.UploadJournal(content); err != nil {
		t.Fatalf("UploadJournal() error = %v", err)
	}
}

func TestDemoCRUD(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/demo":
			json.NewEncoder(w).Encode([]Demo{{ID: "1"}, {ID: "2"}})
		case r.Method == http.MethodPost && r.URL.Path == "/api/demo":
			if got := r.Header.Get("Content-Type"); got != "application/json" {
				t.Errorf("Content-Type = %q", got)
			}
			json.NewEncoder(w).Encode(Demo{ID: "3"})
		case r.Method == http.MethodPut && r.URL.Path == "/api/demo":
			var demo Demo
			json.NewDecoder(r.Body).Decode(&demo)
			json.NewEncoder(w).Encode(demo)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/demo/3":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
	defer server.Close()

	demos, err := client.ListDemos()
	if err != nil {
		t.Fatalf("ListDemos() error = %v", err)
	}
	if len(demos) != 2 {
		t.Errorf("ListDemos() = %v", demos)
	}

	created, err := client.CreateDemo(Demo{})
	if err != nil {
		t.Fatalf("CreateDemo() error = %v", err)
	}
	if created.ID != "3" {
		t.Errorf("CreateDemo() = %v", created)
	}

	updated, err := client.UpdateDemo(Demo{ID: "3"})
	if err != nil {
		t.Fatalf("UpdateDemo() error = %v", err)
	}
	if updated.ID != "3" {
		t.Errorf("UpdateDemo() = %v", updated)
	}

	if err := client.DeleteDemo("3"); err != nil {
		t.Fatalf("DeleteDemo() error = %v", err)
	}
}

func TestStructuredErrorResponse(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"errorCode":         "Journal not found",
			"error_description": "no journal with id j9",
		})
	})
	defer server.Close()

	_, err := client.GetJournalMetadata("j9")
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T", err)
	}
	if apiErr.StatusCode != 404 {
		t.Errorf("StatusCode = %d", apiErr.StatusCode)
	}
	if apiErr.Code != "Journal not found" {
		t.Errorf("Code = %q", apiErr.Code)
	}
	if apiErr.Description != "no journal with id j9" {
		t.Errorf("Description = %q", apiErr.Description)
	}
}

func TestUnstructuredErrorResponse(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "internal server error\n")
	})
	defer server.Close()

	_, err := client.ListJournals()
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T", err)
	}
	if apiErr.StatusCode != 500 {
		t.Errorf("StatusCode = %d", apiErr.StatusCode)
	}
	// The raw body stands in for the missing error code.
	if apiErr.Code != "internal server error" {
		t.Errorf("Code = %q", apiErr.Code)
	}
}

func TestNoAuthorizationHeaderWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q, expected none", got)
		}
		json.NewEncoder(w).Encode(AppConfig{LogLevel: "info"})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	config, err := client.GetAppConfig()
	if err != nil {
		t.Fatalf("GetAppConfig() error = %v", err)
	}
	if config.LogLevel != "info" {
		t.Errorf("GetAppConfig() = %v", config)
	}
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/journal/list" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]JournalMetadata{})
	})
	defer server.Close()

	client = NewClient(ClientConfig{BaseURL: server.URL + "/"})
	if _, err := client.ListJournals(); err != nil {
		t.Fatalf("ListJournals() error = %v", err)
	}
}
