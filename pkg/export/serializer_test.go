package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/abstratium-dev/abstraccount/pkg/api"
	"github.com/abstratium-dev/abstraccount/pkg/ledger"
)

func posting(account, amount, commodity, status, txID string) api.Posting {
	return api.Posting{
		TransactionDate:        "2024-01-15",
		TransactionStatus:      status,
		TransactionDescription: "Coffee beans",
		TransactionID:          txID,
		AccountName:            account,
		Commodity:              commodity,
		Amount:                 decimal.RequireFromString(amount),
	}
}

func TestFormatTransaction(t *testing.T) {
	s := NewSerializer(DefaultStyle())

	group := ledger.GroupedTransaction{
		Date:        "2024-01-15",
		Description: "Coffee beans",
		Tags:        []api.Tag{},
		Postings: []api.Posting{
			posting("Expenses:Food", "12.5", "CHF", api.StatusCleared, "tx-1"),
			posting("Assets:Bank", "-12.5", "CHF", api.StatusCleared, "tx-1"),
		},
	}

	got := s.FormatTransaction(group)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), got)
	}
	if lines[0] != "2024-01-15 * Coffee beans" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "    ; id:tx-1" {
		t.Errorf("id line = %q", lines[1])
	}

	// Amounts right-align so that name+padding+amount+commodity reaches the
	// align column.
	want := "    Expenses:Food" + strings.Repeat(" ", 80-len("Expenses:Food")-len("12.5")-len("CHF")) + "12.5 CHF"
	if lines[2] != want {
		t.Errorf("posting line = %q, expected %q", lines[2], want)
	}
}

func TestFormatTransactionStatusMarkers(t *testing.T) {
	tests := []struct {
		status string
		header string
	}{
		{api.StatusCleared, "2024-01-15 * Coffee beans"},
		{api.StatusPending, "2024-01-15 ! Coffee beans"},
		{api.StatusUncleared, "2024-01-15 Coffee beans"},
		{"", "2024-01-15 Coffee beans"},
	}

	s := NewSerializer(DefaultStyle())
	for _, tt := range tests {
		group := ledger.GroupedTransaction{
			Date:        "2024-01-15",
			Description: "Coffee beans",
			Postings:    []api.Posting{posting("Expenses", "1", "CHF", tt.status, "")},
		}
		got := s.FormatTransaction(group)
		if header := strings.SplitN(got, "\n", 2)[0]; header != tt.header {
			t.Errorf("status %q: header = %q, expected %q", tt.status, header, tt.header)
		}
	}
}

func TestFormatTransactionOmitsIDWhenAbsent(t *testing.T) {
	s := NewSerializer(DefaultStyle())
	group := ledger.GroupedTransaction{
		Date:        "2024-01-15",
		Description: "Coffee beans",
		Postings:    []api.Posting{posting("Expenses", "1", "CHF", api.StatusCleared, "")},
	}

	if got := s.FormatTransaction(group); strings.Contains(got, "; id:") {
		t.Errorf("unexpected id line in:\n%s", got)
	}
}

func TestFormatTransactionTags(t *testing.T) {
	s := NewSerializer(DefaultStyle())
	group := ledger.GroupedTransaction{
		Date:        "2024-01-15",
		Description: "Coffee beans",
		Tags: []api.Tag{
			{Key: "project", Value: "office"},
			{Key: "reviewed", Value: ""},
		},
		Postings: []api.Posting{posting("Expenses", "1", "CHF", api.StatusCleared, "")},
	}

	got := s.FormatTransaction(group)
	if !strings.Contains(got, "    ; project:office\n") {
		t.Errorf("missing value tag line in:\n%s", got)
	}
	if !strings.Contains(got, "    ; :reviewed:\n") {
		t.Errorf("missing bare tag line in:\n%s", got)
	}
}

func TestFormatTransactionMinimumPadding(t *testing.T) {
	style := DefaultStyle()
	style.AlignColumn = 10 // far too narrow for any posting line
	s := NewSerializer(style)

	group := ledger.GroupedTransaction{
		Date:        "2024-01-15",
		Description: "Coffee beans",
		Postings:    []api.Posting{posting("Expenses:Long Account Name", "12.5", "CHF", api.StatusCleared, "")},
	}

	got := s.FormatTransaction(group)
	if !strings.Contains(got, "Expenses:Long Account Name    12.5 CHF") {
		t.Errorf("expected minimum 4-space padding in:\n%s", got)
	}
}

func TestSerialize(t *testing.T) {
	subtitle := "2024 accounts"
	journal := api.JournalMetadata{
		ID:       "j1",
		Title:    "Business",
		Subtitle: &subtitle,
		Currency: "CHF",
		Commodities: map[string]string{
			"USD": "2",
			"CHF": "2",
		},
	}
	groups := []ledger.GroupedTransaction{
		{
			Date:        "2024-01-15",
			Description: "Coffee beans",
			Postings:    []api.Posting{posting("Expenses", "12.5", "CHF", api.StatusCleared, "")},
		},
	}

	got := NewSerializer(DefaultStyle()).Serialize(journal, groups)

	wantPrefix := "; title: Business\n" +
		"; subtitle: 2024 accounts\n" +
		"; Currency: CHF\n" +
		"\n" +
		"commodity CHF 2\n" +
		"commodity USD 2\n" +
		"\n" +
		sectionSeparator + "\n" +
		"; TRANSACTIONS\n" +
		sectionSeparator + "\n" +
		"\n" +
		"2024-01-15 * Coffee beans\n"
	if !strings.HasPrefix(got, wantPrefix) {
		t.Errorf("Serialize() =\n%s\nexpected prefix:\n%s", got, wantPrefix)
	}
}

func TestSerializeWithoutSectionHeaders(t *testing.T) {
	style := DefaultStyle()
	style.SectionHeaders = false

	journal := api.JournalMetadata{Title: "Business", Currency: "CHF"}
	groups := []ledger.GroupedTransaction{
		{
			Date:        "2024-01-15",
			Description: "Coffee beans",
			Postings:    []api.Posting{posting("Expenses", "1", "CHF", api.StatusCleared, "")},
		},
	}

	got := NewSerializer(style).Serialize(journal, groups)
	if strings.Contains(got, "TRANSACTIONS") {
		t.Errorf("unexpected section banner in:\n%s", got)
	}
}

func TestSerializeEmptyJournal(t *testing.T) {
	got := NewSerializer(DefaultStyle()).Serialize(api.JournalMetadata{}, nil)
	if got != "" {
		t.Errorf("Serialize() = %q, expected empty output", got)
	}
}

func TestLoadStyle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "display.yaml")
	content := "status_markers:\n  PENDING: \"?\"\nalign_column: 60\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	style, err := LoadStyle(path)
	if err != nil {
		t.Fatalf("LoadStyle() error = %v", err)
	}
	if got := style.marker(api.StatusPending); got != "?" {
		t.Errorf("pending marker = %q, expected ?", got)
	}
	// Markers not mentioned in the file keep their defaults.
	if got := style.marker(api.StatusCleared); got != "*" {
		t.Errorf("cleared marker = %q, expected *", got)
	}
	if style.AlignColumn != 60 {
		t.Errorf("AlignColumn = %d, expected 60", style.AlignColumn)
	}
	// section_headers unset stays at the default.
	if !style.SectionHeaders {
		t.Error("SectionHeaders should default to true")
	}
}

func TestLoadStyleSectionHeadersFalse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "display.yaml")
	if err := os.WriteFile(path, []byte("section_headers: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	style, err := LoadStyle(path)
	if err != nil {
		t.Fatalf("LoadStyle() error = %v", err)
	}
	if style.SectionHeaders {
		t.Error("SectionHeaders should be false")
	}
}

func TestLoadStyleMissingFile(t *testing.T) {
	style, err := LoadStyle(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	// The defaults still come back so the caller can fall through.
	if style.AlignColumn != 80 {
		t.Errorf("AlignColumn = %d, expected default 80", style.AlignColumn)
	}
}
