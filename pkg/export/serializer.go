package export

import (
	"sort"
	"strings"

	"github.com/abstratium-dev/abstraccount/pkg/api"
	"github.com/abstratium-dev/abstraccount/pkg/ledger"
)

const sectionSeparator = "; ============================================================================"

// Serializer renders journal content as plain-text journal format.
type Serializer struct {
	style Style
}

// NewSerializer creates a serializer with the given style.
func NewSerializer(style Style) *Serializer {
	return &Serializer{style: style}
}

// Serialize renders a journal's metadata header followed by its grouped
// transactions.
func (s *Serializer) Serialize(journal api.JournalMetadata, groups []ledger.GroupedTransaction) string {
	var sb strings.Builder

	s.writeMetadata(&sb, journal)
	s.writeCommodities(&sb, journal)

	if len(groups) > 0 {
		if s.style.SectionHeaders {
			sb.WriteString(sectionSeparator + "\n")
			sb.WriteString("; TRANSACTIONS\n")
			sb.WriteString(sectionSeparator + "\n")
			sb.WriteString("\n")
		}
		for _, group := range groups {
			sb.WriteString(s.FormatTransaction(group))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// FormatTransaction renders one grouped transaction: a header line with
// date, status marker and description, an id comment when the postings
// carry a transaction id, then each posting with its amount aligned.
func (s *Serializer) FormatTransaction(group ledger.GroupedTransaction) string {
	var sb strings.Builder

	sb.WriteString(group.Date)
	status := ""
	if len(group.Postings) > 0 {
		status = group.Postings[0].TransactionStatus
	}
	if marker := s.style.marker(status); marker != "" {
		sb.WriteString(" " + marker)
	}
	sb.WriteString(" " + group.Description + "\n")

	if id := transactionID(group); id != "" {
		sb.WriteString("    ; id:" + id + "\n")
	}
	for _, tag := range group.Tags {
		if tag.Value == "" {
			sb.WriteString("    ; :" + tag.Key + ":\n")
		} else {
			sb.WriteString("    ; " + tag.Key + ":" + tag.Value + "\n")
		}
	}

	for _, posting := range group.Postings {
		sb.WriteString("    ")
		sb.WriteString(posting.AccountName)

		amount := posting.Amount.String()
		padding := s.style.AlignColumn - len(posting.AccountName) - len(amount) - len(posting.Commodity)
		if padding < 4 {
			padding = 4
		}
		sb.WriteString(strings.Repeat(" ", padding))
		sb.WriteString(amount + " " + posting.Commodity)
		sb.WriteString("\n")
	}

	return sb.String()
}

// writeMetadata emits the comment header: title, subtitle and currency.
func (s *Serializer) writeMetadata(sb *strings.Builder, journal api.JournalMetadata) {
	wrote := false
	if journal.Title != "" {
		sb.WriteString("; title: " + journal.Title + "\n")
		wrote = true
	}
	if journal.Subtitle != nil && *journal.Subtitle != "" {
		sb.WriteString("; subtitle: " + *journal.Subtitle + "\n")
		wrote = true
	}
	if journal.Currency != "" {
		sb.WriteString("; Currency: " + journal.Currency + "\n")
		wrote = true
	}
	if wrote {
		sb.WriteString("\n")
	}
}

// writeCommodities emits commodity declarations in code order.
func (s *Serializer) writeCommodities(sb *strings.Builder, journal api.JournalMetadata) {
	if len(journal.Commodities) == 0 {
		return
	}

	codes := make([]string, 0, len(journal.Commodities))
	for code := range journal.Commodities {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		sb.WriteString("commodity " + code + " " + journal.Commodities[code] + "\n")
	}
	sb.WriteString("\n")
}

// transactionID returns the shared transaction id of a group, or "" when
// the postings carry none.
func transactionID(group ledger.GroupedTransaction) string {
	if len(group.Postings) == 0 {
		return ""
	}
	return group.Postings[0].TransactionID
}
