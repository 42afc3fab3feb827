package ledger

import "github.com/abstratium-dev/abstraccount/pkg/api"

// groupKeySeparator joins the key parts of a posting group. NUL cannot
// appear in dates, descriptions or ids coming off the wire, so composite
// keys never collide with each other.
const groupKeySeparator = "\x00"

// GroupedTransaction is a transaction-level view over flat postings. It is
// derived data with the lifetime of one render, recomputed whenever the
// underlying posting list changes.
//
// Tags are always empty: the flat posting DTO does not carry tags, and they
// can only be sourced from the transaction DTO when one is available.
type GroupedTransaction struct {
	Date        string
	Description string
	Tags        []api.Tag
	Postings    []api.Posting
}

// GroupPostings groups a flat posting list into transaction records. Two
// postings fall into the same group iff their date, description and
// transaction id all match; an absent transaction id participates in the key
// as the empty string. Groups are returned in first-seen order and postings
// keep their input order within each group; no sorting is performed, so
// callers wanting chronological output must sort the postings beforehand.
func GroupPostings(postings []api.Posting) []GroupedTransaction {
	groups := make(map[string]*GroupedTransaction)
	order := make([]string, 0, len(postings))

	for _, posting := range postings {
		key := posting.TransactionDate + groupKeySeparator +
			posting.TransactionDescription + groupKeySeparator +
			posting.TransactionID

		group, ok := groups[key]
		if !ok {
			group = &GroupedTransaction{
				Date:        posting.TransactionDate,
				Description: posting.TransactionDescription,
				Tags:        []api.Tag{},
			}
			groups[key] = group
			order = append(order, key)
		}
		group.Postings = append(group.Postings, posting)
	}

	result := make([]GroupedTransaction, 0, len(order))
	for _, key := range order {
		result = append(result, *groups[key])
	}
	return result
}
