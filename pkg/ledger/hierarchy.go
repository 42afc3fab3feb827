// Package ledger derives view data from flat abstraccount DTOs: account
// hierarchy paths, transaction-level grouping of postings, and balance
// display strings.
package ledger

import "strings"

// AccountHierarchy expands an account number into its ordered hierarchy
// segments. Each prefix of the part before the first dot is a segment, and a
// number with a decimal suffix contributes the full number as a final extra
// segment:
//
//	"1020"     -> ["1", "10", "102", "1020"]
//	"6570.001" -> ["6", "65", "657", "6570", "6570.001"]
//
// The input is trimmed; an empty number yields no segments.
func AccountHierarchy(accountNumber string) []string {
	num := strings.TrimSpace(accountNumber)
	if num == "" {
		return nil
	}

	mainPart, _, hasSuffix := strings.Cut(num, ".")

	segments := make([]string, 0, len(mainPart)+1)
	for i := 1; i <= len(mainPart); i++ {
		segments = append(segments, mainPart[:i])
	}
	if hasSuffix {
		segments = append(segments, num)
	}
	return segments
}

// HierarchyPath renders the hierarchy segments as a colon-joined path,
// e.g. "6570.001" -> "6:65:657:6570:6570.001".
func HierarchyPath(accountNumber string) string {
	return strings.Join(AccountHierarchy(accountNumber), ":")
}
