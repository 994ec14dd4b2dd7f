package sheet

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// normalizeHeader composes Vietnamese diacritics (NFC), collapses
// whitespace and case-folds so "  đáp  án đúng" matches "ĐÁP ÁN ĐÚNG".
func normalizeHeader(s string) string {
	s = norm.NFC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	return cases.Fold().String(s)
}
