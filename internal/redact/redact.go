// Package redact strips personally identifying substrings from free text
// before it is stored in a derived artifact or sent to any external service.
package redact

import "regexp"

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Rules run in this order. Every placeholder is bracketed uppercase with no
// digits or '@', so no later rule can re-match an earlier rule's output and
// the whole pass is idempotent.
var rules = []rule{
	{regexp.MustCompile(`\(?\d{3}\)?[-.\s]\d{3}[-.\s]?\d{4}\b`), "[PHONE]"},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[EMAIL]"},
	{regexp.MustCompile(`(?i)\b\d+\s+[A-Za-z][A-Za-z0-9 ]*\s(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Court|Ct|Way)\b\.?`), "[ADDRESS]"},
	{regexp.MustCompile(`\b(?i:(sponsor|therapist|doctor|case manager|counselor))\s*:\s*[A-Z][A-Za-z'-]*(?:\s+[A-Z][A-Za-z'-]*)?`), "${1}: [REDACTED_NAME]"},
	{regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`), "[DATE]"},
	{regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`), "[DATE]"},
}

// Redact replaces phone numbers, email addresses, street addresses, labeled
// names after role markers, and dates with fixed placeholder tokens. Text with
// no matches comes back unchanged. It never fails.
func Redact(text string) string {
	for _, r := range rules {
		text = r.pattern.ReplaceAllString(text, r.replacement)
	}
	return text
}
