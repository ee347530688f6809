package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNoteCategoryKnownValues(t *testing.T) {
	for _, c := range NoteCategories() {
		got, ok := ParseNoteCategory(string(c))
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}
}

func TestParseNoteCategoryCoercesUnknown(t *testing.T) {
	for _, s := range []string{"", "Sponsor", "finance", "commitment"} {
		got, ok := ParseNoteCategory(s)
		assert.False(t, ok, "input %q", s)
		assert.Equal(t, CategoryGeneral, got)
	}
}

func TestParseDocumentCategoryKnownValues(t *testing.T) {
	for _, c := range DocumentCategories() {
		got, ok := ParseDocumentCategory(string(c))
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}
}

func TestParseDocumentCategoryCoercesUnknown(t *testing.T) {
	got, ok := ParseDocumentCategory("general")
	assert.False(t, ok)
	assert.Equal(t, CategoryNone, got)

	got, ok = ParseDocumentCategory("writeup")
	assert.True(t, ok)
	assert.Equal(t, CategoryWriteup, got)
}

func TestResidentDisplayName(t *testing.T) {
	r := Resident{FirstName: "John", LastName: "D"}
	assert.Equal(t, "John D", r.DisplayName())

	r.LastName = ""
	assert.Equal(t, "John", r.DisplayName())
}
