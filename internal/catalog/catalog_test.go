package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diagbot/internal/model"
)

func TestQuestionIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, q := range All() {
		assert.False(t, seen[q.ID], "duplicate question id %s", q.ID)
		seen[q.ID] = true
	}
}

func TestOptionKeysAreUniquePerQuestion(t *testing.T) {
	for _, q := range All() {
		seen := map[string]bool{}
		for _, opt := range q.Options {
			assert.False(t, seen[opt.Key], "duplicate option key %s on %s", opt.Key, q.ID)
			seen[opt.Key] = true
		}
	}
}

func TestSectionsAreOrderedBusinessFirst(t *testing.T) {
	readinessSeen := false
	for _, q := range All() {
		if q.Section == model.SectionReadiness {
			readinessSeen = true
			continue
		}
		assert.False(t, readinessSeen, "business question %s after readiness section", q.ID)
	}
	assert.True(t, readinessSeen)
}

func TestByID(t *testing.T) {
	first := All()[0]

	q, ok := ByID(first.ID)
	require.True(t, ok)
	assert.Equal(t, first.ID, q.ID)

	_, ok = ByID("nope")
	assert.False(t, ok)
}

func TestOptionByKey(t *testing.T) {
	q, ok := ByID("q_goals")
	require.True(t, ok)

	opt, ok := q.OptionByKey("growth")
	require.True(t, ok)
	assert.NotEmpty(t, opt.Text)

	_, ok = q.OptionByKey("missing")
	assert.False(t, ok)
}

func TestCatalogShape(t *testing.T) {
	var textOnly, multi, freeText int
	for _, q := range All() {
		if q.ExpectsText && !q.HasOptions() {
			textOnly++
		}
		if q.MultiSelect {
			multi++
		}
		for _, opt := range q.Options {
			if opt.RequiresFreeText {
				freeText++
			}
		}
		if q.ExpectsText {
			assert.Empty(t, q.Options, "%s expects text but has options", q.ID)
		}
	}
	assert.GreaterOrEqual(t, textOnly, 1)
	assert.GreaterOrEqual(t, multi, 2)
	assert.GreaterOrEqual(t, freeText, 2)
}
