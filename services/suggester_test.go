package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchKeywordExact(t *testing.T) {
	name, ok := matchKeyword("netflix")
	assert.True(t, ok)
	assert.Equal(t, "bills", name)
}

func TestMatchKeywordSubstring(t *testing.T) {
	name, ok := matchKeyword("monthly gym membership")
	assert.True(t, ok)
	assert.Equal(t, "entertainment", name)

	name, ok = matchKeyword("dinner at luigi's")
	assert.True(t, ok)
	assert.Equal(t, "food", name)
}

func TestMatchKeywordMiss(t *testing.T) {
	_, ok := matchKeyword("zzz nothing matches this")
	assert.False(t, ok)
}

func TestKeywordRulesTargetSeededCategories(t *testing.T) {
	seeded := map[string]bool{
		"salary": true, "freelance": true, "investment": true, "food": true,
		"transport": true, "shopping": true, "bills": true, "entertainment": true,
		"healthcare": true, "education": true,
	}
	for keyword, name := range keywordRules {
		assert.True(t, seeded[name], "rule %q points at unknown category %q", keyword, name)
	}
}
