package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptBankExcludesUsed(t *testing.T) {
	bank := NewPromptBankWith([]string{"one", "two", "three"})

	for i := 0; i < 20; i++ {
		assert.Equal(t, "three", bank.Next([]string{"one", "two"}))
	}
}

func TestPromptBankSamplesFromPool(t *testing.T) {
	bank := NewPromptBank()
	require.Positive(t, bank.Size())

	prompt := bank.Next(nil)
	assert.Contains(t, DefaultPrompts, prompt)
}

func TestPromptBankExhaustedFallsBack(t *testing.T) {
	pool := []string{"one", "two"}
	bank := NewPromptBankWith(pool)

	// Every prompt used: repeats are allowed rather than failing
	for i := 0; i < 20; i++ {
		assert.Contains(t, pool, bank.Next(pool))
	}
}

func TestPromptBankCoversPoolBeforeRepeating(t *testing.T) {
	pool := []string{"one", "two", "three", "four"}
	bank := NewPromptBankWith(pool)

	used := make([]string, 0, len(pool))
	for range pool {
		prompt := bank.Next(used)
		assert.NotContains(t, used, prompt)
		used = append(used, prompt)
	}
	assert.ElementsMatch(t, pool, used)
}
