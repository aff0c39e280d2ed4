package rules

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/financellm/financellm/internal/model"
)

func TestLoadFile(t *testing.T) {
	loaded, err := LoadFile(filepath.Join("..", "..", "testdata", "rules.yaml"))
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, model.BudgetRule{Pattern: "coffee", Category: "Dining"}, loaded[0])
	assert.Equal(t, "Subscriptions", loaded[2].Category)
}

func TestParseFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"blank pattern", "rules:\n  - pattern: \" \"\n    category: Dining\n", "rule 1"},
		{"missing category", "rules:\n  - pattern: coffee\n  - pattern: tea\n    category: Dining\n", "rule 1"},
		{"bad yaml", "rules: [", "parsing rules"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFile([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseFile_Empty(t *testing.T) {
	loaded, err := ParseFile([]byte("rules: []\n"))
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSaveFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	in := []model.BudgetRule{
		{ID: 7, Pattern: "coffee", Category: "Dining"},
		{ID: 8, Pattern: "rent", Category: "Housing"},
	}
	require.NoError(t, SaveFile(path, in))

	out, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "rent", out[1].Pattern)
	assert.Zero(t, out[1].ID, "IDs are assigned by the store")
}
