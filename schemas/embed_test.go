package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations(t *testing.T) {
	entries, err := Migrations.ReadDir("migrations")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for _, entry := range entries {
		content, err := Migrations.ReadFile("migrations/" + entry.Name())
		require.NoError(t, err)
		assert.Contains(t, string(content), "CREATE TABLE")
	}
}
