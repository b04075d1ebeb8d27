package styles

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/pwakit/internal/common"
	"github.com/dmitrijs2005/pwakit/internal/server/migrations/sqlitetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRepository(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	repo := NewSQLiteRepository(db)

	_, err := db.Exec(`INSERT INTO styles (style_name, style_active) VALUES ('aqua', 1), ('retired', 0)`)
	require.NoError(t, err)

	active, err := repo.SelectActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "aqua", active[0].Name)
	assert.Equal(t, "prosilver", active[1].Name)
	assert.True(t, active[1].Active)

	id := active[1].ID
	require.NoError(t, repo.UpdateColors(ctx, id, "#ffffff", "#123"))

	s, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", s.BgColor)
	assert.Equal(t, "#123", s.ThemeColor)

	_, err = repo.Get(ctx, 999)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, repo.UpdateColors(ctx, 999, "", ""), common.ErrorNotFound)
}
