package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/infra"
)

// newTestDB opens a throwaway store in a temp dir, running the same DSN and
// migration path as the real binary.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := infra.NewDatabase(filepath.Join(t.TempDir(), "pos_test.db"))
	require.NoError(t, err)
	return db
}

func ctx() context.Context { return context.Background() }
