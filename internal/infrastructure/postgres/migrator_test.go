package postgres

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_OrdenaPorVersionYOmiteArchivosAjenos(t *testing.T) {
	files := fstest.MapFS{
		"002_indices.sql": {Data: []byte("CREATE INDEX x ON t(a);")},
		"001_init.sql":    {Data: []byte("CREATE TABLE t (a int);")},
		"README.md":       {Data: []byte("doc")},
		"sin_version.sql": {Data: []byte("SELECT 1;")},
		"abc.sql":         {Data: []byte("SELECT 1;")},
	}
	migs, err := loadMigrations(files)
	require.NoError(t, err)
	require.Len(t, migs, 2)
	assert.Equal(t, 1, migs[0].Version)
	assert.Equal(t, "001_init.sql", migs[0].Name)
	assert.Equal(t, 2, migs[1].Version)
	assert.Contains(t, migs[1].SQL, "CREATE INDEX")
}

func TestLoadMigrations_VersionDuplicada(t *testing.T) {
	files := fstest.MapFS{
		"001_a.sql": {Data: []byte("SELECT 1;")},
		"001_b.sql": {Data: []byte("SELECT 2;")},
	}
	_, err := loadMigrations(files)
	require.Error(t, err)
}

func TestMigracionesEmbebidas(t *testing.T) {
	m := &Migrator{files: NewMigrator(nil).files}
	migs, err := m.Load()
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.Equal(t, 1, migs[0].Version)
	assert.Contains(t, migs[0].SQL, "CREATE TABLE IF NOT EXISTS supplier_scores")
}

func TestLimitArg(t *testing.T) {
	assert.Nil(t, limitArg(0))
	assert.Nil(t, limitArg(-5))
	require.NotNil(t, limitArg(20))
	assert.Equal(t, 20, *limitArg(20))
}
