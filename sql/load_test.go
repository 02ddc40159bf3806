package sql

import (
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	t.Run("Initialize schema creates synsets table", func(t *testing.T) {
		err := Init(db.Instance)
		assert.NoError(t, err)

		var exists bool
		err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM information_schema.tables WHERE table_name = 'synsets');").Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "synsets table should be created")
	})

	t.Run("Initialize schema is idempotent", func(t *testing.T) {
		assert.NoError(t, Init(db.Instance))
		assert.NoError(t, Init(db.Instance))
	})
}

func TestLoadFunctionSets(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	sets := []struct {
		name      string
		load      func(force bool) error
		functions []string
	}{
		{"senses", func(force bool) error { return LoadSensesSql(db.Instance, force) }, SensesFunctions},
		{"links", func(force bool) error { return LoadLinksSql(db.Instance, force) }, LinksFunctions},
	}

	for _, set := range sets {
		t.Run("Load "+set.name+" SQL functions", func(t *testing.T) {
			err := set.load(false)
			assert.NoError(t, err)

			for _, funcName := range set.functions {
				var exists bool
				err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", funcName).Scan(&exists)
				require.NoError(t, err)
				assert.True(t, exists, "Function %s should exist", funcName)
			}
		})

		t.Run("Load "+set.name+" SQL is idempotent without force", func(t *testing.T) {
			assert.NoError(t, set.load(false))
		})

		t.Run("Load "+set.name+" SQL with force reloads", func(t *testing.T) {
			assert.NoError(t, set.load(true))
		})
	}
}

func TestLoadAllSql(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	err := LoadAllSql(db.Instance, true)
	require.NoError(t, err)

	exist, err := checkFunctions(db.Instance, append(SensesFunctions, LinksFunctions...))
	require.NoError(t, err)
	assert.True(t, exist, "Expected every function to exist after LoadAllSql")

	exist, err = checkFunctions(db.Instance, []string{"no_such_function"})
	require.NoError(t, err)
	assert.False(t, exist, "Expected unknown function to be reported missing")
}
