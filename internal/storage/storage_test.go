package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestSQLite opens a fresh database under t.TempDir().
func createTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func kvImplementations(t *testing.T) map[string]KV {
	return map[string]KV{
		"memory": NewMemory(),
		"sqlite": createTestSQLite(t),
	}
}

func TestKV_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get(ctx, "volt_user")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, kv.Set(ctx, "volt_user", []byte(`{"id":"u1"}`)))
			got, err := kv.Get(ctx, "volt_user")
			require.NoError(t, err)
			assert.Equal(t, `{"id":"u1"}`, string(got))

			require.NoError(t, kv.Set(ctx, "volt_user", []byte(`{"id":"u2"}`)))
			got, err = kv.Get(ctx, "volt_user")
			require.NoError(t, err)
			assert.Equal(t, `{"id":"u2"}`, string(got), "Set must overwrite")

			require.NoError(t, kv.Delete(ctx, "volt_user"))
			_, err = kv.Get(ctx, "volt_user")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.NoError(t, kv.Delete(ctx, "volt_user"), "deleting a missing key is not an error")
		})
	}
}

func TestKV_EmptyValue(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Set(ctx, "k", nil))
			got, err := kv.Get(ctx, "k")
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestMemory_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	buf := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", buf))
	buf[0] = 'z'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
	assert.Equal(t, 1, m.Len())
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "volt_user", []byte("persisted")))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "volt_user")
	require.NoError(t, err)
	assert.Equal(t, "persisted", string(got))
}

func TestSQLite_Pragmas(t *testing.T) {
	s := createTestSQLite(t)

	mode, err := s.pragma("journal_mode")
	require.NoError(t, err)
	assert.Equal(t, "wal", mode)

	version, err := s.schemaVersion()
	require.NoError(t, err)
	assert.Equal(t, currentSchemaVersion, version)
}

func TestSQLite_Keys(t *testing.T) {
	ctx := context.Background()
	s := createTestSQLite(t)
	require.NoError(t, s.Set(ctx, "b", []byte("2")))
	require.NoError(t, s.Set(ctx, "a", []byte("1")))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestSQLite_CloseNil(t *testing.T) {
	var s SQLite
	assert.NoError(t, s.Close())
}

func TestMemory_Keys(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	keys, err := m.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, m.Set(ctx, "volt_user", []byte("{}")))
	require.NoError(t, m.Set(ctx, "a", []byte("1")))
	require.NoError(t, m.Delete(ctx, "a"))
	require.NoError(t, m.Set(ctx, "b", []byte("2")))

	keys, err = m.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "volt_user"}, keys)
}
