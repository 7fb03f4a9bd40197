package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "data", "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestOpenSQLite_CreatesSchema(t *testing.T) {
	s := openTestSQLite(t)

	assert.True(t, tableExists(t, s.db, "kv"))
	assert.True(t, tableExists(t, s.db, "goose_db_version"))
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	s := openTestSQLite(t)

	require.NoError(t, RunMigrations(context.Background(), s.db))
	require.NoError(t, RunMigrations(context.Background(), s.db))
}

func TestOpenSQLite_InMemory(t *testing.T) {
	s, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "k", "v"))

	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestSQLiteStore_SetGetUpsert(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "token", "old"))
	require.NoError(t, s.Set(ctx, "token", "new"))

	v, ok, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new", v)
}

func TestSQLiteStore_EmptyValueIsPresent(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "ecommerce_cart", ""))

	v, ok, err := s.Get(ctx, "ecommerce_cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestSQLiteStore_RemoveSeveralKeys_Idempotent(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "token", "t"))
	require.NoError(t, s.Set(ctx, "user", "u"))
	require.NoError(t, s.Set(ctx, "ecommerce_cart", "[]"))

	require.NoError(t, s.Remove(ctx, "token", "user", "absent"))
	require.NoError(t, s.Remove(ctx, "token"))
	require.NoError(t, s.Remove(ctx))

	for _, k := range []string{"token", "user"} {
		_, ok, err := s.Get(ctx, k)
		require.NoError(t, err)
		assert.False(t, ok, k)
	}

	_, ok, err := s.Get(ctx, "ecommerce_cart")
	require.NoError(t, err)
	assert.True(t, ok, "keys of other owners are untouched")
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	ctx := context.Background()

	s1, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s1.Set(ctx, "token", "a.b.c"))
	require.NoError(t, s1.Close())

	s2, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s2.Close()

	v, ok, err := s2.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a.b.c", v)
}

func newMockStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteStore(db), mock
}

func TestSQLiteStore_Get_QueryError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv WHERE key = ?`)).
		WithArgs("token").
		WillReturnError(errors.New("disk I/O error"))

	_, ok, err := s.Get(context.Background(), "token")
	require.ErrorContains(t, err, "failed to get kv[token]")
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_Set_ExecError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(`INSERT INTO kv`).
		WithArgs("user", "{}").
		WillReturnError(errors.New("readonly database"))

	err := s.Set(context.Background(), "user", "{}")
	require.ErrorContains(t, err, "failed to set kv[user]")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_Remove_RollsBackOnError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv WHERE key = ?`)).
		WithArgs("token").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv WHERE key = ?`)).
		WithArgs("user").
		WillReturnError(errors.New("locked"))
	mock.ExpectRollback()

	err := s.Remove(context.Background(), "token", "user")
	require.ErrorContains(t, err, "failed to delete kv[user]")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_Remove_BeginError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin().WillReturnError(errors.New("busy"))

	err := s.Remove(context.Background(), "token")
	require.ErrorContains(t, err, "begin tx")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_Remove_Commits(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM kv`).WithArgs("token").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM kv`).WithArgs("user").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, s.Remove(context.Background(), "token", "user"))
	require.NoError(t, mock.ExpectationsWereMet())
}
