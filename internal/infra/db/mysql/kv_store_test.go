package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*KVStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewKVStore(db), mock
}

func TestKVStore_GetFound(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(`SELECT kv_value FROM workspace_kv WHERE tenant_id = \? AND kv_key = \?`).
		WithArgs("acme", "confluenceLink").
		WillReturnRows(sqlmock.NewRows([]string{"kv_value"}).AddRow([]byte(`"https://x"`)))

	v, err := store.Get(context.Background(), "acme", "confluenceLink")
	require.NoError(t, err)
	assert.Equal(t, `"https://x"`, string(v))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStore_GetMissing(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(`SELECT kv_value FROM workspace_kv`).
		WithArgs("acme", "complianceResult").
		WillReturnRows(sqlmock.NewRows([]string{"kv_value"}))

	v, err := store.Get(context.Background(), "acme", "complianceResult")
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStore_GetError(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(`SELECT kv_value FROM workspace_kv`).WillReturnError(errors.New("bad connection"))

	_, err := store.Get(context.Background(), "acme", "k")
	assert.ErrorContains(t, err, "bad connection")
}

func TestKVStore_Set(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec(`INSERT INTO workspace_kv .* ON DUPLICATE KEY UPDATE`).
		WithArgs("acme", "complianceResult", []byte(`{"status":"success"}`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Set(context.Background(), "acme", "complianceResult", []byte(`{"status":"success"}`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStore_EnsureSchema(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS workspace_kv`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
