package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestBlobRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewBlobRepo(openTestDB(t))

	got, err := repo.Get(ctx, KeyHabits)
	require.NoError(t, err)
	assert.Nil(t, got, "missing key should return nil")

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Put(ctx, KeyHabits, []byte(`[{"id":"a"}]`), now))
	require.NoError(t, repo.Put(ctx, KeyHabits, []byte(`[{"id":"b"}]`), now.Add(time.Minute)))

	got, err = repo.Get(ctx, KeyHabits)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"b"}]`, string(got))

	keys, err := repo.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyHabits}, keys)

	require.NoError(t, repo.Delete(ctx, KeyHabits))
	got, err = repo.Get(ctx, KeyHabits)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	boom := errors.New("boom")
	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		if err := NewBlobRepo(tx).Put(ctx, KeyTasks, []byte(`[]`), now); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := NewBlobRepo(db).Get(ctx, KeyTasks)
	require.NoError(t, err)
	assert.Nil(t, got, "write inside failed tx must not persist")

	require.NoError(t, WithTx(ctx, db, func(tx *sql.Tx) error {
		return NewBlobRepo(tx).Put(ctx, KeyTasks, []byte(`[]`), now)
	}))
	got, err = NewBlobRepo(db).Get(ctx, KeyTasks)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}

func TestLedgerRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepo(openTestDB(t))
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	for i, amount := range []int{15, 20, 30} {
		_, err := repo.Insert(ctx, LedgerEntry{
			SourceKind: "habit",
			SourceID:   "h1",
			Amount:     amount,
			LevelAfter: 1,
			AwardedAt:  base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	recent, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 30, recent[0].Amount)
	assert.Equal(t, 20, recent[1].Amount)
	assert.True(t, recent[0].AwardedAt.Equal(base.Add(2*time.Hour)))

	sum, err := repo.SumSince(ctx, base.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 50, sum)
}
