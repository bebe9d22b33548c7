package emails

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clippy-app/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	records  []models.EmailRecord
	total    int64
	listErr  error
	countErr error

	listCalls  int
	countCalls int
}

func (f *fakeStore) Insert(_ context.Context, email string) error { return nil }

func (f *fakeStore) ListAll(_ context.Context) ([]models.EmailRecord, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.records, nil
}

func (f *fakeStore) Count(_ context.Context) (int64, error) {
	f.countCalls++
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.total, nil
}

func record(email string, ts time.Time, status models.Status) models.EmailRecord {
	return models.EmailRecord{Email: email, Timestamp: ts, Status: status}
}

func TestServiceLoad(t *testing.T) {
	now := time.Now()
	st := &fakeStore{
		records: []models.EmailRecord{
			record("c@d.com", now, models.StatusActive),
			record("a@b.com", now.Add(-time.Hour), models.StatusActive),
		},
		total: 2,
	}

	overview, err := NewService(st).Load(context.Background())

	require.NoError(t, err)
	assert.Len(t, overview.Records, 2)
	assert.Equal(t, int64(2), overview.Total)
	assert.Equal(t, 1, st.listCalls)
	assert.Equal(t, 1, st.countCalls, "count is its own round-trip")
}

func TestServiceLoadListFailure(t *testing.T) {
	st := &fakeStore{listErr: ErrStoreUnavailable}

	_, err := NewService(st).Load(context.Background())

	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestServiceLoadCountFailure(t *testing.T) {
	st := &fakeStore{countErr: errors.New("count failed")}

	_, err := NewService(st).Load(context.Background())

	assert.Error(t, err)
}

func TestFilterEmptyTermReturnsAll(t *testing.T) {
	records := []models.EmailRecord{
		record("a@b.com", time.Now(), models.StatusActive),
		record("c@d.com", time.Now(), models.StatusActive),
	}

	assert.Equal(t, records, Filter(records, ""))
	assert.Equal(t, records, Filter(records, "   "))
}

func TestFilterMatchesEmailCaseInsensitively(t *testing.T) {
	records := []models.EmailRecord{
		record("Alice@Example.com", time.Now(), models.StatusActive),
		record("bob@other.org", time.Now(), models.StatusActive),
	}

	got := Filter(records, "ALICE")

	require.Len(t, got, 1)
	assert.Equal(t, "Alice@Example.com", got[0].Email)
}

func TestFilterMatchesStatus(t *testing.T) {
	records := []models.EmailRecord{
		record("a@b.com", time.Now(), models.StatusActive),
		record("c@d.com", time.Now(), models.StatusUnsubscribed),
	}

	got := Filter(records, "unsub")

	require.Len(t, got, 1)
	assert.Equal(t, "c@d.com", got[0].Email)
}

func TestFilterMatchesFormattedDate(t *testing.T) {
	ts := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)
	records := []models.EmailRecord{
		record("a@b.com", ts, models.StatusActive),
		record("c@d.com", ts.AddDate(0, -2, 0), models.StatusActive),
	}

	got := Filter(records, records[0].DateString())

	require.Len(t, got, 1)
	assert.Equal(t, "a@b.com", got[0].Email)
}

func TestFilterPreservesOrder(t *testing.T) {
	now := time.Now()
	records := []models.EmailRecord{
		record("z@match.com", now, models.StatusActive),
		record("skip@other.org", now, models.StatusActive),
		record("a@match.com", now, models.StatusActive),
	}

	got := Filter(records, "match.com")

	require.Len(t, got, 2)
	assert.Equal(t, "z@match.com", got[0].Email)
	assert.Equal(t, "a@match.com", got[1].Email)
}

func TestFilterNoMatches(t *testing.T) {
	records := []models.EmailRecord{
		record("a@b.com", time.Now(), models.StatusActive),
	}

	assert.Empty(t, Filter(records, "zzz"))
}
