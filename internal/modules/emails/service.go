package emails

import (
	"context"
	"strings"

	"github.com/clippy-app/core/internal/models"
)

// Overview is what the management screen loads: the materialized record
// list plus the independently-counted total. A record inserted between the
// two round-trips may be reflected in one and not the other; that race is
// accepted, not papered over.
type Overview struct {
	Records []models.EmailRecord
	Total   int64
}

// Service is the management view's data side: load everything once, then
// filter in memory.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Load runs ListAll and Count concurrently and joins before returning.
// Either failure is surfaced; the admin screen treats it as blocking.
func (s *Service) Load(ctx context.Context) (*Overview, error) {
	type listResult struct {
		records []models.EmailRecord
		err     error
	}
	type countResult struct {
		total int64
		err   error
	}

	listCh := make(chan listResult, 1)
	countCh := make(chan countResult, 1)

	go func() {
		records, err := s.store.ListAll(ctx)
		listCh <- listResult{records: records, err: err}
	}()
	go func() {
		total, err := s.store.Count(ctx)
		countCh <- countResult{total: total, err: err}
	}()

	list := <-listCh
	count := <-countCh
	if list.err != nil {
		return nil, list.err
	}
	if count.err != nil {
		return nil, count.err
	}
	return &Overview{Records: list.records, Total: count.total}, nil
}

// Filter narrows already-loaded records by a case-insensitive substring
// match against the email, the formatted date, or the status. It never
// re-queries the store and preserves the input order.
func Filter(records []models.EmailRecord, term string) []models.EmailRecord {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return records
	}

	filtered := make([]models.EmailRecord, 0, len(records))
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.Email), term) ||
			strings.Contains(strings.ToLower(rec.DateString()), term) ||
			strings.Contains(strings.ToLower(string(rec.Status)), term) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}
