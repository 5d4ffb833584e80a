package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"expensetracker/internal/cache"
	"expensetracker/internal/core"
)

const (
	ActivityFeedSize = 10
	summaryCacheSize = 1000
)

// SummaryService builds the home page summary. Totals and the transaction
// list are cached per user; the activity feed is read on every call since
// the worker writes it out of band.
type SummaryService struct {
	transactions TransactionStore
	activity     ActivityReader
	cache        *cache.LRUCache[core.Summary]
	group        singleflight.Group

	mu          sync.Mutex
	generations map[string]uint64
}

// NewSummaryService caches summaries for ttl. A zero ttl disables caching.
func NewSummaryService(transactions TransactionStore, activity ActivityReader, ttl time.Duration) *SummaryService {
	s := &SummaryService{
		transactions: transactions,
		activity:     activity,
		generations:  make(map[string]uint64),
	}
	if ttl > 0 {
		s.cache = cache.NewLRUCache[core.Summary](summaryCacheSize, ttl)
	}
	return s
}

// Cache exposes the underlying cache so it can be registered for expiry sweeps.
func (s *SummaryService) Cache() *cache.LRUCache[core.Summary] {
	return s.cache
}

func (s *SummaryService) Get(ctx context.Context, userID string) (core.Summary, error) {
	sum, ok := core.Summary{}, false
	if s.cache != nil {
		sum, ok = s.cache.Get(userID)
	}
	if !ok {
		v, err, _ := s.group.Do(userID, func() (interface{}, error) {
			return s.load(ctx, userID)
		})
		if err != nil {
			return core.Summary{}, err
		}
		sum = v.(core.Summary)
	}

	if s.activity != nil {
		entries, err := s.activity.ListActivity(ctx, userID, ActivityFeedSize)
		if err != nil {
			return core.Summary{}, fmt.Errorf("load activity: %w", err)
		}
		sum.Activity = entries
	}
	return sum, nil
}

func (s *SummaryService) load(ctx context.Context, userID string) (core.Summary, error) {
	gen := s.generation(userID)
	txs, err := s.transactions.ListTransactions(ctx, userID)
	if err != nil {
		return core.Summary{}, fmt.Errorf("load summary: %w", err)
	}
	sum := core.Summarize(txs)
	if s.cache != nil {
		s.mu.Lock()
		// A write since the read started makes this result stale.
		if s.generations[userID] == gen {
			s.cache.Set(userID, sum)
		}
		s.mu.Unlock()
	}
	return sum, nil
}

func (s *SummaryService) generation(userID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[userID]
}

// Invalidate drops the cached summary of userID and keeps any load already
// in flight from caching its result.
func (s *SummaryService) Invalidate(userID string) {
	s.mu.Lock()
	s.generations[userID]++
	if s.cache != nil {
		s.cache.Delete(userID)
	}
	s.mu.Unlock()
	s.group.Forget(userID)
}
