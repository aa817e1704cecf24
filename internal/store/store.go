// Package store holds the process-wide cached copy of transactions and
// categories together with the UI selection state, and mediates every
// mutation through the remote gateway. Mutations are response-driven: the
// local cache changes only after the remote call succeeds.
package store

import (
	"context"
	"sync"
	"time"

	"tally/internal/gateway"
	"tally/internal/logger"
	"tally/internal/models"
)

const (
	defaultSuccessRevert = 2 * time.Second
	defaultFailureRevert = 3 * time.Second
)

// Snapshot is a consistent read-only copy of the store's state.
type Snapshot struct {
	Transactions []models.Transaction `json:"transactions"`
	Categories   []models.Category    `json:"categories"`
	CurrentDate  string               `json:"currentDate"`
	DateRange    models.DateRange     `json:"dateRange"`
	SearchFilter models.SearchFilter  `json:"searchFilter"`
	IsLoading    bool                 `json:"isLoading"`
	Initialized  bool                 `json:"initialized"`
	Error        string               `json:"error,omitempty"`
	SyncStatus   models.SyncStatus    `json:"syncStatus"`
}

// Store is the single mutable owner of the cached entity lists. All reads go
// through Snapshot; all writes happen inside a mutator while holding the
// lock, so readers never observe a half-applied mutation.
type Store struct {
	mu           sync.Mutex
	transactions []models.Transaction
	categories   []models.Category
	currentDate  string
	dateRange    models.DateRange
	searchFilter models.SearchFilter
	isLoading    bool
	initialized  bool
	err          string
	syncStatus   models.SyncStatus

	// syncGen is a generation token for the sync-status machine. Each mutator
	// bumps it on entry; a revert timer only fires if its token is still the
	// latest, so a stale timer never clobbers a later mutator's status.
	syncGen uint64

	transactionsGW gateway.TransactionGateway
	categoriesGW   gateway.CategoryGateway

	successRevert time.Duration
	failureRevert time.Duration
	lenientDelete bool
	now           func() time.Time

	subMu       sync.Mutex
	subscribers map[int]func(Snapshot)
	nextSubID   int
}

// Option configures a Store.
type Option func(*Store)

// WithSyncRevertDelays overrides how long synced/error statuses are shown
// before reverting to idle.
func WithSyncRevertDelays(success, failure time.Duration) Option {
	return func(s *Store) {
		s.successRevert = success
		s.failureRevert = failure
	}
}

// WithLenientCategoryDelete restores the historical delete behavior: the
// local cache drops the category even when the remote guard deleted zero
// rows. The cache then diverges from the remote store until the next reload.
func WithLenientCategoryDelete() Option {
	return func(s *Store) { s.lenientDelete = true }
}

// WithClock overrides the time source used for timestamps and the current
// date default.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store backed by the given gateways.
func New(transactions gateway.TransactionGateway, categories gateway.CategoryGateway, opts ...Option) *Store {
	s := &Store{
		transactionsGW: transactions,
		categoriesGW:   categories,
		dateRange:      models.DateRangeMonth,
		syncStatus:     models.SyncStatusIdle,
		successRevert:  defaultSuccessRevert,
		failureRevert:  defaultFailureRevert,
		now:            time.Now,
		subscribers:    make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.currentDate = s.today()
	return s
}

func (s *Store) today() string {
	return s.now().Format("2006-01-02")
}

// Snapshot returns a copy of the current state. The entity slices are copied
// so callers can hold on to them across later mutations.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	transactions := make([]models.Transaction, len(s.transactions))
	copy(transactions, s.transactions)
	categories := make([]models.Category, len(s.categories))
	copy(categories, s.categories)

	return Snapshot{
		Transactions: transactions,
		Categories:   categories,
		CurrentDate:  s.currentDate,
		DateRange:    s.dateRange,
		SearchFilter: s.searchFilter,
		IsLoading:    s.isLoading,
		Initialized:  s.initialized,
		Error:        s.err,
		SyncStatus:   s.syncStatus,
	}
}

// Subscribe registers a listener invoked after every state change with a
// fresh snapshot. The returned function unsubscribes the listener.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify() {
	snap := s.Snapshot()
	s.subMu.Lock()
	listeners := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		listeners = append(listeners, fn)
	}
	s.subMu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

// beginSync marks a mutator's entry and returns its generation token.
func (s *Store) beginSync() uint64 {
	s.mu.Lock()
	s.syncGen++
	gen := s.syncGen
	s.syncStatus = models.SyncStatusSyncing
	s.mu.Unlock()
	s.notify()
	return gen
}

// completeSync records the mutator's outcome and schedules the revert to
// idle. apply, when non-nil, mutates the cached lists under the lock before
// the status is published.
func (s *Store) completeSync(gen uint64, failed bool, apply func()) {
	s.mu.Lock()
	if apply != nil {
		apply()
	}
	status := models.SyncStatusSynced
	delay := s.successRevert
	if failed {
		status = models.SyncStatusError
		delay = s.failureRevert
	}
	s.syncStatus = status
	s.mu.Unlock()
	s.notify()

	time.AfterFunc(delay, func() {
		s.mu.Lock()
		stale := s.syncGen != gen
		if !stale {
			s.syncStatus = models.SyncStatusIdle
		}
		s.mu.Unlock()
		if !stale {
			s.notify()
		}
	})
}

// Initialize loads both entity lists from the remote store. Both fetches run
// concurrently and both must succeed; on any failure the cache stays empty,
// the session error is set, and the caller is responsible for retrying.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	s.isLoading = true
	s.err = ""
	s.mu.Unlock()
	s.notify()

	var (
		wg           sync.WaitGroup
		transactions []models.Transaction
		categories   []models.Category
		txErr        error
		catErr       error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		transactions, txErr = s.transactionsGW.GetAll(ctx)
	}()
	go func() {
		defer wg.Done()
		categories, catErr = s.categoriesGW.GetAll(ctx)
	}()
	wg.Wait()

	err := txErr
	if err == nil {
		err = catErr
	}
	if err != nil {
		logger.Get().Errorw("store bootstrap failed", "error", err)
		s.mu.Lock()
		s.isLoading = false
		s.err = err.Error()
		s.mu.Unlock()
		s.notify()
		return err
	}

	s.mu.Lock()
	s.transactions = transactions
	s.categories = categories
	s.isLoading = false
	s.initialized = true
	s.mu.Unlock()
	s.notify()
	return nil
}

// SetCurrentDate replaces the selected calendar date.
func (s *Store) SetCurrentDate(date string) {
	s.mu.Lock()
	s.currentDate = date
	s.mu.Unlock()
	s.notify()
}

// SetDateRange replaces the statistics granularity.
func (s *Store) SetDateRange(r models.DateRange) {
	s.mu.Lock()
	s.dateRange = r
	s.mu.Unlock()
	s.notify()
}

// SetSearchFilter replaces the transient filter criteria.
func (s *Store) SetSearchFilter(f models.SearchFilter) {
	s.mu.Lock()
	s.searchFilter = f
	s.mu.Unlock()
	s.notify()
}

// ClearSearchFilter resets the filter criteria.
func (s *Store) ClearSearchFilter() {
	s.SetSearchFilter(models.SearchFilter{})
}

// ClearError resets the session error so the UI can retry bootstrap.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
	s.notify()
}

// ClearAllData deletes every transaction remotely, then resets the cached
// transaction list, the selection state, and the filter. Categories are
// deliberately left untouched on both sides.
func (s *Store) ClearAllData(ctx context.Context) error {
	s.mu.Lock()
	s.isLoading = true
	s.err = ""
	s.mu.Unlock()
	s.notify()

	if err := s.transactionsGW.DeleteAll(ctx); err != nil {
		logger.Get().Errorw("clear all data failed", "error", err)
		s.mu.Lock()
		s.isLoading = false
		s.err = err.Error()
		s.mu.Unlock()
		s.notify()
		return err
	}

	s.mu.Lock()
	s.transactions = nil
	s.currentDate = s.today()
	s.dateRange = models.DateRangeMonth
	s.searchFilter = models.SearchFilter{}
	s.isLoading = false
	s.mu.Unlock()
	s.notify()
	return nil
}
