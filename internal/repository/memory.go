package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/campusmarket/negotiation/internal/models"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// MemoryTransactionStore is an in-memory TransactionRepository with the same
// compare-and-swap semantics as the PostgreSQL one. Records are copied on the
// way in and out so callers never share state with the store.
type MemoryTransactionStore struct {
	mu    sync.Mutex
	txns  map[uuid.UUID]*models.Transaction
	clock clockwork.Clock
}

// NewMemoryTransactionStore creates an empty store
func NewMemoryTransactionStore() *MemoryTransactionStore {
	return &MemoryTransactionStore{
		txns:  make(map[uuid.UUID]*models.Transaction),
		clock: clockwork.NewRealClock(),
	}
}

// WithClock sets the clock used for created_at and updated_at
func (m *MemoryTransactionStore) WithClock(clock clockwork.Clock) *MemoryTransactionStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock = clock
	return m
}

func (m *MemoryTransactionStore) Create(ctx context.Context, txn *models.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	if _, ok := m.txns[txn.ID]; ok {
		return fmt.Errorf("%w: %s", models.ErrDuplicateTransaction, txn.ID)
	}
	if txn.Version == 0 {
		txn.Version = 1
	}

	now := m.clock.Now().UTC()
	txn.CreatedAt = now
	txn.UpdatedAt = now
	m.txns[txn.ID] = txn.Clone()
	return nil
}

func (m *MemoryTransactionStore) Load(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	txn, ok := m.txns[id]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", id, models.ErrNotFound)
	}
	return txn.Clone(), nil
}

func (m *MemoryTransactionStore) CompareAndSwap(ctx context.Context, id uuid.UUID, expectedVersion int64, next *models.Transaction) (*models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.txns[id]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", id, models.ErrNotFound)
	}
	if current.Version != expectedVersion {
		return nil, fmt.Errorf("transaction %s at version %d: %w", id, expectedVersion, models.ErrVersionConflict)
	}

	saved := next.Clone()
	saved.ID = current.ID
	saved.ListingID = current.ListingID
	saved.BuyerID = current.BuyerID
	saved.SellerID = current.SellerID
	saved.CreatedAt = current.CreatedAt
	saved.Version = current.Version + 1
	saved.UpdatedAt = m.clock.Now().UTC()

	m.txns[id] = saved
	return saved.Clone(), nil
}

func (m *MemoryTransactionStore) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var txns []*models.Transaction
	for _, txn := range m.txns {
		if txn.BuyerID == userID || txn.SellerID == userID {
			txns = append(txns, txn.Clone())
		}
	}
	sort.Slice(txns, func(i, j int) bool {
		return txns[i].CreatedAt.After(txns[j].CreatedAt)
	})
	return txns, nil
}

// MemoryCatalog serves listings and profiles from memory
type MemoryCatalog struct {
	mu       sync.RWMutex
	listings map[uuid.UUID]models.Listing
	profiles map[uuid.UUID]models.Profile
}

// NewMemoryCatalog creates an empty catalog
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		listings: make(map[uuid.UUID]models.Listing),
		profiles: make(map[uuid.UUID]models.Profile),
	}
}

// PutListing adds or replaces a listing
func (c *MemoryCatalog) PutListing(listing models.Listing) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listings[listing.ID] = listing
}

// PutProfile adds or replaces a profile
func (c *MemoryCatalog) PutProfile(profile models.Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profiles[profile.ID] = profile
}

func (c *MemoryCatalog) GetListing(_ context.Context, listingID uuid.UUID) (*models.Listing, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	listing, ok := c.listings[listingID]
	if !ok {
		return nil, fmt.Errorf("listing %s: %w", listingID, models.ErrNotFound)
	}
	return &listing, nil
}

func (c *MemoryCatalog) GetProfile(_ context.Context, userID uuid.UUID) (*models.Profile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	profile, ok := c.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", userID, models.ErrNotFound)
	}
	return &profile, nil
}

type idempotencyEntryKey struct {
	key         string
	requestPath string
}

// MemoryIdempotencyStore keeps replayable responses in memory
type MemoryIdempotencyStore struct {
	mu      sync.Mutex
	entries map[idempotencyEntryKey]models.IdempotencyKey
}

// NewMemoryIdempotencyStore creates an empty store
func NewMemoryIdempotencyStore() *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{entries: make(map[idempotencyEntryKey]models.IdempotencyKey)}
}

func (s *MemoryIdempotencyStore) Get(_ context.Context, key, requestPath string) (*models.IdempotencyKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[idempotencyEntryKey{key, requestPath}]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// Store keeps the first response recorded for a key and path
func (s *MemoryIdempotencyStore) Store(_ context.Context, idemKey *models.IdempotencyKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := idempotencyEntryKey{idemKey.Key, idemKey.RequestPath}
	if _, exists := s.entries[k]; exists {
		return nil
	}
	entry := *idemKey
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.entries[k] = entry
	return nil
}

func (s *MemoryIdempotencyStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for k, entry := range s.entries {
		if entry.CreatedAt.Before(cutoff) {
			delete(s.entries, k)
			deleted++
		}
	}
	return deleted, nil
}

// MemoryReviewStore keeps at most one review per transaction in memory
type MemoryReviewStore struct {
	mu      sync.Mutex
	reviews map[uuid.UUID]*models.Review
	clock   clockwork.Clock
}

// NewMemoryReviewStore creates an empty store
func NewMemoryReviewStore() *MemoryReviewStore {
	return &MemoryReviewStore{
		reviews: make(map[uuid.UUID]*models.Review),
		clock:   clockwork.NewRealClock(),
	}
}

// WithClock sets the clock used for created_at and updated_at
func (m *MemoryReviewStore) WithClock(clock clockwork.Clock) *MemoryReviewStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock = clock
	return m
}

func (m *MemoryReviewStore) Create(ctx context.Context, review *models.Review) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.reviews[review.TransactionID]; ok {
		return fmt.Errorf("transaction %s: %w", review.TransactionID, models.ErrDuplicateReview)
	}
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}

	now := m.clock.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now
	m.reviews[review.TransactionID] = review.Clone()
	return nil
}

func (m *MemoryReviewStore) GetByTransaction(ctx context.Context, transactionID uuid.UUID) (*models.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	review, ok := m.reviews[transactionID]
	if !ok {
		return nil, fmt.Errorf("review of transaction %s: %w", transactionID, models.ErrNotFound)
	}
	return review.Clone(), nil
}

func (m *MemoryReviewStore) Update(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.reviews[review.TransactionID]
	if !ok {
		return nil, fmt.Errorf("review of transaction %s: %w", review.TransactionID, models.ErrNotFound)
	}

	saved := current.Clone()
	saved.Rating = review.Rating
	saved.WhatWentWell = append([]models.ReviewTag{}, review.WhatWentWell...)
	saved.AdditionalComments = review.AdditionalComments
	saved.UpdatedAt = m.clock.Now().UTC()

	m.reviews[review.TransactionID] = saved
	return saved.Clone(), nil
}

func (m *MemoryReviewStore) Delete(ctx context.Context, transactionID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.reviews[transactionID]; !ok {
		return fmt.Errorf("review of transaction %s: %w", transactionID, models.ErrNotFound)
	}
	delete(m.reviews, transactionID)
	return nil
}

var (
	_ TransactionRepository = (*MemoryTransactionStore)(nil)
	_ ListingRepository     = (*MemoryCatalog)(nil)
	_ ProfileRepository     = (*MemoryCatalog)(nil)
	_ IdempotencyRepository = (*MemoryIdempotencyStore)(nil)
	_ ReviewRepository      = (*MemoryReviewStore)(nil)
)
