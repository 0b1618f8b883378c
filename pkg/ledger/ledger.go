// Package ledger holds each user's expense records in memory. Records are
// strictly tenant-scoped: no operation can see or touch another user's
// ledger, and ids are only unique within a single ledger.
package ledger

import (
	"errors"
	"sort"
	"sync"

	"brokemate/models"
)

// ErrNotFound is returned when an operation targets an id that does not
// exist in the caller's own ledger. Ids living in other users' ledgers are
// indistinguishable from nonexistent ones.
var ErrNotFound = errors.New("expense not found")

// ErrInvalidFlag is returned by SetFlag for values other than red or green.
var ErrInvalidFlag = errors.New("invalid flag")

// Store maps usernames to their ledgers. The outer RWMutex only guards the
// map; each ledger carries its own lock so operations on different users do
// not block each other.
type Store struct {
	mu      sync.RWMutex
	ledgers map[string]*userLedger
}

type userLedger struct {
	mu      sync.Mutex
	records []models.Expense
}

func NewStore() *Store {
	return &Store{ledgers: make(map[string]*userLedger)}
}

// CreateLedger ensures an empty ledger exists for the username. Called as a
// side effect of registration; idempotent.
func (s *Store) CreateLedger(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.ledgers[username]; !exists {
		s.ledgers[username] = &userLedger{}
	}
}

func (s *Store) ledgerFor(username string) *userLedger {
	s.mu.RLock()
	l, exists := s.ledgers[username]
	s.mu.RUnlock()
	if exists {
		return l
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, exists = s.ledgers[username]; !exists {
		l = &userLedger{}
		s.ledgers[username] = l
	}
	return l
}

// List returns a copy of the user's records sorted by date descending.
// Records sharing a date keep their insertion order. Unknown users get an
// empty slice, never an error.
func (s *Store) List(username string) []models.Expense {
	s.mu.RLock()
	l, exists := s.ledgers[username]
	s.mu.RUnlock()
	if !exists {
		return []models.Expense{}
	}
	l.mu.Lock()
	out := make([]models.Expense, len(l.records))
	copy(out, l.records)
	l.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Insert appends a new record with id max(existing)+1 and no flag. Deleting
// the highest-id record therefore frees its id for the next insert; lower
// ids are never reused while a higher one exists.
func (s *Store) Insert(username string, amount float64, category, description string, date models.Date) models.Expense {
	l := s.ledgerFor(username)
	l.mu.Lock()
	defer l.mu.Unlock()
	maxID := 0
	for _, r := range l.records {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	record := models.Expense{
		ID:          maxID + 1,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        date,
	}
	l.records = append(l.records, record)
	return record
}

// Update replaces every field except id and flag on the matching record.
func (s *Store) Update(username string, id int, amount float64, category, description string, date models.Date) (models.Expense, error) {
	l := s.ledgerFor(username)
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.records {
		if l.records[i].ID == id {
			l.records[i].Amount = amount
			l.records[i].Category = category
			l.records[i].Description = description
			l.records[i].Date = date
			return l.records[i], nil
		}
	}
	return models.Expense{}, ErrNotFound
}

// SetFlag mutates only the flag field of the matching record.
func (s *Store) SetFlag(username string, id int, flag models.Flag) (models.Expense, error) {
	if !flag.Valid() {
		return models.Expense{}, ErrInvalidFlag
	}
	l := s.ledgerFor(username)
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.records {
		if l.records[i].ID == id {
			f := flag
			l.records[i].Flag = &f
			return l.records[i], nil
		}
	}
	return models.Expense{}, ErrNotFound
}

// Delete removes the matching record, failing when nothing matched.
func (s *Store) Delete(username string, id int) error {
	l := s.ledgerFor(username)
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.records[:0]
	for _, r := range l.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(l.records) {
		return ErrNotFound
	}
	l.records = kept
	return nil
}
