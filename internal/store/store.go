// Package store wraps the SQLite handle with the two guarantees the ledger
// depends on: multi-collection writes are all-or-nothing, and observers of a
// collection hear about every committed change to it.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

type Collection string

const (
	User        Collection = "user"
	Ingredients Collection = "ingredients"
	Fridge      Collection = "fridge"
	Recipes     Collection = "recipes"
	Logs        Collection = "logs"
)

// All lists every persisted collection in restore order.
var All = []Collection{User, Ingredients, Fridge, Recipes, Logs}

// ErrTxFailed marks a failure of the transaction machinery itself (begin or
// commit), as opposed to an error returned by the write function.
var ErrTxFailed = errors.New("transaction failed")

// Change is delivered to subscribers after a commit.
type Change struct {
	Collections []Collection
}

func (c Change) Touches(col Collection) bool {
	for _, x := range c.Collections {
		if x == col {
			return true
		}
	}
	return false
}

type subscription struct {
	fn          func(Change)
	collections map[Collection]bool
}

type Store struct {
	db  *sql.DB
	log *logrus.Logger

	mu     sync.Mutex
	nextID int
	subs   map[int]subscription
}

func New(db *sql.DB, logger *logrus.Logger) *Store {
	if logger == nil {
		logger = logrus.New()
	}
	return &Store{
		db:   db,
		log:  logger,
		subs: map[int]subscription{},
	}
}

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Logger() *logrus.Logger { return s.log }

func (s *Store) Close() error { return s.db.Close() }

// Subscribe registers fn for changes touching any of cols (all collections
// when none are given). The returned func cancels the subscription.
func (s *Store) Subscribe(fn func(Change), cols ...Collection) func() {
	if len(cols) == 0 {
		cols = All
	}
	set := make(map[Collection]bool, len(cols))
	for _, c := range cols {
		set[c] = true
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = subscription{fn: fn, collections: set}
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Update runs fn inside one transaction spanning cols. Any error rolls the
// whole write back; subscribers are notified only after a successful commit.
func (s *Store) Update(cols []Collection, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrTxFailed, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
			s.log.WithField("collections", cols).Debug("transaction rolled back")
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrTxFailed, err)
	}
	committed = true
	s.log.WithField("collections", cols).Debug("transaction committed")

	s.notify(Change{Collections: append([]Collection(nil), cols...)})
	return nil
}

func (s *Store) notify(change Change) {
	s.mu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	targets := make([]func(Change), 0, len(ids))
	for _, id := range ids {
		sub := s.subs[id]
		for _, c := range change.Collections {
			if sub.collections[c] {
				targets = append(targets, sub.fn)
				break
			}
		}
	}
	s.mu.Unlock()

	// Called outside the lock so a subscriber may read or subscribe again.
	for _, fn := range targets {
		fn(change)
	}
}
