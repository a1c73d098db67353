// Package memory is a process-local record store for development and tests.
// It implements the same ports as the postgres adapter; every operation on
// the shared Store runs under one mutex, so the claim is a compare-and-set.
package memory

import (
	"sort"
	"sync"
	"time"

	"grameego/internal/core/domain/model/delivery"
	"grameego/internal/core/domain/model/kernel"
	"grameego/internal/pkg/errs"

	"github.com/google/uuid"
)

// Store holds delivery requests as snapshots keyed by id.
type Store struct {
	mu      sync.RWMutex
	records map[uuid.UUID]delivery.Snapshot
}

func NewStore() *Store {
	return &Store{records: make(map[uuid.UUID]delivery.Snapshot)}
}

// Len is the number of stored requests.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) load(id kernel.UUID) (delivery.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.records[id.Google()]
	return clone(snap), ok
}

// claim is the conditional update. The aggregate decides claimability under
// the store lock, so only a Pending request with no driver matches.
func (s *Store) claim(id kernel.UUID, driver kernel.Actor, at time.Time) (delivery.Snapshot, delivery.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.records[id.Google()]
	if !ok {
		return delivery.Snapshot{}, delivery.Snapshot{}, errs.NewConflictError("this request has already been taken")
	}

	aggregate, err := delivery.RestoreDeliveryRequest(clone(current))
	if err != nil {
		return delivery.Snapshot{}, delivery.Snapshot{}, err
	}
	if err := aggregate.Claim(driver, at); err != nil {
		return delivery.Snapshot{}, delivery.Snapshot{}, err
	}

	claimed := aggregate.Snapshot()
	s.records[id.Google()] = clone(claimed)

	return clone(current), claimed, nil
}

// revertClaim undoes claim if nobody has written the record since.
func (s *Store) revertClaim(before, claimed delivery.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.records[claimed.ID.Google()]
	if ok && current.UpdatedAt.Equal(claimed.UpdatedAt) && sameDriver(current.DriverID, claimed.DriverID) {
		s.records[claimed.ID.Google()] = before
	}
}

// apply commits a batch of staged writes atomically. Updates and deletes
// carry the UpdatedAt they read; a mismatch means another unit of work got
// there first and the whole batch is refused.
func (s *Store) apply(writes []write) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range writes {
		current, exists := s.records[w.snapshot.ID.Google()]
		switch w.kind {
		case writeAdd:
			if exists {
				return errs.NewConflictError("delivery " + w.snapshot.ID.String() + " already exists")
			}
		case writeUpdate, writeDelete:
			if !exists {
				return errs.NewObjectNotFoundError("delivery", w.snapshot.ID.String())
			}
			if !current.UpdatedAt.Equal(w.readAt) {
				return errs.NewConflictError("delivery " + w.snapshot.ID.String() + " was modified concurrently")
			}
		}
	}

	for _, w := range writes {
		if w.kind == writeDelete {
			delete(s.records, w.snapshot.ID.Google())
			continue
		}
		s.records[w.snapshot.ID.Google()] = clone(w.snapshot)
	}
	return nil
}

func (s *Store) filter(match func(delivery.Snapshot) bool, less func(a, b delivery.Snapshot) bool) []delivery.Snapshot {
	s.mu.RLock()
	list := make([]delivery.Snapshot, 0)
	for _, snap := range s.records {
		if match(snap) {
			list = append(list, clone(snap))
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(list, func(i, j int) bool {
		if less(list[i], list[j]) {
			return true
		}
		if less(list[j], list[i]) {
			return false
		}
		return list[i].ID.String() < list[j].ID.String()
	})
	return list
}

func clone(s delivery.Snapshot) delivery.Snapshot {
	items := make([]delivery.LineItem, len(s.Basket.Items))
	copy(items, s.Basket.Items)
	s.Basket.Items = items

	if s.DriverID != nil {
		id := *s.DriverID
		s.DriverID = &id
	}
	return s
}

func sameDriver(a, b *kernel.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.IsEqual(*b)
}
