package reconcile

import (
	"maps"
	"sort"
	"time"
)

// Store is the keyed collection of known servers. It is not safe for
// concurrent use; the probe pool funnels results through a single writer.
type Store struct {
	records map[string]*ServerRecord
	dropped int
}

// MergeResult counts the outcome of a merge.
type MergeResult struct {
	// Added counts new addresses.
	Added int
	// Refreshed counts addresses that were already known.
	Refreshed int
	// Invalid counts discovered entries whose address could not be normalized.
	Invalid int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{records: make(map[string]*ServerRecord)}
}

// NewStoreFrom builds a store from persisted records. Records with an
// invalid address are dropped. Duplicate addresses are folded into one
// record keeping the earliest FirstSeen and the latest LastSeen. Dropped
// reports the number of discarded records.
func NewStoreFrom(records []ServerRecord) *Store {
	s := NewStore()
	for _, rec := range records {
		s.add(rec)
	}
	return s
}

func (s *Store) add(rec ServerRecord) {
	addr, err := NormalizeAddress(rec.Address)
	if err != nil {
		s.dropped++
		return
	}
	rec = rec.Clone()
	rec.Address = addr
	if rec.FirstSeen.IsZero() {
		rec.FirstSeen = rec.LastSeen
	}
	if rec.LastSeen.Before(rec.FirstSeen) {
		rec.LastSeen = rec.FirstSeen
	}

	existing, ok := s.records[addr]
	if !ok {
		s.records[addr] = &rec
		return
	}
	if rec.FirstSeen.Before(existing.FirstSeen) {
		existing.FirstSeen = rec.FirstSeen
	}
	if rec.LastSeen.After(existing.LastSeen) {
		existing.LastSeen = rec.LastSeen
		existing.Status = rec.Status
		existing.Metadata = rec.Metadata
	}
}

// Dropped returns how many records NewStoreFrom discarded because their
// address could not be normalized.
func (s *Store) Dropped() int {
	return s.dropped
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// Get returns a copy of the record for address.
func (s *Store) Get(address string) (ServerRecord, bool) {
	rec, ok := s.records[address]
	if !ok {
		return ServerRecord{}, false
	}
	return rec.Clone(), true
}

// Addresses returns all keys in sorted order.
func (s *Store) Addresses() []string {
	out := make([]string, 0, len(s.records))
	for addr := range s.records {
		out = append(out, addr)
	}
	sort.Strings(out)
	return out
}

// Records returns copies of all records sorted by address.
func (s *Store) Records() []ServerRecord {
	out := make([]ServerRecord, 0, len(s.records))
	for _, addr := range s.Addresses() {
		out = append(out, s.records[addr].Clone())
	}
	return out
}

// Merge folds a discovery result into the store at time now.
//
// New addresses get FirstSeen = LastSeen = now. Known addresses get
// LastSeen = now and their metadata replaced when the discovery carries
// any. Known addresses missing from the result are left untouched. Merging
// the same result twice at the same now yields the same store.
func (s *Store) Merge(discovered []Discovered, now time.Time) MergeResult {
	var res MergeResult
	seen := make(map[string]struct{}, len(discovered))

	for _, d := range discovered {
		addr, err := NormalizeAddress(d.Address)
		if err != nil {
			res.Invalid++
			continue
		}

		rec, ok := s.records[addr]
		if !ok {
			rec = &ServerRecord{Address: addr, FirstSeen: now, LastSeen: now}
			s.records[addr] = rec
			res.Added++
		} else if _, dup := seen[addr]; !dup {
			res.Refreshed++
		}
		seen[addr] = struct{}{}

		s.touch(rec, now)
		if len(d.Metadata) > 0 {
			rec.Metadata = maps.Clone(d.Metadata)
		}
	}
	return res
}

// touch sets LastSeen to now, never letting it fall behind FirstSeen.
func (s *Store) touch(rec *ServerRecord, now time.Time) {
	rec.LastSeen = now
	if rec.LastSeen.Before(rec.FirstSeen) {
		rec.LastSeen = rec.FirstSeen
	}
}

// Prune removes every record whose LastSeen is older than now - ttl and
// returns how many were removed. A zero ttl keeps only records touched at
// exactly now.
func (s *Store) Prune(ttl time.Duration, now time.Time) int {
	if ttl < 0 {
		ttl = 0
	}
	cutoff := now.Add(-ttl)
	removed := 0
	for addr, rec := range s.records {
		if rec.LastSeen.Before(cutoff) {
			delete(s.records, addr)
			removed++
		}
	}
	return removed
}

// ApplyProbe records a successful probe. When refresh is set LastSeen is
// advanced to now, since a live answer is evidence of presence.
func (s *Store) ApplyProbe(address string, status *ServerStatus, now time.Time, refresh bool) bool {
	rec, ok := s.records[address]
	if !ok {
		return false
	}
	rec.Status = status.Clone()
	if refresh {
		s.touch(rec, now)
	}
	return true
}

// MarkUnreachable records a failed probe. The record is kept and its
// LastSeen is not advanced; only the stale status is dropped.
func (s *Store) MarkUnreachable(address string) bool {
	rec, ok := s.records[address]
	if !ok {
		return false
	}
	rec.Status = nil
	return true
}
