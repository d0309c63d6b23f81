package cache

import (
	"sync/atomic"

	"github.com/dreamware/logcore/internal/htable"
	"github.com/dreamware/logcore/internal/sortutil"
)

// Cache is the per-module summary view described in spec.md §4.4. One Cache
// exists per module, shared across every date partition for that module.
type Cache struct {
	Keymap    *htable.II32 // djb2(raw key) -> ck
	ckToHash  *htable.II32 // ck -> djb2(raw key), the reverse of Keymap
	Rootmap   *htable.IS32 // root ck -> root string (first observation)
	Datamap   *htable.IS32 // ck -> data string (first observation)
	Root      *htable.II32 // ck -> root ck
	Hits      *htable.II32 // ck -> sum of hits across all dates
	Visitors  *htable.II32 // ck -> sum of new-visitor events across all dates
	BW        *htable.IU64 // ck -> sum of bytes across all dates
	CumTS     *htable.IU64 // ck -> sum of serve time across all dates
	MaxTS     *htable.IU64 // ck -> max serve time across all dates
	Methods   *htable.II08 // ck -> method id (first observation)
	Protocols *htable.II08 // ck -> protocol id (first observation)

	nextCk uint32
}

// New returns an empty per-module cache.
func New() *Cache {
	return &Cache{
		Keymap:    htable.NewII32(),
		ckToHash:  htable.NewII32(),
		Rootmap:   htable.NewIS32(),
		Datamap:   htable.NewIS32(),
		Root:      htable.NewII32(),
		Hits:      htable.NewII32(),
		Visitors:  htable.NewII32(),
		BW:        htable.NewIU64(),
		CumTS:     htable.NewIU64(),
		MaxTS:     htable.NewIU64(),
		Methods:   htable.NewII08(),
		Protocols: htable.NewII08(),
	}
}

// Intern assigns (or looks up) the ck for rawKey, hashing it with djb2
// first. The second return value is true the first time rawKey's hash is
// seen by this cache.
func (c *Cache) Intern(rawKey string, djb2 func(string) uint32) (ck uint32, isNew bool) {
	return c.InternHashed(djb2(rawKey))
}

// InternHashed assigns (or looks up) the ck for an already-hashed key. A
// module store's KEYMAP is keyed by the same djb2 hash, so rebuilding the
// cache from a dated KEYMAP can call this directly without re-hashing a raw
// string (spec.md §4.4's rebuild_raw_data_cache).
func (c *Cache) InternHashed(hash uint32) (ck uint32, isNew bool) {
	if existing, ok := c.Keymap.Get(hash); ok {
		return existing, false
	}
	ck = atomic.AddUint32(&c.nextCk, 1)
	if res := c.Keymap.Insert(hash, ck); res == htable.AlreadyPresent {
		// Lost a race with a concurrent Intern of the same hash; use the
		// value that won.
		existing, _ := c.Keymap.Get(hash)
		return existing, false
	}
	c.ckToHash.Insert(ck, hash)
	return ck, true
}

// HashOf returns the djb2 hash a ck was assigned from, the input
// keymap_list_from_key (spec.md §4.6) needs to look a ck back up in a dated
// module store's KEYMAP.
func (c *Cache) HashOf(ck uint32) (uint32, bool) {
	return c.ckToHash.Get(ck)
}

// SetData records s as ck's data string if this is the first observation.
func (c *Cache) SetData(ck uint32, s string) {
	c.Datamap.Insert(ck, s)
}

// SetRootString records s as rootCk's root string if this is the first
// observation.
func (c *Cache) SetRootString(rootCk uint32, s string) {
	c.Rootmap.Insert(rootCk, s)
}

// SetRoot maps ck to rootCk. Overwritten on every call since a key's root
// should be stable in practice, but spec.md does not ask for first-write-
// wins semantics here the way it does for DATAMAP/ROOTMAP.
func (c *Cache) SetRoot(ck, rootCk uint32) {
	c.Root.InsertOrReplace(ck, rootCk)
}

// AddHits adds delta to ck's running hit sum and returns the new total.
func (c *Cache) AddHits(ck uint32, delta uint32) uint32 { return c.Hits.Increment(ck, delta) }

// AddVisitors adds delta to ck's running visitor sum and returns the new
// total.
func (c *Cache) AddVisitors(ck uint32, delta uint32) uint32 { return c.Visitors.Increment(ck, delta) }

// AddBW adds delta bytes to ck's running bandwidth sum.
func (c *Cache) AddBW(ck uint32, delta uint64) uint64 { return c.BW.Increment(ck, delta) }

// AddCumTS adds delta to ck's running cumulative serve-time sum.
func (c *Cache) AddCumTS(ck uint32, delta uint64) uint64 { return c.CumTS.Increment(ck, delta) }

// AssignMaxTS sets ck's MAXTS to max(current, v).
func (c *Cache) AssignMaxTS(ck uint32, v uint64) uint64 { return c.MaxTS.MaxAssign(ck, v) }

// SetMethod records methodID as ck's method if this is the first
// observation.
func (c *Cache) SetMethod(ck uint32, methodID uint8) { c.Methods.Insert(ck, methodID) }

// SetProtocol records protocolID as ck's protocol if this is the first
// observation.
func (c *Cache) SetProtocol(ck uint32, protocolID uint8) { c.Protocols.Insert(ck, protocolID) }

// TopN produces the ranked array parse_raw_data(module) returns (spec.md
// §4.4): one Entry per distinct ck, sized by Hits (or Datamap for a
// string-ranked module like "visitors"), sorted descending by hit count
// (or ascending lexicographically by data string), ties broken by ascending
// ck.
func (c *Cache) TopN(rankByString bool) []sortutil.Entry {
	if rankByString {
		entries := make([]sortutil.Entry, 0, c.Datamap.Size())
		c.Datamap.ForEach(func(ck uint32, s string) {
			entries = append(entries, sortutil.Entry{Key: ck, Data: s})
		})
		sortutil.SortRawStrData(entries)
		return entries
	}

	entries := make([]sortutil.Entry, 0, c.Hits.Size())
	c.Hits.ForEach(func(ck uint32, hits uint32) {
		entries = append(entries, sortutil.Entry{Key: ck, Value: uint64(hits)})
	})
	sortutil.SortRawNumData(entries)
	return entries
}

// MinMaxII32 scans t and returns its minimum and maximum value. ok is false
// for an empty table.
func MinMaxII32(t *htable.II32) (lo, hi uint32, ok bool) {
	first := true
	t.ForEach(func(_ uint32, v uint32) {
		if first {
			lo, hi, first = v, v, false
			return
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	})
	return lo, hi, !first
}

// MinMaxIU64 is MinMaxII32 for IU64-backed metrics (BW, CUMTS, MAXTS).
func MinMaxIU64(t *htable.IU64) (lo, hi uint64, ok bool) {
	first := true
	t.ForEach(func(_ uint32, v uint64) {
		if first {
			lo, hi, first = v, v, false
			return
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	})
	return lo, hi, !first
}
