package store

import "github.com/dreamware/logcore/internal/module"

// SumValid returns CNT_VALID summed across every date partition.
func (db *DB) SumValid() uint64 {
	db.mu.RLock()
	defer db.mu.RUnlock()
	var total uint64
	for _, ds := range db.dates {
		total += uint64(ds.Global.CntValid.GetOrZero(globalCounterKey))
	}
	return total
}

// SumBW returns CNT_BW summed across every date partition.
func (db *DB) SumBW() uint64 {
	db.mu.RLock()
	defer db.mu.RUnlock()
	var total uint64
	for _, ds := range db.dates {
		total += ds.Global.CntBW.GetOrZero(globalCounterKey)
	}
	return total
}

// hitIDsForCk maps a cache id back to every (date, hit id) pair it
// corresponds to across the store's date partitions, using the module's
// cache to recover the original djb2 hash.
func (db *DB) hitIDsForCk(m module.Module, ck uint32) map[uint32]uint32 {
	c := db.CacheFor(m)
	if c == nil {
		return nil
	}
	hash, ok := c.HashOf(ck)
	if !ok {
		db.recordCacheMiss()
		return nil
	}
	db.recordCacheHit()

	db.mu.RLock()
	dates := make(map[uint32]*DateStore, len(db.dates))
	for d, ds := range db.dates {
		dates[d] = ds
	}
	db.mu.RUnlock()

	out := make(map[uint32]uint32)
	for d, ds := range dates {
		ds.mu.RLock()
		ms, ok := ds.Modules[m]
		ds.mu.RUnlock()
		if !ok {
			continue
		}
		if hitID, ok := ms.Keymap.Get(hash); ok {
			out[d] = hitID
		}
	}
	return out
}

// KeymapListFromKey returns every hit id a cache id has been assigned
// across all date partitions for module m, the collaborator spec.md §6
// names keymap_list_from_key.
func (db *DB) KeymapListFromKey(m module.Module, ck uint32) []uint32 {
	byDate := db.hitIDsForCk(m, ck)
	out := make([]uint32, 0, len(byDate))
	for _, hitID := range byDate {
		out = append(out, hitID)
	}
	return out
}

// HostAgentList returns the deduplicated union of every user-agent id a
// host's AGENTS fan-out has accumulated across all date partitions
// (spec.md §6's host_agent_list).
func (db *DB) HostAgentList(m module.Module, ck uint32) []uint32 {
	byDate := db.hitIDsForCk(m, ck)

	db.mu.RLock()
	dates := make(map[uint32]*DateStore, len(db.dates))
	for d, ds := range db.dates {
		dates[d] = ds
	}
	db.mu.RUnlock()

	seen := make(map[uint32]struct{})
	var out []uint32
	for d, hitID := range byDate {
		ds, ok := dates[d]
		if !ok {
			continue
		}
		ds.mu.RLock()
		ms, ok := ds.Modules[m]
		ds.mu.RUnlock()
		if !ok {
			continue
		}
		for _, agentID := range ms.Agents.List(hitID) {
			if _, dup := seen[agentID]; dup {
				continue
			}
			seen[agentID] = struct{}{}
			out = append(out, agentID)
		}
	}
	return out
}
