package store

import (
	"github.com/dreamware/logcore/internal/cache"
	"github.com/dreamware/logcore/internal/module"
)

// RebuildCache recomputes m's live cache from scratch by replaying every
// date partition's dated tables, per spec.md §4.4's rebuild_raw_data_cache:
// the cache has no state of its own that isn't derivable from the dated
// tables, so Invalidate and a cold restore both funnel through this.
func (db *DB) RebuildCache(m module.Module) {
	fresh := cache.New()

	db.mu.RLock()
	dates := make([]*DateStore, 0, len(db.dates))
	for _, ds := range db.dates {
		dates = append(dates, ds)
	}
	db.mu.RUnlock()

	for _, ds := range dates {
		ds.mu.RLock()
		ms, ok := ds.Modules[m]
		ds.mu.RUnlock()
		if !ok {
			continue
		}

		ms.Keymap.ForEach(func(hash, hitID uint32) {
			ck, _ := fresh.InternHashed(hash)

			if s, ok := ms.Datamap.Get(hitID); ok {
				fresh.SetData(ck, s)
			}
			if hits, ok := ms.Hits.Get(hitID); ok {
				fresh.AddHits(ck, hits)
			}
			if visitors, ok := ms.Visitors.Get(hitID); ok {
				fresh.AddVisitors(ck, visitors)
			}
			if bw, ok := ms.BW.Get(hitID); ok {
				fresh.AddBW(ck, bw)
			}
			if cumTS, ok := ms.CumTS.Get(hitID); ok {
				fresh.AddCumTS(ck, cumTS)
			}
			if maxTS, ok := ms.MaxTS.Get(hitID); ok {
				fresh.AssignMaxTS(ck, maxTS)
			}
			if methodID, ok := ms.Methods.Get(hitID); ok {
				fresh.SetMethod(ck, methodID)
			}
			if protocolID, ok := ms.Protocols.Get(hitID); ok {
				fresh.SetProtocol(ck, protocolID)
			}
			if rootHitID, ok := ms.Root.Get(hitID); ok {
				if rootHash, ok := hashFor(ms, rootHitID); ok {
					rootCk, _ := fresh.InternHashed(rootHash)
					if rootStr, ok := ms.Rootmap.Get(rootHitID); ok {
						fresh.SetRootString(rootCk, rootStr)
					}
					fresh.SetRoot(ck, rootCk)
				}
			}
		})
	}

	db.mu.Lock()
	db.caches[m] = fresh
	db.mu.Unlock()
}

// RebuildAllCaches rebuilds every module's live cache.
func (db *DB) RebuildAllCaches() {
	for _, m := range module.All() {
		db.RebuildCache(m)
	}
}

// hashFor recovers the djb2 hash a hit id was assigned from by scanning a
// module store's KEYMAP. KEYMAP is small relative to a full rebuild's other
// costs, so a linear scan here is not worth a second reverse-index table
// purely for this rebuild path.
func hashFor(ms *ModuleStore, hitID uint32) (hash uint32, ok bool) {
	found := false
	ms.Keymap.ForEach(func(h, id uint32) {
		if id == hitID {
			hash = h
			found = true
		}
	})
	return hash, found
}
