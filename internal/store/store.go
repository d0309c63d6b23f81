package store

import (
	"sync"

	"go.uber.org/zap"

	"github.com/dreamware/logcore/internal/cache"
	"github.com/dreamware/logcore/internal/htable"
	"github.com/dreamware/logcore/internal/module"
)

// globalCounterKey is the one key CNT_VALID and CNT_BW are ever stored
// under; both are single running totals per date, not real maps, so they
// ride the II32/IU64 variants schema.go already assigns them under a fixed
// key rather than adding dedicated scalar types.
const globalCounterKey uint32 = 0

// Recorder receives ingest and cache-effectiveness events for external
// observability. A nil Recorder is valid; DB checks before every call.
type Recorder interface {
	RecordIngest(m module.Module)
	RecordCacheHit()
	RecordCacheMiss()
}

// GlobalStore holds the per-date metrics that span every module: the
// date's visitor identity table and the host user-agent fan-out
// (spec.md §4.2's five global metrics).
type GlobalStore struct {
	UniqueKeys *htable.II32 // djb2(visitor key) -> unique visitor id (uk)
	AgentKeys  *htable.II32 // djb2(user agent) -> agent id
	AgentVals  *htable.IS32 // agent id -> raw user agent string
	CntValid   *htable.II32 // globalCounterKey -> valid request count
	CntBW      *htable.IU64 // globalCounterKey -> total bytes served
}

func newGlobalStore() *GlobalStore {
	return &GlobalStore{
		UniqueKeys: htable.NewII32(),
		AgentKeys:  htable.NewII32(),
		AgentVals:  htable.NewIS32(),
		CntValid:   htable.NewII32(),
		CntBW:      htable.NewIU64(),
	}
}

// ModuleStore is one report category's dated tables (spec.md §4.2's
// fourteen module metrics), keyed internally by "hit id" — a sequence
// number assigned the first time a content key is seen on this date, for
// this module.
type ModuleStore struct {
	Keymap    *htable.II32 // djb2(raw key) -> hit id
	Rootmap   *htable.IS32 // root hit id -> root string (first observation)
	Datamap   *htable.IS32 // hit id -> raw key string (first observation)
	Uniqmap   *htable.U648 // composite(uk, hit id) -> membership
	Root      *htable.II32 // hit id -> root hit id
	Hits      *htable.II32
	Visitors  *htable.II32
	BW        *htable.IU64
	CumTS     *htable.IU64
	MaxTS     *htable.IU64
	Methods   *htable.II08
	Protocols *htable.II08
	Agents    *htable.IGSL // host hit id -> agent id list
	Metadata  *htable.SU64 // free-form named counters for this module/date
}

func newModuleStore() *ModuleStore {
	return &ModuleStore{
		Keymap:    htable.NewII32(),
		Rootmap:   htable.NewIS32(),
		Datamap:   htable.NewIS32(),
		Uniqmap:   htable.NewU648(),
		Root:      htable.NewII32(),
		Hits:      htable.NewII32(),
		Visitors:  htable.NewII32(),
		BW:        htable.NewIU64(),
		CumTS:     htable.NewIU64(),
		MaxTS:     htable.NewIU64(),
		Methods:   htable.NewII08(),
		Protocols: htable.NewII08(),
		Agents:    htable.NewIGSL(),
		Metadata:  htable.NewSU64(),
	}
}

// DateStore is one calendar date's full set of module partitions plus the
// global metrics for that date.
type DateStore struct {
	Global  *GlobalStore
	Modules map[module.Module]*ModuleStore
	mu      sync.RWMutex
}

func newDateStore() *DateStore {
	return &DateStore{
		Global:  newGlobalStore(),
		Modules: make(map[module.Module]*ModuleStore),
	}
}

// ModuleStoreFor returns date's partition for m without creating one, for
// read-only callers such as codec.Persist.
func (ds *DateStore) ModuleStoreFor(m module.Module) (*ModuleStore, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	ms, ok := ds.Modules[m]
	return ms, ok
}

// EnsureModule returns date's partition for m, creating it if absent. Used
// by codec.Restore to populate a freshly loaded table set directly rather
// than replaying individual writes.
func (ds *DateStore) EnsureModule(m module.Module) *ModuleStore { return ds.moduleStore(m) }

func (ds *DateStore) moduleStore(m module.Module) *ModuleStore {
	ds.mu.RLock()
	ms, ok := ds.Modules[m]
	ds.mu.RUnlock()
	if ok {
		return ms
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()
	if ms, ok := ds.Modules[m]; ok {
		return ms
	}
	ms = newModuleStore()
	ds.Modules[m] = ms
	return ms
}

// AppDB holds the eight process-wide, undated metrics (spec.md §4.2).
type AppDB struct {
	Dates      *htable.II32 // persisted date -> 1 (set membership)
	Seqs       *htable.SI32 // named sequence counters (e.g. "keymap_requests_20250101", "uk_20250101")
	CntOverall *htable.SU64 // named running totals (e.g. "total_requests")
	Hostnames  *htable.SS32
	LastParse  *htable.SU64 // schema.LastParseKey -> packed (timestamp, line)
	JSONLogFmt *htable.SS32
	MethProto  *htable.SI08 // method/protocol name -> id
	DBProps    *htable.SU64

	methProtoMu sync.Mutex // guards the METH_PROTO "next id = size+1" invariant
}

func newAppDB() *AppDB {
	return &AppDB{
		Dates:      htable.NewII32(),
		Seqs:       htable.NewSI32(),
		CntOverall: htable.NewSU64(),
		Hostnames:  htable.NewSS32(),
		LastParse:  htable.NewSU64(),
		JSONLogFmt: htable.NewSS32(),
		MethProto:  htable.NewSI08(),
		DBProps:    htable.NewSU64(),
	}
}

// DB is the top-level, process-wide registry.
type DB struct {
	app    *AppDB
	dates  map[uint32]*DateStore
	caches map[module.Module]*cache.Cache

	mu       sync.RWMutex
	internMu sync.Mutex // check-then-act atomicity beyond a single table's own lock

	logger *zap.Logger
	rec    Recorder
}

// New returns an empty DB. logger must not be nil; rec may be nil.
func New(logger *zap.Logger, rec Recorder) *DB {
	db := &DB{
		app:    newAppDB(),
		dates:  make(map[uint32]*DateStore),
		caches: make(map[module.Module]*cache.Cache),
		logger: logger,
		rec:    rec,
	}
	for _, m := range module.All() {
		db.caches[m] = cache.New()
	}
	return db
}

// EnsureDate returns the DateStore for date, creating it (and recording it
// in the app-wide DATES index) if this is the first write for that date.
func (db *DB) EnsureDate(date uint32) *DateStore {
	db.mu.RLock()
	ds, ok := db.dates[date]
	db.mu.RUnlock()
	if ok {
		return ds
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	if ds, ok := db.dates[date]; ok {
		return ds
	}
	ds = newDateStore()
	db.dates[date] = ds
	db.app.Dates.Insert(date, 1)
	return ds
}

// Dates returns every date currently held, ascending.
func (db *DB) Dates() []uint32 {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]uint32, 0, len(db.dates))
	for d := range db.dates {
		out = append(out, d)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// Invalidate tears down one date partition entirely and rebuilds every
// module's live cache from what remains, per spec.md §4.4's note that the
// cache has no independent existence — it is always derivable from the
// dated tables.
func (db *DB) Invalidate(date uint32) {
	db.mu.Lock()
	delete(db.dates, date)
	db.app.Dates.Delete(date)
	db.mu.Unlock()

	if db.logger != nil {
		db.logger.Info("invalidated date partition", zap.Uint32("date", date))
	}
	db.RebuildAllCaches()
}

// CacheFor returns the live per-module cache backing a module's parse_raw_data
// view. Returns nil for a Module outside the closed enumeration.
func (db *DB) CacheFor(m module.Module) *cache.Cache {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.caches[m]
}

// App returns the process-wide, undated metric tables, for codec.Persist
// and codec.Restore to read and populate directly.
func (db *DB) App() *AppDB { return db.app }

// DateStoreFor returns the DateStore for date without creating one, or nil
// if date has no partition. Unlike EnsureDate, this never mutates the DB —
// codec.Persist uses it to walk existing partitions read-only.
func (db *DB) DateStoreFor(date uint32) *DateStore {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.dates[date]
}

func (db *DB) recordCacheHit() {
	if db.rec != nil {
		db.rec.RecordCacheHit()
	}
}

func (db *DB) recordCacheMiss() {
	if db.rec != nil {
		db.rec.RecordCacheMiss()
	}
}

// internID assigns (or looks up) a sequential id for a hashed key in t. The
// id comes from seqs.Increment(seqKey, 1) — SEQS (spec.md §9's "increment(name,
// 1) is the only operation ever performed on it") rather than an in-memory
// counter, so the next id minted after a restore always continues past
// whatever was persisted instead of restarting at zero and colliding with an
// id already live in t. It is the same race-safe check-insert-recheck shape
// cache.InternHashed uses, generalized to any II32-backed intern table
// (KEYMAP, UNIQUE_KEYS, AGENT_KEYS all follow it).
func internID(t *htable.II32, seqs *htable.SI32, seqKey string, hash uint32) (id uint32, isNew bool) {
	if existing, ok := t.Get(hash); ok {
		return existing, false
	}
	id = seqs.Increment(seqKey, 1)
	if res := t.Insert(hash, id); res == htable.AlreadyPresent {
		existing, _ := t.Get(hash)
		return existing, false
	}
	return id, true
}
