package htable

import "github.com/dreamware/logcore/internal/llist"

// II32 maps u32 keys to u32 values. Used for counters keyed by an interned
// id: HITS, VISITORS, ROOT, KEYMAP, CNT_VALID, UNIQUE_KEYS (post-migration),
// AGENT_KEYS.
type II32 struct{ t *table[uint32, uint32] }

// NewII32 returns an empty II32 table.
func NewII32() *II32 { return &II32{t: newTable[uint32, uint32]()} }

// Insert stores v at k if k is absent, reporting AlreadyPresent otherwise.
func (h *II32) Insert(k, v uint32) InsertResult { return h.t.insert(k, v) }

// InsertOrReplace stores v at k unconditionally.
func (h *II32) InsertOrReplace(k, v uint32) { h.t.insertOrReplace(k, v) }

// Get returns the value at k and whether k was present.
func (h *II32) Get(k uint32) (uint32, bool) { return h.t.get(k) }

// GetOrZero returns the value at k, or 0 if absent.
func (h *II32) GetOrZero(k uint32) uint32 { return h.t.getOrZero(k) }

// Increment adds delta to the value at k (initializing absent keys to 0
// first) and returns the new value. Atomic with respect to other Increment
// calls on the same key.
func (h *II32) Increment(k, delta uint32) uint32 { return incrementNumeric(h.t, k, delta) }

// Delete removes k, if present.
func (h *II32) Delete(k uint32) { h.t.delete(k) }

// Size reports the number of entries.
func (h *II32) Size() int { return h.t.size() }

// Clear empties the table. freeValues is accepted for API symmetry with the
// schema's freeData flag; it has no effect since II32 values own no heap
// memory beyond the map entry itself.
func (h *II32) Clear(freeValues bool) { h.t.clear() }

// Destroy releases the table. Equivalent to Clear for this variant.
func (h *II32) Destroy(freeValues bool) { h.t.clear() }

// ForEach calls fn for every (key, value) pair.
func (h *II32) ForEach(fn func(k, v uint32)) { h.t.forEach(fn) }

// II08 maps u32 keys to u8 values: small-domain ids such as METHODS and
// PROTOCOLS (hit id -> METH_PROTO id).
type II08 struct{ t *table[uint32, uint8] }

func NewII08() *II08                          { return &II08{t: newTable[uint32, uint8]()} }
func (h *II08) Insert(k uint32, v uint8) InsertResult { return h.t.insert(k, v) }
func (h *II08) InsertOrReplace(k uint32, v uint8)     { h.t.insertOrReplace(k, v) }
func (h *II08) Get(k uint32) (uint8, bool)            { return h.t.get(k) }
func (h *II08) GetOrZero(k uint32) uint8              { return h.t.getOrZero(k) }
func (h *II08) Increment(k uint32, delta uint8) uint8 { return incrementNumeric(h.t, k, delta) }
func (h *II08) Delete(k uint32)                       { h.t.delete(k) }
func (h *II08) Size() int                             { return h.t.size() }
func (h *II08) Clear(freeValues bool)                 { h.t.clear() }
func (h *II08) Destroy(freeValues bool)               { h.t.clear() }
func (h *II08) ForEach(fn func(k uint32, v uint8))    { h.t.forEach(fn) }

// IS32 maps u32 keys to owned strings: DATAMAP (hit id -> raw key string),
// ROOTMAP (root id -> raw root string), AGENT_VALS (agent id -> UA string).
// The value is "owned" in the sense that the map holds the only reference
// logcore retains; callers that need a private copy should copy the result
// themselves since Go strings are already immutable and safe to alias.
type IS32 struct{ t *table[uint32, string] }

func NewIS32() *IS32                           { return &IS32{t: newTable[uint32, string]()} }
func (h *IS32) Insert(k uint32, v string) InsertResult { return h.t.insert(k, v) }
func (h *IS32) InsertOrReplace(k uint32, v string)     { h.t.insertOrReplace(k, v) }
func (h *IS32) Get(k uint32) (string, bool)            { return h.t.get(k) }
func (h *IS32) GetOrZero(k uint32) string              { return h.t.getOrZero(k) }
func (h *IS32) Delete(k uint32)                        { h.t.delete(k) }
func (h *IS32) Size() int                              { return h.t.size() }
func (h *IS32) Clear(freeValues bool)                  { h.t.clear() }
func (h *IS32) Destroy(freeValues bool)                { h.t.clear() }
func (h *IS32) ForEach(fn func(k uint32, v string))    { h.t.forEach(fn) }

// IU64 maps u32 keys to u64 values: BW, CUMTS, MAXTS (bandwidth and timing
// accumulators, keyed by hit id).
type IU64 struct{ t *table[uint32, uint64] }

func NewIU64() *IU64                          { return &IU64{t: newTable[uint32, uint64]()} }
func (h *IU64) Insert(k uint32, v uint64) InsertResult { return h.t.insert(k, v) }
func (h *IU64) InsertOrReplace(k uint32, v uint64)     { h.t.insertOrReplace(k, v) }
func (h *IU64) Get(k uint32) (uint64, bool)            { return h.t.get(k) }
func (h *IU64) GetOrZero(k uint32) uint64              { return h.t.getOrZero(k) }
func (h *IU64) Increment(k uint32, delta uint64) uint64 { return incrementNumeric(h.t, k, delta) }

// MaxAssign sets the value at k to max(current, v) and returns the result.
// Used for MAXTS: m[k] = max(m[k], v).
func (h *IU64) MaxAssign(k uint32, v uint64) uint64 { return maxAssignNumeric(h.t, k, v) }
func (h *IU64) Delete(k uint32)                     { h.t.delete(k) }
func (h *IU64) Size() int                           { return h.t.size() }
func (h *IU64) Clear(freeValues bool)               { h.t.clear() }
func (h *IU64) Destroy(freeValues bool)             { h.t.clear() }
func (h *IU64) ForEach(fn func(k uint32, v uint64)) { h.t.forEach(fn) }

// SI32 maps owned strings to u32 values: the interning tables (KEYMAP's
// legacy form, AGENT_KEYS's legacy form, SEQS named counters).
type SI32 struct{ t *table[string, uint32] }

func NewSI32() *SI32                           { return &SI32{t: newTable[string, uint32]()} }
func (h *SI32) Insert(k string, v uint32) InsertResult { return h.t.insert(k, v) }
func (h *SI32) InsertOrReplace(k string, v uint32)     { h.t.insertOrReplace(k, v) }
func (h *SI32) Get(k string) (uint32, bool)            { return h.t.get(k) }
func (h *SI32) GetOrZero(k string) uint32              { return h.t.getOrZero(k) }
func (h *SI32) Increment(k string, delta uint32) uint32 { return incrementNumeric(h.t, k, delta) }
func (h *SI32) Delete(k string)                        { h.t.delete(k) }
func (h *SI32) Size() int                              { return h.t.size() }
func (h *SI32) Clear(freeValues bool)                  { h.t.clear() }
func (h *SI32) Destroy(freeValues bool)                { h.t.clear() }
func (h *SI32) ForEach(fn func(k string, v uint32))    { h.t.forEach(fn) }

// SI08 maps owned strings to u8 values: METH_PROTO, the method/protocol
// intern table. Entries are never deleted once assigned (spec.md §3
// invariant); callers should treat Delete as available for table teardown
// only, never for normal operation.
type SI08 struct{ t *table[string, uint8] }

func NewSI08() *SI08                          { return &SI08{t: newTable[string, uint8]()} }
func (h *SI08) Insert(k string, v uint8) InsertResult { return h.t.insert(k, v) }
func (h *SI08) InsertOrReplace(k string, v uint8)     { h.t.insertOrReplace(k, v) }
func (h *SI08) Get(k string) (uint8, bool)            { return h.t.get(k) }
func (h *SI08) GetOrZero(k string) uint8              { return h.t.getOrZero(k) }
func (h *SI08) Delete(k string)                       { h.t.delete(k) }
func (h *SI08) Size() int                             { return h.t.size() }
func (h *SI08) Clear(freeValues bool)                 { h.t.clear() }
func (h *SI08) Destroy(freeValues bool)               { h.t.clear() }
func (h *SI08) ForEach(fn func(k string, v uint8))    { h.t.forEach(fn) }

// SS32 maps owned strings to owned strings: HOSTNAMES, JSON_LOGFMT.
type SS32 struct{ t *table[string, string] }

func NewSS32() *SS32                           { return &SS32{t: newTable[string, string]()} }
func (h *SS32) Insert(k, v string) InsertResult { return h.t.insert(k, v) }
func (h *SS32) InsertOrReplace(k, v string)     { h.t.insertOrReplace(k, v) }
func (h *SS32) Get(k string) (string, bool)     { return h.t.get(k) }
func (h *SS32) GetOrZero(k string) string       { return h.t.getOrZero(k) }
func (h *SS32) Delete(k string)                 { h.t.delete(k) }
func (h *SS32) Size() int                       { return h.t.size() }
func (h *SS32) Clear(freeValues bool)           { h.t.clear() }
func (h *SS32) Destroy(freeValues bool)         { h.t.clear() }
func (h *SS32) ForEach(fn func(k, v string))    { h.t.forEach(fn) }

// SU64 maps owned strings to u64 values: CNT_OVERALL, DB_PROPS, METADATA.
type SU64 struct{ t *table[string, uint64] }

func NewSU64() *SU64                           { return &SU64{t: newTable[string, uint64]()} }
func (h *SU64) Insert(k string, v uint64) InsertResult { return h.t.insert(k, v) }
func (h *SU64) InsertOrReplace(k string, v uint64)     { h.t.insertOrReplace(k, v) }
func (h *SU64) Get(k string) (uint64, bool)            { return h.t.get(k) }
func (h *SU64) GetOrZero(k string) uint64              { return h.t.getOrZero(k) }
func (h *SU64) Increment(k string, delta uint64) uint64 { return incrementNumeric(h.t, k, delta) }
func (h *SU64) Delete(k string)                        { h.t.delete(k) }
func (h *SU64) Size() int                              { return h.t.size() }
func (h *SU64) Clear(freeValues bool)                  { h.t.clear() }
func (h *SU64) Destroy(freeValues bool)                { h.t.clear() }
func (h *SU64) ForEach(fn func(k string, v uint64))    { h.t.forEach(fn) }

// U648 maps u64 keys to u8 values. Used for UNIQMAP: the value carries no
// information beyond presence (set membership for the composite
// visitor/hit-id key produced by hashkey.EncodeComposite).
type U648 struct{ t *table[uint64, uint8] }

func NewU648() *U648                          { return &U648{t: newTable[uint64, uint8]()} }
func (h *U648) Insert(k uint64, v uint8) InsertResult { return h.t.insert(k, v) }
func (h *U648) Get(k uint64) (uint8, bool)            { return h.t.get(k) }
func (h *U648) Delete(k uint64)                       { h.t.delete(k) }
func (h *U648) Size() int                             { return h.t.size() }
func (h *U648) Clear(freeValues bool)                 { h.t.clear() }
func (h *U648) Destroy(freeValues bool)               { h.t.clear() }
func (h *U648) ForEach(fn func(k uint64, v uint8))    { h.t.forEach(fn) }

// IGSL maps u32 keys to a list of u32 values: AGENTS, the per-host fan-out
// of user-agent ids. Uniqueness within a key's list is enforced on Append by
// a linear scan (spec.md §9's "list fan-out in IGSL" design note) — adequate
// for the small per-key lists this metric actually sees.
type IGSL struct{ t *table[uint32, *llist.List[uint32]] }

// NewIGSL returns an empty IGSL table.
func NewIGSL() *IGSL { return &IGSL{t: newTable[uint32, *llist.List[uint32]]()} }

// Append adds v to the list at k, creating the list if k is new. It is a
// no-op if v is already present in k's list. Returns true if v was added.
func (h *IGSL) Append(k uint32, v uint32) bool {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()

	l, ok := h.t.m[k]
	if !ok {
		l = llist.New[uint32]()
		h.t.m[k] = l
	}
	if _, found := l.Find(func(x uint32) bool { return x == v }); found {
		return false
	}
	l.InsertPrepend(v)
	return true
}

// List returns a snapshot of the values at k, or nil if k is absent.
func (h *IGSL) List(k uint32) []uint32 {
	h.t.mu.RLock()
	defer h.t.mu.RUnlock()

	l, ok := h.t.m[k]
	if !ok {
		return nil
	}
	return l.Slice()
}

// Delete removes k's entry. Per spec.md §9's resolution of the free_igdb
// double-free question, this frees the list's nodes and removes the map
// entry in a single pass — never two separate free operations on the same
// slot.
func (h *IGSL) Delete(k uint32) {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()

	if l, ok := h.t.m[k]; ok {
		l.RemoveNodes()
		delete(h.t.m, k)
	}
}

// Size reports the number of keys (not the total element count across
// lists).
func (h *IGSL) Size() int { return h.t.size() }

// Clear empties the table, detaching every per-key list.
func (h *IGSL) Clear(freeValues bool) {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	for _, l := range h.t.m {
		l.RemoveNodes()
	}
	h.t.m = make(map[uint32]*llist.List[uint32])
}

// Destroy is equivalent to Clear for this variant.
func (h *IGSL) Destroy(freeValues bool) { h.Clear(freeValues) }

// ForEach calls fn for every key with a snapshot of its list's contents.
func (h *IGSL) ForEach(fn func(k uint32, vals []uint32)) {
	h.t.mu.RLock()
	defer h.t.mu.RUnlock()
	for k, l := range h.t.m {
		fn(k, l.Slice())
	}
}
