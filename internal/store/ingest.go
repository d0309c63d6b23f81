package store

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dreamware/logcore/internal/hashkey"
	"github.com/dreamware/logcore/internal/htable"
	"github.com/dreamware/logcore/internal/module"
)

// Record is one already-classified, already-parsed log line ready to be
// folded into the store. Classification (which module a line belongs to)
// and field extraction happen upstream of this package (spec.md §6).
type Record struct {
	Date        uint32 // YYYYMMDD
	Module      module.Module
	Key         string // the content key this module buckets by
	RootKey     string // optional; "" if Key has no root association
	VisitorKey  string // raw string identifying the visiting client
	Hits        uint32
	Bytes       uint64
	ServeTimeUs uint64 // microseconds, folds into CUMTS/MAXTS
	Method      string
	Protocol    string
	Agent       string // optional user-agent string; Ingest does not read it (AGENTS is filled by RecordAgent)
}

// Ingest folds one record into its date/module partition and the matching
// live cache, following spec.md §4.3's ten-step write path: intern the
// visitor and content keys, detect repeat visits via UNIQMAP, update first-
// observation fields, accumulate running sums, and mirror every delta into
// the module's cache.
func (db *DB) Ingest(r Record) error {
	if r.Key == "" {
		return fmt.Errorf("store: ingest: empty key")
	}

	ds := db.EnsureDate(r.Date)
	ms := ds.moduleStore(r.Module)
	c := db.CacheFor(r.Module)
	if c == nil {
		return fmt.Errorf("store: ingest: unknown module %v", r.Module)
	}

	keymapSeq := keymapSeqKey(r.Module, r.Date)
	keyHash := hashkey.Djb2(r.Key)
	hitID, _ := internID(ms.Keymap, db.app.Seqs, keymapSeq, keyHash)
	ck, _ := c.InternHashed(keyHash)

	uk, isNewVisitor := db.internUK(ds.Global, r.Date, r.VisitorKey)
	composite := hashkey.EncodeComposite(uk, hitID)
	isNewVisit := ms.Uniqmap.Insert(composite, 1) == htable.Inserted

	ms.Datamap.Insert(hitID, r.Key)
	c.SetData(ck, r.Key)

	if r.RootKey != "" {
		rootHash := hashkey.Djb2(r.RootKey)
		rootHitID, _ := internID(ms.Keymap, db.app.Seqs, keymapSeq, rootHash)
		ms.Rootmap.Insert(rootHitID, r.RootKey)
		ms.Root.InsertOrReplace(hitID, rootHitID)

		rootCk, _ := c.InternHashed(rootHash)
		c.SetRootString(rootCk, r.RootKey)
		c.SetRoot(ck, rootCk)
	}

	ms.Hits.Increment(hitID, r.Hits)
	c.AddHits(ck, r.Hits)
	if isNewVisit {
		ms.Visitors.Increment(hitID, 1)
		c.AddVisitors(ck, 1)
	}

	ms.BW.Increment(hitID, r.Bytes)
	c.AddBW(ck, r.Bytes)
	ms.CumTS.Increment(hitID, r.ServeTimeUs)
	c.AddCumTS(ck, r.ServeTimeUs)
	ms.MaxTS.MaxAssign(hitID, r.ServeTimeUs)
	c.AssignMaxTS(ck, r.ServeTimeUs)

	if r.Method != "" {
		methodID := db.internMethProto(r.Method)
		ms.Methods.Insert(hitID, methodID)
		c.SetMethod(ck, methodID)
	}
	if r.Protocol != "" {
		protocolID := db.internMethProto(r.Protocol)
		ms.Protocols.Insert(hitID, protocolID)
		c.SetProtocol(ck, protocolID)
	}

	ds.Global.CntValid.Increment(globalCounterKey, r.Hits)
	ds.Global.CntBW.Increment(globalCounterKey, r.Bytes)
	db.app.CntOverall.Increment("total_requests", uint64(r.Hits))

	if isNewVisitor && db.logger != nil {
		db.logger.Debug("new visitor", zap.Uint32("uk", uk), zap.Uint32("date", r.Date))
	}
	if db.rec != nil {
		db.rec.RecordIngest(r.Module)
	}

	return nil
}

// RecordAgent appends a user agent string to hostKey's agent fan-out for a
// date/module pair (typically the Hosts module). It is not one of spec.md
// §4.3's ten core steps since AGENTS is populated only for modules that
// track per-host user agents, but follows the same intern-then-append shape
// as the rest of Ingest.
func (db *DB) RecordAgent(date uint32, m module.Module, hostKey, agent string) {
	if hostKey == "" || agent == "" {
		return
	}
	ds := db.EnsureDate(date)
	ms := ds.moduleStore(m)

	hostHash := hashkey.Djb2(hostKey)
	hostHitID, _ := internID(ms.Keymap, db.app.Seqs, keymapSeqKey(m, date), hostHash)

	agentHash := hashkey.Djb2(agent)
	agentID, isNew := internID(ds.Global.AgentKeys, db.app.Seqs, agentSeqKey(date), agentHash)
	if isNew {
		ds.Global.AgentVals.Insert(agentID, agent)
	}
	ms.Agents.Append(hostHitID, agentID)
}

// internUK assigns (or looks up) a date's unique visitor id for a raw
// visitor key. Scoped per date: the same visitor seen on two different
// dates gets two different uk values, matching UNIQUE_KEYS being a dated
// global metric (spec.md §4.2).
func (db *DB) internUK(gs *GlobalStore, date uint32, rawVisitorKey string) (uk uint32, isNew bool) {
	hash := hashkey.Djb2(rawVisitorKey)
	return internID(gs.UniqueKeys, db.app.Seqs, ukSeqKey(date), hash)
}

// keymapSeqKey, ukSeqKey and agentSeqKey name the SEQS entries backing
// KEYMAP/UNIQUE_KEYS/AGENT_KEYS id assignment. Each sequence is scoped to
// the date (and, for KEYMAP, the module) its ids are valid within, matching
// those tables' own dated scope.
func keymapSeqKey(m module.Module, date uint32) string {
	return fmt.Sprintf("keymap_%s_%d", m, date)
}

func ukSeqKey(date uint32) string {
	return fmt.Sprintf("uk_%d", date)
}

func agentSeqKey(date uint32) string {
	return fmt.Sprintf("agent_%d", date)
}

// internMethProto assigns (or looks up) the app-wide id for a method or
// protocol name. Guarded by its own mutex because the "next id = size+1"
// invariant spans a check-then-act pair that SI08's own per-key lock alone
// cannot make atomic across concurrent names.
func (db *DB) internMethProto(name string) uint8 {
	db.app.methProtoMu.Lock()
	defer db.app.methProtoMu.Unlock()

	if id, ok := db.app.MethProto.Get(name); ok {
		return id
	}
	id := uint8(db.app.MethProto.Size() + 1)
	db.app.MethProto.Insert(name, id)
	return id
}
