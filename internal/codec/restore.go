package codec

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/dreamware/logcore/internal/hashkey"
	"github.com/dreamware/logcore/internal/htable"
	"github.com/dreamware/logcore/internal/module"
	"github.com/dreamware/logcore/internal/schema"
	"github.com/dreamware/logcore/internal/store"
)

// dbPropsVersionKey is the DB_PROPS entry Persist stamps on every write and
// Restore checks, so a future format revision has somewhere to branch from.
const dbPropsVersionKey = "version"

// currentVersion is the on-disk format version this package writes.
const currentVersion = 1

// Persist writes every metric table in db to its own file under dir,
// following the naming convention schema.Descriptor.Filename/GlobalFilename
// compute. dir is created if absent.
func Persist(db *store.DB, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("codec: create persist dir: %w", err)
	}

	dates := db.Dates()
	if err := writeFile(dir, schema.DatesIndexFilename, EncodeDates(dates)); err != nil {
		return err
	}

	db.App().DBProps.InsertOrReplace(dbPropsVersionKey, currentVersion)

	if err := persistApp(db, dir); err != nil {
		return err
	}
	if err := persistGlobal(db, dir, dates); err != nil {
		return err
	}
	for _, m := range module.All() {
		if err := persistModule(db, dir, dates, m); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(dir, name string, body []byte) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("codec: write %s: %w", name, err)
	}
	return nil
}

func persistApp(db *store.DB, dir string) error {
	app := db.App()
	writes := []struct {
		desc schema.Descriptor
		body []byte
	}{
		{schema.AppMetrics[schema.MetricDates], EncodeII32Flat(app.Dates)},
		{schema.AppMetrics[schema.MetricSeqs], EncodeSI32Flat(app.Seqs)},
		{schema.AppMetrics[schema.MetricCntOverall], EncodeSU64Flat(app.CntOverall)},
		{schema.AppMetrics[schema.MetricHostnames], EncodeSS32Flat(app.Hostnames)},
		{schema.AppMetrics[schema.MetricLastParse], EncodeSU64Flat(app.LastParse)},
		{schema.AppMetrics[schema.MetricJSONLogFmt], EncodeSS32Flat(app.JSONLogFmt)},
		{schema.AppMetrics[schema.MetricMethProto], EncodeSI08Flat(app.MethProto)},
		{schema.AppMetrics[schema.MetricDBProps], EncodeSU64Flat(app.DBProps)},
	}
	for _, w := range writes {
		if err := writeFile(dir, w.desc.GlobalFilename(), w.body); err != nil {
			return err
		}
	}
	return nil
}

func persistGlobal(db *store.DB, dir string, dates []uint32) error {
	uniqueKeys := make(map[uint32]*htable.II32, len(dates))
	agentKeys := make(map[uint32]*htable.II32, len(dates))
	agentVals := make(map[uint32]*htable.IS32, len(dates))
	cntValid := make(map[uint32]*htable.II32, len(dates))
	cntBW := make(map[uint32]*htable.IU64, len(dates))

	for _, date := range dates {
		ds := db.DateStoreFor(date)
		if ds == nil || ds.Global == nil {
			continue
		}
		uniqueKeys[date] = ds.Global.UniqueKeys
		agentKeys[date] = ds.Global.AgentKeys
		agentVals[date] = ds.Global.AgentVals
		cntValid[date] = ds.Global.CntValid
		cntBW[date] = ds.Global.CntBW
	}

	writes := []struct {
		desc schema.Descriptor
		body []byte
	}{
		{schema.GlobalMetrics[schema.MetricUniqueKeys], EncodeII32Dated(uniqueKeys)},
		{schema.GlobalMetrics[schema.MetricAgentKeys], EncodeII32Dated(agentKeys)},
		{schema.GlobalMetrics[schema.MetricAgentVals], EncodeIS32Dated(agentVals)},
		{schema.GlobalMetrics[schema.MetricCntValid], EncodeII32Dated(cntValid)},
		{schema.GlobalMetrics[schema.MetricCntBW], EncodeIU64Dated(cntBW)},
	}
	for _, w := range writes {
		if err := writeFile(dir, w.desc.GlobalFilename(), w.body); err != nil {
			return err
		}
	}
	return nil
}

func persistModule(db *store.DB, dir string, dates []uint32, m module.Module) error {
	keymap := make(map[uint32]*htable.II32, len(dates))
	rootmap := make(map[uint32]*htable.IS32, len(dates))
	datamap := make(map[uint32]*htable.IS32, len(dates))
	uniqmap := make(map[uint32]*htable.U648, len(dates))
	root := make(map[uint32]*htable.II32, len(dates))
	hits := make(map[uint32]*htable.II32, len(dates))
	visitors := make(map[uint32]*htable.II32, len(dates))
	bw := make(map[uint32]*htable.IU64, len(dates))
	cumTS := make(map[uint32]*htable.IU64, len(dates))
	maxTS := make(map[uint32]*htable.IU64, len(dates))
	methods := make(map[uint32]*htable.II08, len(dates))
	protocols := make(map[uint32]*htable.II08, len(dates))
	agents := make(map[uint32]*htable.IGSL, len(dates))
	metadata := make(map[uint32]*htable.SU64, len(dates))

	for _, date := range dates {
		ds := db.DateStoreFor(date)
		if ds == nil {
			continue
		}
		ms, ok := ds.ModuleStoreFor(m)
		if !ok {
			continue
		}
		keymap[date] = ms.Keymap
		rootmap[date] = ms.Rootmap
		datamap[date] = ms.Datamap
		uniqmap[date] = ms.Uniqmap
		root[date] = ms.Root
		hits[date] = ms.Hits
		visitors[date] = ms.Visitors
		bw[date] = ms.BW
		cumTS[date] = ms.CumTS
		maxTS[date] = ms.MaxTS
		methods[date] = ms.Methods
		protocols[date] = ms.Protocols
		agents[date] = ms.Agents
		metadata[date] = ms.Metadata
	}

	name := m.String()
	writes := []struct {
		desc schema.Descriptor
		body []byte
	}{
		{schema.ModuleMetrics[schema.MetricKeymap], EncodeII32Dated(keymap)},
		{schema.ModuleMetrics[schema.MetricRootmap], EncodeIS32Dated(rootmap)},
		{schema.ModuleMetrics[schema.MetricDatamap], EncodeIS32Dated(datamap)},
		{schema.ModuleMetrics[schema.MetricUniqmap], EncodeU648Dated(uniqmap)},
		{schema.ModuleMetrics[schema.MetricRoot], EncodeII32Dated(root)},
		{schema.ModuleMetrics[schema.MetricHits], EncodeII32Dated(hits)},
		{schema.ModuleMetrics[schema.MetricVisitors], EncodeII32Dated(visitors)},
		{schema.ModuleMetrics[schema.MetricBW], EncodeIU64Dated(bw)},
		{schema.ModuleMetrics[schema.MetricCumTS], EncodeIU64Dated(cumTS)},
		{schema.ModuleMetrics[schema.MetricMaxTS], EncodeIU64Dated(maxTS)},
		{schema.ModuleMetrics[schema.MetricMethods], EncodeII08Dated(methods)},
		{schema.ModuleMetrics[schema.MetricProtocols], EncodeII08Dated(protocols)},
		{schema.ModuleMetrics[schema.MetricAgents], EncodeIGSLDated(agents)},
		{schema.ModuleMetrics[schema.MetricMetadata], EncodeSU64Dated(metadata)},
	}
	for _, w := range writes {
		if err := writeFile(dir, w.desc.Filename(name), w.body); err != nil {
			return err
		}
	}
	return nil
}

// Restore loads dir into a fresh DB. keepLast, if greater than zero, drops
// every persisted date beyond the most recent keepLast before any other
// file is read, per spec.md §4.5's restore-time retention policy. A missing
// dates index is not an error: it means dir holds nothing yet.
func Restore(dir string, logger *zap.Logger, rec store.Recorder, keepLast int) (*store.DB, error) {
	db := store.New(logger, rec)

	datesPath := filepath.Join(dir, schema.DatesIndexFilename)
	raw, err := os.ReadFile(datesPath)
	if os.IsNotExist(err) {
		return db, nil
	}
	if err != nil {
		return nil, fmt.Errorf("codec: read %s: %w", schema.DatesIndexFilename, err)
	}
	dates, err := DecodeDates(raw)
	if err != nil {
		return nil, fmt.Errorf("codec: decode %s: %w", schema.DatesIndexFilename, err)
	}
	dates = sortedUint32(dates)
	if keepLast > 0 && len(dates) > keepLast {
		dates = dates[len(dates)-keepLast:]
	}
	for _, d := range dates {
		db.EnsureDate(d)
	}
	keep := make(map[uint32]bool, len(dates))
	for _, d := range dates {
		keep[d] = true
	}

	restoreApp(db, dir, logger)
	restoreGlobal(db, dir, keep, logger)
	for _, m := range module.All() {
		restoreModule(db, dir, keep, m, logger)
	}

	db.RebuildAllCaches()
	return db, nil
}

func sortedUint32(in []uint32) []uint32 {
	out := append([]uint32(nil), in...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// readFile returns the file's bytes, or nil with ok=false if it does not
// exist. Any other read error is logged and treated as absent, per spec.md
// §7's "corrupted file: log and skip, leave the table empty" policy.
func readFile(dir, name string, logger *zap.Logger) ([]byte, bool) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if os.IsNotExist(err) {
		return nil, false
	}
	if err != nil {
		if logger != nil {
			logger.Warn("skipping unreadable persisted file", zap.String("file", name), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

func restoreApp(db *store.DB, dir string, logger *zap.Logger) {
	app := db.App()

	if data, ok := readFile(dir, schema.AppMetrics[schema.MetricDates].GlobalFilename(), logger); ok {
		if t, err := DecodeII32Flat(data); err == nil {
			app.Dates = t
		} else {
			logCorrupt(logger, "DATES", err)
		}
	}
	if data, ok := readFile(dir, schema.AppMetrics[schema.MetricSeqs].GlobalFilename(), logger); ok {
		if t, err := DecodeSI32Flat(data); err == nil {
			app.Seqs = t
		} else {
			logCorrupt(logger, "SEQS", err)
		}
	}
	if data, ok := readFile(dir, schema.AppMetrics[schema.MetricCntOverall].GlobalFilename(), logger); ok {
		if t, err := DecodeSU64Flat(data); err == nil {
			app.CntOverall = t
		} else {
			logCorrupt(logger, "CNT_OVERALL", err)
		}
	}
	if data, ok := readFile(dir, schema.AppMetrics[schema.MetricHostnames].GlobalFilename(), logger); ok {
		if t, err := DecodeSS32Flat(data); err == nil {
			app.Hostnames = t
		} else {
			logCorrupt(logger, "HOSTNAMES", err)
		}
	}
	if data, ok := readFile(dir, schema.AppMetrics[schema.MetricLastParse].GlobalFilename(), logger); ok {
		if t, err := DecodeSU64Flat(data); err == nil {
			app.LastParse = t
		} else {
			logCorrupt(logger, "LAST_PARSE", err)
		}
	}
	if data, ok := readFile(dir, schema.AppMetrics[schema.MetricJSONLogFmt].GlobalFilename(), logger); ok {
		if t, err := DecodeSS32Flat(data); err == nil {
			app.JSONLogFmt = t
		} else {
			logCorrupt(logger, "JSON_LOGFMT", err)
		}
	}
	if data, ok := readFile(dir, schema.AppMetrics[schema.MetricMethProto].GlobalFilename(), logger); ok {
		if t, err := DecodeSI08Flat(data); err == nil {
			app.MethProto = t
		} else {
			logCorrupt(logger, "METH_PROTO", err)
		}
	}
	if data, ok := readFile(dir, schema.AppMetrics[schema.MetricDBProps].GlobalFilename(), logger); ok {
		if t, err := DecodeSU64Flat(data); err == nil {
			app.DBProps = t
		} else {
			logCorrupt(logger, "DB_PROPS", err)
		}
	}
}

func logCorrupt(logger *zap.Logger, metric string, err error) {
	if logger != nil {
		logger.Warn("corrupted persisted file, leaving table empty", zap.String("metric", metric), zap.Error(err))
	}
}

func restoreGlobal(db *store.DB, dir string, keep map[uint32]bool, logger *zap.Logger) {
	if data, ok := readFile(dir, schema.GlobalMetrics[schema.MetricUniqueKeys].GlobalFilename(), logger); ok {
		applyOrMigrateII32(db, dir, schema.GlobalMetrics[schema.MetricUniqueKeys].GlobalFilename(), data, keep, logger, "UNIQUE_KEYS", func(ds *store.DateStore) **htable.II32 { return &ds.Global.UniqueKeys })
	}
	if data, ok := readFile(dir, schema.GlobalMetrics[schema.MetricAgentKeys].GlobalFilename(), logger); ok {
		applyOrMigrateII32(db, dir, schema.GlobalMetrics[schema.MetricAgentKeys].GlobalFilename(), data, keep, logger, "AGENT_KEYS", func(ds *store.DateStore) **htable.II32 { return &ds.Global.AgentKeys })
	}
	if data, ok := readFile(dir, schema.GlobalMetrics[schema.MetricAgentVals].GlobalFilename(), logger); ok {
		if groups, err := DecodeIS32Dated(data); err == nil {
			applyIS32(db, groups, keep, func(ds *store.DateStore) **htable.IS32 { return &ds.Global.AgentVals })
		} else {
			logCorrupt(logger, "AGENT_VALS", err)
		}
	}
	if data, ok := readFile(dir, schema.GlobalMetrics[schema.MetricCntValid].GlobalFilename(), logger); ok {
		if groups, err := DecodeII32Dated(data); err == nil {
			applyII32(db, groups, keep, func(ds *store.DateStore) **htable.II32 { return &ds.Global.CntValid })
		} else {
			logCorrupt(logger, "CNT_VALID", err)
		}
	}
	if data, ok := readFile(dir, schema.GlobalMetrics[schema.MetricCntBW].GlobalFilename(), logger); ok {
		if groups, err := DecodeIU64Dated(data); err == nil {
			applyIU64(db, groups, keep, func(ds *store.DateStore) **htable.IU64 { return &ds.Global.CntBW })
		} else {
			logCorrupt(logger, "CNT_BW", err)
		}
	}
}

func applyII32(db *store.DB, groups map[uint32]*htable.II32, keep map[uint32]bool, slot func(*store.DateStore) **htable.II32) {
	for date, t := range groups {
		if !keep[date] {
			continue
		}
		ds := db.EnsureDate(date)
		*slot(ds) = t
	}
}

func applyIS32(db *store.DB, groups map[uint32]*htable.IS32, keep map[uint32]bool, slot func(*store.DateStore) **htable.IS32) {
	for date, t := range groups {
		if !keep[date] {
			continue
		}
		ds := db.EnsureDate(date)
		*slot(ds) = t
	}
}

func applyIU64(db *store.DB, groups map[uint32]*htable.IU64, keep map[uint32]bool, slot func(*store.DateStore) **htable.IU64) {
	for date, t := range groups {
		if !keep[date] {
			continue
		}
		ds := db.EnsureDate(date)
		*slot(ds) = t
	}
}

// applyOrMigrateII32 loads a metric that may still be on disk in its legacy
// SI32 (raw string -> id) form. Only the file at filename (the II32-named
// file) is read. A body whose format string is the II32 one is loaded as is;
// any other body is read as the legacy layout, every key is rehashed with
// hashkey.Djb2, and the file is deleted once the migration succeeds so the
// next Persist writes it in the modern II32 shape. A legacy file stored under
// an SI32-prefixed name is not looked for.
func applyOrMigrateII32(db *store.DB, dir, filename string, data []byte, keep map[uint32]bool, logger *zap.Logger, metric string, slot func(*store.DateStore) **htable.II32) {
	if formatStr, _, _, err := decodeFile(data); err == nil && formatStr == formatII32 {
		if groups, err := DecodeII32Dated(data); err == nil {
			applyII32(db, groups, keep, slot)
			return
		}
	}

	legacyGroups, err := decodeLegacySI32Dated(data)
	if err != nil {
		logCorrupt(logger, metric, err)
		return
	}
	for _, g := range legacyGroups {
		if !keep[g.Date] {
			continue
		}
		ds := db.EnsureDate(g.Date)
		t := htable.NewII32()
		for _, e := range g.Entries {
			t.InsertOrReplace(hashkey.Djb2(e.K), e.V)
		}
		*slot(ds) = t
	}
	removeLegacyFile(dir, filename, logger, metric)
	if logger != nil {
		logger.Info("migrated legacy SI32 table to II32", zap.String("metric", metric))
	}
}

// removeLegacyFile deletes a migrated legacy file so a stale copy of the old
// shape never shadows the modern one a subsequent Persist writes. Failure to
// remove is logged, not fatal: the in-memory migration already succeeded and
// the next successful Persist overwrites the file anyway.
func removeLegacyFile(dir, filename string, logger *zap.Logger, metric string) {
	if err := os.Remove(filepath.Join(dir, filename)); err != nil && !os.IsNotExist(err) {
		if logger != nil {
			logger.Warn("failed to remove migrated legacy file", zap.String("metric", metric), zap.Error(err))
		}
	}
}

func restoreModule(db *store.DB, dir string, keep map[uint32]bool, m module.Module, logger *zap.Logger) {
	name := m.String()

	if data, ok := readFile(dir, schema.ModuleMetrics[schema.MetricKeymap].Filename(name), logger); ok {
		applyOrMigrateII32(db, dir, schema.ModuleMetrics[schema.MetricKeymap].Filename(name), data, keep, logger, "KEYMAP/"+name, func(ds *store.DateStore) **htable.II32 {
			return &ds.EnsureModule(m).Keymap
		})
	}
	if data, ok := readFile(dir, schema.ModuleMetrics[schema.MetricRootmap].Filename(name), logger); ok {
		if groups, err := DecodeIS32Dated(data); err == nil {
			for date, t := range groups {
				if !keep[date] {
					continue
				}
				db.EnsureDate(date).EnsureModule(m).Rootmap = t
			}
		} else {
			logCorrupt(logger, "ROOTMAP/"+name, err)
		}
	}
	if data, ok := readFile(dir, schema.ModuleMetrics[schema.MetricDatamap].Filename(name), logger); ok {
		if groups, err := DecodeIS32Dated(data); err == nil {
			for date, t := range groups {
				if !keep[date] {
					continue
				}
				db.EnsureDate(date).EnsureModule(m).Datamap = t
			}
		} else {
			logCorrupt(logger, "DATAMAP/"+name, err)
		}
	}
	if data, ok := readFile(dir, schema.ModuleMetrics[schema.MetricUniqmap].Filename(name), logger); ok {
		if groups, err := DecodeU648Dated(data); err == nil {
			for date, t := range groups {
				if !keep[date] {
					continue
				}
				db.EnsureDate(date).EnsureModule(m).Uniqmap = t
			}
		} else {
			logCorrupt(logger, "UNIQMAP/"+name, err)
		}
	}
	if data, ok := readFile(dir, schema.ModuleMetrics[schema.MetricRoot].Filename(name), logger); ok {
		if groups, err := DecodeII32Dated(data); err == nil {
			for date, t := range groups {
				if !keep[date] {
					continue
				}
				db.EnsureDate(date).EnsureModule(m).Root = t
			}
		} else {
			logCorrupt(logger, "ROOT/"+name, err)
		}
	}
	if data, ok := readFile(dir, schema.ModuleMetrics[schema.MetricHits].Filename(name), logger); ok {
		if groups, err := DecodeII32Dated(data); err == nil {
			for date, t := range groups {
				if !keep[date] {
					continue
				}
				db.EnsureDate(date).EnsureModule(m).Hits = t
			}
		} else {
			logCorrupt(logger, "HITS/"+name, err)
		}
	}
	if data, ok := readFile(dir, schema.ModuleMetrics[schema.MetricVisitors].Filename(name), logger); ok {
		if groups, err := DecodeII32Dated(data); err == nil {
			for date, t := range groups {
				if !keep[date] {
					continue
				}
				db.EnsureDate(date).EnsureModule(m).Visitors = t
			}
		} else {
			logCorrupt(logger, "VISITORS/"+name, err)
		}
	}
	if data, ok := readFile(dir, schema.ModuleMetrics[schema.MetricBW].Filename(name), logger); ok {
		if groups, err := DecodeIU64Dated(data); err == nil {
			for date, t := range groups {
				if !keep[date] {
					continue
				}
				db.EnsureDate(date).EnsureModule(m).BW = t
			}
		} else {
			logCorrupt(logger, "BW/"+name, err)
		}
	}
	if data, ok := readFile(dir, schema.ModuleMetrics[schema.MetricCumTS].Filename(name), logger); ok {
		if groups, err := DecodeIU64Dated(data); err == nil {
			for date, t := range groups {
				if !keep[date] {
					continue
				}
				db.EnsureDate(date).EnsureModule(m).CumTS = t
			}
		} else {
			logCorrupt(logger, "CUMTS/"+name, err)
		}
	}
	if data, ok := readFile(dir, schema.ModuleMetrics[schema.MetricMaxTS].Filename(name), logger); ok {
		if groups, err := DecodeIU64Dated(data); err == nil {
			for date, t := range groups {
				if !keep[date] {
					continue
				}
				db.EnsureDate(date).EnsureModule(m).MaxTS = t
			}
		} else {
			logCorrupt(logger, "MAXTS/"+name, err)
		}
	}
	if data, ok := readFile(dir, schema.ModuleMetrics[schema.MetricMethods].Filename(name), logger); ok {
		applyOrMigrateII08(db, dir, schema.ModuleMetrics[schema.MetricMethods].Filename(name), data, keep, logger, "METHODS/"+name, m, func(ms *store.ModuleStore) **htable.II08 { return &ms.Methods })
	}
	if data, ok := readFile(dir, schema.ModuleMetrics[schema.MetricProtocols].Filename(name), logger); ok {
		applyOrMigrateII08(db, dir, schema.ModuleMetrics[schema.MetricProtocols].Filename(name), data, keep, logger, "PROTOCOLS/"+name, m, func(ms *store.ModuleStore) **htable.II08 { return &ms.Protocols })
	}
	if data, ok := readFile(dir, schema.ModuleMetrics[schema.MetricAgents].Filename(name), logger); ok {
		if groups, err := DecodeIGSLDated(data); err == nil {
			for date, t := range groups {
				if !keep[date] {
					continue
				}
				db.EnsureDate(date).EnsureModule(m).Agents = t
			}
		} else {
			logCorrupt(logger, "AGENTS/"+name, err)
		}
	}
	if data, ok := readFile(dir, schema.ModuleMetrics[schema.MetricMetadata].Filename(name), logger); ok {
		if groups, err := DecodeSU64Dated(data); err == nil {
			for date, t := range groups {
				if !keep[date] {
					continue
				}
				db.EnsureDate(date).EnsureModule(m).Metadata = t
			}
		} else {
			logCorrupt(logger, "METADATA/"+name, err)
		}
	}
}

// applyOrMigrateII08 mirrors applyOrMigrateII32 for METHODS/PROTOCOLS: the
// legacy form stored the method/protocol name directly per hit id (IS32);
// migration interns each name into METH_PROTO and stores the resulting id,
// then deletes the legacy file.
func applyOrMigrateII08(db *store.DB, dir, filename string, data []byte, keep map[uint32]bool, logger *zap.Logger, metric string, m module.Module, slot func(*store.ModuleStore) **htable.II08) {
	if formatStr, _, _, err := decodeFile(data); err == nil && formatStr == formatII08 {
		if groups, err := DecodeII08Dated(data); err == nil {
			for date, t := range groups {
				if !keep[date] {
					continue
				}
				ms := db.EnsureDate(date).EnsureModule(m)
				*slot(ms) = t
			}
			return
		}
	}

	legacyGroups, err := decodeLegacyIS32Dated(data)
	if err != nil {
		logCorrupt(logger, metric, err)
		return
	}
	app := db.App()
	for _, g := range legacyGroups {
		if !keep[g.Date] {
			continue
		}
		ms := db.EnsureDate(g.Date).EnsureModule(m)
		t := htable.NewII08()
		for _, e := range g.Entries {
			id := internMethProtoID(app.MethProto, e.V)
			t.InsertOrReplace(e.K, id)
		}
		*slot(ms) = t
	}
	removeLegacyFile(dir, filename, logger, metric)
	if logger != nil {
		logger.Info("migrated legacy IS32 table to II08", zap.String("metric", metric))
	}
}

func internMethProtoID(t *htable.SI08, name string) uint8 {
	if id, ok := t.Get(name); ok {
		return id
	}
	id := uint8(t.Size() + 1)
	t.InsertOrReplace(name, id)
	return id
}

// decodeLegacySI32Dated reads the pre-migration KEYMAP/UNIQUE_KEYS/
// AGENT_KEYS shape: per date, an array of (raw string key, u32 id) pairs.
func decodeLegacySI32Dated(data []byte) ([]dated[string, uint32], error) {
	_, flags, body, err := decodeFile(data)
	if err != nil {
		return nil, err
	}
	return decodeDated(newReader(body, flags), strReader, u32Reader)
}

// decodeLegacyIS32Dated reads the pre-migration METHODS/PROTOCOLS shape:
// per date, an array of (hit id, method-or-protocol name) pairs, before the
// name was interned into a METH_PROTO id.
func decodeLegacyIS32Dated(data []byte) ([]dated[uint32, string], error) {
	_, flags, body, err := decodeFile(data)
	if err != nil {
		return nil, err
	}
	return decodeDated(newReader(body, flags), u32Reader, strReader)
}
