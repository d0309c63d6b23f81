package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dreamware/logcore/internal/hashkey"
	"github.com/dreamware/logcore/internal/htable"
	"github.com/dreamware/logcore/internal/module"
	"github.com/dreamware/logcore/internal/schema"
	"github.com/dreamware/logcore/internal/store"
)

func TestFileHeaderRoundTrip(t *testing.T) {
	body := []byte{1, 2, 3, 4}
	data := encodeFile("A(uu)", body)

	formatStr, flags, got, err := decodeFile(data)
	require.NoError(t, err)
	assert.Equal(t, "A(uu)", formatStr)
	assert.Equal(t, nativeFlags, flags)
	assert.Equal(t, body, got)
}

func TestDecodeFileRejectsBadMagic(t *testing.T) {
	_, _, _, err := decodeFile([]byte("nope"))
	assert.Error(t, err)
}

func TestII32DatedRoundTrip(t *testing.T) {
	t1 := htable.NewII32()
	t1.Insert(10, 100)
	t1.Insert(20, 200)
	t2 := htable.NewII32()
	t2.Insert(30, 300)

	data := EncodeII32Dated(map[uint32]*htable.II32{20250101: t1, 20250102: t2})
	out, err := DecodeII32Dated(data)
	require.NoError(t, err)
	require.Contains(t, out, uint32(20250101))
	require.Contains(t, out, uint32(20250102))

	v, ok := out[20250101].Get(10)
	require.True(t, ok)
	assert.Equal(t, uint32(100), v)

	v, ok = out[20250102].Get(30)
	require.True(t, ok)
	assert.Equal(t, uint32(300), v)
}

func TestII08DatedRoundTripPreservesU8ViaU16Wire(t *testing.T) {
	tbl := htable.NewII08()
	tbl.Insert(1, 9)
	tbl.Insert(2, 255)

	data := EncodeII08Dated(map[uint32]*htable.II08{20250101: tbl})
	out, err := DecodeII08Dated(data)
	require.NoError(t, err)

	v, ok := out[20250101].Get(2)
	require.True(t, ok)
	assert.Equal(t, uint8(255), v)
}

func TestIGSLDatedRoundTripFlattensAndRebuildsLists(t *testing.T) {
	tbl := htable.NewIGSL()
	tbl.Append(1, 100)
	tbl.Append(1, 101)
	tbl.Append(2, 200)

	data := EncodeIGSLDated(map[uint32]*htable.IGSL{20250101: tbl})
	out, err := DecodeIGSLDated(data)
	require.NoError(t, err)

	got := out[20250101].List(1)
	assert.ElementsMatch(t, []uint32{100, 101}, got)
	assert.ElementsMatch(t, []uint32{200}, out[20250101].List(2))
}

func TestSI08FlatRoundTrip(t *testing.T) {
	tbl := htable.NewSI08()
	tbl.Insert("GET", 1)
	tbl.Insert("POST", 2)

	data := EncodeSI08Flat(tbl)
	out, err := DecodeSI08Flat(data)
	require.NoError(t, err)

	v, ok := out.Get("POST")
	require.True(t, ok)
	assert.Equal(t, uint8(2), v)
}

func TestDatesRoundTrip(t *testing.T) {
	data := EncodeDates([]uint32{20250101, 20250102, 20250103})
	out, err := DecodeDates(data)
	require.NoError(t, err)
	assert.Equal(t, []uint32{20250101, 20250102, 20250103}, out)
}

func ingestSample(t *testing.T, db *store.DB) {
	t.Helper()
	err := db.Ingest(store.Record{
		Date:        20250101,
		Module:      module.Requests,
		Key:         "/index.html",
		VisitorKey:  "198.51.100.1|20250101|uaA",
		Hits:        1,
		Bytes:       512,
		ServeTimeUs: 10,
		Method:      "GET",
		Protocol:    "HTTP/1.1",
	})
	require.NoError(t, err)
	db.RecordAgent(20250101, module.Hosts, "198.51.100.1", "curl/8.0")
}

func TestPersistRestoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	logger := zap.NewNop()

	db := store.New(logger, nil)
	ingestSample(t, db)

	require.NoError(t, Persist(db, dir))

	restored, err := Restore(dir, logger, nil, 0)
	require.NoError(t, err)

	assert.Equal(t, db.Dates(), restored.Dates())
	assert.Equal(t, db.SumValid(), restored.SumValid())
	assert.Equal(t, db.SumBW(), restored.SumBW())

	assert.NotNil(t, restored.CacheFor(module.Requests))
}

func TestUniqmapSurvivesRestoreAndSuppressesRepeatVisit(t *testing.T) {
	dir := t.TempDir()
	logger := zap.NewNop()

	db := store.New(logger, nil)
	ingestSample(t, db)
	require.NoError(t, Persist(db, dir))

	restored, err := Restore(dir, logger, nil, 0)
	require.NoError(t, err)

	ds := restored.DateStoreFor(20250101)
	require.NotNil(t, ds)
	ms, ok := ds.ModuleStoreFor(module.Requests)
	require.True(t, ok)

	hash := hashkey.Djb2("/index.html")
	hitID, ok := ms.Keymap.Get(hash)
	require.True(t, ok)
	visitorsBefore, _ := ms.Visitors.Get(hitID)

	require.NoError(t, restored.Ingest(store.Record{
		Date:        20250101,
		Module:      module.Requests,
		Key:         "/index.html",
		VisitorKey:  "198.51.100.1|20250101|uaA",
		Hits:        1,
		Bytes:       512,
		ServeTimeUs: 10,
		Method:      "GET",
		Protocol:    "HTTP/1.1",
	}))

	visitorsAfter, _ := ms.Visitors.Get(hitID)
	assert.Equal(t, visitorsBefore, visitorsAfter, "a restored repeat visit must not be double-counted")
}

func TestIngestAfterRestoreDoesNotCollideWithRestoredHitIDs(t *testing.T) {
	dir := t.TempDir()
	logger := zap.NewNop()

	db := store.New(logger, nil)
	ingestSample(t, db)
	require.NoError(t, Persist(db, dir))

	restored, err := Restore(dir, logger, nil, 0)
	require.NoError(t, err)

	ds := restored.DateStoreFor(20250101)
	require.NotNil(t, ds)
	ms, ok := ds.ModuleStoreFor(module.Requests)
	require.True(t, ok)

	indexHash := hashkey.Djb2("/index.html")
	indexHitID, ok := ms.Keymap.Get(indexHash)
	require.True(t, ok)
	hitsBefore, _ := ms.Hits.Get(indexHitID)

	require.NoError(t, restored.Ingest(store.Record{
		Date:        20250101,
		Module:      module.Requests,
		Key:         "/other.html",
		VisitorKey:  "198.51.100.2|20250101|uaB",
		Hits:        5,
		Bytes:       256,
		ServeTimeUs: 20,
		Method:      "GET",
		Protocol:    "HTTP/1.1",
	}))

	otherHash := hashkey.Djb2("/other.html")
	otherHitID, ok := ms.Keymap.Get(otherHash)
	require.True(t, ok)
	require.NotEqual(t, indexHitID, otherHitID, "newly minted hit id must not collide with a restored one")

	hitsAfter, _ := ms.Hits.Get(indexHitID)
	assert.Equal(t, hitsBefore, hitsAfter, "ingesting a new key after restore must not corrupt an existing key's aggregate")
}

func TestRestoreMissingDatesIndexReturnsEmptyDB(t *testing.T) {
	dir := t.TempDir()
	db, err := Restore(dir, zap.NewNop(), nil, 0)
	require.NoError(t, err)
	assert.Empty(t, db.Dates())
}

func TestRestoreKeepLastTruncatesOldDates(t *testing.T) {
	dir := t.TempDir()
	logger := zap.NewNop()

	db := store.New(logger, nil)
	for _, date := range []uint32{20250101, 20250102, 20250103} {
		require.NoError(t, db.Ingest(store.Record{
			Date:        date,
			Module:      module.Requests,
			Key:         "/a",
			VisitorKey:  "198.51.100.1|x|uaA",
			Hits:        1,
			Bytes:       10,
			ServeTimeUs: 1,
			Method:      "GET",
			Protocol:    "HTTP/1.1",
		}))
	}
	require.NoError(t, Persist(db, dir))

	restored, err := Restore(dir, logger, nil, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint32{20250102, 20250103}, restored.Dates())
}

func TestMigrateLegacySI32ToII32(t *testing.T) {
	dir := t.TempDir()

	// Write a legacy UNIQUE_KEYS file by hand: per-date array of
	// (raw string key, id) pairs, the pre-migration shape.
	groups := []dated[string, uint32]{
		{Date: 20250101, Entries: []kv[string, uint32]{{K: "198.51.100.1", V: 1}}},
	}
	legacy := encodeFile(formatSI32, encodeDated(groups, strWriter, u32Writer))

	desc := schema.GlobalMetrics[schema.MetricUniqueKeys]
	require.NoError(t, writeFile(dir, desc.GlobalFilename(), legacy))
	require.NoError(t, writeFile(dir, schema.DatesIndexFilename, EncodeDates([]uint32{20250101})))

	db, err := Restore(dir, zap.NewNop(), nil, 0)
	require.NoError(t, err)

	ds := db.DateStoreFor(20250101)
	require.NotNil(t, ds)
	v, ok := ds.Global.UniqueKeys.Get(hashkey.Djb2("198.51.100.1"))
	require.True(t, ok)
	assert.Equal(t, uint32(1), v)
}
