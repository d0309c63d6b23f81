package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dreamware/logcore/internal/hashkey"
	"github.com/dreamware/logcore/internal/module"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	return New(zap.NewNop(), nil)
}

// E1: three records, same path, same visitor -> hits sum, bw sum, cumts sum,
// maxts max, visitors stays at 1.
func TestIngestSameVisitorAccumulates(t *testing.T) {
	db := newTestDB(t)

	records := []struct {
		bytes uint64
		serve uint64
	}{
		{100, 5}, {200, 7}, {300, 2},
	}
	for _, r := range records {
		err := db.Ingest(Record{
			Date:        20250101,
			Module:      module.Requests,
			Key:         "/a",
			VisitorKey:  "198.51.100.1|20250101|uaA",
			Hits:        1,
			Bytes:       r.bytes,
			ServeTimeUs: r.serve,
		})
		require.NoError(t, err)
	}

	c := db.CacheFor(module.Requests)
	ck, _ := c.Intern("/a", hashkey.Djb2)

	assert.Equal(t, uint32(3), c.Hits.GetOrZero(ck))
	assert.Equal(t, uint64(600), c.BW.GetOrZero(ck))
	assert.Equal(t, uint64(14), c.CumTS.GetOrZero(ck))
	assert.Equal(t, uint64(7), c.MaxTS.GetOrZero(ck))
	assert.Equal(t, uint32(1), c.Visitors.GetOrZero(ck))
}

// E2: same as E1 but the second record's visitor composite differs ->
// visitors becomes 2.
func TestIngestDifferentVisitorIncrementsVisitors(t *testing.T) {
	db := newTestDB(t)

	visitors := []string{"v1|20250101|ua", "v2|20250101|ua", "v1|20250101|ua"}
	for _, v := range visitors {
		err := db.Ingest(Record{
			Date:       20250101,
			Module:     module.Requests,
			Key:        "/a",
			VisitorKey: v,
			Hits:       1,
		})
		require.NoError(t, err)
	}

	c := db.CacheFor(module.Requests)
	ck, _ := c.Intern("/a", hashkey.Djb2)
	assert.Equal(t, uint32(2), c.Visitors.GetOrZero(ck))
}

// E3: two dates, same path, hits {5,7} -> cache.HITS = 12, sum_valid = 12.
func TestIngestAcrossDatesSums(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Ingest(Record{
		Date: 20250101, Module: module.Requests, Key: "/a",
		VisitorKey: "v1|20250101|ua", Hits: 5,
	}))
	require.NoError(t, db.Ingest(Record{
		Date: 20250102, Module: module.Requests, Key: "/a",
		VisitorKey: "v1|20250102|ua", Hits: 7,
	}))

	c := db.CacheFor(module.Requests)
	ck, _ := c.Intern("/a", hashkey.Djb2)
	assert.Equal(t, uint32(12), c.Hits.GetOrZero(ck))
	assert.Equal(t, uint64(12), db.SumValid())
}

// E4: method interning assigns sequential ids and never reassigns.
func TestMethodInterningIsStableAndSequential(t *testing.T) {
	db := newTestDB(t)

	get := db.internMethProto("GET")
	post := db.internMethProto("POST")
	getAgain := db.internMethProto("GET")

	assert.Equal(t, uint8(1), get)
	assert.Equal(t, uint8(2), post)
	assert.Equal(t, get, getAgain)
}

// Invalidate(D0) is local: other dates' values survive, and the rebuilt
// cache no longer reflects D0's contribution.
func TestInvalidateIsLocal(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Ingest(Record{
		Date: 20250101, Module: module.Requests, Key: "/a",
		VisitorKey: "v1|20250101|ua", Hits: 5,
	}))
	require.NoError(t, db.Ingest(Record{
		Date: 20250102, Module: module.Requests, Key: "/a",
		VisitorKey: "v1|20250102|ua", Hits: 7,
	}))

	db.Invalidate(20250101)

	c := db.CacheFor(module.Requests)
	ck, _ := c.Intern("/a", hashkey.Djb2)
	assert.Equal(t, uint32(7), c.Hits.GetOrZero(ck))

	dates := db.Dates()
	require.Len(t, dates, 1)
	assert.Equal(t, uint32(20250102), dates[0])
}

func TestHostAgentListUnionsAcrossDates(t *testing.T) {
	db := newTestDB(t)

	db.RecordAgent(20250101, module.Hosts, "example.com", "agent-a")
	db.RecordAgent(20250102, module.Hosts, "example.com", "agent-b")
	db.RecordAgent(20250102, module.Hosts, "example.com", "agent-a")

	ms1 := db.EnsureDate(20250101).moduleStore(module.Hosts)
	hash := hashkey.Djb2("example.com")
	hitID, ok := ms1.Keymap.Get(hash)
	require.True(t, ok)

	c := db.CacheFor(module.Hosts)
	ck, _ := c.InternHashed(hash)
	_ = hitID

	agents := db.HostAgentList(module.Hosts, ck)
	assert.Len(t, agents, 2)
}

func TestKeymapListFromKeySpansDates(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Ingest(Record{
		Date: 20250101, Module: module.Requests, Key: "/a",
		VisitorKey: "v1|20250101|ua", Hits: 1,
	}))
	require.NoError(t, db.Ingest(Record{
		Date: 20250102, Module: module.Requests, Key: "/a",
		VisitorKey: "v1|20250102|ua", Hits: 1,
	}))

	c := db.CacheFor(module.Requests)
	ck, _ := c.Intern("/a", hashkey.Djb2)

	hitIDs := db.KeymapListFromKey(module.Requests, ck)
	assert.Len(t, hitIDs, 2)
}
