package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/logcore/internal/module"
)

func counterValue(t *testing.T, c interface {
	Write(*dto.Metric) error
}) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestRecordIngestLabelsByModule(t *testing.T) {
	c := NewCollector("logcore_test_ingest")
	c.RecordIngest(module.Requests)
	c.RecordIngest(module.Requests)
	c.RecordIngest(module.Hosts)

	reqCounter, err := c.IngestTotal.GetMetricWithLabelValues("requests")
	require.NoError(t, err)
	assert.Equal(t, float64(2), counterValue(t, reqCounter))

	hostCounter, err := c.IngestTotal.GetMetricWithLabelValues("hosts")
	require.NoError(t, err)
	assert.Equal(t, float64(1), counterValue(t, hostCounter))
}

func TestRecordCacheHitMiss(t *testing.T) {
	c := NewCollector("logcore_test_cache")
	c.RecordCacheHit()
	c.RecordCacheHit()
	c.RecordCacheMiss()

	assert.Equal(t, float64(2), counterValue(t, c.CacheHits))
	assert.Equal(t, float64(1), counterValue(t, c.CacheMisses))
}
