package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppMetricsIndexMatchesEnum(t *testing.T) {
	assert.Equal(t, "DATES", AppMetrics[MetricDates].Name)
	assert.Equal(t, "DB_PROPS", AppMetrics[MetricDBProps].Name)
	assert.Len(t, AppMetrics, int(numAppMetrics))
}

func TestModuleMetricsCount(t *testing.T) {
	assert.Len(t, ModuleMetrics, 14)
	assert.Equal(t, "KEYMAP", ModuleMetrics[MetricKeymap].Name)
	assert.Equal(t, "METADATA", ModuleMetrics[MetricMetadata].Name)
}

func TestGlobalMetricsCount(t *testing.T) {
	assert.Len(t, GlobalMetrics, 5)
}

func TestFilenameConvention(t *testing.T) {
	d := ModuleMetrics[MetricHits]
	assert.Equal(t, "II32_REQUESTS_HITS.db", d.Filename("requests"))
}

func TestGlobalFilenameConvention(t *testing.T) {
	d := AppMetrics[MetricCntOverall]
	assert.Equal(t, "SU64_CNT_OVERALL.db", d.GlobalFilename())
}

func TestLastParsePackRoundTrip(t *testing.T) {
	packed := PackLastParse(1_700_000_000, 42)
	ts, line := UnpackLastParse(packed)
	assert.Equal(t, uint32(1_700_000_000), ts)
	assert.Equal(t, uint32(42), line)
}
