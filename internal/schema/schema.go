// Package schema holds the static description of every metric logcore
// tracks: which of the ten htable variants backs it, whether its values own
// heap memory, and the filename it persists to. spec.md §4.2 calls this the
// "metric schema" — a closed table of descriptors, indexed by the metric's
// own enum value so lookup is O(1) array indexing, matching the C source's
// load-bearing ordering requirement.
package schema

import (
	"fmt"
	"strings"
)

// Variant identifies which of htable's ten concrete map types backs a
// metric.
type Variant int

const (
	VarII32 Variant = iota
	VarII08
	VarIS32
	VarIU64
	VarSI32
	VarSI08
	VarSS32
	VarSU64
	VarU648
	VarIGSL
)

func (v Variant) String() string {
	switch v {
	case VarII32:
		return "II32"
	case VarII08:
		return "II08"
	case VarIS32:
		return "IS32"
	case VarIU64:
		return "IU64"
	case VarSI32:
		return "SI32"
	case VarSI08:
		return "SI08"
	case VarSS32:
		return "SS32"
	case VarSU64:
		return "SU64"
	case VarU648:
		return "U648"
	case VarIGSL:
		return "IGSL"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Descriptor is one row of a metric table: enough metadata to pick the
// right htable constructor, decide whether Destroy must free owned values,
// and compute the persisted filename.
type Descriptor struct {
	// Name is the metric's identifier, e.g. "HITS", "KEYMAP", "DATES". It
	// is also the "METRIC" segment of a persisted filename.
	Name string
	// Variant names the backing htable type.
	Variant Variant
	// FreeData mirrors the C source's per-schema "value owns memory" flag.
	// It is kept for documentation only; no code reads it, since Go's GC
	// reclaims everything once unreachable.
	FreeData bool
	// Dated is true for metrics kept once per date partition (module
	// metrics and the five global metrics); false for the eight app-level
	// metrics, which are process-wide and undated.
	Dated bool
}

// AppMetric enumerates the eight process-wide, undated metrics (spec.md
// §4.2).
type AppMetric int

const (
	MetricDates AppMetric = iota
	MetricSeqs
	MetricCntOverall
	MetricHostnames
	MetricLastParse
	MetricJSONLogFmt
	MetricMethProto
	MetricDBProps

	numAppMetrics
)

// AppMetrics is indexed by AppMetric; the slice position equals the enum
// value, so AppMetrics[MetricDBProps] is always the right descriptor without
// a map lookup.
var AppMetrics = [numAppMetrics]Descriptor{
	MetricDates:      {Name: "DATES", Variant: VarII32, FreeData: false},
	MetricSeqs:       {Name: "SEQS", Variant: VarSI32, FreeData: false},
	MetricCntOverall: {Name: "CNT_OVERALL", Variant: VarSU64, FreeData: false},
	MetricHostnames:  {Name: "HOSTNAMES", Variant: VarSS32, FreeData: true},
	MetricLastParse:  {Name: "LAST_PARSE", Variant: VarSU64, FreeData: false},
	MetricJSONLogFmt: {Name: "JSON_LOGFMT", Variant: VarSS32, FreeData: true},
	MetricMethProto:  {Name: "METH_PROTO", Variant: VarSI08, FreeData: true},
	MetricDBProps:    {Name: "DB_PROPS", Variant: VarSU64, FreeData: false},
}

// ModuleMetric enumerates the fourteen per-module metrics (spec.md §4.2).
type ModuleMetric int

const (
	MetricKeymap ModuleMetric = iota
	MetricRootmap
	MetricDatamap
	MetricUniqmap
	MetricRoot
	MetricHits
	MetricVisitors
	MetricBW
	MetricCumTS
	MetricMaxTS
	MetricMethods
	MetricProtocols
	MetricAgents
	MetricMetadata

	numModuleMetrics
)

// ModuleMetrics is indexed by ModuleMetric.
var ModuleMetrics = [numModuleMetrics]Descriptor{
	MetricKeymap:    {Name: "KEYMAP", Variant: VarII32, FreeData: false, Dated: true},
	MetricRootmap:   {Name: "ROOTMAP", Variant: VarIS32, FreeData: true, Dated: true},
	MetricDatamap:   {Name: "DATAMAP", Variant: VarIS32, FreeData: true, Dated: true},
	MetricUniqmap:   {Name: "UNIQMAP", Variant: VarU648, FreeData: false, Dated: true},
	MetricRoot:      {Name: "ROOT", Variant: VarII32, FreeData: false, Dated: true},
	MetricHits:      {Name: "HITS", Variant: VarII32, FreeData: false, Dated: true},
	MetricVisitors:  {Name: "VISITORS", Variant: VarII32, FreeData: false, Dated: true},
	MetricBW:        {Name: "BW", Variant: VarIU64, FreeData: false, Dated: true},
	MetricCumTS:     {Name: "CUMTS", Variant: VarIU64, FreeData: false, Dated: true},
	MetricMaxTS:     {Name: "MAXTS", Variant: VarIU64, FreeData: false, Dated: true},
	MetricMethods:   {Name: "METHODS", Variant: VarII08, FreeData: false, Dated: true},
	MetricProtocols: {Name: "PROTOCOLS", Variant: VarII08, FreeData: false, Dated: true},
	MetricAgents:    {Name: "AGENTS", Variant: VarIGSL, FreeData: true, Dated: true},
	MetricMetadata:  {Name: "METADATA", Variant: VarSU64, FreeData: false, Dated: true},
}

// GlobalMetric enumerates the five per-date, cross-module metrics (spec.md
// §4.2).
type GlobalMetric int

const (
	MetricUniqueKeys GlobalMetric = iota
	MetricAgentKeys
	MetricAgentVals
	MetricCntValid
	MetricCntBW

	numGlobalMetrics
)

// GlobalMetrics is indexed by GlobalMetric.
var GlobalMetrics = [numGlobalMetrics]Descriptor{
	MetricUniqueKeys: {Name: "UNIQUE_KEYS", Variant: VarII32, FreeData: false, Dated: true},
	MetricAgentKeys:  {Name: "AGENT_KEYS", Variant: VarII32, FreeData: false, Dated: true},
	MetricAgentVals:  {Name: "AGENT_VALS", Variant: VarIS32, FreeData: true, Dated: true},
	MetricCntValid:   {Name: "CNT_VALID", Variant: VarII32, FreeData: false, Dated: true},
	MetricCntBW:      {Name: "CNT_BW", Variant: VarIU64, FreeData: false, Dated: true},
}

// Filename computes the persisted filename for a module metric, following
// spec.md §6's "<TYPE>_<MODULE>_<METRIC>.db" convention.
func (d Descriptor) Filename(moduleName string) string {
	return fmt.Sprintf("%s_%s_%s.db", d.Variant, strings.ToUpper(moduleName), d.Name)
}

// GlobalFilename computes the persisted filename for an app or global
// metric, following the "<TYPE>_<METRIC>.db" convention (no module
// segment).
func (d Descriptor) GlobalFilename() string {
	return fmt.Sprintf("%s_%s.db", d.Variant, d.Name)
}

// DatesIndexFilename is the one file with no type/metric prefix, per
// spec.md §4.5: the sorted list of persisted dates, read before anything
// else on restore.
const DatesIndexFilename = "I32_DATES.db"

// LastParseKey is the single fixed string key LAST_PARSE is stored under.
// LAST_PARSE conceptually holds one (unix timestamp, line number) pair, not
// a map, so rather than adding an eleventh htable shape it rides the
// existing SU64 variant under one well-known key, with the pair packed into
// a single uint64 by PackLastParse.
const LastParseKey = "last_parse"

// PackLastParse combines a unix timestamp and a source line number into the
// single uint64 LAST_PARSE's SU64 table stores under LastParseKey.
func PackLastParse(unixSeconds uint32, line uint32) uint64 {
	return uint64(unixSeconds)<<32 | uint64(line)
}

// UnpackLastParse reverses PackLastParse.
func UnpackLastParse(v uint64) (unixSeconds, line uint32) {
	return uint32(v >> 32), uint32(v)
}
