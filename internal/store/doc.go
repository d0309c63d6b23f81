// Package store is the top-level registry: one DB holds every date
// partition a log has been ingested into, the process-wide undated app
// tables, and a live per-module cache kept in sync with every dated write
// (spec.md §3, §4.3, §4.4).
//
// A DateStore owns one ModuleStore per report category for that date; a
// GlobalStore alongside it holds the handful of metrics that span modules
// (UNIQUE_KEYS, AGENT_KEYS/VALS, CNT_VALID, CNT_BW). internal/store depends
// on internal/cache, internal/htable, internal/schema, internal/hashkey and
// internal/module; nothing in those packages depends back on internal/store.
package store
