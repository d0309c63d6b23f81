// Package cache implements the per-module aggregation cache: a reduced view
// over a module's dated tables that folds HITS/VISITORS/BW/CUMTS into
// running sums, MAXTS into a running maximum, and keeps DATAMAP/ROOTMAP/
// METHODS/PROTOCOLS pinned to their first observation (spec.md §4.4).
//
// Cache ids (ck) are independent of the per-date "hit id" a module store
// assigns: a ck is allocated the first time a given djb2 hash is seen by
// *any* date for that module, and never reused or reassigned within one
// Cache. internal/store's RebuildCache (run on Invalidate and after a
// restore) replaces a module's Cache with a new one whose cks are assigned
// afresh, so a ck is a stable handle only until the next rebuild.
//
// This package has no dependency on internal/store — it operates purely on
// primitive keys and values handed to it — so internal/store can depend on
// internal/cache without a cycle.
package cache
