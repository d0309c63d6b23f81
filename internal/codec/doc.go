// Package codec implements the "tpl" self-describing binary record format
// (spec.md §4.5) used to persist every metric table to its own file and to
// restore it on the next run, including migration of the pre-II32/II08
// legacy layouts.
//
// Every file shares one header: the 3-byte magic "tpl", one FLAGS byte
// (bit 0 = producer was big-endian, bit 1 = nul-strings supported), a u32
// length, and a compact FORMAT_STR describing the body's shape. The body
// itself is either a flat array of (key, value) pairs (app/global-undated
// metrics) or a per-date array of such arrays (module and dated-global
// metrics).
//
// This package is built directly on encoding/binary: the wire grammar is a
// specific legacy byte layout being reproduced for file compatibility, not
// a schema this package gets to pick a general-purpose marshaler for.
package codec
