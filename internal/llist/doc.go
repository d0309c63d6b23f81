// Package llist implements a minimal singly linked list used where a hash
// table value needs an ordered, dedupable fan-out of small elements — for
// example the per-host list of user-agent ids backed by htable.IGSL.
//
// Go's container/list is doubly linked and pre-generics (its Value field is
// interface{}); the contract logcore needs — create, prepend, find-by-
// predicate, foreach, remove-all — maps more directly onto a small typed
// singly linked list, so this package provides one instead of wrapping
// container/list.
package llist
