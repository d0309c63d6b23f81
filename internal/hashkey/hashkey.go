// Package hashkey implements the string and integer keying used to turn raw
// log fields into the fixed-width keys the typed hash tables store.
//
// The string hash is the classic multiplier-33 function (djb2). It is not
// chosen for collision resistance; it is chosen because it is the hash the
// persisted "migrated-u32" file format was built around, and migration code
// must reproduce it exactly on strings it re-keys (spec.md §4.1, §4.5).
package hashkey

// Djb2 hashes s with the djb2 multiplier-33 algorithm: h = h*33 + c, seeded
// at 5381. This exact seed and multiplier must never change — persisted
// files and in-flight migrations depend on byte-for-byte reproducibility.
func Djb2(s string) uint32 {
	var h uint32 = 5381
	for i := 0; i < len(s); i++ {
		h = ((h << 5) + h) + uint32(s[i])
	}
	return h
}

// EncodeComposite packs a (visitor id, hit id) pair into a single u64 key
// for UNIQMAP set membership, per spec.md §4.3 step 6 and §9's "composite
// u64 key" design note.
func EncodeComposite(visitorID, hitID uint32) uint64 {
	return uint64(visitorID)<<32 | uint64(hitID)
}

// DecodeComposite reverses EncodeComposite.
func DecodeComposite(k uint64) (visitorID, hitID uint32) {
	return uint32(k >> 32), uint32(k)
}
