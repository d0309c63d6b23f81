package codec

// kv is one (key, value) pair read from or destined for a persisted table.
type kv[K any, V any] struct {
	K K
	V V
}

// dated groups a metric's entries by date, the shape every module metric
// and dated-global metric persists in (format `A(iA(...))`, spec.md §4.5).
type dated[K any, V any] struct {
	Date    uint32
	Entries []kv[K, V]
}

func encodeFlat[K any, V any](entries []kv[K, V], kw func(*writer, K), vw func(*writer, V)) []byte {
	w := newWriter()
	w.u32(uint32(len(entries)))
	for _, e := range entries {
		kw(w, e.K)
		vw(w, e.V)
	}
	return w.Bytes()
}

func decodeFlat[K any, V any](r *reader, kr func(*reader) (K, error), vr func(*reader) (V, error)) ([]kv[K, V], error) {
	n, err := r.u32()
	if err != nil {
		return nil, err
	}
	out := make([]kv[K, V], 0, n)
	for i := uint32(0); i < n; i++ {
		k, err := kr(r)
		if err != nil {
			return nil, err
		}
		v, err := vr(r)
		if err != nil {
			return nil, err
		}
		out = append(out, kv[K, V]{K: k, V: v})
	}
	return out, nil
}

func encodeDated[K any, V any](groups []dated[K, V], kw func(*writer, K), vw func(*writer, V)) []byte {
	w := newWriter()
	w.u32(uint32(len(groups)))
	for _, g := range groups {
		w.u32(g.Date)
		inner := encodeFlat(g.Entries, kw, vw)
		w.buf.Write(inner)
	}
	return w.Bytes()
}

func decodeDated[K any, V any](r *reader, kr func(*reader) (K, error), vr func(*reader) (V, error)) ([]dated[K, V], error) {
	n, err := r.u32()
	if err != nil {
		return nil, err
	}
	out := make([]dated[K, V], 0, n)
	for i := uint32(0); i < n; i++ {
		date, err := r.u32()
		if err != nil {
			return nil, err
		}
		entries, err := decodeFlat(r, kr, vr)
		if err != nil {
			return nil, err
		}
		out = append(out, dated[K, V]{Date: date, Entries: entries})
	}
	return out, nil
}

func u32Writer(w *writer, v uint32) { w.u32(v) }
func u32Reader(r *reader) (uint32, error) { return r.u32() }
func u64Writer(w *writer, v uint64) { w.u64(v) }
func u64Reader(r *reader) (uint64, error) { return r.u64() }
func u8Writer(w *writer, v uint8)   { w.u8(v) }
func u8Reader(r *reader) (uint8, error)   { return r.u8() }
func strWriter(w *writer, v string) { w.str(v) }
func strReader(r *reader) (string, error) { return r.str() }
