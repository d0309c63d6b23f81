package codec

import "github.com/dreamware/logcore/internal/htable"

func u16Writer(w *writer, v uint16) { w.u16(v) }
func u16Reader(r *reader) (uint16, error) { return r.u16() }

// u8AsU16Writer/Reader persist a u8 value in the u16 slot the legacy format
// table reserves for small-domain ids (METHODS, PROTOCOLS, SI08), matching
// spec.md §4.5's "v"=u16 atom for those rows even though the in-memory value
// is a single byte.
func u8AsU16Writer(w *writer, v uint8)       { w.u16(uint16(v)) }
func u8AsU16Reader(r *reader) (uint8, error) { v, err := r.u16(); return uint8(v), err }

// --- II32: A(iA(uu)) ---

const formatII32 = "A(iA(uu))"

func EncodeII32Dated(byDate map[uint32]*htable.II32) []byte {
	groups := make([]dated[uint32, uint32], 0, len(byDate))
	for date, t := range byDate {
		var entries []kv[uint32, uint32]
		t.ForEach(func(k, v uint32) { entries = append(entries, kv[uint32, uint32]{K: k, V: v}) })
		groups = append(groups, dated[uint32, uint32]{Date: date, Entries: entries})
	}
	return encodeFile(formatII32, encodeDated(groups, u32Writer, u32Writer))
}

func DecodeII32Dated(data []byte) (map[uint32]*htable.II32, error) {
	_, flags, body, err := decodeFile(data)
	if err != nil {
		return nil, err
	}
	groups, err := decodeDated(newReader(body, flags), u32Reader, u32Reader)
	if err != nil {
		return nil, err
	}
	out := make(map[uint32]*htable.II32, len(groups))
	for _, g := range groups {
		t := htable.NewII32()
		for _, e := range g.Entries {
			t.InsertOrReplace(e.K, e.V)
		}
		out[g.Date] = t
	}
	return out, nil
}

// --- II08: A(iA(uv)) ---

const formatII08 = "A(iA(uv))"

func EncodeII08Dated(byDate map[uint32]*htable.II08) []byte {
	groups := make([]dated[uint32, uint8], 0, len(byDate))
	for date, t := range byDate {
		var entries []kv[uint32, uint8]
		t.ForEach(func(k uint32, v uint8) { entries = append(entries, kv[uint32, uint8]{K: k, V: v}) })
		groups = append(groups, dated[uint32, uint8]{Date: date, Entries: entries})
	}
	return encodeFile(formatII08, encodeDated(groups, u32Writer, u8AsU16Writer))
}

func DecodeII08Dated(data []byte) (map[uint32]*htable.II08, error) {
	_, flags, body, err := decodeFile(data)
	if err != nil {
		return nil, err
	}
	groups, err := decodeDated(newReader(body, flags), u32Reader, u8AsU16Reader)
	if err != nil {
		return nil, err
	}
	out := make(map[uint32]*htable.II08, len(groups))
	for _, g := range groups {
		t := htable.NewII08()
		for _, e := range g.Entries {
			t.InsertOrReplace(e.K, e.V)
		}
		out[g.Date] = t
	}
	return out, nil
}

// --- IS32: A(iA(us)) ---

const formatIS32 = "A(iA(us))"

func EncodeIS32Dated(byDate map[uint32]*htable.IS32) []byte {
	groups := make([]dated[uint32, string], 0, len(byDate))
	for date, t := range byDate {
		var entries []kv[uint32, string]
		t.ForEach(func(k uint32, v string) { entries = append(entries, kv[uint32, string]{K: k, V: v}) })
		groups = append(groups, dated[uint32, string]{Date: date, Entries: entries})
	}
	return encodeFile(formatIS32, encodeDated(groups, u32Writer, strWriter))
}

func DecodeIS32Dated(data []byte) (map[uint32]*htable.IS32, error) {
	_, flags, body, err := decodeFile(data)
	if err != nil {
		return nil, err
	}
	groups, err := decodeDated(newReader(body, flags), u32Reader, strReader)
	if err != nil {
		return nil, err
	}
	out := make(map[uint32]*htable.IS32, len(groups))
	for _, g := range groups {
		t := htable.NewIS32()
		for _, e := range g.Entries {
			t.InsertOrReplace(e.K, e.V)
		}
		out[g.Date] = t
	}
	return out, nil
}

// --- IU64: A(iA(uU)) ---

const formatIU64 = "A(iA(uU))"

func EncodeIU64Dated(byDate map[uint32]*htable.IU64) []byte {
	groups := make([]dated[uint32, uint64], 0, len(byDate))
	for date, t := range byDate {
		var entries []kv[uint32, uint64]
		t.ForEach(func(k uint32, v uint64) { entries = append(entries, kv[uint32, uint64]{K: k, V: v}) })
		groups = append(groups, dated[uint32, uint64]{Date: date, Entries: entries})
	}
	return encodeFile(formatIU64, encodeDated(groups, u32Writer, u64Writer))
}

func DecodeIU64Dated(data []byte) (map[uint32]*htable.IU64, error) {
	_, flags, body, err := decodeFile(data)
	if err != nil {
		return nil, err
	}
	groups, err := decodeDated(newReader(body, flags), u32Reader, u64Reader)
	if err != nil {
		return nil, err
	}
	out := make(map[uint32]*htable.IU64, len(groups))
	for _, g := range groups {
		t := htable.NewIU64()
		for _, e := range g.Entries {
			t.InsertOrReplace(e.K, e.V)
		}
		out[g.Date] = t
	}
	return out, nil
}

// --- U648: A(iA(Uv)) ---

const formatU648 = "A(iA(Uv))"

func EncodeU648Dated(byDate map[uint32]*htable.U648) []byte {
	groups := make([]dated[uint64, uint8], 0, len(byDate))
	for date, t := range byDate {
		var entries []kv[uint64, uint8]
		t.ForEach(func(k uint64, v uint8) { entries = append(entries, kv[uint64, uint8]{K: k, V: v}) })
		groups = append(groups, dated[uint64, uint8]{Date: date, Entries: entries})
	}
	return encodeFile(formatU648, encodeDated(groups, u64Writer, u8AsU16Writer))
}

func DecodeU648Dated(data []byte) (map[uint32]*htable.U648, error) {
	_, flags, body, err := decodeFile(data)
	if err != nil {
		return nil, err
	}
	groups, err := decodeDated(newReader(body, flags), u64Reader, u8AsU16Reader)
	if err != nil {
		return nil, err
	}
	out := make(map[uint32]*htable.U648, len(groups))
	for _, g := range groups {
		t := htable.NewU648()
		for _, e := range g.Entries {
			t.Insert(e.K, e.V)
		}
		out[g.Date] = t
	}
	return out, nil
}

// --- IGSL: A(iA(uu)) — list flattened as adjacent (host, agent) pairs ---

const formatIGSL = "A(iA(uu))"

func EncodeIGSLDated(byDate map[uint32]*htable.IGSL) []byte {
	groups := make([]dated[uint32, uint32], 0, len(byDate))
	for date, t := range byDate {
		var entries []kv[uint32, uint32]
		t.ForEach(func(host uint32, agents []uint32) {
			for _, agent := range agents {
				entries = append(entries, kv[uint32, uint32]{K: host, V: agent})
			}
		})
		groups = append(groups, dated[uint32, uint32]{Date: date, Entries: entries})
	}
	return encodeFile(formatIGSL, encodeDated(groups, u32Writer, u32Writer))
}

func DecodeIGSLDated(data []byte) (map[uint32]*htable.IGSL, error) {
	_, flags, body, err := decodeFile(data)
	if err != nil {
		return nil, err
	}
	groups, err := decodeDated(newReader(body, flags), u32Reader, u32Reader)
	if err != nil {
		return nil, err
	}
	out := make(map[uint32]*htable.IGSL, len(groups))
	for _, g := range groups {
		t := htable.NewIGSL()
		for _, e := range g.Entries {
			t.Append(e.K, e.V)
		}
		out[g.Date] = t
	}
	return out, nil
}

// --- II32 (app, undated): A(uu) — DATES is the one II32 metric with no
// per-date grouping, since it IS the date index's membership set. ---

const formatII32Flat = "A(uu)"

func EncodeII32Flat(t *htable.II32) []byte {
	var entries []kv[uint32, uint32]
	t.ForEach(func(k, v uint32) { entries = append(entries, kv[uint32, uint32]{K: k, V: v}) })
	return encodeFile(formatII32Flat, encodeFlat(entries, u32Writer, u32Writer))
}

func DecodeII32Flat(data []byte) (*htable.II32, error) {
	_, flags, body, err := decodeFile(data)
	if err != nil {
		return nil, err
	}
	entries, err := decodeFlat(newReader(body, flags), u32Reader, u32Reader)
	if err != nil {
		return nil, err
	}
	t := htable.NewII32()
	for _, e := range entries {
		t.InsertOrReplace(e.K, e.V)
	}
	return t, nil
}

// --- SU64 (module, dated — METADATA): A(iA(sU)) ---

const formatSU64Dated = "A(iA(sU))"

func EncodeSU64Dated(byDate map[uint32]*htable.SU64) []byte {
	groups := make([]dated[string, uint64], 0, len(byDate))
	for date, t := range byDate {
		var entries []kv[string, uint64]
		t.ForEach(func(k string, v uint64) { entries = append(entries, kv[string, uint64]{K: k, V: v}) })
		groups = append(groups, dated[string, uint64]{Date: date, Entries: entries})
	}
	return encodeFile(formatSU64Dated, encodeDated(groups, strWriter, u64Writer))
}

func DecodeSU64Dated(data []byte) (map[uint32]*htable.SU64, error) {
	_, flags, body, err := decodeFile(data)
	if err != nil {
		return nil, err
	}
	groups, err := decodeDated(newReader(body, flags), strReader, u64Reader)
	if err != nil {
		return nil, err
	}
	out := make(map[uint32]*htable.SU64, len(groups))
	for _, g := range groups {
		t := htable.NewSU64()
		for _, e := range g.Entries {
			t.InsertOrReplace(e.K, e.V)
		}
		out[g.Date] = t
	}
	return out, nil
}

// --- SI32 (app, undated): A(su) ---

const formatSI32 = "A(su)"

func EncodeSI32Flat(t *htable.SI32) []byte {
	var entries []kv[string, uint32]
	t.ForEach(func(k string, v uint32) { entries = append(entries, kv[string, uint32]{K: k, V: v}) })
	return encodeFile(formatSI32, encodeFlat(entries, strWriter, u32Writer))
}

func DecodeSI32Flat(data []byte) (*htable.SI32, error) {
	_, flags, body, err := decodeFile(data)
	if err != nil {
		return nil, err
	}
	entries, err := decodeFlat(newReader(body, flags), strReader, u32Reader)
	if err != nil {
		return nil, err
	}
	t := htable.NewSI32()
	for _, e := range entries {
		t.InsertOrReplace(e.K, e.V)
	}
	return t, nil
}

// --- SI08 (app, undated): A(sv) ---

const formatSI08 = "A(sv)"

func EncodeSI08Flat(t *htable.SI08) []byte {
	var entries []kv[string, uint8]
	t.ForEach(func(k string, v uint8) { entries = append(entries, kv[string, uint8]{K: k, V: v}) })
	return encodeFile(formatSI08, encodeFlat(entries, strWriter, u8AsU16Writer))
}

func DecodeSI08Flat(data []byte) (*htable.SI08, error) {
	_, flags, body, err := decodeFile(data)
	if err != nil {
		return nil, err
	}
	entries, err := decodeFlat(newReader(body, flags), strReader, u8AsU16Reader)
	if err != nil {
		return nil, err
	}
	t := htable.NewSI08()
	for _, e := range entries {
		t.InsertOrReplace(e.K, e.V)
	}
	return t, nil
}

// --- SS32 (app, undated): A(ss) ---

const formatSS32 = "A(ss)"

func EncodeSS32Flat(t *htable.SS32) []byte {
	var entries []kv[string, string]
	t.ForEach(func(k, v string) { entries = append(entries, kv[string, string]{K: k, V: v}) })
	return encodeFile(formatSS32, encodeFlat(entries, strWriter, strWriter))
}

func DecodeSS32Flat(data []byte) (*htable.SS32, error) {
	_, flags, body, err := decodeFile(data)
	if err != nil {
		return nil, err
	}
	entries, err := decodeFlat(newReader(body, flags), strReader, strReader)
	if err != nil {
		return nil, err
	}
	t := htable.NewSS32()
	for _, e := range entries {
		t.InsertOrReplace(e.K, e.V)
	}
	return t, nil
}

// --- SU64 (app, undated): A(sU) ---

const formatSU64 = "A(sU)"

func EncodeSU64Flat(t *htable.SU64) []byte {
	var entries []kv[string, uint64]
	t.ForEach(func(k string, v uint64) { entries = append(entries, kv[string, uint64]{K: k, V: v}) })
	return encodeFile(formatSU64, encodeFlat(entries, strWriter, u64Writer))
}

func DecodeSU64Flat(data []byte) (*htable.SU64, error) {
	_, flags, body, err := decodeFile(data)
	if err != nil {
		return nil, err
	}
	entries, err := decodeFlat(newReader(body, flags), strReader, u64Reader)
	if err != nil {
		return nil, err
	}
	t := htable.NewSU64()
	for _, e := range entries {
		t.InsertOrReplace(e.K, e.V)
	}
	return t, nil
}

// --- I32_DATES.db: A(u) ---

func EncodeDates(dates []uint32) []byte {
	w := newWriter()
	w.u32(uint32(len(dates)))
	for _, d := range dates {
		w.u32(d)
	}
	return encodeFile("A(u)", w.Bytes())
}

func DecodeDates(data []byte) ([]uint32, error) {
	_, flags, body, err := decodeFile(data)
	if err != nil {
		return nil, err
	}
	r := newReader(body, flags)
	n, err := r.u32()
	if err != nil {
		return nil, err
	}
	out := make([]uint32, 0, n)
	for i := uint32(0); i < n; i++ {
		d, err := r.u32()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
