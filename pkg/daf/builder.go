package daf

import (
	"encoding/binary"
	"math"
)

// Builder assembles a little-endian SPK file in memory. It writes a single
// summary record, which caps it at 25 segments; that covers tooling and
// test fixtures, not bulk kernel production.
type Builder struct {
	internalName string
	summaries    []Summary
	data         [][]float64
}

// NewBuilder starts a kernel with the given internal name.
func NewBuilder(internalName string) *Builder {
	return &Builder{internalName: internalName}
}

// AddSegment appends a segment. Word addresses are assigned when the file
// is assembled; the Initial/Final fields of s are ignored.
func (b *Builder) AddSegment(s Summary, data []float64) *Builder {
	b.summaries = append(b.summaries, s)
	b.data = append(b.data, data)
	return b
}

// Bytes assembles the file.
func (b *Builder) Bytes() ([]byte, error) {
	if len(b.summaries) == 0 {
		return nil, ErrEmptyKernel
	}
	if len(b.summaries) > (wordsPerRec-3)*wordSize/40 {
		return nil, &FormatError{"too many segments for a single summary record"}
	}

	// Records 1-3: file record, summary record, name record. Data starts
	// at record 4, word address 3*128+1.
	addr := 3*wordsPerRec + 1
	for i := range b.summaries {
		b.summaries[i].Initial = addr
		b.summaries[i].Final = addr + len(b.data[i]) - 1
		addr = b.summaries[i].Final + 1
	}

	nrec := 3 + (addr-1-3*wordsPerRec+wordsPerRec-1)/wordsPerRec
	raw := make([]byte, nrec*recordSize)

	// File record.
	copy(raw[0:8], []byte("DAF/SPK "))
	binary.LittleEndian.PutUint32(raw[8:12], spkND)
	binary.LittleEndian.PutUint32(raw[12:16], spkNI)
	name := b.internalName
	if len(name) > 60 {
		name = name[:60]
	}
	copy(raw[16:76], padRight(name, 60))
	binary.LittleEndian.PutUint32(raw[76:80], 2)                // fward
	binary.LittleEndian.PutUint32(raw[80:84], 2)                // bward
	binary.LittleEndian.PutUint32(raw[84:88], uint32(addr))     // free
	copy(raw[88:96], padRight("LTL-IEEE", 8))

	// Summary record.
	base := recordSize
	putF64(raw, base, 0)                          // next
	putF64(raw, base+wordSize, 0)                 // prev
	putF64(raw, base+2*wordSize, float64(len(b.summaries))) // nsum
	for k, s := range b.summaries {
		so := base + 3*wordSize + k*40
		putF64(raw, so, s.StartET)
		putF64(raw, so+8, s.EndET)
		binary.LittleEndian.PutUint32(raw[so+16:], uint32(int32(s.Target)))
		binary.LittleEndian.PutUint32(raw[so+20:], uint32(int32(s.Center)))
		binary.LittleEndian.PutUint32(raw[so+24:], uint32(int32(s.Frame)))
		binary.LittleEndian.PutUint32(raw[so+28:], uint32(int32(s.DataType)))
		binary.LittleEndian.PutUint32(raw[so+32:], uint32(int32(s.Initial)))
		binary.LittleEndian.PutUint32(raw[so+36:], uint32(int32(s.Final)))

		copy(raw[2*recordSize+k*40:2*recordSize+(k+1)*40], padRight(s.Name, 40))
	}

	// Element data.
	for i, s := range b.summaries {
		off := (s.Initial - 1) * wordSize
		for j, v := range b.data[i] {
			putF64(raw, off+j*wordSize, v)
		}
	}

	return raw, nil
}

func putF64(raw []byte, off int, v float64) {
	binary.LittleEndian.PutUint64(raw[off:off+8], math.Float64bits(v))
}

func padRight(s string, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = ' '
	}
	copy(out, s)
	return out
}
