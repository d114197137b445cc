// Package daf reads NAIF Double-precision Array Files (DAF), the container
// format of SPK ephemeris kernels. It parses the file record and the
// doubly-linked summary records, and hands out zero-copy views of each
// segment's doubles to the decoders in pkg/segment.
//
// Only little-endian ("LTL-IEEE") files are supported.
package daf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/seren-space/orrery/pkg/epoch"
)

const (
	recordSize  = 1024 // bytes per DAF record
	wordSize    = 8    // bytes per double
	wordsPerRec = recordSize / wordSize
)

// SPK files carry 2 double components and 6 integer components per summary.
const (
	spkND = 2
	spkNI = 6
)

// Errors
var (
	ErrNotDAF      = &FormatError{"not a DAF file"}
	ErrNotSPK      = &FormatError{"DAF file does not hold SPK data"}
	ErrBigEndian   = &FormatError{"big-endian DAF files are not supported"}
	ErrTruncated   = &FormatError{"file shorter than its directory claims"}
	ErrBadSummary  = &FormatError{"summary record out of bounds"}
	ErrBadSegment  = &FormatError{"segment addresses out of bounds"}
	ErrEmptyKernel = &FormatError{"kernel contains no segments"}
)

// FormatError reports a structurally invalid DAF file.
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string {
	return e.Message
}

// Summary describes one segment: its coverage interval, the integer
// descriptor components, and the 1-based word addresses of its data.
type Summary struct {
	StartET  float64
	EndET    float64
	Target   int
	Center   int
	Frame    int
	DataType int
	Initial  int
	Final    int
	Name     string
}

// Start returns the coverage start epoch.
func (s Summary) Start() epoch.Epoch { return epoch.FromET(s.StartET) }

// End returns the coverage end epoch.
func (s Summary) End() epoch.Epoch { return epoch.FromET(s.EndET) }

// Covers reports whether e falls inside the summary's interval.
func (s Summary) Covers(e epoch.Epoch) bool {
	return e.ET() >= s.StartET && e.ET() <= s.EndET
}

func (s Summary) String() string {
	return fmt.Sprintf("%s: target %d / center %d, frame %d, type %d, %s to %s",
		s.Name, s.Target, s.Center, s.Frame, s.DataType, s.Start(), s.End())
}

// File is a fully-loaded, read-only SPK kernel. The word array is decoded
// once at load time; segment decoders borrow sub-slices of it.
type File struct {
	InternalName string

	words     []float64
	summaries []Summary
}

// Open loads and parses the kernel at path.
func Open(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading kernel: %w", err)
	}
	f, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing kernel %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a kernel from its raw bytes.
func Parse(raw []byte) (*File, error) {
	if len(raw) < recordSize {
		return nil, ErrNotDAF
	}
	idword := string(raw[0:8])
	if !strings.HasPrefix(idword, "DAF/") {
		return nil, ErrNotDAF
	}
	if strings.TrimRight(idword[4:], " ") != "SPK" {
		return nil, ErrNotSPK
	}

	nd := int(binary.LittleEndian.Uint32(raw[8:12]))
	ni := int(binary.LittleEndian.Uint32(raw[12:16]))
	internalName := strings.TrimRight(string(raw[16:76]), " \x00")
	fward := int(binary.LittleEndian.Uint32(raw[76:80]))
	locfmt := strings.TrimRight(string(raw[88:96]), " \x00")

	switch locfmt {
	case "LTL-IEEE":
	case "BIG-IEEE":
		return nil, ErrBigEndian
	default:
		// Pre-N0052 files leave the format field blank; a sane ND/NI pair
		// read little-endian is the best signal we have.
		if nd != spkND || ni != spkNI {
			return nil, ErrBigEndian
		}
	}
	if nd != spkND || ni != spkNI {
		return nil, ErrNotSPK
	}
	if len(raw)%wordSize != 0 {
		return nil, ErrTruncated
	}

	words := make([]float64, len(raw)/wordSize)
	for i := range words {
		words[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*wordSize:]))
	}

	summaries, err := parseSummaries(raw, fward)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, ErrEmptyKernel
	}

	return &File{
		InternalName: internalName,
		words:        words,
		summaries:    summaries,
	}, nil
}

// parseSummaries walks the forward-linked summary records starting at
// record fward. Each summary record holds up to 25 summaries of 5 words
// (2 doubles + 6 packed ints) and is followed by its name record.
func parseSummaries(raw []byte, fward int) ([]Summary, error) {
	const summaryBytes = spkND*wordSize + spkNI*4 // 40
	const nameLen = summaryBytes                  // NC = 8*(ND + (NI+1)/2)

	var out []Summary
	visited := make(map[int]bool)
	rec := fward
	for rec != 0 {
		// Bound the record number before computing byte offsets; a corrupt
		// link would overflow the multiplication. The trailing name record
		// must fit too, and a revisited record means the chain loops.
		if rec < 2 || rec > len(raw)/recordSize-1 || visited[rec] {
			return nil, ErrBadSummary
		}
		visited[rec] = true
		base := (rec - 1) * recordSize

		next := int(f64At(raw, base))
		nsum := int(f64At(raw, base+2*wordSize))
		if nsum < 0 || nsum > (wordsPerRec-3)*wordSize/summaryBytes {
			return nil, ErrBadSummary
		}

		nameBase := base + recordSize
		for k := 0; k < nsum; k++ {
			so := base + 3*wordSize + k*summaryBytes
			name := string(bytes.TrimRight(raw[nameBase+k*nameLen:nameBase+(k+1)*nameLen], " \x00"))
			out = append(out, Summary{
				StartET:  f64At(raw, so),
				EndET:    f64At(raw, so+8),
				Target:   int(int32(binary.LittleEndian.Uint32(raw[so+16:]))),
				Center:   int(int32(binary.LittleEndian.Uint32(raw[so+20:]))),
				Frame:    int(int32(binary.LittleEndian.Uint32(raw[so+24:]))),
				DataType: int(int32(binary.LittleEndian.Uint32(raw[so+28:]))),
				Initial:  int(int32(binary.LittleEndian.Uint32(raw[so+32:]))),
				Final:    int(int32(binary.LittleEndian.Uint32(raw[so+36:]))),
				Name:     name,
			})
		}
		rec = next
	}
	return out, nil
}

func f64At(raw []byte, off int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(raw[off : off+8]))
}

// Summaries returns every segment descriptor in file order.
func (f *File) Summaries() []Summary {
	return f.summaries
}

// SegmentData returns the borrowed word view for a summary. Addresses are
// 1-based and inclusive, per the DAF convention.
func (f *File) SegmentData(s Summary) ([]float64, error) {
	if s.Initial < 1 || s.Final > len(f.words) || s.Initial > s.Final {
		return nil, ErrBadSegment
	}
	return f.words[s.Initial-1 : s.Final], nil
}
