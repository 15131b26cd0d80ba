package probe

import (
	"encoding/binary"
	"fmt"
)

// fakeSource serves canned tracks keyed by "decoder/cylinder" and records
// every read.
type fakeSource struct {
	tracks map[string][]byte
	reads  []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{tracks: map[string][]byte{}}
}

func (f *fakeSource) set(decoder string, cylinder int, data []byte) *fakeSource {
	f.tracks[fmt.Sprintf("%s/%d", decoder, cylinder)] = data
	return f
}

func (f *fakeSource) ReadTrack(decoder string, cylinder int, _ Media) []byte {
	key := fmt.Sprintf("%s/%d", decoder, cylinder)
	f.reads = append(f.reads, key)
	return f.tracks[key]
}

// recordSink keeps warnings and counts dumps.
type recordSink struct {
	NopSink
	warnings []string
	dumps    int
}

func (r *recordSink) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func (r *recordSink) Dump([]byte, int) { r.dumps++ }

var (
	media35  = Media{Drive: 0, Size: Size35, Tracks: 80}
	media525 = Media{Drive: 0, Size: Size525, Tracks: 80}
)

// bootSector builds one track of a DOS formatted disk with a valid boot
// sector declaring total sectors and spc sectors per cluster.
func bootSector(total uint16, spc uint8) []byte {
	b := make([]byte, 18*512)
	copy(b, []byte{0xEB, 0x3C, 0x90})
	copy(b[3:], "MSDOS5.0")
	binary.LittleEndian.PutUint16(b[0x0B:], 512)
	b[0x0D] = spc
	binary.LittleEndian.PutUint16(b[0x0E:], 1)
	b[0x10] = 2
	binary.LittleEndian.PutUint16(b[0x11:], 224)
	binary.LittleEndian.PutUint16(b[0x13:], total)
	b[0x15] = 0xF0
	b[0x1FE] = 0x55
	b[0x1FF] = 0xAA
	return b
}

// macTrack builds a mac800 track with word at 0 and word at 0x400.
func macTrack(boot, mdb uint16) []byte {
	b := make([]byte, 12*512)
	binary.BigEndian.PutUint16(b, boot)
	binary.BigEndian.PutUint16(b[0x400:], mdb)
	b[0x800] = 0xF6 // keep the track non-empty when both words are zero
	return b
}

// c1541Image builds a disk image with a valid 1541 directory header.
func c1541Image() []byte {
	b := make([]byte, 174848)
	b[0x16500] = 0x12
	b[0x16501] = 0x01
	b[0x16502] = 'A'
	copy(b[0x165A5:], "2A")
	return b
}
