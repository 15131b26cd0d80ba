package probe

import (
	"encoding/binary"

	"github.com/go-restruct/restruct"
)

const (
	bootSignatureOffset = 0x1FE
	bootSignature       = 0xAA55
	bootSectorSize      = 512
	bpbHeaderSize       = 0x24
)

// bpbCandidate is a PC format and the total logical sector count its BPB
// must declare.
type bpbCandidate struct {
	Format  FormatTag
	Sectors uint16
}

// Tried in order; the first match wins.
var bpbCandidates = map[Size][]bpbCandidate{
	Size35: {
		{FormatIBM1440, 2880},
		{FormatIBM720, 1440},
	},
	Size525: {
		{FormatIBM1200, 2400},
		{FormatIBM360, 720},
		{FormatIBM320, 640},
		{FormatIBM180, 360},
		{FormatIBM160, 320},
	},
}

// bpbHeader is the start of a DOS boot sector, up to the FAT12/16 hidden
// sector count.
type bpbHeader struct {
	JumpBoot          [3]byte
	OEMName           [8]byte
	BytesPerSector    uint16
	SectorsPerCluster uint8
	ReservedSectors   uint16
	NumFATs           uint8
	RootEntries       uint16
	TotalSectors16    uint16
	Media             uint8
	SectorsPerFAT16   uint16
	SectorsPerTrack   uint16
	NumHeads          uint16
	HiddenSectors     uint32
	TotalSectors32    uint32
}

func parseBPB(sector []byte) (bpbHeader, error) {
	var h bpbHeader
	err := restruct.Unpack(sector[:bpbHeaderSize], binary.LittleEndian, &h)
	return h, err
}

// FATType picks FAT12/16/32 from the cluster count, using the thresholds
// from the Microsoft FAT specification.
func FATType(totalSectors uint16, sectorsPerCluster uint8) FilesystemTag {
	clusters := float64(totalSectors) / float64(sectorsPerCluster)
	switch {
	case clusters < 4085:
		return FilesystemFAT12
	case clusters < 65525:
		return FilesystemFAT16
	default:
		return FilesystemFAT32
	}
}

func validSectorsPerCluster(spc uint8) bool {
	switch spc {
	case 1, 2, 4, 8, 16, 32, 64, 128:
		return true
	}
	return false
}

// BPB detects IBM-PC formats by reading the BIOS Parameter Block in the
// first sector of cylinder 0.
type BPB struct{}

func (BPB) Name() string { return "bpb" }

func (BPB) Probe(src TrackSource, m Media, log Sink) Verdict {
	for _, c := range bpbCandidates[m.Size] {
		log.Debugf("Probing for %s", c.Format)
		data := src.ReadTrack(string(c.Format), 0, m)
		if !HasData(data) {
			log.Debugf("Track appears empty.  Skipping")
			continue
		}
		if len(data) < bootSectorSize {
			log.Debugf("Track is only %d bytes, too short for a boot sector", len(data))
			continue
		}
		log.Dump(data, bootSectorSize)

		// Without the signature this could still be an Atari ST, MSX or
		// Linux boot floppy; none of those are handled.
		if WordAt(data, bootSignatureOffset, false) != bootSignature {
			continue
		}
		log.Debugf("Found PC boot sector signature")

		h, err := parseBPB(data)
		if err != nil {
			log.Debugf("Cannot unpack BPB: %v", err)
			continue
		}
		if h.JumpBoot[0] != 0xEB && h.JumpBoot[0] != 0xE9 {
			continue
		}
		log.Debugf("Boot sector jump found")

		log.Debugf("Total logical sectors: %d", h.TotalSectors16)
		if h.TotalSectors16 != c.Sectors {
			log.Warnf("Logical sectors %d indicates this is a %gK floppy", h.TotalSectors16, float64(h.TotalSectors16)/2)
			continue
		}
		log.Debugf("Correct total logical sectors for %s", c.Format)

		if !validSectorsPerCluster(h.SectorsPerCluster) {
			log.Debugf("Sectors per cluster has a bogus value: %d", h.SectorsPerCluster)
			continue
		}
		log.Debugf("FAT clusters on this disk: %g", float64(h.TotalSectors16)/float64(h.SectorsPerCluster))
		return verdict(c.Format, FATType(h.TotalSectors16, h.SectorsPerCluster))
	}
	return NoMatch
}
