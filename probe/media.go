// Package probe identifies the format and filesystem of a floppy disk from
// decoded track images. Each Prober looks at one family of formats; the
// Classifier runs them in priority order and stops at the first match.
package probe

import "fmt"

// Size is the physical media size.
type Size string

// Physical media sizes
const (
	Size35  Size = "3.5"
	Size525 Size = "5.25"
)

// ParseSize converts a user supplied size ("3.5" or "5.25").
func ParseSize(s string) (Size, error) {
	switch Size(s) {
	case Size35, Size525:
		return Size(s), nil
	}
	return "", fmt.Errorf("unknown media size %q (want 3.5 or 5.25)", s)
}

// Media describes the drive and disk being probed. It is built once per run
// and never modified.
type Media struct {
	Drive  int    `json:"drive"`            // 0 for A, 1 for B
	Size   Size   `json:"size"`             // 3.5 or 5.25
	Tracks int    `json:"tracks"`           // 40 or 80, the drive's capability
	Device string `json:"device,omitempty"` // passed through to the track source untouched
}

// FortyTrack reports whether the drive can only step 40 cylinders.
func (m Media) FortyTrack() bool { return m.Tracks == 40 }

// FormatTag names a physical/logical disk format. The empty tag means none.
type FormatTag string

// FilesystemTag names a filesystem. The empty tag means none.
type FilesystemTag string

// Formats reported by the probes
const (
	FormatNone          FormatTag = ""
	FormatIBM1440       FormatTag = "ibm1440"
	FormatIBM720        FormatTag = "ibm720"
	FormatIBM1200       FormatTag = "ibm1200"
	FormatIBM360        FormatTag = "ibm360"
	FormatIBM320        FormatTag = "ibm320"
	FormatIBM180        FormatTag = "ibm180"
	FormatIBM160        FormatTag = "ibm160"
	FormatMac800        FormatTag = "mac800"
	FormatMac400        FormatTag = "mac400"
	FormatAmiga         FormatTag = "amiga"
	FormatCommodore1541 FormatTag = "commodore1541"
)

// Filesystems reported by the probes
const (
	FilesystemNone                          FilesystemTag = ""
	FilesystemFAT12                         FilesystemTag = "fat12"
	FilesystemFAT16                         FilesystemTag = "fat16"
	FilesystemFAT32                         FilesystemTag = "fat32"
	FilesystemHFS                           FilesystemTag = "hfs"
	FilesystemMFS                           FilesystemTag = "mfs"
	FilesystemAmigaOFS                      FilesystemTag = "amiga_ofs"
	FilesystemAmigaFFS                      FilesystemTag = "amiga_ffs"
	FilesystemAmigaOFSInternational         FilesystemTag = "amiga_ofs_international"
	FilesystemAmigaFFSInternational         FilesystemTag = "amiga_ffs_international"
	FilesystemAmigaOFSInternationalDirCache FilesystemTag = "amiga_ofs_international_dircache"
	FilesystemAmigaFFSInternationalDirCache FilesystemTag = "amiga_ffs_international_dircache"
	FilesystemCBMDOS2A                      FilesystemTag = "2A"
)

// Verdict is the outcome of a probe. A format may be known while the
// filesystem is not (a game disk with no filesystem, say), but never the
// other way round.
type Verdict struct {
	Format     FormatTag     `json:"format,omitempty"`
	Filesystem FilesystemTag `json:"filesystem,omitempty"`
}

// NoMatch is the zero verdict.
var NoMatch = Verdict{}

func verdict(f FormatTag, fs FilesystemTag) Verdict {
	if f == FormatNone {
		return NoMatch
	}
	return Verdict{Format: f, Filesystem: fs}
}

// Identified reports whether a format was found.
func (v Verdict) Identified() bool { return v.Format != FormatNone }

func (v Verdict) String() string {
	if !v.Identified() {
		return "unidentified"
	}
	fs := string(v.Filesystem)
	if fs == "" {
		fs = "None"
	}
	return fmt.Sprintf("Format: %s, Filesystem: %s", v.Format, fs)
}
