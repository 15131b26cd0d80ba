package probe

const (
	hfsBootBlockSignature = 0x4C4B // "LK" at the start of an HFS boot block
	hfsMDBSignature       = 0x4244 // "BD" at the start of the master directory block
	mfsSignature          = 0xD2D7
	macMDBOffset          = 0x400
)

// Mac detects Macintosh 400K/800K GCR disks and HFS on 1.44M MFM disks.
type Mac struct{}

func (Mac) Name() string { return "mac" }

func (Mac) Probe(src TrackSource, m Media, log Sink) Verdict {
	if m.Size == Size525 {
		// no 5.25" Macintosh media
		return NoMatch
	}

	data := src.ReadTrack(string(FormatIBM1440), 0, m)
	if HasData(data) && len(data) >= macMDBOffset+2 {
		if WordAt(data, macMDBOffset, true) == hfsMDBSignature {
			return verdict(FormatIBM1440, FilesystemHFS)
		}
	}

	// 400K and 800K disks differ only in sides, which the filesystem
	// metadata tells us. Always read as mac800.
	data = src.ReadTrack(string(FormatMac800), 0, m)
	if !HasData(data) {
		log.Debugf("No data found from mac800 read")
		return NoMatch
	}
	log.Dump(data, 2048)

	if len(data) >= 2 && WordAt(data, 0, true) == hfsBootBlockSignature {
		// HFS was never used on 400K disks
		return verdict(FormatMac800, FilesystemHFS)
	}
	if len(data) < macMDBOffset+2 {
		log.Debugf("mac800 track is only %d bytes", len(data))
		return verdict(FormatMac800, FilesystemNone)
	}
	switch WordAt(data, macMDBOffset, true) {
	case hfsMDBSignature:
		return verdict(FormatMac800, FilesystemHFS)
	case mfsSignature:
		// MFS only shipped on 400K disks
		return verdict(FormatMac400, FilesystemMFS)
	}
	return verdict(FormatMac800, FilesystemNone)
}
