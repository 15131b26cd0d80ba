package probe

const (
	c1541DirCylinder  = 17      // track 18 in Commodore numbering
	c1541DirLinkOff   = 0x16500 // first sector of the directory track
	c1541DOSTypeOff   = 0x165A5
	c1541MinImageSize = c1541DOSTypeOff + 2
)

// Commodore1541 detects CBM DOS 2A disks written by a 1541 drive.
type Commodore1541 struct{}

func (Commodore1541) Name() string { return "commodore1541" }

func (Commodore1541) Probe(src TrackSource, m Media, log Sink) Verdict {
	if m.Size != Size525 {
		// 1581 is not handled
		return NoMatch
	}
	data := src.ReadTrack(string(FormatCommodore1541), c1541DirCylinder, m)
	if !HasData(data) {
		return NoMatch
	}
	log.Debugf("Looks like c1541 encoding")
	log.Dump(data, 0)
	if len(data) < c1541MinImageSize {
		log.Debugf("Image is only %d bytes, directory track missing", len(data))
		return NoMatch
	}
	if data[c1541DirLinkOff] != 0x12 || data[c1541DirLinkOff+1] != 0x01 {
		return NoMatch
	}
	log.Debugf("directory block pointer valid")
	if ASCIIAt(data, c1541DOSTypeOff, 2) != string(FilesystemCBMDOS2A) {
		return NoMatch
	}
	log.Debugf("Disk format correct")
	return verdict(FormatCommodore1541, FilesystemCBMDOS2A)
}
