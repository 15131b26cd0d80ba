package probe

var amigaDOSTypes = map[string]FilesystemTag{
	"DOS\x00": FilesystemAmigaOFS,
	"DOS\x01": FilesystemAmigaFFS,
	"DOS\x02": FilesystemAmigaOFSInternational,
	"DOS\x03": FilesystemAmigaFFSInternational,
	"DOS\x04": FilesystemAmigaOFSInternationalDirCache,
	"DOS\x05": FilesystemAmigaFFSInternationalDirCache,
}

// Amiga detects AmigaDOS disks by the DOS type in the boot block.
type Amiga struct{}

func (Amiga) Name() string { return "amiga" }

func (Amiga) Probe(src TrackSource, m Media, log Sink) Verdict {
	if m.Size == Size525 {
		// Leaving aside the rare A1020, 5.25" drives on an Amiga were
		// formatted as 360K DOS disks, not the 440K native format.
		return NoMatch
	}
	data := src.ReadTrack(string(FormatAmiga), 0, m)
	if !HasData(data) {
		log.Debugf("Amiga Track appears empty.  Skipping")
		return NoMatch
	}
	log.Dump(data, bootSectorSize)

	// Any data from the Amiga decoder is a strong hint on its own. Plenty of
	// games had no filesystem, so an unknown DOS type is still an Amiga disk.
	if len(data) < 4 {
		return verdict(FormatAmiga, FilesystemNone)
	}
	return verdict(FormatAmiga, amigaDOSTypes[ASCIIAt(data, 0, 4)])
}
