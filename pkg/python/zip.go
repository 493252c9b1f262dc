// This file deals with the `zipfile` module's interpretation of ZIP file members.

package python

// A DOSAttribute represents an MS-DOS FAT file attribute byte.
type DOSAttribute uint8

//nolint:deadcode,varcheck // not all of these attributes will be used
const (
	DOSReadOnly  DOSAttribute = 1 << 0
	DOSHidden    DOSAttribute = 1 << 1
	DOSSystem    DOSAttribute = 1 << 2
	DOSVolume    DOSAttribute = 1 << 3
	DOSDirectory DOSAttribute = 1 << 4
	DOSArchive   DOSAttribute = 1 << 5
)

// ZIPExternalAttributes represents the "external file attributes" field of a ZIP file member
// header, as interpreted by Python's `zipfile` module.
//
// The interpretation of the field depends on the "version made by" field of the header, but the
// UNIX mode in the high 16 bits and the MS-DOS attributes in the low 8 bits is what `zipfile`
// writes and what `pip` reads back.
type ZIPExternalAttributes struct {
	UNIX StatMode
	_    uint8 // unused
	DOS  DOSAttribute
}

// Raw packs the attributes in to the 32-bit wire representation.
func (attrs ZIPExternalAttributes) Raw() uint32 {
	return (uint32(attrs.UNIX) << 16) | uint32(attrs.DOS)
}

// ParseZIPExternalAttributes unpacks a 32-bit "external file attributes" field.
func ParseZIPExternalAttributes(raw uint32) ZIPExternalAttributes {
	return ZIPExternalAttributes{
		UNIX: StatMode(raw >> 16),
		DOS:  DOSAttribute(raw & 0xFF),
	}
}
