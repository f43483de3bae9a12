package sfnt

import (
	codec "github.com/oy3o/declcodec"
)

// HeadMagic is the magicNumber every head table carries.
const HeadMagic = 0x5F0F3CF5

// HeadFields is the fixed layout of the head table.
type HeadFields struct {
	MajorVersion       uint16
	MinorVersion       uint16
	FontRevision       Fixed
	ChecksumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            LongDateTime
	Modified           LongDateTime
	XMin               FWord
	YMin               FWord
	XMax               FWord
	YMax               FWord
	MacStyle           uint16
	LowestRecPPEM      uint16
	FontDirectionHint  int16
	IndexToLocFormat   int16
	GlyphDataFormat    int16
}

// Head is the font header table.
type Head struct {
	codec.Fixed[HeadFields]
}

// Decode decodes the table and checks its version and magic number.
func (h *Head) Decode(buf []byte) ([]byte, error) {
	var f codec.Fixed[HeadFields]
	rest, err := f.Decode(buf)
	if err != nil {
		return buf, err
	}
	if f.Payload.MajorVersion != 1 {
		return buf, codec.InvalidVersion
	}
	if f.Payload.MagicNumber != HeadMagic {
		return buf, codec.InvalidEncoding
	}
	h.Fixed = f
	return rest, nil
}
