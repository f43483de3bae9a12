package sfnt

import (
	codec "github.com/oy3o/declcodec"
)

// Version identifies the outline format of a font file.
type Version uint8

const (
	TrueType Version = iota + 1 // sfntVersion 0x00010000
	OpenType                    // sfntVersion 'OTTO'
)

const (
	versionTrueType uint32 = 0x00010000
	versionOpenType uint32 = 0x4F54544F
)

func (v Version) String() string {
	switch v {
	case TrueType:
		return "TrueType"
	case OpenType:
		return "OpenType"
	}
	return "unknown"
}

// Decode reads the four-byte sfntVersion. Any value other than the two
// recognized constants is codec.InvalidVersion.
func (v *Version) Decode(buf []byte) ([]byte, error) {
	var raw codec.Uint32
	rest, err := raw.Decode(buf)
	if err != nil {
		return buf, err
	}
	switch uint32(raw) {
	case versionTrueType:
		*v = TrueType
	case versionOpenType:
		*v = OpenType
	default:
		return buf, codec.InvalidVersion
	}
	return rest, nil
}

func (Version) StaticSize() int { return 4 }

// TableRecord locates one table in the font file.
type TableRecord struct {
	Tag      Tag
	Checksum uint32
	Offset   Offset32 // from the beginning of the font file
	Length   uint32
}

func (r *TableRecord) Decode(buf []byte) ([]byte, error) {
	c := codec.NewCursor(buf)
	tag, err := codec.Decode[Tag](c)
	if err != nil {
		return buf, err
	}
	checksum, err := codec.Decode[codec.Uint32](c)
	if err != nil {
		return buf, err
	}
	offset, err := codec.Decode[Offset32](c)
	if err != nil {
		return buf, err
	}
	length, err := codec.Decode[codec.Uint32](c)
	if err != nil {
		return buf, err
	}

	*r = TableRecord{
		Tag:      tag,
		Checksum: uint32(checksum),
		Offset:   offset,
		Length:   uint32(length),
	}
	return c.Remaining(), nil
}

func (TableRecord) StaticSize() int { return 16 }

// OffsetTable is the table directory at the start of a font file. Tables is
// decoded lazily; the table itself keeps a view of the whole font so table
// data can be sliced out without copying.
type OffsetTable struct {
	Version       Version
	NumTables     uint16
	SearchRange   uint16
	EntrySelector uint16
	RangeShift    uint16
	Tables        codec.Array[TableRecord, codec.Unit]

	font []byte
}

// Decode decodes the directory from the start of a font file. buf must be
// the whole file, since table offsets are relative to its first byte.
func (t *OffsetTable) Decode(buf []byte) ([]byte, error) {
	c := codec.NewCursor(buf)
	version, err := codec.Decode[Version](c)
	if err != nil {
		return buf, err
	}
	numTables, err := codec.Decode[codec.Uint16](c)
	if err != nil {
		return buf, err
	}
	searchRange, err := codec.Decode[codec.Uint16](c)
	if err != nil {
		return buf, err
	}
	entrySelector, err := codec.Decode[codec.Uint16](c)
	if err != nil {
		return buf, err
	}
	rangeShift, err := codec.Decode[codec.Uint16](c)
	if err != nil {
		return buf, err
	}
	tables, err := codec.DecodeArray[TableRecord](c, int(numTables))
	if err != nil {
		return buf, err
	}

	*t = OffsetTable{
		Version:       version,
		NumTables:     uint16(numTables),
		SearchRange:   uint16(searchRange),
		EntrySelector: uint16(entrySelector),
		RangeShift:    uint16(rangeShift),
		Tables:        tables,
		font:          buf,
	}
	return c.Remaining(), nil
}

// Size returns the encoded size of the directory including its records.
func (t *OffsetTable) Size() int { return 12 + t.Tables.Size() }

// Lookup finds the record for tag. Records are sorted by tag in a
// well-formed font, so the lookup decodes O(log n) records.
func (t *OffsetTable) Lookup(tag Tag) (TableRecord, bool, error) {
	want := tag.Uint32()
	rec, i, err := t.Tables.Search(func(r TableRecord) int {
		switch got := r.Tag.Uint32(); {
		case got < want:
			return -1
		case got > want:
			return 1
		}
		return 0
	})
	if err != nil || i < 0 {
		return TableRecord{}, false, err
	}
	return rec, true, nil
}

// TableData returns the bytes of the table rec points at. The slice aliases
// the font buffer.
func (t *OffsetTable) TableData(rec TableRecord) ([]byte, error) {
	start := uint64(rec.Offset)
	end := start + uint64(rec.Length)
	if end > uint64(len(t.font)) {
		return nil, codec.InsufficientBytes
	}
	return t.font[start:end:end], nil
}

// Head decodes the font header table, if the font has one.
func (t *OffsetTable) Head() (Head, bool, error) {
	rec, ok, err := t.Lookup(MakeTag("head"))
	if err != nil || !ok {
		return Head{}, false, err
	}
	data, err := t.TableData(rec)
	if err != nil {
		return Head{}, false, err
	}
	head, err := codec.Decode[Head](codec.NewCursor(data))
	if err != nil {
		return Head{}, false, err
	}
	return head, true, nil
}
