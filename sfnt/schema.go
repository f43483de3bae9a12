package sfnt

import (
	codec "github.com/oy3o/declcodec"
	"github.com/oy3o/declcodec/schema"
)

// OffsetTableSchema declares the table directory field by field. Decoding
// with it yields the same values as OffsetTable.Decode, keyed by field name;
// "rest" borrows whatever follows the directory.
var OffsetTableSchema = schema.New("OffsetTable").
	Field("version", schema.Value[Version]()).
	Field("numTables", schema.Value[codec.Uint16]()).
	Field("searchRange", schema.Value[codec.Uint16]()).
	Field("entrySelector", schema.Value[codec.Uint16]()).
	Field("rangeShift", schema.Value[codec.Uint16]()).
	Field("tables", schema.ArrayOf[TableRecord](schema.Ref("numTables"))).
	Field("rest", schema.Rest()).
	MustBuild()
