package codec

import (
	"github.com/wippyai/ndcodec/codec/internal/types"
)

type TypeTag = types.Tag

const (
	Bool        = types.Bool
	Byte        = types.Byte
	UByte       = types.UByte
	Short       = types.Short
	UShort      = types.UShort
	Int         = types.Int
	UInt        = types.UInt
	Long        = types.Long
	ULong       = types.ULong
	LongLong    = types.LongLong
	ULongLong   = types.ULongLong
	Float       = types.Float
	Double      = types.Double
	LongDouble  = types.LongDouble
	CFloat      = types.CFloat
	CDouble     = types.CDouble
	CLongDouble = types.CLongDouble
	Datetime    = types.Datetime
	Timedelta   = types.Timedelta
	Object      = types.Object
	String      = types.String
	Unicode     = types.Unicode
	Void        = types.Void
	NumTags     = types.NumTags
)

// LookupTag returns the tag with the given name, as printed by TypeTag.String.
func LookupTag(name string) (TypeTag, bool) {
	return types.Lookup(name)
}
