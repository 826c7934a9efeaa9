package types

// Tag identifies the element type of an array.
type Tag uint8

const (
	Bool Tag = iota
	Byte
	UByte
	Short
	UShort
	Int
	UInt
	Long
	ULong
	LongLong
	ULongLong
	Float
	Double
	LongDouble
	CFloat
	CDouble
	CLongDouble
	Datetime
	Timedelta
	Object
	String
	Unicode
	Void
	NumTags
)

var tagNames = [...]string{
	Bool:        "bool",
	Byte:        "byte",
	UByte:       "ubyte",
	Short:       "short",
	UShort:      "ushort",
	Int:         "int",
	UInt:        "uint",
	Long:        "long",
	ULong:       "ulong",
	LongLong:    "longlong",
	ULongLong:   "ulonglong",
	Float:       "float",
	Double:      "double",
	LongDouble:  "longdouble",
	CFloat:      "cfloat",
	CDouble:     "cdouble",
	CLongDouble: "clongdouble",
	Datetime:    "datetime",
	Timedelta:   "timedelta",
	Object:      "object",
	String:      "string",
	Unicode:     "unicode",
	Void:        "void",
}

func (t Tag) String() string {
	if t < NumTags {
		return tagNames[t]
	}
	return "unknown"
}

// Valid reports whether t names one of the closed set of tags.
func (t Tag) Valid() bool {
	return t < NumTags
}

func (t Tag) IsInteger() bool {
	return t >= Byte && t <= ULongLong
}

// IsSigned reports whether t is a signed integer tag.
func (t Tag) IsSigned() bool {
	switch t {
	case Byte, Short, Int, Long, LongLong:
		return true
	}
	return false
}

func (t Tag) IsFloat() bool {
	return t == Float || t == Double || t == LongDouble
}

func (t Tag) IsComplex() bool {
	return t == CFloat || t == CDouble || t == CLongDouble
}

// Lookup returns the tag with the given name.
func Lookup(name string) (Tag, bool) {
	for i, n := range tagNames {
		if n == name {
			return Tag(i), true
		}
	}
	return 0, false
}
