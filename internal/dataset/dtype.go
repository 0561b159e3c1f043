package dataset

// DType tags the declared element type of a column.
type DType int

const (
	Other DType = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	String
	Bool
	Timestamp
	Date
	Binary
)

var dtypeNames = map[DType]string{
	Other:     "other",
	Int8:      "int8",
	Int16:     "int16",
	Int32:     "int32",
	Int64:     "int64",
	Uint8:     "uint8",
	Uint16:    "uint16",
	Uint32:    "uint32",
	Uint64:    "uint64",
	Float32:   "float32",
	Float64:   "float64",
	String:    "string",
	Bool:      "bool",
	Timestamp: "timestamp",
	Date:      "date",
	Binary:    "binary",
}

func (t DType) String() string {
	if name, ok := dtypeNames[t]; ok {
		return name
	}
	return "other"
}

// Family groups dtypes whose values can be compared for equality.
type Family int

const (
	FamilyOther Family = iota
	FamilyNumeric
	FamilyText
	FamilyTemporal
)

// Family reports the comparison family of t. Bool is numeric so that
// true/false compare equal to 1/0.
func (t DType) Family() Family {
	switch t {
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64, Float32, Float64, Bool:
		return FamilyNumeric
	case String, Binary:
		return FamilyText
	case Timestamp, Date:
		return FamilyTemporal
	default:
		return FamilyOther
	}
}

// Comparable reports whether values of a and b can be checked for equality.
// The "other" dtype says nothing about its values, so it is never comparable
// by tag alone; see ColumnsComparable.
func Comparable(a, b DType) bool {
	fa := a.Family()
	return fa != FamilyOther && fa == b.Family()
}
