package dynop

// Op names one primitive operation of the host value model.
type Op uint8

const (
	Equal Op = iota
	NotEqual
	Greater
	GreaterEqual
	Less
	LessEqual
	Add
	Subtract
	Multiply
	Divide
	Negate
	Absolute
	Power
	Remainder
	Not
	And
	Or
	Xor
	LeftShift
	RightShift
	NumOps
)

var opNames = [...]string{
	Equal:        "equal",
	NotEqual:     "not_equal",
	Greater:      "greater",
	GreaterEqual: "greater_equal",
	Less:         "less",
	LessEqual:    "less_equal",
	Add:          "add",
	Subtract:     "subtract",
	Multiply:     "multiply",
	Divide:       "divide",
	Negate:       "negate",
	Absolute:     "absolute",
	Power:        "power",
	Remainder:    "remainder",
	Not:          "not",
	And:          "and",
	Or:           "or",
	Xor:          "xor",
	LeftShift:    "left_shift",
	RightShift:   "right_shift",
}

func (op Op) String() string {
	if op < NumOps {
		return opNames[op]
	}
	return "unknown"
}

// IsCompare reports whether op yields a boolean from two operands.
func (op Op) IsCompare() bool {
	return op <= LessEqual
}

// IsUnary reports whether op takes a single operand.
func (op Op) IsUnary() bool {
	return op == Negate || op == Absolute || op == Not
}

// IsBinary reports whether op yields a value from two operands.
func (op Op) IsBinary() bool {
	return op < NumOps && !op.IsCompare() && !op.IsUnary()
}
