package emit

import "github.com/coal-lang/coal/internal/types"

// Value is the lowered form of a typed expression. Every Coal type except
// `string` lowers to a single SSA operand (Scalar); `string` is the
// two-field aggregate `{ ptr, i32 }` and is carried as its
// two constituent operands rather than re-packed on every use.
type Value struct {
	Scalar string // operand text for int/float/bool/char
	Ptr    string // string: pointer operand
	Len    string // string: i32 byte-length operand
}

func scalar(s string) Value { return Value{Scalar: s} }

func strVal(ptr, length string) Value { return Value{Ptr: ptr, Len: length} }

// irType maps a Coal type to its LLVM IR type.
func irType(t types.Type) string {
	switch t {
	case types.Int:
		return "i32"
	case types.Float:
		return "double"
	case types.Bool:
		return "i1"
	case types.Char:
		return "i8"
	case types.String:
		return "{ ptr, i32 }"
	default:
		return "i32"
	}
}

// zeroLiteral is the constant an uninitialized var's slot is stored with.
func zeroLiteral(t types.Type) string {
	switch t {
	case types.Int:
		return "0"
	case types.Float:
		return "0.0"
	case types.Bool:
		return "0"
	case types.Char:
		return "0"
	case types.String:
		return "{ ptr null, i32 0 }"
	default:
		return "0"
	}
}
