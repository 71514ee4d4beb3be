package diag

import "fmt"

// Code identifies a diagnostic's taxonomy without pinning its exact
// wording, matching spec.md §1's stance: the core guarantees the
// situations under which a kind fires, not a specific message string.
type Code uint16

const (
	UnknownCode Code = 0

	// Name resolution (1000s)
	NameUnresolved     Code = 1001
	NameAutoCorrected  Code = 1002 // warning: "treating as"
	NameOwnInitialiser Code = 1003
	NameNoLongerViable Code = 1004
	NameDuplicate      Code = 1005

	// Type / conversion (2000s)
	TypeMismatch         Code = 2001
	TypeNoConversion     Code = 2002
	TypeInvalidCast      Code = 2003
	TypeNotFunction      Code = 2004
	TypeExpectedBool     Code = 2005
	TypeInvalidBinaryOp  Code = 2006
	TypeInvalidUnaryOp   Code = 2007
	TypeArgCountMismatch Code = 2008
	TypeNotStructLike    Code = 2009
	TypeMemberNotFound   Code = 2010
	TypeBadSizeExpr      Code = 2011
	TypeEnumBadUnderlying Code = 2012

	// Overload resolution (3000s)
	OverloadDuplicateSignature Code = 3001
	OverloadUnresolved         Code = 3002 // ICE: resolution unimplemented

	// Dynamic array lifetime (4000s)
	DynArrayLeaked      Code = 4001
	DynArrayDoubleFree  Code = 4002

	// Module metadata loader (5000s)
	ImportNotFound   Code = 5001
	ImportBadHeader  Code = 5002 // ICE
	ImportBadELF     Code = 5003 // ICE

	// Intrinsics & calls (6000s)
	IntrinsicUnknown     Code = 6001
	IntrinsicBadArgCount Code = 6002
	IntrinsicBadArgType  Code = 6003

	// Lexing & parsing (7000s)
	SyntaxUnterminatedString Code = 7001
	SyntaxBadNumber          Code = 7002
	SyntaxUnexpectedByte     Code = 7003
	SyntaxUnexpectedToken    Code = 7004
	SyntaxExpectedToken      Code = 7005

	// Host / internal (9000s)
	HostIOError Code = 9001
	ICEInvariantViolated Code = 9002
)

var codeTitle = map[Code]string{
	UnknownCode:                "unknown diagnostic",
	NameUnresolved:             "unresolved name",
	NameAutoCorrected:          "name auto-corrected",
	NameOwnInitialiser:         "name used in its own initialiser",
	NameNoLongerViable:         "name no longer viable",
	NameDuplicate:              "duplicate declaration",
	TypeMismatch:               "type mismatch",
	TypeNoConversion:           "no implicit conversion",
	TypeInvalidCast:            "invalid cast",
	TypeNotFunction:            "callee is not a function",
	TypeExpectedBool:           "expected a boolean expression",
	TypeInvalidBinaryOp:        "invalid operands for binary operator",
	TypeInvalidUnaryOp:         "invalid operand for unary operator",
	TypeArgCountMismatch:       "argument count mismatch",
	TypeNotStructLike:          "type has no members",
	TypeMemberNotFound:         "member not found",
	TypeBadSizeExpr:            "array size must be a positive constant integer",
	TypeEnumBadUnderlying:      "enum underlying type must be integer-like",
	OverloadDuplicateSignature: "duplicate overload signature",
	OverloadUnresolved:         "overload resolution is not implemented",
	DynArrayLeaked:             "you forgot to free this dynamic array",
	DynArrayDoubleFree:         "dynamic array is no longer viable",
	ImportNotFound:             "imported module not found",
	ImportBadHeader:            "metadata blob has invalid header",
	ImportBadELF:               "unrecognised object file format",
	IntrinsicUnknown:           "unknown intrinsic",
	IntrinsicBadArgCount:       "wrong number of arguments for intrinsic",
	IntrinsicBadArgType:        "wrong argument type for intrinsic",
	SyntaxUnterminatedString:   "unterminated string literal",
	SyntaxBadNumber:            "malformed numeric literal",
	SyntaxUnexpectedByte:       "unexpected byte in source",
	SyntaxUnexpectedToken:      "unexpected token",
	SyntaxExpectedToken:        "expected a different token",
	HostIOError:                "host I/O error",
	ICEInvariantViolated:       "internal invariant violated",
}

// ID returns the stable, category-prefixed identifier for rendering (e.g.
// "TYPE2001"), grounded on the teacher's internal/diag Code.ID.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("NAME%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("TYPE%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("OVL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("ARR%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("MOD%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("INTR%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("ICE%04d", ic)
	}
	return "E0000"
}

// Title returns a stable human-readable description of the code.
func (c Code) Title() string {
	if t, ok := codeTitle[c]; ok {
		return t
	}
	return codeTitle[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
