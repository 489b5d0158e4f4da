package property

// Kind enumerates the property value kinds.
type Kind int

const (
	KindFloat Kind = iota
	KindInt
	KindBool
	KindEnum
	KindColor
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindEnum:
		return "enum"
	case KindColor:
		return "color"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// UniformType returns the shader uniform type a kind is declared as. String
// properties have no uniform and return "".
func (k Kind) UniformType() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt, KindEnum:
		return "int"
	case KindBool:
		return "bool"
	case KindColor:
		return "vec4"
	default:
		return ""
	}
}

// ParseKind maps a manifest keyword to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "float":
		return KindFloat, true
	case "int":
		return KindInt, true
	case "bool":
		return KindBool, true
	case "enum":
		return KindEnum, true
	case "color":
		return KindColor, true
	case "string":
		return KindString, true
	default:
		return 0, false
	}
}
