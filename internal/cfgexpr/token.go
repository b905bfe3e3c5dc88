package cfgexpr

type tok uint

const (
	tokEOF tok = iota + 1
	tokName
	tokString
	tokComma
	tokLparen
	tokRparen
	tokEq
)

func (t tok) String() string {
	switch t {
	case tokEOF:
		return "end of expression"
	case tokName:
		return "name"
	case tokString:
		return "string"
	case tokComma:
		return ","
	case tokLparen:
		return "("
	case tokRparen:
		return ")"
	case tokEq:
		return "="
	default:
		return "invalid token"
	}
}
