package field

// TokenKind classifies a symbolic input token by its effect on the
// curvature accumulator. The set is closed: the three kinds below are
// the whole vocabulary of sequence effects.
type TokenKind int

const (
	// TokenTriad adds structure; curvature grows.
	TokenTriad TokenKind = iota
	// TokenExtend stretches the field; curvature extends.
	TokenExtend
	// TokenAlternate is an ABAB alternation; curvature straightens.
	TokenAlternate
)

func (k TokenKind) String() string {
	switch k {
	case TokenTriad:
		return "triad"
	case TokenExtend:
		return "extend"
	case TokenAlternate:
		return "alternate"
	default:
		return "unknown"
	}
}

// ParseTokenKind maps a token name to its kind. Used by the ctl when
// reading sequences from flags.
func ParseTokenKind(name string) (TokenKind, bool) {
	switch name {
	case "triad":
		return TokenTriad, true
	case "extend":
		return TokenExtend, true
	case "alternate":
		return TokenAlternate, true
	default:
		return 0, false
	}
}
