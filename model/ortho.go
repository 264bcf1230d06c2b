package model

// Ortho is a bit set recording the orthographic contexts in which a token
// type has been seen: upper or lower case, at the beginning of a sentence,
// in the middle of one, or where the position is unknown.
type Ortho uint8

const (
	OrthoBegUpper Ortho = 1 << (iota + 1)
	OrthoMidUpper
	OrthoUnkUpper
	OrthoBegLower
	OrthoMidLower
	OrthoUnkLower

	OrthoUpper = OrthoBegUpper | OrthoMidUpper | OrthoUnkUpper
	OrthoLower = OrthoBegLower | OrthoMidLower | OrthoUnkLower
)

// Position is where a token sits relative to the sentence it belongs to.
type Position uint8

const (
	PositionInternal Position = iota
	PositionInitial
	PositionUnknown
)

// OrthoFlag returns the flag for a token seen at pos with the given case.
// Tokens that start with neither case yield zero.
func OrthoFlag(pos Position, upper, lower bool) Ortho {
	switch {
	case upper:
		switch pos {
		case PositionInitial:
			return OrthoBegUpper
		case PositionInternal:
			return OrthoMidUpper
		default:
			return OrthoUnkUpper
		}
	case lower:
		switch pos {
		case PositionInitial:
			return OrthoBegLower
		case PositionInternal:
			return OrthoMidLower
		default:
			return OrthoUnkLower
		}
	}
	return 0
}
