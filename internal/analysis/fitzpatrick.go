package analysis

// Fitzpatrick is one of the six ordinal skin phototype categories.
type Fitzpatrick string

const (
	FitzpatrickI   Fitzpatrick = "I"
	FitzpatrickII  Fitzpatrick = "II"
	FitzpatrickIII Fitzpatrick = "III"
	FitzpatrickIV  Fitzpatrick = "IV"
	FitzpatrickV   Fitzpatrick = "V"
	FitzpatrickVI  Fitzpatrick = "VI"
)

// FitzpatrickOrder lists the categories in display order for the form.
var FitzpatrickOrder = []Fitzpatrick{
	FitzpatrickI, FitzpatrickII, FitzpatrickIII,
	FitzpatrickIV, FitzpatrickV, FitzpatrickVI,
}

// FitzpatrickDescriptions maps each category to its display string.
var FitzpatrickDescriptions = map[Fitzpatrick]string{
	FitzpatrickI:   "Type I - Very Fair (Always burns, never tans)",
	FitzpatrickII:  "Type II - Fair (Usually burns, tans minimally)",
	FitzpatrickIII: "Type III - Medium (Sometimes burns, tans uniformly)",
	FitzpatrickIV:  "Type IV - Olive (Rarely burns, tans easily)",
	FitzpatrickV:   "Type V - Dark (Very rarely burns, tans very easily)",
	FitzpatrickVI:  "Type VI - Very Dark (Never burns, tans very easily)",
}

// Label returns the "Type X" form used in reports.
func (f Fitzpatrick) Label() string {
	return "Type " + string(f)
}

// ClassifySkinTone maps mean image brightness to a Fitzpatrick category.
// The ladder is evaluated top-down, first match wins. It is a pure function
// of brightness; the category it yields always supersedes whatever the
// caller submitted on the form.
func ClassifySkinTone(brightness float64) Fitzpatrick {
	switch {
	case brightness < 85:
		return FitzpatrickVI
	case brightness < 120:
		return FitzpatrickV
	case brightness < 150:
		return FitzpatrickIV
	case brightness < 180:
		return FitzpatrickIII
	case brightness < 200:
		return FitzpatrickII
	default:
		return FitzpatrickI
	}
}

// DefaultSkinTone is used when the upload could not be decoded.
const DefaultSkinTone = FitzpatrickIII

// BodyPartOptions are the locations selectable on the form.
var BodyPartOptions = []string{
	"face", "scalp", "neck", "chest", "back",
	"abdomen", "arms", "hands", "legs", "feet", "other",
}

// NormalizeBodyPart falls back to "other" for missing, empty, or the
// literal "None" value some clients submit for an unselected option.
func NormalizeBodyPart(raw string) string {
	if raw == "" || raw == "None" {
		return "other"
	}
	return raw
}
