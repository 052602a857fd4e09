package textextract

import (
	"regexp"
	"strconv"
	"strings"
)

// TextType categorizes a text fragment found on a drawing page.
type TextType string

const (
	TypeElementLabel  TextType = "element_label"
	TypeDimension     TextType = "dimension"
	TypeRoomName      TextType = "room_name"
	TypeMaterial      TextType = "material"
	TypeSpecification TextType = "specification"
	TypeGeneral       TextType = "general"
)

// Keyword sets for fragment classification. Matching is substring based on
// the uppercased fragment, mirroring how annotations appear on sheets
// ("WALL TYPE 2", "KITCHEN 1").
var (
	elementKeywords = []string{
		"WALL", "DOOR", "WINDOW", "COLUMN", "BEAM", "SLAB", "FOUNDATION",
		"DUCT", "PIPE", "PANEL", "SWITCH", "OUTLET", "VALVE", "PUMP",
	}

	roomKeywords = []string{
		"BEDROOM", "KITCHEN", "BATHROOM", "LIVING", "DINING", "OFFICE",
		"STORAGE", "UTILITY", "GARAGE", "LOBBY", "CORRIDOR",
	}

	materialKeywords = []string{
		"CONCRETE", "STEEL", "TIMBER", "BRICK", "GLASS", "ALUMINIUM",
		"PLASTIC", "CERAMIC", "INSULATION", "FIRE", "WATERPROOF",
	}

	specKeywords = []string{
		"FIRE RATED", "INSULATED", "WATERPROOF", "ACOUSTIC", "THERMAL",
		"STRUCTURAL", "NON-LOAD", "REINFORCED", "PRECAST",
	}
)

var (
	dimensionPattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*(MM|CM|M|FT|IN)?\s*$`)
	gradePattern     = regexp.MustCompile(`\b([CS]\d{2,3}(?:/\d{2})?|B500[AB]?|FE\d{3})\b`)
)

// DerivedValue carries the parsed payload of a classified fragment: a numeric
// value with unit for dimensions, or a canonical grade string for materials.
type DerivedValue struct {
	Value float64 `json:"value,omitempty"`
	Unit  string  `json:"unit,omitempty"`
	Grade string  `json:"grade,omitempty"`
}

// Classify assigns a text type to a fragment using fixed priority order:
// dimension patterns first, then element labels, room names, materials,
// specifications, and finally general. A fragment that looks dimensional but
// fails numeric parsing is demoted to general rather than erroring.
func Classify(text string) (TextType, *DerivedValue) {
	upper := strings.ToUpper(strings.TrimSpace(text))
	if upper == "" {
		return TypeGeneral, nil
	}

	if m := dimensionPattern.FindStringSubmatch(upper); m != nil {
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return TypeGeneral, nil
		}
		unit := m[2]
		if unit == "" {
			// Bare numbers on construction sheets are millimetres.
			unit = "MM"
		}
		return TypeDimension, &DerivedValue{Value: value, Unit: unit}
	}

	for _, kw := range elementKeywords {
		if strings.Contains(upper, kw) {
			return TypeElementLabel, nil
		}
	}

	for _, kw := range roomKeywords {
		if strings.Contains(upper, kw) {
			return TypeRoomName, nil
		}
	}

	// A specification phrase that subsumes a material keyword wins, so
	// "FIRE RATED" is a specification while bare "FIRE" stays a material.
	specMatch := ""
	for _, kw := range specKeywords {
		if strings.Contains(upper, kw) {
			specMatch = kw
			break
		}
	}

	for _, kw := range materialKeywords {
		if !strings.Contains(upper, kw) {
			continue
		}
		if specMatch != "" && len(specMatch) > len(kw) && strings.Contains(specMatch, kw) {
			break
		}
		var derived *DerivedValue
		if g := gradePattern.FindString(upper); g != "" {
			derived = &DerivedValue{Grade: g}
		}
		return TypeMaterial, derived
	}

	if specMatch != "" {
		return TypeSpecification, nil
	}

	return TypeGeneral, nil
}
