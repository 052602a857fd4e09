package cost

import (
	"strings"

	"github.com/VivekMadav/construction-ai/internal/detection"
	"github.com/VivekMadav/construction-ai/internal/quantity"
)

// Rate is the unit cost for one (element type, material) pair.
type Rate struct {
	ElementType string        `json:"element_type" mapstructure:"element_type"`
	Material    string        `json:"material" mapstructure:"material"`
	Unit        quantity.Unit `json:"unit" mapstructure:"unit"`
	BaseRate    float64       `json:"base_rate" mapstructure:"base_rate"`
	Currency    string        `json:"currency" mapstructure:"currency"`
}

// RateTable resolves rates by (element type, material).
type RateTable struct {
	rates map[string]Rate
}

func rateKey(elementType, material string) string {
	return elementType + "_" + material
}

// NewRateTable builds a table from a rate list, e.g. one loaded from
// configuration. Later entries override earlier ones with the same key.
func NewRateTable(rates []Rate) *RateTable {
	t := &RateTable{rates: make(map[string]Rate, len(rates))}
	for _, r := range rates {
		if r.Currency == "" {
			r.Currency = "USD"
		}
		t.rates[rateKey(r.ElementType, r.Material)] = r
	}
	return t
}

// Override replaces or adds rates, keyed by (element type, material).
// Intended for configuration-driven adjustments on top of the defaults.
func (t *RateTable) Override(rates []Rate) {
	for _, r := range rates {
		if r.Currency == "" {
			r.Currency = "USD"
		}
		t.rates[rateKey(r.ElementType, r.Material)] = r
	}
}

// Lookup returns the rate for the pair, if one exists.
func (t *RateTable) Lookup(elementType, material string) (Rate, bool) {
	r, ok := t.rates[rateKey(elementType, material)]
	return r, ok
}

// DefaultRates returns the built-in rate table in USD.
func DefaultRates() *RateTable {
	return NewRateTable([]Rate{
		{ElementType: "wall", Material: "concrete", Unit: quantity.SquareMeters, BaseRate: 85},
		{ElementType: "wall", Material: "brick", Unit: quantity.SquareMeters, BaseRate: 65},
		{ElementType: "wall", Material: "steel", Unit: quantity.SquareMeters, BaseRate: 120},
		{ElementType: "column", Material: "concrete", Unit: quantity.Count, BaseRate: 450},
		{ElementType: "column", Material: "steel", Unit: quantity.Count, BaseRate: 800},
		{ElementType: "beam", Material: "concrete", Unit: quantity.LinearMeters, BaseRate: 180},
		{ElementType: "beam", Material: "steel", Unit: quantity.LinearMeters, BaseRate: 320},
		{ElementType: "slab", Material: "concrete", Unit: quantity.SquareMeters, BaseRate: 95},
		{ElementType: "foundation", Material: "concrete", Unit: quantity.CubicMeters, BaseRate: 280},
		{ElementType: "door", Material: "timber", Unit: quantity.Count, BaseRate: 350},
		{ElementType: "door", Material: "aluminium", Unit: quantity.Count, BaseRate: 450},
		{ElementType: "door", Material: "steel", Unit: quantity.Count, BaseRate: 600},
		{ElementType: "window", Material: "aluminium", Unit: quantity.Count, BaseRate: 280},
		{ElementType: "window", Material: "timber", Unit: quantity.Count, BaseRate: 320},
		{ElementType: "window", Material: "steel", Unit: quantity.Count, BaseRate: 380},
		{ElementType: "room", Material: "finishes", Unit: quantity.SquareMeters, BaseRate: 45},
		{ElementType: "hvac_duct", Material: "steel", Unit: quantity.LinearMeters, BaseRate: 85},
		{ElementType: "hvac_duct", Material: "aluminium", Unit: quantity.LinearMeters, BaseRate: 95},
		{ElementType: "electrical_panel", Material: "steel", Unit: quantity.Count, BaseRate: 1200},
		{ElementType: "plumbing_pipe", Material: "plastic", Unit: quantity.LinearMeters, BaseRate: 25},
		{ElementType: "plumbing_pipe", Material: "steel", Unit: quantity.LinearMeters, BaseRate: 45},
		{ElementType: "road", Material: "asphalt", Unit: quantity.SquareMeters, BaseRate: 75},
		{ElementType: "road", Material: "concrete", Unit: quantity.SquareMeters, BaseRate: 95},
		{ElementType: "utility", Material: "steel", Unit: quantity.Count, BaseRate: 350},
	})
}

// defaultMaterials is the assumed material per element type when no material
// call-out was mapped to the element.
var defaultMaterials = map[string]string{
	"wall":             "concrete",
	"column":           "concrete",
	"beam":             "concrete",
	"slab":             "concrete",
	"foundation":       "concrete",
	"door":             "timber",
	"window":           "aluminium",
	"room":             "finishes",
	"hvac_duct":        "steel",
	"electrical_panel": "steel",
	"plumbing_pipe":    "plastic",
	"road":             "asphalt",
	"utility":          "steel",
}

// MaterialFor resolves the element's material: the first mapped material
// call-out wins, otherwise the per-type default.
func MaterialFor(el *detection.Element) string {
	if len(el.Enhanced.Materials) > 0 {
		return strings.ToLower(el.Enhanced.Materials[0])
	}
	if m, ok := defaultMaterials[el.Type]; ok {
		return m
	}
	return "default"
}

// specMultiplier is one named specification cost adjustment.
type specMultiplier struct {
	keyword    string
	multiplier float64
}

// specMultipliers adjust the base rate per matched specification. Applied
// cumulatively in the order the specifications were recorded on the element.
var specMultipliers = []specMultiplier{
	{"fire rated", 1.25},
	{"insulated", 1.15},
	{"waterproof", 1.20},
	{"structural", 1.10},
	{"reinforced", 1.30},
	{"precast", 0.90},
}

// applySpecifications returns the cumulative multiplier for the element's
// specifications and the names of the multipliers that fired. Each
// specification entry matches at most one multiplier.
func applySpecifications(specs []string) (float64, []string) {
	multiplier := 1.0
	applied := make([]string, 0)
	for _, spec := range specs {
		lower := strings.ToLower(spec)
		for _, sm := range specMultipliers {
			if strings.Contains(lower, sm.keyword) {
				multiplier *= sm.multiplier
				applied = append(applied, sm.keyword)
				break
			}
		}
	}
	return multiplier, applied
}
