package carbon

import "strings"

// Carbon emission factors in kg CO2e per kg of material. Timber is negative:
// grown wood sequesters more carbon than its processing emits, and that
// credit must flow through to totals unclamped.
var carbonFactors = map[string]float64{
	"concrete":     0.15,
	"steel":        2.0,
	"aluminum":     8.1,
	"aluminium":    8.1,
	"wood":         -0.9,
	"timber":       -0.9,
	"glass":        0.85,
	"plastic":      2.7,
	"brick":        0.24,
	"stone":        0.08,
	"tile":         0.45,
	"asphalt":      0.12,
	"copper":       2.5,
	"zinc":         3.5,
	"lead":         1.8,
	"fiberglass":   1.2,
	"mineral_wool": 0.8,
	"cellulose":    -0.3,
	"gypsum":       0.12,
	"finishes":     0.3,
}

// defaultCarbonFactor covers materials outside the table.
const defaultCarbonFactor = 1.0

// highCarbonFactor marks materials targeted by optimization recommendations.
const highCarbonFactor = 2.0

// carbonFactorFor resolves a material's emission factor.
func carbonFactorFor(material string) float64 {
	if f, ok := carbonFactors[strings.ToLower(material)]; ok {
		return f
	}
	return defaultCarbonFactor
}

// specCarbonMultiplier is one named specification carbon adjustment.
type specCarbonMultiplier struct {
	keyword    string
	multiplier float64
}

// Specification multipliers parallel the cost table but carry different
// values: recycled and sustainable call-outs reduce embodied carbon, premium
// and fire-rated ones increase it.
var specCarbonMultipliers = []specCarbonMultiplier{
	{"recycled", 0.6},
	{"sustainable", 0.7},
	{"eco friendly", 0.75},
	{"low carbon", 0.8},
	{"lightweight", 0.9},
	{"fire rated", 1.25},
	{"waterproof", 1.2},
	{"high strength", 1.2},
	{"premium", 1.3},
	{"structural", 1.1},
	{"insulated", 1.05},
}

// specificationImpact returns the cumulative carbon multiplier for the
// element's specifications, applied in recorded order.
func specificationImpact(specs []string) float64 {
	impact := 1.0
	for _, spec := range specs {
		lower := strings.ToLower(spec)
		for _, sm := range specCarbonMultipliers {
			if strings.Contains(lower, sm.keyword) {
				impact *= sm.multiplier
				break
			}
		}
	}
	return impact
}

// TransportCategory buckets material sourcing distance.
type TransportCategory string

const (
	TransportLocal         TransportCategory = "local"         // <50 km
	TransportRegional      TransportCategory = "regional"      // 50-200 km
	TransportNational      TransportCategory = "national"      // 200-1000 km
	TransportInternational TransportCategory = "international" // >1000 km
)

// DefaultTransport is assumed when sourcing is unknown.
const DefaultTransport = TransportRegional

// defaultTransportDistanceKM is the assumed haul distance.
const defaultTransportDistanceKM = 100.0

// Transportation factors in kg CO2e per kg per km.
var transportFactors = map[TransportCategory]float64{
	TransportLocal:         0.05,
	TransportRegional:      0.08,
	TransportNational:      0.12,
	TransportInternational: 0.15,
}

func transportFactorFor(category TransportCategory) float64 {
	if f, ok := transportFactors[category]; ok {
		return f
	}
	return transportFactors[DefaultTransport]
}

// Carbon intensity benchmarks in kg CO2e per square metre of priced surface.
var benchmarks = map[string]float64{
	"residential":    800,
	"commercial":     1200,
	"industrial":     1500,
	"infrastructure": 2000,
	"low_carbon":     600,
	"sustainable":    400,
	"passive_house":  200,
}

// defaultBenchmark covers unknown project types.
const defaultBenchmark = 1000.0

func benchmarkFor(projectType string) float64 {
	if b, ok := benchmarks[strings.ToLower(projectType)]; ok {
		return b
	}
	return defaultBenchmark
}

// Material densities in kg per cubic metre, for converting billing
// quantities to mass.
var densities = map[string]float64{
	"concrete":  2400,
	"steel":     7850,
	"aluminum":  2700,
	"aluminium": 2700,
	"wood":      600,
	"timber":    600,
	"glass":     2500,
	"plastic":   950,
	"brick":     1800,
	"asphalt":   2350,
	"finishes":  1200,
}

const defaultDensity = 1000.0

func densityFor(material string) float64 {
	if d, ok := densities[strings.ToLower(material)]; ok {
		return d
	}
	return defaultDensity
}

// Geometry assumptions for mass conversion.
const (
	// assumedSurfaceThickness converts square metres to volume.
	assumedSurfaceThickness = 0.2

	// assumedCrossSection converts linear metres to volume.
	assumedCrossSection = 0.05
)

// Assumed masses in kg for counted items.
var itemMasses = map[string]float64{
	"door":             40,
	"window":           25,
	"column":           500,
	"electrical_panel": 60,
	"utility":          50,
}

const defaultItemMass = 50.0

// Environmental equivalent conversion constants. These are published
// approximations for communication, not guarantees.
const (
	// treeAbsorptionKGPerYear is the CO2 absorbed by one tree per year.
	treeAbsorptionKGPerYear = 22.0

	// carMilesPerKG converts kg CO2e to average car miles.
	carMilesPerKG = 2.3

	// flightKGPerHour is the CO2e of one hour of commercial flight.
	flightKGPerHour = 90.0
)
