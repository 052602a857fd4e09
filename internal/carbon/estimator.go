package carbon

import (
	"log/slog"
	"sort"

	"github.com/VivekMadav/construction-ai/internal/cost"
	"github.com/VivekMadav/construction-ai/internal/detection"
	"github.com/VivekMadav/construction-ai/internal/quantity"
)

// highImpactElementCount bounds the worst-emitter list in the report.
const highImpactElementCount = 10

// Fixed savings estimation rules.
const (
	// materialSavingsFraction of an element's carbon is recoverable by
	// substituting a material whose factor exceeds highCarbonFactor.
	materialSavingsFraction = 0.30

	// specSavingsFraction is recoverable by relaxing specifications whose
	// cumulative impact exceeds specImpactThreshold.
	specSavingsFraction = 0.20

	specImpactThreshold = 1.1
)

// ElementCarbon is the embodied carbon calculation for a single element.
type ElementCarbon struct {
	ElementID   string        `json:"element_id"`
	ElementType string        `json:"element_type"`
	Discipline  string        `json:"discipline"`
	Material    string        `json:"material"`
	Quantity    float64       `json:"quantity"`
	Unit        quantity.Unit `json:"unit"`
	MassKG      float64       `json:"mass_kg"`

	// CarbonFactor is kg CO2e per kg of the resolved material.
	CarbonFactor float64 `json:"carbon_factor"`

	// SpecificationImpact is the cumulative specification multiplier.
	SpecificationImpact float64 `json:"specification_impact"`

	// TransportImpact is the sourcing emission in kg CO2e.
	TransportImpact float64 `json:"transport_impact"`

	// TotalCarbon is mass*factor*impact + transport, in kg CO2e. Negative
	// values are legal: sequestering materials credit the project.
	TotalCarbon float64 `json:"total_carbon"`
}

// UnassessedElement records an element excluded from carbon totals and why.
type UnassessedElement struct {
	ElementID   string `json:"element_id"`
	ElementType string `json:"element_type"`
	Reason      string `json:"reason"`
}

// Equivalents expresses a carbon total in everyday terms. The conversions
// are published approximations for communication, not precise claims.
type Equivalents struct {
	// TreesPlanted is the number of trees absorbing the total in a year.
	TreesPlanted float64 `json:"trees_planted"`

	// CarMiles is the equivalent distance driven by an average car.
	CarMiles float64 `json:"car_miles"`

	// FlightHours is the equivalent hours of commercial flight.
	FlightHours float64 `json:"flight_hours"`
}

// Report aggregates element carbon for a project.
type Report struct {
	TotalCarbon float64 `json:"total_carbon_kg"`

	// Intensity is kg CO2e per square metre of assessed surface area.
	// Zero when no element carries an area quantity.
	Intensity float64 `json:"carbon_intensity"`

	ProjectType string  `json:"project_type"`
	Benchmark   float64 `json:"benchmark"`

	// SustainabilityScore grades intensity against the benchmark on a
	// 0-100 scale: 100 at or below a quarter of the benchmark, 50 at the
	// benchmark, 0 at twice the benchmark, linear between.
	SustainabilityScore float64 `json:"sustainability_score"`

	ByMaterial   map[string]float64 `json:"carbon_by_material"`
	ByDiscipline map[string]float64 `json:"carbon_by_discipline"`

	// HighImpactElements lists the worst emitters, highest first.
	HighImpactElements []ElementCarbon `json:"high_impact_elements"`

	ElementCarbons []ElementCarbon     `json:"element_carbons"`
	Unassessed     []UnassessedElement `json:"unassessed_elements"`

	// Compliance flags intensity against each named benchmark.
	Compliance map[string]bool `json:"compliance"`

	Equivalents Equivalents `json:"equivalents"`

	// SavingsPotential is the estimated kg CO2e recoverable through
	// material substitution and specification relaxation, capped at the
	// gap between the current total and the benchmark target.
	SavingsPotential float64 `json:"savings_potential_kg"`

	Recommendations []string `json:"recommendations"`

	// Confidence = 0.5*assessment_coverage + 0.5*mean(element confidence).
	Confidence float64 `json:"confidence"`
}

// Estimator computes embodied carbon for enriched elements.
type Estimator struct {
	calc   *quantity.Calculator
	logger *slog.Logger
}

// NewEstimator creates a carbon estimator.
func NewEstimator(calc *quantity.Calculator, logger *slog.Logger) *Estimator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Estimator{calc: calc, logger: logger}
}

// Estimate computes embodied carbon for every element and aggregates the
// project report. projectType selects the intensity benchmark; unknown
// types fall back to a generic one.
//
// Elements without a resolvable quantity go to the unassessed list with a
// reason; the assessment itself never aborts. Totals are never clamped:
// a timber-dominated project legitimately reports negative carbon.
func (e *Estimator) Estimate(elements []*detection.Element, projectType string) *Report {
	report := &Report{
		ProjectType:    projectType,
		Benchmark:      benchmarkFor(projectType),
		ByMaterial:     make(map[string]float64),
		ByDiscipline:   make(map[string]float64),
		ElementCarbons: make([]ElementCarbon, 0, len(elements)),
		Unassessed:     make([]UnassessedElement, 0),
		Compliance:     make(map[string]bool),
	}

	assessed := 0
	confidenceSum := 0.0
	areaSum := 0.0

	for _, el := range elements {
		confidenceSum += el.Confidence

		ec, reason := e.estimateElement(el)
		if reason != "" {
			e.logger.Warn("element excluded from carbon totals",
				"element", el.ID, "type", el.Type, "reason", reason)
			report.Unassessed = append(report.Unassessed, UnassessedElement{
				ElementID:   el.ID,
				ElementType: el.Type,
				Reason:      reason,
			})
			continue
		}

		assessed++
		report.ElementCarbons = append(report.ElementCarbons, ec)
		report.TotalCarbon += ec.TotalCarbon
		report.ByMaterial[ec.Material] += ec.TotalCarbon
		report.ByDiscipline[ec.Discipline] += ec.TotalCarbon
		if ec.Unit == quantity.SquareMeters {
			areaSum += ec.Quantity
		}
	}

	if areaSum > 0 {
		report.Intensity = report.TotalCarbon / areaSum
	}
	report.SustainabilityScore = sustainabilityScore(report.Intensity, report.Benchmark)
	for name, bench := range benchmarks {
		report.Compliance[name] = report.Intensity <= bench
	}
	report.HighImpactElements = topByCarbon(report.ElementCarbons, highImpactElementCount)
	report.Equivalents = equivalents(report.TotalCarbon)
	report.SavingsPotential = e.savingsPotential(report, areaSum)
	report.Recommendations = e.recommendations(report)

	if len(elements) > 0 {
		coverage := float64(assessed) / float64(len(elements))
		meanConfidence := confidenceSum / float64(len(elements))
		report.Confidence = 0.5*coverage + 0.5*meanConfidence
	}

	e.logger.Info("carbon assessment complete",
		"elements", len(elements), "assessed", assessed,
		"total_carbon_kg", report.TotalCarbon,
		"sustainability_score", report.SustainabilityScore)
	return report
}

// estimateElement computes one element's carbon, returning a non-empty
// reason when the element cannot be assessed.
func (e *Estimator) estimateElement(el *detection.Element) (ElementCarbon, string) {
	q, err := e.calc.Quantity(el)
	if err != nil {
		return ElementCarbon{}, "quantity: " + err.Error()
	}

	material := cost.MaterialFor(el)
	mass := massKG(el.Type, material, q)
	factor := carbonFactorFor(material)
	impact := specificationImpact(el.Enhanced.Specifications)
	transport := transportFactorFor(DefaultTransport) * defaultTransportDistanceKM

	return ElementCarbon{
		ElementID:           el.ID,
		ElementType:         el.Type,
		Discipline:          string(el.Discipline),
		Material:            material,
		Quantity:            q.Value,
		Unit:                q.Unit,
		MassKG:              mass,
		CarbonFactor:        factor,
		SpecificationImpact: impact,
		TransportImpact:     transport,
		TotalCarbon:         mass*factor*impact + transport,
	}, ""
}

// massKG converts a billing quantity to material mass using the density
// table and fixed geometry assumptions.
func massKG(elementType, material string, q quantity.Quantity) float64 {
	density := densityFor(material)
	switch q.Unit {
	case quantity.SquareMeters:
		return q.Value * assumedSurfaceThickness * density
	case quantity.LinearMeters:
		return q.Value * assumedCrossSection * density
	case quantity.CubicMeters:
		return q.Value * density
	case quantity.Count:
		mass := defaultItemMass
		if m, ok := itemMasses[elementType]; ok {
			mass = m
		}
		return q.Value * mass
	default:
		return q.Value * density
	}
}

// sustainabilityScore grades carbon intensity against a benchmark. Scores
// are piecewise linear: 100 at or below benchmark/4, 50 at the benchmark,
// 0 at twice the benchmark. Negative intensity always scores 100.
func sustainabilityScore(intensity, benchmark float64) float64 {
	if benchmark <= 0 {
		return 0
	}
	quarter := benchmark / 4
	switch {
	case intensity <= quarter:
		return 100
	case intensity <= benchmark:
		return 100 - 50*(intensity-quarter)/(benchmark-quarter)
	case intensity < 2*benchmark:
		return 50 - 50*(intensity-benchmark)/benchmark
	default:
		return 0
	}
}

func equivalents(totalCarbon float64) Equivalents {
	return Equivalents{
		TreesPlanted: totalCarbon / treeAbsorptionKGPerYear,
		CarMiles:     totalCarbon * carMilesPerKG,
		FlightHours:  totalCarbon / flightKGPerHour,
	}
}

func topByCarbon(carbons []ElementCarbon, n int) []ElementCarbon {
	top := make([]ElementCarbon, len(carbons))
	copy(top, carbons)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].TotalCarbon > top[j].TotalCarbon
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}

// savingsPotential sums the recoverable carbon across elements, then caps
// the sum at the gap between the current total and the benchmark target so
// the projection never promises a sub-benchmark outcome.
func (e *Estimator) savingsPotential(r *Report, areaSum float64) float64 {
	savings := 0.0
	for _, ec := range r.ElementCarbons {
		if ec.TotalCarbon <= 0 {
			continue
		}
		if ec.CarbonFactor > highCarbonFactor {
			savings += ec.TotalCarbon * materialSavingsFraction
		}
		if ec.SpecificationImpact > specImpactThreshold {
			savings += ec.TotalCarbon * specSavingsFraction
		}
	}
	if areaSum > 0 {
		target := r.Benchmark * areaSum
		if gap := r.TotalCarbon - target; gap >= 0 && savings > gap {
			savings = gap
		}
	}
	return savings
}

// recommendations applies the fixed rule set over the finished report.
func (e *Estimator) recommendations(r *Report) []string {
	recs := make([]string, 0)
	if len(r.ElementCarbons) == 0 {
		return recs
	}

	highFactor := 0
	highImpact := 0
	for _, ec := range r.ElementCarbons {
		if ec.CarbonFactor > highCarbonFactor {
			highFactor++
		}
		if ec.SpecificationImpact > specImpactThreshold {
			highImpact++
		}
	}
	if highFactor > 0 {
		recs = append(recs, "substitute lower-carbon materials for high-factor elements (steel, aluminium, plastic)")
	}
	if highImpact > 0 {
		recs = append(recs, "review specifications that raise embodied carbon, such as premium and fire-rated call-outs")
	}
	if r.Intensity > r.Benchmark {
		recs = append(recs, "carbon intensity exceeds the project benchmark; consider timber or recycled alternatives")
	}
	if r.SavingsPotential > 0 {
		recs = append(recs, "identified savings potential can be realised through material and specification changes")
	}
	return recs
}
