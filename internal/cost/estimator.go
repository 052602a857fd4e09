package cost

import (
	"log/slog"
	"sort"

	"github.com/VivekMadav/construction-ai/internal/detection"
	"github.com/VivekMadav/construction-ai/internal/quantity"
)

// topElementCount bounds the highest-cost element list in the summary.
const topElementCount = 10

// Cost band boundaries in the summary currency.
const (
	bandMediumFrom   = 100.0
	bandHighFrom     = 500.0
	bandVeryHighFrom = 1000.0
)

// Fixed recommendation rule thresholds.
const (
	reviewCostThreshold      = 500.0
	highCostElementFraction  = 0.3
	dominantMaterialFraction = 0.4
	veryHighCostElementLimit = 5
	costPerAreaLowBenchmark  = 100.0
	costPerAreaHighBenchmark = 5000.0
)

// ElementCost is the cost calculation for a single element.
type ElementCost struct {
	ElementID   string        `json:"element_id"`
	ElementType string        `json:"element_type"`
	Discipline  string        `json:"discipline"`
	Material    string        `json:"material"`
	Quantity    float64       `json:"quantity"`
	Unit        quantity.Unit `json:"unit"`
	BaseRate    float64       `json:"base_rate"`
	UnitCost    float64       `json:"unit_cost"`
	TotalCost   float64       `json:"total_cost"`
	Currency    string        `json:"currency"`

	// AppliedSpecifications names the multipliers that adjusted the rate.
	AppliedSpecifications []string `json:"applied_specifications,omitempty"`
}

// UnestimatedElement records an element excluded from cost totals and why.
// Exclusions are always listed, never silently dropped.
type UnestimatedElement struct {
	ElementID   string `json:"element_id"`
	ElementType string `json:"element_type"`
	Reason      string `json:"reason"`
}

// ProjectCostSummary aggregates element costs for a project.
type ProjectCostSummary struct {
	TotalCost             float64 `json:"total_cost"`
	Currency              string  `json:"currency"`
	ElementCount          int     `json:"element_count"`
	AverageCostPerElement float64 `json:"average_cost_per_element"`

	ByDiscipline    map[string]float64 `json:"cost_by_discipline"`
	ByMaterial      map[string]float64 `json:"cost_by_material"`
	BySpecification map[string]float64 `json:"cost_by_specification"`

	// CostBands counts elements per band: low (<100), medium (<500),
	// high (<1000), very_high (>=1000).
	CostBands map[string]int `json:"cost_bands"`

	// TopElements lists the highest-cost elements, most expensive first.
	TopElements []ElementCost `json:"top_elements"`

	ElementCosts []ElementCost        `json:"element_costs"`
	Unestimated  []UnestimatedElement `json:"unestimated_elements"`

	Recommendations []string `json:"recommendations"`

	// Confidence = 0.5*rate_coverage + 0.5*mean(element confidence), where
	// rate_coverage is the fraction of elements with a resolved rate.
	Confidence float64 `json:"confidence"`
}

// Estimator prices enriched elements against a rate table.
type Estimator struct {
	rates  *RateTable
	calc   *quantity.Calculator
	logger *slog.Logger
}

// NewEstimator creates an estimator. A nil rate table uses the defaults.
func NewEstimator(rates *RateTable, calc *quantity.Calculator, logger *slog.Logger) *Estimator {
	if rates == nil {
		rates = DefaultRates()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Estimator{rates: rates, calc: calc, logger: logger}
}

// Estimate prices every element and aggregates the project summary.
//
// Elements without a resolved rate or quantity go to the unestimated list
// with a reason; the estimation itself never aborts. Per-element cost is
// floored at zero even when discount multipliers stack below cost parity,
// so the total can never go negative.
func (e *Estimator) Estimate(elements []*detection.Element) *ProjectCostSummary {
	summary := &ProjectCostSummary{
		Currency:        "USD",
		ByDiscipline:    make(map[string]float64),
		ByMaterial:      make(map[string]float64),
		BySpecification: make(map[string]float64),
		CostBands:       make(map[string]int),
		ElementCosts:    make([]ElementCost, 0, len(elements)),
		Unestimated:     make([]UnestimatedElement, 0),
		Recommendations: make([]string, 0),
	}

	rated := 0
	confidenceSum := 0.0

	for _, el := range elements {
		confidenceSum += el.Confidence

		ec, reason := e.estimateElement(el)
		if reason != "" {
			e.logger.Warn("element excluded from cost totals",
				"element", el.ID, "type", el.Type, "reason", reason)
			summary.Unestimated = append(summary.Unestimated, UnestimatedElement{
				ElementID:   el.ID,
				ElementType: el.Type,
				Reason:      reason,
			})
			continue
		}

		rated++
		summary.ElementCosts = append(summary.ElementCosts, ec)
		summary.TotalCost += ec.TotalCost
		summary.ByDiscipline[ec.Discipline] += ec.TotalCost
		summary.ByMaterial[ec.Material] += ec.TotalCost
		for _, spec := range ec.AppliedSpecifications {
			summary.BySpecification[spec] += ec.TotalCost
		}
		summary.CostBands[band(ec.TotalCost)]++
	}

	summary.ElementCount = len(summary.ElementCosts)
	if summary.ElementCount > 0 {
		summary.AverageCostPerElement = summary.TotalCost / float64(summary.ElementCount)
	}
	summary.TopElements = topByCost(summary.ElementCosts, topElementCount)
	summary.Recommendations = e.recommendations(summary)

	if len(elements) > 0 {
		coverage := float64(rated) / float64(len(elements))
		meanConfidence := confidenceSum / float64(len(elements))
		summary.Confidence = 0.5*coverage + 0.5*meanConfidence
	}

	e.logger.Info("cost estimation complete",
		"elements", len(elements), "estimated", rated,
		"total_cost", summary.TotalCost, "confidence", summary.Confidence)
	return summary
}

// estimateElement prices one element, returning a non-empty reason when the
// element cannot be estimated.
func (e *Estimator) estimateElement(el *detection.Element) (ElementCost, string) {
	material := MaterialFor(el)
	rate, ok := e.rates.Lookup(el.Type, material)
	if !ok {
		return ElementCost{}, "no rate for " + el.Type + "/" + material
	}

	q, err := e.calc.Quantity(el)
	if err != nil {
		return ElementCost{}, "quantity: " + err.Error()
	}

	multiplier, applied := applySpecifications(el.Enhanced.Specifications)
	unitCost := rate.BaseRate * multiplier
	total := unitCost * q.Value
	if total < 0 {
		total = 0
	}

	return ElementCost{
		ElementID:             el.ID,
		ElementType:           el.Type,
		Discipline:            string(el.Discipline),
		Material:              material,
		Quantity:              q.Value,
		Unit:                  q.Unit,
		BaseRate:              rate.BaseRate,
		UnitCost:              unitCost,
		TotalCost:             total,
		Currency:              rate.Currency,
		AppliedSpecifications: applied,
	}, ""
}

func band(cost float64) string {
	switch {
	case cost < bandMediumFrom:
		return "low"
	case cost < bandHighFrom:
		return "medium"
	case cost < bandVeryHighFrom:
		return "high"
	default:
		return "very_high"
	}
}

func topByCost(costs []ElementCost, n int) []ElementCost {
	top := make([]ElementCost, len(costs))
	copy(top, costs)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].TotalCost > top[j].TotalCost
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}

// recommendations applies the fixed rule set over the finished summary.
func (e *Estimator) recommendations(s *ProjectCostSummary) []string {
	recs := make([]string, 0)
	if s.ElementCount == 0 {
		return recs
	}

	highCost := 0
	for _, ec := range s.ElementCosts {
		if ec.TotalCost > reviewCostThreshold {
			highCost++
		}
	}
	if float64(highCost) > float64(s.ElementCount)*highCostElementFraction {
		recs = append(recs, "review high-cost elements (>$500) for potential alternatives")
	}

	for _, material := range []string{"steel", "aluminium"} {
		if s.TotalCost > 0 && s.ByMaterial[material] > s.TotalCost*dominantMaterialFraction {
			recs = append(recs, "high use of "+material+", consider cost-effective alternatives")
		}
	}

	if s.CostBands["very_high"] > veryHighCostElementLimit {
		recs = append(recs, "multiple very high-cost elements detected, consider value engineering")
	}

	// Per-area benchmark over the project's priced surface area.
	area := 0.0
	for _, ec := range s.ElementCosts {
		if ec.Unit == quantity.SquareMeters {
			area += ec.Quantity
		}
	}
	if area > 0 {
		perArea := s.TotalCost / area
		if perArea > costPerAreaHighBenchmark {
			recs = append(recs, "total cost is above the expected per-area benchmark, review scope and specifications")
		} else if perArea < costPerAreaLowBenchmark {
			recs = append(recs, "total cost is below the expected per-area benchmark, ensure all elements are captured")
		}
	}

	return recs
}
