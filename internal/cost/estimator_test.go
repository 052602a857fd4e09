package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VivekMadav/construction-ai/internal/detection"
	"github.com/VivekMadav/construction-ai/internal/imaging"
	"github.com/VivekMadav/construction-ai/internal/quantity"
)

func newEstimator() *Estimator {
	return NewEstimator(nil, quantity.NewCalculator(imaging.DefaultScale(), nil), nil)
}

func fireRatedWall() *detection.Element {
	return &detection.Element{
		ID:         "wall_001",
		Type:       "wall",
		Bounds:     detection.Bounds{X1: 100, Y1: 100, X2: 400, Y2: 140},
		Confidence: 0.85,
		Discipline: detection.Architectural,
		Enhanced: detection.EnhancedProperties{
			Dimensions: []detection.Dimension{
				{Value: 10000, Unit: "MM", Source: "text"},
				{Value: 2000, Unit: "MM", Source: "text"},
			},
			Materials:      []string{"concrete"},
			Specifications: []string{"fire rated"},
		},
	}
}

func TestEstimateFireRatedConcreteWall(t *testing.T) {
	summary := newEstimator().Estimate([]*detection.Element{fireRatedWall()})

	require.Len(t, summary.ElementCosts, 1)
	ec := summary.ElementCosts[0]

	// 85/sqm x 20 sqm x 1.25 fire rating.
	assert.InDelta(t, 2125.0, ec.TotalCost, 1e-9)
	assert.InDelta(t, 20.0, ec.Quantity, 1e-9)
	assert.InDelta(t, 85.0, ec.BaseRate, 1e-9)
	assert.InDelta(t, 106.25, ec.UnitCost, 1e-9)
	assert.Equal(t, []string{"fire rated"}, ec.AppliedSpecifications)

	assert.InDelta(t, 2125.0, summary.TotalCost, 1e-9)
	assert.InDelta(t, 2125.0, summary.ByMaterial["concrete"], 1e-9)
	assert.InDelta(t, 2125.0, summary.BySpecification["fire rated"], 1e-9)
	assert.Equal(t, 1, summary.CostBands["very_high"])
}

func TestEstimateEmptyProject(t *testing.T) {
	summary := newEstimator().Estimate(nil)

	assert.Zero(t, summary.TotalCost)
	assert.Zero(t, summary.ElementCount)
	assert.Zero(t, summary.Confidence)
	assert.Empty(t, summary.ElementCosts)
	assert.Empty(t, summary.Unestimated)
	assert.Empty(t, summary.Recommendations)
}

func TestEstimateMissingRateGoesToUnestimated(t *testing.T) {
	drainage := &detection.Element{
		ID:         "drainage_001",
		Type:       "drainage",
		Bounds:     detection.Bounds{X1: 0, Y1: 0, X2: 500, Y2: 20},
		Confidence: 0.75,
		Discipline: detection.Civil,
	}

	summary := newEstimator().Estimate([]*detection.Element{drainage})

	assert.Empty(t, summary.ElementCosts)
	require.Len(t, summary.Unestimated, 1)
	assert.Equal(t, "drainage_001", summary.Unestimated[0].ElementID)
	assert.Contains(t, summary.Unestimated[0].Reason, "no rate")
}

func TestEstimateDefaultMaterial(t *testing.T) {
	door := &detection.Element{
		ID:         "door_001",
		Type:       "door",
		Bounds:     detection.Bounds{X1: 0, Y1: 0, X2: 60, Y2: 90},
		Confidence: 0.80,
		Discipline: detection.Architectural,
	}

	summary := newEstimator().Estimate([]*detection.Element{door})

	require.Len(t, summary.ElementCosts, 1)
	assert.Equal(t, "timber", summary.ElementCosts[0].Material)
	assert.InDelta(t, 350.0, summary.ElementCosts[0].TotalCost, 1e-9)
}

func TestEstimateConfidenceFormula(t *testing.T) {
	wall := fireRatedWall()
	drainage := &detection.Element{
		ID:         "drainage_001",
		Type:       "drainage",
		Bounds:     detection.Bounds{X1: 0, Y1: 0, X2: 500, Y2: 20},
		Confidence: 0.75,
		Discipline: detection.Civil,
	}

	summary := newEstimator().Estimate([]*detection.Element{wall, drainage})

	// Coverage 1/2, mean confidence (0.85+0.75)/2.
	assert.InDelta(t, 0.5*0.5+0.5*0.8, summary.Confidence, 1e-9)
}

func TestEstimateCumulativeMultipliers(t *testing.T) {
	wall := fireRatedWall()
	wall.Enhanced.Specifications = []string{"fire rated", "insulated"}

	summary := newEstimator().Estimate([]*detection.Element{wall})

	require.Len(t, summary.ElementCosts, 1)
	assert.InDelta(t, 85*20*1.25*1.15, summary.ElementCosts[0].TotalCost, 1e-9)
}

func TestEstimateTopElementsOrdered(t *testing.T) {
	wall := fireRatedWall()
	door := &detection.Element{
		ID:         "door_001",
		Type:       "door",
		Bounds:     detection.Bounds{X1: 0, Y1: 0, X2: 60, Y2: 90},
		Confidence: 0.80,
		Discipline: detection.Architectural,
	}

	summary := newEstimator().Estimate([]*detection.Element{door, wall})

	require.Len(t, summary.TopElements, 2)
	assert.Equal(t, "wall_001", summary.TopElements[0].ElementID)
	assert.Equal(t, "door_001", summary.TopElements[1].ElementID)
}

func TestEstimateCostNeverNegative(t *testing.T) {
	wall := fireRatedWall()
	wall.Enhanced.Specifications = []string{"precast"}

	summary := newEstimator().Estimate([]*detection.Element{wall})

	require.Len(t, summary.ElementCosts, 1)
	assert.GreaterOrEqual(t, summary.ElementCosts[0].TotalCost, 0.0)
	assert.InDelta(t, 85*20*0.9, summary.ElementCosts[0].TotalCost, 1e-9)
}
