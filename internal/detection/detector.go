package detection

import (
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Detector finds and classifies construction elements in rasterized drawing
// pages using per-discipline geometric rule tables.
//
// Detection is rule-based, not learned: each contour's bounding box is tested
// against the discipline's ordered rule table and the first matching rule
// assigns the element type and a base confidence. The zero Detector is not
// usable; construct one with New.
type Detector struct {
	rules  map[Discipline]RuleTable
	logger *slog.Logger
}

// Option configures a Detector.
type Option func(*Detector)

// WithRules replaces the rule table for one discipline. Intended for
// configuration-driven overrides; tests can also use it to inject small
// synthetic tables.
func WithRules(d Discipline, table RuleTable) Option {
	return func(det *Detector) {
		det.rules[d] = table
	}
}

// WithLogger sets the structured logger used for stage events.
func WithLogger(l *slog.Logger) Option {
	return func(det *Detector) {
		det.logger = l
	}
}

// New creates a Detector with the built-in rule tables for every discipline.
func New(opts ...Option) *Detector {
	det := &Detector{
		rules:  make(map[Discipline]RuleTable, len(Disciplines)),
		logger: slog.Default(),
	}
	for _, d := range Disciplines {
		det.rules[d] = DefaultRules(d)
	}
	for _, opt := range opts {
		opt(det)
	}
	return det
}

// Detect finds elements of one discipline in a preprocessed drawing image.
//
// The image should already be grayscale and denoised (see internal/imaging);
// Detect runs edge detection, groups edge pixels into contours, and
// classifies each contour's bounding box against the discipline's rule
// table. Elements whose base confidence falls below confidenceThreshold are
// excluded.
//
// Zero contours is a valid outcome and returns an empty, non-nil slice:
// absence of elements is "nothing detected", not a fault. An error is
// returned only for an unsupported discipline.
func (det *Detector) Detect(img image.Image, discipline Discipline, confidenceThreshold float64) ([]*Element, error) {
	table, ok := det.rules[discipline]
	if !ok {
		return nil, fmt.Errorf("unsupported discipline: %q", discipline)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	edges := detectEdges(img, width, height)
	contours := findContours(edges, width, height)

	elements := make([]*Element, 0, len(contours))
	counts := make(map[string]int)

	for _, c := range contours {
		if len(c) < 4 {
			continue
		}
		box := c.bounds()
		if !box.Valid() {
			continue
		}

		rule, ok := classify(box, table, height)
		if !ok {
			continue
		}
		if rule.BaseConfidence < confidenceThreshold {
			continue
		}

		counts[rule.ElementType]++
		el := &Element{
			ID:         fmt.Sprintf("%s_%03d", rule.ElementType, counts[rule.ElementType]),
			Type:       rule.ElementType,
			Bounds:     offsetBounds(box, bounds.Min),
			Confidence: rule.BaseConfidence,
			Discipline: discipline,
			Properties: geometricProperties(box),
		}
		el.Boosts = append(el.Boosts, ConfidenceBoost{Source: "geometry", Amount: rule.BaseConfidence})
		el.FillColor, el.BorderColor = sampleColors(img, box, bounds.Min)
		elements = append(elements, el)
	}

	det.logger.Info("element detection completed",
		"discipline", discipline,
		"contours", len(contours),
		"elements", len(elements))

	return elements, nil
}

// classify returns the first rule in the table matching the box.
func classify(box Bounds, table RuleTable, imageHeight int) (Rule, bool) {
	for _, rule := range table {
		if rule.Matches(box, imageHeight) {
			return rule, true
		}
	}
	return Rule{}, false
}

// geometricProperties derives the standard geometric attribute map.
func geometricProperties(b Bounds) map[string]float64 {
	w := float64(b.Width())
	h := float64(b.Height())
	return map[string]float64{
		"width":        w,
		"height":       h,
		"area":         w * h,
		"aspect_ratio": b.AspectRatio(),
		"length":       math.Max(w, h),
		"thickness":    math.Min(w, h),
	}
}

// sampleColors samples the fill color at the box center and the border color
// at the top-left corner, returned as #RRGGBB hex strings.
func sampleColors(img image.Image, box Bounds, offset image.Point) (fill, border string) {
	center := box.Center()
	fill = hexAt(img, center.X+offset.X, center.Y+offset.Y)
	border = hexAt(img, box.X1+offset.X, box.Y1+offset.Y)
	return fill, border
}

func hexAt(img image.Image, x, y int) string {
	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		return ""
	}
	return c.Hex()
}

func offsetBounds(b Bounds, min image.Point) Bounds {
	return Bounds{
		X1: b.X1 + min.X,
		Y1: b.Y1 + min.Y,
		X2: b.X2 + min.X,
		Y2: b.Y2 + min.Y,
	}
}
