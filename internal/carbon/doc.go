// Package carbon estimates the embodied carbon of detected construction
// elements.
//
// # Model
//
// Each element's billing quantity is converted to material mass through a
// density table and fixed geometry assumptions, then multiplied by a
// per-material emission factor in kg CO2e per kg and a cumulative
// specification multiplier. A transport emission for the assumed sourcing
// distance is added on top. Timber and cellulose carry negative factors:
// sequestration credits flow through to project totals unclamped, so a
// timber-dominated project can legitimately report negative carbon.
//
// # Reporting
//
// The project report compares carbon intensity (kg CO2e per square metre
// of assessed surface) against per-project-type benchmarks, grades it on a
// 0-100 sustainability score, flags compliance with each named benchmark,
// and expresses the total in everyday equivalents. Elements whose quantity
// cannot be resolved are listed as unassessed with a reason rather than
// silently dropped.
package carbon
