// Package imaging provides page loading, preprocessing, and scale handling
// for construction drawing analysis.
//
// This package implements the raster groundwork the rest of the pipeline
// builds on: cached page decoding, the grayscale/denoise/binarize preparation
// chain, region cropping for title blocks and note margins, and the drawing
// scale model that converts pixel measurements to real-world dimensions.
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Thread Safety
//
// The PageCache type is safe for concurrent use. Individual image operations
// are stateless and can be called concurrently on different images.
//
// # Scale Handling
//
// Construction sheets declare their scale in the title block ("SCALE 1:50").
// When no scale note is found, DefaultScale supplies the 1:100 at 150 DPI
// fallback and marks it assumed; downstream quantity estimation reports
// reduced confidence for measurements derived from an assumed scale.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Coordinates outside image bounds
//   - Invalid region specifications (x1 >= x2 or y1 >= y2)
//   - File I/O or decode errors during page loading
//
// A page decode failure is fatal for the owning drawing only; project-level
// batch analysis continues with the remaining drawings.
//
// # Performance Considerations
//
// Pages are decoded once and shared through PageCache across pipeline stages.
// Large sheets are downscaled to a bounded working dimension before contour
// detection; the applied factor is recorded so detected geometry can be
// mapped back to source coordinates.
package imaging
