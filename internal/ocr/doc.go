// Package ocr provides text recognition for construction drawing pages.
//
// The primary backend wraps the Tesseract OCR engine via gosseract/v2,
// available on CGO-enabled Linux builds. Other builds, and hosts where the
// Tesseract library is missing, degrade to a geometric locator that finds
// where text sits on the page without reading it.
//
// # Capability Probing
//
// Probe initializes the backend exactly once per process and reports the
// outcome through Capability. A failed probe never aborts analysis: callers
// check Available and switch to LocateWords, and every result produced on
// the degraded path carries a confidence capped below real recognition
// output so downstream stages can tell the two apart.
//
// # Prerequisites (Tesseract backend)
//
// Tesseract and its English training data must be installed:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract (recognition still requires a linux build)
//
// # Temporary Files
//
// The Tesseract backend writes each page to a temporary PNG because the
// native bindings require a file path. The file is removed after
// recognition completes.
//
// # Error Handling
//
// Recognize returns ErrUnavailable when no backend exists. Other errors
// indicate genuine recognition failures (unreadable temp files, Tesseract
// initialization problems). If word-level bounding box extraction fails,
// the full text is still returned with an empty Words slice.
package ocr
