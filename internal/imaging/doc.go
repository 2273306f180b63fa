// Package imaging provides the pixel-level stages of the text rendering
// pipeline: decoding, grayscale convolution, edge and sharpen filters,
// aspect-preserving resizing and region cropping.
//
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward. Every stage returns a newly allocated image; inputs are
// never modified.
//
// # Convolution Boundary Policy
//
// Convolve and the filters built on it treat pixels outside the image as
// zero. A kernel centered on a border pixel therefore sees fewer neighbors
// than one in the interior. No clamping, mirroring or wrapping is applied.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Filters split their rows
// across goroutines internally but are otherwise stateless and can be called
// concurrently on different images.
//
// # Error Handling
//
// Loading failures are reported as *LoadError, which wraps the underlying
// open or decode error. Filters and resizing never fail on a non-empty image.
package imaging
