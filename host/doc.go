// Package host connects a reverb.Processor to the world outside the audio
// callback.
//
// Engine lets any goroutine change parameters while one audio goroutine
// calls Process. Changes are stored atomically and applied to the
// processor at the next block boundary. Engine also records input and
// output peaks and reports the tail length a host should keep rendering
// after the input stops.
//
// Descriptors carries the display side of each parameter: UI range, step,
// skew and a formatter such as "2.00s" or "75%". SaveState and LoadState
// persist a parameter set as versioned JSON.
package host
