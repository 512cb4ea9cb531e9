// Package reverb implements a real-time stereo Schroeder reverb.
//
// Signal flow per channel:
//
//	input gain -> pre-delay -> 6 early reflection taps
//	                        -> 8 parallel lowpass-feedback combs (cross-fed)
//	                        -> 4 series allpasses -> tail level
//	mid/side width -> 30/70 early/late mix -> reflectivity -> HF boost
//	dry/wet -> 0.95 trim -> clamp to [-1, 1]
//
// Comb loop gains follow the RT60 rule g = 10^(-3*d/T) with the first
// comb's delay d as the representative loop length for all eight combs.
// Decay and damping ramp over 50 ms in steps taken every 8 frames; the
// dry/wet mix ramps every frame.
//
// # Usage
//
//	p := reverb.New()
//	p.SetDecayTime(3.5)
//	p.Prepare(48000)
//	p.ProcessStereo(left, right) // in place
//
// Invalid input never produces an error: control values are clamped to
// their documented ranges, unusable sample rates fall back to 44100 Hz and
// empty buffers are ignored.
package reverb
