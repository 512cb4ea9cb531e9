// Package onepole provides the single-coefficient smoothers used inside
// recirculating reverb loops.
//
// OnePole is a plain exponential moving average. Damping chains a one-pole
// low-pass with a tracking high-pass and adds a fixed share of the high band
// back, which keeps some presence in the loop while still darkening the tail.
package onepole
