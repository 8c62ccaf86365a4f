// Package ir measures the decay of a reverberator's impulse response.
//
// The Schroeder backward integral turns the noisy energy envelope of an
// impulse response into a smooth decay curve; reverberation times are read
// off that curve by linear regression and extrapolated to -60 dB.
package ir
