// Package response computes the frequency response of an impulse response.
//
// It is used to verify filter stages: an allpass must have unit magnitude
// at every frequency, and a comb must peak at multiples of sampleRate/delay.
package response
