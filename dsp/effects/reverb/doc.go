// Package reverb implements a Schroeder reverberator over whole mono buffers.
//
// Included processors:
//   - Comb: recursive feedback comb filter (echo train).
//   - Allpass: recursive allpass filter used for phase diffusion.
//   - Plain: one-pole exponential decay reverberator.
//   - Attenuate: scalar gain stage.
//   - Engine: parallel comb bank, allpass cascade, attenuation, a faded
//     plain-reverb tail mixed back in, and peak normalization.
//
// Every stage returns a freshly allocated slice of the same length as its
// input; the tail a recursive stage would continue to ring past the end of
// the buffer is discarded. Parameters are validated before any buffer is
// allocated, and a run that produces a NaN or infinite sample fails with
// ErrNumericInstability instead of returning corrupted audio.
package reverb
