// Package signal defines the mono Signal value passed through the reverb
// pipeline, deterministic generators for test and probe signals, and peak
// normalization.
package signal
