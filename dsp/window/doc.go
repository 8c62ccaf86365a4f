// Package window provides the fade windows applied to reverb tails.
package window
