// Package pitch converts note tokens such as "A#4" into frequencies using
// the 12-tone equal-tempered scale.
//
// A token is a pitch class followed by a single octave digit. Only sharps
// are recognised. Frequencies are computed relative to C0, which is derived
// from the A4 tuning reference as A4 * 2^(-4.75), and rounded to the nearest
// hertz with halves rounded up.
package pitch
