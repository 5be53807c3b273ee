// Package plc implements Packet Loss Concealment for narrowband speech
// carried over lossy Bluetooth SCO links (CVSD and mSBC, 8/16 kHz mono
// PCM, 7.5 ms frames).
//
// When a voice packet is lost, a concealer synthesizes a replacement
// frame from recent history so the listener hears a plausible
// continuation instead of silence or a click; when packets resume, it
// smoothly re-converges to the real signal.
//
// Two independent concealers implement this:
//
//   - psc: a pitch-synchronous concealer derived from the ITU-T G.711
//     Appendix I reference, with an optional adaptive pitch search,
//     non-linear attenuation and LPC-driven comfort noise.
//   - lph: an LPC/pitch hybrid concealer that blends full-frame LPC
//     synthesis with pitch-period copy, with optional psychoacoustic
//     noise shaping.
//
// Both operate on fixed-size int16 PCM frames and share no state; a
// caller picks one per audio stream. Everything here is single-threaded
// and non-blocking: no operation in either concealer suspends or
// depends on wall-clock time. Both concealers allocate scratch slices
// on each frame call, and psc's AddToHistory returns a newly allocated
// slice.
package plc
