package psc

import "errors"

// Construction-time validation errors (spec section 7: "Violation is
// fatal (pre-condition check)"). The three size errors never arise with
// the two built-in variants; they exist to catch a future mis-tuned
// preset. ErrInvalidFadingCount reports a negative Config.FadingCount.
var (
	ErrHistoryTooLong     = errors.New("psc: historylen exceeds HistorylenMax")
	ErrOverlapTooLong     = errors.New("psc: poverlapmax exceeds PoverlapMax")
	ErrFrameTooLong       = errors.New("psc: framesz exceeds FrameszMax")
	ErrInvalidFadingCount = errors.New("psc: fading count must be non-negative")
)
