package dice

import "errors"

// ErrMissingSource indicates a roll was requested without a random source.
var ErrMissingSource = errors.New("random source is required")

// ErrUnboundedReroll indicates a reroll threshold every face would satisfy.
var ErrUnboundedReroll = errors.New("reroll threshold must be greater than 1")

// ErrRerollLimit indicates rerolling did not settle within the batch cap.
var ErrRerollLimit = errors.New("reroll batch limit reached")
