package domain

import "errors"

var (
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrProviderRejected    = errors.New("provider rejected request")
	ErrGenerationFailed    = errors.New("generation failed")
	ErrMissingOutput       = errors.New("prediction produced no output")
	ErrFetchFailed         = errors.New("output fetch failed")
	ErrNormalizationFailed = errors.New("image normalization failed")
	ErrPollTimeout         = errors.New("poll deadline exceeded")
	ErrEmptyBatch          = errors.New("no mockups generated")
)
