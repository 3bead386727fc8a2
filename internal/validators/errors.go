package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrTooManyBuckets     = errors.New("too many active buckets")
	ErrDuplicateBucketID  = errors.New("duplicate bucket id")
	ErrInactiveBucket     = errors.New("bucket is not in the active list")
	ErrBucketDataTooLarge = errors.New("bucket data is too large")
)
