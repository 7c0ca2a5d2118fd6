package errors

import "fmt"

// Wrap adds context to errors at package boundaries.
// It returns nil if err is nil, allowing for safe inline usage:
//
//	if err := builder.Build(ctx, v); err != nil {
//	    return errors.Wrap(err, "failed to build benchmark")
//	}
//
// The wrapped error preserves the original chain, so errors.Is()
// checks against sentinels keep working.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf adds formatted context to errors at package boundaries.
// It returns nil if err is nil.
//
//	return errors.Wrapf(err, "failed to build keysize %d", value)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, err)
}
