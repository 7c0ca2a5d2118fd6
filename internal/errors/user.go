package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// A slice rather than a map so wrapped errors can be matched with errors.Is().
//
//nolint:gochecknoglobals // Pre-built mapping
var errorInfoEntries = []errorEntry{
	{
		err: ErrBuildFailed,
		info: ErrorInfo{
			Message: "The benchmark failed to compile. No report was written.",
			Action:  "Check the compiler output above and the build section of your config.",
		},
	},
	{
		err: ErrInvalidRange,
		info: ErrorInfo{
			Message: "The sweep range is invalid.",
			Action:  "Use a start of at least 1 and an end not below the start.",
		},
	},
	{
		err: ErrInvalidParameter,
		info: ErrorInfo{
			Message: "A parameter value below 1 was requested.",
		},
	},
	{
		err: ErrReportWrite,
		info: ErrorInfo{
			Message: "The report could not be written.",
			Action:  "Check that the report directory exists and is writable.",
		},
	},
	{
		err: ErrLocked,
		info: ErrorInfo{
			Message: "Another keysweep process is using the same artifact path.",
			Action:  "Wait for it to finish or point build.output somewhere else.",
		},
	},
	{
		err: ErrInterrupted,
		info: ErrorInfo{
			Message: "The sweep was interrupted. Results collected so far were discarded.",
		},
	},
	{
		err: ErrConfigInvalidSweep,
		info: ErrorInfo{
			Message: "The sweep configuration is invalid.",
			Action:  "Review the sweep section of your config or the --start/--end/--workers flags.",
		},
	},
	{
		err: ErrConfigInvalidBuild,
		info: ErrorInfo{
			Message: "The build configuration is invalid.",
			Action:  "Review the build section of your config.",
		},
	},
	{
		err: ErrConfigInvalidRun,
		info: ErrorInfo{
			Message: "The run configuration is invalid.",
			Action:  "Review the run section of your config.",
		},
	},
	{
		err: ErrConfigInvalidReport,
		info: ErrorInfo{
			Message: "The report configuration is invalid.",
			Action:  "Review the report section of your config or the --report-dir flag.",
		},
	},
}

// getErrorInfo looks up the ErrorInfo for a given error, falling back to the
// error's own message when no sentinel matches.
func getErrorInfo(err error) ErrorInfo {
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}
	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action. The action is empty when there is nothing useful to suggest.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
