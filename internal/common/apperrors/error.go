// Package apperrors provides chained sentinel errors. A package declares a base error and
// derives its specific errors from it, so callers can match either level with errors.Is.
package apperrors

// Error is an error that can derive new errors from itself and carry additional causes.
// All methods return a new Error; the receiver is never modified.
type Error interface {
	error
	Unwrap() error // support for errors.Is / errors.As

	New(msg string) Error                  // derives a new error whose parent is the current one
	Msg(msg string) Error                  // replaces the message, keeping the current error as cause
	MsgErr(msg string, err ...error) Error // replaces the message and attaches extra causes
	Err(err ...error) Error                // attaches extra causes, keeping the message
	Prefix(string) Error                   // prepends context to the message
	ErrorAll() string                      // message followed by the messages of all causes
	UnwrapAll() []error                    // all attached causes
}
