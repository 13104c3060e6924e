package notifier

// RetryableError marks a transient delivery failure. The coordinator
// redelivers with backoff until attempts are exhausted.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// NonRetryableError marks an unprocessable message. The coordinator
// dead-letters immediately, skipping backoff.
type NonRetryableError struct {
	Err error
}

func (e *NonRetryableError) Error() string { return e.Err.Error() }

func (e *NonRetryableError) Unwrap() error { return e.Err }
