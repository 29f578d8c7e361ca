package apply

import "errors"

var (
	// ErrQuotaExceeded aborts the whole batch. The HTTP layer maps it to a
	// payment-required response, so it must stay distinguishable from
	// ordinary failures.
	ErrQuotaExceeded = errors.New("application quota exceeded")

	// ErrModalStuck means a modal step exposed neither a submit nor a
	// continue control. Fatal for the job, not for the batch.
	ErrModalStuck = errors.New("no submit or continue control found")

	// ErrDriverInit means the browser session could not be established.
	ErrDriverInit = errors.New("browser driver initialization failed")
)

// truncate shortens an error message for the session log
func truncate(msg string, n int) string {
	if len(msg) <= n {
		return msg
	}
	return msg[:n]
}
