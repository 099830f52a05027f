package notify

import "context"

// Notifier delivers alert messages to the fixed recipient.
type Notifier interface {
	// Send delivers one alert. It should return an error if delivery fails;
	// callers log such errors and move on, they never affect check results.
	Send(ctx context.Context, subject, body string) error

	// Verify checks that the notifier is authorized to send. It runs once at
	// startup, before any site is scheduled; a failure aborts the process.
	Verify(ctx context.Context) error
}
