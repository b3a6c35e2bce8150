// Package notify pushes run outcomes to external channels. The checker calls
// it once per run; a failed notification never fails the run.
package notify

// NotificationType classifies a notification's severity.
type NotificationType int

const (
	NotifyInfo NotificationType = iota
	NotifyWarning
	NotifyError
)

// Notification describes one run outcome worth telling someone about.
type Notification struct {
	Title   string
	Message string
	Type    NotificationType
	Link    string // optional link to the dashboard
}

// Notifier is the interface for sending notifications.
type Notifier interface {
	Send(n Notification) error
}

// MultiNotifier fans a notification out to several backends.
type MultiNotifier struct {
	notifiers []Notifier
}

// NewMultiNotifier creates a notifier that sends to all provided notifiers.
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

// Send delivers to every backend and returns the last error, if any.
func (m *MultiNotifier) Send(n Notification) error {
	var lastErr error
	for _, notifier := range m.notifiers {
		if err := notifier.Send(n); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// NoopNotifier does nothing (for tests or disabled notifications).
type NoopNotifier struct{}

func (NoopNotifier) Send(n Notification) error { return nil }
