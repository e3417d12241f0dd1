package client

// Notifier surfaces transient feedback (toasts) to the user.
type Notifier interface {
	Success(message string)
	Error(message string, err error)
}

// NopNotifier discards every notification.
type NopNotifier struct{}

func (NopNotifier) Success(string)      {}
func (NopNotifier) Error(string, error) {}
