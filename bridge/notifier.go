package bridge

import (
	"log/slog"

	"github.com/hostview-dev/hostview-sdk/domain/ports"
)

var _ ports.Notifier = (*SlogNotifier)(nil)

// SlogNotifier surfaces user notices through slog. The default notifier for
// headless deployments where no richer surface exists.
type SlogNotifier struct{}

func (n *SlogNotifier) Notify(message string) {
	slog.Info("notice", "message", message)
}
