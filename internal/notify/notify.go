// Package notify surfaces short user-facing messages as desktop
// notifications.
package notify

import (
	"github.com/gen2brain/beeep"
	"go.uber.org/zap"

	"clock-overlay/internal/logging"
)

// Notifier delivers a short message to the user.
type Notifier interface {
	Notify(title, message string)
}

type desktopNotifier struct{}

// New returns the desktop notifier.
func New() Notifier {
	return desktopNotifier{}
}

func (desktopNotifier) Notify(title, message string) {
	if err := beeep.Notify(title, message, ""); err != nil {
		logging.L().Warn("notification failed",
			zap.String("title", title), zap.Error(err))
	}
}
