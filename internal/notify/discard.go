package notify

import "github.com/m04kA/WM-BookingService/internal/integrations/mailer"

// Discard заглушка диспетчера для выключенных уведомлений
type Discard struct{}

func (Discard) Enqueue(mailer.Notification) {}

func (Discard) Close() {}
