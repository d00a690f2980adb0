package notification

import "context"

// LogNotifier пишет события в лог вместо отправки во внешнюю систему
type LogNotifier struct {
	log Logger
}

func NewLogNotifier(log Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(_ context.Context, event Event) error {
	n.log.Info("Notification %s: booking_id=%s, requester_id=%s, resource_id=%d, date=%s, slot=%d",
		event.RoutingKey(), event.BookingID, event.RequesterID, event.ResourceID, event.Date, event.SlotIndex)
	return nil
}
