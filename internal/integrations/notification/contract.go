package notification

import "context"

// Sender доставляет одно событие получателю (брокер, лог)
type Sender interface {
	Send(ctx context.Context, event Event) error
}

// Metrics счётчики результатов отправки
type Metrics interface {
	Notification(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
