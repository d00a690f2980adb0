package notification

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к брокеру
	ErrConnect = errors.New("notification client: failed to connect to broker")

	// ErrPublish возвращается при ошибке публикации события
	ErrPublish = errors.New("notification client: failed to publish event")

	// ErrQueueFull возвращается, когда очередь отправки переполнена и событие отброшено
	ErrQueueFull = errors.New("notification client: dispatch queue is full")

	// ErrClosed возвращается при отправке после остановки диспетчера
	ErrClosed = errors.New("notification client: dispatcher is closed")
)
