package notification

import (
	"context"
	"sync"
	"time"
)

// Dispatcher асинхронно доставляет события через Sender
// Очередь ограничена: при переполнении событие отбрасывается, вызывающий не блокируется
type Dispatcher struct {
	sender  Sender
	metrics Metrics
	log     Logger
	timeout time.Duration

	queue chan Event
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher запускает workers обработчиков очереди размером queueSize
func NewDispatcher(sender Sender, queueSize, workers int, timeout time.Duration, metrics Metrics, log Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 1
	}
	if workers <= 0 {
		workers = 1
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	d := &Dispatcher{
		sender:  sender,
		metrics: metrics,
		log:     log,
		timeout: timeout,
		queue:   make(chan Event, queueSize),
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.run()
	}

	return d
}

// Dispatch ставит событие в очередь
// Ошибка возвращается только для логирования, на результат операции она не влияет
func (d *Dispatcher) Dispatch(event Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrClosed
	}

	select {
	case d.queue <- event:
		return nil
	default:
		d.metrics.Notification("dropped")
		d.log.Warn("Notification dropped, queue is full: booking_id=%s, status=%s", event.BookingID, event.Status)
		return ErrQueueFull
	}
}

// Close прекращает прием событий и ждет доставки оставшихся либо отмены ctx
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for event := range d.queue {
		d.deliver(event)
	}
}

func (d *Dispatcher) deliver(event Event) {
	ctx := context.Background()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	if err := d.sender.Send(ctx, event); err != nil {
		d.metrics.Notification("failed")
		d.log.Error("Failed to deliver notification: booking_id=%s, status=%s: %v", event.BookingID, event.Status, err)
		return
	}

	d.metrics.Notification("sent")
}

type nopMetrics struct{}

func (nopMetrics) Notification(string) {}
