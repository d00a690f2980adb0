package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// publishChannel часть *amqp.Channel, нужная для публикации
type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// channelPool выдает каждому отправителю собственный канал
// Публикации в одном канале сериализуются клиентом, поэтому параллельные воркеры
// диспетчера используют разные каналы одного соединения
type channelPool struct {
	open  func() (publishChannel, error)
	slots chan publishChannel
}

func newChannelPool(size int, open func() (publishChannel, error)) *channelPool {
	if size <= 0 {
		size = 1
	}
	p := &channelPool{open: open, slots: make(chan publishChannel, size)}
	for i := 0; i < size; i++ {
		p.slots <- nil
	}
	return p
}

// acquire занимает слот пула; пустой или закрытый канал открывается заново
func (p *channelPool) acquire(ctx context.Context) (publishChannel, error) {
	var ch publishChannel
	select {
	case ch = <-p.slots:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if ch != nil && !ch.IsClosed() {
		return ch, nil
	}

	ch, err := p.open()
	if err != nil {
		p.slots <- nil
		return nil, err
	}
	return ch, nil
}

func (p *channelPool) release(ch publishChannel) {
	p.slots <- ch
}

// close дожидается возврата всех каналов и закрывает их
func (p *channelPool) close() {
	for i := 0; i < cap(p.slots); i++ {
		if ch := <-p.slots; ch != nil && !ch.IsClosed() {
			_ = ch.Close()
		}
	}
}

// Publisher публикует события в topic exchange RabbitMQ
type Publisher struct {
	conn     *amqp.Connection
	pool     *channelPool
	exchange string
}

// NewPublisher подключается к брокеру и объявляет exchange
// channels - число каналов, обычно равно числу воркеров диспетчера
func NewPublisher(url, exchange string, channels int) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	pool := newChannelPool(channels, func() (publishChannel, error) {
		c, err := conn.Channel()
		if err != nil {
			return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
		}
		return c, nil
	})

	// канал объявления exchange становится первым каналом пула
	<-pool.slots
	pool.release(ch)

	return &Publisher{conn: conn, pool: pool, exchange: exchange}, nil
}

// Send публикует событие с routing key по его статусу
func (p *Publisher) Send(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	return p.pool.publish(ctx, p.exchange, event, body)
}

func (p *channelPool) publish(ctx context.Context, exchange string, event Event, body []byte) error {
	ch, err := p.acquire(ctx)
	if err != nil {
		return fmt.Errorf("%w: booking_id=%s: %v", ErrPublish, event.BookingID, err)
	}
	defer p.release(ch)

	err = ch.PublishWithContext(ctx, exchange, event.RoutingKey(), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.BookingID + ":" + event.Status,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%w: booking_id=%s: %v", ErrPublish, event.BookingID, err)
	}

	return nil
}

// Close закрывает каналы и соединение
func (p *Publisher) Close() error {
	if p.pool != nil {
		p.pool.close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
