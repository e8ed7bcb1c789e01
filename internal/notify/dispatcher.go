// Package notify отвязывает отправку уведомлений от сохранения бронирования.
// Сохранение ставит задачу в очередь и возвращается; доставка идёт в фоне,
// её неудача бронирование не откатывает.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/WM-BookingService/internal/integrations/mailer"
)

// Sender интерфейс почтового клиента
type Sender interface {
	SendBookingNotification(ctx context.Context, n mailer.Notification) (mailer.Result, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Dispatcher фоновая очередь уведомлений: буферизованный канал и один воркер
type Dispatcher struct {
	sender  Sender
	log     Logger
	queue   chan mailer.Notification
	timeout time.Duration

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewDispatcher создает диспетчер и запускает воркер
func NewDispatcher(sender Sender, log Logger, queueSize int, sendTimeout time.Duration) *Dispatcher {
	d := &Dispatcher{
		sender:  sender,
		log:     log,
		queue:   make(chan mailer.Notification, queueSize),
		timeout: sendTimeout,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	go d.worker()

	return d
}

// Enqueue ставит уведомление в очередь, не блокируя вызывающего.
// При переполненной очереди уведомление отбрасывается с записью в лог -
// доставка best-effort
func (d *Dispatcher) Enqueue(n mailer.Notification) {
	select {
	case d.queue <- n:
	default:
		d.log.Error("Notify: queue full, dropping notification for %s", n.ReferenceNumber)
	}
}

// Close останавливает воркер, дождавшись обработки очереди
func (d *Dispatcher) Close() {
	d.stopOnce.Do(func() {
		close(d.stop)
		<-d.done
	})
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for {
		select {
		case n := <-d.queue:
			d.deliver(n)
		case <-d.stop:
			// Дообрабатываем то, что уже в очереди
			for {
				select {
				case n := <-d.queue:
					d.deliver(n)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(n mailer.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	result, err := d.sender.SendBookingNotification(ctx, n)
	if err != nil {
		d.log.Error("Notify: delivery failed for %s: %v", n.ReferenceNumber, err)
		return
	}

	d.log.Info("Notify: delivered %s (customer=%t, admin=%t)",
		n.ReferenceNumber, result.CustomerSent, result.AdminSent)
}
