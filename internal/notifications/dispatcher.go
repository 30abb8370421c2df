package notifications

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"agilcurn/internal/config"
	cache_utils "agilcurn/internal/util/cache"

	"github.com/valkey-io/valkey-go"
)

const (
	outboxQueueKey  = "agilcurn:notifications"
	dequeueInterval = 5 * time.Second
)

// Dispatcher is the outbox: domain services hand it events after their
// transaction commits, it enqueues them to valkey, and the worker delivers
// them out of band. Enqueue failures are logged and swallowed — notification
// delivery never fails a primary operation.
type Dispatcher struct {
	queue  *cache_utils.ValkeyQueueService
	logger *slog.Logger
}

func (d *Dispatcher) Dispatch(events ...Event) {
	if len(events) == 0 {
		return
	}

	items := make([][]byte, 0, len(events))
	for _, event := range events {
		data, err := json.Marshal(event)
		if err != nil {
			d.logger.Error("failed to marshal notification event",
				"type", string(event.Type),
				"error", err)
			continue
		}

		items = append(items, data)
	}

	if err := d.queue.EnqueueBatch(outboxQueueKey, items); err != nil {
		d.logger.Error("failed to enqueue notification events",
			"count", len(items),
			"error", err)
	}
}

type WorkerService struct {
	queue       *cache_utils.ValkeyQueueService
	mailService *MailService
	pushService *PushService
	hub         *RealtimeHub
	logger      *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func (s *WorkerService) StartWorkers() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("Starting notification dispatch worker")

	s.wg.Add(1)
	go s.dispatchWorker()
}

func (s *WorkerService) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *WorkerService) dispatchWorker() {
	defer s.wg.Done()

	for {
		if config.IsShouldShutdown() {
			s.logger.Info("Notification worker shutting down due to shutdown signal")
			return
		}

		select {
		case <-s.ctx.Done():
			s.logger.Info("Notification worker shutting down")
			return
		default:
		}

		data, err := s.queue.DequeueBlocking(outboxQueueKey, dequeueInterval)
		if err != nil {
			if err != valkey.Nil {
				s.logger.Error("failed to dequeue notification event", "error", err)
				time.Sleep(dequeueInterval)
			}
			continue
		}

		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			s.logger.Error("failed to unmarshal notification event", "error", err)
			continue
		}

		s.deliver(&event)
	}
}

// ProcessPendingForTest drains the queue synchronously.
func (s *WorkerService) ProcessPendingForTest() {
	for {
		length, err := s.queue.QueueLength(outboxQueueKey)
		if err != nil || length == 0 {
			return
		}

		data, err := s.queue.DequeueBlocking(outboxQueueKey, time.Second)
		if err != nil {
			return
		}

		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			continue
		}

		s.deliver(&event)
	}
}

func (s *WorkerService) deliver(event *Event) {
	switch event.Type {
	case EventTypeEmail:
		if err := s.mailService.SendEmail(event.To, event.Subject, event.Body); err != nil {
			s.logger.Error("failed to deliver email notification",
				"to", event.To,
				"error", err)
		}

	case EventTypePush:
		if err := s.pushService.SendPush(event.PushToken, event.Title, event.Body, event.Data); err != nil {
			s.logger.Error("failed to deliver push notification", "error", err)
		}

	case EventTypeRealtime:
		s.hub.Broadcast(event.Channel, []byte(event.Body))

	default:
		s.logger.Warn("unknown notification event type", "type", string(event.Type))
	}
}
