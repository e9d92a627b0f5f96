package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"vaidya/internal/domain"
	"vaidya/internal/service"
)

var ErrInvalidBookingEvent = errors.New("invalid booking event")

// ModuleCreator es la parte del ModuleService que necesita el listener.
type ModuleCreator interface {
	Create(ctx context.Context, in service.CreateModuleInput) (domain.TherapyModule, bool, error)
}

type redisSubscriber interface {
	Subscribe(ctx context.Context, channels ...string) *redis.PubSub
}

// BookingListener consume confirmaciones de reserva desde Redis Pub/Sub y crea el modulo
// de terapia correspondiente. Reenvios del mismo bookingId no crean modulos nuevos.
type BookingListener struct {
	client  redisSubscriber
	channel string
	modules ModuleCreator
	logger  *zap.Logger
}

func NewBookingListener(client *redis.Client, channel string, modules ModuleCreator, logger *zap.Logger) *BookingListener {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &BookingListener{channel: channel, modules: modules, logger: logger}
	if client != nil {
		l.client = client
	}
	return l
}

// Run bloquea hasta que ctx se cancele o se cierre la suscripcion.
func (l *BookingListener) Run(ctx context.Context) error {
	if l == nil || l.client == nil || l.modules == nil {
		return errors.New("booking listener not configured")
	}

	pubsub := l.client.Subscribe(ctx, l.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", l.channel, err)
	}
	l.logger.Info("listening for booking events", zap.String("channel", l.channel))

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if err := l.HandleMessage(ctx, []byte(msg.Payload)); err != nil {
				l.logger.Warn("booking event not processed",
					zap.String("channel", msg.Channel),
					zap.Error(err),
				)
			}
		}
	}
}

// HandleMessage procesa un evento. Los tipos distintos de booking.confirmed se ignoran.
func (l *BookingListener) HandleMessage(ctx context.Context, payload []byte) error {
	var event domain.BookingEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBookingEvent, err)
	}
	if event.Type != domain.BookingEventConfirmed {
		l.logger.Debug("ignoring booking event", zap.String("type", event.Type))
		return nil
	}

	bookingID := strings.TrimSpace(event.BookingID)
	if bookingID == "" {
		return fmt.Errorf("%w: missing bookingId", ErrInvalidBookingEvent)
	}

	module, created, err := l.modules.Create(ctx, service.CreateModuleInput{
		TemplateID:    event.TemplateID,
		ClinicName:    event.ClinicName,
		ScheduledDate: event.ScheduledDate,
		ScheduledTime: event.ScheduledTime,
		BookingID:     &bookingID,
		PatientID:     event.PatientID,
	})
	if err != nil {
		return fmt.Errorf("create module for booking %s: %w", bookingID, err)
	}

	if created {
		l.logger.Info("module created from booking",
			zap.String("booking_id", bookingID),
			zap.String("module_id", module.ID),
		)
	} else {
		l.logger.Debug("booking already has a module",
			zap.String("booking_id", bookingID),
			zap.String("module_id", module.ID),
		)
	}
	return nil
}
