package notifier

//go:generate go run go.uber.org/mock/mockgen -source=./notifier.go -destination=./mocks/notifier_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"smartpark/config"
	"smartpark/infras/kafka"
	"smartpark/infras/otel"
	"smartpark/shared/constant"
	"smartpark/shared/timezone"
	"time"
)

var ErrEmptyAddress = errors.New("notification address is empty")

// Notification is published for the delivery workers, which own the transport (email, push).
type Notification struct {
	Address string    `json:"address"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sent_at"`
}

// Subscription asks the delivery side to add address to the recipients of a location.
// A nil Floor subscribes to the whole area.
type Subscription struct {
	Address     string    `json:"address"`
	Area        *int      `json:"area,omitempty"`
	Floor       *int      `json:"floor,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// Vacancy is fanned out by the delivery side to the subscribers of its area and floor.
type Vacancy struct {
	SlotID  string    `json:"parking_id"`
	Area    int       `json:"area_number"`
	Floor   int       `json:"floor_number"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	FreedAt time.Time `json:"freed_at"`
}

type Notifier interface {
	Send(ctx context.Context, address, subject, body string) error
	Register(ctx context.Context, address string, area, floor *int) error
	// Announce tells the subscribers of the slot's floor that it became free.
	Announce(ctx context.Context, slotID string, area, floor int) error
}

type notifierImpl struct {
	kafka kafka.Client
	cfg   *config.Config
	otel  otel.Otel
}

func New(client kafka.Client, cfg *config.Config, otl otel.Otel) Notifier {
	return &notifierImpl{
		kafka: client,
		cfg:   cfg,
		otel:  otl,
	}
}

func (n *notifierImpl) Send(ctx context.Context, address, subject, body string) error {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".notifier.Send")
	defer scope.End()

	if address == "" {
		return ErrEmptyAddress
	}

	err := n.kafka.SendMessages(ctx, n.cfg.Kafka.Topic.Notification, kafka.Message{
		Key: address,
		Value: Notification{
			Address: address,
			Subject: subject,
			Body:    body,
			SentAt:  timezone.Now(),
		},
	})
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}

func (n *notifierImpl) Register(ctx context.Context, address string, area, floor *int) error {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".notifier.Register")
	defer scope.End()

	if address == "" {
		return ErrEmptyAddress
	}

	err := n.kafka.SendMessages(ctx, n.cfg.Kafka.Topic.Subscription, kafka.Message{
		Key: address,
		Value: Subscription{
			Address:     address,
			Area:        area,
			Floor:       floor,
			RequestedAt: timezone.Now(),
		},
	})
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to publish subscription: %w", err)
	}

	return nil
}

func (n *notifierImpl) Announce(ctx context.Context, slotID string, area, floor int) error {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".notifier.Announce")
	defer scope.End()

	scope.SetAttribute(constant.OtelSlotAttributeKey, slotID)

	err := n.kafka.SendMessages(ctx, n.cfg.Kafka.Topic.Vacancy, kafka.Message{
		Key: fmt.Sprintf("%d-%d", area, floor),
		Value: Vacancy{
			SlotID:  slotID,
			Area:    area,
			Floor:   floor,
			Subject: fmt.Sprintf("Parking Slot FREE: Area %d, Floor %d", area, floor),
			Body: fmt.Sprintf("A slot is now FREE!\n\nSlot ID: %s\nArea: %d\nFloor: %d\n\n"+
				"This message was sent to all subscribers for Area %d, Floor %d.", slotID, area, floor, area, floor),
			FreedAt: timezone.Now(),
		},
	})
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to publish vacancy: %w", err)
	}

	return nil
}
