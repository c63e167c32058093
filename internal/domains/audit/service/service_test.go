package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "smartpark/infras/otel/mocks"
	"smartpark/internal/domains/audit/model"
	auditMocks "smartpark/internal/domains/audit/repository/mocks"
	"smartpark/internal/domains/audit/service"
	"smartpark/shared/constant"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func TestAuditService_Record(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		ctx       context.Context
		wantActor string
		insertErr error
	}{
		{
			name:      "actor from token",
			ctx:       context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-7"),
			wantActor: "admin-7",
		},
		{
			name:      "system actor",
			ctx:       context.Background(),
			wantActor: constant.DefaultActor,
		},
		{
			name:      "store failure is swallowed",
			ctx:       context.Background(),
			wantActor: constant.DefaultActor,
			insertErr: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := auditMocks.NewMockAudit(ctrl)
			svc := service.New(repo, fixedClock{now: now}, otelMocks.NewOtel())

			done := make(chan model.Log, 1)

			repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, entry model.Log) error {
					done <- entry

					return tt.insertErr
				})

			svc.Record(tt.ctx, model.ActionManualEntry, model.Details{"parking_id": "A1F1S1"})

			select {
			case entry := <-done:
				assert.Equal(t, model.ActionManualEntry, entry.Action)
				assert.Equal(t, tt.wantActor, entry.Actor)
				assert.Equal(t, now, entry.EventTimestamp)
				assert.Equal(t, "A1F1S1", entry.Details["parking_id"])
			case <-time.After(time.Second):
				t.Fatal("audit record was not written")
			}
		})
	}
}
