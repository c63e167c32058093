package model_test

import (
	"smartpark/internal/domains/alert/model"
	slotModel "smartpark/internal/domains/slot/model"
	"smartpark/shared"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateDelta(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
		want  *model.Alert
	}{
		{name: "ten minutes", delta: 10.0, want: &model.Alert{Kind: model.KindTenMinuteWarning}},
		{name: "ten minute window low edge", delta: 9.5, want: &model.Alert{Kind: model.KindTenMinuteWarning}},
		{name: "ten minute window high edge", delta: 10.5, want: &model.Alert{Kind: model.KindTenMinuteWarning}},
		{name: "just past ten minute window", delta: 10.6},
		{name: "nine minutes", delta: 9.0},
		{name: "three minutes", delta: 3.0, want: &model.Alert{Kind: model.KindFinalWarning, Minutes: 3}},
		{name: "two and a half rounds to even", delta: 2.5, want: &model.Alert{Kind: model.KindFinalWarning, Minutes: 2}},
		{name: "three and a half rounds to four", delta: 3.5},
		{name: "one minute", delta: 1.2, want: &model.Alert{Kind: model.KindFinalWarning, Minutes: 1}},
		{name: "just under one", delta: 0.6, want: &model.Alert{Kind: model.KindFinalWarning, Minutes: 1}},
		{name: "half a minute left rounds to zero", delta: 0.5, want: &model.Alert{Kind: model.KindExpired}},
		{name: "expired now", delta: 0, want: &model.Alert{Kind: model.KindExpired}},
		{name: "expired half a minute ago", delta: -0.5, want: &model.Alert{Kind: model.KindExpired}},
		{name: "one minute overdue", delta: -1.0},
		{name: "ten overdue", delta: -10.0, want: &model.Alert{Kind: model.KindOverdueReminder, Minutes: 10}},
		{name: "twenty overdue", delta: -20.0, want: &model.Alert{Kind: model.KindOverdueReminder, Minutes: 20}},
		{name: "twenty overdue within window", delta: -20.4, want: &model.Alert{Kind: model.KindOverdueReminder, Minutes: 20}},
		{name: "thirty overdue", delta: -30.0, want: &model.Alert{Kind: model.KindOverdueReminder, Minutes: 30}},
		{name: "fifteen overdue", delta: -15.0},
		{name: "forty overdue", delta: -40.0},
		{name: "far future", delta: 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := model.EvaluateDelta(tt.delta)
			if tt.want == nil {
				assert.False(t, ok, "unexpected alert %+v", got)

				return
			}

			assert.True(t, ok)
			assert.Equal(t, *tt.want, got)
		})
	}
}

func TestEvaluate(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	entry := now.Add(-time.Hour)
	exit := now.Add(10 * time.Minute)

	slot := slotModel.Slot{
		ID:               "A1F1S1",
		Status:           slotModel.StatusOccupied,
		VehicleID:        shared.Ptr("B1"),
		HolderContact:    shared.Ptr("b1@example.com"),
		EntryTime:        &entry,
		ExpectedExitTime: &exit,
	}

	got, ok := model.Evaluate(slot, now)
	assert.True(t, ok)
	assert.Equal(t, model.KindTenMinuteWarning, got.Kind)

	_, ok = model.Evaluate(slotModel.Slot{ID: "A1F1S2", Status: slotModel.StatusEmpty}, now)
	assert.False(t, ok)

	partial := slot
	partial.HolderContact = nil
	_, ok = model.Evaluate(partial, now)
	assert.False(t, ok)
}

func TestAlertMessage(t *testing.T) {
	tests := []struct {
		alert model.Alert
		want  string
	}{
		{model.Alert{Kind: model.KindTenMinuteWarning}, "Reminder: Your slot A1F2S3 will expire in 10 minutes."},
		{model.Alert{Kind: model.KindFinalWarning, Minutes: 2}, "Final warning: Your slot A1F2S3 will expire in 2 minutes."},
		{model.Alert{Kind: model.KindExpired}, "Notice: Your slot A1F2S3 has now expired."},
		{model.Alert{Kind: model.KindOverdueReminder, Minutes: 20}, "Reminder: Your slot A1F2S3 expired 20 minutes ago."},
		{model.Alert{}, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.alert.Message("A1F2S3"))
	}
}

func TestFormatOverdue(t *testing.T) {
	assert.Equal(t, "Less than a minute overdue", model.FormatOverdue(30*time.Second))
	assert.Equal(t, "5m overdue", model.FormatOverdue(5*time.Minute+59*time.Second))
	assert.Equal(t, "1h 25m overdue", model.FormatOverdue(85*time.Minute))
	assert.Equal(t, "2h 0m overdue", model.FormatOverdue(2*time.Hour))
}
