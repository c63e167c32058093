package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"smartpark/infras/postgres"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsPermanent(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "not null violation", err: &pq.Error{Code: "23502"}, expected: true},
		{name: "invalid text representation", err: &pq.Error{Code: "22P02"}, expected: true},
		{name: "undefined table", err: &pq.Error{Code: "42P01"}, expected: false},
		{name: "wrapped rejection", err: fmt.Errorf("failed to insert data (session): %w", &pq.Error{Code: "23514"}), expected: true},
		{name: "admin shutdown", err: &pq.Error{Code: "57P01"}, expected: false},
		{name: "connection failure", err: &pq.Error{Code: "08006"}, expected: false},
		{name: "plain error", err: errors.New("dial tcp: connection refused"), expected: false},
		{name: "nil", err: nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, postgres.IsPermanent(tt.err))
		})
	}
}

func TestPing_NotConnected(t *testing.T) {
	var conn *postgres.Connection

	assert.Error(t, conn.Ping(context.Background()))
	assert.Error(t, (&postgres.Connection{}).Ping(context.Background()))
}
