package kafka_test

import (
	"context"
	"errors"
	"smartpark/infras/kafka"
	"smartpark/infras/kafka/mocks"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type payload struct {
	Address string `json:"address"`
	Area    int    `json:"area"`
}

func TestMessageRoundTrip(t *testing.T) {
	msg := kafka.Message{Key: "driver@example.com", Value: payload{Address: "driver@example.com", Area: 2}}

	raw, err := msg.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("driver@example.com"), raw.Key)
	assert.JSONEq(t, `{"address":"driver@example.com","area":2}`, string(raw.Value))

	decoded, err := kafka.DecodeKafkaMessage[payload](raw)
	require.NoError(t, err)
	assert.Equal(t, payload{Address: "driver@example.com", Area: 2}, decoded)
}

func TestToKafkaMessage_Unmarshalable(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}

func TestDecodeKafkaMessage_Invalid(t *testing.T) {
	_, err := kafka.DecodeKafkaMessage[payload](kafkaGo.Message{Value: []byte("{")})
	assert.Error(t, err)
}

const spoolTopic = "parking.session.spool"

func shortRetries(t *testing.T) {
	t.Helper()
	t.Cleanup(kafka.SetRetryDelays(time.Millisecond, 4*time.Millisecond))
}

func TestConsume_RetriesFailedMessageBeforeFetchingNext(t *testing.T) {
	shortRetries(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := mocks.NewMockMessageReader(gomock.NewController(t))

	first := kafkaGo.Message{Topic: spoolTopic, Offset: 7, Key: []byte("session-7")}
	second := kafkaGo.Message{Topic: spoolTopic, Offset: 8, Key: []byte("session-8")}

	gomock.InOrder(
		reader.EXPECT().FetchMessage(gomock.Any()).Return(first, nil),
		reader.EXPECT().CommitMessages(gomock.Any(), first).Return(nil),
		reader.EXPECT().FetchMessage(gomock.Any()).Return(second, nil),
		reader.EXPECT().CommitMessages(gomock.Any(), second).Return(nil),
		reader.EXPECT().FetchMessage(gomock.Any()).DoAndReturn(func(context.Context) (kafkaGo.Message, error) {
			cancel()

			return kafkaGo.Message{}, context.Canceled
		}),
	)

	var handled []int64

	failures := 2
	handler := func(_ context.Context, msg kafkaGo.Message) error {
		handled = append(handled, msg.Offset)

		if msg.Offset == first.Offset && failures > 0 {
			failures--

			return errors.New("postgres still down")
		}

		return nil
	}

	kafka.ConsumeFrom(ctx, reader, spoolTopic, handler)

	assert.Equal(t, []int64{7, 7, 7, 8}, handled)
}

func TestConsume_StopsWithoutCommitWhenContextEndsDuringRetry(t *testing.T) {
	shortRetries(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := mocks.NewMockMessageReader(gomock.NewController(t))

	msg := kafkaGo.Message{Topic: spoolTopic, Offset: 3}
	reader.EXPECT().FetchMessage(gomock.Any()).Return(msg, nil)

	attempts := 0
	handler := func(context.Context, kafkaGo.Message) error {
		attempts++
		if attempts == 2 {
			cancel()
		}

		return errors.New("postgres still down")
	}

	kafka.ConsumeFrom(ctx, reader, spoolTopic, handler)

	assert.Equal(t, 2, attempts)
}

func TestConsume_FetchErrorIsRetried(t *testing.T) {
	shortRetries(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := mocks.NewMockMessageReader(gomock.NewController(t))

	msg := kafkaGo.Message{Topic: spoolTopic, Offset: 1}

	gomock.InOrder(
		reader.EXPECT().FetchMessage(gomock.Any()).Return(kafkaGo.Message{}, errors.New("broker unreachable")),
		reader.EXPECT().FetchMessage(gomock.Any()).Return(msg, nil),
		reader.EXPECT().CommitMessages(gomock.Any(), msg).Return(nil),
		reader.EXPECT().FetchMessage(gomock.Any()).DoAndReturn(func(context.Context) (kafkaGo.Message, error) {
			cancel()

			return kafkaGo.Message{}, context.Canceled
		}),
	)

	calls := 0
	kafka.ConsumeFrom(ctx, reader, spoolTopic, func(context.Context, kafkaGo.Message) error {
		calls++

		return nil
	})

	assert.Equal(t, 1, calls)
}
