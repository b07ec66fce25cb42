package bridge_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inorbyt/chain-sync/internal/adapter"
	"github.com/inorbyt/chain-sync/internal/bridge"
	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/ingestor"
	"github.com/inorbyt/chain-sync/internal/logger"
	mockspkg "github.com/inorbyt/chain-sync/internal/mocks"
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

type testBridgeMocks struct {
	ctrl           *gomock.Controller
	natsJS         *mockspkg.MockNatsJetStream
	natsConn       *mockspkg.MockNatsConn
	jetStream      *mockspkg.MockJetStream
	consumer       *mockspkg.MockNatsConsumer
	consumeContext *mockspkg.MockConsumeContext
	ingestor       *mockspkg.MockIngestor
}

func setupTestBridge(t *testing.T) *testBridgeMocks {
	ctrl := gomock.NewController(t)
	return &testBridgeMocks{
		ctrl:           ctrl,
		natsJS:         mockspkg.NewMockNatsJetStream(ctrl),
		natsConn:       mockspkg.NewMockNatsConn(ctrl),
		jetStream:      mockspkg.NewMockJetStream(ctrl),
		consumer:       mockspkg.NewMockNatsConsumer(ctrl),
		consumeContext: mockspkg.NewMockConsumeContext(ctrl),
		ingestor:       mockspkg.NewMockIngestor(ctrl),
	}
}

func testConfig() bridge.Config {
	return bridge.Config{
		URL:             "nats://localhost:4222",
		StreamName:      "CHAIN_EVENTS",
		ConsumerName:    "event-bridge",
		MaxReconnects:   10,
		ReconnectWait:   time.Second,
		ConnectionName:  "test-bridge",
		AckWaitTimeout:  30 * time.Second,
		MaxDeliver:      5,
		WorkerPoolSize:  2,
		WorkerQueueSize: 10,
	}
}

func newTestBridge(t *testing.T, mocks *testBridgeMocks) bridge.Bridge {
	cfg := testConfig()
	mocks.natsJS.EXPECT().
		Connect(cfg.URL, gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)

	b, err := bridge.NewBridge(cfg, mocks.natsJS, mocks.ingestor, adapter.NewJSON())
	require.NoError(t, err)
	return b
}

// startBridge runs the bridge and returns the captured message handler and a
// function that stops the bridge and waits for Run to return.
func startBridge(t *testing.T, mocks *testBridgeMocks, b bridge.Bridge) (adapter.MessageHandler, func()) {
	handlerReady := make(chan adapter.MessageHandler, 1)

	mocks.jetStream.EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), "CHAIN_EVENTS", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, cfg jetstream.ConsumerConfig) (adapter.Consumer, error) {
			assert.Equal(t, "event-bridge", cfg.Durable)
			assert.Equal(t, "chain.events.>", cfg.FilterSubject)
			assert.Equal(t, jetstream.AckExplicitPolicy, cfg.AckPolicy)
			return mocks.consumer, nil
		})
	mocks.consumer.EXPECT().
		Info(gomock.Any()).
		Return(&jetstream.ConsumerInfo{Name: "event-bridge"}, nil)
	mocks.consumer.EXPECT().
		Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(handler adapter.MessageHandler, opts ...jetstream.PullConsumeOpt) (adapter.ConsumeContext, error) {
			handlerReady <- handler
			return mocks.consumeContext, nil
		})
	mocks.consumeContext.EXPECT().Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- b.Run(ctx)
	}()

	var handler adapter.MessageHandler
	select {
	case handler = <-handlerReady:
	case <-time.After(2 * time.Second):
		t.Fatal("bridge did not start consuming")
	}

	return handler, func() {
		cancel()
		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(2 * time.Second):
			t.Fatal("bridge did not stop")
		}
	}
}

func newMessage(mocks *testBridgeMocks, data []byte) *mockspkg.MockJetStreamMessage {
	msg := mockspkg.NewMockJetStreamMessage(mocks.ctrl)
	msg.EXPECT().Data().Return(data).AnyTimes()
	msg.EXPECT().Subject().Return("chain.events.eip155_8453.TokenTransfer").AnyTimes()
	msg.EXPECT().Metadata().Return(&jetstream.MsgMetadata{NumDelivered: 1}, nil).AnyTimes()
	return msg
}

func testEvent() domain.ChainEvent {
	return domain.ChainEvent{
		Chain:           domain.ChainBaseMainnet,
		EventType:       domain.EventTypeTokenTransfer,
		ContractAddress: "0x396343362be2a4da1ce0c1c210945346fb82aa49",
		BlockNumber:     100,
		TransactionHash: "0xabababababababababababababababababababababababababababababababab",
		LogIndex:        3,
		Data:            json.RawMessage(`{"from":"0x0000000000000000000000000000000000000000","to":"0x1111111111111111111111111111111111111111","value":"5"}`),
	}
}

func TestBridge_NewBridge_ConnectError(t *testing.T) {
	mocks := setupTestBridge(t)
	cfg := testConfig()
	mocks.natsJS.EXPECT().Connect(cfg.URL, gomock.Any()).Return(nil, nil, errors.New("no servers"))

	b, err := bridge.NewBridge(cfg, mocks.natsJS, mocks.ingestor, adapter.NewJSON())
	assert.Error(t, err)
	assert.Nil(t, b)
	assert.Contains(t, err.Error(), "failed to connect to NATS")
}

func TestBridge_Run_CreateConsumerError(t *testing.T) {
	mocks := setupTestBridge(t)
	b := newTestBridge(t, mocks)

	mocks.jetStream.EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, assert.AnError)

	err := b.Run(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create/update consumer")
}

func TestBridge_Run_ConsumeError(t *testing.T) {
	mocks := setupTestBridge(t)
	b := newTestBridge(t, mocks)

	mocks.jetStream.EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(mocks.consumer, nil)
	mocks.consumer.EXPECT().Info(gomock.Any()).Return(&jetstream.ConsumerInfo{Name: "event-bridge"}, nil)
	mocks.consumer.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

	err := b.Run(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create subscription")
}

func TestBridge_HandleMessage(t *testing.T) {
	event := testEvent()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	eventID := uuid.New()

	tests := []struct {
		name    string
		data    []byte
		ingest  func(m *mockspkg.MockIngestor)
		outcome string
	}{
		{
			name: "processed is acked",
			data: data,
			ingest: func(m *mockspkg.MockIngestor) {
				m.EXPECT().Ingest(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, got domain.ChainEvent) (ingestor.IngestResult, error) {
						assert.Equal(t, event.Key(), got.Key())
						return ingestor.IngestResult{Status: ingestor.StatusProcessed, EventID: &eventID}, nil
					})
			},
			outcome: "ack",
		},
		{
			name: "duplicate is acked",
			data: data,
			ingest: func(m *mockspkg.MockIngestor) {
				m.EXPECT().Ingest(gomock.Any(), gomock.Any()).
					Return(ingestor.IngestResult{Status: ingestor.StatusDuplicate}, nil)
			},
			outcome: "ack",
		},
		{
			name: "stored handler failure is acked",
			data: data,
			ingest: func(m *mockspkg.MockIngestor) {
				m.EXPECT().Ingest(gomock.Any(), gomock.Any()).
					Return(ingestor.IngestResult{Status: ingestor.StatusFailed, EventID: &eventID}, domain.ErrTokenNotFound)
			},
			outcome: "ack",
		},
		{
			name: "invalid event is terminated",
			data: data,
			ingest: func(m *mockspkg.MockIngestor) {
				m.EXPECT().Ingest(gomock.Any(), gomock.Any()).
					Return(ingestor.IngestResult{}, domain.ErrInvalidEvent)
			},
			outcome: "term",
		},
		{
			name:    "undecodable payload is terminated",
			data:    []byte("{not json"),
			ingest:  func(m *mockspkg.MockIngestor) {},
			outcome: "term",
		},
		{
			name: "store failure is redelivered",
			data: data,
			ingest: func(m *mockspkg.MockIngestor) {
				m.EXPECT().Ingest(gomock.Any(), gomock.Any()).
					Return(ingestor.IngestResult{}, errors.New("connection reset"))
			},
			outcome: "nak",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := setupTestBridge(t)
			b := newTestBridge(t, mocks)
			tt.ingest(mocks.ingestor)

			handled := make(chan string, 1)
			msg := newMessage(mocks, tt.data)
			switch tt.outcome {
			case "ack":
				msg.EXPECT().Ack().DoAndReturn(func() error { handled <- "ack"; return nil })
			case "nak":
				msg.EXPECT().NakWithDelay(gomock.Any()).DoAndReturn(func(time.Duration) error { handled <- "nak"; return nil })
			case "term":
				msg.EXPECT().Term().DoAndReturn(func() error { handled <- "term"; return nil })
			}

			handler, stop := startBridge(t, mocks, b)
			handler(msg)

			select {
			case got := <-handled:
				assert.Equal(t, tt.outcome, got)
			case <-time.After(2 * time.Second):
				t.Fatal("message was not acknowledged")
			}

			stop()
		})
	}
}

func TestBridge_Close(t *testing.T) {
	mocks := setupTestBridge(t)
	b := newTestBridge(t, mocks)

	mocks.natsConn.EXPECT().Close()
	b.Close()
}
