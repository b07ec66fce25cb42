package ethereum_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/messaging"
	mockspkg "github.com/inorbyt/chain-sync/internal/mocks"
	ethprovider "github.com/inorbyt/chain-sync/internal/providers/ethereum"
)

const secondContract = "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"

type fakeSubscription struct {
	errCh chan error
	once  sync.Once
	done  chan struct{}
}

func newFakeSubscription() *fakeSubscription {
	return &fakeSubscription{errCh: make(chan error, 1), done: make(chan struct{})}
}

func (s *fakeSubscription) Unsubscribe() {
	s.once.Do(func() { close(s.done) })
}

func (s *fakeSubscription) Err() <-chan error {
	return s.errCh
}

type testSubscriberMocks struct {
	ctrl   *gomock.Controller
	client *mockspkg.MockEthereumClient
	store  *mockspkg.MockStore
	clock  *mockspkg.MockClock
	ticker *mockspkg.MockTicker
	tickCh chan time.Time
}

func setupTestSubscriber(t *testing.T) (*testSubscriberMocks, messaging.Subscriber) {
	ctrl := gomock.NewController(t)
	mocks := &testSubscriberMocks{
		ctrl:   ctrl,
		client: mockspkg.NewMockEthereumClient(ctrl),
		store:  mockspkg.NewMockStore(ctrl),
		clock:  mockspkg.NewMockClock(ctrl),
		ticker: mockspkg.NewMockTicker(ctrl),
		tickCh: make(chan time.Time),
	}

	mocks.clock.EXPECT().NewTicker(time.Minute).Return(mocks.ticker).AnyTimes()
	mocks.ticker.EXPECT().C().Return((<-chan time.Time)(mocks.tickCh)).AnyTimes()
	mocks.ticker.EXPECT().Stop().AnyTimes()

	// every log parses into a price update carrying its position
	mocks.client.EXPECT().
		ParseEventLog(gomock.Any()).
		DoAndReturn(func(vLog types.Log) (*domain.ChainEvent, error) {
			return &domain.ChainEvent{
				Chain:           domain.ChainBaseMainnet,
				EventType:       domain.EventTypePriceUpdate,
				BlockNumber:     vLog.BlockNumber,
				TransactionHash: vLog.TxHash.Hex(),
				LogIndex:        vLog.Index,
			}, nil
		}).
		AnyTimes()

	sub := ethprovider.NewSubscriber(ethprovider.Config{
		ChainID:                 domain.ChainBaseMainnet,
		BackfillBatchBlocks:     4,
		ContractRefreshInterval: time.Minute,
	}, mocks.client, mocks.store, mocks.clock)

	return mocks, sub
}

func blockLog(block uint64) types.Log {
	return types.Log{
		Address:     common.HexToAddress(testContract),
		BlockNumber: block,
		TxHash:      common.BigToHash(common.Big1),
	}
}

func TestSubscribeEvents_BackfillThenStream(t *testing.T) {
	mocks, sub := setupTestSubscriber(t)

	fakeSub := newFakeSubscription()
	logsCh := make(chan chan<- types.Log, 1)

	mocks.store.EXPECT().
		GetDeployedContractAddresses(gomock.Any()).
		Return([]string{testContract}, nil)
	mocks.client.EXPECT().
		SubscribeFilterLogs(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
			assert.Equal(t, []common.Address{common.HexToAddress(testContract)}, q.Addresses)
			assert.Len(t, q.Topics, 1)
			assert.Equal(t, ethprovider.EventTopics(), q.Topics[0])
			logsCh <- ch
			return fakeSub, nil
		})
	mocks.client.EXPECT().LatestBlock(gomock.Any()).Return(uint64(105), nil)

	var ranges [][2]uint64
	mocks.client.EXPECT().
		FilterLogs(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
			ranges = append(ranges, [2]uint64{q.FromBlock.Uint64(), q.ToBlock.Uint64()})
			return []types.Log{blockLog(q.FromBlock.Uint64())}, nil
		}).
		Times(2)

	events := make(chan domain.ChainEvent, 10)
	handler := func(event domain.ChainEvent) error {
		events <- event
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- sub.SubscribeEvents(ctx, 100, handler)
	}()

	assert.Equal(t, uint64(100), (<-events).BlockNumber)
	assert.Equal(t, uint64(104), (<-events).BlockNumber)
	assert.Equal(t, [][2]uint64{{100, 103}, {104, 105}}, ranges)

	ch := <-logsCh
	// block 105 was covered by the backfill
	ch <- blockLog(105)
	ch <- types.Log{BlockNumber: 106, Removed: true}
	ch <- blockLog(106)
	assert.Equal(t, uint64(106), (<-events).BlockNumber)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Empty(t, events)

	select {
	case <-fakeSub.done:
	default:
		t.Fatal("subscription was not closed")
	}
}

func TestSubscribeEvents_HandlerError(t *testing.T) {
	mocks, sub := setupTestSubscriber(t)

	mocks.store.EXPECT().
		GetDeployedContractAddresses(gomock.Any()).
		Return([]string{testContract}, nil)
	mocks.client.EXPECT().
		SubscribeFilterLogs(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(newFakeSubscription(), nil)
	mocks.client.EXPECT().LatestBlock(gomock.Any()).Return(uint64(10), nil)
	mocks.client.EXPECT().
		FilterLogs(gomock.Any(), gomock.Any()).
		Return([]types.Log{blockLog(10)}, nil)

	publishErr := errors.New("nats unavailable")
	err := sub.SubscribeEvents(context.Background(), 10, func(domain.ChainEvent) error {
		return publishErr
	})
	assert.ErrorIs(t, err, publishErr)
}

func TestSubscribeEvents_SubscriptionError(t *testing.T) {
	mocks, sub := setupTestSubscriber(t)

	fakeSub := newFakeSubscription()
	fakeSub.errCh <- errors.New("websocket closed")

	mocks.store.EXPECT().
		GetDeployedContractAddresses(gomock.Any()).
		Return([]string{testContract}, nil)
	mocks.client.EXPECT().
		SubscribeFilterLogs(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(fakeSub, nil)
	mocks.client.EXPECT().LatestBlock(gomock.Any()).Return(uint64(10), nil)

	err := sub.SubscribeEvents(context.Background(), 0, func(domain.ChainEvent) error { return nil })
	assert.ErrorContains(t, err, "websocket closed")
}

func TestSubscribeEvents_ResubscribesWhenContractsChange(t *testing.T) {
	mocks, sub := setupTestSubscriber(t)

	firstSub := newFakeSubscription()
	secondSub := newFakeSubscription()
	resubscribed := make(chan struct{})

	gomock.InOrder(
		mocks.store.EXPECT().
			GetDeployedContractAddresses(gomock.Any()).
			Return([]string{testContract}, nil),
		mocks.store.EXPECT().
			GetDeployedContractAddresses(gomock.Any()).
			Return([]string{testContract, secondContract}, nil).
			Times(2),
	)
	gomock.InOrder(
		mocks.client.EXPECT().
			SubscribeFilterLogs(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(firstSub, nil),
		mocks.client.EXPECT().
			SubscribeFilterLogs(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, q ethereum.FilterQuery, _ chan<- types.Log) (ethereum.Subscription, error) {
				assert.Len(t, q.Addresses, 2)
				return secondSub, nil
			}),
	)
	gomock.InOrder(
		mocks.client.EXPECT().LatestBlock(gomock.Any()).Return(uint64(200), nil),
		mocks.client.EXPECT().LatestBlock(gomock.Any()).Return(uint64(201), nil),
	)
	mocks.client.EXPECT().
		FilterLogs(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
			assert.Equal(t, uint64(201), q.FromBlock.Uint64())
			assert.Equal(t, uint64(201), q.ToBlock.Uint64())
			close(resubscribed)
			return nil, nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- sub.SubscribeEvents(ctx, 0, func(domain.ChainEvent) error { return nil })
	}()

	mocks.tickCh <- time.Now()
	<-resubscribed

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	select {
	case <-firstSub.done:
	default:
		t.Fatal("first subscription was not closed")
	}
}

func TestSubscribeEvents_WaitsForContracts(t *testing.T) {
	mocks, sub := setupTestSubscriber(t)

	after := make(chan time.Time, 1)
	after <- time.Now()

	gomock.InOrder(
		mocks.store.EXPECT().
			GetDeployedContractAddresses(gomock.Any()).
			Return(nil, nil),
		mocks.clock.EXPECT().
			After(time.Minute).
			Return((<-chan time.Time)(after)),
		mocks.store.EXPECT().
			GetDeployedContractAddresses(gomock.Any()).
			Return(nil, errors.New("db down")),
	)

	err := sub.SubscribeEvents(context.Background(), 0, func(domain.ChainEvent) error { return nil })
	assert.ErrorContains(t, err, "db down")
}

func TestGetLatestBlock(t *testing.T) {
	mocks, sub := setupTestSubscriber(t)

	mocks.client.EXPECT().LatestBlock(gomock.Any()).Return(uint64(42), nil)

	block, err := sub.GetLatestBlock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(42), block)

	mocks.client.EXPECT().Close()
	sub.Close()
}
