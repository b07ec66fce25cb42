package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/inorbyt/chain-sync/internal/adapter"
	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/logger"
	"github.com/inorbyt/chain-sync/internal/messaging"
)

const (
	DEFAULT_BACKFILL_BATCH_BLOCKS     = 2000
	DEFAULT_CONTRACT_REFRESH_INTERVAL = time.Minute
)

// errContractsChanged restarts the subscription with the new address set
var errContractsChanged = errors.New("followed contracts changed")

// ContractSource lists the token contracts to follow
type ContractSource interface {
	GetDeployedContractAddresses(ctx context.Context) ([]string, error)
}

// Config holds the configuration for Ethereum subscription
type Config struct {
	ChainID                 domain.Chain // e.g., "eip155:8453" for Base mainnet
	BackfillBatchBlocks     uint64
	ContractRefreshInterval time.Duration
}

type ethSubscriber struct {
	client    EthereumClient
	contracts ContractSource
	clock     adapter.Clock
	cfg       Config
}

// NewSubscriber creates a new Ethereum event subscriber
func NewSubscriber(cfg Config, ethereumClient EthereumClient, contracts ContractSource, clock adapter.Clock) messaging.Subscriber {
	if cfg.BackfillBatchBlocks == 0 {
		cfg.BackfillBatchBlocks = DEFAULT_BACKFILL_BATCH_BLOCKS
	}
	if cfg.ContractRefreshInterval <= 0 {
		cfg.ContractRefreshInterval = DEFAULT_CONTRACT_REFRESH_INTERVAL
	}

	return &ethSubscriber{
		client:    ethereumClient,
		contracts: contracts,
		clock:     clock,
		cfg:       cfg,
	}
}

// SubscribeEvents backfills the followed contracts from fromBlock and then streams
// their new logs. The address set is reloaded every refresh interval; when it
// changes the subscription restarts from the last block seen.
func (s *ethSubscriber) SubscribeEvents(ctx context.Context, fromBlock uint64, handler messaging.EventHandler) error {
	next := fromBlock
	for {
		addresses, err := s.loadContracts(ctx)
		if err != nil {
			return err
		}

		if len(addresses) == 0 {
			logger.InfoCtx(ctx, "No deployed token contracts yet, waiting",
				zap.Duration("retryIn", s.cfg.ContractRefreshInterval))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-s.clock.After(s.cfg.ContractRefreshInterval):
			}
			continue
		}

		next, err = s.follow(ctx, addresses, next, handler)
		if errors.Is(err, errContractsChanged) {
			logger.InfoCtx(ctx, "Token contracts changed, resubscribing", zap.Uint64("fromBlock", next))
			continue
		}
		return err
	}
}

// follow runs one subscription over a fixed address set. It returns the block to
// resume from together with errContractsChanged when the set must be reloaded.
func (s *ethSubscriber) follow(ctx context.Context, addresses []common.Address, fromBlock uint64, handler messaging.EventHandler) (uint64, error) {
	query := ethereum.FilterQuery{
		Addresses: addresses,
		Topics:    [][]common.Hash{EventTopics()},
	}

	// subscribe before backfilling so no log falls between the two
	logs := make(chan types.Log)
	sub, err := s.client.SubscribeFilterLogs(ctx, query, logs)
	if err != nil {
		return fromBlock, fmt.Errorf("failed to subscribe to filter logs: %w", err)
	}
	defer func() {
		logger.InfoCtx(ctx, "Unsubscribing from ethereum events logs")
		sub.Unsubscribe()
	}()

	latest, err := s.client.LatestBlock(ctx)
	if err != nil {
		return fromBlock, err
	}

	if fromBlock == 0 {
		fromBlock = latest + 1
	}
	if fromBlock <= latest {
		if err := s.backfill(ctx, query, fromBlock, latest, handler); err != nil {
			return fromBlock, err
		}
	}
	next := max(fromBlock, latest+1)

	ticker := s.clock.NewTicker(s.cfg.ContractRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return next, ctx.Err()

		case err := <-sub.Err():
			return next, fmt.Errorf("subscription error: %w", err)

		case <-ticker.C():
			current, err := s.loadContracts(ctx)
			if err != nil {
				logger.WarnCtx(ctx, "Failed to refresh token contracts", zap.Error(err))
				continue
			}
			if !slices.Equal(current, addresses) {
				return next, errContractsChanged
			}

		case vLog := <-logs:
			// already emitted by the backfill
			if vLog.BlockNumber < next {
				continue
			}
			if err := s.emit(ctx, vLog, handler); err != nil {
				return next, err
			}
			// the rest of this block may still arrive after a resubscribe
			next = vLog.BlockNumber
		}
	}
}

// backfill emits the logs of [from, to] in batches of BackfillBatchBlocks
func (s *ethSubscriber) backfill(ctx context.Context, query ethereum.FilterQuery, from, to uint64, handler messaging.EventHandler) error {
	logger.InfoCtx(ctx, "Backfilling token contract logs",
		zap.Uint64("fromBlock", from),
		zap.Uint64("toBlock", to))

	for start := from; start <= to; start += s.cfg.BackfillBatchBlocks {
		end := min(start+s.cfg.BackfillBatchBlocks-1, to)

		batchQuery := query
		batchQuery.FromBlock = new(big.Int).SetUint64(start)
		batchQuery.ToBlock = new(big.Int).SetUint64(end)

		logs, err := s.client.FilterLogs(ctx, batchQuery)
		if err != nil {
			return fmt.Errorf("failed to backfill blocks %d-%d: %w", start, end, err)
		}

		for _, vLog := range logs {
			if err := s.emit(ctx, vLog, handler); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *ethSubscriber) emit(ctx context.Context, vLog types.Log, handler messaging.EventHandler) error {
	if vLog.Removed {
		logger.WarnCtx(ctx, "Skipping log removed by a reorg",
			zap.String("txHash", vLog.TxHash.Hex()),
			zap.Uint("logIndex", vLog.Index))
		return nil
	}

	event, err := s.client.ParseEventLog(vLog)
	if err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("message", "Error parsing log"),
			zap.String("txHash", vLog.TxHash.Hex()),
			zap.Uint("logIndex", vLog.Index))
		return nil
	}
	if event == nil {
		return nil
	}

	if err := handler(*event); err != nil {
		return fmt.Errorf("failed to handle event %s: %w", event.Key(), err)
	}
	return nil
}

func (s *ethSubscriber) loadContracts(ctx context.Context) ([]common.Address, error) {
	raw, err := s.contracts.GetDeployedContractAddresses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load token contracts: %w", err)
	}

	addresses := make([]common.Address, 0, len(raw))
	for _, a := range raw {
		if !domain.IsValidAddress(a) {
			logger.WarnCtx(ctx, "Ignoring invalid token contract address", zap.String("address", a))
			continue
		}
		addresses = append(addresses, common.HexToAddress(a))
	}
	slices.SortFunc(addresses, func(a, b common.Address) int { return a.Cmp(b) })

	return addresses, nil
}

// GetLatestBlock returns the latest block number
func (s *ethSubscriber) GetLatestBlock(ctx context.Context) (uint64, error) {
	return s.client.LatestBlock(ctx)
}

// Close closes the connection
func (s *ethSubscriber) Close() {
	if s.client == nil {
		return
	}

	s.client.Close()
	logger.Info("Ethereum WebSocket connection closed")
}
