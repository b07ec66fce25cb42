package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inorbyt/chain-sync/internal/store/schema"
)

const maxEventPageSize = 100

// InsertBlockchainEvent inserts the event unless (transaction_hash, log_index) already exists
func (s *pgStore) InsertBlockchainEvent(ctx context.Context, event schema.BlockchainEvent) (*schema.BlockchainEvent, bool, error) {
	event.ID = newID()
	event.Processed = false
	event.Attempts = 0
	event.ProcessedAt = nil

	// The unique constraint decides the race between concurrent deliveries of the same log
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "transaction_hash"}, {Name: "log_index"}},
		DoNothing: true,
	}).Create(&event)
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to insert blockchain event: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, false, nil
	}

	return &event, true, nil
}

// MarkBlockchainEventProcessed flags the event as handled
func (s *pgStore) MarkBlockchainEventProcessed(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	err := s.db.WithContext(ctx).
		Model(&schema.BlockchainEvent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"processed":    true,
			"processed_at": now,
			"last_error":   nil,
			"updated_at":   now,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark blockchain event processed: %w", err)
	}

	return nil
}

// RecordBlockchainEventFailure increments the attempt counter and stores the error message
func (s *pgStore) RecordBlockchainEventFailure(ctx context.Context, id uuid.UUID, errMsg string) error {
	err := s.db.WithContext(ctx).
		Model(&schema.BlockchainEvent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": errMsg,
			"updated_at": time.Now().UTC(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to record blockchain event failure: %w", err)
	}

	return nil
}

// GetUnprocessedBlockchainEvents returns up to limit unprocessed events, oldest first
func (s *pgStore) GetUnprocessedBlockchainEvents(ctx context.Context, limit int, maxAttempts int) ([]schema.BlockchainEvent, error) {
	if limit <= 0 {
		return []schema.BlockchainEvent{}, nil
	}

	query := s.db.WithContext(ctx).
		Where("processed = ?", false)
	if maxAttempts > 0 {
		query = query.Where("attempts < ?", maxAttempts)
	}

	var events []schema.BlockchainEvent
	err := query.
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get unprocessed blockchain events: %w", err)
	}

	return events, nil
}

// GetBlockchainEvents lists events matching the filter, newest first, with the total count
func (s *pgStore) GetBlockchainEvents(ctx context.Context, filter BlockchainEventFilter) ([]schema.BlockchainEvent, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.BlockchainEvent{})

	if filter.ContractAddress != "" {
		query = query.Where("contract_address = ?", filter.ContractAddress)
	}
	if filter.EventType != "" {
		query = query.Where("event_type = ?", filter.EventType)
	}
	if filter.Processed != nil {
		query = query.Where("processed = ?", *filter.Processed)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count blockchain events: %w", err)
	}

	var events []schema.BlockchainEvent
	err := query.
		Order("created_at DESC, id DESC").
		Limit(normalizeLimit(filter.Limit, maxEventPageSize)).
		Offset(int(filter.Offset)). //nolint:gosec,G115
		Find(&events).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get blockchain events: %w", err)
	}

	return events, uint64(total), nil //nolint:gosec,G115
}
