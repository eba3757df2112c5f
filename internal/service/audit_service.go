package service

import (
	"context"
	"encoding/json"

	"github.com/iamsashka/Kursach/internal/model"
	"github.com/iamsashka/Kursach/internal/repository"
	"github.com/iamsashka/Kursach/pkg/logger"
	"go.uber.org/zap"
)

// AuditService appends before/after snapshots of entity changes. Recording is
// best-effort: a failed audit write is logged and never fails the business
// operation that triggered it.
type AuditService struct {
	store repository.Store
}

// NewAuditService creates an audit service over the given store
func NewAuditService(store repository.Store) *AuditService {
	return &AuditService{store: store}
}

// Record appends one audit entry. oldValue/newValue are marshalled to JSON;
// nil values produce empty snapshots.
func (s *AuditService) Record(ctx context.Context, actor, action, entityType string, entityID uint, oldValue, newValue interface{}) {
	s.recordTo(ctx, s.store, actor, action, entityType, entityID, oldValue, newValue)
}

// RecordTx appends one audit entry inside an existing transaction scope
func (s *AuditService) RecordTx(ctx context.Context, tx repository.Store, actor, action, entityType string, entityID uint, oldValue, newValue interface{}) {
	s.recordTo(ctx, tx, actor, action, entityType, entityID, oldValue, newValue)
}

func (s *AuditService) recordTo(ctx context.Context, store repository.Store, actor, action, entityType string, entityID uint, oldValue, newValue interface{}) {
	entry := &model.AuditLog{
		Actor:      actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		OldValue:   marshalSnapshot(ctx, oldValue),
		NewValue:   marshalSnapshot(ctx, newValue),
	}

	if err := store.AuditLogs().Create(ctx, entry); err != nil {
		logger.FromContext(ctx).Error("Failed to record audit entry",
			zap.String("action", action),
			zap.String("entity_type", entityType),
			zap.Uint("entity_id", entityID),
			zap.Error(err))
	}
}

// List returns audit entries, newest first
func (s *AuditService) List(ctx context.Context, filter repository.AuditFilter) ([]model.AuditLog, int64, error) {
	return s.store.AuditLogs().List(ctx, filter)
}

func marshalSnapshot(ctx context.Context, value interface{}) string {
	if value == nil {
		return ""
	}
	data, err := json.Marshal(value)
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to marshal audit snapshot", zap.Error(err))
		return ""
	}
	return string(data)
}
