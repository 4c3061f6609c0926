package services

import (
	"context"
	"fmt"

	"github.com/justsurfingit/job-agent/internal/models"
	"gorm.io/gorm"
)

// Journal records pipeline events. It is write-mostly; nothing reads it back into session state.
type Journal interface {
	Record(ctx context.Context, event models.RunEvent) error
	Recent(ctx context.Context, sessionID string, limit int) ([]models.RunEvent, error)
}

type JournalService struct {
	DB *gorm.DB
}

func NewJournalService(db *gorm.DB) *JournalService {
	return &JournalService{DB: db}
}

func (s *JournalService) Record(ctx context.Context, event models.RunEvent) error {
	if err := s.DB.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("record %s event: %w", event.EventType, err)
	}
	return nil
}

func (s *JournalService) Recent(ctx context.Context, sessionID string, limit int) ([]models.RunEvent, error) {
	var events []models.RunEvent
	err := s.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id desc").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("load events for session %s: %w", sessionID, err)
	}
	return events, nil
}

// NopJournal is used when no database is configured.
type NopJournal struct{}

func (NopJournal) Record(context.Context, models.RunEvent) error { return nil }

func (NopJournal) Recent(context.Context, string, int) ([]models.RunEvent, error) {
	return []models.RunEvent{}, nil
}
