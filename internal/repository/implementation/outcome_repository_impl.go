package implementation

import (
	"context"
	"errors"
	"time"

	"ats-scheduler-be/internal/entity"
	"ats-scheduler-be/internal/mapper"
	"ats-scheduler-be/internal/model"
	"ats-scheduler-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OutcomeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OutcomeMapper
}

func NewOutcomeRepository(db *gorm.DB) contract.OutcomeRepository {
	return &OutcomeRepositoryImpl{
		db:     db,
		mapper: mapper.NewOutcomeMapper(),
	}
}

func (r *OutcomeRepositoryImpl) Create(ctx context.Context, outcome *entity.DispatchOutcome) error {
	m := r.mapper.ToModel(outcome)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*outcome = *r.mapper.ToEntity(m)
	return nil
}

func (r *OutcomeRepositoryImpl) Update(ctx context.Context, outcome *entity.DispatchOutcome) error {
	m := r.mapper.ToModel(outcome)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*outcome = *r.mapper.ToEntity(m)
	return nil
}

func (r *OutcomeRepositoryImpl) FindLatestByEmail(ctx context.Context, email string) (*entity.DispatchOutcome, error) {
	var m model.EmailHistory
	err := r.db.WithContext(ctx).
		Where("candidate_email = ?", email).
		Order("sent_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *OutcomeRepositoryImpl) FindRecent(ctx context.Context, limit int) ([]*entity.DispatchOutcome, error) {
	var models []model.EmailHistory
	err := r.db.WithContext(ctx).
		Order("sent_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	outcomes := make([]*entity.DispatchOutcome, len(models))
	for i := range models {
		outcomes[i] = r.mapper.ToEntity(&models[i])
	}
	return outcomes, nil
}

func (r *OutcomeRepositoryImpl) FindPendingForReminder(ctx context.Context, from, to time.Time) ([]*entity.DispatchOutcome, error) {
	var models []model.EmailHistory
	err := r.db.WithContext(ctx).
		Where("status NOT IN ?", []string{entity.OutcomeStatusConfirmed, entity.OutcomeStatusDeclined}).
		Where("reminder_count < ?", entity.MaxReminderCount).
		Where("sent_at > ? AND sent_at < ?", from, to).
		Order("sent_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	outcomes := make([]*entity.DispatchOutcome, len(models))
	for i := range models {
		outcomes[i] = r.mapper.ToEntity(&models[i])
	}
	return outcomes, nil
}

func (r *OutcomeRepositoryImpl) IncrementReminder(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.EmailHistory{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reminder_count":   gorm.Expr("reminder_count + 1"),
			"last_reminder_at": at,
		}).Error
}
