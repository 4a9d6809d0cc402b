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

type ConfirmationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OutcomeMapper
}

func NewConfirmationRepository(db *gorm.DB) contract.ConfirmationRepository {
	return &ConfirmationRepositoryImpl{
		db:     db,
		mapper: mapper.NewOutcomeMapper(),
	}
}

func (r *ConfirmationRepositoryImpl) Create(ctx context.Context, confirmation *entity.Confirmation) error {
	m := r.mapper.ConfirmationToModel(confirmation)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*confirmation = *r.mapper.ConfirmationToEntity(m)
	return nil
}

func (r *ConfirmationRepositoryImpl) FindByToken(ctx context.Context, token string) (*entity.Confirmation, error) {
	var m model.Confirmation
	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ConfirmationToEntity(&m), nil
}

func (r *ConfirmationRepositoryImpl) MarkConsumed(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Confirmation{}).
		Where("id = ?", id).
		Update("confirmed_at", at).Error
}
