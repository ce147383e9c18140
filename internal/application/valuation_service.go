package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/valoris-se/valoris-api/internal/domain/entity"
	repo "github.com/valoris-se/valoris-api/internal/domain/repository"
)

type ValuationService struct {
	Repo   repo.ValuationRepository
	Logger *logrus.Logger
}

func NewValuationService(r repo.ValuationRepository, logger *logrus.Logger) *ValuationService {
	return &ValuationService{Repo: r, Logger: logger}
}

type CreateValuationInput struct {
	Address      string
	City         string
	PropertyType entity.PropertyType
	LivingArea   float64
	Rooms        int
	YearBuilt    *int
	Features     entity.Features
}

func (s *ValuationService) Create(ctx context.Context, userID string, in CreateValuationInput) (*entity.Valuation, error) {
	if in.Address == "" || !in.PropertyType.Valid() || in.LivingArea <= 0 {
		return nil, entity.Validationf("address, propertyType and livingArea are required")
	}
	rooms := in.Rooms
	if rooms <= 0 {
		rooms = 1
	}

	res := EstimatePrice(EstimateInput{
		PropertyType: in.PropertyType,
		LivingArea:   in.LivingArea,
		Rooms:        rooms,
		YearBuilt:    in.YearBuilt,
		Features:     in.Features,
	})

	v := &entity.Valuation{
		UserID:       userID,
		Address:      in.Address,
		City:         in.City,
		PropertyType: in.PropertyType,
		LivingArea:   in.LivingArea,
		Rooms:        rooms,
		YearBuilt:    in.YearBuilt,
		Features:     in.Features,
		EstimateSek:  res.EstimateSek,
		LowSek:       res.LowSek,
		HighSek:      res.HighSek,
		Confidence:   res.Confidence,
		Status:       entity.ValuationDone,
	}
	if err := s.Repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// UpdateFeatures replaces the feature set and recomputes every derived
// field from the stored base attributes. Repeating the same patch is
// idempotent.
func (s *ValuationService) UpdateFeatures(ctx context.Context, userID, id string, features entity.Features) (*entity.Valuation, error) {
	v, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.UserID != userID {
		return nil, entity.ErrForbidden
	}

	v.Features = features
	res := EstimatePrice(EstimateInput{
		PropertyType: v.PropertyType,
		LivingArea:   v.LivingArea,
		Rooms:        v.Rooms,
		YearBuilt:    v.YearBuilt,
		Features:     features,
	})
	v.EstimateSek = res.EstimateSek
	v.LowSek = res.LowSek
	v.HighSek = res.HighSek
	v.Confidence = res.Confidence

	if err := s.Repo.UpdateFeatures(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *ValuationService) ListMine(ctx context.Context, userID string) ([]*entity.Valuation, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *ValuationService) Get(ctx context.Context, userID, id string) (*entity.Valuation, error) {
	v, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.UserID != userID {
		return nil, entity.ErrForbidden
	}
	return v, nil
}
