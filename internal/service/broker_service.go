package service

import (
	"context"
	"fmt"

	"github.com/twatanabe/Asset-Overview-Backend/internal/apperrors"
	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
	"github.com/twatanabe/Asset-Overview-Backend/internal/repository"
)

// BrokerService handles broker-related business logic operations.
type BrokerService struct {
	brokerRepo *repository.BrokerRepository
}

// NewBrokerService creates a new BrokerService with the provided repository dependency.
func NewBrokerService(brokerRepo *repository.BrokerRepository) *BrokerService {
	return &BrokerService{
		brokerRepo: brokerRepo,
	}
}

// GetAllBrokers retrieves all brokers with their cash balances and active fund ids.
func (s *BrokerService) GetAllBrokers(ctx context.Context) ([]model.Broker, error) {
	brokers, err := s.brokerRepo.ListBrokers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveBrokers, err)
	}
	return brokers, nil
}

// GetBroker retrieves a single broker by name.
func (s *BrokerService) GetBroker(ctx context.Context, name string) (model.Broker, error) {
	if name == "" {
		return model.Broker{}, apperrors.ErrEmptyID
	}

	broker, err := s.brokerRepo.GetBroker(ctx, name)
	if err != nil {
		return model.Broker{}, fmt.Errorf("%w: %s", apperrors.ErrBrokerNotFound, name)
	}
	return broker, nil
}
