package service

import (
	"context"
	"fmt"
	"math"

	"github.com/twatanabe/Asset-Overview-Backend/internal/apperrors"
	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
	"github.com/twatanabe/Asset-Overview-Backend/internal/repository"
)

// FundService handles fund-related business logic operations. Profit and ROI
// are derived here rather than stored: profit is market value minus capital,
// ROI is profit over capital.
type FundService struct {
	fundRepo   *repository.FundRepository
	brokerRepo *repository.BrokerRepository
}

// NewFundService creates a new FundService with the provided repository dependencies.
func NewFundService(fundRepo *repository.FundRepository, brokerRepo *repository.BrokerRepository) *FundService {
	return &FundService{
		fundRepo:   fundRepo,
		brokerRepo: brokerRepo,
	}
}

// GetActiveFunds retrieves the fund positions selected by all brokers'
// active-fund lists, with profit and ROI filled in.
func (s *FundService) GetActiveFunds(ctx context.Context) ([]model.Fund, error) {
	brokers, err := s.brokerRepo.ListBrokers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveBrokers, err)
	}

	funds, err := s.fundRepo.ListFunds(ctx, activeFundIDs(brokers))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveFunds, err)
	}

	for i := range funds {
		enrichFund(&funds[i])
	}

	return funds, nil
}

// SumFunds aggregates a fund list into one total line. A zero total capital
// yields a NaN ROI rather than dividing by zero.
func (s *FundService) SumFunds(funds []model.Fund) model.FundSum {
	var sum model.FundSum
	for _, f := range funds {
		sum.MarketValue += f.MarketValue
		sum.Capital += f.Capital
	}
	sum.Profit = sum.MarketValue - sum.Capital
	if sum.Capital == 0 {
		sum.ROI = math.NaN()
	} else {
		sum.ROI = sum.Profit / sum.Capital
	}
	return sum
}

// enrichFund fills in the derived profit and ROI fields. Capital of zero is
// guarded explicitly: the ROI becomes NaN ("unknown"), consistent with the
// NaN propagation policy used everywhere else in the aggregation.
func enrichFund(f *model.Fund) {
	f.Profit = f.MarketValue - f.Capital
	if f.Capital == 0 {
		f.ROI = math.NaN()
	} else {
		f.ROI = f.Profit / f.Capital
	}
}
