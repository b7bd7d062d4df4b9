package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ArowuTest/quizseason-admin/internal/metrics"
	"github.com/ArowuTest/quizseason-admin/internal/models"
	"github.com/ArowuTest/quizseason-admin/internal/repositories"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure FundingServiceImpl implements FundingService
var _ FundingService = (*FundingServiceImpl)(nil)

const (
	defaultFundingDescription = "Wallet funding"
	waiverFeeDescription      = "Waiver request fee (non-refundable)"
)

// FundingPolicy holds the configured compliance constants
type FundingPolicy struct {
	MinWalletPercent decimal.Decimal
	WaiverRequestFee decimal.Decimal
}

// DefaultFundingPolicy returns the 70% minimum balance rule with a 50,000 waiver fee
func DefaultFundingPolicy() FundingPolicy {
	return FundingPolicy{
		MinWalletPercent: decimal.RequireFromString("0.70"),
		WaiverRequestFee: decimal.NewFromInt(50_000),
	}
}

// FundingServiceImpl implements FundingService
type FundingServiceImpl struct {
	walletRepo repositories.WalletRepository
	seasonRepo repositories.SeasonRepository
	policy     FundingPolicy
	reporter   outcomeReporter
	logger     *slog.Logger
	now        func() time.Time
}

// NewFundingService creates a new FundingServiceImpl
func NewFundingService(
	walletRepo repositories.WalletRepository,
	seasonRepo repositories.SeasonRepository,
	policy FundingPolicy,
	notifier NotificationService,
	recorder metrics.Recorder,
	logger *slog.Logger,
) *FundingServiceImpl {
	reporter := newOutcomeReporter(notifier, recorder, logger)
	return &FundingServiceImpl{
		walletRepo: walletRepo,
		seasonRepo: seasonRepo,
		policy:     policy,
		reporter:   reporter,
		logger:     reporter.logger,
		now:        time.Now,
	}
}

// TotalPromisedPrizes sums totalWinningPrizes over the merchant's current seasons
func (s *FundingServiceImpl) TotalPromisedPrizes(ctx context.Context, merchantID string) (decimal.Decimal, error) {
	seasons, err := s.seasonRepo.FindByMerchant(ctx, merchantID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load seasons: %w", err)
	}
	total := decimal.Zero
	for _, season := range seasons {
		total = total.Add(season.TotalWinningPrizes)
	}
	return total, nil
}

// RequiredBalance computes the minimum wallet balance for the merchant
func (s *FundingServiceImpl) RequiredBalance(ctx context.Context, merchantID string) (decimal.Decimal, error) {
	total, err := s.TotalPromisedPrizes(ctx, merchantID)
	if err != nil {
		return decimal.Zero, err
	}
	return total.Mul(s.policy.MinWalletPercent), nil
}

// IsFunded reports whether the merchant satisfies the funding rule
func (s *FundingServiceImpl) IsFunded(ctx context.Context, merchantID string) (bool, error) {
	status, err := s.GetFundingStatus(ctx, merchantID)
	if err != nil {
		return false, err
	}
	return status.IsFunded, nil
}

// GetFundingStatus computes the live compliance view. Nothing is cached.
func (s *FundingServiceImpl) GetFundingStatus(ctx context.Context, merchantID string) (*models.FundingStatus, error) {
	wallet, err := s.walletRepo.FindByMerchant(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	total, err := s.TotalPromisedPrizes(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	return fundingStatus(*wallet, total, s.policy.MinWalletPercent), nil
}

// GetFundingHistory returns the wallet ledger in append order
func (s *FundingServiceImpl) GetFundingHistory(ctx context.Context, merchantID string) ([]models.LedgerEntry, error) {
	wallet, err := s.walletRepo.FindByMerchant(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	return wallet.WalletFundingHistory, nil
}

// FundWallet credits the wallet
func (s *FundingServiceImpl) FundWallet(ctx context.Context, merchantID string, amount decimal.Decimal, description string) (*models.MerchantWallet, error) {
	const op = OpWalletFund

	updated, err := s.modifyWallet(ctx, merchantID, func(wallet models.MerchantWallet, now time.Time) (models.MerchantWallet, error) {
		return creditWallet(wallet, amount, description, now)
	})
	if err != nil {
		return nil, s.reporter.failed(ctx, merchantID, op, "Wallet not funded", err)
	}

	s.logger.Info("Wallet funded", "merchantId", merchantID, "amount", amount.String(), "balance", updated.WalletBalance.String())
	s.reporter.metrics.RecordWalletMovement(string(models.LedgerEntryCredit), amount)
	s.reporter.succeeded(ctx, Notice{
		MerchantID: merchantID,
		Operation:  op,
		Title:      "Wallet funded",
		Message:    fmt.Sprintf("%s was added to your wallet", amountPlaceholder),
		Amount:     &amount,
	})
	return updated, nil
}

// RequestWaiver charges the waiver fee and marks a waiver as pending, in one write
func (s *FundingServiceImpl) RequestWaiver(ctx context.Context, merchantID string) (*models.MerchantWallet, error) {
	const op = OpWaiverRequest

	updated, err := s.modifyWallet(ctx, merchantID, func(wallet models.MerchantWallet, now time.Time) (models.MerchantWallet, error) {
		return requestWaiver(wallet, s.policy.WaiverRequestFee, now)
	})
	if err != nil {
		return nil, s.reporter.failed(ctx, merchantID, op, "Waiver not requested", err)
	}

	fee := s.policy.WaiverRequestFee
	s.logger.Info("Waiver requested", "merchantId", merchantID, "fee", fee.String(), "balance", updated.WalletBalance.String())
	s.reporter.metrics.RecordWalletMovement(string(models.LedgerEntryDebit), fee)
	s.reporter.succeeded(ctx, Notice{
		MerchantID: merchantID,
		Operation:  op,
		Title:      "Waiver requested",
		Message:    fmt.Sprintf("A non-refundable fee of %s was charged. Your request is pending approval.", amountPlaceholder),
		Amount:     &fee,
	})
	return updated, nil
}

// ApproveWaiver approves the pending waiver request
func (s *FundingServiceImpl) ApproveWaiver(ctx context.Context, merchantID string) (*models.MerchantWallet, error) {
	const op = OpWaiverApprove

	updated, err := s.modifyWallet(ctx, merchantID, func(wallet models.MerchantWallet, now time.Time) (models.MerchantWallet, error) {
		return approveWaiver(wallet, now)
	})
	if err != nil {
		return nil, s.reporter.failed(ctx, merchantID, op, "Waiver not approved", err)
	}

	s.logger.Info("Waiver approved", "merchantId", merchantID)
	s.reporter.succeeded(ctx, Notice{
		MerchantID: merchantID,
		Operation:  op,
		Title:      "Waiver approved",
		Message:    "Your funding waiver was approved",
	})
	return updated, nil
}

// modifyWallet applies rule to the merchant's wallet in one repository call,
// so concurrent funding operations cannot overwrite each other
func (s *FundingServiceImpl) modifyWallet(ctx context.Context, merchantID string, rule func(models.MerchantWallet, time.Time) (models.MerchantWallet, error)) (*models.MerchantWallet, error) {
	var ruleErr error
	updated, err := s.walletRepo.Modify(ctx, merchantID, func(wallet models.MerchantWallet) (models.MerchantWallet, error) {
		next, err := rule(wallet, s.now())
		ruleErr = err
		return next, err
	})
	if ruleErr != nil {
		return nil, ruleErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save wallet: %w", err)
	}
	return updated, nil
}

func fundingStatus(wallet models.MerchantWallet, totalPrizes, minPercent decimal.Decimal) *models.FundingStatus {
	required := totalPrizes.Mul(minPercent)
	shortfall := required.Sub(wallet.WalletBalance)
	if shortfall.IsNegative() {
		shortfall = decimal.Zero
	}
	return &models.FundingStatus{
		MerchantID:           wallet.MerchantID,
		WalletBalance:        wallet.WalletBalance,
		TotalPromisedPrizes:  totalPrizes,
		MinWalletPercent:     minPercent,
		RequiredBalance:      required,
		Shortfall:            shortfall,
		IsFunded:             wallet.WaiverApproved || wallet.WalletBalance.GreaterThanOrEqual(required),
		PendingWaiverRequest: wallet.PendingWaiverRequest,
		WaiverApproved:       wallet.WaiverApproved,
	}
}

func creditWallet(wallet models.MerchantWallet, amount decimal.Decimal, description string, now time.Time) (models.MerchantWallet, error) {
	if !amount.IsPositive() {
		return models.MerchantWallet{}, NewValidationError("amount", "Amount must be greater than zero")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		description = defaultFundingDescription
	}

	updated := wallet.Clone()
	updated.WalletFundingHistory = append(updated.WalletFundingHistory, models.LedgerEntry{
		ID:          primitive.NewObjectID(),
		Kind:        models.LedgerEntryCredit,
		Amount:      amount,
		Description: description,
		Date:        now,
	})
	updated.WalletBalance = updated.WalletBalance.Add(amount)
	updated.UpdatedAt = now
	return updated, nil
}

func requestWaiver(wallet models.MerchantWallet, fee decimal.Decimal, now time.Time) (models.MerchantWallet, error) {
	if wallet.WaiverApproved {
		return models.MerchantWallet{}, fmt.Errorf("%w: a waiver is already approved", ErrInvalidState)
	}
	if wallet.PendingWaiverRequest {
		return models.MerchantWallet{}, fmt.Errorf("%w: a waiver request is already pending", ErrInvalidState)
	}
	if wallet.WalletBalance.LessThan(fee) {
		return models.MerchantWallet{}, fmt.Errorf("%w: wallet balance %s is below the waiver fee %s", ErrInvalidState, wallet.WalletBalance.String(), fee.String())
	}

	updated := wallet.Clone()
	if fee.IsPositive() {
		updated.WalletFundingHistory = append(updated.WalletFundingHistory, models.LedgerEntry{
			ID:          primitive.NewObjectID(),
			Kind:        models.LedgerEntryDebit,
			Amount:      fee,
			Description: waiverFeeDescription,
			Date:        now,
		})
		updated.WalletBalance = updated.WalletBalance.Sub(fee)
	}
	updated.PendingWaiverRequest = true
	requestedAt := now
	updated.WaiverRequestedAt = &requestedAt
	updated.UpdatedAt = now
	return updated, nil
}

func approveWaiver(wallet models.MerchantWallet, now time.Time) (models.MerchantWallet, error) {
	if wallet.WaiverApproved {
		return models.MerchantWallet{}, fmt.Errorf("%w: the waiver is already approved", ErrInvalidState)
	}
	if !wallet.PendingWaiverRequest {
		return models.MerchantWallet{}, fmt.Errorf("%w: there is no pending waiver request", ErrInvalidState)
	}

	updated := wallet.Clone()
	updated.WaiverApproved = true
	updated.PendingWaiverRequest = false
	approvedAt := now
	updated.WaiverApprovedAt = &approvedAt
	updated.UpdatedAt = now
	return updated, nil
}

// RejectInput notifies the merchant that a request for operation was rejected before it ran
func (s *FundingServiceImpl) RejectInput(ctx context.Context, merchantID, operation string, err error) error {
	return s.reporter.failed(ctx, merchantID, operation, inputRejectedTitle, err)
}
