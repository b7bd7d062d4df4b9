package memory

import (
	"context"
	"sync"

	"github.com/ArowuTest/quizseason-admin/internal/models"
	"github.com/ArowuTest/quizseason-admin/internal/repositories"
	"github.com/shopspring/decimal"
)

// WalletRepository implements repositories.WalletRepository in process memory
type WalletRepository struct {
	mu      sync.RWMutex
	wallets map[string]models.MerchantWallet
}

// NewWalletRepository creates a new WalletRepository
func NewWalletRepository() repositories.WalletRepository {
	return &WalletRepository{
		wallets: make(map[string]models.MerchantWallet),
	}
}

// FindByMerchant returns a copy of the merchant's wallet, or a zero-balance wallet
func (r *WalletRepository) FindByMerchant(ctx context.Context, merchantID string) (*models.MerchantWallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clone := r.current(merchantID)
	return &clone, nil
}

// Save replaces the merchant's wallet in one step
func (r *WalletRepository) Save(ctx context.Context, wallet *models.MerchantWallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.wallets[wallet.MerchantID] = wallet.Clone()
	return nil
}

// Modify runs change against the current wallet under the write lock
func (r *WalletRepository) Modify(ctx context.Context, merchantID string, change func(models.MerchantWallet) (models.MerchantWallet, error)) (*models.MerchantWallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	updated, err := change(r.current(merchantID))
	if err != nil {
		return nil, err
	}
	updated.MerchantID = merchantID
	r.wallets[merchantID] = updated.Clone()
	return &updated, nil
}

// current returns a copy of the stored wallet or a zero-balance one. Callers hold mu.
func (r *WalletRepository) current(merchantID string) models.MerchantWallet {
	wallet, ok := r.wallets[merchantID]
	if !ok {
		return models.MerchantWallet{
			MerchantID:           merchantID,
			WalletBalance:        decimal.Zero,
			WalletFundingHistory: []models.LedgerEntry{},
		}
	}
	return wallet.Clone()
}
