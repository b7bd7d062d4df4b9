package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LedgerEntryKind tags a funding history entry as money in or money out
type LedgerEntryKind string

const (
	LedgerEntryCredit LedgerEntryKind = "credit"
	LedgerEntryDebit  LedgerEntryKind = "debit"
)

// LedgerEntry is one funding event. Amount is always positive; Kind carries the sign.
type LedgerEntry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Kind        LedgerEntryKind    `bson:"kind" json:"kind"`
	Amount      decimal.Decimal    `bson:"amount" json:"amount"`
	Description string             `bson:"description" json:"description"`
	Date        time.Time          `bson:"date" json:"date"`
}

// Signed returns the entry amount with its ledger sign applied
func (e LedgerEntry) Signed() decimal.Decimal {
	if e.Kind == LedgerEntryDebit {
		return e.Amount.Neg()
	}
	return e.Amount
}

// MerchantWallet holds a merchant's escrow balance and waiver state
type MerchantWallet struct {
	MerchantID           string          `bson:"merchantId" json:"merchantId"`
	WalletBalance        decimal.Decimal `bson:"walletBalance" json:"walletBalance"`
	WalletFundingHistory []LedgerEntry   `bson:"walletFundingHistory" json:"walletFundingHistory"`
	PendingWaiverRequest bool            `bson:"pendingWaiverRequest" json:"pendingWaiverRequest"`
	WaiverApproved       bool            `bson:"waiverApproved" json:"waiverApproved"`
	WaiverRequestedAt    *time.Time      `bson:"waiverRequestedAt,omitempty" json:"waiverRequestedAt,omitempty"`
	WaiverApprovedAt     *time.Time      `bson:"waiverApprovedAt,omitempty" json:"waiverApprovedAt,omitempty"`
	UpdatedAt            time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// LedgerBalance sums the signed ledger. It always equals WalletBalance.
func (w MerchantWallet) LedgerBalance() decimal.Decimal {
	total := decimal.Zero
	for _, entry := range w.WalletFundingHistory {
		total = total.Add(entry.Signed())
	}
	return total
}

// Clone returns a copy whose history slice can be appended without aliasing
func (w MerchantWallet) Clone() MerchantWallet {
	history := make([]LedgerEntry, len(w.WalletFundingHistory))
	copy(history, w.WalletFundingHistory)
	w.WalletFundingHistory = history
	return w
}

// FundingStatus is the live compliance view of a merchant's wallet
type FundingStatus struct {
	MerchantID           string          `json:"merchantId"`
	WalletBalance        decimal.Decimal `json:"walletBalance"`
	TotalPromisedPrizes  decimal.Decimal `json:"totalPromisedPrizes"`
	MinWalletPercent     decimal.Decimal `json:"minWalletPercent"`
	RequiredBalance      decimal.Decimal `json:"requiredBalance"`
	Shortfall            decimal.Decimal `json:"shortfall"`
	IsFunded             bool            `json:"isFunded"`
	PendingWaiverRequest bool            `json:"pendingWaiverRequest"`
	WaiverApproved       bool            `json:"waiverApproved"`
}
