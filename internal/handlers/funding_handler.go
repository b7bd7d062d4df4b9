package handlers

import (
	"net/http"

	"github.com/ArowuTest/quizseason-admin/internal/models"
	"github.com/ArowuTest/quizseason-admin/internal/services"
	"github.com/ArowuTest/quizseason-admin/pkg/currency"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// FundingHandler handles wallet and waiver HTTP requests
type FundingHandler struct {
	fundingService services.FundingService
	formatter      *currency.Formatter
}

// NewFundingHandler creates a new FundingHandler
func NewFundingHandler(fundingService services.FundingService, formatter *currency.Formatter) *FundingHandler {
	return &FundingHandler{
		fundingService: fundingService,
		formatter:      formatter,
	}
}

// FundWalletRequest is the body of POST /merchants/:merchantId/wallet/fund
type FundWalletRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type fundingDisplay struct {
	WalletBalance       string `json:"walletBalance"`
	TotalPromisedPrizes string `json:"totalPromisedPrizes"`
	RequiredBalance     string `json:"requiredBalance"`
	Shortfall           string `json:"shortfall"`
}

type fundingStatusResponse struct {
	*models.FundingStatus
	Display fundingDisplay `json:"display"`
}

// GetStatus handles GET /merchants/:merchantId/wallet
func (h *FundingHandler) GetStatus(c *gin.Context) {
	status, err := h.fundingService.GetFundingStatus(c.Request.Context(), c.Param("merchantId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fundingStatusResponse{
		FundingStatus: status,
		Display: fundingDisplay{
			WalletBalance:       formatAmount(h.formatter, status.WalletBalance),
			TotalPromisedPrizes: formatAmount(h.formatter, status.TotalPromisedPrizes),
			RequiredBalance:     formatAmount(h.formatter, status.RequiredBalance),
			Shortfall:           formatAmount(h.formatter, status.Shortfall),
		},
	})
}

// GetHistory handles GET /merchants/:merchantId/wallet/history
func (h *FundingHandler) GetHistory(c *gin.Context) {
	history, err := h.fundingService.GetFundingHistory(c.Request.Context(), c.Param("merchantId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// FundWallet handles POST /merchants/:merchantId/wallet/fund
func (h *FundingHandler) FundWallet(c *gin.Context) {
	var req FundWalletRequest
	if err := bindJSON(c, &req); err != nil {
		rejectInput(c, h.fundingService, services.OpWalletFund, err)
		return
	}
	wallet, err := h.fundingService.FundWallet(c.Request.Context(), c.Param("merchantId"), req.Amount, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wallet)
}

// RequestWaiver handles POST /merchants/:merchantId/wallet/waiver
func (h *FundingHandler) RequestWaiver(c *gin.Context) {
	wallet, err := h.fundingService.RequestWaiver(c.Request.Context(), c.Param("merchantId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wallet)
}

// ApproveWaiver handles POST /merchants/:merchantId/wallet/waiver/approve
func (h *FundingHandler) ApproveWaiver(c *gin.Context) {
	wallet, err := h.fundingService.ApproveWaiver(c.Request.Context(), c.Param("merchantId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wallet)
}
