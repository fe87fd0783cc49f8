package handler

import (
	"net/http"
	"time"

	"github.com/aman-churiwal/faucet-service/internal/metrics"
	"github.com/aman-churiwal/faucet-service/internal/models"
	"github.com/aman-churiwal/faucet-service/internal/service"
	"github.com/gin-gonic/gin"
)

// Session cookies set by the dashboard: the active wallet address, and a
// bearer token stored under a per-address cookie name.
const (
	cookieActiveAccount = "tw_active_account"
	cookieTokenPrefix   = "tw_token_"
)

type ClaimHandler struct {
	service  *service.ClaimService
	recorder *service.ClaimRecorder
}

// NewClaimHandler creates the faucet claim handler. recorder may be nil, in
// which case attempts are not persisted.
func NewClaimHandler(svc *service.ClaimService, recorder *service.ClaimRecorder) *ClaimHandler {
	return &ClaimHandler{
		service:  svc,
		recorder: recorder,
	}
}

type claimRequestBody struct {
	ChainID        uint64 `json:"chainId"`
	ToAddress      string `json:"toAddress" binding:"required"`
	TurnstileToken string `json:"turnstileToken"`
}

// Handles POST /api/testnet-faucet/claim
func (h *ClaimHandler) Claim(c *gin.Context) {
	activeAccount, err := c.Cookie(cookieActiveAccount)
	if err != nil || activeAccount == "" {
		c.JSON(service.ErrNoWalletDetected.Status, gin.H{"error": service.ErrNoWalletDetected.Message})
		return
	}

	authToken, err := c.Cookie(cookieTokenPrefix + activeAccount)
	if err != nil || authToken == "" {
		c.JSON(service.ErrNoWalletConnected.Status, gin.H{"error": service.ErrNoWalletConnected.Message})
		return
	}

	var body claimRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ip := clientIP(c)

	amount, cerr := h.service.Claim(c.Request.Context(), service.ClaimRequest{
		ChainID:        body.ChainID,
		ToAddress:      body.ToAddress,
		TurnstileToken: body.TurnstileToken,
		IP:             ip,
		AuthToken:      authToken,
	})

	h.record(body, activeAccount, ip, amount, cerr)

	if cerr != nil {
		c.JSON(cerr.Status, gin.H{"error": cerr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"amount": amount})
}

// clientIP prefers the Cloudflare header, then the framework's resolution,
// then the raw forwarding header.
func clientIP(c *gin.Context) string {
	if ip := c.GetHeader("CF-Connecting-IP"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return c.GetHeader("X-Forwarded-For")
}

func (h *ClaimHandler) record(body claimRequestBody, activeAccount, ip, amount string, cerr *service.ClaimError) {
	outcome := models.ClaimOutcomeGranted
	statusCode := http.StatusOK
	reason := ""

	if cerr != nil {
		statusCode = cerr.Status
		reason = cerr.Message

		switch {
		case cerr == service.ErrAlreadyClaimed:
			outcome = models.ClaimOutcomeRateLimited
			metrics.RateLimitHits.Inc()
		case cerr.Status >= 500:
			outcome = models.ClaimOutcomeFailed
		default:
			outcome = models.ClaimOutcomeRejected
		}
	}

	metrics.ClaimsTotal.WithLabelValues(service.FormatChainID(body.ChainID), outcome).Inc()

	if h.recorder == nil {
		return
	}

	h.recorder.Record(models.ClaimLog{
		Timestamp:  time.Now(),
		ChainID:    body.ChainID,
		Wallet:     activeAccount,
		ToAddress:  body.ToAddress,
		IPHash:     service.HashIP(ip),
		Amount:     amount,
		Outcome:    outcome,
		StatusCode: statusCode,
		Reason:     reason,
	})
}
