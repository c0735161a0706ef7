package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"starledger/internal/ledger"
	"starledger/internal/model"
)

// Handler maps the HTTP intent surface onto the ledger service
type Handler struct {
	svc      *ledger.Service
	adminKey string
}

// NewHandler creates a new Handler instance
func NewHandler(svc *ledger.Service, adminKey string) *Handler {
	return &Handler{
		svc:      svc,
		adminKey: adminKey,
	}
}

// AdminAuth middleware checks if the request has a valid admin API key
func (h *Handler) AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if h.adminKey == "" || apiKey != h.adminKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.Response{
				Success: false,
				Error:   "invalid API key",
			})
			return
		}
		c.Next()
	}
}

// fail translates a service error into the JSON envelope. A not-ready claim
// also reports the exact remaining wait.
func fail(c *gin.Context, err error) {
	var notReady *ledger.ClaimNotReadyError
	switch {
	case errors.As(err, &notReady):
		c.JSON(http.StatusConflict, model.Response{
			Success: false,
			Error:   err.Error(),
			Data:    gin.H{"remaining": ledger.FormatCooldown(notReady.Remaining)},
		})
	case errors.Is(err, ledger.ErrUserNotFound), errors.Is(err, ledger.ErrWithdrawNotFound):
		c.JSON(http.StatusNotFound, model.Response{Success: false, Error: err.Error()})
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrWithdrawSettled),
		errors.Is(err, ledger.ErrInsufficientBalance):
		c.JSON(http.StatusBadRequest, model.Response{Success: false, Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, model.Response{Success: false, Error: err.Error()})
	}
}

// CreateUser handles user registration requests. Registration is
// idempotent: an existing record is left untouched.
func (h *Handler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	if err := h.svc.EnsureUser(req.UserID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Data:    gin.H{"user_id": req.UserID},
	})
}

// GetWallet handles wallet summary requests
func (h *Handler) GetWallet(c *gin.Context) {
	wallet, err := h.svc.Wallet(c.Param("user_id"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Data:    wallet,
	})
}

// CreateDeposit handles deposit intake requests
func (h *Handler) CreateDeposit(c *gin.Context) {
	var req model.CreateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	if err := h.svc.Deposit(c.Param("user_id"), req.Amount); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Data:    gin.H{"amount": req.Amount},
	})
}

// GetMineStatus handles mine menu requests
func (h *Handler) GetMineStatus(c *gin.Context) {
	status, err := h.svc.MineStatus(c.Param("user_id"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Data:    status,
	})
}

// ClaimMining handles mining claim requests
func (h *Handler) ClaimMining(c *gin.Context) {
	reward, err := h.svc.Claim(c.Param("user_id"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Data:    gin.H{"reward": reward},
	})
}

// GetHistory handles transaction history requests
func (h *Handler) GetHistory(c *gin.Context) {
	page := 0
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil {
			page = p
		}
	}

	history, err := h.svc.History(c.Param("user_id"), page)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Data:    history,
	})
}

// CreateWithdraw handles withdraw requests
func (h *Handler) CreateWithdraw(c *gin.Context) {
	var req model.CreateWithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	if err := h.svc.RequestWithdraw(c.Param("user_id"), req.Amount); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Data:    gin.H{"amount": req.Amount, "status": model.WithdrawStatusPending},
	})
}

// ResolveWithdraw handles withdraw settlement requests (admin only)
func (h *Handler) ResolveWithdraw(c *gin.Context) {
	var req model.ResolveWithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	if err := h.svc.ResolveWithdraw(c.Param("user_id"), req.Index, req.Approve); err != nil {
		fail(c, err)
		return
	}

	status := model.WithdrawStatusRejected
	if req.Approve {
		status = model.WithdrawStatusSuccess
	}
	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Data:    gin.H{"index": req.Index, "status": status},
	})
}
