package controller

import (
	"errors"
	"net/http"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PurchaseController struct {
	PurchaseService *service.PurchaseService
}

func NewPurchaseController(purchaseService *service.PurchaseService) *PurchaseController {
	return &PurchaseController{PurchaseService: purchaseService}
}

// PurchaseLesson godoc
// @Summary Buy a paid lesson from the wallet
// @Tags purchases
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Param lessonId path string true "lesson id"
// @Success 201 {object} util.Response{data=model.PurchaseRecord}
// @Failure 402 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/courses/{id}/lessons/{lessonId}/purchase [post]
func (c *PurchaseController) PurchaseLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))
	record, err := c.PurchaseService.PurchaseLesson(ctx.Request.Context(), claims.UserID, courseID, ctx.Param("lessonId"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAlreadyPurchased):
			util.Conflict(ctx, "lesson already purchased")
		case errors.Is(err, util.ErrInsufficientBalance):
			util.Error(ctx, http.StatusPaymentRequired, "insufficient wallet balance")
		case errors.Is(err, util.ErrCourseNotFound), errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx)
		default:
			respondCourseError(ctx, err)
		}
		return
	}

	util.Created(ctx, record)
}

// ListPurchases godoc
// @Summary Purchase history of the current user
// @Tags purchases
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/purchases [get]
func (c *PurchaseController) ListPurchases(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	records, err := c.PurchaseService.ListPurchases(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// GetWallet godoc
// @Summary Wallet balance and ledger of the current user
// @Tags purchases
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.WalletSummary}
// @Router /api/wallet [get]
func (c *PurchaseController) GetWallet(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	wallet, err := c.PurchaseService.GetWallet(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, wallet)
}

type TopUpRequest struct {
	UserID    uint    `json:"userId" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Reference string  `json:"reference"`
}

// TopUpWallet godoc
// @Summary Credit a user's wallet (admin)
// @Tags purchases
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body TopUpRequest true "top-up payload"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/wallet/topup [post]
func (c *PurchaseController) TopUpWallet(ctx *gin.Context) {
	var req TopUpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reference := req.Reference
	if reference == "" {
		reference = "admin-topup"
	}

	if err := c.PurchaseService.TopUpWallet(ctx.Request.Context(), req.UserID, req.Amount, reference); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
