package http

import (
	"github.com/MikeRez0/inarashop/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler struct {
	Handler
	service port.Service
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func NewAdminHandler(service port.Service, logger *zap.Logger) (*AdminHandler, error) {
	return &AdminHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

func (ah *AdminHandler) Login(ctx *gin.Context) {
	req := LoginRequest{}
	err := ctx.ShouldBindJSON(&req)
	if err != nil {
		ah.handleValidationError(ctx, err)
		return
	}

	token, err := ah.service.LoginAdmin(ctx, req.Username, req.Password)
	if err != nil {
		ah.handleError(ctx, err)
		return
	}

	ah.handleSuccess(ctx, struct {
		Token string `json:"token"`
	}{Token: token})
}
