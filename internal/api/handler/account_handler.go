package handler

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/api/middleware"
	"Newsroom/internal/pkg/response"
	"Newsroom/internal/service"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountSvc service.AccountService
}

func NewAccountHandler(accountSvc service.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

func (s *AccountHandler) ForgotPassword(c *gin.Context) {
	var in dto.ForgotPasswordDTO
	if !bindJSON(c, &in) {
		return
	}
	if err := s.accountSvc.ForgotPassword(c.Request.Context(), in.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AccountHandler) ResetPassword(c *gin.Context) {
	var in dto.ResetPasswordDTO
	if !bindJSON(c, &in) {
		return
	}
	if err := s.accountSvc.ResetPassword(c.Request.Context(), &in); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AccountHandler) Activate(c *gin.Context) {
	var in dto.ActivateDTO
	if !bindJSON(c, &in) {
		return
	}
	if err := s.accountSvc.Activate(c.Request.Context(), &in); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AccountHandler) SendEmailVerification(c *gin.Context) {
	if err := s.accountSvc.SendEmailVerification(c.Request.Context(), middleware.CurrentUser(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AccountHandler) ConfirmEmail(c *gin.Context) {
	var in dto.CodeDTO
	if !bindJSON(c, &in) {
		return
	}
	if err := s.accountSvc.ConfirmEmail(c.Request.Context(), middleware.CurrentUser(c), in.Code); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AccountHandler) RequestEmailChange(c *gin.Context) {
	var in dto.EmailChangeDTO
	if !bindJSON(c, &in) {
		return
	}
	if err := s.accountSvc.RequestEmailChange(c.Request.Context(), middleware.CurrentUser(c), in.NewEmail); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AccountHandler) ConfirmEmailChange(c *gin.Context) {
	var in dto.CodeDTO
	if !bindJSON(c, &in) {
		return
	}
	user, err := s.accountSvc.ConfirmEmailChange(c.Request.Context(), middleware.CurrentUser(c), in.Code)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toUserDTO(user, nil))
}
