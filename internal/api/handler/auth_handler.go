package handler

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/api/middleware"
	"Newsroom/internal/pkg/response"
	"Newsroom/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authSvc       service.AuthService
	permissionSvc service.PermissionService
}

func NewAuthHandler(authSvc service.AuthService, permissionSvc service.PermissionService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, permissionSvc: permissionSvc}
}

func (s *AuthHandler) Login(c *gin.Context) {
	var in dto.LoginDTO
	if !bindJSON(c, &in) {
		return
	}
	res, err := s.authSvc.Login(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *AuthHandler) LoginOTP(c *gin.Context) {
	var in dto.OTPLoginDTO
	if !bindJSON(c, &in) {
		return
	}
	res, err := s.authSvc.VerifyOTP(c.Request.Context(), in.Challenge, in.Code)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *AuthHandler) Logout(c *gin.Context) {
	if err := s.authSvc.Logout(c.Request.Context(), middleware.CurrentToken(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	codenames, err := s.permissionSvc.Codenames(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toUserDTO(user, codenames))
}
