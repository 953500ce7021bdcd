package handler

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/api/middleware"
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/response"
	"Newsroom/internal/service"
	"context"
	log "log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

type AdminUserHandler struct {
	userAdminSvc  service.UserAdminService
	permissionSvc service.PermissionService
	paginator     Paginator
}

func NewAdminUserHandler(userAdminSvc service.UserAdminService, permissionSvc service.PermissionService, paginator Paginator) *AdminUserHandler {
	return &AdminUserHandler{userAdminSvc: userAdminSvc, permissionSvc: permissionSvc, paginator: paginator}
}

func (s *AdminUserHandler) List(c *gin.Context) {
	var filter dto.UserFilter
	if !bindQuery(c, &filter) {
		return
	}
	req, ok := s.paginator.adminPage(c)
	if !ok {
		return
	}
	users, count, err := s.userAdminSvc.ListUsers(c.Request.Context(), &filter, req.window())
	if err != nil {
		response.Error(c, err)
		return
	}
	out := make([]*dto.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toUserDTO(u, nil))
	}
	adminList(c, req, count, out)
}

func (s *AdminUserHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	user, err := s.userAdminSvc.GetUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, s.withPermissions(c.Request.Context(), user))
}

func (s *AdminUserHandler) Create(c *gin.Context) {
	var in dto.UserCreateDTO
	if !bindJSON(c, &in) {
		return
	}
	actor := service.ActorOf(middleware.CurrentUser(c))
	user, err := s.userAdminSvc.CreateUser(c.Request.Context(), actor, &in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, s.withPermissions(c.Request.Context(), user))
}

func (s *AdminUserHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var in dto.UserUpdateDTO
	if !bindJSON(c, &in) {
		return
	}
	actor := service.ActorOf(middleware.CurrentUser(c))
	user, err := s.userAdminSvc.UpdateUser(c.Request.Context(), actor, id, &in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, s.withPermissions(c.Request.Context(), user))
}

func (s *AdminUserHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	actor := service.ActorOf(middleware.CurrentUser(c))
	if err = s.userAdminSvc.DeleteUser(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AdminUserHandler) SendInvite(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = s.userAdminSvc.SendInvite(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AdminUserHandler) withPermissions(ctx context.Context, user *model.User) *dto.UserDTO {
	codenames, err := s.permissionSvc.Codenames(ctx, user.ID)
	if err != nil {
		log.WarnContext(ctx, "Failed to load user permissions", "user_id", user.ID, "err", err)
	}
	return toUserDTO(user, codenames)
}

func toUserDTO(user *model.User, permissions []string) *dto.UserDTO {
	out := &dto.UserDTO{}
	_ = copier.Copy(out, user)
	out.Permissions = permissions
	return out
}
