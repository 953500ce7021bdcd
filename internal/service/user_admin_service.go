package service

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/audit"
	"Newsroom/internal/pkg/consts"
	"Newsroom/internal/pkg/database"
	"Newsroom/internal/pkg/mail"
	"Newsroom/internal/pkg/redis"
	"Newsroom/internal/pkg/security"
	"Newsroom/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const auditModelUser = "User"

type UserAdminService interface {
	ListUsers(ctx context.Context, filter *dto.UserFilter, page repository.Page) ([]*model.User, int64, error)
	GetUser(ctx context.Context, id uint64) (*model.User, error)
	CreateUser(ctx context.Context, actor audit.Actor, in *dto.UserCreateDTO) (*model.User, error)
	UpdateUser(ctx context.Context, actor audit.Actor, id uint64, in *dto.UserUpdateDTO) (*model.User, error)
	DeleteUser(ctx context.Context, actor audit.Actor, id uint64) error
	SendInvite(ctx context.Context, id uint64) error
	CreateSuperuser(ctx context.Context, username, email, password string) (*model.User, error)
}

type UserAdminServiceImpl struct {
	userRepo          repository.UserRepo
	permissionService PermissionService
	emailService      EmailService
	auditLogger       *audit.Logger
	inviteTTL         time.Duration
}

func NewUserAdminService(userRepo repository.UserRepo, permissionService PermissionService, emailService EmailService,
	auditLogger *audit.Logger, inviteTTL time.Duration) UserAdminService {
	return &UserAdminServiceImpl{
		userRepo:          userRepo,
		permissionService: permissionService,
		emailService:      emailService,
		auditLogger:       auditLogger,
		inviteTTL:         inviteTTL,
	}
}

func (s *UserAdminServiceImpl) ListUsers(ctx context.Context, filter *dto.UserFilter, page repository.Page) ([]*model.User, int64, error) {
	q := repository.UserQuery{Page: page}
	if filter != nil {
		q.Query = strings.TrimSpace(filter.Query)
		q.IsStaff = filter.IsStaff
		q.IsActive = filter.IsActive
	}
	return s.userRepo.ListUsers(ctx, q)
}

func (s *UserAdminServiceImpl) GetUser(ctx context.Context, id uint64) (*model.User, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// CreateUser new accounts are staff unless told otherwise and never superusers.
// Staff receive the default editor permissions right away.
func (s *UserAdminServiceImpl) CreateUser(ctx context.Context, actor audit.Actor, in *dto.UserCreateDTO) (*model.User, error) {
	user := &model.User{
		Username:  strings.TrimSpace(in.Username),
		Email:     strings.TrimSpace(in.Email),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		IsActive:  true,
		IsStaff:   true,
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.IsStaff != nil {
		user.IsStaff = *in.IsStaff
	}
	if err := s.ensureUnique(ctx, user.Username, user.Email, 0); err != nil {
		return nil, err
	}
	if in.Password != "" {
		hash, err := security.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrUsernameExist
		}
		return nil, err
	}

	if user.IsStaff {
		granted, err := s.permissionService.GrantStaffDefaults(ctx, user.ID)
		if err != nil {
			log.ErrorContext(ctx, "Failed to grant default permissions", "user_id", user.ID, "err", err)
		} else {
			log.InfoContext(ctx, "Default permissions granted", "username", user.Username, "count", granted)
		}
	}

	recordAudit(ctx, func() (string, error) {
		return s.auditLogger.LogAction(ctx, audit.ActionCreated, auditModelUser, user, actor, nil, "")
	})
	return user, nil
}

func (s *UserAdminServiceImpl) UpdateUser(ctx context.Context, actor audit.Actor, id uint64, in *dto.UserUpdateDTO) (*model.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	wasStaff := user.IsStaff

	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if !strings.EqualFold(email, user.Email) {
			if err = s.ensureUnique(ctx, "", email, user.ID); err != nil {
				return nil, err
			}
			user.EmailVerified = false
		}
		user.Email = email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.IsStaff != nil {
		user.IsStaff = *in.IsStaff
	}

	if err = s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	if !wasStaff && user.IsStaff && !user.IsSuperuser {
		if _, err = s.permissionService.GrantStaffDefaults(ctx, user.ID); err != nil {
			log.ErrorContext(ctx, "Failed to grant default permissions", "user_id", user.ID, "err", err)
		}
	}

	recordAudit(ctx, func() (string, error) {
		return s.auditLogger.LogAction(ctx, audit.ActionUpdated, auditModelUser, user, actor, nil, "")
	})
	return user, nil
}

func (s *UserAdminServiceImpl) DeleteUser(ctx context.Context, actor audit.Actor, id uint64) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if user.IsSuperuser {
		return ErrSuperuserProtected
	}

	recordAudit(ctx, func() (string, error) {
		return s.auditLogger.LogAction(ctx, audit.ActionDeleted, auditModelUser, user, actor, nil, "")
	})
	return s.userRepo.DeleteUser(ctx, id)
}

// SendInvite mails an activation link whose token lives in redis until used or expired.
// Accounts that are active with a password set are already activated.
func (s *UserAdminServiceImpl) SendInvite(ctx context.Context, id uint64) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if user.Email == "" {
		return ErrEmailNotSet
	}
	if user.IsActive && user.Password != "" {
		return ErrAlreadyActive
	}

	uid := strconv.FormatUint(user.ID, 10)
	token := uuid.NewString()
	if err = redis.SetWithExpiration(ctx, consts.ActivationTokenKey+uid, token, s.inviteTTL); err != nil {
		return err
	}
	s.emailService.Send(ctx, mail.NewActivationInviteTask(user.Email, user.FirstName, uid, token))
	return nil
}

func (s *UserAdminServiceImpl) CreateSuperuser(ctx context.Context, username, email, password string) (*model.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, ErrParamInvalid
	}
	if err := s.ensureUnique(ctx, username, email, 0); err != nil {
		return nil, err
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:    strings.TrimSpace(username),
		Email:       strings.TrimSpace(email),
		Password:    hash,
		IsActive:    true,
		IsStaff:     true,
		IsSuperuser: true,
	}
	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserAdminServiceImpl) ensureUnique(ctx context.Context, username, email string, exceptID uint64) error {
	if username != "" {
		existing, err := s.userRepo.GetUserByUsername(ctx, username)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrUsernameExist
		}
	}
	if email != "" {
		taken, err := s.userRepo.EmailTaken(ctx, email, exceptID)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailExist
		}
	}
	return nil
}
