package service

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/consts"
	"Newsroom/internal/pkg/mail"
	"Newsroom/internal/pkg/redis"
	"Newsroom/internal/pkg/security"
	"Newsroom/internal/pkg/util"
	"Newsroom/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const otpLength = 6

type AuthService interface {
	Login(ctx context.Context, username, password string) (*dto.LoginResult, error)
	VerifyOTP(ctx context.Context, challenge, code string) (*dto.LoginResult, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

type AuthServiceImpl struct {
	userRepo     repository.UserRepo
	emailService EmailService
	tokens       *security.TokenManager
	otpEnabled   bool
	otpTTL       time.Duration
	now          func() time.Time
}

func NewAuthService(userRepo repository.UserRepo, emailService EmailService, tokens *security.TokenManager,
	otpEnabled bool, otpTTL time.Duration) AuthService {
	return &AuthServiceImpl{
		userRepo:     userRepo,
		emailService: emailService,
		tokens:       tokens,
		otpEnabled:   otpEnabled,
		otpTTL:       otpTTL,
		now:          time.Now,
	}
}

// Login admits active staff only. With OTP on, the token is withheld until
// the emailed code is confirmed through VerifyOTP.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*dto.LoginResult, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err = security.CheckPasswordHash(password, user.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if err = checkAdmitted(user); err != nil {
		return nil, err
	}

	if !s.otpEnabled {
		return s.issue(ctx, user)
	}
	if user.Email == "" {
		log.WarnContext(ctx, "OTP skipped, user has no email", "username", user.Username)
		return s.issue(ctx, user)
	}

	code, err := util.GenerateCode(otpLength)
	if err != nil {
		return nil, err
	}
	challenge := uuid.NewString()
	value := strconv.FormatUint(user.ID, 10) + ":" + code
	if err = redis.SetWithExpiration(ctx, consts.OTPChallengeKey+challenge, value, s.otpTTL); err != nil {
		return nil, err
	}
	s.emailService.Send(ctx, mail.NewOTPVerificationTask(user.Email, user.FirstName, code))
	return &dto.LoginResult{OTPRequired: true, Challenge: challenge}, nil
}

// VerifyOTP a challenge answers once, right or wrong.
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, challenge, code string) (*dto.LoginResult, error) {
	value, err := redis.GetAndDelete(ctx, consts.OTPChallengeKey+challenge)
	if err != nil {
		return nil, err
	}
	uid, stored, ok := strings.Cut(value, ":")
	if !ok || stored != code {
		return nil, ErrOTPInvalid
	}
	id, err := strconv.ParseUint(uid, 10, 64)
	if err != nil {
		return nil, ErrOTPInvalid
	}

	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrOTPInvalid
	}
	if err = checkAdmitted(user); err != nil {
		return nil, err
	}
	return s.issue(ctx, user)
}

// Logout blacklists the token signature for the rest of its lifetime.
func (s *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return ErrTokenInvalid
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrTokenInvalid
	}
	remaining := claims.ExpiresAt.Sub(s.now())
	if remaining <= 0 {
		return nil
	}
	return redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, 1, remaining)
}

// Authenticate resolves a bearer token to a live, non-blacklisted user.
func (s *AuthServiceImpl) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	revoked, err := redis.Exists(ctx, consts.TokenBlacklistKey+signature)
	if err != nil {
		return nil, fmt.Errorf("check token blacklist: %w", err)
	}
	if revoked {
		return nil, ErrTokenInvalid
	}

	user, err := s.userRepo.GetUserById(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrTokenInvalid
	}
	return user, nil
}

func (s *AuthServiceImpl) issue(ctx context.Context, user *model.User) (*dto.LoginResult, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Username, user.IsStaff, user.IsSuperuser)
	if err != nil {
		return nil, err
	}
	if err = s.userRepo.UpdateLastLogin(ctx, user.ID, s.now()); err != nil {
		log.WarnContext(ctx, "Failed to update last login", "user_id", user.ID, "err", err)
	}
	log.InfoContext(ctx, "Admin login", "username", user.Username)
	return &dto.LoginResult{Token: token, ExpiresIn: int64(s.tokens.TTL().Seconds())}, nil
}

func checkAdmitted(user *model.User) error {
	switch {
	case !user.IsActive:
		return ErrUserInactive
	case !user.IsStaff:
		return ErrNotStaff
	}
	return nil
}

