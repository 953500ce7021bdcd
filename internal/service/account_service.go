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
	log "log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const codeLength = 4

// AccountService self-service flows driven by emailed codes and links.
type AccountService interface {
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, in *dto.ResetPasswordDTO) error
	Activate(ctx context.Context, in *dto.ActivateDTO) error
	SendEmailVerification(ctx context.Context, user *model.User) error
	ConfirmEmail(ctx context.Context, user *model.User, code string) error
	RequestEmailChange(ctx context.Context, user *model.User, newEmail string) error
	ConfirmEmailChange(ctx context.Context, user *model.User, code string) (*model.User, error)
}

type AccountServiceImpl struct {
	userRepo     repository.UserRepo
	emailService EmailService
	codeTTL      time.Duration
}

func NewAccountService(userRepo repository.UserRepo, emailService EmailService, codeTTL time.Duration) AccountService {
	return &AccountServiceImpl{userRepo: userRepo, emailService: emailService, codeTTL: codeTTL}
}

type pendingEmailChange struct {
	Code  string `json:"code"`
	Email string `json:"email"`
}

// ForgotPassword stays silent about unknown addresses.
func (s *AccountServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil || !user.IsActive {
		log.InfoContext(ctx, "Password reset requested for unknown address")
		return nil
	}

	code, err := util.GenerateCode(codeLength)
	if err != nil {
		return err
	}
	if err = redis.SetWithExpiration(ctx, resetKey(email), code, s.codeTTL); err != nil {
		return err
	}
	s.emailService.Send(ctx, mail.NewPasswordResetTask(user.Email, user.FirstName, code))
	return nil
}

func (s *AccountServiceImpl) ResetPassword(ctx context.Context, in *dto.ResetPasswordDTO) error {
	key := resetKey(in.Email)
	stored, err := redis.GetValue(ctx, key)
	if err != nil {
		return err
	}
	if stored == "" || stored != in.Code {
		return ErrCodeIncorrect
	}
	user, err := s.userRepo.GetUserByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return err
	}
	if user == nil {
		return ErrCodeIncorrect
	}

	if err = s.setPassword(ctx, user.ID, in.NewPassword); err != nil {
		return err
	}
	if err = redis.DeleteKey(ctx, key); err != nil {
		log.WarnContext(ctx, "Failed to drop used reset code", "err", err)
	}
	log.InfoContext(ctx, "Password reset", "username", user.Username)
	return nil
}

// Activate sets the first password of an invited user and marks the address verified.
func (s *AccountServiceImpl) Activate(ctx context.Context, in *dto.ActivateDTO) error {
	key := consts.ActivationTokenKey + strconv.FormatUint(in.UID, 10)
	stored, err := redis.GetValue(ctx, key)
	if err != nil {
		return err
	}
	if stored == "" || stored != in.Token {
		return ErrActivationInvalid
	}
	user, err := s.userRepo.GetUserById(ctx, in.UID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrActivationInvalid
	}

	if err = s.setPassword(ctx, user.ID, in.Password); err != nil {
		return err
	}
	user.IsActive = true
	user.EmailVerified = true
	if err = s.userRepo.UpdateUser(ctx, user); err != nil {
		return err
	}
	if err = redis.DeleteKey(ctx, key); err != nil {
		log.WarnContext(ctx, "Failed to drop used activation token", "err", err)
	}
	log.InfoContext(ctx, "Account activated", "username", user.Username)
	return nil
}

func (s *AccountServiceImpl) SendEmailVerification(ctx context.Context, user *model.User) error {
	if user.Email == "" {
		return ErrEmailNotSet
	}
	code, err := util.GenerateCode(codeLength)
	if err != nil {
		return err
	}
	if err = redis.SetWithExpiration(ctx, verificationKey(user.ID), code, s.codeTTL); err != nil {
		return err
	}
	s.emailService.Send(ctx, mail.NewEmailVerificationTask(user.Email, user.FirstName, code))
	return nil
}

func (s *AccountServiceImpl) ConfirmEmail(ctx context.Context, user *model.User, code string) error {
	stored, err := redis.GetValue(ctx, verificationKey(user.ID))
	if err != nil {
		return err
	}
	if stored == "" || stored != code {
		return ErrCodeIncorrect
	}
	user.EmailVerified = true
	if err = s.userRepo.UpdateUser(ctx, user); err != nil {
		return err
	}
	return redis.DeleteKey(ctx, verificationKey(user.ID))
}

// RequestEmailChange mails the code to the new address; the account keeps
// its current email until the code is confirmed.
func (s *AccountServiceImpl) RequestEmailChange(ctx context.Context, user *model.User, newEmail string) error {
	newEmail = strings.TrimSpace(newEmail)
	taken, err := s.userRepo.EmailTaken(ctx, newEmail, user.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailExist
	}

	code, err := util.GenerateCode(codeLength)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(pendingEmailChange{Code: code, Email: newEmail})
	if err != nil {
		return err
	}
	if err = redis.SetWithExpiration(ctx, emailChangeKey(user.ID), payload, s.codeTTL); err != nil {
		return err
	}
	s.emailService.Send(ctx, mail.NewEmailChangeVerificationTask(newEmail, user.FirstName, code))
	return nil
}

func (s *AccountServiceImpl) ConfirmEmailChange(ctx context.Context, user *model.User, code string) (*model.User, error) {
	raw, err := redis.GetValue(ctx, emailChangeKey(user.ID))
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, ErrCodeIncorrect
	}
	var pending pendingEmailChange
	if err = json.Unmarshal([]byte(raw), &pending); err != nil || pending.Code != code {
		return nil, ErrCodeIncorrect
	}

	taken, err := s.userRepo.EmailTaken(ctx, pending.Email, user.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailExist
	}
	user.Email = pending.Email
	user.EmailVerified = true
	if err = s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	if err = redis.DeleteKey(ctx, emailChangeKey(user.ID)); err != nil {
		log.WarnContext(ctx, "Failed to drop used email change code", "err", err)
	}
	return user, nil
}

func (s *AccountServiceImpl) setPassword(ctx context.Context, userID uint64, password string) error {
	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, hash)
}

func resetKey(email string) string {
	return consts.PasswordResetKey + strings.ToLower(strings.TrimSpace(email))
}

func verificationKey(userID uint64) string {
	return consts.VerificationKey + strconv.FormatUint(userID, 10)
}

func emailChangeKey(userID uint64) string {
	return consts.EmailChangeKey + strconv.FormatUint(userID, 10)
}
