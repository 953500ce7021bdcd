package mail

import (
	"fmt"
	"time"
)

// Task names carried on the email queue.
const (
	TaskEmailVerification       = "email_verification"
	TaskPasswordReset           = "password_reset"
	TaskEmailChangeVerification = "email_change_verification"
	TaskActivationInvite        = "activation_invite"
	TaskOTPVerification         = "otp_verification"
)

const (
	MaxRetries     = 3
	baseRetryDelay = 60 * time.Second
)

// Task one queued email. Retries counts redeliveries already attempted.
type Task struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Args    map[string]string `json:"args"`
	Retries int               `json:"retries"`
}

// RetryDelay countdown before redelivery number retries+1: 60s, 120s, 240s.
func RetryDelay(retries int) time.Duration {
	return baseRetryDelay * time.Duration(1<<retries)
}

// CanRetry reports whether another redelivery is allowed.
func (t Task) CanRetry() bool {
	return t.Retries < MaxRetries
}

// Recipient address of the task, whatever its argument is called.
func (t Task) Recipient() string {
	for _, key := range []string{"receiver_email", "new_email", "email"} {
		if v := t.Args[key]; v != "" {
			return v
		}
	}
	return ""
}

func (t Task) arg(key string) (string, error) {
	v, ok := t.Args[key]
	if !ok || v == "" {
		return "", fmt.Errorf("task %s: missing argument %q", t.Name, key)
	}
	return v, nil
}

func NewEmailVerificationTask(receiverEmail, firstName, code string) Task {
	return Task{Name: TaskEmailVerification, Args: map[string]string{
		"receiver_email": receiverEmail, "first_name": firstName, "code": code,
	}}
}

func NewPasswordResetTask(email, firstName, code string) Task {
	return Task{Name: TaskPasswordReset, Args: map[string]string{
		"email": email, "first_name": firstName, "code": code,
	}}
}

func NewEmailChangeVerificationTask(newEmail, firstName, code string) Task {
	return Task{Name: TaskEmailChangeVerification, Args: map[string]string{
		"new_email": newEmail, "first_name": firstName, "code": code,
	}}
}

func NewActivationInviteTask(email, firstName, uid, token string) Task {
	return Task{Name: TaskActivationInvite, Args: map[string]string{
		"email": email, "first_name": firstName, "uid": uid, "token": token,
	}}
}

func NewOTPVerificationTask(email, firstName, otpCode string) Task {
	return Task{Name: TaskOTPVerification, Args: map[string]string{
		"email": email, "first_name": firstName, "otp_code": otpCode,
	}}
}
