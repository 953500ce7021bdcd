package service

import (
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/audit"
	"context"
	log "log/slog"
)

// ActorOf audit identity of an admin user.
func ActorOf(u *model.User) audit.Actor {
	if u == nil {
		return audit.Actor{}
	}
	return audit.Actor{Username: u.Username, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
}

// recordAudit never blocks the write it describes.
func recordAudit(ctx context.Context, write func() (string, error)) {
	if _, err := write(); err != nil {
		log.ErrorContext(ctx, "Failed to write admin audit record", "err", err)
	}
}
