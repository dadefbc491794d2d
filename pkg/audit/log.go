package audit

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/uswitch/typearchive/pkg/authnz"
	"github.com/uswitch/typearchive/pkg/middleware"
)

var ErrNoUser = errors.New("no user to audit")

type AuditData map[string]interface{}

type AuditEntry struct {
	User string    `json:"user"`
	Data AuditData `json:"data"`
	Time time.Time `json:"time"`
}

type Logger interface {
	middleware.Middleware

	Log(context.Context, AuditData) error
}

type auditLog struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewAuditLog writes one entry per audited action to logger under the "audit" name.
func NewAuditLog(logger *zap.Logger) Logger {
	return &auditLog{
		logger: logger.Named("audit"),
		now:    time.Now,
	}
}

func (a *auditLog) Log(ctx context.Context, data AuditData) error {
	user, ok := authnz.UserFromContext(ctx)
	if !ok {
		// we should always be after the auth middleware, if we don't know who is doing
		// something we can't let it happen
		return ErrNoUser
	}

	entry := AuditEntry{
		User: user,
		Data: data,
		Time: a.now(),
	}

	a.logger.Info("audit",
		zap.String("user", entry.User),
		zap.Any("data", entry.Data),
		zap.Time("time", entry.Time),
	)

	return nil
}

func (a *auditLog) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := a.Log(r.Context(), AuditData{
			"method": r.Method,
			"path":   r.URL.Path,
			"query":  r.URL.RawQuery,
		})
		if err != nil {
			a.logger.Error("failed to audit request", zap.String("path", r.URL.Path), zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r)
	})
}
