package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vbonduro/assetreg/internal/domain"
)

const defaultActivityLimit = 100

// logRepository is the subset of store.LogStore that ActivityService requires.
type logRepository interface {
	Append(ctx context.Context, userName, action string) error
	ListRecent(ctx context.Context, limit int) ([]*domain.LogEntry, error)
}

// ActivityService records who changed what. Recording is best-effort: a
// failed append is logged and swallowed.
type ActivityService struct {
	logs   logRepository
	logger *slog.Logger
}

func NewActivityService(logs logRepository, logger *slog.Logger) *ActivityService {
	return &ActivityService{logs: logs, logger: logger}
}

func (s *ActivityService) Record(ctx context.Context, actor domain.Actor, format string, args ...any) {
	action := fmt.Sprintf(format, args...)
	if err := s.logs.Append(ctx, actor.Name, action); err != nil {
		s.logger.Warn("failed to record activity", "user", actor.Name, "action", action, "error", err)
	}
}

// Recent returns the newest entries first. Only administrators may read the
// log. A non-positive limit selects the default.
func (s *ActivityService) Recent(ctx context.Context, actor domain.Actor, limit int) ([]*domain.LogEntry, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	return s.logs.ListRecent(ctx, limit)
}
