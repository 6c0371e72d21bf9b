package submit

import (
	"context"
	"sort"

	"go.uber.org/zap"
)

// LogSubmitter records payloads in the log and always succeeds. It is the
// default collaborator when no webhook is configured.
type LogSubmitter struct {
	logger *zap.Logger
}

var _ Submitter = (*LogSubmitter)(nil)

// NewLogSubmitter wraps logger; nil falls back to a no-op logger.
func NewLogSubmitter(logger *zap.Logger) *LogSubmitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSubmitter{logger: logger.Named("submit")}
}

// Submit logs the payload fields in a stable order.
func (s *LogSubmitter) Submit(ctx context.Context, payload Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	keys := make([]string, 0, len(payload.Values))
	for key := range payload.Values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fields := []zap.Field{
		zap.String("form", payload.FormID),
		zap.String("session", payload.SessionID),
		zap.Time("submitted_at", payload.SubmittedAt),
	}
	for _, key := range keys {
		fields = append(fields, zap.Any("value."+key, payload.Values[key]))
	}
	s.logger.Info("form submitted", fields...)
	return nil
}
