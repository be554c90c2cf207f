package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/edu-portal-api/internal/models"
	"github.com/noah-isme/edu-portal-api/pkg/jobs"
)

type auditRepository interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

// auditRecorder is what mutating services need from the audit trail.
type auditRecorder interface {
	Record(ctx context.Context, entry models.AuditLog)
}

// AuditConfig sizes the audit worker pool.
type AuditConfig struct {
	Workers    int
	BufferSize int
	Retries    int
}

// AuditService writes audit entries off the request path.
type AuditService struct {
	repo    auditRepository
	queue   *jobs.Queue[models.AuditLog]
	metrics *MetricsService
	logger  *zap.Logger
}

// NewAuditService builds the service and its queue; call Start before use.
func NewAuditService(repo auditRepository, metrics *MetricsService, logger *zap.Logger, cfg AuditConfig) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AuditService{repo: repo, metrics: metrics, logger: logger}
	s.queue = jobs.NewQueue("audit", s.write, jobs.QueueConfig{
		Workers:    cfg.Workers,
		BufferSize: cfg.BufferSize,
		MaxRetries: cfg.Retries,
		RetryDelay: 200 * time.Millisecond,
		Logger:     logger,
	})
	return s
}

// Start launches the workers.
func (s *AuditService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop waits for workers and flushes pending entries.
func (s *AuditService) Stop() {
	s.queue.Stop()
}

// Record enqueues entry. Failures are logged and never surface to the caller.
func (s *AuditService) Record(_ context.Context, entry models.AuditLog) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := s.queue.Enqueue(jobs.Job[models.AuditLog]{ID: entry.ID, Type: entry.Action, Payload: entry}); err != nil {
		s.metrics.RecordAuditJob("dropped")
		s.logger.Warn("audit entry dropped", zap.String("action", entry.Action), zap.String("resource", entry.Resource), zap.Error(err))
	}
}

func (s *AuditService) write(ctx context.Context, job jobs.Job[models.AuditLog]) error {
	entry := job.Payload
	if err := s.repo.Create(ctx, &entry); err != nil {
		s.metrics.RecordAuditJob("failed")
		return err
	}
	s.metrics.RecordAuditJob("written")
	return nil
}

// auditEntry builds an entry for an action taken by the session's user.
func auditEntry(claims *models.JWTClaims, session models.Session, action, resource, resourceID string, values interface{}) models.AuditLog {
	entry := models.AuditLog{
		Action:    action,
		Resource:  resource,
		IPAddress: session.IP,
		UserAgent: session.UserAgent,
	}
	if claims != nil {
		userID := claims.UserID
		entry.UserID = &userID
	}
	if resourceID != "" {
		entry.ResourceID = &resourceID
	}
	if values != nil {
		if raw, err := json.Marshal(values); err == nil {
			entry.NewValues = raw
		}
	}
	return entry
}
