// Package audit records and lists audit entries. Recording is best-effort:
// a failed write is logged and counted but never reported to the caller.
package audit

import (
	"context"
	"fmt"
	"strings"

	apperrors "kycdesk/internal/errors"
	"kycdesk/internal/metrics"
	"kycdesk/internal/models"
	"kycdesk/internal/repositories"
	"kycdesk/internal/repositories/query"
	"kycdesk/internal/requestctx"
	"kycdesk/internal/services/scope"

	"github.com/google/uuid"
	"github.com/mssola/useragent"
	"github.com/rs/zerolog/log"
)

type Service interface {
	Record(ctx context.Context, actor uuid.UUID, region, action string, status models.AuditStatus, details string)
	List(ctx context.Context, p models.Principal, status, term string) ([]models.AuditLogView, error)
}

type service struct {
	repo    repositories.AuditRepository
	metrics *metrics.Metrics
}

func NewService(repo repositories.AuditRepository, m *metrics.Metrics) Service {
	return &service{repo: repo, metrics: m}
}

func (s *service) Record(ctx context.Context, actor uuid.UUID, region, action string, status models.AuditStatus, details string) {
	entry := &models.AuditLog{
		UserID:    actor,
		Action:    action,
		Region:    region,
		Status:    status,
		Details:   details,
		IPAddress: requestctx.ClientIP(ctx),
		UserAgent: DescribeUserAgent(requestctx.UserAgent(ctx)),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.metrics.IncrementAuditFailure()
		// action only; details may carry user input
		log.Error().Err(err).Str("action", action).Msg("audit log write failed")
	}
}

func (s *service) List(ctx context.Context, p models.Principal, status, term string) ([]models.AuditLogView, error) {
	filters, err := scope.AuditLogs(p, status)
	if err != nil {
		return nil, err
	}
	logs, err := s.repo.List(ctx, query.Query{Filters: filters, Term: term})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return logs, nil
}

// DescribeUserAgent summarises a raw User-Agent header as "Browser version on OS".
func DescribeUserAgent(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	ua := useragent.New(raw)
	name, version := ua.Browser()
	if ua.Bot() {
		return "bot: " + name
	}
	desc := strings.TrimSpace(name + " " + version)
	if os := ua.OS(); os != "" {
		desc = fmt.Sprintf("%s on %s", desc, os)
	}
	if desc == "" {
		return raw
	}
	return desc
}
