// Package kyc lists KYC cases and applies the two case mutations: a status
// transition and a note append.
package kyc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "kycdesk/internal/errors"
	"kycdesk/internal/metrics"
	"kycdesk/internal/models"
	"kycdesk/internal/repositories"
	"kycdesk/internal/repositories/query"
	"kycdesk/internal/services/scope"

	"github.com/google/uuid"
)

// actions maps accepted action words onto the resulting status.
var actions = map[string]models.KYCStatus{
	"approve":  models.KYCStatusApproved,
	"approved": models.KYCStatusApproved,
	"reject":   models.KYCStatusRejected,
	"rejected": models.KYCStatusRejected,
	"reset":    models.KYCStatusPending,
	"pending":  models.KYCStatusPending,
}

// ParseAction resolves an action word to a status.
func ParseAction(action string) (models.KYCStatus, error) {
	status, ok := actions[strings.ToLower(strings.TrimSpace(action))]
	if !ok {
		return "", apperrors.ErrInvalidAction
	}
	return status, nil
}

// TransitionRequest is the body of a status transition.
type TransitionRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
}

// NoteRequest is the body of a note append.
type NoteRequest struct {
	Content string `json:"content"`
}

type AuditRecorder interface {
	Record(ctx context.Context, actor uuid.UUID, region, action string, status models.AuditStatus, details string)
}

type Service interface {
	List(ctx context.Context, p models.Principal, region, status, term string) ([]models.KYCCaseView, error)
	Get(ctx context.Context, id string) (*models.KYCCaseDetail, error)
	Transition(ctx context.Context, p models.Principal, id string, req TransitionRequest) (models.KYCStatus, error)
	AddNote(ctx context.Context, p models.Principal, id string, req NoteRequest) error
}

type service struct {
	repo    repositories.KYCRepository
	audit   AuditRecorder
	metrics *metrics.Metrics
}

func NewService(repo repositories.KYCRepository, audit AuditRecorder, m *metrics.Metrics) Service {
	return &service{repo: repo, audit: audit, metrics: m}
}

func (s *service) List(ctx context.Context, p models.Principal, region, status, term string) ([]models.KYCCaseView, error) {
	filters := scope.Effective(p, region, status)
	cases, err := s.repo.List(ctx, query.Query{Filters: filters, Term: term})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return cases, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.KYCCaseDetail, error) {
	caseID, err := uuid.Parse(id)
	if err != nil {
		// no record can carry a malformed id
		return nil, apperrors.ErrCaseNotFound
	}
	detail, err := s.repo.GetDetail(ctx, caseID)
	if err != nil {
		return nil, mapErr(err)
	}
	return detail, nil
}

// Transition overwrites status and reason. Repeating a transition rewrites
// the same state; concurrent transitions are last-write-wins.
func (s *service) Transition(ctx context.Context, p models.Principal, id string, req TransitionRequest) (models.KYCStatus, error) {
	caseID, err := uuid.Parse(id)
	if err != nil {
		return "", apperrors.ErrCaseNotFound
	}
	// an unknown case is reported before a bad action
	if _, err := s.repo.GetByID(ctx, caseID); err != nil {
		return "", mapErr(err)
	}
	status, err := ParseAction(req.Action)
	if err != nil {
		return "", err
	}

	if err := s.repo.SetDecision(ctx, caseID, status, req.Reason); err != nil {
		return "", mapErr(err)
	}

	s.metrics.IncrementTransition(string(status))
	s.record(ctx, p, fmt.Sprintf("KYC case %s set to %s", caseID, status), req.Reason)
	return status, nil
}

func (s *service) AddNote(ctx context.Context, p models.Principal, id string, req NoteRequest) error {
	if strings.TrimSpace(req.Content) == "" {
		return apperrors.ErrEmptyNote
	}
	caseID, err := uuid.Parse(id)
	if err != nil {
		return apperrors.ErrCaseNotFound
	}

	if err := s.repo.AppendNote(ctx, caseID, req.Content); err != nil {
		return mapErr(err)
	}

	s.metrics.IncrementNote()
	s.record(ctx, p, fmt.Sprintf("Note added to KYC case %s", caseID), "")
	return nil
}

func (s *service) record(ctx context.Context, p models.Principal, action, details string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ctx, p.UserID, p.Region, action, models.AuditSuccess, details)
}

func mapErr(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.ErrCaseNotFound
	}
	return apperrors.Internal(err)
}
