// Package scope derives the effective listing filters for a caller.
//
// Only a principal that may view all regions keeps the region it asked for.
// Everyone else is pinned to the region carried by their session, whatever
// the request said. Status is always caller-controlled.
package scope

import (
	apperrors "kycdesk/internal/errors"
	"kycdesk/internal/models"
)

// Effective maps a caller and the requested filters onto the filters that
// will actually be applied.
func Effective(p models.Principal, requestedRegion, requestedStatus string) models.Filters {
	if p.Capabilities.ViewAllRegions {
		return models.Filters{Region: requestedRegion, Status: requestedStatus}
	}
	return models.Filters{Region: p.Region, Status: requestedStatus, RegionPinned: true}
}

// AuditLogs gates audit-log visibility before scoping. Audit listings take no
// region parameter, so privileged callers see every region.
func AuditLogs(p models.Principal, requestedStatus string) (models.Filters, error) {
	if !p.Capabilities.ViewAuditLogs {
		return models.Filters{}, apperrors.ErrInsufficientRole
	}
	return Effective(p, models.FilterAll, requestedStatus), nil
}
