package projections

import (
	"context"
	"time"

	domainMember "gymdesk/internal/domain/member"
)

// GetDashboardResult carries the member counts shown on the home screen.
type GetDashboardResult struct {
	Today        string
	Total        int
	Active       int
	Expired      int
	ExpiringSoon int
	NoEndDate    int
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	MemberStore      MemberStore
	Now              func() time.Time
	ExpiringSoonDays int
}

// QueryGetDashboard counts members by expiry class.
// POST: ExpiringSoon members are also counted in Active
func QueryGetDashboard(ctx context.Context, deps GetDashboardDeps) (GetDashboardResult, error) {
	soon := deps.ExpiringSoonDays
	if soon <= 0 {
		soon = domainMember.DefaultExpiringSoonDays
	}
	_, today := clock(deps.Now)
	sum, err := deps.MemberStore.Summary(ctx, today, soon)
	if err != nil {
		return GetDashboardResult{}, err
	}
	return GetDashboardResult{
		Today:        today,
		Total:        sum.Total,
		Active:       sum.Active,
		Expired:      sum.Expired,
		ExpiringSoon: sum.ExpiringSoon,
		NoEndDate:    sum.NoEndDate,
	}, nil
}
