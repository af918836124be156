// Package usage enforces the daily conversion quota.
//
// Free callers get a fixed number of successful conversions per UTC day.
// Pro callers (and the owner key, which handlers treat as pro) are
// unlimited. Where the count lives is pluggable: Postgres by default,
// Redis when configured.
package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/Shimizu-Technology/pdfhustle-api/internal/models"
)

// Unlimited is reported as Limit and Remaining for plans without a quota.
const Unlimited = -1

// DefaultFreeDailyLimit is used when the configured limit is not positive.
const DefaultFreeDailyLimit = 5

// Counter stores how many conversions an owner made on a given UTC day.
type Counter interface {
	Count(ctx context.Context, owner models.Owner, day time.Time) (int, error)
	Increment(ctx context.Context, owner models.Owner, day time.Time) error
}

// Quota is the result of a check.
type Quota struct {
	Plan      models.Plan
	Used      int
	Limit     int // Unlimited for pro
	Remaining int // Unlimited for pro
	Allowed   bool
}

// Response converts the quota to its API shape.
func (q Quota) Response() models.UsageResponse {
	return models.UsageResponse{
		Plan:       q.Plan,
		UsedToday:  q.Used,
		Limit:      q.Limit,
		Remaining:  q.Remaining,
		CanConvert: q.Allowed,
	}
}

// Meter checks and records usage against a Counter.
type Meter struct {
	counter   Counter
	freeLimit int
	now       func() time.Time
}

// NewMeter creates a meter. freeLimit ≤ 0 falls back to DefaultFreeDailyLimit.
func NewMeter(counter Counter, freeLimit int) *Meter {
	if freeLimit <= 0 {
		freeLimit = DefaultFreeDailyLimit
	}
	return &Meter{counter: counter, freeLimit: freeLimit, now: time.Now}
}

// Check reports how much of today's quota the owner has used.
func (m *Meter) Check(ctx context.Context, owner models.Owner, plan models.Plan) (Quota, error) {
	used, err := m.counter.Count(ctx, owner, m.now())
	if err != nil {
		return Quota{}, fmt.Errorf("failed to read usage: %w", err)
	}
	return Evaluate(plan, used, m.freeLimit), nil
}

// Record counts one successful conversion for today.
func (m *Meter) Record(ctx context.Context, owner models.Owner) error {
	if err := m.counter.Increment(ctx, owner, m.now()); err != nil {
		return fmt.Errorf("failed to record usage: %w", err)
	}
	return nil
}

// Evaluate applies the plan rules to a usage count.
func Evaluate(plan models.Plan, used, freeLimit int) Quota {
	if plan == models.PlanPro {
		return Quota{Plan: plan, Used: used, Limit: Unlimited, Remaining: Unlimited, Allowed: true}
	}
	if plan == "" {
		plan = models.PlanFree
	}
	remaining := freeLimit - used
	if remaining < 0 {
		remaining = 0
	}
	return Quota{Plan: plan, Used: used, Limit: freeLimit, Remaining: remaining, Allowed: remaining > 0}
}

// DayStart returns midnight UTC of t's UTC day.
func DayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextDayStart returns the following UTC midnight, when quotas reset.
func NextDayStart(t time.Time) time.Time {
	return DayStart(t).AddDate(0, 0, 1)
}
