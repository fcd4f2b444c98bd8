package fee

import (
	"context"
	"sort"
	"time"
)

type (
	// RevenueBucket is one month's worth of collected payments.
	RevenueBucket struct {
		Year   int     `json:"year"`
		Month  int     `json:"month"`
		Amount float64 `json:"amount"`
	}

	Stats struct {
		TotalCount     int     `json:"total_count"`
		PendingCount   int     `json:"pending_count"`
		PaidCount      int     `json:"paid_count"`
		OverdueCount   int     `json:"overdue_count"`
		TotalCollected float64 `json:"total_collected"`
		// MonthlyRevenue sums payments received in the month containing `now`.
		MonthlyRevenue float64 `json:"monthly_revenue"`
		// RevenueSeries holds the most recent months with payments,
		// chronological, trimmed to maxRevenueBuckets.
		RevenueSeries []RevenueBucket `json:"revenue_series"`
	}
)

const maxRevenueBuckets = 6

// Stats aggregates the fee collection for the dashboard. Only Paid fees
// with a payment date contribute to revenue figures; a Paid fee missing
// its payment date is excluded rather than guessed at.
func (svc *Service) Stats(ctx context.Context, now time.Time) (Stats, error) {
	fees, err := svc.repo.GetAllFees(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{TotalCount: len(fees)}
	buckets := make(map[[2]int]float64)
	for _, f := range fees {
		switch {
		case f.Status == StatusPaid:
			stats.PaidCount++
		case f.IsOverdue(now):
			stats.OverdueCount++
		default:
			stats.PendingCount++
		}

		if f.Status != StatusPaid || !f.PaymentDate.Valid {
			continue
		}
		stats.TotalCollected += f.Amount

		paid := f.PaymentDate.Time.UTC()
		if paid.Year() == now.Year() && paid.Month() == now.Month() {
			stats.MonthlyRevenue += f.Amount
		}
		key := [2]int{paid.Year(), int(paid.Month())}
		buckets[key] += f.Amount
	}

	series := make([]RevenueBucket, 0, len(buckets))
	for key, amount := range buckets {
		series = append(series, RevenueBucket{Year: key[0], Month: key[1], Amount: amount})
	}
	sort.Slice(series, func(i, j int) bool {
		if series[i].Year != series[j].Year {
			return series[i].Year < series[j].Year
		}
		return series[i].Month < series[j].Month
	})
	if len(series) > maxRevenueBuckets {
		series = series[len(series)-maxRevenueBuckets:]
	}
	stats.RevenueSeries = series
	return stats, nil
}
