/*
timeline.go - Full-lifespan timeline aggregation

PURPOSE:
  The "full lifespan" report mode shows every month from the earliest
  depreciation activity across a set of assets to the latest. This file
  computes that minimal contiguous month range.

EDGE CASE:
  An empty asset collection (or one in which no asset produces a
  schedule) yields an empty timeline. Callers must handle the empty
  case; they must not assume a current-date default.
*/
package depreciation

import "github.com/assettrack/asset-engine/asset"

// FullTimeline computes the contiguous month range spanning every
// asset's schedule, one labeled month at a time.
func (p Profile) FullTimeline(assets []asset.Asset) []TimelineMonth {
	var (
		earliest MonthKey
		latest   MonthKey
		seen     bool
	)

	for _, a := range assets {
		schedule := p.BuildSchedule(a)
		first, ok := schedule.First()
		if !ok {
			continue
		}
		last, _ := schedule.Last()

		if !seen {
			earliest, latest = first.Key(), last.Key()
			seen = true
			continue
		}
		if first.Key().Before(earliest) {
			earliest = first.Key()
		}
		if last.Key().After(latest) {
			latest = last.Key()
		}
	}

	if !seen {
		return nil
	}

	var timeline []TimelineMonth
	for k := earliest; !k.After(latest); k = k.Next() {
		timeline = append(timeline, TimelineMonth{
			Year:  k.Year,
			Month: k.Month,
			Label: MonthLabel(k.Year, k.Month),
		})
	}
	return timeline
}
