package grammar

import (
	"encoding/json"
	"math"
	"sort"

	"grammar-backend/internal/shared/telemetry"
)

// MostCommonLimit caps the category ranking.
const MostCommonLimit = 10

type storedError struct {
	Rule struct {
		Category struct {
			Name string `json:"name"`
		} `json:"category"`
	} `json:"rule"`
}

// Summarize aggregates rows into a Summary. Rows whose error payload cannot be
// parsed still count toward the totals and averages but are left out of the
// category ranking. Categories with equal counts keep first-seen order.
func Summarize(rows []SummaryRow) Summary {
	out := Summary{
		TotalAnalyses:    len(rows),
		MostCommonErrors: []CategoryCount{},
	}
	if len(rows) == 0 {
		return out
	}

	var errSum, timeSum float64
	counts := map[string]int{}
	var order []string
	for _, row := range rows {
		errSum += float64(row.TotalErrors)
		timeSum += float64(row.ProcessingTime)

		var errs []storedError
		if err := json.Unmarshal(row.Errors, &errs); err != nil {
			telemetry.Warn("grammar.summary_parse_failed", map[string]any{
				"analysis_id": row.ID,
				"error":       err.Error(),
			})
			continue
		}
		for _, e := range errs {
			name := e.Rule.Category.Name
			if _, seen := counts[name]; !seen {
				order = append(order, name)
			}
			counts[name]++
		}
	}

	n := float64(len(rows))
	out.AverageErrors = math.Round(errSum/n*100) / 100
	out.AverageProcessingTime = int64(math.Round(timeSum / n))

	ranking := make([]CategoryCount, 0, len(order))
	for _, name := range order {
		ranking = append(ranking, CategoryCount{Category: name, Count: counts[name]})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})
	if len(ranking) > MostCommonLimit {
		ranking = ranking[:MostCommonLimit]
	}
	out.MostCommonErrors = ranking
	return out
}
