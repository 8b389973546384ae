package analysis

import "fmt"

// Breakdown scores the four inputs that feed overall confidence:
// extraction quality, classification certainty, and the mean confidence of
// metrics and insights. Empty collections score zero rather than being
// skipped, which pulls the overall number down when the model found
// nothing to report.
func Breakdown(extraction, classification float64, metrics map[string]MetricValue, insights []Insight) map[string]float64 {
	var metricSum float64
	for _, m := range metrics {
		metricSum += m.Confidence
	}
	metricMean := 0.0
	if len(metrics) > 0 {
		metricMean = metricSum / float64(len(metrics))
	}

	var insightSum float64
	for _, i := range insights {
		insightSum += i.Confidence
	}
	insightMean := 0.0
	if len(insights) > 0 {
		insightMean = insightSum / float64(len(insights))
	}

	return map[string]float64{
		"extraction":     extraction,
		"classification": classification,
		"metrics":        metricMean,
		"insights":       insightMean,
	}
}

// Overall averages the breakdown components.
func Overall(breakdown map[string]float64) float64 {
	if len(breakdown) == 0 {
		return 0
	}
	var sum float64
	for _, v := range breakdown {
		sum += v
	}
	return sum / float64(len(breakdown))
}

// ReviewDecision applies the escalation rules in priority order. The first
// matching rule supplies the reason.
func ReviewDecision(result *Result) (bool, string) {
	if result.OverallConfidence < 0.7 {
		return true, fmt.Sprintf("Low overall confidence (%.2f)", result.OverallConfidence)
	}
	if result.ExtractionConfidence < 0.6 {
		return true, fmt.Sprintf("Low extraction quality (%.2f)", result.ExtractionConfidence)
	}
	if len(result.Inconsistencies) > 0 {
		return true, "Internal inconsistencies found"
	}
	for _, gap := range result.Gaps {
		if gap.Importance == ImportanceCritical {
			return true, "Critical information gaps"
		}
	}
	return false, ""
}
