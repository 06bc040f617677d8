package model

import "strings"

// modelRate is the USD price per million tokens.
type modelRate struct {
	Input  float64
	Output float64
}

// rates maps model-name fragments to their published per-token pricing.
// Matching is by substring on the lowercased model name, first hit wins,
// so more specific fragments must come before generic ones.
var rates = []struct {
	fragment string
	rate     modelRate
}{
	{"gpt-4o-mini", modelRate{Input: 0.15, Output: 0.60}},
	{"gpt-4o", modelRate{Input: 2.50, Output: 10.00}},
	{"gpt-4.1-mini", modelRate{Input: 0.40, Output: 1.60}},
	{"gpt-4.1", modelRate{Input: 2.00, Output: 8.00}},
	{"o3-mini", modelRate{Input: 1.10, Output: 4.40}},
	{"o3", modelRate{Input: 2.00, Output: 8.00}},
	{"claude-3-5-haiku", modelRate{Input: 0.80, Output: 4.00}},
	{"haiku", modelRate{Input: 1.00, Output: 5.00}},
	{"sonnet", modelRate{Input: 3.00, Output: 15.00}},
	{"opus", modelRate{Input: 15.00, Output: 75.00}},
	{"deepseek", modelRate{Input: 0.27, Output: 1.10}},
	{"kimi", modelRate{Input: 0.60, Output: 2.50}},
	{"llama", modelRate{Input: 0.59, Output: 0.79}},
}

// defaultRate is used when the model is not in the table. Charging a
// conservative nonzero rate keeps the cost limit meaningful for unknown
// models; a zero rate would disable it entirely.
var defaultRate = modelRate{Input: 1.00, Output: 3.00}

// CallCost computes the USD cost of one call for the given model and
// token counts.
func CallCost(modelName string, inputTokens, outputTokens int) float64 {
	rate := defaultRate
	lower := strings.ToLower(modelName)
	for _, r := range rates {
		if strings.Contains(lower, r.fragment) {
			rate = r.rate
			break
		}
	}
	return float64(inputTokens)*rate.Input/1e6 + float64(outputTokens)*rate.Output/1e6
}
