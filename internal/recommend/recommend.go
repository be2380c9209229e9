package recommend

import "strings"

// Recommendation maps a question intent to chart types worth drawing first.
type Recommendation struct {
	Intent     string   `json:"intent"`
	ChartTypes []string `json:"recommended_chart_types"`
	Reason     string   `json:"reason"`
}

type intentRule struct {
	keywords []string
	rec      Recommendation
}

var intentRules = []intentRule{
	{
		keywords: []string{"trend", "over time", "timeline", "change"},
		rec: Recommendation{
			Intent:     "trend",
			ChartTypes: []string{"line", "scatter"},
			Reason:     "time or sequence based change reads best as a line with a scatter for spread",
		},
	},
	{
		keywords: []string{"compare", "comparison", "ranking", "top", "bottom"},
		rec: Recommendation{
			Intent:     "comparison",
			ChartTypes: []string{"bar", "boxplot"},
			Reason:     "bars compare group magnitudes; boxplots compare their spread",
		},
	},
	{
		keywords: []string{"relationship", "correlation", "influence", "related"},
		rec: Recommendation{
			Intent:     "relationship",
			ChartTypes: []string{"scatter", "histogram"},
			Reason:     "scatter plots expose pairwise relationships; histograms show each variable's distribution",
		},
	},
	{
		keywords: []string{"ratio", "share", "composition", "proportion"},
		rec: Recommendation{
			Intent:     "composition",
			ChartTypes: []string{"bar"},
			Reason:     "categorical bars show composition with less distortion than pies",
		},
	},
	{
		keywords: []string{"missing", "quality", "outlier", "anomaly"},
		rec: Recommendation{
			Intent:     "quality",
			ChartTypes: []string{"missing", "boxplot"},
			Reason:     "missingness bars and boxplots surface data quality problems quickly",
		},
	},
}

var defaultRec = Recommendation{
	Intent:     "overview",
	ChartTypes: []string{"histogram", "bar", "scatter"},
	Reason:     "general exploration benefits from distribution, category, and relationship views together",
}

// ChartTypes recommends chart types for a free-text question by keyword
// intent matching.
func ChartTypes(question string) Recommendation {
	text := strings.ToLower(strings.TrimSpace(question))
	if text == "" {
		return defaultRec
	}
	for _, rule := range intentRules {
		for _, k := range rule.keywords {
			if strings.Contains(text, k) {
				return rule.rec
			}
		}
	}
	return defaultRec
}
