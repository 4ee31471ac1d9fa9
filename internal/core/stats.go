package core

// UsageStats aggregates analytics for the stats surfaces. String fields
// carry pre-formatted values so every transport renders them the same way.
type UsageStats struct {
	CurrentSession SessionUsage    `json:"current_session"`
	Historical     HistoricalUsage `json:"historical"`
	Insights       UsageInsights   `json:"insights"`
}

// SessionUsage covers the queries recorded since process start.
type SessionUsage struct {
	TotalQueries    int           `json:"total_queries"`
	AvgResponseTime string        `json:"avg_response_time"`
	SuccessRate     string        `json:"success_rate"`
	ErrorCount      int           `json:"error_count"`
	SessionDuration string        `json:"session_duration"`
	TopIntents      []IntentCount `json:"top_intents"`
}

// IntentCount is one intent with its query count.
type IntentCount struct {
	Intent string `json:"intent"`
	Count  int    `json:"count"`
}

// HistoricalUsage covers everything the interaction store has seen.
type HistoricalUsage struct {
	TotalQueriesAllTime int64 `json:"total_queries_all_time"`
	TotalSessions       int64 `json:"total_sessions"`
}

// UsageInsights are derived patterns over the recorded queries.
type UsageInsights struct {
	PeakHours        []string          `json:"peak_hours"`
	CommonQuestions  []string          `json:"common_questions"`
	PerformanceTrend map[string]string `json:"performance_trends"`
}
