package mcp

import (
	"context"
	"time"

	"github.com/claude/trainlog/internal/stats"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetTrainingStats = mcp.NewTool("get_training_stats",
	mcp.WithDescription("Headline training totals: session count, set count, total volume (weight × reps summed over every set, in kg) and sessions this calendar month."),
)

var toolGetBodyPartVolume = mcp.NewTool("get_body_part_volume",
	mcp.WithDescription("Training volume per body part (chest, back, shoulders, arms, legs, core) over a trailing window. Returns absolute kg volumes and each part's percentage of the largest."),
	mcp.WithNumber("days", mcp.Description("Trailing window in days. Defaults to 7. Use 0 with all_time for no window."), mcp.DefaultNumber(7)),
	mcp.WithBoolean("all_time", mcp.Description("When true, ignore the window and return the all-time distribution.")),
)

var toolGetExerciseTimeSeries = mcp.NewTool("get_exercise_timeseries",
	mcp.WithDescription("Per-session progression for one exercise, sorted by date ascending. One point per session the exercise appears in."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exact exercise name as recorded (e.g. ベンチプレス)")),
	mcp.WithString("metric", mcp.Description("Value per session. Defaults to max-weight."), mcp.Enum("max-weight", "total-volume", "max-reps")),
)

var toolGetRecentSessions = mcp.NewTool("get_recent_sessions",
	mcp.WithDescription("Most recent workout sessions with full exercise and set detail, date descending."),
	mcp.WithNumber("limit", mcp.Description("Maximum sessions to return. Defaults to 5."), mcp.DefaultNumber(5)),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("The exercise catalog grouped by body part, plus every exercise name that appears in recorded history (including names no longer cataloged)."),
)

// --- Tool handlers ---

func (h *handlers) getTrainingStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions := h.app.Sessions()
	summary := map[string]any{
		"total_sessions":      stats.TotalSessions(sessions),
		"total_sets":          stats.TotalSets(sessions),
		"total_volume":        stats.TotalVolume(sessions),
		"sessions_this_month": stats.SessionsInMonth(sessions, time.Now()),
	}
	return toolJSON(summary)
}

func (h *handlers) getBodyPartVolume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions := h.app.Sessions()

	if req.GetBool("all_time", false) {
		volumes, hasData := stats.AllTimeBodyPartVolume(sessions)
		return toolJSON(map[string]any{
			"volumes":  volumes,
			"has_data": hasData,
		})
	}

	days := req.GetInt("days", 7)
	if days <= 0 {
		return mcp.NewToolResultError("days must be positive"), nil
	}
	volumes := stats.BodyPartVolume(sessions, days, time.Now())
	return toolJSON(map[string]any{
		"days":    days,
		"volumes": volumes,
		"heights": stats.BarHeights(volumes),
	})
}

func (h *handlers) getExerciseTimeSeries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	metric := stats.Metric(req.GetString("metric", string(stats.MetricMaxWeight)))
	if !stats.ValidMetric(metric) {
		return mcp.NewToolResultError("metric must be max-weight, total-volume or max-reps"), nil
	}

	points := stats.ExerciseTimeSeries(h.app.Sessions(), exercise, metric)
	return toolJSON(map[string]any{
		"exercise": exercise,
		"metric":   metric,
		"points":   points,
	})
}

func (h *handlers) getRecentSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 5)
	if limit < 0 {
		return mcp.NewToolResultError("limit must be non-negative"), nil
	}
	return toolJSON(stats.RecentSessions(h.app.Sessions(), limit))
}

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolJSON(map[string]any{
		"catalog": h.app.CatalogGroups(),
		"used":    stats.UsedExerciseNames(h.app.Sessions()),
	})
}

func toolJSON(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
