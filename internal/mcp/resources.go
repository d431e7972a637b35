package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/claude/trainlog/internal/stats"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Resource definitions ---

var resDashboard = mcp.NewResource(
	"trainlog://dashboard",
	"Training Dashboard",
	mcp.WithResourceDescription("Headline training totals, last 7 days of body-part volume, and the five most recent sessions"),
	mcp.WithMIMEType("application/json"),
)

var resCatalog = mcp.NewResource(
	"trainlog://catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("All cataloged exercises grouped by body part"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) dashboard(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	sessions := h.app.Sessions()
	now := time.Now()
	weekVolumes := stats.BodyPartVolume(sessions, 7, now)

	summary := map[string]any{
		"total_sessions":      stats.TotalSessions(sessions),
		"total_sets":          stats.TotalSets(sessions),
		"total_volume":        stats.TotalVolume(sessions),
		"sessions_this_month": stats.SessionsInMonth(sessions, now),
		"weekly_volume":       weekVolumes,
		"weekly_heights":      stats.BarHeights(weekVolumes),
		"recent_sessions":     stats.RecentSessions(sessions, 5),
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) catalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(h.app.CatalogGroups())
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
