package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SriHarshaKodavati/openBill/database"
	"github.com/SriHarshaKodavati/openBill/models"
)

const groupCacheTTL = 10 * time.Minute

func groupCacheKey(teamCode string) string {
	return "openbill:group:" + teamCode
}

// cachedGroup carries the members, which Group hides from JSON.
type cachedGroup struct {
	Group   models.Group         `json:"group"`
	Members []models.GroupMember `json:"members"`
}

func getCachedGroup(ctx context.Context, teamCode string) (*models.Group, bool) {
	if database.Redis == nil {
		return nil, false
	}
	data, err := database.Redis.Get(ctx, groupCacheKey(teamCode)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.WarnContext(ctx, "⚠️  Group cache read failed", "team_code", teamCode, "error", err)
		}
		return nil, false
	}
	var cached cachedGroup
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false
	}
	group := cached.Group
	group.Members = cached.Members
	return &group, true
}

func setCachedGroup(ctx context.Context, group *models.Group) {
	if database.Redis == nil {
		return
	}
	data, err := json.Marshal(cachedGroup{Group: *group, Members: group.Members})
	if err != nil {
		return
	}
	if err := database.Redis.Set(ctx, groupCacheKey(group.TeamCode), data, groupCacheTTL).Err(); err != nil {
		slog.WarnContext(ctx, "⚠️  Group cache write failed", "team_code", group.TeamCode, "error", err)
	}
}

func invalidateGroup(ctx context.Context, teamCode string) {
	if database.Redis == nil {
		return
	}
	if err := database.Redis.Del(ctx, groupCacheKey(teamCode)).Err(); err != nil {
		slog.WarnContext(ctx, "⚠️  Group cache invalidation failed", "team_code", teamCode, "error", err)
	}
}
