package preferences

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	platformredis "mobiq/internal/platform/redis"
	id "mobiq/pkg/domain"
)

// Redis persists preferences in Redis. Keys carry no TTL: the selection must
// survive reloads for the lifetime of the browser profile.
type Redis struct {
	client *platformredis.Client
}

func NewRedis(client *platformredis.Client) *Redis {
	return &Redis{client: client}
}

func activeTenantKey(profileID id.ProfileID) string {
	return "prefs:" + string(profileID) + ":active_tenant"
}

func themeKey(profileID id.ProfileID) string {
	return "prefs:" + string(profileID) + ":theme"
}

func (s *Redis) GetActiveTenant(ctx context.Context, profileID id.ProfileID) (id.TenantID, bool, error) {
	val, err := s.client.Get(ctx, activeTenantKey(profileID)).Result()
	if errors.Is(err, goredis.Nil) {
		return id.TenantID{}, false, nil
	}
	if err != nil {
		return id.TenantID{}, false, fmt.Errorf("get active tenant: %w", err)
	}
	tenantID, err := id.ParseTenantID(val)
	if err != nil {
		// A corrupt value behaves like no selection; the resolver repairs it.
		return id.TenantID{}, false, nil
	}
	return tenantID, true, nil
}

func (s *Redis) SetActiveTenant(ctx context.Context, profileID id.ProfileID, tenantID id.TenantID) error {
	if err := s.client.Set(ctx, activeTenantKey(profileID), tenantID.String(), 0).Err(); err != nil {
		return fmt.Errorf("set active tenant: %w", err)
	}
	return nil
}

func (s *Redis) GetTheme(ctx context.Context, profileID id.ProfileID) (string, error) {
	val, err := s.client.Get(ctx, themeKey(profileID)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get theme: %w", err)
	}
	return val, nil
}

func (s *Redis) SetTheme(ctx context.Context, profileID id.ProfileID, theme string) error {
	if err := s.client.Set(ctx, themeKey(profileID), theme, 0).Err(); err != nil {
		return fmt.Errorf("set theme: %w", err)
	}
	return nil
}
