package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rizkypriyadi/authkit/internal/auth/domain"
	"github.com/rizkypriyadi/authkit/pkg/constant"
)

// RedisStore keeps the three session entries under a common prefix. Save and
// Clear go through MULTI/EXEC so the entries change together.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(name string) string {
	return s.prefix + ":" + name
}

func (s *RedisStore) Save(ctx context.Context, rec *domain.SessionRecord) error {
	userJSON, err := json.Marshal(rec.User)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(constant.SessionKeyAccessToken), rec.AccessToken, 0)
	pipe.Set(ctx, s.key(constant.SessionKeyRefreshToken), rec.RefreshToken, 0)
	pipe.Set(ctx, s.key(constant.SessionKeyUser), userJSON, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("persist session record: %w", err)
	}

	return nil
}

func (s *RedisStore) Load(ctx context.Context) (*domain.SessionRecord, error) {
	vals, err := s.client.MGet(ctx,
		s.key(constant.SessionKeyAccessToken),
		s.key(constant.SessionKeyRefreshToken),
		s.key(constant.SessionKeyUser),
	).Result()
	if err != nil {
		return nil, fmt.Errorf("read session record: %w", err)
	}

	present := 0
	parts := make([]string, len(vals))
	for i, v := range vals {
		if sv, ok := v.(string); ok && sv != "" {
			parts[i] = sv
			present++
		}
	}
	if present == 0 {
		return nil, nil
	}
	if present < len(vals) {
		return nil, fmt.Errorf("corrupt session record: %d of %d entries present", present, len(vals))
	}

	var user domain.User
	if err := json.Unmarshal([]byte(parts[2]), &user); err != nil {
		return nil, fmt.Errorf("corrupt session record: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("corrupt session record: empty identity")
	}

	return &domain.SessionRecord{
		AccessToken:  parts[0],
		RefreshToken: parts[1],
		User:         user,
	}, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx,
		s.key(constant.SessionKeyAccessToken),
		s.key(constant.SessionKeyRefreshToken),
		s.key(constant.SessionKeyUser),
	)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("clear session record: %w", err)
	}

	return nil
}

var _ domain.SessionStore = (*RedisStore)(nil)
