package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/truco/internal/types"
)

const (
	// Redis key 前缀
	roomKeyPrefix = "truco:room:"

	// 房间数据过期时间
	roomExpiration = 2 * time.Hour
)

// RedisStore Redis 房间目录，client 为 nil 时所有操作为空操作
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// SaveRoom 保存房间摘要
func (rs *RedisStore) SaveRoom(ctx context.Context, summary *types.RoomSummary) error {
	if rs.client == nil || summary == nil {
		return nil
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("序列化房间数据失败: %w", err)
	}
	return rs.client.Set(ctx, roomKeyPrefix+summary.Code, data, roomExpiration).Err()
}

// LoadRoom 加载房间摘要，不存在时返回 nil
func (rs *RedisStore) LoadRoom(ctx context.Context, code string) (*types.RoomSummary, error) {
	if rs.client == nil {
		return nil, nil
	}

	data, err := rs.client.Get(ctx, roomKeyPrefix+code).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var summary types.RoomSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("反序列化房间数据失败: %w", err)
	}
	return &summary, nil
}

// DeleteRoom 删除房间摘要
func (rs *RedisStore) DeleteRoom(ctx context.Context, code string) error {
	if rs.client == nil {
		return nil
	}
	return rs.client.Del(ctx, roomKeyPrefix+code).Err()
}

// ListRooms 列出目录中的所有房间
func (rs *RedisStore) ListRooms(ctx context.Context) ([]*types.RoomSummary, error) {
	rooms := make([]*types.RoomSummary, 0)
	if rs.client == nil {
		return rooms, nil
	}

	iter := rs.client.Scan(ctx, 0, roomKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		code := iter.Val()[len(roomKeyPrefix):]
		summary, err := rs.LoadRoom(ctx, code)
		if err != nil {
			return nil, err
		}
		if summary != nil {
			rooms = append(rooms, summary)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return rooms, nil
}
