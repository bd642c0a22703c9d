package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// jobTTL bounds how long a terminal job stays queryable; after that the
// status endpoint falls back to the meal row.
const jobTTL = 24 * time.Hour

// RedisManager tracks jobs in Redis so that a poll can land on any instance
// of a multi-instance deployment.
type RedisManager struct {
	client *redis.Client
}

// NewRedisManager creates a Redis-backed job tracker
func NewRedisManager(redisHost, redisPort string) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", redisHost, redisPort),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisManager{client: client}, nil
}

// Put stores or replaces the job for its meal id
func (m *RedisManager) Put(job Job) {
	ctx := context.Background()
	job.UpdatedAt = time.Now()
	data, err := json.Marshal(job)
	if err != nil {
		return
	}
	m.client.Set(ctx, jobKey(job.MealID), data, jobTTL)
}

// Get returns the job for a meal id
func (m *RedisManager) Get(mealID uint) (Job, bool) {
	ctx := context.Background()
	result := m.client.Get(ctx, jobKey(mealID))
	if result.Err() != nil {
		return Job{}, false
	}
	var job Job
	if err := json.Unmarshal([]byte(result.Val()), &job); err != nil {
		return Job{}, false
	}
	return job, true
}

// Delete removes the job for a meal id
func (m *RedisManager) Delete(mealID uint) {
	ctx := context.Background()
	m.client.Del(ctx, jobKey(mealID))
}

// Close closes the Redis connection
func (m *RedisManager) Close() error {
	return m.client.Close()
}

func jobKey(mealID uint) string {
	return fmt.Sprintf("recognition:%d:job", mealID)
}
