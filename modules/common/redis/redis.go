package redis

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"revup-server/modules/common/config"
)

// JobQueueKey - Worker가 감시하는 Queue 키
const JobQueueKey = "jobs:queue"

// Connect - Redis 연결 생성
func Connect(cfg *config.Config) *redis.Client {
	log.Printf("🔌 Connecting to Redis: %s", cfg.GetRedisAddr())

	var tlsConfig *tls.Config
	if cfg.RedisUseTLS {
		tlsConfig = &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: true, // 관리형 Redis용
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Username:     cfg.RedisUsername,
		Password:     cfg.RedisPassword,
		TLSConfig:    tlsConfig,
		DB:           0,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	// 연결 테스트
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("❌ Redis ping failed: %v", err)
		return nil
	}

	return rdb
}

// cancelKey - Job 취소 플래그 키
func cancelKey(jobID string) string {
	return fmt.Sprintf("jobs:cancelled:%s", jobID)
}

// MarkJobCancelled - Job 취소 플래그 설정 (24시간 TTL)
func MarkJobCancelled(rdb *redis.Client, jobID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Set(ctx, cancelKey(jobID), "1", 24*time.Hour).Err(); err != nil {
		return fmt.Errorf("failed to set cancel flag: %w", err)
	}

	log.Printf("🛑 Job %s marked as cancelled", jobID)
	return nil
}

// IsJobCancelled - Job 취소 여부 확인
// Redis 장애 시 false 반환 (생성은 계속 진행)
func IsJobCancelled(rdb *redis.Client, jobID string) bool {
	if rdb == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	val, err := rdb.Get(ctx, cancelKey(jobID)).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Printf("⚠️ Failed to check cancel flag for %s: %v", jobID, err)
		return false
	}

	return val == "1"
}
