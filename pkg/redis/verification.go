package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/pedefood/pedefood-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// codeTTL bounds how long a phone verification code stays valid.
const codeTTL = 5 * time.Minute

// codeKV is the storage primitive behind the verification code store.
// Production binds it to the Redis client; tests substitute a local map.
type codeKV interface {
	set(ctx context.Context, key, value string, ttl time.Duration) error
	get(ctx context.Context, key string) (string, bool, error)
	del(ctx context.Context, key string) error
}

type redisKV struct{}

func (redisKV) set(ctx context.Context, key, value string, ttl time.Duration) error {
	return client.Set(ctx, key, value, ttl).Err()
}

func (redisKV) get(ctx context.Context, key string) (string, bool, error) {
	value, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (redisKV) del(ctx context.Context, key string) error {
	return client.Del(ctx, key).Err()
}

var codes codeKV = redisKV{}

// StoreVerificationCode stores a verification code for a phone number.
// Any previous code for the same number is replaced.
func StoreVerificationCode(ctx context.Context, phoneNumber, code string) error {
	key := fmt.Sprintf("verify:%s", phoneNumber)
	if err := codes.set(ctx, key, code, codeTTL); err != nil {
		logger.Error("Failed to store verification code", err, map[string]interface{}{
			"phone_number": phoneNumber,
		})
		return err
	}

	logger.Debug("Verification code stored", map[string]interface{}{
		"phone_number": phoneNumber,
		"ttl":          codeTTL.String(),
	})
	return nil
}

// CheckVerificationCode compares a submitted code against the stored one.
// A matching code is consumed: it cannot be used a second time. An
// expired or absent code simply fails the check.
func CheckVerificationCode(ctx context.Context, phoneNumber, code string) (bool, error) {
	key := fmt.Sprintf("verify:%s", phoneNumber)
	stored, ok, err := codes.get(ctx, key)
	if err != nil {
		logger.Error("Failed to read verification code", err, map[string]interface{}{
			"phone_number": phoneNumber,
		})
		return false, err
	}
	if !ok {
		return false, nil
	}

	if stored != code {
		return false, nil
	}

	if err := codes.del(ctx, key); err != nil {
		logger.Error("Failed to consume verification code", err, map[string]interface{}{
			"phone_number": phoneNumber,
		})
		return false, err
	}

	return true, nil
}
