package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// Retry configuration
const maxRetries = 3
const retryDelay = 2 * time.Minute

// CleanupExpiredFile removes the file when it is older than the TTL
func CleanupExpiredFile(filePath string, ttl time.Duration) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("error checking file: %v", err)
	}

	if time.Since(info.ModTime()) > ttl {
		err := os.Remove(filePath)
		if err != nil {
			return fmt.Errorf("error deleting expired file: %v", err)
		}
		log.Printf("Expired upload %s deleted.", filePath)
	}
	return nil
}

// CleanupAllExpired expires old uploads and drops the stale listing cache
// from Redis. Uploads are kept after a successful ingestion on purpose;
// this is the only path that ever ages them out.
func CleanupAllExpired(uploadDir string, fileTTL time.Duration, redisClient *redis.Client) error {
	entries, err := os.ReadDir(uploadDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error reading uploads directory: %v", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := CleanupExpiredFile(filepath.Join(uploadDir, entry.Name()), fileTTL); err != nil {
			log.Println("Error cleaning up file:", err)
		}
	}

	// Cached listing pages are stale once old uploads disappear
	iter := redisClient.Scan(context.Background(), 0, "excel_data:*", 0).Iterator()
	for iter.Next(context.Background()) {
		if err := redisClient.Del(context.Background(), iter.Val()).Err(); err != nil {
			return fmt.Errorf("error deleting cache key %s from Redis: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("error scanning cache keys in Redis: %v", err)
	}

	return nil
}

// RunScheduledCleanup runs cleanup tasks daily at 1 AM with retries and
// logs error messages on failure
func RunScheduledCleanup(redisClient *redis.Client, uploadDir string, fileTTL time.Duration) {
	c := cron.New()

	c.AddFunc("0 1 * * *", func() {
		log.Println("running scheduled cleanup task...")

		var retries int
		var cleanupSuccess bool

		for retries < maxRetries {
			log.Printf("attempt %d to clean up...", retries+1)
			err := CleanupAllExpired(uploadDir, fileTTL, redisClient)
			if err == nil {
				log.Println("cleanup successful!")
				cleanupSuccess = true
				break
			} else {
				log.Printf("cleanup failed: %v", err)
				retries++
				time.Sleep(retryDelay)
			}
		}

		if !cleanupSuccess {
			log.Printf("cleanup task failed after %d retries. please check the system.", retries)
		}
	})

	c.Start()
}
