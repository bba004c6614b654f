package services

import (
	"log"
	"os"
	"strconv"
	"time"

	"manabi/database"
	"manabi/models"
)

// CleanupService removes stale guest accounts in the background. Guests that
// never upgraded keep accumulating progress rows; after the retention window
// those rows are dead weight.
type CleanupService struct {
	interval  time.Duration
	retention time.Duration
	stop      chan struct{}
}

var cleanupService *CleanupService

// InitCleanupService initializes and starts the singleton cleanup service.
func InitCleanupService() {
	if os.Getenv("GUEST_CLEANUP_ENABLED") == "false" {
		log.Println("Guest cleanup disabled")
		return
	}

	retentionDays := envInt("GUEST_RETENTION_DAYS", 30)
	intervalHours := envInt("GUEST_CLEANUP_INTERVAL_HOURS", 24)

	cleanupService = &CleanupService{
		interval:  time.Duration(intervalHours) * time.Hour,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		stop:      make(chan struct{}),
	}
	go cleanupService.run()
}

// GetCleanupService returns the initialized cleanup service (nil if disabled).
func GetCleanupService() *CleanupService {
	return cleanupService
}

// Stop stops the background worker.
func (s *CleanupService) Stop() {
	close(s.stop)
}

func (s *CleanupService) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.CleanupStaleGuests(); err != nil {
				log.Printf("Guest cleanup failed: %v", err)
			}
		case <-s.stop:
			return
		}
	}
}

// CleanupStaleGuests deletes guest accounts whose last login is older than
// the retention window, together with their progress, session, and
// achievement rows.
func (s *CleanupService) CleanupStaleGuests() error {
	db := database.GetDB()
	cutoff := time.Now().Add(-s.retention)

	var stale []models.User
	if err := db.Where("is_guest = ? AND last_login < ?", true, cutoff).Find(&stale).Error; err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	ids := make([]uint, len(stale))
	for i, u := range stale {
		ids[i] = u.ID
	}

	if err := db.Where("user_id IN ?", ids).Delete(&models.LessonProgress{}).Error; err != nil {
		return err
	}
	if err := db.Where("user_id IN ?", ids).Delete(&models.StudySession{}).Error; err != nil {
		return err
	}
	if err := db.Where("user_id IN ?", ids).Delete(&models.UserAchievement{}).Error; err != nil {
		return err
	}
	if err := db.Delete(&stale).Error; err != nil {
		return err
	}

	log.Printf("✅ Cleaned up %d stale guest accounts", len(stale))
	return nil
}

func envInt(key string, defaultVal int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return defaultVal
}
