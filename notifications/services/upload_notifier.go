package services

import (
	"fmt"

	"habit-tracker-backend/db/models"
	notification_repositories "habit-tracker-backend/notifications/repositories"
	users_repositories "habit-tracker-backend/users/repositories"

	"github.com/google/uuid"
)

// UploadNotificationService records a completion notice, with download
// and delete follow-ups, for the user who triggered a spreadsheet upload.
// The write happens in its own transaction so a failure here can never
// undo the ingested rows.
type UploadNotificationService struct {
	notificationRepo notification_repositories.NotificationRepository
	userRepo         users_repositories.UserRepository
}

func NewUploadNotificationService(
	notificationRepo notification_repositories.NotificationRepository,
	userRepo users_repositories.UserRepository,
) *UploadNotificationService {
	return &UploadNotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

func (s *UploadNotificationService) NotifyUploadComplete(userID string, fileName string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", userID, err)
	}

	// The association is best effort: an unknown user simply means no
	// notification gets written.
	user, err := s.userRepo.GetUserByID(uid.String())
	if err != nil {
		return fmt.Errorf("failed to resolve user for notification: %w", err)
	}

	notification := &models.Notification{
		UserID:  user.ID,
		Title:   "Excel upload completed",
		Message: fmt.Sprintf("The file '%s' was processed successfully.", fileName),
		IsRead:  false,
		Actions: []models.NotificationAction{
			{
				ActionType: models.DownloadActionType,
				Label:      "Download file",
				Payload:    fileName,
			},
			{
				ActionType: models.DeleteActionType,
				Label:      "Delete file",
				Payload:    fileName,
			},
		},
	}

	if _, err := s.notificationRepo.CreateNotification(notification); err != nil {
		return fmt.Errorf("failed to create upload notification: %w", err)
	}
	return nil
}
