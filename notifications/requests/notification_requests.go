package requests

// NotificationActionRequest is one follow-up action supplied when
// creating a notification directly.
type NotificationActionRequest struct {
	ActionType string `json:"action_type"`
	Label      string `json:"label"`
	Payload    string `json:"payload"`
}

type CreateNotificationRequest struct {
	UserID  string                      `json:"user_id"`
	Title   string                      `json:"title"`
	Message string                      `json:"message"`
	IsRead  bool                        `json:"is_read"`
	Actions []NotificationActionRequest `json:"actions"`
}
