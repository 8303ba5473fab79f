package api

// User is the authenticated identity from GET /auth/me.
type User struct {
	UserID   int64  `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"` // athlete or coach
	CoachID  int64  `json:"coach_id,omitempty"`
}

// LoginResult is the payload of a successful POST /auth/login.
type LoginResult struct {
	Token    string `json:"token"`
	UserType string `json:"user_type"`
	UserID   int64  `json:"user_id"`
	FullName string `json:"full_name"`
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	UserType    string `json:"user_type"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	DateOfBirth string `json:"date_of_birth"`
}

// Conversation is one row of the conversation list. Fetched fresh on
// every refresh, never persisted.
type Conversation struct {
	OtherUserID     int64  `json:"other_user_id"`
	FullName        string `json:"full_name"`
	ProfilePicture  string `json:"profile_picture"`
	LastMessage     string `json:"last_message"`
	LastMessageTime string `json:"last_message_time"`
	UnreadCount     int    `json:"unread_count"`
}

// Message is a single chat message. The server returns threads oldest
// to newest; the client preserves that order.
type Message struct {
	MessageID  int64  `json:"message_id"`
	SenderID   int64  `json:"sender_id"`
	ReceiverID int64  `json:"receiver_id"`
	Text       string `json:"message_text"`
	IsRead     bool   `json:"is_read"`
	SentAt     string `json:"sent_at"`
	SenderName string `json:"sender_name"`
}

// Notification is one entry of the notification feed. The server owns
// read state; the client only renders snapshots.
type Notification struct {
	NotificationID int64  `json:"notification_id"`
	Type           string `json:"notification_type"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	IsRead         bool   `json:"is_read"`
	RelatedID      int64  `json:"related_id"`
	CreatedAt      string `json:"created_at"`
}

// Feedback is a coach feedback detail from GET /feedback/{id}.
type Feedback struct {
	FeedbackID        int64  `json:"feedback_id"`
	CoachID           int64  `json:"coach_id"`
	AthleteID         int64  `json:"athlete_id"`
	CoachName         string `json:"coach_name"`
	FeedbackText      string `json:"feedback_text"`
	PerformanceRating int    `json:"performance_rating"`
	CreatedAt         string `json:"created_at"`
}

// DirectoryUser is a coach or athlete that can be messaged.
type DirectoryUser struct {
	UserID         int64  `json:"user_id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profile_picture"`
}
