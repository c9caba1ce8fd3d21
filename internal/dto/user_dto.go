package dto

// UpsertUserRequest is the optional body of POST /users.
type UpsertUserRequest struct {
	Phone string `json:"phone"`
}

// UserProfile is the stored account row returned after an upsert.
type UserProfile struct {
	UserID            string `json:"user_id"`
	Email             string `json:"email"`
	Phone             string `json:"phone,omitempty"`
	AccountStatus     string `json:"account_status"`
	QuotaLimitEnglish int    `json:"quota_limit_english"`
	QuotaUsedEnglish  int    `json:"quota_used_english"`
}

// UpsertUserResponse wraps the upserted profile.
type UpsertUserResponse struct {
	Success bool        `json:"success"`
	User    UserProfile `json:"user"`
}
