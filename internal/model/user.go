package model

import "time"

// User owns habits and receives reminders at its Telegram chat ID.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	TgChatID     string    `json:"tg_chat_id"`
	FirstName    string    `json:"first_name"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}
