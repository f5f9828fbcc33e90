package user

import "time"

// Role is a closed enumeration; admin-gated operations check it as a
// capability, never by comparing arbitrary strings.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           uint64     `json:"-" gorm:"primaryKey"`
	UUID         string     `json:"uuid" gorm:"uniqueIndex;not null"`
	Email        string     `json:"-" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Username     string     `json:"username" gorm:"uniqueIndex;not null"`
	Role         Role       `json:"role" gorm:"not null;default:user"`
	IsBanned     bool       `json:"-" gorm:"not null;default:false"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Session struct {
	ID        uint64    `gorm:"primaryKey"`
	Token     string    `gorm:"uniqueIndex;not null"`
	UserID    uint64    `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
