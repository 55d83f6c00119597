package models

import (
	"time"

	"github.com/google/uuid"
)

// User описывает аккаунт владельца портфолио.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         *string   `db:"name" json:"name,omitempty"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// PersonalInfo описывает публичную визитку владельца (одна на аккаунт).
type PersonalInfo struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	UserID             uuid.UUID `db:"user_id" json:"-"`
	Name               string    `db:"name" json:"name"`
	Title              string    `db:"title" json:"title"`
	Description        string    `db:"description" json:"description"`
	Email              string    `db:"email" json:"email"`
	Location           string    `db:"location" json:"location"`
	Phone              string    `db:"phone" json:"phone"`
	Bio                string    `db:"bio" json:"bio"`
	Avatar             string    `db:"avatar" json:"avatar"`
	Availability       string    `db:"availability" json:"availability"`
	AvailabilityStatus string    `db:"availability_status" json:"availabilityStatus"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`
}

// DefaultPersonalInfo возвращает заготовку визитки для нового аккаунта.
func DefaultPersonalInfo(userID uuid.UUID, email string) *PersonalInfo {
	return &PersonalInfo{
		UserID:             userID,
		Name:               "Your Name",
		Title:              "Your Title",
		Description:        "Your description",
		Email:              email,
		Location:           "Your Location",
		Availability:       "Available for opportunities",
		AvailabilityStatus: AvailabilityAvailable,
	}
}
