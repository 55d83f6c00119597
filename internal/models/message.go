package models

import (
	"time"

	"github.com/google/uuid"
)

// Message описывает входящее сообщение с контактной формы.
// UserID указывает на получателя (владельца сайта), а не на отправителя.
type Message struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"-"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Subject   string    `db:"subject" json:"subject"`
	Message   string    `db:"message" json:"message"`
	Date      time.Time `db:"date" json:"date"`
	Status    string    `db:"status" json:"status"`
	Priority  string    `db:"priority" json:"priority"`
	Starred   bool      `db:"starred" json:"starred"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// MessageFilter фильтры списка сообщений. nil означает "не фильтровать".
type MessageFilter struct {
	Status   *string
	Priority *string
	Starred  *bool
}

// MessagePatch частичное обновление сообщения.
type MessagePatch struct {
	Status   *string `json:"status,omitempty"`
	Priority *string `json:"priority,omitempty"`
	Starred  *bool   `json:"starred,omitempty"`
}

// IsEmpty сообщает, что патч ничего не меняет.
func (p MessagePatch) IsEmpty() bool {
	return p.Status == nil && p.Priority == nil && p.Starred == nil
}
