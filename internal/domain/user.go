package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a storefront member. MemberID is generated at signup and is
// independent of the database's own id sequence. Age is computed once at
// signup from the birthdate and never recomputed, so it goes stale.
type User struct {
	ID           int64     `json:"id" db:"id"`
	MemberID     uuid.UUID `json:"member_id" db:"member_id"`
	FullName     string    `json:"fullname" db:"fullname"`
	Email        string    `json:"email" db:"email"`
	Birthdate    time.Time `json:"birthdate" db:"birthdate"`
	Age          int       `json:"age" db:"age"`
	Phone        string    `json:"phone" db:"phone"`
	Address      string    `json:"address" db:"address"`
	PasswordHash string    `json:"-" db:"password"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
