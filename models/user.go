package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is an API account. Staff users may mutate catalog data; everyone
// else gets read access plus reviews.
type User struct {
	Timestamped
	Email        string     `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string     `json:"-" db:"password_hash" gorm:"type:text;not null"`
	FirstName    string     `json:"first_name" db:"first_name" gorm:"type:text"`
	LastName     string     `json:"last_name" db:"last_name" gorm:"type:text"`
	Phone        string     `json:"phone,omitempty" db:"phone" gorm:"type:text"`
	IsStaff      bool       `json:"is_staff" db:"is_staff" gorm:"not null;default:false"`
	IsActive     bool       `json:"is_active" db:"is_active" gorm:"not null;default:true"`
	DateJoined   time.Time  `json:"date_joined" db:"date_joined" gorm:"not null"`
	LastLogin    *time.Time `json:"last_login,omitempty" db:"last_login"`
}

func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
