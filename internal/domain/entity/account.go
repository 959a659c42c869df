package entity

import "time"

// UnusablePassword marks accounts created implicitly (e.g. by a guest
// booking) that cannot sign in until a password is set. It is never a
// valid bcrypt hash.
const UnusablePassword = "!"

// Account is the identity record: unique username plus credential hash.
type Account struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	Email     string    `gorm:"type:varchar(254)" json:"email"`
	FullName  string    `gorm:"type:varchar(150)" json:"full_name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

// DisplayName returns the full name, falling back to the username.
func (a *Account) DisplayName() string {
	if a.FullName != "" {
		return a.FullName
	}
	return a.Username
}
