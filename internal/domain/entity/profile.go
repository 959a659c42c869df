package entity

// Profile attaches a role to an account. Exactly one per account.
type Profile struct {
	ID        uint `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID uint `gorm:"uniqueIndex;not null" json:"account_id"`
	Role      Role `gorm:"type:varchar(10);not null;default:'patient'" json:"role"`

	// Relationships
	Account Account `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Profile) TableName() string {
	return "profiles"
}
