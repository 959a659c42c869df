package entity

// Doctor is the doctor-specific record owned by an account.
type Doctor struct {
	ID               uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID        uint    `gorm:"uniqueIndex;not null" json:"account_id"`
	DepartmentID     *uint   `gorm:"index" json:"department_id,omitempty"`
	SpecializationID *uint   `gorm:"index" json:"specialization_id,omitempty"`
	Phone            *string `gorm:"type:varchar(15)" json:"phone,omitempty"`
	Experience       *int    `gorm:"check:chk_doctors_experience,experience >= 0" json:"experience,omitempty"`

	// Relationships
	Account        Account         `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"account,omitempty"`
	Department     *Department     `gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL" json:"department,omitempty"`
	Specialization *Specialization `gorm:"foreignKey:SpecializationID;constraint:OnDelete:SET NULL" json:"specialization,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

func (d *Doctor) DisplayName() string {
	return "Dr. " + d.Account.DisplayName()
}
