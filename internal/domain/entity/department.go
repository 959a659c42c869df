package entity

type Department struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`

	// Relationships
	Specializations []Specialization `gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL" json:"specializations,omitempty"`
}

func (Department) TableName() string {
	return "departments"
}

type Specialization struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"type:varchar(100);not null" json:"name"`
	DepartmentID *uint  `gorm:"index" json:"department_id,omitempty"`

	// Relationships
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

func (Specialization) TableName() string {
	return "specializations"
}
