package entity

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"

	// GenderNotSpecified is the placeholder written for patients created
	// without demographic data.
	GenderNotSpecified Gender = "Not Specified"
)

// Patient is the patient demographic record owned by an account.
type Patient struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID uint    `gorm:"uniqueIndex;not null" json:"account_id"`
	Age       *int    `gorm:"check:chk_patients_age,age >= 0" json:"age,omitempty"`
	Gender    *Gender `gorm:"type:varchar(16)" json:"gender,omitempty"`
	Phone     *string `gorm:"type:varchar(15)" json:"phone,omitempty"`

	// Relationships
	Account Account `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"account,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// NewPlaceholderPatient returns a patient with the defaults used when no
// demographic data was collected.
func NewPlaceholderPatient(accountID uint, phone string) *Patient {
	age := 0
	gender := GenderNotSpecified
	return &Patient{
		AccountID: accountID,
		Age:       &age,
		Gender:    &gender,
		Phone:     &phone,
	}
}
