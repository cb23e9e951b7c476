package models

// Member is a person who can contribute to any number of projects.
type Member struct {
	ID        uint   `gorm:"column:MemberID;primaryKey;autoIncrement" json:"id"`
	FirstName string `gorm:"column:firstName;size:64;not null" json:"first_name"`
	LastName  string `gorm:"column:lastName;size:64;not null" json:"last_name"`
	Email     string `gorm:"column:email;size:255" json:"email"`
	Phone     string `gorm:"column:phone;size:32" json:"phone"`
}

func (Member) TableName() string { return "Member" }

// FullName joins first and last name.
func (m Member) FullName() string {
	switch {
	case m.FirstName == "":
		return m.LastName
	case m.LastName == "":
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}
