package entity

type Participant struct {
	Base

	Name  string
	Code  string `gorm:"unique"`
	Phone string

	Status Status
}
