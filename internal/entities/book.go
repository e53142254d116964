package entities

// Book is a catalogued book. Only Rating changes after creation.
type Book struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	Title  string  `gorm:"uniqueIndex;size:250;not null" json:"title"`
	Author string  `gorm:"size:250;not null" json:"author"`
	Rating float64 `gorm:"not null" json:"rating"`
}
