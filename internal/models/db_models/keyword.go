package db_models

type Keyword struct {
	BaseModel
	Title string `gorm:"size:500;not null"`
	Slug  string `gorm:"size:2000;uniqueIndex"`
}
