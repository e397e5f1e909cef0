package db_models

// Setting stores an admin-edited override for an editable config key.
type Setting struct {
	BaseModel
	Name  string `gorm:"size:50;not null;uniqueIndex"`
	Value string `gorm:"size:2000"`
}
