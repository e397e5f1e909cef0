package db_models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	BaseModel
	Email        string `gorm:"size:254;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:128"`
	FirstName    string `gorm:"size:150"`
	LastName     string `gorm:"size:150"`
	IsActive     bool
	IsConfirmed  bool
	IsStaff      bool
	IsSuperuser  bool
	DateJoined   int64
	LastLogin    *int64
	Profile      *Profile `gorm:"foreignKey:UserID"`
}

// AfterCreate gives every new user an empty profile.
func (u *User) AfterCreate(tx *gorm.DB) error {
	if u.Profile != nil {
		return nil
	}
	profile := &Profile{UserID: u.ID}
	if err := tx.Session(&gorm.Session{NewDB: true}).Create(profile).Error; err != nil {
		return err
	}
	u.Profile = profile
	return nil
}

type Profile struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Username    *string   `gorm:"size:100"`
	Avatar      *string   `gorm:"size:255"`
	Age         *int
	Country     *string `gorm:"size:100"`
	City        *string `gorm:"size:100"`
	Address     *string `gorm:"size:100"`
	PhoneNumber *string `gorm:"size:32"`
	ZipCode     *int
	Slogan      *string `gorm:"size:255"`
	Bio         *string `gorm:"type:text"`
}
