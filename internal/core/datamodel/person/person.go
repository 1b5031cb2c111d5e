package person

import "time"

type Person struct {
	ID           int64     `gorm:"primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	Username     *string   `gorm:"column:username;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	FirstName    *string   `gorm:"column:first_name"`
	LastName     *string   `gorm:"column:last_name"`
	Phone        *string   `gorm:"column:phone"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	IsVerified   bool      `gorm:"column:is_verified;default:false"`
	IsSuperAdmin bool      `gorm:"column:is_super_admin;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Person) TableName() string {
	return "people"
}
