package models

import "time"

type User struct {
	ID        uint      `json:"id" gorm:"column:id;primaryKey"`
	Username  string    `json:"username" gorm:"column:username;type:text;not null;uniqueIndex"`
	Password  string    `json:"-" gorm:"column:password;type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
}

func (User) TableName() string {
	return "users"
}
