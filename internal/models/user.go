package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:254;not null;uniqueIndex" json:"email"`
	FirstName    string    `gorm:"size:150;not null" json:"first_name"`
	LastName     string    `gorm:"size:150;not null" json:"last_name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Avatar       *string   `gorm:"size:255" json:"avatar"`
	IsSuperuser  bool      `gorm:"not null;default:false" json:"-"`
	IsActive     bool      `gorm:"not null;default:true" json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// Subscription is a directed follower -> following edge.
type Subscription struct {
	FollowerID  uint      `gorm:"primaryKey;autoIncrement:false;check:chk_subscriptions_no_self,follower_id <> following_id"`
	FollowingID uint      `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt   time.Time
	Follower    *User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Following   *User `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
}
