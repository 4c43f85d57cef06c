package domain

import "time"

type User struct {
	ID              int64     `json:"id,string" form:"id"`
	Username        string    `gorm:"index" json:"username" form:"username"`
	Email           string    `gorm:"index" json:"email" form:"email"`
	Password        string    `json:"-" form:"-"`
	FirstName       string    `json:"first_name" form:"first_name"`
	LastName        string    `json:"last_name" form:"last_name"`
	Mobile          string    `json:"mobile" form:"mobile"`
	IsActive        bool      `json:"is_active" form:"is_active"`
	IsEmailVerified bool      `json:"is_email_verified" form:"is_email_verified"`
	LastLogin       time.Time `json:"last_login"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "shop_user"
}

func (u User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	return u.FirstName + " " + u.LastName
}

type Role struct {
	ID        int64     `json:"id,string" form:"id"`
	Name      string    `gorm:"index" json:"name" form:"name"`
	Remark    string    `json:"remark" form:"remark"`
	CreatedAt time.Time `json:"created_at"`
}

func (Role) TableName() string {
	return "shop_role"
}

// UserRole maps users to roles, many-to-many by id.
type UserRole struct {
	ID     int64 `json:"id,string" form:"id"`
	UserId int64 `gorm:"index" json:"user_id,string" form:"user_id"`
	RoleId int64 `gorm:"index" json:"role_id,string" form:"role_id"`
}

func (UserRole) TableName() string {
	return "shop_user_role"
}

type Address struct {
	ID         int64     `json:"id,string" form:"id"`
	UserId     int64     `gorm:"index" json:"user_id,string" form:"user_id"`
	Recipient  string    `json:"recipient" form:"recipient"`
	Street     string    `json:"street" form:"street"`
	City       string    `json:"city" form:"city"`
	Country    string    `json:"country" form:"country"`
	PostalCode string    `json:"postal_code" form:"postal_code"`
	Mobile     string    `json:"mobile" form:"mobile"`
	IsDefault  bool      `json:"is_default" form:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Address) TableName() string {
	return "shop_address"
}
