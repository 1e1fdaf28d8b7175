package domain

import "time"

const (
	// DefaultAddress is the sentinel kept on the record until the user
	// sets a real shipping address
	DefaultAddress = "ADDRESS_NOT_SET"

	// DefaultWalletMoney is the signup credit for new users
	DefaultWalletMoney float64 = 500
)

type User struct {
	ID          int64     `json:"id,string" form:"id"`
	Name        string    `gorm:"index" json:"name" form:"name"`
	Email       string    `gorm:"uniqueIndex;size:256" json:"email" form:"email"`
	Password    string    `json:"-" form:"password"`
	Address     string    `gorm:"size:1024;default:ADDRESS_NOT_SET" json:"address" form:"address"`
	WalletMoney float64   `json:"walletMoney" form:"wallet_money"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (User) TableName() string {
	return "users"
}

// HasSetNonDefaultAddress reports whether the user replaced the
// address sentinel with a real shipping address
func (u *User) HasSetNonDefaultAddress() bool {
	return u.Address != DefaultAddress
}
