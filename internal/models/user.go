package models

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleWorker Role = "WORKER"
)

type PaymentType string

const (
	PaymentDaily   PaymentType = "DAILY"
	PaymentMonthly PaymentType = "MONTHLY"
)

// User is a profile row in "users". Workers are users with RoleWorker.
type User struct {
	ID            string       `gorm:"primaryKey;size:36" json:"id"`
	Username      string       `gorm:"size:100;index" json:"username"`
	Email         string       `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Role          Role         `gorm:"size:20;not null" json:"role"`
	FullName      string       `gorm:"size:150" json:"fullName"`
	Phone         *string      `gorm:"size:50" json:"phone,omitempty"`
	Address       *string      `gorm:"size:255" json:"address,omitempty"`
	PaymentType   *PaymentType `gorm:"size:20" json:"paymentType,omitempty"`
	PaymentAmount *float64     `json:"paymentAmount,omitempty"`
}

func (User) TableName() string { return "users" }

// WorkerInput is what the staff screen submits; role is always forced to WORKER.
type WorkerInput struct {
	Username      string       `json:"username"`
	Email         string       `json:"email"`
	FullName      string       `json:"fullName"`
	Phone         *string      `json:"phone,omitempty"`
	Address       *string      `json:"address,omitempty"`
	PaymentType   *PaymentType `json:"paymentType,omitempty"`
	PaymentAmount *float64     `json:"paymentAmount,omitempty"`
}

// UserPatch carries a partial profile update. Nil fields are left alone.
type UserPatch struct {
	Username      *string      `json:"username,omitempty"`
	Email         *string      `json:"email,omitempty"`
	FullName      *string      `json:"fullName,omitempty"`
	Phone         *string      `json:"phone,omitempty"`
	Address       *string      `json:"address,omitempty"`
	PaymentType   *PaymentType `json:"paymentType,omitempty"`
	PaymentAmount *float64     `json:"paymentAmount,omitempty"`
}

// Apply returns u with the non-nil fields of p.
func (p UserPatch) Apply(u User) User {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Phone != nil {
		u.Phone = p.Phone
	}
	if p.Address != nil {
		u.Address = p.Address
	}
	if p.PaymentType != nil {
		u.PaymentType = p.PaymentType
	}
	if p.PaymentAmount != nil {
		u.PaymentAmount = p.PaymentAmount
	}
	return u
}
