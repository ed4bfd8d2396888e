package models

import "time"

// Roles institucionales (quién es dentro de la universidad).
type InstitutionalRole string

const (
	RoleStudent   InstitutionalRole = "student"
	RoleProfessor InstitutionalRole = "professor"
	RoleStaff     InstitutionalRole = "staff"
	RoleAdmin     InstitutionalRole = "admin"
)

// Roles de plataforma (qué puede hacer dentro de UniRide).
type PlatformRole string

const (
	RolePassenger PlatformRole = "passenger"
	RoleDriver    PlatformRole = "driver"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	Legajo    string `gorm:"size:20;uniqueIndex;not null" json:"legajo"`
	DNI       string `gorm:"size:20;uniqueIndex;not null" json:"dni"`
	Email     string `gorm:"size:100;not null" json:"email"`
	Phone     string `gorm:"size:20" json:"phone"`

	InstitutionalRoles []InstitutionalRole `gorm:"serializer:json;type:text" json:"institutional_roles"`
	PlatformRoles      []PlatformRole      `gorm:"serializer:json;type:text" json:"platform_roles"`

	PasswordHash string `gorm:"size:255;not null" json:"-"`

	Rating    float64 `json:"rating"`
	AvatarURL string  `gorm:"size:255" json:"avatar_url"`

	PaymentMethods []PaymentMethod `json:"payment_methods,omitempty"`
	Reviews        []Review        `gorm:"foreignKey:DriverID" json:"reviews,omitempty"`
	Notifications  []Notification  `json:"-"`

	CreatedBy *uint `json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) HasInstitutionalRole(role InstitutionalRole) bool {
	for _, r := range u.InstitutionalRoles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) HasPlatformRole(role PlatformRole) bool {
	for _, r := range u.PlatformRoles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.HasInstitutionalRole(RoleAdmin)
}
