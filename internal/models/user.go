package models

import "time"

const (
	RoleSuperAdmin  = "super_admin"
	RoleAdmin       = "admin"
	RoleBranchAdmin = "branch_admin"
)

type User struct {
	ID                  int        `json:"id" db:"id"`
	Phone               string     `json:"phone" db:"phone"`
	PasswordHash        string     `json:"-" db:"password_hash"`
	Name                string     `json:"name" db:"name"`
	Role                string     `json:"role" db:"role"`
	BranchID            *int       `json:"branchId" db:"branch_id"`
	IsActive            bool       `json:"isActive" db:"is_active"`
	TwoFactorCode       *string    `json:"-" db:"two_factor_code"`
	TwoFactorExpiry     *time.Time `json:"-" db:"two_factor_expiry"`
	TwoFactorGeneration int64      `json:"-" db:"two_factor_generation"`
	CreatedAt           time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time  `json:"updatedAt" db:"updated_at"`
}

// PublicUser is the shape returned to clients.
type PublicUser struct {
	ID        int       `json:"id" example:"1"`
	Phone     string    `json:"phone" example:"05551112233"`
	Name      string    `json:"name" example:"Ayşe Yılmaz"`
	Role      string    `json:"role" example:"branch_admin"`
	BranchID  *int      `json:"branchId"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Phone:     u.Phone,
		Name:      u.Name,
		Role:      u.Role,
		BranchID:  u.BranchID,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// IsAdmin reports whether the user sees every branch.
func (u *User) IsAdmin() bool {
	return u.Role == RoleSuperAdmin || u.Role == RoleAdmin
}

// HasRole reports whether the user holds one of roles.
func (u *User) HasRole(roles ...string) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
