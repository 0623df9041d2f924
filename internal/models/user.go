package models

// Role is a user's authorization level
type Role string

const (
	// RoleMember is the default role; a missing role field means member
	RoleMember Role = "member"
	// RoleAdmin is the privileged role required by admin routes
	RoleAdmin Role = "admin"
)

// Badge marks a member's subscription tier
type Badge string

// BadgeGold is granted on profile update after a membership payment
const BadgeGold Badge = "gold"

// User document field names
const (
	UserFieldEmail = "email"
	UserFieldName  = "name"
	UserFieldImage = "image"
	UserFieldRole  = "role"
	UserFieldBadge = "badge"
)

// UpdateProfileRequest is the body of PATCH /users/{email}.
// Empty fields are left untouched.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

// UserExistsResponse is returned by sign-up when the email is already registered
type UserExistsResponse struct {
	Message    string  `json:"message"`
	InsertedID *string `json:"insertedId"`
}

// AdminStatusResponse answers whether the caller is an admin
type AdminStatusResponse struct {
	Admin bool `json:"admin"`
}
