package models

type Role string

const (
	RoleManager  Role = "manager"
	RoleMember   Role = "member"
	RoleObserver Role = "observer"
)

// IsValid reports whether r is a known project role.
func (r Role) IsValid() bool {
	return r == RoleManager || r == RoleMember || r == RoleObserver
}

// Member is a project participant. Role is scoped to the project, not global.
// ClerkUserID links the member to the external identity provider account.
type Member struct {
	ID          string `json:"id" bson:"id"`
	Name        string `json:"name" bson:"name"`
	Avatar      string `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Role        Role   `json:"role" bson:"role"`
	ClerkUserID string `json:"clerkUserId,omitempty" bson:"clerk_user_id,omitempty"`
}
