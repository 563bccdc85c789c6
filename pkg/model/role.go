package model

// Role is the access level of a user. The numeric values are part of the
// wire contract for the roles listing and role-update endpoints.
type Role int

const (
	RoleAdministrator Role = 0
	RoleModerator     Role = 1
	RoleGuest         Role = 2
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdministrator, RoleModerator, RoleGuest:
		return true
	}
	return false
}

func (r Role) Name() string {
	switch r {
	case RoleAdministrator:
		return "administrator"
	case RoleModerator:
		return "moderator"
	case RoleGuest:
		return "guest"
	}
	return "unknown"
}

// In reports membership. Access checks must use membership, never ordering.
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

type RoleInfo struct {
	ID   Role   `json:"id"`
	Name string `json:"name"`
}

func AllRoles() []RoleInfo {
	return []RoleInfo{
		{ID: RoleAdministrator, Name: RoleAdministrator.Name()},
		{ID: RoleModerator, Name: RoleModerator.Name()},
		{ID: RoleGuest, Name: RoleGuest.Name()},
	}
}
