package integration

import "fmt"

// IdentityScope decides which provider fields make a grant unique.
type IdentityScope string

const (
	// IdentityScopeUser keys grants by (provider, user_id).
	IdentityScopeUser IdentityScope = "user"
	// IdentityScopeTeamUser keys grants by (provider, team_id, user_id).
	IdentityScopeTeamUser IdentityScope = "team_user"
)

func ParseIdentityScope(s string) (IdentityScope, error) {
	switch IdentityScope(s) {
	case IdentityScopeUser, IdentityScopeTeamUser:
		return IdentityScope(s), nil
	case "":
		return IdentityScopeTeamUser, nil
	default:
		return "", fmt.Errorf("unknown identity scope %q", s)
	}
}

// Key builds the natural key stored next to the provider.
func (s IdentityScope) Key(teamID, userID string) string {
	if s == IdentityScopeUser {
		return userID
	}
	return teamID + ":" + userID
}
