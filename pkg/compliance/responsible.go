package compliance

import (
	"strings"

	"compliance-hub-backend/pkg/models"
)

// responsibleResolver picks the responsible_person value for one caller
// role. Admins choose from the fetched roster; everyone else is pinned to
// themselves and the selection input is ignored.
type responsibleResolver func(caller *models.OrganisationMember, selected string) string

var responsibleResolvers = map[models.MemberRole]responsibleResolver{
	models.RoleAdmin: func(_ *models.OrganisationMember, selected string) string {
		return strings.TrimSpace(selected)
	},
}

// resolveResponsible applies the role strategy once at submission time.
// Roles without an explicit strategy resolve like members: fixed to self.
func resolveResponsible(caller *models.OrganisationMember, selected string) string {
	if resolve, ok := responsibleResolvers[caller.Role]; ok {
		return resolve(caller, selected)
	}
	return strings.TrimSpace(caller.DisplayName())
}
