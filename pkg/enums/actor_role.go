package enums

// ActorRole is the role claim carried by identity provider tokens.
type ActorRole string

const (
	ActorRoleAdmin   ActorRole = "admin"
	ActorRolePartner ActorRole = "partner"
)

var actorRoles = set[ActorRole]{
	ActorRoleAdmin,
	ActorRolePartner,
}

func (a ActorRole) String() string { return string(a) }

// IsValid reports whether a is a known ActorRole.
func (a ActorRole) IsValid() bool { return actorRoles.has(a) }

// ParseActorRole accepts the wire value, ignoring surrounding space and case.
func ParseActorRole(value string) (ActorRole, error) {
	return actorRoles.parse("actor role", value)
}
