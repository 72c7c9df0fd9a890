package domain

// CanAccess reports whether actor may view or mutate a resource owned by
// ownerID. Admins may touch anything; everybody else only their own.
func CanAccess(actor Actor, ownerID string) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.ID != "" && actor.ID == ownerID
}
