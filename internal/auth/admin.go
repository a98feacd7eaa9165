package auth

// AdminRegistry is the fixed set of platform admin credentials, disjoint
// from per-family member accounts. It only gates family provisioning.
type AdminRegistry struct {
	creds map[string]string
}

func NewAdminRegistry(creds map[string]string) *AdminRegistry {
	copied := make(map[string]string, len(creds))
	for user, pass := range creds {
		copied[user] = pass
	}
	return &AdminRegistry{creds: copied}
}

// Authenticate checks admin credentials by exact string comparison.
func (r *AdminRegistry) Authenticate(username, password string) bool {
	stored, ok := r.creds[username]
	return ok && stored == password
}
