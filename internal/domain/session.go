package domain

// Visitor is the simulated signed-in user. It is the value persisted under
// the mock-user session key; there is no password or real identity behind it.
type Visitor struct {
	FullName     string `json:"fullName"`
	Relationship string `json:"relationship"`
}

// Complete reports whether both fields are present. Incomplete entries are
// treated as corrupt sessions.
func (v Visitor) Complete() bool {
	return v.FullName != "" && v.Relationship != ""
}
