package filter

import "strings"

// Policy holds the keyword lists deciding which titles count as target
// engineering roles. Deny wins over allow.
type Policy struct {
	Allow []string `yaml:"allow"`
	Deny  []string `yaml:"deny"`
}

func DefaultPolicy() Policy {
	return Policy{
		Allow: []string{
			"software", "backend", "frontend", "full-stack", "fullstack",
		},
		Deny: []string{
			"mobile", "android", "ios", "devops", "principal", "security", "staff",
		},
	}
}

// IsEngineeringRole reports whether title matches the policy: any deny
// keyword rejects outright, otherwise any allow keyword accepts.
func (p Policy) IsEngineeringRole(title string) bool {
	t := strings.ToLower(title)
	for _, kw := range p.Deny {
		if strings.Contains(t, kw) {
			return false
		}
	}
	for _, kw := range p.Allow {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}
