// Package navigation decides whether a caller may reach a screen.
package navigation

import "encoding/json"

const (
	LoginPath         = "/auth"
	PatientHomePath   = "/patient/assessment"
	DietitianHomePath = "/dietitian/dashboard"
)

// Requirement is the role a protected screen demands. RequireAny accepts
// every authenticated role.
type Requirement string

const (
	RequireAny       Requirement = ""
	RequirePatient   Requirement = Requirement(Patient)
	RequireDietitian Requirement = Requirement(Dietitian)
)

func (r Requirement) String() string {
	if r == RequireAny {
		return "any"
	}
	return string(r)
}

func (r Requirement) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// DecisionKind enumerates the outcomes of a navigation attempt.
type DecisionKind int

const (
	Pending DecisionKind = iota
	Allow
	RedirectToLogin
	RedirectToRoleHome
)

func (k DecisionKind) String() string {
	switch k {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_to_login"
	case RedirectToRoleHome:
		return "redirect_to_role_home"
	default:
		return "pending"
	}
}

// Decision is computed fresh for every navigation attempt.
type Decision struct {
	Kind DecisionKind
	// Location is where to send the caller for redirects.
	Location string
	// From is the originally requested location, carried to the login screen.
	From string
	// Role is set for RedirectToRoleHome.
	Role Role
}

// IsRedirect reports whether the caller must be sent elsewhere.
func (d Decision) IsRedirect() bool {
	return d.Kind == RedirectToLogin || d.Kind == RedirectToRoleHome
}

func (d Decision) MarshalJSON() ([]byte, error) {
	out := struct {
		Decision string `json:"decision"`
		Location string `json:"location,omitempty"`
		From     string `json:"from,omitempty"`
		Role     Role   `json:"role,omitempty"`
	}{d.Kind.String(), d.Location, d.From, d.Role}
	return json.Marshal(out)
}

// Decide is the role gate. It never fails: a mismatch is a redirect to the
// caller's own home rather than an error, and a status that is still loading
// never redirects.
func Decide(status AuthStatus, required Requirement, from string) Decision {
	switch status.Kind() {
	case Loading:
		return Decision{Kind: Pending}
	case Authenticated:
		role, _ := status.Role()
		if required == RequireAny || required == Requirement(role) {
			return Decision{Kind: Allow}
		}
		return Decision{Kind: RedirectToRoleHome, Location: role.Home(), Role: role}
	default:
		return Decision{Kind: RedirectToLogin, Location: LoginPath, From: from}
	}
}
