package navigation

import (
	"encoding/json"
	"strings"
)

// Role is the server-asserted user type. Only the two constants are valid.
type Role string

const (
	Patient   Role = "patient"
	Dietitian Role = "dietitian"
)

// ParseRole validates a role claim. Anything but "patient" or "dietitian" is
// rejected; there is no default role.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.TrimSpace(s)) {
	case Patient:
		return Patient, true
	case Dietitian:
		return Dietitian, true
	}
	return "", false
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// Home is the screen a signed-in user of this role lands on.
func (r Role) Home() string {
	switch r {
	case Dietitian:
		return DietitianHomePath
	case Patient:
		return PatientHomePath
	}
	return LoginPath
}

// StatusKind is the resolution state of the auth collaborator.
type StatusKind int

const (
	Loading StatusKind = iota
	Unauthenticated
	Authenticated
)

func (k StatusKind) String() string {
	switch k {
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// AuthStatus is a snapshot of what the auth collaborator knows about the
// caller. The zero value is Loading.
type AuthStatus struct {
	kind StatusKind
	role Role
}

// LoadingStatus is the status while the session check is still in flight.
func LoadingStatus() AuthStatus {
	return AuthStatus{kind: Loading}
}

// UnauthenticatedStatus is the status of a caller without a session.
func UnauthenticatedStatus() AuthStatus {
	return AuthStatus{kind: Unauthenticated}
}

// AuthenticatedAs returns an authenticated status, or Unauthenticated when
// the role is not one of the known roles.
func AuthenticatedAs(role Role) AuthStatus {
	if !role.IsValid() {
		return UnauthenticatedStatus()
	}
	return AuthStatus{kind: Authenticated, role: role}
}

// StatusFromClaim builds a status from a raw role claim at the auth boundary.
func StatusFromClaim(authenticated bool, roleClaim string) AuthStatus {
	if !authenticated {
		return UnauthenticatedStatus()
	}
	role, ok := ParseRole(roleClaim)
	if !ok {
		return UnauthenticatedStatus()
	}
	return AuthenticatedAs(role)
}

func (s AuthStatus) Kind() StatusKind { return s.kind }

// Role returns the authenticated role; ok is false unless Authenticated.
func (s AuthStatus) Role() (Role, bool) {
	if s.kind != Authenticated {
		return "", false
	}
	return s.role, true
}

func (s AuthStatus) String() string {
	if s.kind == Authenticated {
		return s.kind.String() + "(" + string(s.role) + ")"
	}
	return s.kind.String()
}

func (s AuthStatus) MarshalJSON() ([]byte, error) {
	out := struct {
		State string `json:"state"`
		Role  Role   `json:"role,omitempty"`
	}{State: s.kind.String(), Role: s.role}
	return json.Marshal(out)
}
