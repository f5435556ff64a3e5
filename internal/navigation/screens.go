package navigation

import "strings"

// Screen is a client route and its static access rule.
type Screen struct {
	Path      string      `json:"path"`
	Name      string      `json:"name"`
	Protected bool        `json:"protected"`
	Required  Requirement `json:"required_role"`
}

// NotFound is returned for paths the registry does not know.
var NotFound = Screen{Path: "*", Name: "not_found"}

// Registry holds the screens of the web client. It is built once and never
// changes afterwards.
type Registry struct {
	screens map[string]Screen
	order   []string
}

// NewRegistry builds a registry from screen declarations. Later duplicates
// replace earlier ones.
func NewRegistry(screens ...Screen) *Registry {
	r := &Registry{screens: make(map[string]Screen, len(screens))}
	for _, s := range screens {
		s.Path = normalizePath(s.Path)
		if _, exists := r.screens[s.Path]; !exists {
			r.order = append(r.order, s.Path)
		}
		r.screens[s.Path] = s
	}
	return r
}

// DefaultRegistry mirrors the routes of the web client.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Screen{Path: "/", Name: "home"},
		Screen{Path: LoginPath, Name: "auth"},
		Screen{Path: "/patient-auth", Name: "patient_auth"},
		Screen{Path: "/dietitian-auth", Name: "dietitian_auth"},
		Screen{Path: "/dietitian/onboarding", Name: "dietitian_onboarding", Protected: true, Required: RequireDietitian},
		Screen{Path: DietitianHomePath, Name: "dietitian_dashboard", Protected: true, Required: RequireDietitian},
		Screen{Path: PatientHomePath, Name: "patient_assessment", Protected: true, Required: RequirePatient},
		Screen{Path: "/patient/dashboard", Name: "patient_dashboard", Protected: true, Required: RequirePatient},
		Screen{Path: "/food-database", Name: "food_database", Protected: true, Required: RequireAny},
	)
}

// Lookup finds the screen for a location, ignoring query and fragment.
func (r *Registry) Lookup(location string) Screen {
	if s, ok := r.screens[normalizePath(location)]; ok {
		return s
	}
	return NotFound
}

// Screens lists the registry in declaration order.
func (r *Registry) Screens() []Screen {
	out := make([]Screen, 0, len(r.order))
	for _, p := range r.order {
		out = append(out, r.screens[p])
	}
	return out
}

// Evaluate decides a navigation attempt to location. Public screens are
// allowed without consulting the auth status.
func (r *Registry) Evaluate(status AuthStatus, location string) Decision {
	screen := r.Lookup(location)
	if !screen.Protected {
		return Decision{Kind: Allow}
	}
	return Decide(status, screen.Required, location)
}

func normalizePath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}
