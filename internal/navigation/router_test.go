package navigation_test

import (
	"encoding/json"
	"testing"

	"ayurdiet-backend/internal/navigation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var requirements = []navigation.Requirement{
	navigation.RequireAny,
	navigation.RequirePatient,
	navigation.RequireDietitian,
}

func TestDecideLoadingIsAlwaysPending(t *testing.T) {
	for _, req := range requirements {
		d := navigation.Decide(navigation.LoadingStatus(), req, "/patient/dashboard")
		assert.Equal(t, navigation.Pending, d.Kind, "required %s", req)
		assert.False(t, d.IsRedirect())
	}
}

func TestDecideUnauthenticatedRedirectsToLogin(t *testing.T) {
	for _, req := range requirements {
		d := navigation.Decide(navigation.UnauthenticatedStatus(), req, "/food-database?q=rice")
		assert.Equal(t, navigation.RedirectToLogin, d.Kind)
		assert.Equal(t, navigation.LoginPath, d.Location)
		assert.Equal(t, "/food-database?q=rice", d.From)
	}
}

func TestDecideAuthenticated(t *testing.T) {
	patient := navigation.AuthenticatedAs(navigation.Patient)
	dietitian := navigation.AuthenticatedAs(navigation.Dietitian)

	tests := []struct {
		name     string
		status   navigation.AuthStatus
		required navigation.Requirement
		want     navigation.Decision
	}{
		{"patient any", patient, navigation.RequireAny, navigation.Decision{Kind: navigation.Allow}},
		{"patient own", patient, navigation.RequirePatient, navigation.Decision{Kind: navigation.Allow}},
		{"dietitian own", dietitian, navigation.RequireDietitian, navigation.Decision{Kind: navigation.Allow}},
		{
			"patient on dietitian screen", patient, navigation.RequireDietitian,
			navigation.Decision{Kind: navigation.RedirectToRoleHome, Location: navigation.PatientHomePath, Role: navigation.Patient},
		},
		{
			"dietitian on patient screen", dietitian, navigation.RequirePatient,
			navigation.Decision{Kind: navigation.RedirectToRoleHome, Location: navigation.DietitianHomePath, Role: navigation.Dietitian},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, navigation.Decide(tt.status, tt.required, "/x"))
		})
	}
}

func TestDecideIsIdempotent(t *testing.T) {
	statuses := []navigation.AuthStatus{
		navigation.LoadingStatus(),
		navigation.UnauthenticatedStatus(),
		navigation.AuthenticatedAs(navigation.Patient),
		navigation.AuthenticatedAs(navigation.Dietitian),
	}
	for _, s := range statuses {
		for _, req := range requirements {
			first := navigation.Decide(s, req, "/somewhere")
			assert.Equal(t, first, navigation.Decide(s, req, "/somewhere"))
		}
	}
}

func TestUnknownRoleFailsClosed(t *testing.T) {
	for _, claim := range []string{"", "admin", "Patient", "authenticated"} {
		s := navigation.StatusFromClaim(true, claim)
		assert.Equal(t, navigation.Unauthenticated, s.Kind(), "claim %q", claim)

		d := navigation.Decide(s, navigation.RequireAny, "/food-database")
		assert.Equal(t, navigation.RedirectToLogin, d.Kind)
	}

	assert.Equal(t, navigation.Unauthenticated, navigation.AuthenticatedAs("superuser").Kind())
	assert.Equal(t, navigation.Unauthenticated, navigation.StatusFromClaim(false, "patient").Kind())
}

func TestZeroStatusIsLoading(t *testing.T) {
	var s navigation.AuthStatus
	assert.Equal(t, navigation.Loading, s.Kind())
	_, ok := s.Role()
	assert.False(t, ok)
}

func TestDecisionJSON(t *testing.T) {
	d := navigation.Decide(navigation.AuthenticatedAs(navigation.Patient), navigation.RequireDietitian, "/dietitian/dashboard")
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"decision":"redirect_to_role_home","location":"/patient/assessment","role":"patient"}`, string(raw))

	status, err := json.Marshal(navigation.AuthenticatedAs(navigation.Dietitian))
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"authenticated","role":"dietitian"}`, string(status))
}

func TestRegistryEvaluate(t *testing.T) {
	reg := navigation.DefaultRegistry()
	patient := navigation.AuthenticatedAs(navigation.Patient)

	assert.Equal(t, navigation.Allow, reg.Evaluate(navigation.UnauthenticatedStatus(), "/").Kind)
	assert.Equal(t, navigation.Allow, reg.Evaluate(navigation.LoadingStatus(), "/auth").Kind)
	assert.Equal(t, navigation.Allow, reg.Evaluate(navigation.UnauthenticatedStatus(), "/no/such/page").Kind)

	d := reg.Evaluate(patient, "/dietitian/onboarding/")
	assert.Equal(t, navigation.RedirectToRoleHome, d.Kind)
	assert.Equal(t, "/patient/assessment", d.Location)

	assert.Equal(t, navigation.Allow, reg.Evaluate(patient, "/food-database?category=spices").Kind)
	assert.Equal(t, navigation.Pending, reg.Evaluate(navigation.LoadingStatus(), "/patient/dashboard").Kind)

	login := reg.Evaluate(navigation.UnauthenticatedStatus(), "/patient/dashboard")
	assert.Equal(t, navigation.RedirectToLogin, login.Kind)
	assert.Equal(t, "/patient/dashboard", login.From)
}

func TestRegistryLookup(t *testing.T) {
	reg := navigation.DefaultRegistry()

	s := reg.Lookup("food-database")
	assert.Equal(t, "food_database", s.Name)
	assert.True(t, s.Protected)
	assert.Equal(t, navigation.RequireAny, s.Required)

	assert.Equal(t, navigation.NotFound, reg.Lookup("/old"))
	assert.Len(t, reg.Screens(), 9)
	assert.Equal(t, "/", reg.Screens()[0].Path)
}
