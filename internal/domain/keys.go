package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserRole  CtxKey = "Role"
	// KeyIdentity holds the resolved *Identity.
	KeyIdentity CtxKey = "Identity"
	// KeyAuthStatus holds the navigation.AuthStatus of the request.
	KeyAuthStatus CtxKey = "AuthStatus"
	KeyRequestID  CtxKey = "RequestID"
)
