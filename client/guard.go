package client

// GuardState is the route guard's decision state.
type GuardState int

const (
	// Loading means the initial session derivation has not completed yet;
	// render a neutral placeholder, never protected content.
	Loading GuardState = iota
	// Unauthenticated redirects to the login entry point.
	Unauthenticated
	// AuthorizedForRoute renders the protected content.
	AuthorizedForRoute
	// WrongRole redirects to the home route of the session's actual role.
	WrongRole
)

func (s GuardState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Unauthenticated:
		return "unauthenticated"
	case AuthorizedForRoute:
		return "authorized"
	case WrongRole:
		return "wrong-role"
	}
	return "unknown"
}

// Client-side routes.
const (
	RouteRoot           = "/"
	RouteLogin          = "/login"
	RouteSignup         = "/signup"
	RouteStudentHome    = "/student-home"
	RouteInstructorHome = "/instructor-home"
	RouteAdminHome      = "/admin-home"
)

// Decision is the guard's verdict for one route evaluation. Redirect is empty
// only for Loading and AuthorizedForRoute.
type Decision struct {
	State    GuardState
	Redirect string
}

// RoleHome maps a role to its dashboard route. Unknown roles fall back to the
// root route, which itself redirects unmatched traffic.
func RoleHome(role string) string {
	switch role {
	case "student":
		return RouteStudentHome
	case "instructor":
		return RouteInstructorHome
	case "admin":
		return RouteAdminHome
	}
	return RouteRoot
}

// Evaluate decides access for a route. requiredRole may be empty, meaning any
// authenticated session is authorized. The decision is recomputed by callers
// on every session change (login, logout, expiry-triggered clear), typically
// from a Subscribe callback.
func (c *Client) Evaluate(requiredRole string) Decision {
	c.mu.Lock()
	ready := c.ready
	session := c.session
	c.mu.Unlock()

	if !ready {
		return Decision{State: Loading}
	}
	if session == nil {
		return Decision{State: Unauthenticated, Redirect: RouteLogin}
	}
	if requiredRole != "" && session.Role != requiredRole {
		return Decision{State: WrongRole, Redirect: RoleHome(session.Role)}
	}
	return Decision{State: AuthorizedForRoute}
}
