package auth

// State is the authentication state of the client. It is a closed union:
// Anonymous, Admin and User are the only implementations.
type State interface {
	state()
}

// Anonymous means no usable credential is present.
type Anonymous struct{}

// Admin is an authenticated principal with the admin capability.
type Admin struct {
	Principal
}

// User is any other authenticated principal.
type User struct {
	Principal
}

func (Anonymous) state() {}
func (Admin) state()     {}
func (User) state()      {}

// StateOf maps a decoded principal to its state variant. A nil principal is
// Anonymous.
func StateOf(p *Principal) State {
	switch {
	case p == nil:
		return Anonymous{}
	case p.IsAdmin():
		return Admin{Principal: *p}
	default:
		return User{Principal: *p}
	}
}

// Describe renders s for prompts and logs.
func Describe(s State) string {
	switch v := s.(type) {
	case Admin:
		return "admin #" + v.UserID
	case User:
		role := string(v.Role)
		if role == "" {
			role = string(RoleUser)
		}
		return role + " #" + v.UserID
	default:
		return "anonymous"
	}
}
