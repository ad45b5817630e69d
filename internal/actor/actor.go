package actor

// Actor identifies who is invoking an operation. Authorization decisions
// live in the policy layer above the services; services only check the
// flags they are handed.
type Actor struct {
	IsAdmin bool
}

// Admin is a convenience actor for jobs and tests.
var Admin = Actor{IsAdmin: true}
