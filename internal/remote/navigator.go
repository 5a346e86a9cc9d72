package remote

// Navigator abstracts the route layer the client runs under. The 401
// handler consults it to decide whether the user is on a protected page
// and must be bounced to a login route.
type Navigator interface {
	CurrentPath() string
	Redirect(path string)
}

// StaticNavigator is a minimal Navigator for non-UI hosts: it tracks the
// current path as plain state and remembers the last redirect.
type StaticNavigator struct {
	path       string
	redirected string
}

func NewStaticNavigator(path string) *StaticNavigator {
	return &StaticNavigator{path: path}
}

func (n *StaticNavigator) CurrentPath() string {
	return n.path
}

func (n *StaticNavigator) Redirect(path string) {
	n.redirected = path
	n.path = path
}

// LastRedirect returns the most recent redirect target, or "".
func (n *StaticNavigator) LastRedirect() string {
	return n.redirected
}
