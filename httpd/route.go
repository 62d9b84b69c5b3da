package httpd

import "time"

const (
	ResourceRoot     = "hello.html"
	ResourceNotFound = "404.html"

	DefaultSleepDelay = 5 * time.Second
)

// Route is what the server answers for one URI.
type Route struct {
	Status   Status
	Resource string
	// Delay is slept by the worker before the response is built.
	Delay time.Duration
}

// RouteTable maps a request URI to a Route. It is never modified after construction.
type RouteTable struct {
	routes   map[string]Route
	notFound Route
}

// DefaultRoutes serves the root resource on "/" and, after sleepDelay, on "/sleep".
// Every other URI gets the not-found resource.
func DefaultRoutes(sleepDelay time.Duration) *RouteTable {
	return &RouteTable{
		routes: map[string]Route{
			"/":      {Status: StatusOK, Resource: ResourceRoot},
			"/sleep": {Status: StatusOK, Resource: ResourceRoot, Delay: sleepDelay},
		},
		notFound: Route{Status: StatusNotFound, Resource: ResourceNotFound},
	}
}

// Lookup matches uri exactly; query strings are part of the match.
func (rt *RouteTable) Lookup(uri string) Route {
	if r, ok := rt.routes[uri]; ok {
		return r
	}
	return rt.notFound
}

// Resources lists every resource key the table can select.
func (rt *RouteTable) Resources() []string {
	seen := map[string]bool{rt.notFound.Resource: true}
	keys := []string{rt.notFound.Resource}
	for _, r := range rt.routes {
		if !seen[r.Resource] {
			seen[r.Resource] = true
			keys = append(keys, r.Resource)
		}
	}
	return keys
}
