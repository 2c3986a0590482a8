package provisioning

// VolumesNamespace is the run-scoped namespace shared by volume phases.
const VolumesNamespace = "volumes"

// State holds the results shared across the plans of one run.
type State struct {
	namespaces map[string]*Namespace

	// Applied and Missing list requested plan names in request order.
	Applied []string
	Missing []string
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{
		namespaces: make(map[string]*Namespace),
	}
}

// Namespace returns the namespace called name, creating it on first use.
func (s *State) Namespace(name string) *Namespace {
	ns, ok := s.namespaces[name]
	if !ok {
		ns = &Namespace{name: name, values: make(map[string]any)}
		s.namespaces[name] = ns
	}
	return ns
}

// HasNamespace reports whether the namespace has been created.
func (s *State) HasNamespace(name string) bool {
	_, ok := s.namespaces[name]
	return ok
}

// Volumes returns the volumes namespace.
func (s *State) Volumes() *Namespace {
	return s.Namespace(VolumesNamespace)
}

// Namespace is a keyed bag of values. Execution is single threaded, so no
// locking is done.
type Namespace struct {
	name   string
	values map[string]any
}

// Name returns the namespace name.
func (n *Namespace) Name() string {
	return n.name
}

// Get returns the value stored under key.
func (n *Namespace) Get(key string) (any, bool) {
	v, ok := n.values[key]
	return v, ok
}

// Set stores value under key.
func (n *Namespace) Set(key string, value any) {
	n.values[key] = value
}
