package cms

import "sync"

// State is the admin session gate's position. The gate starts in
// StateLoading until the first session check answers, then moves
// between StateUnauthenticated and StateAuthenticated.
type State int

const (
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// EventKind enumerates everything that can move the gate. The initial
// session check and later auth-change notifications feed the same
// machine, so the two sources can never disagree about the state.
type EventKind int

const (
	// EventInitialCheck carries the result of the startup session probe.
	// It only resolves StateLoading; once the gate has settled, session
	// probes (which any anonymous caller can trigger) cannot move it.
	EventInitialCheck EventKind = iota
	// EventAuthChange is an external session change: token expiry,
	// revocation noticed mid-request, a sign-in from elsewhere.
	EventAuthChange
	// EventSignInResult carries the outcome of a sign-in attempt.
	EventSignInResult
	// EventSignOut is an explicit sign-out action.
	EventSignOut
)

type Event struct {
	Kind          EventKind
	Authenticated bool
	// Err holds the sign-in failure, surfaced verbatim to the caller.
	// A failed sign-in never moves the state.
	Err error
}

// transition is the single state function. Every gate movement goes
// through here; there are no side doors.
func transition(s State, e Event) State {
	switch e.Kind {
	case EventInitialCheck:
		if s != StateLoading {
			return s
		}
		if e.Authenticated {
			return StateAuthenticated
		}
		return StateUnauthenticated
	case EventAuthChange:
		if e.Authenticated {
			return StateAuthenticated
		}
		return StateUnauthenticated
	case EventSignInResult:
		if e.Err != nil {
			return s
		}
		return StateAuthenticated
	case EventSignOut:
		return StateUnauthenticated
	default:
		return s
	}
}

// Subscriber observes gate state changes. Callbacks run synchronously
// under the event that caused the change, in subscription order.
type Subscriber func(old, new State)

// Gate holds the admin session state machine and its subscribers.
type Gate struct {
	mu          sync.Mutex
	state       State
	subscribers []Subscriber
}

func NewGate() *Gate {
	return &Gate{state: StateLoading}
}

func (g *Gate) Current() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Gate) Subscribe(fn Subscriber) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.subscribers = append(g.subscribers, fn)
}

// Apply feeds one event through the transition function and notifies
// subscribers if the state moved. It returns the resulting state.
func (g *Gate) Apply(e Event) State {
	g.mu.Lock()
	old := g.state
	next := transition(old, e)
	g.state = next
	subs := make([]Subscriber, len(g.subscribers))
	copy(subs, g.subscribers)
	g.mu.Unlock()

	if next != old {
		for _, fn := range subs {
			fn(old, next)
		}
	}
	return next
}
