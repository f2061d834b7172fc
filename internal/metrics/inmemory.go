package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered uint64
	LoginsSucceeded uint64
	LoginsFailed    uint64
	LinksCreated    uint64
	LinksUpdated    uint64
	LinksDeleted    uint64
	AnalysisCalls   uint64
	AnalysisFailed  uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	usersRegistered uint64
	loginsSucceeded uint64
	loginsFailed    uint64
	linksCreated    uint64
	linksUpdated    uint64
	linksDeleted    uint64
	analysisCalls   uint64
	analysisFailed  uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered: atomic.LoadUint64(&m.usersRegistered),
		LoginsSucceeded: atomic.LoadUint64(&m.loginsSucceeded),
		LoginsFailed:    atomic.LoadUint64(&m.loginsFailed),
		LinksCreated:    atomic.LoadUint64(&m.linksCreated),
		LinksUpdated:    atomic.LoadUint64(&m.linksUpdated),
		LinksDeleted:    atomic.LoadUint64(&m.linksDeleted),
		AnalysisCalls:   atomic.LoadUint64(&m.analysisCalls),
		AnalysisFailed:  atomic.LoadUint64(&m.analysisFailed),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncLoginSucceeded increments the successful login counter.
func (m *InMemoryRecorder) IncLoginSucceeded() {
	atomic.AddUint64(&m.loginsSucceeded, 1)
}

// IncLoginFailed increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailed() {
	atomic.AddUint64(&m.loginsFailed, 1)
}

// IncLinkCreated increments the link creation counter.
func (m *InMemoryRecorder) IncLinkCreated() {
	atomic.AddUint64(&m.linksCreated, 1)
}

// IncLinkUpdated increments the link update counter.
func (m *InMemoryRecorder) IncLinkUpdated() {
	atomic.AddUint64(&m.linksUpdated, 1)
}

// IncLinkDeleted increments the link deletion counter.
func (m *InMemoryRecorder) IncLinkDeleted() {
	atomic.AddUint64(&m.linksDeleted, 1)
}

// IncAnalysisCalled increments the analysis call counter.
func (m *InMemoryRecorder) IncAnalysisCalled() {
	atomic.AddUint64(&m.analysisCalls, 1)
}

// IncAnalysisFailed increments the analysis failure counter.
func (m *InMemoryRecorder) IncAnalysisFailed() {
	atomic.AddUint64(&m.analysisFailed, 1)
}
