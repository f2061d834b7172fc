package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncLoginSucceeded is a no-op.
func (n *NoopRecorder) IncLoginSucceeded() {}

// IncLoginFailed is a no-op.
func (n *NoopRecorder) IncLoginFailed() {}

// IncLinkCreated is a no-op.
func (n *NoopRecorder) IncLinkCreated() {}

// IncLinkUpdated is a no-op.
func (n *NoopRecorder) IncLinkUpdated() {}

// IncLinkDeleted is a no-op.
func (n *NoopRecorder) IncLinkDeleted() {}

// IncAnalysisCalled is a no-op.
func (n *NoopRecorder) IncAnalysisCalled() {}

// IncAnalysisFailed is a no-op.
func (n *NoopRecorder) IncAnalysisFailed() {}
