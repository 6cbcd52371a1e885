package pipeline

// ClusterBatchRetryStrategy records whether a non-atomic cluster batch may be
// re-driven after a server or connection failure; both flags default to
// false. ClusterClient.Exec does not read it, and no batch is re-driven.
type ClusterBatchRetryStrategy struct {
	RetryServerError     bool
	RetryConnectionError bool
}

func NewClusterBatchRetryStrategy() *ClusterBatchRetryStrategy {
	return &ClusterBatchRetryStrategy{}
}

func (s *ClusterBatchRetryStrategy) WithRetryServerError(v bool) *ClusterBatchRetryStrategy {
	s.RetryServerError = v
	return s
}

func (s *ClusterBatchRetryStrategy) WithRetryConnectionError(v bool) *ClusterBatchRetryStrategy {
	s.RetryConnectionError = v
	return s
}

// StandaloneBatchOptions carries the per-submission timeout override; a nil
// Timeout defers to the client's configured default.
type StandaloneBatchOptions struct {
	Timeout *uint32
}

func NewStandaloneBatchOptions() *StandaloneBatchOptions { return &StandaloneBatchOptions{} }

func (o *StandaloneBatchOptions) WithTimeout(ms uint32) *StandaloneBatchOptions {
	o.Timeout = &ms
	return o
}

// ClusterBatchOptions adds a route and a retry strategy on top of the
// standalone options. ClusterClient.Exec applies only Timeout: Route and
// RetryStrategy are carried but not read, and the batch always runs on the
// node it was started on.
type ClusterBatchOptions struct {
	Timeout       *uint32
	Route         string
	RetryStrategy *ClusterBatchRetryStrategy
}

func NewClusterBatchOptions() *ClusterBatchOptions { return &ClusterBatchOptions{} }

func (o *ClusterBatchOptions) WithTimeout(ms uint32) *ClusterBatchOptions {
	o.Timeout = &ms
	return o
}

func (o *ClusterBatchOptions) WithRoute(route string) *ClusterBatchOptions {
	o.Route = route
	return o
}

func (o *ClusterBatchOptions) WithRetryStrategy(s *ClusterBatchRetryStrategy) *ClusterBatchOptions {
	o.RetryStrategy = s
	return o
}
