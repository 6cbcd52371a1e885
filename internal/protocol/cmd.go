package protocol

// Cmd is the Command Record (C2): a tagged pair of a request-type
// identifier and either an inline argument vector or a leaked-vector
// handle for oversize payloads. Exactly one of Args or (HandleLow,
// HandleHigh) is meaningful, selected by IsHandle.
type Cmd struct {
	RequestType RequestType
	Args        []string
	HandleLow   uint32
	HandleHigh  uint32
	IsHandle    bool

	// Blocking marks a command such as BLPOP/BRPOP that the server may hold
	// open indefinitely when its own timeout argument is zero. The
	// multiplexer (C6) reads this to bypass effectiveTimeout entirely rather
	// than racing the server's own wait against the client's request
	// timeout.
	Blocking bool
}

// VectorLeaker is the transport's large-argument escape hatch (spec.md §6,
// downward interface #1) plus the compile/startup-time constant it exposes
// (downward interface #2). The core never reconstructs the pointer behind
// the two 32-bit halves; it only carries them.
type VectorLeaker interface {
	LeakVec(args []string) (low, high uint32)
	MaxArgsThreshold() int
}

// NewCmd builds a Command Record, choosing the handle variant iff the
// summed byte length of args meets or exceeds the leaker's threshold. A nil
// leaker (e.g. pure factory unit tests) always yields the inline variant.
// Encoding is pure and idempotent: repeated calls with equal args and a
// leaker that returns equal handles for equal input yield equal records.
func NewCmd(rt RequestType, args []string, leaker VectorLeaker) Cmd {
	if leaker != nil && sumLen(args) >= leaker.MaxArgsThreshold() {
		low, high := leaker.LeakVec(args)
		return Cmd{RequestType: rt, HandleLow: low, HandleHigh: high, IsHandle: true}
	}
	return Cmd{RequestType: rt, Args: args}
}

// NewBlockingCmd is NewCmd for a command whose wait time is governed by its
// own argument rather than the client's request timeout — see Cmd.Blocking.
func NewBlockingCmd(rt RequestType, args []string, leaker VectorLeaker) Cmd {
	cmd := NewCmd(rt, args, leaker)
	cmd.Blocking = true
	return cmd
}

func sumLen(args []string) int {
	n := 0
	for _, a := range args {
		n += len(a)
	}
	return n
}
