package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrResult   = "result"
)

// Join outcome values recorded under AttrResult.
const (
	JoinResultJoined       = "joined"
	JoinResultFailed       = "failed"
	JoinResultUnauthorized = "unauthorized"
)
