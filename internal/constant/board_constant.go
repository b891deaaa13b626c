package constant

const (
	BoardMessageRoleUser    = "user"
	BoardMessageRolePersona = "persona"
)

const (
	// Daily cap on boardroom messages per user, overridable per user row.
	DefaultBoardDailyLimit = 30

	DefaultSessionTitle = "Board meeting"
)

const (
	ProblemStatusOpen     = "open"
	ProblemStatusResolved = "resolved"
)
