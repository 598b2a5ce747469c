package audit

// StreamType distinguishes chat rooms from multi-party direct messages.
type StreamType string

const (
	StreamTypeRoom StreamType = "ROOM"
	StreamTypeMIM  StreamType = "MIM"
)

const (
	ScopeInternal = "INTERNAL"
	ScopeExternal = "EXTERNAL"

	OriginInternal = "INTERNAL"
	OriginExternal = "EXTERNAL"
)

// Unresolved is the sentinel for derived fields no resolver tier could fill.
const Unresolved = "N/A"

// PublicPodCompany labels external members of the platform's shared public
// pod, which carry no company name of their own.
const PublicPodCompany = "Symphony Public Pod"

// Stream is one conversation as returned by the backend. It is read-only for
// the duration of a run; derived audit state lives in Classification.
type Stream struct {
	ID         string
	Type       StreamType
	Scope      string
	Origin     string
	Active     bool
	Attributes StreamAttributes
}

// StreamAttributes carries the conversation-level metadata the audit reads.
type StreamAttributes struct {
	RoomName        string
	CreatedDate     int64 // epoch milliseconds, UTC
	CreatedByUserID int64
	OriginCompany   string
}

// User is the directory identity behind a membership.
type User struct {
	UserID      int64
	DisplayName string
	External    bool
	Company     string
	CompanyID   int64
}

// Member wraps a user with its per-stream creator flag.
type Member struct {
	User      User
	IsCreator bool
}

// Classification is the derived output of scanning one stream's membership.
// It is produced exactly once per stream per run, before the violation
// predicate is evaluated.
type Classification struct {
	InternalCount int
	InternalNames []string
	Counterparty  string
	MemberCount   int
	Creator       string
}

// Violation reports whether the stream fails the two-internal-members rule.
func (c Classification) Violation() bool {
	return c.InternalCount < 2
}

// ViolationRecord pairs a failing stream with its classification for the
// report stage.
type ViolationRecord struct {
	Stream         Stream
	Classification Classification
}
