// Package store defines the document-store contracts the QuitWise backend
// is built against, plus the Firestore adapter and an in-memory
// implementation used by tests and local development.
//
// Field names on the record types are the persisted wire names — several
// are historical and must not be renamed (see UserProfile token aliases).
package store

import (
	"context"
	"errors"
	"time"
)

// --------------------------------------------------------------------------
// Collections — single source of truth for document collection names
// --------------------------------------------------------------------------

const (
	UsersCollection  = "users"
	LogsCollection   = "logs"
	JITAIsCollection = "jitais"
	PostsCollection  = "posts"
)

// --------------------------------------------------------------------------
// Error variants
// --------------------------------------------------------------------------

var (
	// ErrNotFound is returned when a point lookup finds no document.
	ErrNotFound = errors.New("document not found")

	// ErrMissingIndex is returned when a query needs a composite index the
	// store does not have. Callers may degrade to a single-field query and
	// filter locally.
	ErrMissingIndex = errors.New("composite index unavailable")
)

// --------------------------------------------------------------------------
// Record types
// --------------------------------------------------------------------------

// Intervention categories. Wire values are fixed; schedule generation
// rotates through them.
const (
	InterventionBreathing     = "breathing"
	InterventionCBTPrompt     = "cbt-prompt"
	InterventionEconomicNudge = "economic-nudge"
	InterventionUrgeSurfing   = "urge-surfing"
)

// JITAI is a just-in-time adaptive intervention: a behavioral nudge
// scheduled for delivery at a predicted high-risk moment.
//
// Delivered is monotonic false→true and DeliveredAt is set exactly once,
// when the flag flips. A delivered record is never re-dispatched.
type JITAI struct {
	ID               string     `firestore:"-" json:"id"`
	UserID           string     `firestore:"userId" json:"userId"`
	ScheduledTime    time.Time  `firestore:"scheduledTime" json:"scheduledTime"`
	RiskWindow       int        `firestore:"riskWindow" json:"riskWindow"`
	InterventionType string     `firestore:"interventionType" json:"interventionType"`
	Message          string     `firestore:"message" json:"message"`
	Delivered        bool       `firestore:"delivered" json:"delivered"`
	DeliveredAt      *time.Time `firestore:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	CreatedAt        time.Time  `firestore:"createdAt" json:"createdAt"`
}

// TokenAliasFields are the profile fields that may hold a push delivery
// token, in preference order: the current field first, then legacy aliases
// still present on older profiles. Adding or removing an alias is a
// one-line change here and in the UserProfile struct.
var TokenAliasFields = []string{"token", "fcmToken", "notificationToken"}

// UserProfile is the typed subset of a user document the backend reads.
// The full document carries more fields; GetUserDoc returns it raw.
type UserProfile struct {
	UID                  string                `firestore:"-" json:"uid"`
	DisplayName          string                `firestore:"displayName" json:"displayName,omitempty"`
	Token                string                `firestore:"token" json:"-"`
	FCMToken             string                `firestore:"fcmToken" json:"-"`
	NotificationToken    string                `firestore:"notificationToken" json:"-"`
	EconomicProfile      *EconomicProfile      `firestore:"economicProfile" json:"economicProfile,omitempty"`
	PsychologicalProfile *PsychologicalProfile `firestore:"psychologicalProfile" json:"psychologicalProfile,omitempty"`
	QuitGoal             *QuitGoal             `firestore:"quitGoal" json:"quitGoal,omitempty"`
}

type EconomicProfile struct {
	CostPerUnit   float64 `firestore:"costPerUnit" json:"costPerUnit"`
	DailySpending float64 `firestore:"dailySpending" json:"dailySpending,omitempty"`
}

type PsychologicalProfile struct {
	DailyUsage float64 `firestore:"dailyUsage" json:"dailyUsage,omitempty"`
	Frequency  float64 `firestore:"frequency" json:"frequency,omitempty"`
}

type QuitGoal struct {
	Strategy string `firestore:"strategy" json:"strategy,omitempty"`
	QuitDate string `firestore:"quitDate" json:"quitDate,omitempty"` // RFC 3339 or YYYY-MM-DD
}

// LogEntry is a single use/craving event.
type LogEntry struct {
	ID        string    `firestore:"-" json:"id"`
	UserID    string    `firestore:"userId" json:"userId"`
	Type      string    `firestore:"type" json:"type"` // "use" | "craving" | "resisted"
	Timestamp time.Time `firestore:"timestamp" json:"timestamp"`
	Trigger   string    `firestore:"trigger" json:"trigger,omitempty"`
	Intensity int       `firestore:"intensity" json:"intensity,omitempty"`
	Resisted  bool      `firestore:"resisted" json:"resisted"`
	Notes     string    `firestore:"notes" json:"notes,omitempty"`
	Cost      float64   `firestore:"cost" json:"cost,omitempty"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

// CommunityPost is an entry on the shared support feed.
type CommunityPost struct {
	ID         string    `firestore:"-" json:"id"`
	UserID     string    `firestore:"userId" json:"userId"`
	AuthorName string    `firestore:"authorName" json:"authorName,omitempty"`
	Content    string    `firestore:"content" json:"content"`
	Likes      int       `firestore:"likes" json:"likes"`
	CreatedAt  time.Time `firestore:"createdAt" json:"createdAt"`
}

// LogFilter narrows ListLogs. Nil/zero fields are ignored.
type LogFilter struct {
	Start *time.Time
	End   *time.Time
	Limit int
}

// --------------------------------------------------------------------------
// Contracts
// --------------------------------------------------------------------------

// JITAIStore provides access to intervention records.
type JITAIStore interface {
	// CreateJITAI persists a new record and returns its assigned ID.
	CreateJITAI(ctx context.Context, j JITAI) (string, error)

	// DueBefore returns undelivered records with scheduledTime <= cutoff.
	// Returns ErrMissingIndex when the composite filter is not indexable;
	// callers then fall back to Undelivered plus local filtering.
	DueBefore(ctx context.Context, cutoff time.Time) ([]JITAI, error)

	// Undelivered returns all records with delivered == false.
	Undelivered(ctx context.Context) ([]JITAI, error)

	// MarkDelivered flips delivered to true and sets deliveredAt to a
	// store-assigned timestamp.
	MarkDelivered(ctx context.Context, id string) error

	// ListJITAIs returns a user's records ordered by scheduledTime
	// descending, optionally filtered by delivery status.
	ListJITAIs(ctx context.Context, uid string, delivered *bool) ([]JITAI, error)
}

// UserStore provides access to user profile documents.
type UserStore interface {
	// GetUser returns the typed profile subset, or ErrNotFound.
	GetUser(ctx context.Context, uid string) (*UserProfile, error)

	// GetUserDoc returns the full raw profile document, or ErrNotFound.
	GetUserDoc(ctx context.Context, uid string) (map[string]any, error)

	// MergeUser merges fields into the profile, creating it if absent.
	MergeUser(ctx context.Context, uid string, fields map[string]any) error

	// ClearPushTokens removes the delivery token from every alias field.
	// Absence means "do not attempt delivery until re-registration".
	ClearPushTokens(ctx context.Context, uid string) error
}

// LogStore provides access to event log records.
type LogStore interface {
	CreateLog(ctx context.Context, e LogEntry) (string, error)
	ListLogs(ctx context.Context, uid string, f LogFilter) ([]LogEntry, error)
}

// CommunityStore provides access to the support feed.
type CommunityStore interface {
	CreatePost(ctx context.Context, p CommunityPost) (string, error)
	ListPosts(ctx context.Context, limit int) ([]CommunityPost, error)
	LikePost(ctx context.Context, id string) error
}
