package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-memory store mirroring Firestore semantics, used by
// tests and local development. The composite-index toggle lets tests
// exercise the degraded due-query path.
type Memory struct {
	mu      sync.RWMutex
	users   map[string]map[string]any
	jitais  map[string]JITAI
	logs    map[string]LogEntry
	posts   map[string]CommunityPost
	indexed bool
	now     func() time.Time
}

// NewMemory creates an empty store with the composite index available.
func NewMemory() *Memory {
	return &Memory{
		users:   make(map[string]map[string]any),
		jitais:  make(map[string]JITAI),
		logs:    make(map[string]LogEntry),
		posts:   make(map[string]CommunityPost),
		indexed: true,
		now:     time.Now,
	}
}

var (
	_ JITAIStore     = (*Memory)(nil)
	_ UserStore      = (*Memory)(nil)
	_ LogStore       = (*Memory)(nil)
	_ CommunityStore = (*Memory)(nil)
)

// DisableCompositeIndex makes DueBefore return ErrMissingIndex, as a
// Firestore project without the (delivered, scheduledTime) index would.
func (m *Memory) DisableCompositeIndex() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.indexed = false
}

// SetClock overrides the store-assigned timestamp source.
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// --------------------------------------------------------------------------
// JITAIStore
// --------------------------------------------------------------------------

func (m *Memory) CreateJITAI(ctx context.Context, j JITAI) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = m.now().UTC()
	}
	m.jitais[j.ID] = j
	return j.ID, nil
}

func (m *Memory) DueBefore(ctx context.Context, cutoff time.Time) ([]JITAI, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.indexed {
		return nil, ErrMissingIndex
	}
	var out []JITAI
	for _, j := range m.jitais {
		if j.Delivered || j.ScheduledTime.IsZero() || j.ScheduledTime.After(cutoff) {
			continue
		}
		out = append(out, j)
	}
	sortJITAIsByScheduleAsc(out)
	return out, nil
}

func (m *Memory) Undelivered(ctx context.Context) ([]JITAI, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []JITAI
	for _, j := range m.jitais {
		if !j.Delivered {
			out = append(out, j)
		}
	}
	sortJITAIsByScheduleAsc(out)
	return out, nil
}

func (m *Memory) MarkDelivered(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jitais[id]
	if !ok {
		return ErrNotFound
	}
	at := m.now().UTC()
	j.Delivered = true
	j.DeliveredAt = &at
	m.jitais[id] = j
	return nil
}

func (m *Memory) ListJITAIs(ctx context.Context, uid string, delivered *bool) ([]JITAI, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []JITAI
	for _, j := range m.jitais {
		if j.UserID != uid {
			continue
		}
		if delivered != nil && j.Delivered != *delivered {
			continue
		}
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ScheduledTime.After(out[k].ScheduledTime) })
	return out, nil
}

// GetJITAI returns a record by ID. Test helper; Firestore callers never
// need point reads on this collection.
func (m *Memory) GetJITAI(id string) (JITAI, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.jitais[id]
	return j, ok
}

func sortJITAIsByScheduleAsc(jitais []JITAI) {
	sort.Slice(jitais, func(i, k int) bool { return jitais[i].ScheduledTime.Before(jitais[k].ScheduledTime) })
}

// --------------------------------------------------------------------------
// UserStore
// --------------------------------------------------------------------------

func (m *Memory) GetUser(ctx context.Context, uid string) (*UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.users[uid]
	if !ok {
		return nil, ErrNotFound
	}
	return profileFromDoc(uid, doc), nil
}

func (m *Memory) GetUserDoc(ctx context.Context, uid string) (map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.users[uid]
	if !ok {
		return nil, ErrNotFound
	}
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out, nil
}

func (m *Memory) MergeUser(ctx context.Context, uid string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.users[uid]
	if !ok {
		doc = make(map[string]any, len(fields))
		m.users[uid] = doc
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func (m *Memory) ClearPushTokens(ctx context.Context, uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.users[uid]
	if !ok {
		return ErrNotFound
	}
	for _, field := range TokenAliasFields {
		delete(doc, field)
	}
	return nil
}

// profileFromDoc converts a raw user document into the typed subset.
// Mirrors what Firestore's DataTo does for the adapter.
func profileFromDoc(uid string, doc map[string]any) *UserProfile {
	p := &UserProfile{
		UID:               uid,
		DisplayName:       docString(doc, "displayName"),
		Token:             docString(doc, "token"),
		FCMToken:          docString(doc, "fcmToken"),
		NotificationToken: docString(doc, "notificationToken"),
	}
	if sub := docMap(doc, "economicProfile"); sub != nil {
		p.EconomicProfile = &EconomicProfile{
			CostPerUnit:   docFloat(sub, "costPerUnit"),
			DailySpending: docFloat(sub, "dailySpending"),
		}
	}
	if sub := docMap(doc, "psychologicalProfile"); sub != nil {
		p.PsychologicalProfile = &PsychologicalProfile{
			DailyUsage: docFloat(sub, "dailyUsage"),
			Frequency:  docFloat(sub, "frequency"),
		}
	}
	if sub := docMap(doc, "quitGoal"); sub != nil {
		p.QuitGoal = &QuitGoal{
			Strategy: docString(sub, "strategy"),
			QuitDate: docString(sub, "quitDate"),
		}
	}
	return p
}

func docString(doc map[string]any, key string) string {
	s, _ := doc[key].(string)
	return s
}

func docFloat(doc map[string]any, key string) float64 {
	switch v := doc[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

func docMap(doc map[string]any, key string) map[string]any {
	m, _ := doc[key].(map[string]any)
	return m
}

// --------------------------------------------------------------------------
// LogStore
// --------------------------------------------------------------------------

func (m *Memory) CreateLog(ctx context.Context, e LogEntry) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := m.now().UTC()
	if e.Timestamp.IsZero() {
		e.Timestamp = now
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	m.logs[e.ID] = e
	return e.ID, nil
}

func (m *Memory) ListLogs(ctx context.Context, uid string, f LogFilter) ([]LogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []LogEntry
	for _, e := range m.logs {
		if e.UserID != uid {
			continue
		}
		if f.Start != nil && e.Timestamp.Before(*f.Start) {
			continue
		}
		if f.End != nil && e.Timestamp.After(*f.End) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Timestamp.After(out[k].Timestamp) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// --------------------------------------------------------------------------
// CommunityStore
// --------------------------------------------------------------------------

func (m *Memory) CreatePost(ctx context.Context, p CommunityPost) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = m.now().UTC()
	}
	m.posts[p.ID] = p
	return p.ID, nil
}

func (m *Memory) ListPosts(ctx context.Context, limit int) ([]CommunityPost, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]CommunityPost, 0, len(m.posts))
	for _, p := range m.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) LikePost(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return ErrNotFound
	}
	p.Likes++
	m.posts[id] = p
	return nil
}
