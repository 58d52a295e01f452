package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore implements every store contract against a Firestore database.
type Firestore struct {
	client *firestore.Client
}

// NewFirestore wraps an already-connected Firestore client.
func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

var (
	_ JITAIStore     = (*Firestore)(nil)
	_ UserStore      = (*Firestore)(nil)
	_ LogStore       = (*Firestore)(nil)
	_ CommunityStore = (*Firestore)(nil)
)

// --------------------------------------------------------------------------
// JITAIStore
// --------------------------------------------------------------------------

func (s *Firestore) CreateJITAI(ctx context.Context, j JITAI) (string, error) {
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now().UTC()
	}
	ref, _, err := s.client.Collection(JITAIsCollection).Add(ctx, j)
	if err != nil {
		return "", fmt.Errorf("create jitai: %w", err)
	}
	return ref.ID, nil
}

func (s *Firestore) DueBefore(ctx context.Context, cutoff time.Time) ([]JITAI, error) {
	iter := s.client.Collection(JITAIsCollection).
		Where("delivered", "==", false).
		Where("scheduledTime", "<=", cutoff).
		Documents(ctx)
	jitais, err := collectJITAIs(iter)
	if err != nil {
		// Firestore reports a missing composite index as FailedPrecondition.
		if status.Code(err) == codes.FailedPrecondition {
			return nil, fmt.Errorf("due query: %w", ErrMissingIndex)
		}
		return nil, fmt.Errorf("due query: %w", err)
	}
	return jitais, nil
}

func (s *Firestore) Undelivered(ctx context.Context) ([]JITAI, error) {
	iter := s.client.Collection(JITAIsCollection).
		Where("delivered", "==", false).
		Documents(ctx)
	jitais, err := collectJITAIs(iter)
	if err != nil {
		return nil, fmt.Errorf("undelivered query: %w", err)
	}
	return jitais, nil
}

func (s *Firestore) MarkDelivered(ctx context.Context, id string) error {
	// Server-assigned timestamp, not the dispatcher's clock.
	_, err := s.client.Collection(JITAIsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "delivered", Value: true},
		{Path: "deliveredAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return fmt.Errorf("mark delivered %s: %w", id, err)
	}
	return nil
}

func (s *Firestore) ListJITAIs(ctx context.Context, uid string, delivered *bool) ([]JITAI, error) {
	q := s.client.Collection(JITAIsCollection).Where("userId", "==", uid)
	if delivered != nil {
		q = q.Where("delivered", "==", *delivered)
	}
	jitais, err := collectJITAIs(q.OrderBy("scheduledTime", firestore.Desc).Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("list jitais for %s: %w", uid, err)
	}
	return jitais, nil
}

func collectJITAIs(iter *firestore.DocumentIterator) ([]JITAI, error) {
	defer iter.Stop()
	var out []JITAI
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		var j JITAI
		if err := doc.DataTo(&j); err != nil {
			return nil, fmt.Errorf("decode jitai %s: %w", doc.Ref.ID, err)
		}
		j.ID = doc.Ref.ID
		out = append(out, j)
	}
}

// --------------------------------------------------------------------------
// UserStore
// --------------------------------------------------------------------------

func (s *Firestore) GetUser(ctx context.Context, uid string) (*UserProfile, error) {
	doc, err := s.client.Collection(UsersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", uid, err)
	}
	var p UserProfile
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", uid, err)
	}
	p.UID = uid
	return &p, nil
}

func (s *Firestore) GetUserDoc(ctx context.Context, uid string) (map[string]any, error) {
	doc, err := s.client.Collection(UsersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", uid, err)
	}
	return doc.Data(), nil
}

func (s *Firestore) MergeUser(ctx context.Context, uid string, fields map[string]any) error {
	_, err := s.client.Collection(UsersCollection).Doc(uid).Set(ctx, fields, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("merge user %s: %w", uid, err)
	}
	return nil
}

func (s *Firestore) ClearPushTokens(ctx context.Context, uid string) error {
	updates := make([]firestore.Update, 0, len(TokenAliasFields))
	for _, field := range TokenAliasFields {
		updates = append(updates, firestore.Update{Path: field, Value: firestore.Delete})
	}
	if _, err := s.client.Collection(UsersCollection).Doc(uid).Update(ctx, updates); err != nil {
		return fmt.Errorf("clear push tokens for %s: %w", uid, err)
	}
	return nil
}

// --------------------------------------------------------------------------
// LogStore
// --------------------------------------------------------------------------

func (s *Firestore) CreateLog(ctx context.Context, e LogEntry) (string, error) {
	now := time.Now().UTC()
	if e.Timestamp.IsZero() {
		e.Timestamp = now
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	ref, _, err := s.client.Collection(LogsCollection).Add(ctx, e)
	if err != nil {
		return "", fmt.Errorf("create log: %w", err)
	}
	return ref.ID, nil
}

func (s *Firestore) ListLogs(ctx context.Context, uid string, f LogFilter) ([]LogEntry, error) {
	q := s.client.Collection(LogsCollection).Where("userId", "==", uid)
	if f.Start != nil {
		q = q.Where("timestamp", ">=", *f.Start)
	}
	if f.End != nil {
		q = q.Where("timestamp", "<=", *f.End)
	}
	q = q.OrderBy("timestamp", firestore.Desc)
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()
	var out []LogEntry
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("list logs for %s: %w", uid, err)
		}
		var e LogEntry
		if err := doc.DataTo(&e); err != nil {
			return nil, fmt.Errorf("decode log %s: %w", doc.Ref.ID, err)
		}
		e.ID = doc.Ref.ID
		out = append(out, e)
	}
}

// --------------------------------------------------------------------------
// CommunityStore
// --------------------------------------------------------------------------

func (s *Firestore) CreatePost(ctx context.Context, p CommunityPost) (string, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	ref, _, err := s.client.Collection(PostsCollection).Add(ctx, p)
	if err != nil {
		return "", fmt.Errorf("create post: %w", err)
	}
	return ref.ID, nil
}

func (s *Firestore) ListPosts(ctx context.Context, limit int) ([]CommunityPost, error) {
	q := s.client.Collection(PostsCollection).OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}
	iter := q.Documents(ctx)
	defer iter.Stop()
	var out []CommunityPost
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("list posts: %w", err)
		}
		var p CommunityPost
		if err := doc.DataTo(&p); err != nil {
			return nil, fmt.Errorf("decode post %s: %w", doc.Ref.ID, err)
		}
		p.ID = doc.Ref.ID
		out = append(out, p)
	}
}

func (s *Firestore) LikePost(ctx context.Context, id string) error {
	_, err := s.client.Collection(PostsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "likes", Value: firestore.Increment(1)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("like post %s: %w", id, err)
	}
	return nil
}
