// Package auth verifies Firebase ID tokens. Identity management itself is
// delegated to Firebase Authentication; this is a passthrough check.
package auth

import (
	"context"
	"fmt"

	fbauth "firebase.google.com/go/v4/auth"
)

// Identity is the verified subject of an ID token.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
}

// Verifier checks a bearer ID token and returns its identity.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (Identity, error)
}

type firebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier wraps an initialized Firebase auth client.
func NewFirebaseVerifier(client *fbauth.Client) Verifier {
	return &firebaseVerifier{client: client}
}

func (v *firebaseVerifier) Verify(ctx context.Context, idToken string) (Identity, error) {
	tok, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return Identity{}, fmt.Errorf("verify id token: %w", err)
	}
	id := Identity{UID: tok.UID}
	if email, ok := tok.Claims["email"].(string); ok {
		id.Email = email
	}
	return id, nil
}
