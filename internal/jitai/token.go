package jitai

import "github.com/quitwise/quitwise-backend/internal/store"

// minTokenLen is a sanity bound on provider-issued tokens, not a full
// format validation. Real FCM registration tokens run well past this.
const minTokenLen = 100

// tokenAliases evaluates the delivery-token candidate fields first-match-
// wins. Order matters: the current field first, then legacy aliases still
// present on older profiles. Keep this list in sync with
// store.TokenAliasFields.
var tokenAliases = []func(*store.UserProfile) string{
	func(p *store.UserProfile) string { return p.Token },
	func(p *store.UserProfile) string { return p.FCMToken },
	func(p *store.UserProfile) string { return p.NotificationToken },
}

// resolveToken returns the first non-empty token among the alias fields.
func resolveToken(p *store.UserProfile) (string, bool) {
	for _, get := range tokenAliases {
		if t := get(p); t != "" {
			return t, true
		}
	}
	return "", false
}
