// Package session holds the credential pair the API hands out at login. It
// is the only mutable state shared between commands: the login and register
// flows write it, the unauthorized-response handler clears it, everything
// else reads.
package session

// Credential is the stored credential pair. Both values are opaque strings
// owned by the API; the client never inspects the key and only ever decodes
// the token for an advisory role hint.
type Credential struct {
	APIKey string `json:"api_key"`
	Token  string `json:"token"`
}

// IsAuthenticated reports whether a token is present. An empty token means
// every authenticated command must fail before touching the network.
func (c Credential) IsAuthenticated() bool {
	return c.Token != ""
}

// Store persists a credential across invocations. Implementations must treat
// an absent credential as a zero value, not an error.
type Store interface {
	Get() (Credential, error)
	Set(Credential) error
	Clear() error
}
