// Package firebase verifies Firebase Phone Auth ID tokens. The client is
// constructed once at process start and injected; it is never initialized
// lazily on first use.
package firebase

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Claims are the decoded token fields this service cares about.
type Claims struct {
	UID   string
	Phone string
}

// TokenVerifier validates a Firebase ID token and returns its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*Claims, error)
}

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid firebase token")

const (
	jwksURL         = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"
	issuerPrefix    = "https://securetoken.google.com/"
	defaultCacheTTL = 15 * time.Minute
)

// Client verifies RS256 ID tokens against the Google securetoken key set.
type Client struct {
	projectID string
	http      *http.Client
	cacheTTL  time.Duration

	mu      sync.RWMutex
	keys    map[string]*rsa.PublicKey
	fetched time.Time
}

// NewClient builds a verifier for the given Firebase project.
func NewClient(projectID string) *Client {
	return &Client{
		projectID: projectID,
		http:      &http.Client{Timeout: 5 * time.Second},
		cacheTTL:  defaultCacheTTL,
		keys:      map[string]*rsa.PublicKey{},
	}
}

// Verify parses and validates the ID token, returning its uid and phone
// number. Any verification failure maps to ErrInvalidToken; callers treat it
// as an authentication failure, not a fault.
func (c *Client) Verify(ctx context.Context, idToken string) (*Claims, error) {
	if c.projectID == "" {
		return nil, errors.New("firebase project id not configured")
	}

	type idTokenClaims struct {
		PhoneNumber string `json:"phone_number"`
		jwt.RegisteredClaims
	}

	var claims idTokenClaims
	parsed, err := jwt.ParseWithClaims(idToken, &claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodRS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("missing kid header")
		}
		return c.key(ctx, kid)
	},
		jwt.WithAudience(c.projectID),
		jwt.WithIssuer(issuerPrefix+c.projectID),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{UID: claims.Subject, Phone: claims.PhoneNumber}, nil
}

func (c *Client) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	c.mu.RLock()
	pub := c.keys[kid]
	fetched := c.fetched
	c.mu.RUnlock()
	if pub != nil && time.Since(fetched) < c.cacheTTL {
		return pub, nil
	}

	if err := c.refresh(ctx); err != nil {
		// serve a stale key over failing outright
		if pub != nil {
			return pub, nil
		}
		return nil, err
	}

	c.mu.RLock()
	pub = c.keys[kid]
	c.mu.RUnlock()
	if pub == nil {
		return nil, errors.New("signing key not found")
	}
	return pub, nil
}

type jwksDoc struct {
	Keys []struct{ Kty, Kid, N, E string } `json:"keys"`
}

func (c *Client) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, jwksURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return fmt.Errorf("jwks fetch: status %d", resp.StatusCode)
	}

	var doc jwksDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return err
	}

	keys := map[string]*rsa.PublicKey{}
	for _, k := range doc.Keys {
		if k.Kty != "RSA" {
			continue
		}
		nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
		if err != nil {
			continue
		}
		eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
		if err != nil {
			continue
		}
		e := 0
		for _, b := range eBytes {
			e = e*256 + int(b)
		}
		keys[k.Kid] = &rsa.PublicKey{N: new(big.Int).SetBytes(nBytes), E: e}
	}

	c.mu.Lock()
	c.keys = keys
	c.fetched = time.Now()
	c.mu.Unlock()
	return nil
}
