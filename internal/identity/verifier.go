// Package identity verifies bearer ID tokens issued by the external
// identity provider. The gateway consumes verification only; token issuance
// and refresh are owned entirely by the provider.
package identity

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"vidvaan/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// googleCertsURL publishes the x509 certificates used to sign ID tokens,
// as a JSON object of kid -> PEM certificate.
const googleCertsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

const issuerPrefix = "https://securetoken.google.com/"

var (
	// ErrTokenExpired is returned for structurally valid tokens past their
	// expiry.
	ErrTokenExpired = errors.New("identity token expired")
	// ErrTokenInvalid is returned for every other verification failure.
	ErrTokenInvalid = errors.New("identity token invalid")
)

// Identity is the verified subject asserted by a bearer token. Email may be
// empty for phone-only accounts.
type Identity struct {
	UID   string
	Email string
}

// Verifier validates an opaque bearer credential and yields the subject it
// asserts.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (*Identity, error)
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type certCache struct {
	keys      map[string]*rsa.PublicKey
	expiresAt time.Time
	mu        sync.RWMutex
}

// GoogleVerifier verifies RS256 ID tokens against the provider's published
// signing certificates, cached between requests.
type GoogleVerifier struct {
	cache      *certCache
	httpClient *http.Client
	certsURL   string
	projectID  string
}

// NewGoogleVerifier creates a verifier bound to the configured project. The
// service-account client email and private key in cfg are not needed for
// verification and are ignored here.
func NewGoogleVerifier(cfg config.IdentityConfig) *GoogleVerifier {
	return &GoogleVerifier{
		cache: &certCache{
			keys: make(map[string]*rsa.PublicKey),
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
		certsURL:   googleCertsURL,
		projectID:  cfg.ProjectID,
	}
}

func (v *GoogleVerifier) fetchCerts(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build certs request: %w", err)
	}
	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch signing certs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("certs endpoint returned status %d", resp.StatusCode)
	}

	var certs map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&certs); err != nil {
		return fmt.Errorf("failed to decode certs payload: %w", err)
	}

	v.cache.mu.Lock()
	defer v.cache.mu.Unlock()

	v.cache.keys = make(map[string]*rsa.PublicKey)
	for kid, pemCert := range certs {
		pubKey, err := parseCertPublicKey(pemCert)
		if err != nil {
			continue
		}
		v.cache.keys[kid] = pubKey
	}
	v.cache.expiresAt = time.Now().Add(1 * time.Hour)
	return nil
}

func parseCertPublicKey(pemCert string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemCert))
	if block == nil {
		return nil, errors.New("no PEM block in certificate")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse certificate: %w", err)
	}
	pubKey, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("certificate does not carry an RSA key")
	}
	return pubKey, nil
}

func (v *GoogleVerifier) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.cache.mu.RLock()
	if key, ok := v.cache.keys[kid]; ok && time.Now().Before(v.cache.expiresAt) {
		v.cache.mu.RUnlock()
		return key, nil
	}
	v.cache.mu.RUnlock()

	if err := v.fetchCerts(ctx); err != nil {
		return nil, err
	}

	v.cache.mu.RLock()
	defer v.cache.mu.RUnlock()
	if key, ok := v.cache.keys[kid]; ok {
		return key, nil
	}
	return nil, fmt.Errorf("signing key with kid %s not found", kid)
}

// Verify checks the token signature, issuer, audience and expiry, and
// returns the asserted identity. Failures collapse into ErrTokenExpired or
// ErrTokenInvalid so callers never branch on parser internals.
func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(idToken, claims,
		func(t *jwt.Token) (interface{}, error) {
			kid, _ := t.Header["kid"].(string)
			if kid == "" {
				return nil, errors.New("token has no kid header")
			}
			return v.publicKey(ctx, kid)
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(issuerPrefix+v.projectID),
		jwt.WithAudience(v.projectID),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}

	return &Identity{
		UID:   claims.Subject,
		Email: claims.Email,
	}, nil
}
