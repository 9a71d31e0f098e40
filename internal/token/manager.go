package token

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Manager signs and verifies order access tokens with an RSA key pair and
// publishes the verification material as a JWK set. The private key is
// held only by this service; any consumer can verify against the JWKS.
type Manager struct {
	key      *rsa.PrivateKey
	keyID    string
	issuer   string
	audience string
}

// AccessClaims are the claims carried by an order access token.
type AccessClaims struct {
	ProductID string   `json:"product_id"`
	Tags      []string `json:"tags,omitempty"`
	jwt.RegisteredClaims
}

// NewManager loads an RSA private key from path. PEM-wrapped PKCS#8 or
// PKCS#1 and raw PKCS#8 DER are accepted.
func NewManager(privateKeyPath, issuer, audience string) (*Manager, error) {
	raw, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("reading private key %s: %w", privateKeyPath, err)
	}

	key, err := parseRSAPrivateKey(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing private key %s: %w", privateKeyPath, err)
	}

	return NewManagerFromKey(key, issuer, audience), nil
}

// NewManagerFromKey wraps an already-loaded key. Used by tests and by key
// bootstrap tooling.
func NewManagerFromKey(key *rsa.PrivateKey, issuer, audience string) *Manager {
	return &Manager{
		key:      key,
		keyID:    uuid.NewString(),
		issuer:   issuer,
		audience: audience,
	}
}

func parseRSAPrivateKey(raw []byte) (*rsa.PrivateKey, error) {
	der := raw
	if block, _ := pem.Decode(raw); block != nil {
		der = block.Bytes
	}

	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("private key is not RSA")
		}
		return rsaKey, nil
	}

	return x509.ParsePKCS1PrivateKey(der)
}

// Issue mints a signed access token for a redeemed order. The subject is
// the order id; expiry is the order's post-redemption expiredAt.
func (m *Manager) Issue(orderID, productID string, tags []string, issuedAt, expiresAt time.Time) (string, error) {
	claims := AccessClaims{
		ProductID: productID,
		Tags:      tags,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   orderID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if m.audience != "" {
		claims.Audience = jwt.ClaimStrings{m.audience}
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = m.keyID

	signed, err := tok.SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, issuer, audience and expiry, and returns the
// token's claims.
func (m *Manager) Verify(accessToken string) (*AccessClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
	}
	if m.audience != "" {
		opts = append(opts, jwt.WithAudience(m.audience))
	}

	claims := &AccessClaims{}
	_, err := jwt.ParseWithClaims(accessToken, claims, func(t *jwt.Token) (any, error) {
		return &m.key.PublicKey, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

type jwk struct {
	Kty string `json:"kty"`
	Use string `json:"use"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type jwkSet struct {
	Keys []jwk `json:"keys"`
}

// JWKS renders the public half of the signing key as a JWK set document
// for the well-known discovery endpoint.
func (m *Manager) JWKS() ([]byte, error) {
	pub := &m.key.PublicKey

	eBytes := make([]byte, 0, 4)
	for e := pub.E; e > 0; e >>= 8 {
		eBytes = append([]byte{byte(e)}, eBytes...)
	}

	set := jwkSet{Keys: []jwk{{
		Kty: "RSA",
		Use: "sig",
		Kid: m.keyID,
		N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString(eBytes),
	}}}

	return json.Marshal(set)
}
