package middleware

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/subtle"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apierrors "github.com/inorbyt/chain-sync/internal/api/shared/errors"
	"github.com/inorbyt/chain-sync/internal/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	AUTH_TYPE_KEY    contextKey = "auth_type"
	AUTH_SUBJECT_KEY contextKey = "auth_subject"
	JWT_CLAIMS_KEY   contextKey = "jwt_claims"
)

const (
	AUTH_TYPE_JWT    = "jwt"
	AUTH_TYPE_APIKEY = "apikey"
)

// apiKeySubjectPrefixLen is how much of an API key its subject exposes
const apiKeySubjectPrefixLen = 8

var (
	errMissingHeader    = errors.New("missing Authorization header")
	errMalformedHeader  = errors.New("invalid Authorization header format")
	errJWTNotConfigured = errors.New("JWT public key not configured")
	errNoAPIKeys        = errors.New("no API keys configured")
	errInvalidAPIKey    = errors.New("invalid API key")
)

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string // RSA public key in PEM format
	APIKeys      []string
}

// AuthResult holds the result of authentication
type AuthResult struct {
	Success     bool
	AuthType    string // AUTH_TYPE_JWT or AUTH_TYPE_APIKEY
	Claims      *jwt.RegisteredClaims
	AuthSubject string
	Error       error
}

// authenticator holds the parsed credentials so requests never re-parse the PEM key
type authenticator struct {
	publicKey    *rsa.PublicKey
	publicKeyErr error
	// sha256 digests of the configured keys, compared in constant time
	apiKeys [][sha256.Size]byte
	parser  *jwt.Parser
}

func newAuthenticator(cfg AuthConfig) *authenticator {
	a := &authenticator{
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}),
			jwt.WithIssuedAt(),
		),
	}

	if cfg.JWTPublicKey == "" {
		a.publicKeyErr = errJWTNotConfigured
	} else if key, err := parseRSAPublicKey(cfg.JWTPublicKey); err != nil {
		a.publicKeyErr = fmt.Errorf("failed to parse RSA public key: %w", err)
	} else {
		a.publicKey = key
	}

	for _, key := range cfg.APIKeys {
		if key = strings.TrimSpace(key); key != "" {
			a.apiKeys = append(a.apiKeys, sha256.Sum256([]byte(key)))
		}
	}

	return a
}

// Authenticate validates an Authorization header against cfg.
// An API key authenticates as the subject "apikey:<first 8 chars>" so that rate
// limiting can tell keys apart without logging them.
func Authenticate(authHeader string, cfg AuthConfig) AuthResult {
	return newAuthenticator(cfg).authenticate(authHeader)
}

func (a *authenticator) authenticate(authHeader string) AuthResult {
	if authHeader == "" {
		return AuthResult{Error: errMissingHeader}
	}

	scheme, credentials, ok := strings.Cut(strings.TrimSpace(authHeader), " ")
	credentials = strings.TrimSpace(credentials)
	if !ok || credentials == "" {
		return AuthResult{Error: errMalformedHeader}
	}

	switch strings.ToLower(scheme) {
	case "bearer":
		claims, err := a.validateJWT(credentials)
		if err != nil {
			return AuthResult{Error: err}
		}
		return AuthResult{
			Success:     true,
			AuthType:    AUTH_TYPE_JWT,
			Claims:      claims,
			AuthSubject: claims.Subject,
		}

	case AUTH_TYPE_APIKEY:
		if err := a.validateAPIKey(credentials); err != nil {
			return AuthResult{Error: err}
		}
		return AuthResult{
			Success:     true,
			AuthType:    AUTH_TYPE_APIKEY,
			AuthSubject: apiKeySubject(credentials),
		}

	default:
		return AuthResult{Error: fmt.Errorf("unsupported authorization type: %s", scheme)}
	}
}

// Auth rejects requests without valid credentials. Both JWT (Bearer) and API key
// (ApiKey) schemes are accepted.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	a := newAuthenticator(cfg)
	return func(c *gin.Context) {
		result := a.authenticate(c.GetHeader("Authorization"))
		if !result.Success {
			abortUnauthorized(c, result.Error)
			return
		}

		setAuthResult(c, result)
		c.Next()
	}
}

// OptionalAuth lets anonymous requests through but still rejects a header that
// is present and invalid. Authenticated requests get their subject set.
func OptionalAuth(cfg AuthConfig) gin.HandlerFunc {
	a := newAuthenticator(cfg)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		result := a.authenticate(header)
		if !result.Success {
			abortUnauthorized(c, result.Error)
			return
		}

		setAuthResult(c, result)
		c.Next()
	}
}

// AuthSubject returns the authenticated subject of the request, empty when anonymous
func AuthSubject(c *gin.Context) string {
	return c.GetString(string(AUTH_SUBJECT_KEY))
}

func abortUnauthorized(c *gin.Context, err error) {
	logger.WarnCtx(c.Request.Context(), "Authentication failed",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("client_ip", c.ClientIP()),
	)
	apiErr := apierrors.NewUnauthorizedError("Authentication failed", err.Error())
	c.AbortWithStatusJSON(http.StatusUnauthorized, apiErr)
}

func setAuthResult(c *gin.Context, result AuthResult) {
	c.Set(string(AUTH_TYPE_KEY), result.AuthType)
	if result.Claims != nil {
		c.Set(string(JWT_CLAIMS_KEY), result.Claims)
	}
	if result.AuthSubject != "" {
		c.Set(string(AUTH_SUBJECT_KEY), result.AuthSubject)
	}

	logger.DebugCtx(c.Request.Context(), "Request authenticated",
		zap.String("auth_type", result.AuthType),
		zap.String("subject", result.AuthSubject),
		zap.String("path", c.Request.URL.Path),
	)
}

func apiKeySubject(apiKey string) string {
	if len(apiKey) > apiKeySubjectPrefixLen {
		apiKey = apiKey[:apiKeySubjectPrefixLen]
	}
	return AUTH_TYPE_APIKEY + ":" + apiKey
}

// validateJWT verifies the RSA signature and the time based claims
func (a *authenticator) validateJWT(tokenString string) (*jwt.RegisteredClaims, error) {
	if a.publicKeyErr != nil {
		return nil, a.publicKeyErr
	}

	claims := &jwt.RegisteredClaims{}
	_, err := a.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return a.publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	return claims, nil
}

func (a *authenticator) validateAPIKey(apiKey string) error {
	if len(a.apiKeys) == 0 {
		return errNoAPIKeys
	}

	digest := sha256.Sum256([]byte(apiKey))
	matched := 0
	for _, key := range a.apiKeys {
		matched |= subtle.ConstantTimeCompare(digest[:], key[:])
	}
	if matched != 1 {
		return errInvalidAPIKey
	}

	return nil
}

// parseRSAPublicKey parses an RSA public key in PKIX or PKCS1 PEM form
func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing public key")
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}

	return rsaKey, nil
}
