// Package accesskey issues and verifies the session tokens players carry
// between reconnects. The engine itself only consumes the narrow
// lookup/create/expiry surface; everything else about authentication lives
// outside this module.
package accesskey

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/louisbranch/highnoon.cards/internal/platform/config"
	apperrors "github.com/louisbranch/highnoon.cards/internal/platform/errors"
	"github.com/louisbranch/highnoon.cards/internal/platform/id"
)

// DefaultTTL is how long an issued key stays valid.
const DefaultTTL = 24 * time.Hour

// keysEnv holds raw env values before post-parse validation.
type keysEnv struct {
	Issuer string `env:"HIGHNOON_ACCESS_KEY_ISSUER" envDefault:"highnoon.cards"`
	Secret string `env:"HIGHNOON_ACCESS_KEY_SECRET"`
}

// Config defines how access keys are signed and verified.
type Config struct {
	Issuer string
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

// Params is the identity an issued key carries.
type Params struct {
	// LastName is the player name the key was issued for.
	LastName string
	// LastCode is the session the key was last seated in.
	LastCode string
}

// Grant is the identity read back from a verified key.
type Grant struct {
	LastName  string
	LastCode  string
	ExpiresAt time.Time
}

// claims is the internal claims type used for JWT parsing.
type claims struct {
	jwt.RegisteredClaims
	LastName string `json:"last_name"`
	LastCode string `json:"last_code"`
}

// LoadConfigFromEnv reads access key configuration. The secret is base64.
func LoadConfigFromEnv(now func() time.Time) (Config, error) {
	var raw keysEnv
	if err := config.ParseEnv(&raw); err != nil {
		return Config{}, err
	}
	secret := strings.TrimSpace(raw.Secret)
	if secret == "" {
		return Config{}, fmt.Errorf("HIGHNOON_ACCESS_KEY_SECRET is required")
	}
	secretBytes, err := decodeBase64(secret)
	if err != nil {
		return Config{}, fmt.Errorf("decode access key secret: %w", err)
	}
	if now == nil {
		now = time.Now
	}
	return Config{
		Issuer: strings.TrimSpace(raw.Issuer),
		Secret: secretBytes,
		TTL:    DefaultTTL,
		Now:    now,
	}, nil
}

// Keys issues and verifies access keys with one shared HMAC secret.
type Keys struct {
	cfg Config
}

// New builds a key service from configuration.
func New(cfg Config) (*Keys, error) {
	if len(cfg.Secret) == 0 {
		return nil, fmt.Errorf("access key secret is required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &Keys{cfg: cfg}, nil
}

// Issue signs a key for the given identity.
func (k *Keys) Issue(params Params) (string, error) {
	lastName := strings.TrimSpace(params.LastName)
	if lastName == "" {
		return "", apperrors.New(apperrors.CodeAccessKeyInvalid,
			"a key needs a player name")
	}
	jti, err := id.NewID()
	if err != nil {
		return "", fmt.Errorf("generate key id: %w", err)
	}
	now := k.cfg.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    k.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(k.cfg.TTL)),
		},
		LastName: lastName,
		LastCode: strings.TrimSpace(params.LastCode),
	})
	signed, err := token.SignedString(k.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("sign access key: %w", err)
	}
	return signed, nil
}

// Lookup verifies a key and returns the identity it carries.
func (k *Keys) Lookup(token string) (Grant, error) {
	parsed, err := k.parse(token)
	if err != nil {
		return Grant{}, err
	}
	now := k.cfg.Now().UTC()
	if parsed.ExpiresAt == nil {
		return Grant{}, apperrors.New(apperrors.CodeAccessKeyInvalid,
			"access key exp is required")
	}
	exp := parsed.ExpiresAt.Time.UTC()
	if !exp.After(now) {
		return Grant{}, apperrors.New(apperrors.CodeAccessKeyExpired,
			"access key is expired")
	}
	if strings.TrimSpace(parsed.LastName) == "" {
		return Grant{}, apperrors.New(apperrors.CodeAccessKeyInvalid,
			"access key carries no player name")
	}
	return Grant{
		LastName:  parsed.LastName,
		LastCode:  parsed.LastCode,
		ExpiresAt: exp,
	}, nil
}

// IsExpired reports whether a key has lapsed. A key that does not verify at
// all also counts as expired; the caller only needs a yes or no.
func (k *Keys) IsExpired(token string) bool {
	_, err := k.Lookup(token)
	return err != nil
}

func (k *Keys) parse(token string) (claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return claims{}, apperrors.New(apperrors.CodeAccessKeyInvalid,
			"access key is required")
	}
	var parsed claims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return k.cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return claims{}, mapJWTError(err)
	}
	if issuer := k.cfg.Issuer; issuer != "" && parsed.Issuer != issuer {
		return claims{}, apperrors.WithMetadata(apperrors.CodeAccessKeyInvalid,
			"access key issuer mismatch", map[string]string{"Field": "issuer"})
	}
	return parsed, nil
}

// mapJWTError translates jwt library errors to application errors.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		return apperrors.New(apperrors.CodeAccessKeyInvalid,
			"access key signature is invalid")
	}
	if errors.Is(err, jwt.ErrTokenUnverifiable) {
		return apperrors.New(apperrors.CodeAccessKeyInvalid,
			"access key alg is invalid")
	}
	return apperrors.New(apperrors.CodeAccessKeyInvalid, "access key is invalid")
}

func decodeBase64(value string) ([]byte, error) {
	if value == "" {
		return nil, errors.New("empty base64 value")
	}
	decoded, err := base64.RawStdEncoding.DecodeString(value)
	if err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(value)
}
