// Package token issues and verifies signed access tokens for the contracts
// admin surface.
package token

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// SecretEnvironmentVariable names the environment variable holding the shared signing secret.
	SecretEnvironmentVariable = "JWT_SECRET"

	// DefaultIssuer identifies tokens issued by this tool.
	DefaultIssuer = "leaperfx-contracts"
	// DefaultAudience names the consumer tokens are issued for.
	DefaultAudience = "leaperfx-admin"
	// DefaultTimeToLive bounds how long an issued token stays valid.
	DefaultTimeToLive = 15 * time.Minute

	// missingSecretMessage reports an unset signing secret.
	missingSecretMessage = "signing secret is not set; export " + SecretEnvironmentVariable
	// missingSubjectMessage reports an issue request without a subject.
	missingSubjectMessage = "token subject must not be empty"
	// missingIssuedAtMessage reports a token without the required iat claim.
	missingIssuedAtMessage = "token is missing the required iat claim"
	// missingNotBeforeMessage reports a token without the required nbf claim.
	missingNotBeforeMessage = "token is missing the required nbf claim"
)

// IssueOptions describes the claims of a token to issue. Empty fields fall
// back to the package defaults; TimeToLive may be negative to mint an already
// expired token.
type IssueOptions struct {
	Subject    string
	Issuer     string
	Audience   string
	TimeToLive time.Duration
}

// VerifyOptions describes the issuer and audience a verified token must carry.
// Empty fields fall back to the package defaults.
type VerifyOptions struct {
	Issuer   string
	Audience string
}

// Issue creates a compact HS256-signed token for the subject carrying
// issued-at, not-before, and expiry claims. The signing secret is read from
// the environment and never persisted.
func Issue(options IssueOptions) (string, error) {
	if strings.TrimSpace(options.Subject) == "" {
		return "", errors.New(missingSubjectMessage)
	}
	secret, secretError := signingSecret()
	if secretError != nil {
		return "", secretError
	}

	issuer := options.Issuer
	if issuer == "" {
		issuer = DefaultIssuer
	}
	audience := options.Audience
	if audience == "" {
		audience = DefaultAudience
	}
	timeToLive := options.TimeToLive
	if timeToLive == 0 {
		timeToLive = DefaultTimeToLive
	}

	issuedAt := time.Now().UTC()
	registeredClaims := jwt.RegisteredClaims{
		Subject:   options.Subject,
		Issuer:    issuer,
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		NotBefore: jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(timeToLive)),
	}
	signedToken, signError := jwt.NewWithClaims(jwt.SigningMethodHS256, registeredClaims).SignedString(secret)
	if signError != nil {
		return "", fmt.Errorf("sign token: %w", signError)
	}
	return signedToken, nil
}

// Verify checks the signature and registered claims of a compact token and
// returns the embedded claims. The accepted algorithm list is pinned to HS256
// and the exp, iat, and nbf claims are all required.
func Verify(compactToken string, options VerifyOptions) (*jwt.RegisteredClaims, error) {
	secret, secretError := signingSecret()
	if secretError != nil {
		return nil, secretError
	}

	issuer := options.Issuer
	if issuer == "" {
		issuer = DefaultIssuer
	}
	audience := options.Audience
	if audience == "" {
		audience = DefaultAudience
	}

	registeredClaims := &jwt.RegisteredClaims{}
	parsedToken, parseError := jwt.ParseWithClaims(
		compactToken,
		registeredClaims,
		func(*jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if parseError != nil {
		return nil, fmt.Errorf("verify token: %w", parseError)
	}
	if !parsedToken.Valid {
		return nil, errors.New("token is not valid")
	}
	if registeredClaims.IssuedAt == nil {
		return nil, errors.New(missingIssuedAtMessage)
	}
	if registeredClaims.NotBefore == nil {
		return nil, errors.New(missingNotBeforeMessage)
	}
	return registeredClaims, nil
}

// signingSecret reads the shared secret from the environment.
func signingSecret() ([]byte, error) {
	secretValue := os.Getenv(SecretEnvironmentVariable)
	if secretValue == "" {
		return nil, errors.New(missingSecretMessage)
	}
	return []byte(secretValue), nil
}
