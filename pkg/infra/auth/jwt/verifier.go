package jwt

import (
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/NeuralTrust/TrustMod/pkg/domain/installation"
	"github.com/NeuralTrust/TrustMod/pkg/domain/message"
	"github.com/NeuralTrust/TrustMod/pkg/domain/scope"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingKey   = errors.New("platform public key is required")
)

const (
	NotificationBotInstalled   = "bot_installed"
	NotificationBotUninstalled = "bot_uninstalled"
	NotificationBotChatEvent   = "bot_chat_event"
)

type Command struct {
	Name      string                 `json:"name"`
	Args      map[string]interface{} `json:"args,omitempty"`
	Initiator string                 `json:"initiator"`
}

// CommandClaims is the context the platform signs when a member runs one of
// the bot's commands.
type CommandClaims struct {
	BotAPIGateway      string                   `json:"bot_api_gateway"`
	Scope              scope.Scope              `json:"scope"`
	Thread             *int64                   `json:"thread,omitempty"`
	Command            Command                  `json:"command"`
	GrantedPermissions installation.Permissions `json:"granted_permissions"`
	jwt.RegisteredClaims
}

type NotificationClaims struct {
	Kind string `json:"kind"`

	// bot_installed / bot_uninstalled
	Location                     *scope.Scope             `json:"location,omitempty"`
	APIGateway                   string                   `json:"api_gateway,omitempty"`
	GrantedCommandPermissions    installation.Permissions `json:"granted_command_permissions"`
	GrantedAutonomousPermissions installation.Permissions `json:"granted_autonomous_permissions"`

	// bot_chat_event
	Chat        *scope.Scope           `json:"chat,omitempty"`
	Thread      *int64                 `json:"thread,omitempty"`
	InitiatedBy string                 `json:"initiated_by,omitempty"`
	Event       *message.TimelineEvent `json:"event,omitempty"`

	jwt.RegisteredClaims
}

//go:generate mockery --name=Verifier --dir=. --output=mocks/ --filename=verifier_mock.go --case=underscore --with-expecter
type (
	Verifier interface {
		VerifyCommand(tokenString string) (*CommandClaims, error)
		VerifyNotification(tokenString string) (*NotificationClaims, error)
	}
	verifier struct {
		key *ecdsa.PublicKey
	}
)

// NewVerifier parses the PEM encoded ECDSA key the platform signs payloads with.
func NewVerifier(publicKeyPEM string) (Verifier, error) {
	if publicKeyPEM == "" {
		return nil, ErrMissingKey
	}
	key, err := jwt.ParseECPublicKeyFromPEM([]byte(publicKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("failed to parse platform public key: %w", err)
	}
	return &verifier{key: key}, nil
}

func (v *verifier) VerifyCommand(tokenString string) (*CommandClaims, error) {
	claims := &CommandClaims{}
	if err := v.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Command.Name == "" {
		return nil, fmt.Errorf("%w: missing command name", ErrInvalidToken)
	}
	if err := claims.Scope.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

func (v *verifier) VerifyNotification(tokenString string) (*NotificationClaims, error) {
	claims := &NotificationClaims{}
	if err := v.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Kind == "" {
		return nil, fmt.Errorf("%w: missing notification kind", ErrInvalidToken)
	}
	return claims, nil
}

func (v *verifier) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			return v.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()}),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
