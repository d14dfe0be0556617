package auth

import (
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/MikeRez0/inarashop/internal/adapter/config"
	"github.com/MikeRez0/inarashop/internal/core/domain"
	"github.com/MikeRez0/inarashop/internal/core/port"
)

const payloadKey = "payload"

type PasetoToken struct {
	parser   *paseto.Parser
	key      *paseto.V4SymmetricKey
	duration time.Duration
}

// New builds the admin token service. An empty key gives a random one, so
// tokens do not survive a restart.
func New(conf *config.Admin) (port.TokenService, error) {
	parser := paseto.NewParser()

	var key paseto.V4SymmetricKey
	if conf.TokenKey == "" {
		key = paseto.NewV4SymmetricKey()
	} else {
		var err error
		key, err = paseto.V4SymmetricKeyFromHex(conf.TokenKey)
		if err != nil {
			return nil, fmt.Errorf("invalid admin token key: %w", err)
		}
	}

	s := PasetoToken{
		parser:   &parser,
		key:      &key,
		duration: conf.TokenTTL,
	}

	return &s, nil
}

func (p *PasetoToken) CreateToken(admin *domain.Admin) (string, error) {
	token := paseto.NewToken()
	now := time.Now()
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(p.duration))

	payload := port.TokenPayload{Username: admin.Username, Role: domain.RoleAdmin}
	err := token.Set(payloadKey, payload)
	if err != nil {
		return "", domain.ErrTokenCreation
	}

	return token.V4Encrypt(*p.key, nil), nil
}

func (p *PasetoToken) VerifyToken(token string) (*port.TokenPayload, error) {
	parsedToken, err := p.parser.ParseV4Local(*p.key, token, nil)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	payload := port.TokenPayload{}
	err = parsedToken.Get(payloadKey, &payload)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return &payload, nil
}
