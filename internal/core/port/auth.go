package port

import "github.com/MikeRez0/inarashop/internal/core/domain"

type TokenPayload struct {
	Username string
	Role     string
}

//go:generate mockgen -source=auth.go -destination=mock/auth.go -package=mock
type TokenService interface {
	CreateToken(admin *domain.Admin) (string, error)
	VerifyToken(token string) (*TokenPayload, error)
}
