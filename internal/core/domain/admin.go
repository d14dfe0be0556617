package domain

const RoleAdmin = "admin"

type Admin struct {
	Username     string
	PasswordHash string
}
