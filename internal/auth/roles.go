package auth

import (
	"strings"

	"whatyaneed_backend/internal/models"
)

// RoleSet - закрытый набор ролей, которым разрешен доступ к маршруту
type RoleSet uint8

const (
	roleRequester RoleSet = 1 << iota
	roleVolunteer
	roleAdmin
)

var (
	Requesters = roleRequester
	Volunteers = roleVolunteer
	Admins     = roleAdmin
)

func roleBit(role models.UserRole) RoleSet {
	switch role {
	case models.UserRoleRequester:
		return roleRequester
	case models.UserRoleVolunteer:
		return roleVolunteer
	case models.UserRoleAdmin:
		return roleAdmin
	default:
		return 0
	}
}

// NewRoleSet собирает набор из ролей; неизвестные роли игнорируются
func NewRoleSet(roles ...models.UserRole) RoleSet {
	var s RoleSet
	for _, r := range roles {
		s |= roleBit(r)
	}
	return s
}

// Contains - роль входит в набор. Неизвестная роль не входит никогда.
func (s RoleSet) Contains(role models.UserRole) bool {
	bit := roleBit(role)
	return bit != 0 && s&bit != 0
}

// Roles возвращает роли набора в фиксированном порядке
func (s RoleSet) Roles() []models.UserRole {
	var out []models.UserRole
	for _, r := range []models.UserRole{models.UserRoleRequester, models.UserRoleVolunteer, models.UserRoleAdmin} {
		if s.Contains(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s RoleSet) String() string {
	roles := s.Roles()
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ",")
}
