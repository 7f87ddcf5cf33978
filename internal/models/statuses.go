package models

type UserRole string
type RequestStatus string
type UrgencyLevel string
type OfferStatus string

const (
	UserRoleRequester UserRole = "requester"
	UserRoleVolunteer UserRole = "volunteer"
	UserRoleAdmin     UserRole = "admin"

	RequestStatusOpen   RequestStatus = "open"
	RequestStatusClosed RequestStatus = "closed"

	UrgencyLow    UrgencyLevel = "low"
	UrgencyMedium UrgencyLevel = "medium"
	UrgencyHigh   UrgencyLevel = "high"

	OfferStatusPending  OfferStatus = "pending"
	OfferStatusAccepted OfferStatus = "accepted"
	OfferStatusDeclined OfferStatus = "declined"
)

// IsValid - роль из закрытого набора
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleRequester, UserRoleVolunteer, UserRoleAdmin:
		return true
	}
	return false
}

// IsCreatable - роль, которую можно выбрать при регистрации
func (r UserRole) IsCreatable() bool {
	return r == UserRoleRequester || r == UserRoleVolunteer
}

// Opposite - роль после переключения requester <-> volunteer.
// Для admin возвращает саму себя.
func (r UserRole) Opposite() UserRole {
	switch r {
	case UserRoleRequester:
		return UserRoleVolunteer
	case UserRoleVolunteer:
		return UserRoleRequester
	}
	return r
}

func (u UrgencyLevel) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

func (s RequestStatus) IsValid() bool {
	return s == RequestStatusOpen || s == RequestStatusClosed
}

func (s OfferStatus) IsValid() bool {
	switch s {
	case OfferStatusPending, OfferStatusAccepted, OfferStatusDeclined:
		return true
	}
	return false
}
