// Package access decides whether an actor may view a lesson's gated content.
// The decision is pure: purchasing itself (wallet debit, paidStudents update)
// happens elsewhere, this package only consumes the resulting facts.
package access

import (
	"lms_backend/internal/model"
)

type Role string

const (
	RoleGuest Role = "guest"
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Actor is the requesting party. Build one through Guest, User or Admin so
// the role is always explicit; anything else fails closed as a guest.
type Actor struct {
	Role          Role
	UserID        uint
	WalletBalance float64
}

func Guest() Actor {
	return Actor{Role: RoleGuest}
}

func User(id uint, walletBalance float64) Actor {
	return Actor{Role: RoleUser, UserID: id, WalletBalance: walletBalance}
}

func Admin(id uint) Actor {
	return Actor{Role: RoleAdmin, UserID: id}
}

// Reason codes for denied decisions.
const (
	ReasonRequiresAuth        = "requires-auth"
	ReasonPurchaseRequired    = "purchase-required"
	ReasonInsufficientBalance = "insufficient-balance"
)

// Decision is the outcome of an access check. For denied paid content the
// price and the actor's balance are carried along so the caller can render a
// purchase prompt or a top-up prompt.
type Decision struct {
	Allowed       bool    `json:"allowed"`
	Reason        string  `json:"reason,omitempty"`
	Purchased     bool    `json:"purchased,omitempty"`
	Price         float64 `json:"price,omitempty"`
	WalletBalance float64 `json:"walletBalance,omitempty"`
}

// CanAccess applies the gating rules in order, first match wins:
//
//  1. free lesson          -> allowed, any actor
//  2. admin                -> allowed
//  3. guest                -> denied, requires-auth
//  4. purchased            -> allowed
//  5. otherwise            -> denied, purchase-required when the wallet covers
//     the price, insufficient-balance when it does not
func CanAccess(lesson *model.Lesson, actor Actor) Decision {
	if lesson.Price <= 0 {
		return Decision{Allowed: true}
	}

	switch actor.Role {
	case RoleAdmin:
		return Decision{Allowed: true}
	case RoleUser:
		// fall through to the purchase checks below
	default:
		// Unknown roles are treated as guests so malformed actors never
		// unlock paid content.
		return Decision{Allowed: false, Reason: ReasonRequiresAuth, Price: lesson.Price}
	}

	for _, id := range lesson.PaidStudents {
		if id == actor.UserID {
			return Decision{Allowed: true, Purchased: true}
		}
	}

	reason := ReasonInsufficientBalance
	if actor.WalletBalance >= lesson.Price {
		reason = ReasonPurchaseRequired
	}
	return Decision{
		Allowed:       false,
		Reason:        reason,
		Price:         lesson.Price,
		WalletBalance: actor.WalletBalance,
	}
}
