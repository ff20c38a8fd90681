package access

import (
	"testing"

	"lms_backend/internal/model"
)

func TestCanAccess_DecisionTable(t *testing.T) {
	free := &model.Lesson{ID: "l0", Title: "Free"}
	paid := &model.Lesson{ID: "l1", Title: "Paid", Price: 10}
	owned := &model.Lesson{ID: "l2", Title: "Owned", Price: 10, PaidStudents: []uint{7}}

	cases := []struct {
		name    string
		lesson  *model.Lesson
		actor   Actor
		allowed bool
		reason  string
	}{
		{"free lesson, guest", free, Guest(), true, ""},
		{"free lesson, user", free, User(7, 0), true, ""},
		{"paid lesson, admin", paid, Admin(1), true, ""},
		{"paid lesson, guest", paid, Guest(), false, ReasonRequiresAuth},
		{"paid lesson, broke user", paid, User(7, 5), false, ReasonInsufficientBalance},
		{"paid lesson, solvent user", paid, User(7, 50), false, ReasonPurchaseRequired},
		{"paid lesson, purchaser", owned, User(7, 0), true, ""},
		{"paid lesson, other user", owned, User(8, 50), false, ReasonPurchaseRequired},
	}

	for _, tc := range cases {
		d := CanAccess(tc.lesson, tc.actor)
		if d.Allowed != tc.allowed {
			t.Fatalf("%s: allowed=%v want %v", tc.name, d.Allowed, tc.allowed)
		}
		if d.Reason != tc.reason {
			t.Fatalf("%s: reason=%q want %q", tc.name, d.Reason, tc.reason)
		}
	}
}

func TestCanAccess_PurchasedFlag(t *testing.T) {
	lesson := &model.Lesson{ID: "l", Title: "L", Price: 10, PaidStudents: []uint{3}}
	d := CanAccess(lesson, User(3, 0))
	if !d.Allowed || !d.Purchased {
		t.Fatalf("expected purchased access, got %+v", d)
	}
}

func TestCanAccess_DeniedCarriesPriceAndBalance(t *testing.T) {
	lesson := &model.Lesson{ID: "l", Title: "L", Price: 10}
	d := CanAccess(lesson, User(3, 4))
	if d.Price != 10 || d.WalletBalance != 4 {
		t.Fatalf("denial should carry price and balance, got %+v", d)
	}
}

func TestCanAccess_MalformedRoleFailsClosed(t *testing.T) {
	lesson := &model.Lesson{ID: "l", Title: "L", Price: 10, PaidStudents: []uint{3}}
	d := CanAccess(lesson, Actor{Role: "moderator", UserID: 3})
	if d.Allowed {
		t.Fatalf("unknown role must not unlock paid content")
	}
	if d.Reason != ReasonRequiresAuth {
		t.Fatalf("unknown role should deny as guest, got %q", d.Reason)
	}
}

func TestCanAccess_ZeroAndNegativePriceIsFree(t *testing.T) {
	for _, price := range []float64{0, -1} {
		lesson := &model.Lesson{ID: "l", Title: "L", Price: price}
		if d := CanAccess(lesson, Guest()); !d.Allowed {
			t.Fatalf("price %v should be free, got %+v", price, d)
		}
	}
}
