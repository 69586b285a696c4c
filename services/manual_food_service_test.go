package services

import (
	"net/http"
	"testing"
)

func floatp(v float64) *float64 { return &v }

func TestManualFoodCreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewManualFoodService(db, testLogger())
	user := createTestUser(t, db, "foods@example.com")

	_, err := svc.Create(user.ID, ManualFoodInput{
		Name: "Incomplete", Calories: floatp(100),
	})
	if code := appErrCode(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing macros, got %d", code)
	}

	_, err = svc.Create(user.ID, ManualFoodInput{
		Name:     "Negative",
		Calories: floatp(-1), Carbs: floatp(0), Protein: floatp(0), Fat: floatp(0),
	})
	if code := appErrCode(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative value, got %d", code)
	}

	food, err := svc.Create(user.ID, ManualFoodInput{
		Name: "Granola", Brand: "Home", Barcode: "555",
		Calories: floatp(450), Carbs: floatp(60), Protein: floatp(10), Fat: floatp(18),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if food.ID == 0 || food.UserID != user.ID {
		t.Fatalf("unexpected record: %+v", food)
	}
}

func TestManualFoodListIsScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewManualFoodService(db, testLogger())
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	if _, err := svc.Create(alice.ID, ManualFoodInput{
		Name: "Hers", Calories: floatp(1), Carbs: floatp(1), Protein: floatp(1), Fat: floatp(1),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	foods, err := svc.List(bob.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(foods) != 0 {
		t.Fatalf("expected empty list for other user, got %d", len(foods))
	}
}

func TestManualFoodUpdateAndDeleteEnforceOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewManualFoodService(db, testLogger())
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	food, err := svc.Create(alice.ID, ManualFoodInput{
		Name: "Hers", Calories: floatp(100), Carbs: floatp(10), Protein: floatp(5), Fat: floatp(2),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Update(bob.ID, food.ID, ManualFoodInput{Name: "Stolen"})
	if code := appErrCode(t, err); code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign update, got %d", code)
	}
	err = svc.Delete(bob.ID, food.ID)
	if code := appErrCode(t, err); code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign delete, got %d", code)
	}

	updated, err := svc.Update(alice.ID, food.ID, ManualFoodInput{Name: "Renamed", Calories: floatp(120)})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Name != "Renamed" || updated.Calories != 120 {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.Carbs != 10 {
		t.Fatalf("omitted field clobbered: %+v", updated)
	}

	if err := svc.Delete(alice.ID, food.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}

func TestManualFoodFindByBarcode(t *testing.T) {
	db := newTestDB(t)
	svc := NewManualFoodService(db, testLogger())
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	if _, err := svc.Create(alice.ID, ManualFoodInput{
		Name: "Cookie", Barcode: "123",
		Calories: floatp(480), Carbs: floatp(60), Protein: floatp(5), Fat: floatp(22),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	food, err := svc.FindByBarcode(alice.ID, "123")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if food == nil || food.Name != "Cookie" {
		t.Fatalf("expected owner hit, got %+v", food)
	}

	food, err = svc.FindByBarcode(bob.ID, "123")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if food != nil {
		t.Fatalf("expected nil for other user, got %+v", food)
	}
}
