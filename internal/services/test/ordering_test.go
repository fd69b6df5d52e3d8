package services_test

import (
	"errors"
	"testing"

	"github.com/vidora/vidora-services-platform/internal/services"
)

func TestPlanRepositionMoveDown(t *testing.T) {
	plan, ok := services.PlanReposition(1, 3)
	if !ok {
		t.Fatal("expected a plan")
	}
	if plan.Lo != 2 || plan.Hi != 3 || plan.Delta != -1 {
		t.Fatalf("unexpected plan: %+v", plan)
	}
}

func TestPlanRepositionMoveUp(t *testing.T) {
	plan, ok := services.PlanReposition(4, 0)
	if !ok {
		t.Fatal("expected a plan")
	}
	if plan.Lo != 0 || plan.Hi != 3 || plan.Delta != 1 {
		t.Fatalf("unexpected plan: %+v", plan)
	}
}

func TestPlanRepositionSamePosition(t *testing.T) {
	if _, ok := services.PlanReposition(2, 2); ok {
		t.Fatal("expected no plan for identical positions")
	}
}

func TestPlanRemovalShiftsTail(t *testing.T) {
	plan := services.PlanRemoval(1, 4)
	if plan.Lo != 2 || plan.Hi != 3 || plan.Delta != -1 {
		t.Fatalf("unexpected plan: %+v", plan)
	}
}

func TestPlanRemovalLastEntry(t *testing.T) {
	plan := services.PlanRemoval(3, 4)
	if plan.Lo <= plan.Hi {
		t.Fatalf("expected empty shift range for tail removal, got %+v", plan)
	}
}

func TestValidateTarget(t *testing.T) {
	if err := services.ValidateTarget(0, 2, 3); err != nil {
		t.Fatalf("expected valid target, got %v", err)
	}
	if err := services.ValidateTarget(0, 3, 3); !errors.Is(err, services.ErrPositionNotFound) {
		t.Fatalf("expected ErrPositionNotFound, got %v", err)
	}
	if err := services.ValidateTarget(0, -1, 3); !errors.Is(err, services.ErrPositionNotFound) {
		t.Fatalf("expected ErrPositionNotFound for negative target, got %v", err)
	}
	if err := services.ValidateTarget(1, 1, 3); !errors.Is(err, services.ErrSamePosition) {
		t.Fatalf("expected ErrSamePosition, got %v", err)
	}
}
