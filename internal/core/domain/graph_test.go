package domain_test

import (
	"errors"
	"testing"

	"go.trai.ch/rulegen/internal/core/domain"
	"go.trai.ch/zerr"
)

func prebuilt(target string, deps ...string) *domain.BuildRule {
	ids := make([]domain.TargetIdentity, 0, len(deps))
	for _, d := range deps {
		ids = append(ids, domain.MustParseTarget(d))
	}
	return domain.NewBuildRule(
		domain.MustParseTarget(target),
		domain.NewDependencyClosure(ids...),
		nil,
		domain.PrebuiltPayload{BinaryJar: target + ".jar"},
	)
}

func TestRuleGraph_AddRule(t *testing.T) {
	g := domain.NewRuleGraph()
	rule := prebuilt("//lib:a")

	if err := g.AddRule(rule); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := g.AddRule(rule)
	if err == nil {
		t.Fatal("expected error when adding duplicate rule, got nil")
	}
	if !errors.Is(err, domain.ErrRuleAlreadyExists) {
		t.Errorf("expected ErrRuleAlreadyExists, got %v", err)
	}

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	if target, ok := zErr.Metadata()["target"].(string); !ok || target != "//lib:a" {
		t.Errorf("expected metadata target=//lib:a, got %v", zErr.Metadata()["target"])
	}
}

func TestRuleGraph_Validate_Cycle(t *testing.T) {
	g := domain.NewRuleGraph()

	if err := g.AddRule(prebuilt("//lib:a", "//lib:b")); err != nil {
		t.Fatalf("failed to add rule a: %v", err)
	}
	if err := g.AddRule(prebuilt("//lib:b", "//lib:a")); err != nil {
		t.Fatalf("failed to add rule b: %v", err)
	}

	err := g.Validate()
	if err == nil {
		t.Fatal("expected error for cycle, got nil")
	}
	if !errors.Is(err, domain.ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	if cycle, ok := zErr.Metadata()["cycle"].(string); !ok || cycle != "//lib:a -> //lib:b -> //lib:a" {
		t.Errorf("unexpected cycle metadata: %v", zErr.Metadata()["cycle"])
	}
}

func TestRuleGraph_Validate_MissingDependency(t *testing.T) {
	g := domain.NewRuleGraph()
	if err := g.AddRule(prebuilt("//lib:a", "//lib:ghost")); err != nil {
		t.Fatalf("failed to add rule: %v", err)
	}

	err := g.Validate()
	if !errors.Is(err, domain.ErrMissingDependency) {
		t.Fatalf("expected ErrMissingDependency, got %v", err)
	}

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	if dep := zErr.Metadata()["dependency"]; dep != "//lib:ghost" {
		t.Errorf("expected dependency metadata //lib:ghost, got %v", dep)
	}
}

func TestRuleGraph_Walk(t *testing.T) {
	g := domain.NewRuleGraph()
	// a -> b -> c, d is disconnected
	// Walk order: c, b, a, d
	for _, r := range []*domain.BuildRule{
		prebuilt("//lib:d"),
		prebuilt("//lib:a", "//lib:b"),
		prebuilt("//lib:c"),
		prebuilt("//lib:b", "//lib:c"),
	} {
		if err := g.AddRule(r); err != nil {
			t.Fatalf("failed to add rule: %v", err)
		}
	}

	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	walked := make([]string, 0, g.Len())
	for rule := range g.Walk() {
		walked = append(walked, rule.Target().ShortName())
	}

	want := []string{"c", "b", "a", "d"}
	if len(walked) != len(want) {
		t.Fatalf("expected %d rules walked, got %d", len(want), len(walked))
	}
	for i := range want {
		if walked[i] != want[i] {
			t.Fatalf("unexpected walk order: %v", walked)
		}
	}
}
