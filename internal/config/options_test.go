package config

import "testing"

func TestValidateTargetAcceptsEmpty(t *testing.T) {
	if err := (Options{}).ValidateTarget(); err != nil {
		t.Fatalf("expected no error for an empty target, got %v", err)
	}
}

func TestValidateTargetAcceptsWellFormedConstraint(t *testing.T) {
	o := Options{Target: ">=1.0.0 <2.0.0"}
	if err := o.ValidateTarget(); err != nil {
		t.Fatalf("expected a well-formed constraint to validate, got %v", err)
	}
}

func TestValidateTargetRejectsMalformedConstraint(t *testing.T) {
	o := Options{Target: "not-a-constraint"}
	if err := o.ValidateTarget(); err == nil {
		t.Fatal("expected a malformed target constraint to be rejected")
	}
}
