package recorder

import "testing"

type Battery struct {
	Charge int
}

func TestComponentRegistrationAndUpdate(t *testing.T) {
	r := New()
	reg := NewComponentRegistry(r)
	key := ComponentKey{"pkg", "Battery"}

	if err := RegisterComponent[Battery](reg, key, map[string]FieldType{"Charge": "int"}); err != nil {
		t.Fatalf("RegisterComponent: %v", err)
	}
	if err := RegisterComponent[Battery](reg, key, map[string]FieldType{"Charge": "int"}); err == nil {
		t.Fatal("expected duplicate schema registration to fail")
	}

	tracked, err := CreateComponent[Battery](reg, key, "drone-1-battery")
	if err != nil {
		t.Fatalf("CreateComponent: %v", err)
	}
	if err := tracked.Set("Charge", 80); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if tracked.Value().Charge != 80 {
		t.Errorf("got %d, want 80", tracked.Value().Charge)
	}

	if _, err := CreateComponent[Battery](reg, key, "drone-1-battery"); err == nil {
		t.Fatal("expected duplicate instance creation to fail")
	}
}

// TestComponentReplayerReconstructsInstance exercises the ComponentReplayer
// path: a registry whose schema was established by the normal generic
// RegisterComponent[T] call (which records Battery's reflect.Type), then
// driven the way Replayer would — by key and name alone, with no type
// parameter available.
func TestComponentReplayerReconstructsInstance(t *testing.T) {
	reg := NewComponentRegistry(New())
	key := ComponentKey{"pkg", "Battery"}
	if err := RegisterComponent[Battery](reg, key, map[string]FieldType{"Charge": "int"}); err != nil {
		t.Fatal(err)
	}

	if err := reg.CreateComponentInstance(key, "drone-1-battery"); err != nil {
		t.Fatalf("CreateComponentInstance: %v", err)
	}
	if err := reg.UpdateComponentField("drone-1-battery", "Charge", 42); err != nil {
		t.Fatalf("UpdateComponentField: %v", err)
	}
}
