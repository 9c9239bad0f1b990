package command

import (
	"context"
	"reflect"
	"testing"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		arg  string
		want any
	}{
		{"42", float64(42)},
		{"1.5", float64(1.5)},
		{"true", true},
		{"false", false},
		{"null", nil},
		{"hello", "hello"},
		{`"quoted"`, "quoted"},
		{`{"a":1}`, map[string]any{"a": float64(1)}},
		{`[1,"two"]`, []any{float64(1), "two"}},
		{"not json {", "not json {"},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got := parseValue(tt.arg)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseValue(%q) = %#v, want %#v", tt.arg, got, tt.want)
			}
		})
	}
}

func TestParseKey(t *testing.T) {
	c := testContext(t)
	key, err := parseKey(c, "plain")
	if err != nil {
		t.Fatal(err)
	}
	if key != "plain" {
		t.Errorf("parseKey = %v, want %q", key, "plain")
	}
}

func TestSetGetDelete(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	if err := run(t, app, "set", "greeting", "hello"); err != nil {
		t.Fatalf("set error = %v", err)
	}

	a := testArea(t, app, "default")
	got, err := a.Get(ctx, "greeting")
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Errorf("stored value = %v, want %q", got, "hello")
	}

	if err := run(t, app, "get", "greeting"); err != nil {
		t.Errorf("get error = %v", err)
	}

	if err := run(t, app, "delete", "greeting"); err != nil {
		t.Fatalf("delete error = %v", err)
	}
	got, err = a.Get(ctx, "greeting")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("value after delete = %v, want nil", got)
	}
}

func TestSet_NumericValue(t *testing.T) {
	app := testApp(t)

	if err := run(t, app, "set", "count", "3"); err != nil {
		t.Fatalf("set error = %v", err)
	}

	a := testArea(t, app, "default")
	got, err := a.Get(context.Background(), "count")
	if err != nil {
		t.Fatal(err)
	}
	if got != float64(3) {
		t.Errorf("stored value = %#v, want 3", got)
	}
}

func TestSet_RawValue(t *testing.T) {
	app := testApp(t)

	if err := run(t, app, "set", "--raw", "count", "3"); err != nil {
		t.Fatalf("set error = %v", err)
	}

	a := testArea(t, app, "default")
	got, err := a.Get(context.Background(), "count")
	if err != nil {
		t.Fatal(err)
	}
	if got != "3" {
		t.Errorf("stored value = %#v, want the string \"3\"", got)
	}
}

func TestGet_Missing(t *testing.T) {
	app := testApp(t)

	if err := run(t, app, "get", "nope"); err == nil {
		t.Error("get on a missing key should error")
	}
}

func TestGet_JSONKey(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	if err := run(t, app, "set", "--json-key", `["user", 7]`, "ada"); err != nil {
		t.Fatalf("set error = %v", err)
	}

	a := testArea(t, app, "default")
	got, err := a.Get(ctx, []any{"user", float64(7)})
	if err != nil {
		t.Fatal(err)
	}
	if got != "ada" {
		t.Errorf("stored value = %v, want %q", got, "ada")
	}

	if err := run(t, app, "get", "--json-key", `["user", 7]`); err != nil {
		t.Errorf("get with JSON key error = %v", err)
	}
}

func TestSet_WrongArgs(t *testing.T) {
	app := testApp(t)

	if err := run(t, app, "set", "only-key"); err == nil {
		t.Error("set without VALUE should error")
	}
	if err := run(t, app, "get"); err == nil {
		t.Error("get without KEY should error")
	}
}

func TestAreaFlag(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	if err := run(t, app, "--area", "sessions", "set", "k", "sessions-value"); err != nil {
		t.Fatalf("set error = %v", err)
	}
	if err := run(t, app, "--area", "users", "set", "k", "users-value"); err != nil {
		t.Fatalf("set error = %v", err)
	}

	sessions := testArea(t, app, "sessions")
	got, err := sessions.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if got != "sessions-value" {
		t.Errorf("sessions value = %v, want %q", got, "sessions-value")
	}

	users := testArea(t, app, "users")
	got, err = users.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if got != "users-value" {
		t.Errorf("users value = %v, want %q", got, "users-value")
	}
}

func TestClear_Force(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	if err := run(t, app, "set", "k", "v"); err != nil {
		t.Fatal(err)
	}
	if err := run(t, app, "clear", "--force"); err != nil {
		t.Fatalf("clear error = %v", err)
	}

	a := testArea(t, app, "default")
	got, err := a.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("value after clear = %v, want nil", got)
	}
}
