package command

import (
	"context"
	"flag"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/kvarea-go/internal/area"
)

// testApp creates an app backed by an in-memory engine and tears it
// down with the test.
func testApp(t *testing.T) *cli.App {
	t.Helper()

	app := App()
	t.Cleanup(func() {
		if err := CloseApp(app); err != nil {
			t.Errorf("CloseApp() error = %v", err)
		}
	})
	return app
}

// run invokes the app the way a user would, always in-memory.
func run(t *testing.T, app *cli.App, args ...string) error {
	t.Helper()

	full := append([]string{"kvarea", "--in-memory"}, args...)
	return app.Run(full)
}

// testArea fetches the named area from the app's live manager.
func testArea(t *testing.T, app *cli.App, name string) *area.StorageArea {
	t.Helper()

	mgr, ok := app.Metadata["manager"].(*area.Manager)
	if !ok {
		t.Fatal("no manager in app metadata; run a storage command first")
	}
	a, err := mgr.Area(name)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

// testContext builds a CLI context with global flags parsed, for
// helpers that don't need a full app run.
func testContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()

	app := App()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range globalFlags() {
		f.Apply(set)
	}
	if err := set.Parse(args); err != nil {
		t.Fatal(err)
	}
	c := cli.NewContext(app, set, nil)
	c.Context = context.Background()
	return c
}
