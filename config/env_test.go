package config

import (
	"strings"
	"testing"
)

func TestLoadOptionsDefaults(t *testing.T) {
	opts, err := LoadOptions()
	if err != nil {
		t.Fatalf("load options: %v", err)
	}
	if opts.PrefabDir != "prefabs" || opts.Character != "character.yaml" || opts.GroundProbe != ProbeCP {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
	if opts.Watch || opts.Debug || opts.Ticks != 0 {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
}

func TestLoadOptionsOverrides(t *testing.T) {
	t.Setenv("CHARCORE_PREFAB_DIR", "/tmp/prefabs")
	t.Setenv("CHARCORE_GROUND_PROBE", " Resolv ")
	t.Setenv("CHARCORE_WATCH", "true")
	t.Setenv("CHARCORE_TICKS", "600")

	opts, err := LoadOptions()
	if err != nil {
		t.Fatalf("load options: %v", err)
	}
	if opts.PrefabDir != "/tmp/prefabs" || opts.GroundProbe != ProbeResolv || !opts.Watch || opts.Ticks != 600 {
		t.Fatalf("overrides not applied: %+v", opts)
	}
}

func TestLoadOptionsErrors(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"bad_int", "CHARCORE_TICKS", "many", "parse env:"},
		{"negative_ticks", "CHARCORE_TICKS", "-1", "CHARCORE_TICKS"},
		{"bad_probe", "CHARCORE_GROUND_PROBE", "raycast", "CHARCORE_GROUND_PROBE"},
		{"bad_bool", "CHARCORE_WATCH", "sometimes", "parse env:"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv(c.key, c.val)
			_, err := LoadOptions()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Fatalf("expected %q in error, got %v", c.want, err)
			}
		})
	}
}
