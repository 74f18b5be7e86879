package config

import (
	"os"
	"path/filepath"
	"testing"
)

// ---------- Loading ----------

func TestLoad_EmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	if cfg.Blob.ParticleCount != 400 {
		t.Errorf("expected 400 particles, got %d", cfg.Blob.ParticleCount)
	}
	if cfg.Blob.Radius != 1.0 {
		t.Errorf("expected radius 1.0, got %f", cfg.Blob.Radius)
	}
	if cfg.Screen.Width != 1280 || cfg.Screen.Height != 720 {
		t.Errorf("unexpected screen size %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Telemetry.StatsWindow != 5.0 {
		t.Errorf("expected 5s stats window, got %f", cfg.Telemetry.StatsWindow)
	}
	if cfg.Derived.ScreenW32 != 1280 || cfg.Derived.ScreenH32 != 720 {
		t.Errorf("derived screen floats not computed: %f x %f",
			cfg.Derived.ScreenW32, cfg.Derived.ScreenH32)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	overlay := []byte("blob:\n  particle_count: 64\n  cohesion: 0.2\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading overlay: %v", err)
	}

	if cfg.Blob.ParticleCount != 64 {
		t.Errorf("override not applied, particle count %d", cfg.Blob.ParticleCount)
	}
	if cfg.Blob.Cohesion != 0.2 {
		t.Errorf("override not applied, cohesion %f", cfg.Blob.Cohesion)
	}
	// Untouched fields keep their defaults.
	if cfg.Blob.Damping != 0.92 {
		t.Errorf("unrelated field changed, damping %f", cfg.Blob.Damping)
	}
	if cfg.Tracked.Substeps != 2 {
		t.Errorf("unrelated section changed, tracked substeps %d", cfg.Tracked.Substeps)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("blob: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

// ---------- Conversions ----------

func TestBlobOptions_MirrorsBlobSection(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	opts := cfg.BlobOptions()

	if opts.ParticleCount != cfg.Blob.ParticleCount {
		t.Errorf("particle count mismatch: %d vs %d", opts.ParticleCount, cfg.Blob.ParticleCount)
	}
	if opts.BlobRadius != float32(cfg.Blob.Radius) {
		t.Errorf("radius mismatch: %f vs %f", opts.BlobRadius, cfg.Blob.Radius)
	}
	if opts.PinStiffness != float32(cfg.Blob.PinStiffness) {
		t.Errorf("pin stiffness mismatch: %f vs %f", opts.PinStiffness, cfg.Blob.PinStiffness)
	}
	if opts.SplitDistance != float32(cfg.Blob.SplitDistance) {
		t.Errorf("split distance mismatch: %f vs %f", opts.SplitDistance, cfg.Blob.SplitDistance)
	}
}

func TestTrackedOptions_MirrorsTrackedSection(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	opts := cfg.TrackedOptions()

	if opts.Substeps != cfg.Tracked.Substeps {
		t.Errorf("substeps mismatch: %d vs %d", opts.Substeps, cfg.Tracked.Substeps)
	}
	if opts.TargetStiffness != float32(cfg.Tracked.TargetStiffness) {
		t.Errorf("target stiffness mismatch: %f vs %f",
			opts.TargetStiffness, cfg.Tracked.TargetStiffness)
	}
}

// ---------- Round trip ----------

func TestWriteYAML_RoundTrips(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Blob.ParticleCount = 123

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if back.Blob.ParticleCount != 123 {
		t.Errorf("round trip lost particle count, got %d", back.Blob.ParticleCount)
	}
	if back.Blob.PinStiffness != cfg.Blob.PinStiffness {
		t.Errorf("round trip changed pin stiffness: %f vs %f",
			back.Blob.PinStiffness, cfg.Blob.PinStiffness)
	}
}
