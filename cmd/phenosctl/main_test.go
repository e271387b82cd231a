package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"phenos/internal/model"
)

const sampleFamily = `{
	"individuals": [
		{"id": "mother", "markers": ["A1", "A2", "A3"]},
		{"id": "father", "markers": ["B1", "B2", "B3"]}
	],
	"unions": [{"union_id": "u1", "mother": "mother", "father": "father"}],
	"child": {"id": "child", "markers": ["A1", "B2", "C2", "A3"]}
}`

func TestRunRejectsMissingCommand(t *testing.T) {
	if err := run(context.Background(), nil); err == nil {
		t.Fatal("expected missing command error")
	}
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	err := run(context.Background(), []string{"bogus"})
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestPredictCommandEmitsProfile(t *testing.T) {
	familyPath := writeTempFile(t, "family.json", sampleFamily)

	out, err := captureStdout(func() error {
		return run(context.Background(), []string{"predict", "-family", familyPath})
	})
	if err != nil {
		t.Fatalf("predict command: %v", err)
	}

	var profile model.NeurodivergenceProfile
	if err := json.Unmarshal([]byte(out), &profile); err != nil {
		t.Fatalf("decode profile output: %v\n%s", err, out)
	}
	if profile.IndividualID != "child" {
		t.Fatalf("unexpected individual id: %s", profile.IndividualID)
	}
	// mother contributes 0.5*1.5, father 0.25*1.5.
	want := 1.125
	if diff := profile.SpectrumPosition - want; diff > 1e-12 || diff < -1e-12 {
		t.Fatalf("expected spectrum position %v, got %v", want, profile.SpectrumPosition)
	}
	if !profile.IsNeurodivergent {
		t.Fatal("expected neurodivergent classification")
	}
}

func TestAdaptCommandEmitsReport(t *testing.T) {
	familyPath := writeTempFile(t, "family.json", sampleFamily)

	out, err := captureStdout(func() error {
		return run(context.Background(), []string{
			"adapt",
			"-family", familyPath,
			"-satisfaction", "0.9",
			"-passes", "2",
		})
	})
	if err != nil {
		t.Fatalf("adapt command: %v", err)
	}

	var report adaptReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode adapt report: %v\n%s", err, out)
	}
	if report.Profile.IndividualID != "child" {
		t.Fatalf("unexpected profile in report: %+v", report.Profile)
	}
}

func TestInterpretCommandResolvesActions(t *testing.T) {
	gridPath := writeTempFile(t, "grid.json", `[
		[0,0,0,0,0,0,0],
		[0,0,0,0,0,0,0],
		[0,0,0,0,0,0,0],
		[0,0,0,0.9,0,0,0],
		[0,0,0,0,0,0,0],
		[0,0,0,0,0,0,0],
		[0,0,0,0,0,0,0]
	]`)

	out, err := captureStdout(func() error {
		return run(context.Background(), []string{"interpret", "-grid", gridPath})
	})
	if err != nil {
		t.Fatalf("interpret command: %v", err)
	}
	if !strings.Contains(out, "select_center") {
		t.Fatalf("expected select_center in output: %s", out)
	}
}

func TestInterpretCommandHonorsProfileMotionMap(t *testing.T) {
	gridPath := writeTempFile(t, "grid.json", `[
		[0.9,0,0,0,0,0,0],
		[0,0,0,0,0,0,0],
		[0,0,0,0,0,0,0],
		[0,0,0,0,0,0,0],
		[0,0,0,0,0,0,0],
		[0,0,0,0,0,0,0],
		[0,0,0,0,0,0,0]
	]`)
	profilePath := writeTempFile(t, "profile.json", `{
		"individual_id": "child",
		"preferred_motion_map": {"0,0": "custom_action"}
	}`)

	out, err := captureStdout(func() error {
		return run(context.Background(), []string{
			"interpret",
			"-grid", gridPath,
			"-profile", profilePath,
		})
	})
	if err != nil {
		t.Fatalf("interpret command: %v", err)
	}
	if !strings.Contains(out, "custom_action") {
		t.Fatalf("expected custom_action in output: %s", out)
	}
}

func TestTopCommandRequiresSession(t *testing.T) {
	if err := run(context.Background(), []string{"top"}); err == nil {
		t.Fatal("expected missing session error")
	}
}

func TestObservationsCommandEmptySession(t *testing.T) {
	// Memory stores start empty, so a fresh session has no checkpoint to load.
	out, err := captureStdout(func() error {
		return run(context.Background(), []string{"observations", "-session", "s1"})
	})
	if err != nil {
		t.Fatalf("observations command: %v", err)
	}
	if !strings.Contains(out, "[]") && !strings.Contains(out, "null") {
		t.Fatalf("expected empty observation log, got %s", out)
	}
}

func captureStdout(fn func() error) (string, error) {
	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}

	os.Stdout = w
	runErr := fn()
	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		_ = r.Close()
		return "", err
	}
	_ = r.Close()
	return buf.String(), runErr
}
