package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestExportCommandPrintsReport(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	mr.Set("game:42", `{"title":"Smoke","questions":[{}]}`)
	mr.HSet("game_session:42:player_scores", "Amal", "5")
	mr.Set("game_session:42:0", `[{"username":"Amal","right":true}]`)

	t.Setenv("CLASSQUIZ_REDIS_ADDR", mr.Addr())
	missing := filepath.Join(t.TempDir(), "config.yaml")

	cmd := NewExportCmd(&missing)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"42"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "Game PIN 42 - Smoke (1 question)") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Amal") {
		t.Fatalf("expected Amal row:\n%s", out.String())
	}
}

func TestExportCommandFailsOnMissingGame(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	t.Setenv("CLASSQUIZ_REDIS_ADDR", mr.Addr())
	missing := filepath.Join(t.TempDir(), "config.yaml")

	cmd := NewExportCmd(&missing)
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"000000"})

	err = cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "no Redis game state found") {
		t.Fatalf("expected game-not-found failure, got %v", err)
	}
}
