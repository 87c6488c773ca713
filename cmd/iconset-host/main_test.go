package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"appiconset/internal/config"
	"appiconset/internal/messaging"
)

// exchange feeds requests to serve and returns every reply, grouped by Id.
func exchange(t *testing.T, cfg *config.Config, requests ...*messaging.Message) map[string][]*messaging.Message {
	t.Helper()

	var in, out bytes.Buffer
	w := messaging.NewConn(nil, &in)
	for _, req := range requests {
		if err := w.WriteMessage(req); err != nil {
			t.Fatalf("Failed to frame request: %v", err)
		}
	}

	if err := serve(messaging.NewConn(&in, &out), cfg, log.New(io.Discard, "", 0)); err != nil {
		t.Fatalf("serve returned error: %v", err)
	}

	replies := make(map[string][]*messaging.Message)
	r := messaging.NewConn(&out, nil)
	for {
		msg, err := r.ReadMessage()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Failed to read reply: %v", err)
		}
		replies[msg.Id] = append(replies[msg.Id], msg)
	}
	return replies
}

func writePNG(t *testing.T, path string, size int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, size, size))); err != nil {
		t.Fatalf("Failed to encode %s: %v", path, err)
	}
}

func TestServe_Ping(t *testing.T) {
	replies := exchange(t, config.Default(), &messaging.Message{Id: "1", Cmd: messaging.CmdPing})

	got := replies["1"]
	if len(got) != 1 || got[0].Status != messaging.StatusPong {
		t.Fatalf("Expected a single pong, got %+v", got)
	}
}

func TestServe_UnknownCommand(t *testing.T) {
	replies := exchange(t, config.Default(), &messaging.Message{Id: "x", Cmd: "START"})

	got := replies["x"]
	if len(got) != 1 || got[0].Status != messaging.StatusError || got[0].Error != "unknown_command" {
		t.Fatalf("Expected unknown_command error, got %+v", got)
	}
}

func TestServe_Generate(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "logo.png")
	writePNG(t, src, 64)
	dest := filepath.Join(tmpDir, "out")

	replies := exchange(t, config.Default(),
		&messaging.Message{Id: "gen", Cmd: messaging.CmdGenerate, Source: src, Dest: dest, Sizes: []int{16, 32}},
		&messaging.Message{Id: "ping", Cmd: messaging.CmdPing},
	)

	got := replies["gen"]
	if len(got) != 2 {
		t.Fatalf("Expected started and finished replies, got %d", len(got))
	}
	if got[0].Status != messaging.StatusStarted || !got[0].Busy {
		t.Errorf("First reply = %+v, want busy started", got[0])
	}
	if got[1].Status != messaging.StatusFinished || got[1].Busy {
		t.Errorf("Second reply = %+v, want idle finished", got[1])
	}

	var report struct {
		Status  string `json:"status"`
		Entries []struct {
			Size   int    `json:"size"`
			Status string `json:"status"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(got[1].Report, &report); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}
	if report.Status != "success" || len(report.Entries) != 2 {
		t.Errorf("Unexpected report: %+v", report)
	}

	for _, name := range []string{"16.png", "32.png", config.DefaultManifestName} {
		if _, err := os.Stat(filepath.Join(dest, config.DefaultSetName, name)); err != nil {
			t.Errorf("Expected %s in set: %v", name, err)
		}
	}

	if len(replies["ping"]) != 1 {
		t.Errorf("Ping during generation got %d replies", len(replies["ping"]))
	}
}

func TestServe_GenerateFailure(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "logo.png")
	writePNG(t, src, 32)
	blocker := filepath.Join(tmpDir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create blocker: %v", err)
	}

	replies := exchange(t, config.Default(),
		&messaging.Message{Id: "a", Cmd: messaging.CmdGenerate, Source: src, Dest: blocker, Sizes: []int{16}},
	)

	got := replies["a"]
	if len(got) != 2 {
		t.Fatalf("Expected started and finished replies, got %d", len(got))
	}
	if got[1].Error == "" {
		t.Error("Expected the fatal directory error on the finished reply")
	}
}

func TestServe_GenerateRejected(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "logo.png")
	writePNG(t, src, 32)

	tests := []struct {
		name string
		msg  *messaging.Message
	}{
		{"missing source", &messaging.Message{Id: "r", Cmd: messaging.CmdGenerate, Dest: tmpDir}},
		{"missing dest", &messaging.Message{Id: "r", Cmd: messaging.CmdGenerate, Source: "logo.png"}},
		{"unreadable source", &messaging.Message{Id: "r", Cmd: messaging.CmdGenerate, Source: filepath.Join(tmpDir, "nope.png"), Dest: tmpDir}},
		{"oversized", &messaging.Message{Id: "r", Cmd: messaging.CmdGenerate, Source: src, Dest: tmpDir, Sizes: []int{16, 1 << 30}}},
		{"zero size", &messaging.Message{Id: "r", Cmd: messaging.CmdGenerate, Source: src, Dest: tmpDir, Sizes: []int{0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := exchange(t, config.Default(), tt.msg)["r"]
			if len(got) != 1 || got[0].Status != messaging.StatusError || got[0].Error == "" {
				t.Fatalf("Expected a single error reply, got %+v", got)
			}
			if _, err := os.Stat(filepath.Join(tmpDir, config.DefaultSetName)); !os.IsNotExist(err) {
				t.Errorf("Expected no set directory for a rejected request, got %v", err)
			}
		})
	}
}

func TestServe_TruncatedFrame(t *testing.T) {
	in := bytes.NewReader([]byte{10, 0, 0, 0, '{'})
	err := serve(messaging.NewConn(in, io.Discard), config.Default(), log.New(io.Discard, "", 0))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Expected ErrUnexpectedEOF, got %v", err)
	}
}
