package cmd

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/zhubert/tutor/internal/api"
	"github.com/zhubert/tutor/internal/fakebackend"
)

func newTestClient(t *testing.T) (*api.Client, *fakebackend.Server) {
	t.Helper()
	backend := fakebackend.New()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	return api.New(srv.URL), backend
}

func TestPrintSessions(t *testing.T) {
	client, backend := newTestClient(t)
	backend.SeedSession("a", "Articles")
	backend.SeedSession("b", "")
	backend.SeedSession("c", "Conditionals")

	var out bytes.Buffer
	if err := printSessions(context.Background(), &out, client); err != nil {
		t.Fatalf("printSessions: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", out.String())
	}
	want := []string{"c", "b", "a"}
	for i, id := range want {
		if !strings.HasPrefix(lines[i], id+" ") {
			t.Errorf("line %d = %q, want id %q first", i, lines[i], id)
		}
	}
	if !strings.Contains(lines[1], api.DefaultTitle) {
		t.Errorf("untitled session should show %q, got %q", api.DefaultTitle, lines[1])
	}
}

func TestPrintSessions_Empty(t *testing.T) {
	client, _ := newTestClient(t)

	var out bytes.Buffer
	if err := printSessions(context.Background(), &out, client); err != nil {
		t.Fatalf("printSessions: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "No sessions." {
		t.Errorf("output = %q", got)
	}
}

func TestPrintSessions_BackendError(t *testing.T) {
	client, backend := newTestClient(t)
	backend.Fail("/sessions", http.StatusInternalServerError)

	var out bytes.Buffer
	if err := printSessions(context.Background(), &out, client); err == nil {
		t.Error("expected an error")
	}
}

func TestPrintHistory(t *testing.T) {
	client, backend := newTestClient(t)
	backend.SeedHistory("2024-03-01T09:30:00.000000", 4, 5)
	backend.SeedHistory("2024-03-02T18:05:00.000000", 1, 3)

	var out bytes.Buffer
	if err := printHistory(context.Background(), &out, client); err != nil {
		t.Fatalf("printHistory: %v", err)
	}

	lines := strings.Split(out.String(), "\n")
	if !strings.HasPrefix(lines[0], "Quiz 2") {
		t.Errorf("expected newest quiz first, got %q", lines[0])
	}
	for _, want := range []string{"2024-03-02 18:05", "1/3 (33%)", "D"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("line %q missing %q", lines[0], want)
		}
	}
	for _, want := range []string{"Quiz 1", "2024-03-01 09:30", "4/5 (80%)", "B"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("line %q missing %q", lines[1], want)
		}
	}
	if !strings.Contains(out.String(), "2 quizzes, 5/8 correct, average 63%") {
		t.Errorf("missing totals in %q", out.String())
	}
}

func TestPrintHistory_Empty(t *testing.T) {
	client, _ := newTestClient(t)

	var out bytes.Buffer
	if err := printHistory(context.Background(), &out, client); err != nil {
		t.Fatalf("printHistory: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "No quizzes taken yet." {
		t.Errorf("output = %q", got)
	}
}

func TestServeDemo(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serveDemo(ctx, ln, fakebackend.New())
	}()

	client := api.New("http://" + ln.Addr().String())
	id, err := client.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if id == "" {
		t.Error("expected a session id")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serveDemo: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("demo server did not stop")
	}
}
