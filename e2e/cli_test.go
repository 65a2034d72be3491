package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/scavengerhunt/internal/api"
	"github.com/mcoot/scavengerhunt/internal/factory"
	"github.com/mcoot/scavengerhunt/internal/model"
	"github.com/mcoot/scavengerhunt/internal/services/hunt"
)

const playerPhone = "+15551234567"

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "huntctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/huntctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	app      *factory.App
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	app, err := factory.New(context.Background(), factory.Config{
		Logger: logger,
		Game:   hunt.DefaultConfig(),
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		Random:             app.Random,
		HuntController:     app.HuntController,
		LeaderboardService: app.LeaderboardService,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		app:  app,
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
			_ = app.Close()
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type smsResponse struct {
	Status    int      `json:"status"`
	Discarded bool     `json:"discarded"`
	Messages  []string `json:"messages"`
}

type playerResponse struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	CurrentClue string `json:"current_clue"`
	Completed   int    `json:"completed"`
	Missed      int    `json:"missed"`
}

type playerListResponse struct {
	Players []playerResponse `json:"players"`
}

type leaderboardResponse struct {
	Standings []struct {
		Rank      int    `json:"rank"`
		PlayerID  string `json:"player_id"`
		Name      string `json:"name"`
		Completed int    `json:"completed"`
	} `json:"standings"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Server   string `json:"server"`
	Attempts int    `json:"attempts"`
}

func (r *cliRunner) sms(t *testing.T, args ...string) smsResponse {
	t.Helper()

	output, err := r.run(append([]string{"sms", "--from", playerPhone}, args...)...)
	require.NoError(t, err, "output: %s", output)

	var resp smsResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp), "output: %s", output)
	return resp
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, ts.addr, resp.Server)
	assert.Equal(t, 1, resp.Attempts)

	output, err = cli.run("health", "--wait", "2s")
	require.NoError(t, err, "output: %s", output)
}

func TestCLI_HuntFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Onboarding
	resp := cli.sms(t, "hello")
	require.Len(t, resp.Messages, 1)
	assert.Contains(t, resp.Messages[0], "nickname")

	resp = cli.sms(t, "Zephyr")
	assert.Contains(t, resp.Messages[0], "We have your nickname as Zephyr")

	resp = cli.sms(t, "yes")
	assert.Contains(t, resp.Messages[0], "first clue")

	// Find the player and their clue
	output, err := cli.run("players", "list")
	require.NoError(t, err, "output: %s", output)

	var list playerListResponse
	require.NoError(t, json.Unmarshal([]byte(output), &list))
	require.Len(t, list.Players, 1)
	player := list.Players[0]
	assert.Equal(t, playerPhone, player.PhoneNumber)
	assert.Equal(t, "hunting", player.Status)

	clue, err := ts.app.Catalog.Lookup(model.ClueID(player.CurrentClue))
	require.NoError(t, err)

	// Solve it
	resp = cli.sms(t, clue.Keyword)
	assert.Contains(t, resp.Messages[0], "Well done Zephyr!")

	output, err = cli.run("players", "get", player.ID)
	require.NoError(t, err, "output: %s", output)

	var got playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	assert.Equal(t, 1, got.Completed)
	assert.NotEqual(t, player.CurrentClue, got.CurrentClue)

	// Leaderboard
	output, err = cli.run("leaderboard")
	require.NoError(t, err, "output: %s", output)

	var board leaderboardResponse
	require.NoError(t, json.Unmarshal([]byte(output), &board))
	require.Len(t, board.Standings, 1)
	assert.Equal(t, "Zephyr", board.Standings[0].Name)
	assert.Equal(t, 1, board.Standings[0].Completed)
}

func TestCLI_SMSWithoutSessionID(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	resp := cli.sms(t, "--no-sid", "hello")
	assert.True(t, resp.Discarded)
	assert.Equal(t, http.StatusNoContent, resp.Status)
}

func TestCLI_SMSWithoutBody(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	resp := cli.sms(t, "--no-body")
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, hunt.FallbackReply, resp.Messages[0])
}

func TestCLI_UnknownPlayer(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("players", "get", "NOBODY")
	require.Error(t, err)
	assert.Contains(t, output, "PLAYER_NOT_FOUND")
}
