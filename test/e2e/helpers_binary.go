//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// dreamspaceServer manages a running dreamspace server process.
type dreamspaceServer struct {
	cmd     *exec.Cmd
	address string
	logFile string
	logs    *os.File
}

// startDreamspace launches the binary with the given DATABASE_URL and waits
// for it to become healthy. An empty URL runs the seeded memory store.
func startDreamspace(t *testing.T, databaseURL string, extraEnv ...string) *dreamspaceServer {
	t.Helper()

	if dreamspaceBin == "" {
		t.Skip("dreamspace binary not available (set DREAMSPACE_BIN or add to PATH)")
	}

	dataDir := t.TempDir()
	port := freePort(t)
	address := fmt.Sprintf("127.0.0.1:%d", port)
	logFile := filepath.Join(dataDir, "dreamspace.log")

	cmd := exec.Command(dreamspaceBin)
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("PORT=%d", port),
		"DATABASE_URL="+databaseURL,
		"USE_MOCKS=false",
		"DREAMSPACE_CONFIG_PATH="+filepath.Join(dataDir, "nonexistent.yaml"), // skip YAML file
		"DREAMSPACE_LOG_FORMAT=json",
	)
	cmd.Env = append(cmd.Env, extraEnv...)

	lf, err := os.Create(logFile)
	if err != nil {
		t.Fatalf("create log file: %v", err)
	}
	cmd.Stdout = lf
	cmd.Stderr = lf

	if err := cmd.Start(); err != nil {
		lf.Close()
		t.Fatalf("start dreamspace: %v", err)
	}

	s := &dreamspaceServer{cmd: cmd, address: address, logFile: logFile, logs: lf}
	t.Cleanup(func() {
		s.stop()
		lf.Close()
	})

	if err := s.waitHealthy(10 * time.Second); err != nil {
		t.Fatalf("dreamspace not healthy: %v\n%s", err, s.readLogs())
	}
	return s
}

func (s *dreamspaceServer) stop() {
	if s.cmd != nil && s.cmd.Process != nil && s.cmd.ProcessState == nil {
		_ = s.cmd.Process.Signal(os.Interrupt)
		_ = s.cmd.Wait()
	}
}

func (s *dreamspaceServer) baseURL() string {
	return "http://" + s.address
}

func (s *dreamspaceServer) readLogs() string {
	data, _ := os.ReadFile(s.logFile)
	return string(data)
}

func (s *dreamspaceServer) waitHealthy(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	url := s.baseURL() + "/api/health"

	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("dreamspace not healthy after %s", timeout)
}

// do sends a JSON request and returns the status and raw body.
func (s *dreamspaceServer) do(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = strings.NewReader(b)
		default:
			data, err := json.Marshal(b)
			if err != nil {
				t.Fatalf("marshal body: %v", err)
			}
			r = bytes.NewReader(data)
		}
	}
	req, err := http.NewRequest(method, s.baseURL()+path, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, data
}

// getJSON fetches path, requires 200, and decodes into v.
func (s *dreamspaceServer) getJSON(t *testing.T, path string, v any) {
	t.Helper()
	status, body := s.do(t, http.MethodGet, path, nil)
	if status != http.StatusOK {
		t.Fatalf("GET %s: status %d: %s", path, status, body)
	}
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("GET %s decode: %v", path, err)
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("free port: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}
