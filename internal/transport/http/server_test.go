package http

import (
	"io"
	stdhttp "net/http"
	"testing"
)

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := stdhttp.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(body) != "ok" {
		t.Fatalf("body = %q", body)
	}
}
