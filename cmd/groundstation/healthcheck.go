package main

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/banshee-data/groundstation/internal/httputil"
)

// healthURL turns a listen address into the URL of its local health endpoint.
func healthURL(listenAddr string) string {
	host, port, err := net.SplitHostPort(listenAddr)
	if err != nil {
		return "http://" + strings.TrimSuffix(listenAddr, "/") + "/api/health"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/api/health"
}

// checkHealth asks a running dashboard whether it is healthy.
func checkHealth(ctx context.Context, c httputil.HTTPClient, listenAddr string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var health struct {
		Status   string `json:"status"`
		Version  string `json:"version"`
		Revision uint64 `json:"revision"`
	}
	if err := httputil.GetJSON(ctx, c, healthURL(listenAddr), &health); err != nil {
		return "", err
	}
	if health.Status != "ok" {
		return "", fmt.Errorf("dashboard reports status %q", health.Status)
	}
	return fmt.Sprintf("ok %s rev %d", health.Version, health.Revision), nil
}
