package client

import (
	"log/slog"
	"strings"
)

const (
	apiPrefix      = "/api/v1"
	networkHost    = "192.168.0.188"
	networkBaseURL = "http://192.168.0.188:3055/api/v1"
	localBaseURL   = "http://localhost:3055/api/v1"
)

// ResolveBaseURL picks the backend base URL: an explicit override wins, then
// the known LAN host, then localhost.
func ResolveBaseURL(override, hostname string) string {
	if override != "" {
		slog.Info("📡 Using environment API URL", "url", override)
		return strings.TrimRight(override, "/") + apiPrefix
	}
	if hostname == networkHost {
		slog.Info("📡 Using network backend URL", "hostname", hostname)
		return networkBaseURL
	}
	slog.Info("📡 Using localhost backend URL")
	return localBaseURL
}
