package utils

import "testing"

func TestIsAllowedOrigin(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		allowed bool
	}{
		{name: "localhost", origin: "http://localhost:3000", allowed: true},
		{name: "loopback ip", origin: "http://127.0.0.1:3000", allowed: true},
		{name: "rfc1918 ten", origin: "http://10.1.2.3", allowed: true},
		{name: "rfc1918 192", origin: "https://192.168.1.50:8443", allowed: true},
		{name: "rfc1918 172", origin: "http://172.16.0.10", allowed: true},
		{name: "mdns name", origin: "http://mediabox.local:8080", allowed: true},
		{name: "single-label lan name", origin: "http://nas", allowed: true},
		{name: "public domain", origin: "https://evil.example.com", allowed: false},
		{name: "public ip", origin: "http://8.8.8.8", allowed: false},
		{name: "empty", origin: "", allowed: false},
		{name: "garbage", origin: "::::", allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAllowedOrigin(tt.origin); got != tt.allowed {
				t.Errorf("IsAllowedOrigin(%q) = %v, want %v", tt.origin, got, tt.allowed)
			}
		})
	}
}

func TestIsPrivateHost(t *testing.T) {
	tests := []struct {
		host    string
		private bool
	}{
		{"localhost", true},
		{"mediabox.local", true},
		{"127.0.0.1", true},
		{"10.0.0.5", true},
		{"192.168.1.5", true},
		{"172.31.255.1", true},
		{"172.32.0.1", false},
		{"169.254.10.10", true},
		{"nas", true},
		{"plex.example.com", false},
		{"8.8.8.8", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			if got := IsPrivateHost(tt.host); got != tt.private {
				t.Errorf("IsPrivateHost(%q) = %v, want %v", tt.host, got, tt.private)
			}
		})
	}
}
