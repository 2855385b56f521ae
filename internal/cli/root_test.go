package cli

import (
	"bytes"
	"context"
	"testing"

	charmlog "github.com/charmbracelet/log"
)

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		debug   string
		want    charmlog.Level
	}{
		{"default", false, "", charmlog.InfoLevel},
		{"verbose flag", true, "", charmlog.DebugLevel},
		{"debug env", false, "1", charmlog.DebugLevel},
		{"both", true, "yes", charmlog.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := logLevel(tt.verbose, tt.debug); got != tt.want {
				t.Errorf("logLevel(%v, %q) = %v, want %v", tt.verbose, tt.debug, got, tt.want)
			}
		})
	}
}

func TestRootCommands(t *testing.T) {
	root := newRootCmd()
	want := []string{"render", "kinds", "serve", "cache", "completion", "version"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("Find(%q) = %v, %v", name, cmd, err)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute(--version) error = %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte(appName)) {
		t.Errorf("version output = %q, want it to mention %s", out.String(), appName)
	}
}

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	for _, want := range []string{"version:", "commit:", "built:"} {
		if !bytes.Contains(out.Bytes(), []byte(want)) {
			t.Errorf("version output missing %q: %s", want, out.String())
		}
	}
}

func TestServeFlags(t *testing.T) {
	cmd := newServeCmd()
	for name, want := range map[string]string{
		"addr":       ":8080",
		"cache":      "file",
		"cache-ttl":  "168h0m0s",
		"redis-addr": "localhost:6379",
	} {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			t.Errorf("flag --%s missing", name)
			continue
		}
		if f.DefValue != want {
			t.Errorf("--%s default = %q, want %q", name, f.DefValue, want)
		}
	}
}

func TestRunServeBadCache(t *testing.T) {
	err := runServe(context.Background(), serveOpts{cacheBackend: "memcached"})
	if err == nil {
		t.Fatal("runServe() should fail for an unknown cache backend")
	}
}
