package proc

import (
	"context"
	"errors"
	"testing"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		name string
		args []string
		comm string
		want string
	}{
		{"no args", nil, "kthreadd", "kthreadd"},
		{"binary only", []string{"/usr/bin/zsh"}, "zsh", "zsh"},
		{"chromium type flag", []string{"/opt/chrome/chrome", "--type=renderer", "--lang=en"}, "chrome", "chrome [renderer]"},
		{"type flag after positional", []string{"/opt/chrome/chrome", "profile", "--type=gpu-process"}, "chrome", "chrome [gpu-process]"},
		{"script path", []string{"python3", "-u", "/srv/app/main.py"}, "python3", "python3 [main.py]"},
		{"interpreter skipped", []string{"env", "python", "tool.py"}, "env", "env [tool.py]"},
		{"command name skipped", []string{"/usr/bin/node", "node", "server.js"}, "node", "node [server.js]"},
		{"only flags", []string{"/usr/sbin/sshd", "-D", "--verbose"}, "sshd", "sshd"},
		{"empty args skipped", []string{"sh", "", "-c", "job"}, "sh", "sh [job]"},
		{"every arg filtered", []string{"bash", "bash", "sh", "node"}, "bash", "bash"},
		{"windows path", []string{`C:\Program Files\nodejs\node.exe`, `C:\app\server.js`}, "node.exe", "node.exe [server.js]"},
		{"windows script", []string{"node", `C:\app\server.js`}, "node", "node [server.js]"},
		{"mixed separators", []string{"node", `C:/srv\api/main.js`}, "node", "node [main.js]"},
		{"trailing slash", []string{"ls", "/var/log/"}, "ls", "ls [log]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Label(tt.args, tt.comm); got != tt.want {
				t.Errorf("Label(%q, %q) = %q, want %q", tt.args, tt.comm, got, tt.want)
			}
		})
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"server.js", "server.js"},
		{"/srv/app/main.py", "main.py"},
		{`C:\app\server.js`, "server.js"},
		{`\\host\share\tool.exe`, "tool.exe"},
		{"/opt/dir/", "dir"},
		{"/", "/"},
	}
	for _, tt := range tests {
		if got := baseName(tt.in); got != tt.want {
			t.Errorf("baseName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

type cmdlineSource struct {
	Source
	args map[int][]string
}

func (s cmdlineSource) Cmdline(ctx context.Context, pid int) ([]string, error) {
	args, ok := s.args[pid]
	if !ok {
		return nil, errors.New("no such process")
	}
	return args, nil
}

func TestResolveLabel(t *testing.T) {
	src := cmdlineSource{args: map[int][]string{
		10: {"/usr/bin/python3", "/opt/svc/worker.py"},
	}}

	if got := ResolveLabel(context.Background(), src, 10, "python3"); got != "python3 [worker.py]" {
		t.Errorf("ResolveLabel() = %q, want %q", got, "python3 [worker.py]")
	}
	if got := ResolveLabel(context.Background(), src, 11, "python3"); got != "python3" {
		t.Errorf("ResolveLabel() unreadable cmdline = %q, want %q", got, "python3")
	}
}
