package driver

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"swiftformat/internal/config"
)

// MetadataProvider supplies the file metadata read by the header rule.
type MetadataProvider interface {
	FileInfo(ctx context.Context, path string) (config.FileInfo, error)
}

// MetadataFunc adapts a function to MetadataProvider.
type MetadataFunc func(ctx context.Context, path string) (config.FileInfo, error)

// FileInfo calls f.
func (f MetadataFunc) FileInfo(ctx context.Context, path string) (config.FileInfo, error) {
	return f(ctx, path)
}

// GitMetadata reads the author and creation date of a file from the commit
// that added it. Files without history fall back to the configured git user
// and the file's modification time.
type GitMetadata struct {
	// Command is the git executable; empty means "git" on PATH.
	Command string
}

// FileInfo implements MetadataProvider. Failures to run git are not errors:
// the returned info simply lacks the fields git could not provide.
func (g GitMetadata) FileInfo(ctx context.Context, path string) (config.FileInfo, error) {
	info := config.FileInfo{FilePath: path}
	dir, base := filepath.Dir(path), filepath.Base(path)

	out, err := g.run(ctx, dir, "log", "--follow", "--diff-filter=A", "--format=%an%x00%ae%x00%aI", "--", base)
	if err != nil {
		log.Debug("git metadata unavailable", "path", path, "error", err)
	}
	if line := lastLine(out); line != "" {
		if parts := strings.Split(line, "\x00"); len(parts) == 3 {
			info.Author, info.Email = parts[0], parts[1]
			if created, perr := time.Parse(time.RFC3339, parts[2]); perr == nil {
				info.Created = created
			}
		}
	}

	if info.Author == "" {
		name, _ := g.run(ctx, dir, "config", "user.name")
		info.Author = lastLine(name)
	}
	if info.Email == "" {
		email, _ := g.run(ctx, dir, "config", "user.email")
		info.Email = lastLine(email)
	}
	if info.Created.IsZero() {
		st, err := os.Stat(path)
		if err != nil {
			return info, err
		}
		info.Created = st.ModTime()
	}
	return info, nil
}

func (g GitMetadata) run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := g.Command
	if cmd == "" {
		cmd = "git"
	}
	c := exec.CommandContext(ctx, cmd, append([]string{"-C", dir}, args...)...) // #nosec G204 -- fixed git subcommands
	return c.Output()
}

func lastLine(out []byte) string {
	out = bytes.TrimRight(out, "\r\n")
	if i := bytes.LastIndexByte(out, '\n'); i >= 0 {
		out = out[i+1:]
	}
	return strings.TrimSpace(string(out))
}
