// Package hooks runs user scripts after inbox changes. Scripts live in
// {hooks_dir}/{hook point}/ and run in name order; anything not executable
// is skipped.
package hooks

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/rowswipe/internal/config"
	"github.com/cristianoliveira/rowswipe/internal/inbox"
	"github.com/cristianoliveira/rowswipe/internal/logging"
)

// Hook points.
const (
	PostAdd    = "post-add"
	PostLeave  = "post-leave"
	PostDelete = "post-delete"
	PostRead   = "post-read"
)

// Failure modes.
const (
	FailAbort  = "abort"
	FailWarn   = "warn"
	FailIgnore = "ignore"
)

// Config controls how hooks run.
type Config struct {
	Dir         string
	FailureMode string
	Async       bool
	Timeout     time.Duration
	MaxAsync    int
}

// FromGlobalConfig reads the hook settings from the loaded configuration.
func FromGlobalConfig() Config {
	return Config{
		Dir:         config.Get("hooks_dir", ""),
		FailureMode: config.Get("hooks_failure_mode", FailWarn),
		Async:       config.GetBool("hooks_async", false),
		Timeout:     time.Duration(config.GetInt("hooks_timeout", 30)) * time.Second,
		MaxAsync:    config.GetInt("hooks_max_async", 10),
	}
}

// Runner executes hook scripts.
type Runner struct {
	cfg Config
	log logging.Logger

	mu      sync.Mutex
	pending int
	wg      sync.WaitGroup
}

// NewRunner returns a runner. A nil log uses the global logger.
func NewRunner(cfg Config, log logging.Logger) *Runner {
	if log == nil {
		log = logging.GetGlobal()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxAsync <= 0 {
		cfg.MaxAsync = 10
	}
	return &Runner{cfg: cfg, log: log.With("component", "hooks")}
}

// ItemEnv describes item to hook scripts.
func ItemEnv(item inbox.Item) map[string]string {
	return map[string]string{
		"ITEM_ID":           strconv.FormatInt(item.ID, 10),
		"ITEM_KIND":         string(item.Kind),
		"ITEM_TITLE":        item.Title,
		"ITEM_UNREAD_COUNT": strconv.Itoa(item.UnreadCount),
	}
}

// Run executes the scripts of point. Only a synchronous failure in abort
// mode returns an error; other failures are logged.
func (r *Runner) Run(ctx context.Context, point string, env map[string]string) error {
	if r == nil || r.cfg.Dir == "" {
		return nil
	}
	scripts := r.scripts(point)
	if len(scripts) == 0 {
		return nil
	}
	r.log.Debug("running hooks", "point", point, "count", len(scripts))

	environ := buildEnv(point, r.cfg.FailureMode, env)
	for _, script := range scripts {
		if r.cfg.Async {
			r.startAsync(script, environ)
			continue
		}
		if err := r.runSync(ctx, script, environ); err != nil && r.cfg.FailureMode == FailAbort {
			return err
		}
	}
	return nil
}

// scripts lists the executable files of a hook point, sorted by name.
func (r *Runner) scripts(point string) []string {
	dir := filepath.Join(r.cfg.Dir, point)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var scripts []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil || info.Mode()&0o111 == 0 {
			continue
		}
		scripts = append(scripts, filepath.Join(dir, e.Name()))
	}
	slices.Sort(scripts)
	return scripts
}

func buildEnv(point, failureMode string, env map[string]string) []string {
	environ := append(os.Environ(),
		"HOOK_POINT="+point,
		"HOOK_TIMESTAMP="+time.Now().Format(time.RFC3339),
		"ROWSWIPE_HOOKS_FAILURE_MODE="+failureMode,
	)
	if exe, err := os.Executable(); err == nil {
		environ = append(environ, "ROWSWIPE_BINARY="+exe)
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		environ = append(environ, k+"="+env[k])
	}
	return environ
}

func (r *Runner) runSync(ctx context.Context, script string, environ []string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	start := time.Now()
	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, script)
	cmd.Env = environ
	cmd.Stdout = &output
	cmd.Stderr = &output
	// Children of a killed script may hold the output pipe open.
	cmd.WaitDelay = time.Second
	err := cmd.Run()
	return r.finish(script, err, output.String(), time.Since(start))
}

func (r *Runner) startAsync(script string, environ []string) {
	r.mu.Lock()
	if r.pending >= r.cfg.MaxAsync {
		r.mu.Unlock()
		r.log.Warn("too many async hooks pending, skipping", "script", filepath.Base(script), "max", r.cfg.MaxAsync)
		return
	}
	r.pending++
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer func() {
			r.mu.Lock()
			r.pending--
			r.mu.Unlock()
			r.wg.Done()
		}()
		// Async hooks outlive the request that started them.
		_ = r.runSync(context.Background(), script, environ)
	}()
}

func (r *Runner) finish(script string, err error, output string, took time.Duration) error {
	name := filepath.Base(script)
	output = strings.TrimSpace(output)
	if err == nil {
		r.log.Debug("hook completed", "script", name, "duration", took, "output", output)
		return nil
	}
	err = fmt.Errorf("hook %s failed: %w", name, err)
	if r.cfg.FailureMode != FailIgnore {
		r.log.Warn("hook failed", "script", name, "error", err, "output", output)
	}
	return err
}

// Pending returns the number of async hooks still running.
func (r *Runner) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

// Wait blocks until every async hook finished.
func (r *Runner) Wait() {
	if r != nil {
		r.wg.Wait()
	}
}
