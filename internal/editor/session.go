// Package editor runs an external text editor on a card's content inside a
// pseudo-terminal, streaming its screen to the desktop shell.
package editor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/creack/pty"

	"stickies/internal/watch"
)

// ErrNoSession is returned when input is sent with no editor running.
var ErrNoSession = errors.New("no active editor session")

// Options configure a Session.
type Options struct {
	Editor string // command line; empty means $EDITOR, then vi
	Dir    string // where card files are written for editing

	// OnData receives raw terminal output.
	OnData func(data []byte)
	// OnSave receives the card text each time the editor saves the file.
	OnSave func(cardID, text string)
	// OnExit receives the final text once the editor exits. err is set when
	// the file could not be read back.
	OnExit func(cardID, text string, err error)
}

// Session runs one editor at a time on one card.
type Session struct {
	mu      sync.Mutex
	opts    Options
	argv    []string
	watcher *watch.Watcher
	log     *slog.Logger

	ptmx    *os.File
	cmd     *exec.Cmd
	running bool
	cardID  string
	path    string

	// size for the next Open
	pendingCols uint16
	pendingRows uint16
	shellPath   string // user's login shell PATH, resolved once
}

// New creates a Session. watcher may be nil, which disables live updates.
func New(opts Options, watcher *watch.Watcher, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	line := opts.Editor
	if line == "" {
		line = os.Getenv("EDITOR")
	}
	argv := strings.Fields(line)
	if len(argv) == 0 {
		argv = []string{"vi"}
	}
	argv[0] = resolveEditor(argv[0])
	return &Session{
		opts:        opts,
		argv:        argv,
		watcher:     watcher,
		log:         log,
		pendingCols: 80,
		pendingRows: 24,
		shellPath:   resolveShellPath(),
	}
}

// CardPath is the file a card is edited in.
func (s *Session) CardPath(cardID string) string {
	return filepath.Join(s.opts.Dir, cardID+".md")
}

// Open writes text to the card's file and starts the editor on it. A session
// already running is closed first, without committing.
func (s *Session) Open(cardID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.closeInternal()
	}

	if err := os.MkdirAll(s.opts.Dir, 0755); err != nil {
		return fmt.Errorf("create edit dir: %w", err)
	}
	path := s.CardPath(cardID)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("write card file: %w", err)
	}

	args := append(append([]string{}, s.argv[1:]...), path)
	cmd := exec.Command(s.argv[0], args...)
	cmd.Env = s.env()

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: s.pendingCols, Rows: s.pendingRows})
	if err != nil {
		return fmt.Errorf("start pty: %w", err)
	}

	s.ptmx = ptmx
	s.cmd = cmd
	s.running = true
	s.cardID = cardID
	s.path = path

	if s.watcher != nil && s.opts.OnSave != nil {
		if err := s.watcher.WatchFile(path, func(p string) { s.saved(cardID, p) }); err != nil {
			s.log.Warn("editor: live updates disabled", "card", cardID, "err", err)
		}
	}

	go s.pump(ptmx, cmd, cardID, path)
	return nil
}

// pump streams terminal output until the editor exits, then reads the file
// back and reports it.
func (s *Session) pump(ptmx *os.File, cmd *exec.Cmd, cardID, path string) {
	buf := make([]byte, 32768)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 && s.opts.OnData != nil {
			data := make([]byte, n)
			copy(data, buf[:n])
			s.opts.OnData(data)
		}
		if err != nil {
			break
		}
	}
	_ = cmd.Wait()

	s.mu.Lock()
	current := s.cmd == cmd
	if s.watcher != nil && (current || s.path != path) {
		s.watcher.Unwatch(path)
	}
	if current {
		s.running = false
		s.cmd = nil
		if s.ptmx != nil {
			s.ptmx.Close()
			s.ptmx = nil
		}
	}
	s.mu.Unlock()

	// a session replaced by Open or killed by Close does not commit
	if !current || s.opts.OnExit == nil {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		s.opts.OnExit(cardID, "", fmt.Errorf("read card file: %w", err))
		return
	}
	s.opts.OnExit(cardID, string(data), nil)
}

func (s *Session) saved(cardID, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	s.opts.OnSave(cardID, string(data))
}

// Write sends keystrokes to the editor.
func (s *Session) Write(data string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.ptmx == nil {
		return ErrNoSession
	}
	_, err := io.WriteString(s.ptmx, data)
	return err
}

// Resize updates the terminal size, now and for the next Open.
func (s *Session) Resize(cols, rows uint16) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pendingCols = cols
	s.pendingRows = rows
	if !s.running || s.ptmx == nil {
		return nil
	}
	return pty.Setsize(s.ptmx, &pty.Winsize{Cols: cols, Rows: rows})
}

// Active returns the card being edited.
func (s *Session) Active() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cardID, s.running
}

// Close kills the editor without committing its file.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeInternal()
}

func (s *Session) closeInternal() {
	cmd := s.cmd
	s.cmd = nil
	if s.watcher != nil && s.path != "" {
		s.watcher.Unwatch(s.path)
	}
	if s.ptmx != nil {
		s.ptmx.Close()
		s.ptmx = nil
	}
	if cmd != nil && cmd.Process != nil {
		cmd.Process.Kill()
	}
	s.running = false
}

// env is the current environment with the login shell PATH, so editors
// launched from a GUI app find their plugins and tools.
func (s *Session) env() []string {
	env := os.Environ()
	if s.shellPath != "" {
		replaced := false
		for i, e := range env {
			if strings.HasPrefix(e, "PATH=") {
				env[i] = "PATH=" + s.shellPath
				replaced = true
				break
			}
		}
		if !replaced {
			env = append(env, "PATH="+s.shellPath)
		}
	}
	return append(env, "TERM=xterm-256color", "COLORTERM=truecolor")
}

// resolveEditor finds the absolute path for the editor binary. GUI apps on
// macOS don't inherit the shell's $PATH, so common install dirs are searched too.
func resolveEditor(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	if p, err := exec.LookPath(name); err == nil {
		return p
	}
	candidates := []string{
		filepath.Join("/opt/homebrew/bin", name),
		filepath.Join("/usr/local/bin", name),
		filepath.Join("/run/current-system/sw/bin", name),
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".local/bin", name),
			filepath.Join(home, ".nix-profile/bin", name),
		)
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return name
}

func resolveShellPath() string {
	shell := os.Getenv("SHELL")
	if shell == "" {
		return ""
	}
	out, err := exec.Command(shell, "-lc", "echo $PATH").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
