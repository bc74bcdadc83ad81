// SPDX-License-Identifier: MPL-2.0

package download

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/Code-Poets/latex-online/internal/process"
	"github.com/Code-Poets/latex-online/internal/transform"
	"github.com/Code-Poets/latex-online/pkg/fspath"
	"github.com/Code-Poets/latex-online/pkg/types"
)

const (
	// GitCloneTimeout bounds a single git clone.
	GitCloneTimeout = 120 * time.Second
	// URLConnectTimeout bounds dialing, the TLS handshake and waiting for
	// response headers. The body transfer itself is not capped.
	URLConnectTimeout = 5 * time.Second

	// toolOutputLimit caps the tool output carried in failure causes and logs.
	toolOutputLimit = 4 << 10

	folderPrefix = "tmp_"
	dirPerm      = 0o755
	filePerm     = 0o644
)

type (
	// Manager allocates bundle folders under a root directory and creates
	// Downloaders. It is safe for concurrent use.
	Manager struct {
		root    types.FilesystemPath
		counter atomic.Uint64
		fs      afero.Fs
		runner  process.Runner
		client  *http.Client
		tools   Tools
		logger  *log.Logger
	}

	// Tools names the external binaries the jobs run.
	Tools struct {
		Git      string
		Tar      string
		Inkscape string
	}

	// Option configures a Manager.
	Option func(*Manager)
)

// DefaultTools resolves every tool through PATH.
func DefaultTools() Tools {
	return Tools{Git: "git", Tar: "tar", Inkscape: transform.DefaultBinary}
}

// WithFs sets the filesystem jobs write to. Default is the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(m *Manager) {
		m.fs = fs
	}
}

// WithRunner sets the process runner used for git, tar and inkscape.
func WithRunner(r process.Runner) Option {
	return func(m *Manager) {
		m.runner = r
	}
}

// WithHTTPClient sets the client used by URL downloads.
func WithHTTPClient(c *http.Client) Option {
	return func(m *Manager) {
		m.client = c
	}
}

// WithLogger sets the logger. Default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithTools overrides tool binaries. Empty fields keep their defaults.
func WithTools(t Tools) Option {
	return func(m *Manager) {
		if t.Git != "" {
			m.tools.Git = t.Git
		}
		if t.Tar != "" {
			m.tools.Tar = t.Tar
		}
		if t.Inkscape != "" {
			m.tools.Inkscape = t.Inkscape
		}
	}
}

// NewHTTPClient returns a client whose connection phase is bounded by
// URLConnectTimeout and whose transfers are not.
func NewHTTPClient() *http.Client {
	dialer := &net.Dialer{Timeout: URLConnectTimeout, KeepAlive: 30 * time.Second}
	return &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			TLSHandshakeTimeout:   URLConnectTimeout,
			ResponseHeaderTimeout: URLConnectTimeout,
			IdleConnTimeout:       90 * time.Second,
			MaxIdleConns:          16,
		},
	}
}

// NewManager creates a Manager rooted at root, made absolute against the
// current directory. The root directory is created
// if missing and emptied if it has content, so folders left by a previous
// process never collide with new names.
func NewManager(root types.FilesystemPath, opts ...Option) (*Manager, error) {
	m := &Manager{
		root:   fspath.Clean(root),
		fs:     afero.NewOsFs(),
		runner: process.NewExecRunner(process.WithMaxOutput(toolOutputLimit)),
		tools:  DefaultTools(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.client == nil {
		m.client = NewHTTPClient()
	}

	if err := root.Validate(); err != nil {
		return nil, &RootSetupError{Root: root, Cause: err}
	}
	// Tools run inside their bundle folder, so paths handed to them must not
	// depend on the caller's working directory.
	abs, err := fspath.Abs(m.root)
	if err != nil {
		return nil, &RootSetupError{Root: root, Cause: err}
	}
	m.root = abs
	if err := m.prepareRoot(); err != nil {
		return nil, &RootSetupError{Root: m.root, Cause: err}
	}

	m.logger.Debug("root directory ready", "root", m.root)
	return m, nil
}

func (m *Manager) prepareRoot() error {
	root := string(m.root)

	info, err := m.fs.Stat(root)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return m.fs.MkdirAll(root, dirPerm)
	case err != nil:
		return err
	case !info.IsDir():
		return fmt.Errorf("%s is not a directory", root)
	}

	empty, err := afero.IsEmpty(m.fs, root)
	if err != nil {
		return err
	}
	if empty {
		return nil
	}

	m.logger.Info("clearing stale root directory", "root", m.root)
	if err := m.fs.RemoveAll(root); err != nil {
		return fmt.Errorf("clearing: %w", err)
	}
	return m.fs.MkdirAll(root, dirPerm)
}

// Root returns the directory bundle folders are allocated in.
func (m *Manager) Root() types.FilesystemPath { return m.root }

// NextName allocates a fresh folder path root/tmp_<N>. Numbers start at 1 and
// are never reused by this Manager. The folder is not created.
func (m *Manager) NextName() types.FilesystemPath {
	n := m.counter.Add(1)
	return fspath.JoinStr(m.root, folderPrefix+strconv.FormatUint(n, 10))
}

// NewTextDownloader writes text to fileName inside a fresh folder.
func (m *Manager) NewTextDownloader(text string, fileName types.FileName) *Downloader {
	return m.newDownloader(JobText, m.textJob(text, fileName))
}

// NewGitDownloader shallow-clones the repository at url.
func (m *Manager) NewGitDownloader(url string) *Downloader {
	return m.newDownloader(JobGit, m.gitJob(url))
}

// NewURLDownloader fetches url into fileName.
func (m *Manager) NewURLDownloader(url string, fileName types.FileName) *Downloader {
	return m.newDownloader(JobURL, m.urlJob(url, fileName))
}

// NewTarballExtractor extracts the local archive at archivePath.
func (m *Manager) NewTarballExtractor(archivePath types.FilesystemPath) *Downloader {
	return m.newDownloader(JobTarball, m.tarballJob(archivePath))
}

// NewJSONDownloader assembles payload into a folder, writing its text to
// fileName. payload should come from DecodePayload.
func (m *Manager) NewJSONDownloader(payload *Payload, fileName types.FileName) *Downloader {
	return m.newDownloader(JobJSON, m.assemblyJob(payload, fileName))
}

func (m *Manager) newDownloader(kind JobKind, run job) *Downloader {
	return newDownloader(kind, m.NextName(), run, m.fs, m.logger)
}

// removeFolder deletes folder and everything in it.
// Best-effort: the failure being reported matters more than the cleanup error.
func (m *Manager) removeFolder(folder types.FilesystemPath) {
	if err := m.fs.RemoveAll(string(folder)); err != nil {
		m.logger.Warn("failed to remove folder after job failure", "folder", folder, "error", err)
	}
}

func (m *Manager) mkdir(folder types.FilesystemPath) error {
	if err := m.fs.MkdirAll(string(folder), dirPerm); err != nil {
		return fmt.Errorf("creating folder %s: %w", folder, err)
	}
	return nil
}

func (m *Manager) writeFile(folder types.FilesystemPath, name types.FileName, data []byte) error {
	if err := name.Validate(); err != nil {
		return err
	}
	path := fspath.JoinName(folder, name)
	if err := afero.WriteFile(m.fs, string(path), data, filePerm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
