// SPDX-License-Identifier: MPL-2.0

package download

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Code-Poets/latex-online/internal/testutil"
)

// checkTestcontainersAvailable safely checks if testcontainers can be used.
func checkTestcontainersAvailable() (available bool) {
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	provider, err := testcontainers.ProviderDocker.GetProvider()
	if err != nil {
		return false
	}
	defer provider.Close()
	return true
}

// startNginx serves files from /usr/share/nginx/html and returns the base URL.
func startNginx(t *testing.T, ctx context.Context, files map[string]string) string {
	t.Helper()

	var containerFiles []testcontainers.ContainerFile
	for name, body := range files {
		containerFiles = append(containerFiles, testcontainers.ContainerFile{
			Reader:            strings.NewReader(body),
			ContainerFilePath: "/usr/share/nginx/html/" + name,
			FileMode:          0o644,
		})
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "nginx:alpine",
			ExposedPorts: []string{"80/tcp"},
			Files:        containerFiles,
			WaitingFor:   wait.ForHTTP("/").WithPort("80/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start nginx container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("warning: terminate nginx container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "80/tcp")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}
	return fmt.Sprintf("http://%s:%s", host, port.Port())
}

func TestURLJob_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if !checkTestcontainersAvailable() {
		t.Skip("skipping url integration test: testcontainers provider not available")
	}

	sem := testutil.ContainerSemaphore()
	sem <- struct{}{}
	defer func() { <-sem }()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	base := startNginx(t, ctx, map[string]string{"main.tex": `\documentclass{report}`})
	m := newTestManager(t)

	t.Run("fetches file", func(t *testing.T) {
		d := m.NewURLDownloader(base+"/main.tex", "main.tex")
		res := d.Trigger(ctx)
		if !res.OK() {
			t.Fatalf("Trigger() = %+v", res)
		}
		got := testutil.MustReadFile(t, filepath.Join(string(res.FolderPath), "main.tex"))
		if string(got) != `\documentclass{report}` {
			t.Errorf("main.tex = %q", got)
		}
		if err := d.Dispose(ctx); err != nil {
			t.Errorf("Dispose() error: %v", err)
		}
		assertExists(t, d.Folder(), false)
	})

	t.Run("missing file", func(t *testing.T) {
		url := base + "/missing.tex"
		d := m.NewURLDownloader(url, "main.tex")
		res := d.Trigger(ctx)
		msg, ok := res.UserError()
		if !ok || msg != "failed to download URL "+url+" - got response status 404" {
			t.Fatalf("UserError() = %q, %v", msg, ok)
		}
		assertExists(t, d.Folder(), false)
	})
}
