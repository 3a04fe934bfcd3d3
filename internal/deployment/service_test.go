package deployment

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeployVercel_MissingTokenIsSetupError(t *testing.T) {
	svc := NewService("", "")

	result := svc.DeployVercel(context.Background(), t.TempDir(), "demo")
	assert.False(t, result.Success)
	assert.Equal(t, "Vercel token not configured", result.Error)
	assert.Contains(t, result.SetupInstructions, "VERCEL_TOKEN")
}

func TestDeployNetlify_MissingTokenIsSetupError(t *testing.T) {
	svc := NewService("", "")

	result := svc.DeployNetlify(context.Background(), t.TempDir(), "demo")
	assert.False(t, result.Success)
	assert.Equal(t, "Netlify token not configured", result.Error)
	assert.Contains(t, result.SetupInstructions, "NETLIFY_TOKEN")
}

func TestPreview_RendersIndexHTML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.py"), []byte("print('<hi>')"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blob.bin"), []byte{0xff, 0xfe, 0x00}, 0o644))

	svc := NewService("", "")
	result := svc.Preview(context.Background(), dir, "My <Project>")
	require.True(t, result.Success, result.Error)
	assert.Equal(t, "Static Preview", result.Platform)
	assert.Equal(t, filepath.Join(dir, "index.html"), result.URL)

	page, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)

	// Project name and file contents are HTML-escaped; binary files get a
	// placeholder instead of raw bytes.
	assert.Contains(t, string(page), "My &lt;Project&gt;")
	assert.Contains(t, string(page), "print(&#39;&lt;hi&gt;&#39;)")
	assert.Contains(t, string(page), "Binary file")
	assert.NotContains(t, string(page), "\xff\xfe")
}

func TestPreview_ExistingIndexIsKept(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>custom</html>"), 0o644))

	svc := NewService("", "")
	result := svc.Preview(context.Background(), dir, "demo")
	require.True(t, result.Success)
	assert.Equal(t, "Preview HTML file already present", result.Message)

	page, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html>custom</html>", string(page))
}

func TestScrapeURL(t *testing.T) {
	output := "Deploying...\n  https://demo-abc123.vercel.app\nDone."
	assert.Equal(t, "https://demo-abc123.vercel.app", scrapeURL(output, "vercel.app", "fallback"))
	assert.Equal(t, "fallback", scrapeURL(output, "netlify.app", "fallback"))
	assert.Equal(t, "fallback", scrapeURL("no urls here", "vercel.app", "fallback"))
}
