package deployment

import (
	"context"
	"fmt"
	"html"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/emergent-labs/coder-backend/internal/projects/domain"
)

// Preview renders a static index.html embedding every project file, unless
// the project already ships one. No network deploy happens; the returned URL
// is the local path of the page.
func (s *Service) Preview(_ context.Context, projectPath, projectName string) Result {
	indexPath := filepath.Join(projectPath, "index.html")

	if _, err := os.Stat(indexPath); err == nil {
		return Result{
			Success:  true,
			Platform: "Static Preview",
			URL:      indexPath,
			Message:  "Preview HTML file already present",
			Note:     fmt.Sprintf("Open %s in your browser to view the project", indexPath),
		}
	}

	page, err := renderPreview(projectPath, projectName)
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("render preview: %v", err)}
	}
	if err := os.WriteFile(indexPath, []byte(page), 0o644); err != nil {
		return Result{Success: false, Error: fmt.Sprintf("write preview: %v", err)}
	}

	return Result{
		Success:  true,
		Platform: "Static Preview",
		URL:      indexPath,
		Message:  "Preview HTML file created",
		Note:     fmt.Sprintf("Open %s in your browser to view the project", indexPath),
	}
}

func renderPreview(projectPath, projectName string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 800px; margin: 50px auto; padding: 20px; background: #f5f5f5; }
.container { background: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
h1 { color: #333; }
.file { background: #f8f9fa; padding: 15px; margin: 10px 0; border-radius: 5px; border-left: 4px solid #007bff; }
pre { background: #282c34; color: #abb2bf; padding: 15px; border-radius: 5px; overflow-x: auto; white-space: pre-wrap; }
</style>
</head>
<body>
<div class="container">
<h1>%s</h1>
<p>Your AI-generated project is ready!</p>
<h3>Project Files:</h3>
`, html.EscapeString(projectName), html.EscapeString(projectName))

	err := filepath.WalkDir(projectPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() == "index.html" || d.Name() == domain.MetadataFileName {
			return nil
		}
		rel, err := filepath.Rel(projectPath, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if utf8.Valid(data) {
			fmt.Fprintf(&b, "<div class=\"file\">\n<h4>%s</h4>\n<pre><code>%s</code></pre>\n</div>\n",
				html.EscapeString(rel), html.EscapeString(string(data)))
		} else {
			fmt.Fprintf(&b, "<div class=\"file\">\n<h4>%s</h4>\n<p><em>Binary file</em></p>\n</div>\n",
				html.EscapeString(rel))
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	b.WriteString(`<p><strong>Next Steps:</strong></p>
<ul>
<li>Download your project files</li>
<li>Set up the development environment</li>
<li>Deploy to production platforms</li>
</ul>
</div>
</body>
</html>
`)
	return b.String(), nil
}
