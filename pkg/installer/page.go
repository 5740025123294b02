package installer

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const landingTemplate = `<!DOCTYPE html>
<html lang="en">
<head><title>TAV-X Installer</title><style>body{background:#1e1e1e;color:#ccc;display:flex;justify-content:center;align-items:center;height:100vh;font-family:monospace}code{background:#333;padding:10px;border-radius:5px}</style></head>
<body><code></code></body>
</html>`

// renderLandingPage fills the <code> block with the install command.
func renderLandingPage(installCommand string) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(landingTemplate))
	if err != nil {
		return nil, fmt.Errorf("error parsing landing page: %w", err)
	}

	doc.Find("code").SetText(installCommand)

	html, err := doc.Html()
	if err != nil {
		return nil, fmt.Errorf("error rendering landing page: %w", err)
	}
	return []byte(html), nil
}
