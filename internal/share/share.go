package share

import (
	"bytes"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/bitemap/bitemap-cli/internal/dish"
)

// Payload is what gets handed to the OS share surface for a dish.
type Payload struct {
	Title string
	Text  string
	URL   string
}

// PayloadFor builds the share payload for a dish. The deep link points at the
// public web page for the dish so recipients without the app can still open it.
func PayloadFor(d dish.Dish) Payload {
	return Payload{
		Title: fmt.Sprintf("Check out %s on Bitemap!", d.Name),
		Text:  fmt.Sprintf("%s at %s - only $%.2f", d.Name, d.RestaurantName, d.Price),
		URL:   fmt.Sprintf("https://bitemap.app/dish/%s", url.PathEscape(d.ID)),
	}
}

func ValidateURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("dish has no share URL")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid URL format")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme: %s", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("invalid URL host")
	}
	return trimmed, nil
}

// Open hands the payload to the platform share handler. On macOS and Windows
// that means the URL opener; elsewhere xdg-open.
func Open(p Payload) error {
	link, err := ValidateURL(p.URL)
	if err != nil {
		return err
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", link)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", link)
	default:
		cmd = exec.Command("xdg-open", link)
	}
	return cmd.Run()
}

// CopyToClipboard puts the share text and link on the system clipboard,
// trying each known clipboard command in turn.
func CopyToClipboard(p Payload) error {
	content := fmt.Sprintf("%s\n%s\n%s", p.Title, p.Text, p.URL)

	commands := [][]string{
		{"pbcopy"},
		{"xclip", "-selection", "clipboard"},
		{"wl-copy"},
	}

	for _, c := range commands {
		if _, err := exec.LookPath(c[0]); err != nil {
			continue
		}
		cmd := exec.Command(c[0], c[1:]...)
		cmd.Stdin = bytes.NewBufferString(content)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}

	return fmt.Errorf("no clipboard command available")
}
