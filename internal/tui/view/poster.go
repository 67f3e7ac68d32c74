package view

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"strings"
	"time"
)

// RenderPosterPreview downloads a dish photo and renders it to terminal
// character art via chafa. Used as the clip surface when a video source is
// unplayable.
func RenderPosterPreview(imageURL string, width int) (string, error) {
	if width < 20 {
		width = 20
	}

	chafaPath, err := exec.LookPath("chafa")
	if err != nil {
		return "", fmt.Errorf("chafa is not installed")
	}

	client := &http.Client{Timeout: 8 * time.Second}
	resp, err := client.Get(imageURL)
	if err != nil {
		return "", fmt.Errorf("download photo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("download photo: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(io.LimitReader(resp.Body, 5*1024*1024))
	if err != nil {
		return "", fmt.Errorf("read photo: %w", err)
	}

	cmd := exec.Command(chafaPath,
		"--size", fmt.Sprintf("%dx%d", width, mediaSurfaceRows),
		"--view-size", fmt.Sprintf("%dx%d", width, mediaSurfaceRows),
		"--align", "top,center",
		"--format", "symbols",
		"-",
	)
	cmd.Stdin = bytes.NewReader(imageData)
	output, err := cmd.CombinedOutput()
	trimmed := strings.TrimSpace(string(output))
	if err != nil {
		return "", fmt.Errorf("render photo via chafa: %w: %s", err, trimmed)
	}
	if trimmed == "" {
		return "", fmt.Errorf("empty output")
	}
	return trimmed, nil
}
