package fetch

import (
	"strings"
	"testing"
)

func TestExtractText(t *testing.T) {
	t.Run("block elements become separate lines", func(t *testing.T) {
		html := "<html><body><h2>Tiistai</h2><ul><li>Lohikeitto</li><li>Kasvislasagne</li></ul></body></html>"
		got := ExtractText(html)

		lines := strings.Split(got, "\n")
		var trimmed []string
		for _, l := range lines {
			if s := strings.TrimSpace(l); s != "" {
				trimmed = append(trimmed, s)
			}
		}
		if len(trimmed) != 3 {
			t.Fatalf("got %d lines, want 3: %q", len(trimmed), got)
		}
		if trimmed[0] != "Tiistai" || trimmed[1] != "Lohikeitto" {
			t.Errorf("lines = %v", trimmed)
		}
	})

	t.Run("br tags break lines", func(t *testing.T) {
		got := ExtractText("<html><body><p>Tiistai<br>Lohikeitto</p></body></html>")
		if !strings.Contains(got, "Tiistai\n") {
			t.Errorf("text = %q, want newline after Tiistai", got)
		}
	})

	t.Run("scripts and styles are stripped", func(t *testing.T) {
		html := `<html><body><script>var lohi = "not a dish";</script><style>.fish{}</style><p>Hernekeitto</p></body></html>`
		got := ExtractText(html)
		if strings.Contains(got, "lohi") || strings.Contains(got, "fish") {
			t.Errorf("script/style content leaked: %q", got)
		}
		if !strings.Contains(got, "Hernekeitto") {
			t.Errorf("content lost: %q", got)
		}
	})

	t.Run("navigation and footer are stripped", func(t *testing.T) {
		html := `<html><body><nav>Etusivu Lounas</nav><p>Kalakeitto</p><footer>Mannerheimintie 12</footer></body></html>`
		got := ExtractText(html)
		if strings.Contains(got, "Etusivu") || strings.Contains(got, "Mannerheimintie") {
			t.Errorf("chrome content leaked: %q", got)
		}
	})

	t.Run("inline markup stays on one line", func(t *testing.T) {
		got := ExtractText("<html><body><p>Paistettua <b>lohta</b> ja perunoita</p></body></html>")
		if !strings.Contains(got, "Paistettua lohta ja perunoita") {
			t.Errorf("text = %q", got)
		}
	})

	t.Run("empty and malformed input degrade to empty string", func(t *testing.T) {
		if got := ExtractText(""); got != "" {
			t.Errorf("ExtractText(\"\") = %q", got)
		}
		// Malformed markup must not panic; the parser is lenient.
		_ = ExtractText("<div><p>unclosed")
	})
}
