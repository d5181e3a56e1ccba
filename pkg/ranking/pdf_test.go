package ranking

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/myusername/tt-league-stats/pkg/parser"
)

// writeRankingPDF writes a one-page PDF showing each line with its own text
// line operator and returns its path
func writeRankingPDF(t *testing.T, lines []string) string {
	t.Helper()

	var content strings.Builder
	content.WriteString("BT\n/F1 10 Tf\n12 TL\n40 800 Td\n")
	for i, line := range lines {
		if i > 0 {
			content.WriteString("T*\n")
		}
		fmt.Fprintf(&content, "(%s) Tj\n", line)
	}
	content.WriteString("ET")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", content.Len(), content.String()),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	path := filepath.Join(t.TempDir(), "ranking.pdf")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

var rankingListLines = []string{
	"SBTF Ranking  Distrikt 47",
	"1  Alm, Anna  Alphaklubben BTK  1985  1250",
	"2  Ek, Eva  Betaklubben IF  1990  1300",
	"3  Alm, Anna  Gammaklubben  2001  900",
	"Sida 1 av 1",
}

func TestReadPDFText(t *testing.T) {
	text, err := parser.ReadPDFText(writeRankingPDF(t, rankingListLines))
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range rankingListLines {
		if !strings.Contains(text, line) {
			t.Errorf("text %q missing line %q", text, line)
		}
	}
}

func TestLoadPDFDirectory(t *testing.T) {
	dir, err := LoadPDFDirectory(writeRankingPDF(t, rankingListLines))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		player, team string
		want         int
	}{
		{"Alm, Anna", "Alphaklubben BTK 2", 1250},
		{"Alm, Anna", "Gammaklubben", 900},
		{"Ek, Eva", "Betaklubben IF", 1300},
		{"Ek, Eva", "Alphaklubben BTK", 0},
		{"Ny, Spelare", "Alphaklubben BTK", 0},
	}
	for _, tt := range tests {
		got, err := dir.Lookup(context.Background(), tt.player, tt.team)
		if err != nil {
			t.Fatalf("Lookup(%q, %q): %v", tt.player, tt.team, err)
		}
		if got != tt.want {
			t.Errorf("Lookup(%q, %q) = %d, want %d", tt.player, tt.team, got, tt.want)
		}
	}
}

func TestLoadPDFDirectoryErrors(t *testing.T) {
	if _, err := LoadPDFDirectory(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("expected error for missing file")
	}

	notPDF := filepath.Join(t.TempDir(), "list.pdf")
	if err := os.WriteFile(notPDF, []byte("Alm, Anna  Alpha  1250\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPDFDirectory(notPDF); err == nil {
		t.Error("expected error for a file that is not a PDF")
	}
}
