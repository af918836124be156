// Package testutil builds small, valid PDF documents for tests.
//
// The documents are written by hand (header, objects, xref table with real
// byte offsets, trailer) so tests don't need fixture files on disk.
package testutil

import (
	"bytes"
	"fmt"
	"strings"
)

// Glyph is a string drawn at an absolute position on a page.
type Glyph struct {
	X, Y float64
	Text string
}

// PDF returns a document with one page per argument. Every glyph is drawn
// with a 12pt Helvetica, WinAnsi-encoded font.
func PDF(pages ...[]Glyph) []byte {
	// Object numbering: 1 catalog, 2 page tree, 3 font,
	// then a (page, content) pair per page.
	var objects []string
	pageRefs := make([]string, len(pages))
	for i := range pages {
		pageRefs[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}

	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(pageRefs, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)

	for i, glyphs := range pages {
		contentNum := 5 + 2*i
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", contentNum),
			stream(contentStream(glyphs)),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

func contentStream(glyphs []Glyph) string {
	var sb strings.Builder
	for _, g := range glyphs {
		fmt.Fprintf(&sb, "BT /F1 12 Tf 1 0 0 1 %.2f %.2f Tm (%s) Tj ET\n", g.X, g.Y, escape(g.Text))
	}
	return sb.String()
}

func stream(content string) string {
	return fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", len(content), content)
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`)
	return r.Replace(s)
}
