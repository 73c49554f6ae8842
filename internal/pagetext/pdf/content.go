package pdf

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// paragraphGap is the vertical text move (in points) treated as a paragraph break.
const paragraphGap = 18.0

// extractWithPDFCPU returns the text of each page, in page order.
// Pages whose content cannot be decoded yield an empty string.
func extractWithPDFCPU(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	texts := make([]string, ctx.PageCount)
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil || r == nil {
			continue
		}
		data, err := io.ReadAll(r)
		if err != nil {
			continue
		}
		texts[pageNr-1] = textFromContentStream(data)
	}
	return texts, nil
}

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\)`)

// textFromContentStream decodes text-showing operators of a content stream.
// Line structure is kept: T*, ' and vertical Td/TD moves start a new line and
// large vertical moves leave a blank line between paragraphs.
func textFromContentStream(data []byte) string {
	var sb strings.Builder

	newline := func(n int) {
		s := sb.String()
		have := len(s) - len(strings.TrimRight(s, "\n"))
		for ; have < n && sb.Len() > 0; have++ {
			sb.WriteByte('\n')
		}
	}

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		fields := bytes.Fields(line)
		op := string(fields[len(fields)-1])

		switch op {
		case "Tj", "TJ":
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.WriteString(decodePDFString(m[1]))
			}
		case "'", `"`:
			newline(1)
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.WriteString(decodePDFString(m[1]))
			}
		case "Td", "TD":
			if len(fields) < 3 {
				continue
			}
			ty, err := strconv.ParseFloat(string(fields[len(fields)-2]), 64)
			if err != nil {
				continue
			}
			switch {
			case math.Abs(ty) >= paragraphGap:
				newline(2)
			case ty != 0:
				newline(1)
			default:
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
			}
		case "T*":
			newline(1)
		case "ET":
			newline(1)
		}
	}

	return cleanText(sb.String())
}

// decodePDFString handles basic PDF escape sequences.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] < '0' || raw[i] > '7' {
				sb.WriteByte(raw[i])
				continue
			}
			val := int(raw[i] - '0')
			for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			sb.WriteByte(byte(val))
		}
	}
	return sb.String()
}

// cleanText drops non-printable runes, collapses runs of spaces within a
// line and trims surrounding whitespace. Newlines are preserved.
func cleanText(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		var sb strings.Builder
		prevSpace := false
		for _, r := range line {
			switch {
			case unicode.IsSpace(r):
				if !prevSpace && sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				prevSpace = true
			case unicode.IsPrint(r):
				sb.WriteRune(r)
				prevSpace = false
			}
		}
		lines[i] = strings.TrimSpace(sb.String())
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
