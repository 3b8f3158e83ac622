// Command mmsdump decodes MMS (ISO 9506) messages from a hex-text
// dump file and prints their pretty-printed rendering, one per line.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/slonegd/mmsdump/logger"
	"github.com/slonegd/mmsdump/mms"
	"github.com/slonegd/mmsdump/translate"
	"golang.org/x/exp/slices"
)

var supportedLocales = []string{"en_US", "en_UK", "zh_CN", "zh_TW"}

func main() {
	path := flag.String("file", "", "path to a hex-text dump file (one framed message per line)")
	locale := flag.String("locale", "en_US", "output locale: en_US, en_UK, zh_CN, zh_TW")
	flag.Parse()

	if *path == "" {
		log.Fatal("mmsdump: -file is required")
	}
	if !slices.Contains(supportedLocales, *locale) {
		log.Fatalf("mmsdump: unsupported -locale %q, want one of %v", *locale, supportedLocales)
	}

	lg := logger.NewLogger("mmsdump")
	registry := translate.NewRegistry()
	registry.SetLocale(parseLocale(*locale))
	lg.Debug("locale %s active, %d locale table(s) loaded", *locale, len(registry.Locales()))

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("mmsdump: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			fmt.Println(line)
			continue
		}

		data, ok := decodeHexLine(trimmed)
		if !ok {
			lg.Debug("line %d: odd hex digit count, skipping", lineNo)
			continue
		}

		svc := mms.Parse(data)
		fmt.Println(mms.Render(svc, registry.Translate))
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("mmsdump: reading %s: %v", *path, err)
	}
}

func parseLocale(s string) translate.Lang {
	switch s {
	case "en_UK":
		return translate.EnUK
	case "zh_CN":
		return translate.ZhCN
	case "zh_TW":
		return translate.ZhTW
	default:
		return translate.EnUS
	}
}

// decodeHexLine decodes a line of two-hex-digits-per-byte text,
// stopping at the first non-hex character. An odd count of hex digits
// before that point fails the whole line.
func decodeHexLine(line string) ([]byte, bool) {
	var out []byte
	i := 0
	for i+1 < len(line) {
		hi, okHi := hexDigit(line[i])
		lo, okLo := hexDigit(line[i+1])
		if !okHi {
			break
		}
		if !okLo {
			return nil, false
		}
		out = append(out, hi<<4|lo)
		i += 2
	}
	if i < len(line) {
		if _, ok := hexDigit(line[i]); ok {
			return nil, false
		}
	}
	return out, true
}

func hexDigit(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}
