package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xyproto/vt"
)

const (
	keyPgUp  = 251
	keyLeft  = 252
	keyUp    = 253
	keyRight = 254
	keyDown  = 255
	keyPgDn  = 250

	keyCtrlC = 3
	keyEsc   = 27
)

func (rt *runtimeState) show() error {
	if rt.cfg.Headless {
		return rt.printResults(os.Stdout)
	}
	return runResultsView(rt)
}

// printResults writes one line per form: "form => value" or
// "form !! error".
func (rt *runtimeState) printResults(w io.Writer) error {
	for _, line := range rt.resultLines() {
		if _, err := fmt.Fprintln(w, line.text); err != nil {
			return err
		}
	}
	return nil
}

type resultLine struct {
	text   string
	failed bool
}

func (rt *runtimeState) resultLines() []resultLine {
	lines := make([]resultLine, 0, len(rt.results))
	for _, r := range rt.results {
		form := strings.Join(strings.Fields(r.form), " ")
		if r.err != nil {
			lines = append(lines, resultLine{text: form + " !! " + r.err.Error(), failed: true})
			continue
		}
		lines = append(lines, resultLine{text: form + " => " + r.value})
	}
	return lines
}

func runResultsView(rt *runtimeState) error {
	tty, err := vt.NewTTY()
	if err != nil {
		rt.warnf("TTY unavailable, printing results: %v", err)
		return rt.printResults(os.Stdout)
	}
	defer tty.Close()

	vt.Init()
	defer func() {
		vt.Close()
		fmt.Print(vt.Stop())
		fmt.Println()
	}()

	c := vt.NewCanvas()
	c.HideCursor()
	tty.SetTimeout(20 * time.Millisecond)

	keyCh := make(chan int, 32)
	stopCh := make(chan struct{})
	defer close(stopCh)
	go func() {
		pending := ""
		for {
			select {
			case <-stopCh:
				return
			default:
			}
			raw := tty.CustomString()
			if raw == "" {
				continue
			}
			keys, rest := parseTTYKeyStream(pending + raw)
			pending = rest
			for _, k := range keys {
				select {
				case keyCh <- k:
				default:
				}
			}
		}
	}()

	view := &resultsView{lines: rt.resultLines(), failures: rt.failures}
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()
	view.draw(c)
	for range ticker.C {
		for {
			select {
			case k := <-keyCh:
				if view.handleKey(k) {
					return nil
				}
			default:
				view.draw(c)
				goto nextFrame
			}
		}
	nextFrame:
	}
	return nil
}

type resultsView struct {
	lines    []resultLine
	failures int
	offset   int
	page     int
}

// handleKey scrolls the view and reports whether the viewer should exit.
func (v *resultsView) handleKey(k int) bool {
	switch k {
	case 'q', keyEsc, keyCtrlC:
		return true
	case keyDown, 'j':
		v.scroll(1)
	case keyUp, 'k':
		v.scroll(-1)
	case keyPgDn, ' ':
		v.scroll(max(v.page, 1))
	case keyPgUp:
		v.scroll(-max(v.page, 1))
	case 'g':
		v.offset = 0
	case 'G':
		v.scroll(len(v.lines))
	}
	return false
}

func (v *resultsView) scroll(n int) {
	v.offset += n
	if last := len(v.lines) - max(v.page, 1); v.offset > last {
		v.offset = last
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

func (v *resultsView) status() string {
	return fmt.Sprintf("%d forms, %d errors | j/k scroll, q quit", len(v.lines), v.failures)
}

func (v *resultsView) draw(c *vt.Canvas) {
	c.Clear()
	w, h := c.Size()
	if h == 0 {
		c.Draw()
		return
	}
	v.page = int(h - 1)
	y := uint(0)
	for i := v.offset; i < len(v.lines) && y < h-1; i++ {
		line := v.lines[i]
		fg := vt.LightGray
		if line.failed {
			fg = vt.LightRed
		}
		c.WriteString(0, y, fg, vt.DefaultBackground, clip(line.text, w))
		y++
	}
	statusColor := vt.LightGreen
	if v.failures > 0 {
		statusColor = vt.LightRed
	}
	c.WriteString(0, h-1, statusColor, vt.DefaultBackground, clip(v.status(), w))
	c.Draw()
}

func clip(s string, w uint) string {
	if utf8.RuneCountInString(s) <= int(w) {
		return s
	}
	return string([]rune(s)[:w])
}

// parseTTYKeyStream decodes raw terminal input into key codes. An escape
// sequence cut off at the end of raw is returned as the remainder.
func parseTTYKeyStream(raw string) ([]int, string) {
	if raw == "" {
		return nil, ""
	}
	if after, ok := strings.CutPrefix(raw, "c:"); ok {
		if n, err := strconv.Atoi(after); err == nil && n > 0 {
			return []int{normalizeVTKeyCode(n)}, ""
		}
	}

	keys := make([]int, 0, len(raw))
	for i := 0; i < len(raw); {
		if raw[i] == keyEsc {
			if i+1 >= len(raw) {
				return keys, raw[i:]
			}
			// CSI: ESC [ ... final
			if raw[i+1] == '[' {
				j := i + 2
				for j < len(raw) && (raw[j] >= '0' && raw[j] <= '9' || raw[j] == ';') {
					j++
				}
				if j >= len(raw) {
					return keys, raw[i:]
				}
				switch raw[j] {
				case 'A':
					keys = append(keys, keyUp)
				case 'B':
					keys = append(keys, keyDown)
				case 'C':
					keys = append(keys, keyRight)
				case 'D':
					keys = append(keys, keyLeft)
				case '~':
					switch raw[i+2 : j] {
					case "5":
						keys = append(keys, keyPgUp)
					case "6":
						keys = append(keys, keyPgDn)
					}
				}
				i = j + 1
				continue
			}
			// SS3: ESC O A/B/C/D
			if raw[i+1] == 'O' {
				if i+2 >= len(raw) {
					return keys, raw[i:]
				}
				switch raw[i+2] {
				case 'A':
					keys = append(keys, keyUp)
				case 'B':
					keys = append(keys, keyDown)
				case 'C':
					keys = append(keys, keyRight)
				case 'D':
					keys = append(keys, keyLeft)
				}
				i += 3
				continue
			}
			keys = append(keys, keyEsc)
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(raw[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			continue
		}
		keys = append(keys, int(r))
		i += size
	}
	return keys, ""
}

func normalizeVTKeyCode(k int) int {
	switch k {
	case 258:
		return keyDown
	case 259:
		return keyUp
	case 260:
		return keyLeft
	case 261:
		return keyRight
	case 338:
		return keyPgDn
	case 339:
		return keyPgUp
	default:
		return k
	}
}
