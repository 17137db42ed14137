// Package keymapfile reads and writes keymaps as YAML.
//
// A file holds a list of layers, each a list of rows of action tokens:
//
//	hold_timeout: 200
//	layers:
//	  - - [Esc, Q, W, E]
//	    - [Tab, A, S, "HT(LAlt,D)"]
//
// Tokens are "_" (transparent), "XX" (no-op), a key name, "L<n>" (momentary
// layer), "C<n>" (custom) and "HT(hold,tap[,timeout[,policy]])". The policy is
// one of default, hold-on-other or permissive.
package keymapfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"splitkb/firmware/keycode"
	"splitkb/firmware/layout"
)

// DefaultHoldTimeout applies to hold-tap tokens that omit a timeout when the
// file does not set hold_timeout.
const DefaultHoldTimeout uint16 = 200

// File is the YAML document.
type File struct {
	Name        string       `yaml:"name,omitempty"`
	HoldTimeout uint16       `yaml:"hold_timeout,omitempty"`
	Layers      [][][]string `yaml:"layers"`
}

// Load reads and validates a keymap file.
func Load(path string) (layout.Layers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keymap: %w", err)
	}
	layers, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return layers, nil
}

// Parse decodes a YAML keymap and validates it with the layout engine.
func Parse(data []byte) (layout.Layers, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("failed to parse YAML: empty document")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return f.Build()
}

// Build converts the file's tokens into layers and validates them.
func (f *File) Build() (layout.Layers, error) {
	timeout := f.HoldTimeout
	if timeout == 0 {
		timeout = DefaultHoldTimeout
	}
	layers := make(layout.Layers, len(f.Layers))
	var errs []error
	for n, layer := range f.Layers {
		layers[n] = make([][]layout.Action, len(layer))
		for r, row := range layer {
			layers[n][r] = make([]layout.Action, len(row))
			for c, tok := range row {
				a, err := ParseAction(tok, timeout)
				if err != nil {
					errs = append(errs, fmt.Errorf("layer %d (%d,%d): %w", n, r, c, err))
					continue
				}
				layers[n][r][c] = a
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := layout.Validate(layers); err != nil {
		return nil, fmt.Errorf("invalid keymap: %w", err)
	}
	return layers, nil
}

// ParseAction parses one token. timeout is used by hold-taps that omit one.
func ParseAction(tok string, timeout uint16) (layout.Action, error) {
	tok = strings.TrimSpace(tok)
	switch {
	case tok == "":
		return layout.Trans, errors.New("empty token")
	case tok == "_":
		return layout.Trans, nil
	case strings.EqualFold(tok, "XX"):
		return layout.NoOp, nil
	case hasPrefixFold(tok, "HT(") && strings.HasSuffix(tok, ")"):
		return parseHoldTap(tok[3:len(tok)-1], timeout)
	}
	if n, ok, err := numbered(tok, "L"); ok {
		if err != nil {
			return layout.Trans, err
		}
		return layout.L(n), nil
	}
	if n, ok, err := numbered(tok, "C"); ok {
		if err != nil {
			return layout.Trans, err
		}
		return layout.C(n), nil
	}
	if hasPrefixFold(tok, "0x") {
		v, err := strconv.ParseUint(tok[2:], 16, 8)
		if err != nil {
			return layout.Trans, fmt.Errorf("key code %q: %w", tok, err)
		}
		return layout.K(keycode.Code(v)), nil
	}
	code, err := keycode.Parse(tok)
	if err != nil {
		return layout.Trans, err
	}
	return layout.K(code), nil
}

func parseHoldTap(args string, timeout uint16) (layout.Action, error) {
	parts := strings.Split(args, ",")
	if len(parts) < 2 || len(parts) > 4 {
		return layout.Trans, fmt.Errorf("HT takes 2 to 4 arguments, got %d", len(parts))
	}
	hold, err := ParseAction(parts[0], timeout)
	if err != nil {
		return layout.Trans, fmt.Errorf("HT hold: %w", err)
	}
	tap, err := ParseAction(parts[1], timeout)
	if err != nil {
		return layout.Trans, fmt.Errorf("HT tap: %w", err)
	}
	if len(parts) > 2 {
		v, err := strconv.ParseUint(strings.TrimSpace(parts[2]), 10, 16)
		if err != nil {
			return layout.Trans, fmt.Errorf("HT timeout %q: %w", parts[2], err)
		}
		timeout = uint16(v)
	}
	cfg := layout.HoldTapDefault
	if len(parts) > 3 {
		if cfg, err = ParsePolicy(parts[3]); err != nil {
			return layout.Trans, err
		}
	}
	return layout.HT(hold, tap, timeout, cfg), nil
}

// ParsePolicy parses a hold-tap policy name.
func ParsePolicy(s string) (layout.HoldTapConfig, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range []layout.HoldTapConfig{layout.HoldTapDefault, layout.HoldOnOtherKeyPress, layout.PermissiveHold} {
		if s == c.String() {
			return c, nil
		}
	}
	return layout.HoldTapDefault, fmt.Errorf("unknown hold-tap policy %q", s)
}

// numbered parses tokens such as "L2". ok is false when tok is not of that
// form at all, so key names starting with the same letter still parse.
func numbered(tok, prefix string) (uint8, bool, error) {
	if len(tok) < 2 || !hasPrefixFold(tok, prefix) {
		return 0, false, nil
	}
	rest := tok[len(prefix):]
	if rest[0] < '0' || rest[0] > '9' {
		return 0, false, nil
	}
	v, err := strconv.ParseUint(rest, 10, 8)
	if err != nil {
		return 0, true, fmt.Errorf("%s: %w", tok, err)
	}
	return uint8(v), true, nil
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// FormatAction renders a as a token that ParseAction reads back. Hold-taps
// omit the timeout when it equals timeout and the policy when it is default.
func FormatAction(a layout.Action, timeout uint16) string {
	if a.Kind != layout.KindHoldTap || a.HoldTap == nil {
		return a.String()
	}
	ht := a.HoldTap
	s := "HT(" + FormatAction(ht.Hold, timeout) + "," + FormatAction(ht.Tap, timeout)
	switch {
	case ht.Config != layout.HoldTapDefault:
		s += fmt.Sprintf(",%d,%s", ht.Timeout, ht.Config)
	case ht.Timeout != timeout:
		s += fmt.Sprintf(",%d", ht.Timeout)
	}
	return s + ")"
}

// Encode writes layers as a YAML keymap with one flow sequence per row.
func Encode(w io.Writer, name string, layers layout.Layers) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	if name != "" {
		doc.Content = append(doc.Content, scalar("name"), scalar(name))
	}
	doc.Content = append(doc.Content,
		scalar("hold_timeout"), &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(int(DefaultHoldTimeout))},
	)
	ls := &yaml.Node{Kind: yaml.SequenceNode}
	for _, layer := range layers {
		ln := &yaml.Node{Kind: yaml.SequenceNode}
		for _, row := range layer {
			rn := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
			for _, a := range row {
				tok := scalar(FormatAction(a, DefaultHoldTimeout))
				if strings.ContainsAny(tok.Value, ",()") {
					tok.Style = yaml.DoubleQuotedStyle
				}
				rn.Content = append(rn.Content, tok)
			}
			ln.Content = append(ln.Content, rn)
		}
		ls.Content = append(ls.Content, ln)
	}
	doc.Content = append(doc.Content, scalar("layers"), ls)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode keymap: %w", err)
	}
	return enc.Close()
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
