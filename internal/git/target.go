package git

import (
	"errors"
	"fmt"
	"strings"

	gitcfg "github.com/go-git/go-git/v5/plumbing/format/config"
)

const (
	SectionUser = "user"
	SectionCore = "core"

	KeyEmail      = "email"
	KeyName       = "name"
	KeySSHCommand = "sshCommand"
)

var (
	ErrTargetNotFound = errors.New("git config does not exist")
	ErrParse          = errors.New("malformed git config")
)

// SSHCommand returns the core.sshCommand value for a private key path
func SSHCommand(keyPath string) string {
	return "ssh -i " + keyPath
}

// Identity is the credential part of a repository config
type Identity struct {
	Name       string
	Email      string
	SSHCommand string
}

// IsEmpty reports whether no credential key is set
func (i Identity) IsEmpty() bool {
	return i.Name == "" && i.Email == "" && i.SSHCommand == ""
}

// TargetConfig is a parsed repository config.
//
// Values are read through the go-git decoder. Edits are made on the source
// lines, so every line gus does not own is written back byte for byte,
// comments and valueless boolean keys included.
type TargetConfig struct {
	raw   *gitcfg.Config
	lines []line
	err   error
}

type lineKind int

const (
	lineOther lineKind = iota // blank or comment
	lineHeader
	lineOption
	lineContinuation
)

type line struct {
	text    string // with its line ending
	kind    lineKind
	block   int    // index of the header that opened the section, -1 before any
	section string // lower-cased name of a plain section, "" for subsections
	key     string // lower-cased option name
	inline  bool   // header followed by an option on the same line
}

// ParseTarget decodes git config syntax
func ParseTarget(data []byte) (*TargetConfig, error) {
	t := &TargetConfig{}
	if err := t.load(string(data)); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *TargetConfig) load(text string) error {
	raw := gitcfg.New()
	if err := gitcfg.NewDecoder(strings.NewReader(text)).Decode(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	t.raw = raw
	t.lines = scanLines(text)
	return nil
}

// rewrite replaces the document with lines and decodes it again
func (t *TargetConfig) rewrite(lines []string) {
	if err := t.load(strings.Join(lines, "")); err != nil {
		t.err = fmt.Errorf("edited git config no longer parses: %w", err)
	}
}

// Encode renders the whole document
func (t *TargetConfig) Encode() ([]byte, error) {
	if t.err != nil {
		return nil, t.err
	}
	var b strings.Builder
	for _, l := range t.lines {
		b.WriteString(l.text)
	}
	return []byte(b.String()), nil
}

// Get returns the last value of section.key
func (t *TargetConfig) Get(section, key string) (string, bool) {
	value, found := "", false
	for _, s := range t.raw.Sections {
		if s.IsName(section) && s.HasOption(key) {
			value, found = s.Option(key), true
		}
	}
	return value, found
}

// HasSection reports whether a section with that name exists
func (t *TargetConfig) HasSection(name string) bool {
	for _, s := range t.raw.Sections {
		if s.IsName(name) {
			return true
		}
	}
	return false
}

// Set assigns section.key. The last existing assignment is rewritten in
// place; otherwise the key is added to the end of the last such section, or
// a new section is appended.
func (t *TargetConfig) Set(section, key, value string) bool {
	if old, ok := t.Get(section, key); ok && old == value {
		return false
	}

	sec, k := strings.ToLower(section), strings.ToLower(key)
	entry := "\t" + key + " = " + quoteValue(value) + "\n"
	out := t.texts()

	last, header, tail := -1, -1, -1
	for i, l := range t.lines {
		if l.section != sec {
			continue
		}
		switch l.kind {
		case lineHeader:
			header, tail = i, i
		case lineOption, lineContinuation:
			if l.block == header {
				tail = i
			}
			if l.kind == lineOption && l.key == k {
				last = i
			}
		}
	}

	switch {
	case last >= 0:
		end := t.optionEnd(last)
		out[last] = leadingSpace(t.lines[last].text) + strings.TrimLeft(entry, "\t")
		for i := last + 1; i < end; i++ {
			out[i] = ""
		}
	case header >= 0:
		out[tail] = withNewline(out[tail]) + entry
	default:
		if n := len(out); n > 0 {
			out[n-1] = withNewline(out[n-1])
		}
		out = append(out, "["+section+"]\n", entry)
	}

	t.rewrite(out)
	return true
}

// Unset removes every section.key and drops the sections left without options
func (t *TargetConfig) Unset(section, key string) bool {
	sec, k := strings.ToLower(section), strings.ToLower(key)
	drop := make([]bool, len(t.lines))
	touched := make(map[int]bool)

	for i, l := range t.lines {
		if l.kind != lineOption || l.section != sec || l.key != k {
			continue
		}
		for j := i; j < t.optionEnd(i); j++ {
			drop[j] = true
		}
		touched[l.block] = true
	}
	if len(touched) == 0 {
		return false
	}

	for h := range touched {
		if !t.hasOptions(h, drop) {
			drop[h] = true
		}
	}

	var out []string
	for i, l := range t.lines {
		if !drop[i] {
			out = append(out, l.text)
		}
	}
	t.rewrite(out)
	return true
}

// Identity reads the credential keys
func (t *TargetConfig) Identity() Identity {
	var id Identity
	id.Email, _ = t.Get(SectionUser, KeyEmail)
	id.Name, _ = t.Get(SectionUser, KeyName)
	id.SSHCommand, _ = t.Get(SectionCore, KeySSHCommand)
	return id
}

// ApplyCredential sets user.email, user.name and core.sshCommand
func (t *TargetConfig) ApplyCredential(email, name, sshKey string) bool {
	changed := t.Set(SectionUser, KeyEmail, email)
	changed = t.Set(SectionUser, KeyName, name) || changed
	changed = t.Set(SectionCore, KeySSHCommand, SSHCommand(sshKey)) || changed
	return changed
}

// ClearCredential removes the keys ApplyCredential sets
func (t *TargetConfig) ClearCredential() bool {
	changed := t.Unset(SectionUser, KeyEmail)
	changed = t.Unset(SectionUser, KeyName) || changed
	changed = t.Unset(SectionCore, KeySSHCommand) || changed
	return changed
}

func (t *TargetConfig) texts() []string {
	out := make([]string, len(t.lines))
	for i, l := range t.lines {
		out[i] = l.text
	}
	return out
}

// optionEnd returns the index after the option at i and its continuations
func (t *TargetConfig) optionEnd(i int) int {
	end := i + 1
	for end < len(t.lines) && t.lines[end].kind == lineContinuation {
		end++
	}
	return end
}

func (t *TargetConfig) hasOptions(header int, drop []bool) bool {
	if header < 0 || t.lines[header].inline {
		return true
	}
	for i, l := range t.lines {
		if l.block == header && l.kind == lineOption && !drop[i] {
			return true
		}
	}
	return false
}

func scanLines(text string) []line {
	var lines []line
	block, section, cont := -1, "", false

	for _, s := range strings.SplitAfter(text, "\n") {
		if s == "" {
			continue
		}
		content := strings.TrimRight(s, "\r\n")
		trimmed := strings.TrimSpace(content)
		l := line{text: s, block: block, section: section}

		switch {
		case cont:
			l.kind = lineContinuation
			cont = continues(content)
		case strings.HasPrefix(trimmed, "["):
			name, plain, inline := parseHeader(trimmed)
			block, section = len(lines), ""
			if plain {
				section = strings.ToLower(name)
			}
			l.kind, l.block, l.section, l.inline = lineHeader, block, section, inline
		case trimmed == "" || trimmed[0] == '#' || trimmed[0] == ';':
			l.kind = lineOther
		default:
			l.kind = lineOption
			l.key = strings.ToLower(optionKey(trimmed))
			cont = continues(content)
		}
		lines = append(lines, l)
	}
	return lines
}

// parseHeader reads "[name]", `[name "sub"]` or "[name.sub]". Only the
// first form is plain.
func parseHeader(s string) (name string, plain, inline bool) {
	i := 1
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	start := i
	for i < len(s) && !strings.ContainsRune(" \t\".]", rune(s[i])) {
		i++
	}
	name = s[start:i]
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	plain = i < len(s) && s[i] == ']'

	inQuote, escaped := false, false
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			inQuote = !inQuote
		case c == ']' && !inQuote:
			rest := strings.TrimSpace(s[i+1:])
			inline = rest != "" && rest[0] != '#' && rest[0] != ';'
			return name, plain, inline
		}
	}
	return name, plain, false
}

func optionKey(s string) string {
	if i := strings.IndexAny(s, "= \t"); i >= 0 {
		return s[:i]
	}
	return s
}

// continues reports whether a line ends in a backslash outside a comment
func continues(s string) bool {
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\':
			if i == len(s)-1 {
				return true
			}
			i++
		case c == '"':
			inQuote = !inQuote
		case (c == '#' || c == ';') && !inQuote:
			return false
		}
	}
	return false
}

// quoteValue escapes a value for git config syntax
func quoteValue(v string) string {
	var b strings.Builder
	for _, r := range v {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	if v == "" || v != strings.TrimSpace(v) || strings.ContainsAny(v, "#;") || strings.Contains(v, "  ") {
		return `"` + b.String() + `"`
	}
	return b.String()
}

func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
