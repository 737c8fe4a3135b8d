package hooks

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Template is a restricted rename-hook language: a path-shaped string with
// {placeholder} substitutions. Regex find/replace steps are not part of the
// template syntax; Compose chains them after expansion. It plays the role the
// teacher's pkg/template.Expander played for its {year}/{month}/{category}
// placeholders, generalized to the placeholders a rename pair actually
// carries (orig, seq, prefix-stripped original) instead of file metadata.
//
// Supported placeholders:
//
//	{orig}     the full original path
//	{stripped} orig with the plan's common prefix removed
//	{dir}      filepath.Dir(orig)
//	{base}     filepath.Base(orig)
//	{stem}     base without its final extension
//	{ext}      base's extension, without the leading dot
//	{seq}      the step's sequence number, decimal
//	{seq:03}   the sequence number zero-padded to the given width
//
// A literal '{' or '}' is escaped by doubling it: "{{" / "}}".
type Template string

var placeholderRE = regexp.MustCompile(`\{([^{}]*)\}`)
var seqWidthRE = regexp.MustCompile(`^seq:(\d+)$`)

// Compile turns the template string into a RenameFunc.
func (t Template) Compile() (RenameFunc, error) {
	if t == "" {
		return nil, fmt.Errorf("rename template cannot be empty")
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return func(orig string, seq int, h *Handle) (string, error) {
		return t.expand(orig, seq, h)
	}, nil
}

func (t Template) validate() error {
	escaped := strings.NewReplacer("{{", "\x00OPEN\x00", "}}", "\x00CLOSE\x00").Replace(string(t))
	matches := placeholderRE.FindAllStringSubmatch(escaped, -1)
	for _, m := range matches {
		if !isKnownPlaceholder(m[1]) {
			return fmt.Errorf("rename template: unknown placeholder {%s}", m[1])
		}
	}
	return nil
}

func isKnownPlaceholder(name string) bool {
	switch name {
	case "orig", "stripped", "dir", "base", "stem", "ext", "seq":
		return true
	}
	return seqWidthRE.MatchString(name)
}

func (t Template) expand(orig string, seq int, h *Handle) (string, error) {
	escaped := strings.NewReplacer("{{", "\x00OPEN\x00", "}}", "\x00CLOSE\x00").Replace(string(t))

	var expandErr error
	result := placeholderRE.ReplaceAllStringFunc(escaped, func(m string) string {
		name := m[1 : len(m)-1]
		v, err := resolvePlaceholder(name, orig, seq, h)
		if err != nil {
			expandErr = err
			return ""
		}
		return v
	})
	if expandErr != nil {
		return "", expandErr
	}

	result = strings.NewReplacer("\x00OPEN\x00", "{", "\x00CLOSE\x00", "}").Replace(result)
	return result, nil
}

func resolvePlaceholder(name, orig string, seq int, h *Handle) (string, error) {
	base := filepath.Base(orig)
	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	switch name {
	case "orig":
		return orig, nil
	case "stripped":
		return h.StripPrefix(orig), nil
	case "dir":
		return filepath.Dir(orig), nil
	case "base":
		return base, nil
	case "stem":
		return stem, nil
	case "ext":
		return ext, nil
	case "seq":
		return strconv.Itoa(seq), nil
	}
	if m := seqWidthRE.FindStringSubmatch(name); m != nil {
		width, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("%0*d", width, seq), nil
	}
	return "", fmt.Errorf("rename template: unknown placeholder {%s}", name)
}

// Substitution is a single regex find/replace step, applied after template
// expansion. A RenameFunc chain of Template.Compile followed by one or more
// Substitutions mirrors the original tool's rename_code pattern of
// "compute a name, then clean it up" without allowing arbitrary code.
type Substitution struct {
	Pattern string
	Repl    string
}

// Compose turns a Template followed by a chain of Substitutions into a
// single RenameFunc: the template is expanded first, then each
// substitution is applied in order to its result.
func Compose(tmpl Template, subs ...Substitution) (RenameFunc, error) {
	base, err := tmpl.Compile()
	if err != nil {
		return nil, err
	}
	compiled := make([]*regexp.Regexp, len(subs))
	for i, s := range subs {
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rename template: invalid substitution pattern %q: %w", s.Pattern, err)
		}
		compiled[i] = re
	}
	return func(orig string, seq int, h *Handle) (string, error) {
		value, err := base(orig, seq, h)
		if err != nil {
			return "", err
		}
		for i, re := range compiled {
			value = re.ReplaceAllString(value, subs[i].Repl)
		}
		return value, nil
	}, nil
}
