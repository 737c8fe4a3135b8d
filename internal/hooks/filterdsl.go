package hooks

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// FilterCondition is one node of a restricted boolean expression tree used
// to compile a FilterFunc without running arbitrary code. The shape is
// adapted from the teacher's internal/rules.RuleCondition, narrowed to the
// two leaf kinds that make sense against a bare path string (extension,
// pattern) since a RenamePair carries no size/mtime metadata the way the
// teacher's analyzer.FileMetadata did — there is nothing in this domain
// for a "size" or "date" condition to compare against.
type FilterCondition struct {
	// Type is "extension", "pattern", "and", or "or".
	Type string

	// Operator is leaf-kind specific: "match"/"eq"/"ne" for extension;
	// "glob"/"regex"/"match" for pattern; unused for and/or.
	Operator string

	// Value is the extension list ("go,txt") or pattern string for a leaf
	// condition; unused for and/or.
	Value string

	// Sub holds the child conditions of an and/or node.
	Sub []FilterCondition
}

// CompileFilter turns a FilterCondition tree into a FilterFunc. Keep is the
// boolean the compiled condition evaluates to for a given path; a pair
// survives the filter hook when Keep is true.
func CompileFilter(cond FilterCondition) (FilterFunc, error) {
	if err := validateCondition(cond); err != nil {
		return nil, err
	}
	return func(orig string, _ int, _ *Handle) (bool, error) {
		return evalCondition(cond, orig), nil
	}, nil
}

func validateCondition(cond FilterCondition) error {
	switch cond.Type {
	case "extension":
		switch cond.Operator {
		case "match", "eq", "ne":
		default:
			return fmt.Errorf("filter: unsupported extension operator %q", cond.Operator)
		}
	case "pattern":
		switch cond.Operator {
		case "glob", "regex", "match":
		default:
			return fmt.Errorf("filter: unsupported pattern operator %q", cond.Operator)
		}
		if cond.Operator == "regex" {
			if _, err := regexp.Compile(cond.Value); err != nil {
				return fmt.Errorf("filter: invalid regex %q: %w", cond.Value, err)
			}
		}
	case "and", "or":
		if len(cond.Sub) == 0 {
			return fmt.Errorf("filter: %s condition needs at least one sub-condition", cond.Type)
		}
		for _, sub := range cond.Sub {
			if err := validateCondition(sub); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("filter: unsupported condition type %q", cond.Type)
	}
	return nil
}

func evalCondition(cond FilterCondition, path string) bool {
	switch cond.Type {
	case "extension":
		return evalExtension(cond, path)
	case "pattern":
		return evalPattern(cond, path)
	case "and":
		for _, sub := range cond.Sub {
			if !evalCondition(sub, path) {
				return false
			}
		}
		return true
	case "or":
		for _, sub := range cond.Sub {
			if evalCondition(sub, path) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func evalExtension(cond FilterCondition, path string) bool {
	fileExt := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	wanted := strings.Split(cond.Value, ",")
	for i := range wanted {
		wanted[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(wanted[i], ".")))
	}
	matches := false
	for _, ext := range wanted {
		if fileExt == ext {
			matches = true
			break
		}
	}
	if cond.Operator == "ne" {
		return !matches
	}
	return matches
}

func evalPattern(cond FilterCondition, path string) bool {
	name := filepath.Base(path)
	switch cond.Operator {
	case "regex":
		re := regexp.MustCompile(cond.Value)
		return re.MatchString(name)
	default: // "glob", "match"
		ok, err := filepath.Match(cond.Value, name)
		return err == nil && ok
	}
}
