// Package entry_points implements the PyPA Entry points specification.
//
// https://packaging.python.org/en/latest/specifications/entry-points/
package entry_points

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"sort"

	"github.com/koukyosyumei/pydist/pkg/python"
)

// reObjectRef matches an entry point object reference:
// "importable.module" or "importable.module:object.attr".
var reObjectRef = regexp.MustCompile(
	`^\w+(\.\w+)*(:\w+(\.\w+)*)?$`)

var reName = regexp.MustCompile(`^[\w.-]+$`)

// ValidateScripts checks a console_scripts map: each key must be a legal
// script name and each value a "module:function" object reference.
func ValidateScripts(scripts map[string]string) error {
	for name, ref := range scripts {
		if !reName.MatchString(name) {
			return fmt.Errorf("entry_points: invalid script name: %q", name)
		}
		if !reObjectRef.MatchString(ref) {
			return fmt.Errorf("entry_points: invalid object reference for script %q: %q", name, ref)
		}
	}
	return nil
}

// Render renders a console_scripts map to entry_points.txt file content, with
// the scripts in sorted order.
func Render(scripts map[string]string) ([]byte, error) {
	if err := ValidateScripts(scripts); err != nil {
		return nil, err
	}
	section := make(python.ConfigSection, len(scripts))
	for name, ref := range scripts {
		section[name] = ref
	}
	config := python.Config{
		"console_scripts": section,
	}
	var buf bytes.Buffer
	if err := config.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Parse reads an entry_points.txt file and returns its console_scripts
// section; script names are returned in sorted order.
func Parse(reader io.Reader) (names []string, scripts map[string]string, err error) {
	configParser := python.NewConfigParser()
	// entry point names are case-sensitive
	configParser.OptionTransform = func(s string) string { return s }
	configData, err := configParser.Parse(reader)
	if err != nil {
		return nil, nil, err
	}
	section, ok := configData["console_scripts"]
	if !ok {
		return nil, map[string]string{}, nil
	}
	scripts = make(map[string]string, len(section))
	names = make([]string, 0, len(section))
	for name, ref := range section {
		scripts[name] = ref
		names = append(names, name)
	}
	sort.Strings(names)
	return names, scripts, nil
}
