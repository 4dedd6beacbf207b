package domain

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

const editorVersionMarker = "m_EditorVersion:"

var editorVersionPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:([abfpcx])(\d+)(?:c(\d+))?)?$`)

// EditorVersion is a Unity editor version such as "2022.3.22f1".
type EditorVersion struct {
	Major     int
	Minor     int
	Revision  int
	Type      string
	Increment int
	// China is the increment of the China-specific build suffix ("c1"), zero otherwise.
	China int
}

// ParseEditorVersion parses an editor version string.
func ParseEditorVersion(s string) (EditorVersion, error) {
	m := editorVersionPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return EditorVersion{}, zerr.With(ErrInvalidEditorVersion, "version", s)
	}

	var ev EditorVersion
	ev.Major, _ = strconv.Atoi(m[1])
	ev.Minor, _ = strconv.Atoi(m[2])
	ev.Revision, _ = strconv.Atoi(m[3])
	ev.Type = m[4]
	if m[5] != "" {
		ev.Increment, _ = strconv.Atoi(m[5])
	}
	if m[6] != "" {
		ev.China, _ = strconv.Atoi(m[6])
	}
	return ev, nil
}

// ParseEditorVersionMarker extracts the editor version from ProjectVersion.txt content.
func ParseEditorVersionMarker(content string) (EditorVersion, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if rest, ok := strings.CutPrefix(line, editorVersionMarker); ok {
			return ParseEditorVersion(rest)
		}
	}
	return EditorVersion{}, ErrEditorVersionNotFound
}

// String formats the version the way the editor writes it.
func (e EditorVersion) String() string {
	s := fmt.Sprintf("%d.%d.%d", e.Major, e.Minor, e.Revision)
	if e.Type != "" {
		s += fmt.Sprintf("%s%d", e.Type, e.Increment)
	}
	if e.China > 0 {
		s += fmt.Sprintf("c%d", e.China)
	}
	return s
}

// AtLeast reports whether the editor is major.minor or newer.
func (e EditorVersion) AtLeast(major, minor int) bool {
	if e.Major != major {
		return e.Major > major
	}
	return e.Minor >= minor
}
