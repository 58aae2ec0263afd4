package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/trellis/pkg/core"
)

// UpdateSnapshotsEnv names the environment variable that rewrites golden
// files instead of comparing them.
const UpdateSnapshotsEnv = "TRELLIS_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the laid out widget tree and the painted scene.
type Snapshot struct {
	Tree       *WidgetNode `json:"tree"`
	DisplayOps []DisplayOp `json:"displayOps,omitempty"`
}

// WidgetNode represents a widget in the serialized tree.
type WidgetNode struct {
	ID       string        `json:"id"`
	Type     string        `json:"type"`
	Size     [2]float64    `json:"size"`
	Origin   [2]float64    `json:"origin"`
	Baseline float64       `json:"baseline,omitempty"`
	Stashed  bool          `json:"stashed,omitempty"`
	Disabled bool          `json:"disabled,omitempty"`
	Children []*WidgetNode `json:"children,omitempty"`
}

// CaptureSnapshot lays out and paints the tree and captures the result.
func (h *Harness) CaptureSnapshot() *Snapshot {
	scene := h.Scene()
	counter := &typeCounter{}
	return &Snapshot{
		Tree:       h.captureNode(h.root.RootState(), counter),
		DisplayOps: serializeScene(scene),
	}
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When
// TRELLIS_UPDATE_SNAPSHOTS=1 is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateSnapshotsEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateSnapshotsEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateSnapshotsEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

// --- Internal ---

// typeCounter assigns stable IDs like "Flex#0", "Flex#1".
type typeCounter struct {
	counts map[string]int
}

func (c *typeCounter) next(typeName string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	n := c.counts[typeName]
	c.counts[typeName] = n + 1
	return fmt.Sprintf("%s#%d", typeName, n)
}

func (h *Harness) captureNode(s *core.WidgetState, counter *typeCounter) *WidgetNode {
	size, origin := s.Size(), s.Origin()
	node := &WidgetNode{
		ID:       counter.next(s.DebugName()),
		Type:     s.DebugName(),
		Size:     [2]float64{round2(size.Width), round2(size.Height)},
		Origin:   [2]float64{round2(origin.X), round2(origin.Y)},
		Baseline: round2(s.BaselineOffset()),
		Stashed:  s.IsStashed(),
		Disabled: s.IsDisabled(),
	}
	for _, id := range s.ChildIDs() {
		if child, ok := h.root.WidgetState(id); ok {
			node.Children = append(node.Children, h.captureNode(child, counter))
		}
	}
	return node
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	maxLen := max(len(expectedLines), len(actualLines))
	for i := 0; i < maxLen; i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e == a {
			continue
		}
		if i < len(expectedLines) {
			fmt.Fprintf(&buf, "-%s\n", e)
		}
		if i < len(actualLines) {
			fmt.Fprintf(&buf, "+%s\n", a)
		}
	}

	return buf.String()
}
