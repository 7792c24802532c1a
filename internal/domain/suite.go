// Package domain holds the suite tree and result types shared across the
// orchestrator: Suite, TestCase, TestGroup, and the run-level result shapes.
package domain

// SuiteKind identifies what a Suite node represents in the tree.
type SuiteKind string

const (
	SuiteKindRoot     SuiteKind = "root"
	SuiteKindProject  SuiteKind = "project"
	SuiteKindFile     SuiteKind = "file"
	SuiteKindDescribe SuiteKind = "describe"
)

// ParallelMode controls whether a suite's children may interleave with
// siblings on the same worker.
type ParallelMode string

const (
	ParallelModeDefault  ParallelMode = "default"
	ParallelModeParallel ParallelMode = "parallel"
	ParallelModeSerial   ParallelMode = "serial"
)

// HookType names the lifecycle point a Hook runs at.
type HookType string

const (
	HookBeforeAll  HookType = "beforeAll"
	HookAfterAll   HookType = "afterAll"
	HookBeforeEach HookType = "beforeEach"
	HookAfterEach  HookType = "afterEach"
)

// Hook is a single lifecycle callback attached to a Suite.
type Hook struct {
	Type HookType
}

// Location points at a source position, as reported by a FileCompiler.
type Location struct {
	File   string
	Line   int
	Column int
}

// Entry is either a *Suite or a *TestCase, preserving declaration order
// within a Suite's Entries slice.
type Entry struct {
	Suite *Suite
	Test  *TestCase
}

// IsSuite reports whether this entry wraps a Suite rather than a TestCase.
func (e Entry) IsSuite() bool { return e.Suite != nil }

// Suite is a node in the compiled test tree.
//
// Parent is a non-owning back-reference: Entries owns its children, Parent
// never does. Clone refreshes every descendant's Parent pointer after
// copying, since the clone is a new, independent tree.
type Suite struct {
	Kind         SuiteKind
	Title        string
	Location     *Location
	Entries      []Entry
	ParallelMode ParallelMode
	Hooks        []Hook
	Only         bool

	Parent *Suite

	// Project is set only on SuiteKindProject nodes.
	Project *ProjectRef
	// File is set only on SuiteKindFile nodes (and is propagated, for
	// convenience, to describe nodes created while compiling that file).
	File string
}

// ProjectRef is the subset of project identity a Suite needs; the full
// Project configuration lives in package config and is referenced by name
// here to avoid an import cycle between domain and config.
type ProjectRef struct {
	ID   string
	Name string
}

// NewSuite returns an empty Suite of the given kind and title.
func NewSuite(kind SuiteKind, title string) *Suite {
	return &Suite{Kind: kind, Title: title, ParallelMode: ParallelModeDefault}
}

// AddSuite appends a child suite, wiring its Parent pointer, and returns it.
func (s *Suite) AddSuite(child *Suite) *Suite {
	child.Parent = s
	s.Entries = append(s.Entries, Entry{Suite: child})
	return child
}

// AddTest appends a leaf test case, wiring its Parent pointer, and returns it.
func (s *Suite) AddTest(tc *TestCase) *TestCase {
	tc.Parent = s
	s.Entries = append(s.Entries, Entry{Test: tc})
	return tc
}

// HasHook reports whether this suite directly carries a hook of the given type.
func (s *Suite) HasHook(t HookType) bool {
	for _, h := range s.Hooks {
		if h.Type == t {
			return true
		}
	}
	return false
}

// AllTests returns every TestCase reachable from this suite, in source order.
func (s *Suite) AllTests() []*TestCase {
	var out []*TestCase
	for _, e := range s.Entries {
		if e.IsSuite() {
			out = append(out, e.Suite.AllTests()...)
		} else {
			out = append(out, e.Test)
		}
	}
	return out
}

// TitlePath returns the describe-chain titles leading to and including
// this suite, excluding root/project/file titles.
func (s *Suite) TitlePath() []string {
	return s.pathIncludingSelf()
}

// pathIncludingSelf walks up to the root, collecting only SuiteKindDescribe
// titles in ancestor-to-descendant order. nil-safe so callers can invoke it
// on a possibly-nil Parent.
func (s *Suite) pathIncludingSelf() []string {
	if s == nil {
		return nil
	}
	path := s.Parent.pathIncludingSelf()
	if s.Kind == SuiteKindDescribe {
		path = append(path, s.Title)
	}
	return path
}

// Clone deep-copies the suite subtree, refreshing Parent back-references.
// TestCase.Parent is also refreshed to point into the cloned tree.
func (s *Suite) Clone() *Suite {
	clone := &Suite{
		Kind:         s.Kind,
		Title:        s.Title,
		Location:     s.Location,
		ParallelMode: s.ParallelMode,
		Hooks:        append([]Hook(nil), s.Hooks...),
		Only:         s.Only,
		Project:      s.Project,
		File:         s.File,
	}
	clone.Entries = make([]Entry, 0, len(s.Entries))
	for _, e := range s.Entries {
		if e.IsSuite() {
			childClone := e.Suite.Clone()
			childClone.Parent = clone
			clone.Entries = append(clone.Entries, Entry{Suite: childClone})
		} else {
			tcClone := e.Test.clone()
			tcClone.Parent = clone
			clone.Entries = append(clone.Entries, Entry{Test: tcClone})
		}
	}
	return clone
}
