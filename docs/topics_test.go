package docs

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Fenced blocks executed by TestCodeBlocks, in order of appearance:
//
//	bash setup     starts a new scenario in an empty data folder
//	bash run       its output is kept for the next console check
//	console check  the expected output of the last bash run
//	bash check     fails the test when it exits with an error
const (
	bashSetup    = "bash setup"
	bashRun      = "bash run"
	consoleCheck = "console check"
	bashCheck    = "bash check"
)

// testingNow is today for every example.
const testingNow = "2024-03-15"

// finDir holds the fin binary built by TestMain.
var finDir string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "fin-docs")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if out, err := exec.Command("go", "build", "-o", filepath.Join(dir, "fin"), "../fin/").CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "building fin: %v\n%s", err, out)
		os.RemoveAll(dir)
		os.Exit(1)
	}
	finDir = dir
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

// The index lists every topic, and only them.
func TestTopics(t *testing.T) {
	index, err := GetTopic("readme")
	if err != nil {
		t.Fatal(err)
	}
	var listed []string
	for _, m := range regexp.MustCompile(`(?m)^\*\s+([^:]+):`).FindAllStringSubmatch(index, -1) {
		listed = append(listed, strings.TrimSpace(m[1]))
	}
	slices.Sort(listed)

	topics, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(listed, topics) {
		t.Errorf("readme lists %v, want %v", listed, topics)
	}
	for _, topic := range listed {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("GetTopic(%q) error = %v", topic, err)
		}
	}
	if _, err := GetTopic("nothing"); err == nil {
		t.Errorf("GetTopic() found an unknown topic")
	}
}

func TestCodeBlocks(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range append(files, "../README.md") {
		t.Run(filepath.Base(file), func(t *testing.T) {
			content, err := os.ReadFile(file)
			if err != nil {
				t.Fatal(err)
			}
			s := scenario{env: append(os.Environ(),
				"PATH="+finDir+string(os.PathListSeparator)+os.Getenv("PATH"),
				"FINANCE_TESTING_NOW="+testingNow,
				"FIN_DATA=.",
			)}
			for _, b := range codeBlocks(content) {
				s.run(t, file, b)
			}
		})
	}
}

// block is a fenced code block to execute.
type block struct {
	kind string
	code string
	line int
}

// codeBlocks returns the executable blocks of a markdown document.
func codeBlocks(source []byte) []block {
	var blocks []block
	root := goldmark.DefaultParser().Parse(text.NewReader(source))
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		info := fcb.Info.Segment
		kind := string(info.Value(source))
		switch kind {
		case bashSetup, bashRun, consoleCheck, bashCheck:
		default:
			return ast.WalkContinue, nil
		}
		var code strings.Builder
		for i := range fcb.Lines().Len() {
			line := fcb.Lines().At(i)
			code.Write(line.Value(source))
		}
		line := 1 + strings.Count(string(source[:info.Start]), "\n")
		blocks = append(blocks, block{kind: kind, code: code.String(), line: line})
		return ast.WalkContinue, nil
	})
	return blocks
}

// scenario runs the blocks of a document in a data folder.
type scenario struct {
	env    []string
	dir    string
	output string // of the last bash run
}

func (s *scenario) run(t *testing.T, file string, b block) {
	t.Helper()
	if b.kind == consoleCheck {
		got := strings.ReplaceAll(strings.TrimSpace(s.output), "\t", "        ")
		if want := strings.TrimSpace(b.code); got != want {
			t.Errorf("%s:%d: output mismatch:\ngot:\n%s\nwant:\n%s", file, b.line, got, want)
		}
		return
	}
	if b.kind == bashSetup || s.dir == "" {
		s.dir = t.TempDir()
	}

	cmd := exec.Command("bash", "-c", "set -e; "+b.code)
	cmd.Dir, cmd.Env = s.dir, s.env
	out, err := cmd.CombinedOutput()
	if b.kind == bashRun {
		s.output = string(out)
	}
	switch {
	case err == nil:
	case b.kind == bashCheck:
		t.Errorf("%s:%d: check failed: %v\n%s", file, b.line, err, out)
	default:
		t.Fatalf("%s:%d: %s failed: %v\n%s", file, b.line, b.kind, err, out)
	}
}
