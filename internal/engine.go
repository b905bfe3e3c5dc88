package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cfglab/condlint/internal/cfgexpr"
	"github.com/cfglab/condlint/internal/checker"
	"github.com/cfglab/condlint/internal/schema"
	tt "github.com/cfglab/condlint/internal/types"
	"github.com/fsnotify/fsnotify"
)

// Engine manages the cfg lint process for one schema snapshot. The schema
// is built before any checking starts and never mutated afterwards, so
// check runs are pure functions of (site, schema) and can run on worker
// goroutines.
type Engine struct {
	schema       *schema.Schema
	severities   map[string]tt.Severity
	ignoredRules map[string]bool
	ignoredPaths []string
	cache        *Cache

	watcher    *fsnotify.Watcher
	watchDirs  []string
	isWatching bool
}

var defaultSeverities = map[string]tt.Severity{
	checker.RuleUnexpectedName:  tt.SeverityWarning,
	checker.RuleUnexpectedValue: tt.SeverityWarning,
	checker.RuleMalformed:       tt.SeverityWarning,
}

// NewEngine creates a lint engine for the given schema.
func NewEngine(sch *schema.Schema, rules map[string]tt.ConfigRule) *Engine {
	engine := &Engine{schema: sch}
	engine.applyRules(rules)
	return engine
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) {
	e.severities = make(map[string]tt.Severity, len(defaultSeverities))
	for rule, severity := range defaultSeverities {
		e.severities[rule] = severity
	}
	for rule, cfg := range rules {
		if _, known := defaultSeverities[rule]; !known {
			// unknown rule, continue to the next one
			continue
		}
		if cfg.Severity == tt.SeverityOff {
			e.IgnoreRule(rule)
			continue
		}
		e.severities[rule] = cfg.Severity
	}
}

// Schema returns the engine's schema snapshot.
func (e *Engine) Schema() *schema.Schema {
	return e.schema
}

func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

func (e *Engine) IgnorePath(path string) {
	e.ignoredPaths = append(e.ignoredPaths, path)
}

func (e *Engine) isIgnoredPath(path string) bool {
	for _, p := range e.ignoredPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// EnableCache turns on the persistent result cache rooted at dir. Entries
// are keyed by file content hash and the schema fingerprint, so editing
// either the file or the config invalidates them.
func (e *Engine) EnableCache(dir string) error {
	cache, err := NewCache(dir, e.schema.Fingerprint())
	if err != nil {
		return fmt.Errorf("failed to enable cache: %w", err)
	}
	e.cache = cache
	return nil
}

// Run lints a single file and returns its issues sorted by position.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	if e.isIgnoredPath(filename) {
		return nil, nil
	}

	if e.cache != nil {
		if issues, ok := e.cache.Get(filename); ok {
			return issues, nil
		}
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filename, err)
	}

	issues := e.run(filename, src)
	if e.cache != nil {
		if err := e.cache.Set(filename, issues); err != nil {
			return issues, fmt.Errorf("failed to cache results for %s: %w", filename, err)
		}
	}
	return issues, nil
}

// RunSource lints in-memory source with no filename attached.
func (e *Engine) RunSource(source []byte) ([]tt.Issue, error) {
	return e.run("", source), nil
}

// run extracts every cfg site from src, checks the sites concurrently and
// merges the results. Each site check is internally ordered (pre-order,
// left to right); the final sort by position makes the cross-site order
// stable regardless of goroutine scheduling.
func (e *Engine) run(filename string, src []byte) []tt.Issue {
	sites := cfgexpr.ExtractSites(filename, src)
	if len(sites) == 0 {
		return nil
	}

	nolintMgr := parseNolintComments(src)

	var wg sync.WaitGroup
	var mu sync.Mutex

	var allIssues []tt.Issue
	for _, site := range sites {
		wg.Add(1)
		go func(site cfgexpr.Site) {
			defer wg.Done()
			issues := e.checkSite(filename, site)
			mu.Lock()
			allIssues = append(allIssues, issues...)
			mu.Unlock()
		}(site)
	}
	wg.Wait()

	allIssues = e.filterIgnoredRules(allIssues)
	allIssues = nolintMgr.filter(allIssues)
	SortIssues(allIssues)
	return allIssues
}

func (e *Engine) checkSite(filename string, site cfgexpr.Site) []tt.Issue {
	expr, err := site.Parse()
	if err != nil {
		return e.malformedIssue(filename, site, err)
	}

	issues := checker.Check(filename, expr, e.schema, tt.SeverityWarning)
	for i := range issues {
		if severity, ok := e.severities[issues[i].Rule]; ok {
			issues[i].Severity = severity
		}
	}
	return issues
}

func (e *Engine) malformedIssue(filename string, site cfgexpr.Site, err error) []tt.Issue {
	start := site.Start
	var perr *cfgexpr.ParseError
	if errors.As(err, &perr) {
		start = perr.Pos
	}
	end := start
	end.Column++
	end.Offset++

	return []tt.Issue{{
		Rule:     checker.RuleMalformed,
		Category: "conditional-compilation",
		Filename: filename,
		Message:  fmt.Sprintf("malformed cfg predicate: %s", errMessage(err)),
		Start:    start,
		End:      end,
		Severity: e.severities[checker.RuleMalformed],
	}}
}

// errMessage strips the position prefix a ParseError already carries; the
// issue renders the position itself.
func errMessage(err error) string {
	var perr *cfgexpr.ParseError
	if errors.As(err, &perr) {
		return perr.Msg
	}
	return err.Error()
}

func (e *Engine) filterIgnoredRules(issues []tt.Issue) []tt.Issue {
	if len(e.ignoredRules) == 0 {
		return issues
	}
	filtered := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		if !e.ignoredRules[issue.Rule] {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

// SortIssues orders issues by filename, then start position, then end
// position. Downstream consumers assert on total ordering, so this must be
// deterministic.
func SortIssues(issues []tt.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Start.Line != b.Start.Line {
			return a.Start.Line < b.Start.Line
		}
		if a.Start.Column != b.Start.Column {
			return a.Start.Column < b.Start.Column
		}
		if a.End.Line != b.End.Line {
			return a.End.Line < b.End.Line
		}
		return a.End.Column < b.End.Column
	})
}

// SourceCode stores the content of a linted file, split into lines for
// snippet rendering.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads the content of a file and returns it as a
// SourceCode struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	return &SourceCode{Lines: lines}, nil
}

// HasDesiredExtension reports whether path is a file condlint looks at.
func HasDesiredExtension(path string) bool {
	return filepath.Ext(path) == ".rs"
}
