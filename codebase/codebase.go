// Package codebase keeps an in-memory index of the LeekScript files under a
// root directory, and serves it over the Language Server Protocol.
package codebase

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/leek/config"
	"github.com/dhamidi/leek/leekscript/parser"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("leek.codebase")

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	config  *config.Config
	files   map[string]*FileInfo
}

// FileInfo is the parse result of one file. File may be partial when
// ParseErr is set.
type FileInfo struct {
	Path     string
	Content  []byte
	File     *parser.File
	ParseErr error
	Symbols  []Symbol
}

// Diagnostic returns the parse failure position and message, if any.
func (f *FileInfo) Diagnostic() (*parser.Error, bool) {
	var perr *parser.Error
	if errors.As(f.ParseErr, &perr) {
		return perr, true
	}
	return nil, false
}

func New(rootDir string, cfg *config.Config) *Codebase {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Codebase{
		rootDir: rootDir,
		config:  cfg,
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// ScanAll parses every LeekScript file below the root, skipping hidden
// directories.
func (c *Codebase) ScanAll() error {
	return filepath.Walk(c.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != c.rootDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if c.config.HasExtension(path) {
			if err := c.ScanFile(path); err != nil {
				log.Warningf("scan %s: %s", path, err)
			}
		}
		return nil
	})
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.UpdateFile(path, content)
}

// UpdateFile reparses path from content. A parse failure is recorded in the
// FileInfo, not returned.
func (c *Codebase) UpdateFile(path string, content []byte) error {
	info := c.parse(path, content)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = info
	return nil
}

func (c *Codebase) parse(path string, content []byte) *FileInfo {
	f, err := parser.ParseFile(string(content),
		parser.WithFile(path),
		parser.WithMaxDepth(c.config.Parser.MaxDepth),
	)
	if err != nil {
		log.Debugf("parse %s: %s", path, err)
	} else {
		log.Debugf("parsed %s (%d statements)", path, len(f.Statements))
	}
	return &FileInfo{
		Path:     path,
		Content:  content,
		File:     f,
		ParseErr: err,
		Symbols:  ExtractSymbols(path, f),
	}
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Paths returns the indexed paths in sorted order.
func (c *Codebase) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Symbols returns every symbol whose name contains query, ignoring case.
// An empty query matches everything.
func (c *Codebase) Symbols(query string) []Symbol {
	query = strings.ToLower(query)
	var out []Symbol
	for _, path := range c.Paths() {
		f := c.GetFile(path)
		if f == nil {
			continue
		}
		for _, sym := range Flatten(f.Symbols) {
			if strings.Contains(strings.ToLower(sym.Name), query) {
				out = append(out, sym)
			}
		}
	}
	return out
}

// Errors returns the files that failed to parse, sorted by path.
func (c *Codebase) Errors() []*FileInfo {
	var out []*FileInfo
	for _, path := range c.Paths() {
		if f := c.GetFile(path); f != nil && f.ParseErr != nil {
			out = append(out, f)
		}
	}
	return out
}
