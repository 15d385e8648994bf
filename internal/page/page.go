// Package page implements the solution-block port over an HTML course page
// stored on disk.
//
// Visibility follows the inline-style convention of the course pages: a
// hidden block carries "display: none" in its style attribute; revealing it
// rewrites that declaration to "display: block". Before the first mutation
// the original page is copied into a backup directory, so a reveal is always
// reversible by restoring the backup.
package page

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Store is one parsed course page.
//
// Store is not safe for concurrent use; invocations against a page are
// strictly sequential.
type Store struct {
	path      string
	backupDir string // empty disables backups
	original  []byte
	doc       *html.Node
	backedUp  bool
}

// Load reads and parses the page at path. backupDir, when non-empty, names
// the directory (absolute or relative to the page's directory) that receives
// a one-time copy of the original page before the first mutation.
func Load(path string, backupDir string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse page %s: %w", filepath.Base(path), err)
	}
	if backupDir != "" && !filepath.IsAbs(backupDir) {
		backupDir = filepath.Join(filepath.Dir(path), backupDir)
	}
	return &Store{path: path, backupDir: backupDir, original: raw, doc: doc}, nil
}

// HasBlock reports whether the page contains an element with the given id.
func (s *Store) HasBlock(blockID string) bool {
	return findByID(s.doc, blockID) != nil
}

// Hidden reports whether the block exists and its inline style hides it.
func (s *Store) Hidden(blockID string) bool {
	n := findByID(s.doc, blockID)
	if n == nil {
		return false
	}
	return displayValue(attrValue(n, "style")) == "none"
}

// ShowBlock sets the block's inline display to "block" and writes the page
// back to disk. Showing an already visible block rewrites the same content.
func (s *Store) ShowBlock(blockID string) error {
	n := findByID(s.doc, blockID)
	if n == nil {
		return fmt.Errorf("no element with id %q in %s", blockID, filepath.Base(s.path))
	}
	setAttr(n, "style", setDisplay(attrValue(n, "style"), "block"))
	return s.save()
}

func (s *Store) save() error {
	if err := s.backupOnce(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, s.doc); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}

// backupOnce copies the pristine page into the backup directory. An existing
// backup is never overwritten, so the oldest copy survives repeated runs.
func (s *Store) backupOnce() error {
	if s.backupDir == "" || s.backedUp {
		return nil
	}
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}
	dst := filepath.Join(s.backupDir, filepath.Base(s.path))
	if _, err := os.Stat(dst); err == nil {
		s.backedUp = true
		return nil
	}
	if err := os.WriteFile(dst, s.original, 0o644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	s.backedUp = true
	return nil
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && attrValue(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// setDisplay replaces the display declaration of an inline style, keeping
// every other declaration intact.
func setDisplay(style, value string) string {
	out := make([]string, 0, 4)
	replaced := false
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		name, _, _ := strings.Cut(decl, ":")
		if strings.EqualFold(strings.TrimSpace(name), "display") {
			if !replaced {
				out = append(out, "display: "+value)
				replaced = true
			}
			continue
		}
		out = append(out, decl)
	}
	if !replaced {
		out = append(out, "display: "+value)
	}
	return strings.Join(out, "; ")
}

// displayValue extracts the display declaration from an inline style, or ""
// when absent.
func displayValue(style string) string {
	for _, decl := range strings.Split(style, ";") {
		name, val, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "display") {
			return strings.ToLower(strings.TrimSpace(val))
		}
	}
	return ""
}
