// Package trash implements deadwood's deletion/undo engine: selected
// findings are moved into a timestamped session directory under
// .deadwood_trash instead of being removed outright, and a
// manifest.json records their original locations so `deadwood undo`
// can restore them.
package trash

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ludo-technologies/deadwood/domain"
	"github.com/ludo-technologies/deadwood/internal/constants"
)

// Entry records one moved file's original and trashed location.
type Entry struct {
	OriginalPath string `json:"original_path"`
	TrashedPath  string `json:"trashed_path"`
}

// Manifest describes one `deadwood clean` session.
type Manifest struct {
	Session     string    `json:"session"`
	Root        string    `json:"root"`
	CreatedAt   time.Time `json:"created_at"`
	Entries     []Entry   `json:"entries"`
}

const manifestFileName = "manifest.json"

// Dir returns the trash directory for root.
func Dir(root string) string {
	return filepath.Join(root, constants.TrashDirName)
}

// sessionDir returns the directory for a given session under root's trash dir.
func sessionDir(root, session string) string {
	return filepath.Join(Dir(root), session)
}

// NewSessionID returns a filesystem-safe session identifier derived
// from the current time, unique to the second.
func NewSessionID() string {
	return time.Now().UTC().Format("20060102-150405")
}

// Move relocates each absolute path under root into a new trash
// session directory, preserving the path's location relative to root,
// and writes the session's manifest.json. It returns the session ID.
func Move(root string, paths []string) (string, error) {
	if len(paths) == 0 {
		return "", domain.NewInvalidInputError("no paths given to move to trash", nil)
	}

	session := NewSessionID()
	dir := sessionDir(root, session)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", domain.NewOutputError("failed to create trash session directory", err)
	}

	manifest := &Manifest{
		Session:   session,
		Root:      root,
		CreatedAt: time.Now().UTC(),
	}

	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	for _, path := range sorted {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return "", domain.NewInvalidInputError(fmt.Sprintf("path %s is not under root %s", path, root), err)
		}

		dest := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return "", domain.NewOutputError("failed to create trash destination directory", err)
		}
		if err := os.Rename(path, dest); err != nil {
			return "", domain.NewOutputError(fmt.Sprintf("failed to move %s to trash", path), err)
		}

		manifest.Entries = append(manifest.Entries, Entry{OriginalPath: path, TrashedPath: dest})
	}

	if err := writeManifest(dir, manifest); err != nil {
		return "", err
	}

	return session, nil
}

// Undo restores every entry of session back to its original location.
func Undo(root, session string) (*Manifest, error) {
	dir := sessionDir(root, session)
	manifest, err := readManifest(dir)
	if err != nil {
		return nil, err
	}

	for _, entry := range manifest.Entries {
		if err := os.MkdirAll(filepath.Dir(entry.OriginalPath), 0o755); err != nil {
			return nil, domain.NewOutputError("failed to recreate original directory", err)
		}
		if err := os.Rename(entry.TrashedPath, entry.OriginalPath); err != nil {
			return nil, domain.NewOutputError(fmt.Sprintf("failed to restore %s", entry.OriginalPath), err)
		}
	}

	if err := os.RemoveAll(dir); err != nil {
		return nil, domain.NewOutputError("failed to clean up trash session directory", err)
	}

	return manifest, nil
}

// ListSessions returns every session ID currently present under
// root's trash directory, most recent first.
func ListSessions(root string) ([]string, error) {
	entries, err := os.ReadDir(Dir(root))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, domain.NewOutputError("failed to list trash sessions", err)
	}

	var sessions []string
	for _, e := range entries {
		if e.IsDir() {
			sessions = append(sessions, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(sessions)))
	return sessions, nil
}

// LatestSession returns the most recently created session ID, or ""
// if no sessions exist.
func LatestSession(root string) (string, error) {
	sessions, err := ListSessions(root)
	if err != nil {
		return "", err
	}
	if len(sessions) == 0 {
		return "", nil
	}
	return sessions[0], nil
}

func writeManifest(dir string, manifest *Manifest) error {
	f, err := os.Create(filepath.Join(dir, manifestFileName))
	if err != nil {
		return domain.NewOutputError("failed to create trash manifest", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		return domain.NewOutputError("failed to write trash manifest", err)
	}
	return nil
}

func readManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewFileNotFoundError(filepath.Join(dir, manifestFileName), err)
		}
		return nil, domain.NewOutputError("failed to read trash manifest", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, domain.NewOutputError("failed to parse trash manifest", err)
	}
	return &manifest, nil
}
