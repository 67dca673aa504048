package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ProgressFileName is the fixed name of the state file inside the data dir.
const ProgressFileName = "progress.json"

// Store persists Progress. Save must write the whole state in one step.
type Store interface {
	Load(ctx context.Context) (*Progress, error)
	Save(ctx context.Context, p *Progress) error
}

// FileStore keeps Progress as a single JSON document.
type FileStore struct {
	path string
	now  func() time.Time
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

func (s *FileStore) Path() string { return s.path }

// progressFile mirrors Progress with optional fields so each missing key
// falls back to its own default.
type progressFile struct {
	Version  *int   `json:"version"`
	Level    *int   `json:"level"`
	XP       *int   `json:"xp"`
	XPNeeded *int   `json:"xp_needed"`
	Tasks    []Task `json:"tasks"`
}

// Load reads the state file. A missing file is a first run and yields
// defaults. Undecodable content is moved aside and reported as
// *CorruptStateError together with default progress.
func (s *FileStore) Load(ctx context.Context) (*Progress, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultProgress(), nil
		}
		return nil, fmt.Errorf("read progress: %w", err)
	}

	var raw progressFile
	if err := json.Unmarshal(data, &raw); err != nil {
		cerr := &CorruptStateError{Path: s.path, Err: err}
		preserved, qerr := s.quarantine()
		if qerr != nil {
			return nil, fmt.Errorf("preserve corrupt progress: %w", qerr)
		}
		cerr.PreservedAs = preserved
		return DefaultProgress(), cerr
	}

	return raw.progress(), nil
}

func (raw progressFile) progress() *Progress {
	p := DefaultProgress()
	p.Version = 0
	if raw.Version != nil {
		p.Version = *raw.Version
	}
	if raw.Level != nil {
		p.Level = *raw.Level
	}
	if raw.XP != nil {
		p.XP = *raw.XP
	}
	if raw.XPNeeded != nil {
		p.XPNeeded = *raw.XPNeeded
	}
	if raw.Tasks != nil {
		p.Tasks = raw.Tasks
	}
	upgrade(p)
	return p
}

// upgrade brings legacy or out-of-range values to the current schema.
func upgrade(p *Progress) {
	if p.Level < DefaultLevel {
		p.Level = DefaultLevel
	}
	if p.XP < 0 {
		p.XP = 0
	}
	if p.XPNeeded <= 0 {
		p.XPNeeded = DefaultXPNeeded
	}
	for i := range p.Tasks {
		// Version 0 files stored tasks without ids.
		if p.Tasks[i].ID == "" {
			p.Tasks[i].ID = uuid.NewString()
		}
		if p.Tasks[i].XPReward < 0 {
			p.Tasks[i].XPReward = 0
		}
		if p.Tasks[i].BossDamage < 0 {
			p.Tasks[i].BossDamage = 0
		}
	}
	p.Version = SchemaVersion
}

// Save writes to a temp file in the same directory and renames it over the
// state file, so readers never observe a partial write.
func (s *FileStore) Save(ctx context.Context, p *Progress) error {
	if p == nil {
		return errors.New("progress is nil")
	}
	out := p.Clone()
	out.Version = SchemaVersion
	if out.Tasks == nil {
		out.Tasks = []Task{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ProgressFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp progress: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write progress: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close progress: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace progress: %w", err)
	}
	committed = true
	return nil
}

// Backup copies the current state file next to itself with a .bak suffix.
// It is a no-op when there is nothing to back up.
func (s *FileStore) Backup() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read progress: %w", err)
	}
	dst := s.path + ".bak"
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return dst, nil
}

// quarantine moves the state file aside under a name no earlier quarantine
// used, so repeated corrupt loads within one second keep every copy.
func (s *FileStore) quarantine() (string, error) {
	base := fmt.Sprintf("%s.corrupt-%d", s.path, s.now().Unix())
	dst := base
	for i := 1; ; i++ {
		if _, err := os.Lstat(dst); errors.Is(err, fs.ErrNotExist) {
			break
		}
		dst = fmt.Sprintf("%s.%d", base, i)
	}
	if err := os.Rename(s.path, dst); err != nil {
		return "", err
	}
	return dst, nil
}
