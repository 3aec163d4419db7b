package content

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
)

// ErrNotFound is returned when the manifest or a scheda file does not exist.
var ErrNotFound = errors.New("content not found")

// ManifestFile is the manifest's file name within a content directory.
const ManifestFile = "manifest.json"

//go:embed data/*.json
var embedded embed.FS

// Embedded returns the sample content bundled with the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(fmt.Sprintf("content: embedded data: %v", err))
	}
	return sub
}

// Dir returns the content stored in dir, or the embedded content when dir
// is empty.
func Dir(dir string) fs.FS {
	if dir == "" {
		return Embedded()
	}
	return os.DirFS(dir)
}

// SchedaFile returns the file name holding scheda id.
func SchedaFile(id string) string {
	return "scheda-" + id + ".json"
}

// Loader reads the manifest and schede from a file system. Decoded files
// are cached for the lifetime of the Loader.
type Loader struct {
	fsys fs.FS

	mu       sync.Mutex
	manifest *Manifest
	schede   map[string]*Scheda
}

// NewLoader creates a Loader reading from fsys.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{
		fsys:   fsys,
		schede: make(map[string]*Scheda),
	}
}

// Manifest returns the catalog, loading it on first use.
func (l *Loader) Manifest() (*Manifest, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.manifest != nil {
		return l.manifest, nil
	}

	data, err := l.read(ManifestFile)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	l.manifest = &m
	return l.manifest, nil
}

// Scheda returns scheda id, loading it on first use. Exercises with
// unknown types or missing structure fail the whole load with
// exercise.ErrMalformed.
func (l *Loader) Scheda(id string) (*Scheda, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if s, ok := l.schede[id]; ok {
		return s, nil
	}

	data, err := l.readScheda(id)
	if err != nil {
		return nil, err
	}
	var s Scheda
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode scheda %q: %w", id, err)
	}
	l.schede[id] = &s
	return &s, nil
}

// Exists reports whether a data file for scheda id is present.
func (l *Loader) Exists(id string) bool {
	if !validID(id) {
		return false
	}
	_, err := fs.Stat(l.fsys, SchedaFile(id))
	return err == nil
}

// RawManifest returns the undecoded manifest file.
func (l *Loader) RawManifest() ([]byte, error) {
	return l.read(ManifestFile)
}

// RawScheda returns the undecoded file of scheda id.
func (l *Loader) RawScheda(id string) ([]byte, error) {
	return l.readScheda(id)
}

func (l *Loader) readScheda(id string) ([]byte, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: scheda %q", ErrNotFound, id)
	}
	data, err := l.read(SchedaFile(id))
	if err != nil {
		return nil, fmt.Errorf("scheda %q: %w", id, err)
	}
	return data, nil
}

func (l *Loader) read(name string) ([]byte, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\`) && fs.ValidPath(SchedaFile(id))
}
