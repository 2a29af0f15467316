// Package storage keeps viewer captures on disk: one directory per capture
// holding metadata.json, the encoded image and the agent states at the
// captured step.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/raycastview/internal/overlay"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type CaptureMetadata struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	World      int       `json:"world"`
	View       int       `json:"view"`
	Step       int       `json:"step"`
	Resolution int       `json:"resolution"`
	Scale      int       `json:"scale"`
	ExecMode   string    `json:"exec_mode"`
	Format     string    `json:"format"`
	Image      string    `json:"image"`
	Energy     float64   `json:"energy"`
}

// Save writes img and states under a fresh capture ID, filling in ID,
// Timestamp, Format and Image on meta. A failed save leaves no capture
// directory behind.
func (s *Store) Save(meta CaptureMetadata, img image.Image, f overlay.Format, states [][]float64) (id string, err error) {
	meta.ID = uuid.NewString()
	meta.Timestamp = time.Now()
	meta.Format = string(f)
	meta.Image = "image." + string(f)

	dir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(dir)
		}
	}()

	err = writeFile(filepath.Join(dir, meta.Image), func(w io.Writer) error {
		if err := overlay.Encode(w, img, f); err != nil {
			return fmt.Errorf("encoding capture: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	err = writeFile(filepath.Join(dir, "metadata.json"), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return "", err
	}

	err = writeFile(filepath.Join(dir, "states.csv"), func(w io.Writer) error {
		return writeStates(w, states)
	})
	if err != nil {
		return "", err
	}
	return meta.ID, nil
}

// writeFile creates path, runs fill and reports the first of the fill and
// close errors.
func writeFile(path string, fill func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fill(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func writeStates(out io.Writer, states [][]float64) error {
	w := csv.NewWriter(out)
	if len(states) > 0 {
		header := []string{"agent"}
		for i := range states[0] {
			header = append(header, fmt.Sprintf("x%d", i))
		}
		if err := w.Write(header); err != nil {
			return err
		}
	}
	for a, state := range states {
		row := []string{strconv.Itoa(a)}
		for _, v := range state {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable capture, oldest first.
func (s *Store) List() ([]CaptureMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []CaptureMetadata{}, nil
		}
		return nil, err
	}

	caps := make([]CaptureMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		caps = append(caps, *meta)
	}

	sort.Slice(caps, func(i, j int) bool { return caps[i].Timestamp.Before(caps[j].Timestamp) })
	return caps, nil
}

func (s *Store) Load(id string) (*CaptureMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta CaptureMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) ImagePath(meta *CaptureMetadata) string {
	return filepath.Join(s.baseDir, meta.ID, meta.Image)
}

func (s *Store) LoadStates(id string) ([][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "states.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, nil
	}

	states := make([][]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		state := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("states.csv: %w", err)
			}
			state = append(state, v)
		}
		states = append(states, state)
	}
	return states, nil
}
