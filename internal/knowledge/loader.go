package knowledge

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/colormebooth/go-chat-gateway/internal/domain"
)

// knowledgeFile is the on-disk TOML shape:
//
//	[[entries]]
//	id = "pricing-general"
//	category = "pricing"
//	question = "How much does ColorMe Booth cost?"
//	answer = "..."
//	event_types = ["wedding"]
//	keywords = ["price", "cost"]
type knowledgeFile struct {
	Entries []domain.KnowledgeBaseEntry `toml:"entries"`
}

// LoadFile parses a TOML knowledge file and returns its entries. Entries
// missing an id, question, or answer are rejected so a half-edited file
// never silently degrades the matcher.
func LoadFile(path string) ([]domain.KnowledgeBaseEntry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var kf knowledgeFile
	if err := toml.Unmarshal(b, &kf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i, e := range kf.Entries {
		if e.ID == "" || e.Question == "" || e.Answer == "" {
			return nil, fmt.Errorf("%s: entry %d missing id, question, or answer", path, i)
		}
	}
	return kf.Entries, nil
}

// Watch reloads the matcher's entries whenever the file at path changes.
// It returns a stop function that releases the watcher. Reload failures
// are logged and the previous entry set is kept.
//
// The parent directory is watched (not the file itself) because editors
// and config-map mounts typically replace the file via rename.
func Watch(path string, m *Matcher, log zerolog.Logger) (func() error, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}

	target := filepath.Clean(path)
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				entries, err := LoadFile(target)
				if err != nil {
					log.Warn().Err(err).Str("path", target).Msg("knowledge reload failed; keeping previous entries")
					continue
				}
				m.Replace(entries)
				log.Info().Str("path", target).Int("entries", len(entries)).Msg("knowledge base reloaded")
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("knowledge watcher error")
			}
		}
	}()

	return w.Close, nil
}
