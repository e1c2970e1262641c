package ui

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/kyaoi/artex/internal/preview"
)

type watcher struct {
	fs   *fsnotify.Watcher
	dir  string
	msgs chan tea.Msg
}

type fileEventMsg struct {
	path string
	op   fsnotify.Op
}

type fileWatchErrMsg struct {
	err error
}

func (m *Model) startWatching() tea.Cmd {
	if m.loader == nil {
		return nil
	}
	dir := filepath.Clean(m.loader.Dir())
	if m.watcher.fs != nil && m.watcher.dir == dir {
		return m.waitForFileEvent()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		m.err = err
		return nil
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		m.err = err
		return nil
	}

	m.watcher = watcher{fs: fsw, dir: dir, msgs: make(chan tea.Msg, 10)}
	go watchLoop(fsw, m.watcher.msgs)
	return m.waitForFileEvent()
}

func (m *Model) stopWatching() {
	if m.watcher.fs == nil {
		return
	}
	_ = m.watcher.fs.Close()
	m.watcher.fs = nil
}

func watchLoop(fsw *fsnotify.Watcher, out chan<- tea.Msg) {
	defer close(out)
	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}
			out <- fileEventMsg{path: event.Name, op: event.Op}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			out <- fileWatchErrMsg{err: err}
		}
	}
}

func (m *Model) waitForFileEvent() tea.Cmd {
	ch := m.watcher.msgs
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (m *Model) handleFileEvent(msg fileEventMsg) tea.Cmd {
	m.logger.Debug("directory changed", "path", msg.path, "op", msg.op.String())
	m.reloadEntries()
	return m.waitForFileEvent()
}

// reloadEntries re-lists the directory. When the selected entry is gone the
// preview slides forward to whatever took its place.
func (m *Model) reloadEntries() {
	if m.loader == nil {
		return
	}
	entries, err := m.loader.List()
	if err != nil {
		m.err = err
		m.logger.Warn("relist directory", "dir", m.loader.Dir(), "err", err)
		return
	}

	before, _ := m.cursor.Selected()
	m.cursor.Replace(entries)
	m.err = nil

	after, ok := m.cursor.Selected()
	if ok && after.Name != before.Name {
		m.showEntry(preview.Forward, after)
	}
}
