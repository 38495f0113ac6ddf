package completion

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"
)

// Manager generates a completion script for one shell and saves it into the
// shell's user completion directory.
type Manager struct {
	Shell       string
	ProgramName string
	Paths       Paths
	fs          afero.Fs
	generator   Generator
	script      string
}

// NewManager creates a manager writing through fs into the completion
// directories below home.
func NewManager(fs afero.Fs, shell, programName, home string) (*Manager, error) {
	shell = strings.ToLower(shell)
	generator, err := GeneratorFor(shell)
	if err != nil {
		return nil, err
	}

	paths, err := PathsFor(runtime.GOOS, home, shell)
	if err != nil {
		return nil, fmt.Errorf("failed to get completion paths: %w", err)
	}

	return &Manager{
		Shell:       shell,
		ProgramName: filepath.Base(programName),
		Paths:       paths,
		fs:          fs,
		generator:   generator,
	}, nil
}

// Accept generates and stores the completion script from the provided data.
func (m *Manager) Accept(data Data) {
	m.script = m.generator.Generate(m.ProgramName, data)
}

// Script returns the script generated by the last Accept.
func (m *Manager) Script() string {
	return m.script
}

// Save writes the previously generated script and returns the file path.
func (m *Manager) Save() (string, error) {
	if m.script == "" {
		return "", ErrNoCompletionScript
	}

	dir, err := m.ensureCompletionPath()
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, m.fileName())
	if err := afero.WriteFile(m.fs, path, []byte(m.script), 0644); err != nil {
		return "", fmt.Errorf("failed to write completion file: %w", err)
	}

	return path, ensurePermission(m.fs, path, 0644)
}

func (m *Manager) ensureCompletionPath() (string, error) {
	perm := os.FileMode(0755)
	err := m.fs.MkdirAll(m.Paths.Primary, perm)
	if err == nil {
		err = ensurePermission(m.fs, m.Paths.Primary, perm)
	}
	if err == nil {
		return m.Paths.Primary, nil
	}

	if m.Paths.Fallback == "" {
		return "", ErrCompletionPath.WithArgs(m.Paths.Primary).Wrap(err)
	}

	if err := m.fs.MkdirAll(m.Paths.Fallback, perm); err != nil {
		return "", ErrCompletionPath.WithArgs(m.Paths.Fallback).Wrap(err)
	}

	return m.Paths.Fallback, ensurePermission(m.fs, m.Paths.Fallback, perm)
}

func (m *Manager) fileName() string {
	prefix := ""
	if m.Shell == "zsh" {
		// zsh autoloads completion functions named after the file
		prefix = "_"
	}

	return prefix + m.ProgramName + m.Paths.Extension
}
