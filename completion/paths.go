package completion

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
)

// Paths holds the directories a completion script may be installed into.
type Paths struct {
	Primary   string // Main completion path
	Fallback  string // Alternative path if primary isn't available
	Extension string // File extension for completion script (if any)
	Comment   string // Documentation about the path choice
}

func ensurePermission(fs afero.Fs, path string, perm os.FileMode) error {
	info, err := fs.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	if runtime.GOOS == "windows" {
		return nil
	}

	actualPerm := info.Mode().Perm()
	if actualPerm != perm {
		if err := fs.Chmod(path, perm); err != nil {
			return fmt.Errorf("failed to set permissions on %s from %o to %o: %w",
				path, actualPerm, perm, err)
		}
	}

	return nil
}

var isPowerShellCore = func() bool {
	_, err := exec.LookPath("pwsh")
	return err == nil
}

func getWindowsPaths(home, shell string) (Paths, error) {
	switch shell {
	case "powershell":
		if isPowerShellCore() {
			return Paths{
				Primary:   filepath.Join(home, "Documents", "PowerShell", "Completions"),
				Fallback:  filepath.Join(home, ".config", "powershell", "Completions"),
				Extension: ".ps1",
				Comment:   "PowerShell Core user completions directory",
			}, nil
		}
		return Paths{
			Primary:   filepath.Join(home, "Documents", "WindowsPowerShell", "Completions"),
			Fallback:  filepath.Join(home, ".config", "WindowsPowerShell", "Completions"),
			Extension: ".ps1",
			Comment:   "Windows PowerShell user completions directory",
		}, nil

	case "bash":
		return Paths{
			Primary:   filepath.Join(home, ".local", "share", "bash-completion", "completions"),
			Fallback:  filepath.Join(home, ".bash_completion.d"),
			Extension: "",
			Comment:   "Git Bash user completions directory",
		}, nil

	case "zsh":
		return Paths{
			Primary:   filepath.Join(home, ".zsh", "completion"),
			Fallback:  filepath.Join(home, ".zfunc"),
			Extension: "",
			Comment:   "Zsh user completions directory (WSL/Cygwin)",
		}, nil

	case "fish":
		return Paths{
			Primary:   filepath.Join(home, ".config", "fish", "completions"),
			Fallback:  filepath.Join(home, ".local", "share", "fish", "completions"),
			Extension: ".fish",
			Comment:   "Fish user completions directory",
		}, nil

	default:
		return Paths{}, ErrUnsupportedShell.WithArgs(shell)
	}
}

func getDarwinPaths(home, shell string) (Paths, error) {
	switch shell {
	case "bash":
		return Paths{
			Primary:   filepath.Join(home, ".local", "share", "bash-completion", "completions"),
			Fallback:  filepath.Join(home, ".bash_completion.d"),
			Extension: "",
			Comment:   "User-local bash completions, compatible with bash-completion@2",
		}, nil

	case "zsh":
		return Paths{
			Primary:   filepath.Join(home, ".zsh", "completion"),
			Fallback:  filepath.Join(home, ".zfunc"),
			Extension: "",
			Comment:   "User-local zsh completions directory",
		}, nil

	case "fish":
		return Paths{
			Primary:   filepath.Join(home, ".config", "fish", "completions"),
			Fallback:  filepath.Join(home, ".local", "share", "fish", "completions"),
			Extension: ".fish",
			Comment:   "Fish user completions directory",
		}, nil

	case "powershell":
		return Paths{
			Primary:   filepath.Join(home, "Library", "PowerShell", "Completions"),
			Fallback:  filepath.Join(home, ".config", "powershell", "Completions"),
			Extension: ".ps1",
			Comment:   "PowerShell Core user completions directory",
		}, nil

	default:
		return Paths{}, ErrUnsupportedShell.WithArgs(shell)
	}
}

func getLinuxPaths(home, shell string) (Paths, error) {
	switch shell {
	case "bash":
		return Paths{
			Primary:   filepath.Join(home, ".local", "share", "bash-completion", "completions"),
			Fallback:  filepath.Join(home, ".bash_completion.d"),
			Extension: "",
			Comment:   "XDG-compatible user-local bash completions directory",
		}, nil

	case "zsh":
		return Paths{
			Primary:   filepath.Join(home, ".zsh", "completion"),
			Fallback:  filepath.Join(home, ".zfunc"),
			Extension: "",
			Comment:   "User-local zsh completions directory",
		}, nil

	case "fish":
		return Paths{
			Primary:   filepath.Join(home, ".config", "fish", "completions"),
			Fallback:  filepath.Join(home, ".local", "share", "fish", "completions"),
			Extension: ".fish",
			Comment:   "Fish user completions directory",
		}, nil

	case "powershell":
		return Paths{
			Primary:   filepath.Join(home, ".config", "powershell", "Completions"),
			Fallback:  filepath.Join(home, ".local", "share", "powershell", "Completions"),
			Extension: ".ps1",
			Comment:   "PowerShell Core user completions directory",
		}, nil

	default:
		return Paths{}, ErrUnsupportedShell.WithArgs(shell)
	}
}

// PathsFor returns the completion directories of shell for a user whose home
// directory is home on the operating system goos.
func PathsFor(goos, home, shell string) (Paths, error) {
	if home == "" {
		return Paths{}, ErrCompletionPath.WithArgs(home)
	}

	switch goos {
	case "windows":
		return getWindowsPaths(home, shell)
	case "darwin":
		return getDarwinPaths(home, shell)
	default:
		return getLinuxPaths(home, shell)
	}
}
