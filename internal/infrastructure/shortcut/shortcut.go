// Package shortcut creates launcher entries for workspace executables,
// so that tools installed inside a workspace can be invoked from outside
// its directory.
package shortcut

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Create places a shortcut at shortcutPath pointing at exePath. On unix
// platforms this is a symlink; on Windows a .bat wrapper script is
// written instead. When relative is true the link target is expressed
// relative to the shortcut's directory.
func Create(exePath, shortcutPath string, relative bool) (string, error) {
	target := exePath
	if relative {
		rel, err := filepath.Rel(filepath.Dir(shortcutPath), exePath)
		if err != nil {
			return "", fmt.Errorf("relativize %s: %w", exePath, err)
		}
		target = rel
	}

	if runtime.GOOS == "windows" {
		return CreateScript(target, shortcutPath)
	}

	if err := os.Symlink(target, shortcutPath); err != nil {
		return "", fmt.Errorf("create shortcut %s: %w", shortcutPath, err)
	}
	return shortcutPath, nil
}

// CreateScript writes a .bat wrapper that forwards all arguments to the
// target executable. The .bat extension is appended if missing. It is
// exported for platforms where symlinks are unavailable or undesirable.
func CreateScript(exePath, scriptPath string) (string, error) {
	if !strings.EqualFold(filepath.Ext(scriptPath), ".bat") {
		scriptPath += ".bat"
	}

	// Bare names would be resolved against PATH by cmd.exe; anchor
	// them to the script's directory instead.
	invocation := exePath
	if !strings.ContainsAny(invocation, `/\`) && !strings.HasPrefix(invocation, ".") {
		invocation = ".\\" + invocation
	}

	content := fmt.Sprintf("@echo off\r\nREM Shortcut to %s\r\n\r\n%s %%*\r\n", exePath, invocation)
	if err := os.WriteFile(scriptPath, []byte(content), 0o755); err != nil {
		return "", fmt.Errorf("write shortcut script %s: %w", scriptPath, err)
	}
	return scriptPath, nil
}
