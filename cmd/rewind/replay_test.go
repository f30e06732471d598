package main

import (
	"testing"

	"rewind/internal/writer"
)

func TestResolveTracePath(t *testing.T) {
	t.Setenv(writer.EnvPath, "")
	if got := resolveTracePath(nil); got != writer.DefaultPath {
		t.Errorf("default path = %q, want %q", got, writer.DefaultPath)
	}

	t.Setenv(writer.EnvPath, "env.trace")
	if got := resolveTracePath(nil); got != "env.trace" {
		t.Errorf("env path = %q, want env.trace", got)
	}

	// Явный аргумент побеждает переменную окружения
	if got := resolveTracePath([]string{"arg.trace"}); got != "arg.trace" {
		t.Errorf("explicit path = %q, want arg.trace", got)
	}
}
