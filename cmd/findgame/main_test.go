package main

import "testing"

func TestHandleArgs(t *testing.T) {
	if !handleArgs(nil) {
		t.Fatal("expected no args to continue into the TUI")
	}
	if handleArgs([]string{"--version"}) {
		t.Fatal("expected --version to short-circuit")
	}
	if handleArgs([]string{"--help"}) {
		t.Fatal("expected --help to short-circuit")
	}
}
