package async

import "testing"

func TestTokenLiveUntilSuperseded(t *testing.T) {
	var gate Gate

	first := gate.Next()
	if !first.Live() {
		t.Fatal("fresh token must be live")
	}

	second := gate.Next()
	if first.Live() {
		t.Fatal("superseded token must be dead")
	}
	if !second.Live() {
		t.Fatal("latest token must be live")
	}
}

func TestCancelKillsOutstandingTokens(t *testing.T) {
	var gate Gate

	tok := gate.Next()
	gate.Cancel()
	if tok.Live() {
		t.Fatal("cancelled token must be dead")
	}

	if !gate.Next().Live() {
		t.Fatal("gate must keep issuing live tokens after cancel")
	}
}

func TestZeroTokenIsDead(t *testing.T) {
	var tok Token
	if tok.Live() {
		t.Fatal("zero token must never be live")
	}
}
