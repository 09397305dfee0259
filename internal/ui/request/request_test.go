package request

import (
	"errors"
	"strings"
	"testing"
)

func TestParseBareActions(t *testing.T) {
	cases := map[string]Action{
		"play":          ActionPlay,
		"setup":         ActionSetup,
		"exit":          ActionExit,
		"start_update":  ActionStartUpdate,
		"cancel_update": ActionCancelUpdate,
		"reset_cache":   ActionResetCache,
		"manual_patch":  ActionManualPatch,
	}
	for raw, want := range cases {
		req, err := Parse(raw)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", raw, err)
		}
		if req.Action != want || req.Function != FunctionNone {
			t.Fatalf("%s: got action %v function %v", raw, req.Action, req.Function)
		}
		if req.Action.String() != raw {
			t.Fatalf("%s: String() returned %q", raw, req.Action.String())
		}
		if req.ID == "" {
			t.Fatalf("%s: expected request id", raw)
		}
	}
}

func TestParseIsCaseSensitive(t *testing.T) {
	if _, err := Parse("Play"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestParseFunctionRequest(t *testing.T) {
	req, err := Parse(`{"function":"open_url","parameters":{"url":"https://example.com"}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Function != FunctionOpenURL || req.Action != ActionNone {
		t.Fatalf("unexpected request %+v", req)
	}
	if !strings.Contains(string(req.Parameters), "example.com") {
		t.Fatalf("parameters not preserved: %s", req.Parameters)
	}
}

func TestParseUnknownFunction(t *testing.T) {
	_, err := Parse(`{"function":"logn","parameters":{}}`)
	if !errors.Is(err, ErrUnknownFunction) {
		t.Fatalf("expected ErrUnknownFunction, got %v", err)
	}
	if !strings.Contains(err.Error(), "'logn'") {
		t.Fatalf("expected function name in error, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "did you mean 'login'") {
		t.Fatalf("expected suggestion, got %q", err.Error())
	}
}

func TestParseMalformed(t *testing.T) {
	cases := []string{"", "bogus", "{", `{"parameters":{}}`, `["play"]`}
	for _, raw := range cases {
		if _, err := Parse(raw); !errors.Is(err, ErrMalformed) {
			t.Fatalf("%q: expected ErrMalformed, got %v", raw, err)
		}
	}
}

func TestParseMalformedSuggestsAction(t *testing.T) {
	_, err := Parse("start_updte")
	if err == nil || !strings.Contains(err.Error(), "start_update") {
		t.Fatalf("expected suggestion for start_update, got %v", err)
	}
}

func TestEncodeProducesParsableRequest(t *testing.T) {
	raw, err := Encode(FunctionLogin, map[string]string{"login": "alice", "password": "p"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	req, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse %s: %v", raw, err)
	}
	var params LoginParameters
	if err := decodeParameters(req.Parameters, &params); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if *params.Login != "alice" || *params.Password != "p" {
		t.Fatalf("unexpected params %q %q", *params.Login, *params.Password)
	}
}

func TestEncodeRejectsUnknownFunction(t *testing.T) {
	if _, err := Encode(FunctionNone, nil); !errors.Is(err, ErrUnknownFunction) {
		t.Fatalf("expected ErrUnknownFunction, got %v", err)
	}
}

func TestDecodeParameters(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"complete", `{"login":"a","password":"b"}`, true},
		{"empty strings", `{"login":"","password":""}`, true},
		{"extra fields", `{"login":"a","password":"b","remember":true}`, true},
		{"missing password", `{"login":"a"}`, false},
		{"wrong type", `{"login":1,"password":"b"}`, false},
		{"null", `null`, false},
		{"absent", ``, false},
	}
	for _, tc := range cases {
		var params LoginParameters
		err := decodeParameters([]byte(tc.raw), &params)
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidParameters) {
			t.Fatalf("%s: expected ErrInvalidParameters, got %v", tc.name, err)
		}
	}
}

func TestLoginArguments(t *testing.T) {
	got := LoginArguments("alice", "p@ss", []string{"x"})
	want := []string{"-t:p@ss", "alice", "server", "x"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := LoginArguments("", "", nil); len(got) != 3 || got[0] != "-t:" {
		t.Fatalf("unexpected args for empty credentials %q", got)
	}
}
