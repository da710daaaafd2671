package scanner_test

import (
	"reflect"
	"testing"

	"github.com/spf13/afero"

	"voicesort/pkg/protocol"
	"voicesort/pkg/scanner"
)

func seed(t *testing.T, fs afero.Fs, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if err := afero.WriteFile(fs, p, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
}

func roots(paths ...string) []protocol.InputRoot {
	rs := make([]protocol.InputRoot, len(paths))
	for i, p := range paths {
		rs[i] = protocol.InputRoot{Path: p, Enabled: true}
	}
	return rs
}

func TestScanFlat(t *testing.T) {
	fs := afero.NewMemMapFs()
	seed(t, fs,
		"/in/b.mp3",
		"/in/a.wav",
		"/in/notes.txt",
		"/in/sub/deep.wav",
	)
	s := scanner.New(fs, scanner.Options{})

	got := s.Scan(roots("/in"), false)
	want := []string{"/in/a.wav", "/in/b.mp3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("scan = %v, want %v", got, want)
	}
}

func TestScanRecursive(t *testing.T) {
	fs := afero.NewMemMapFs()
	seed(t, fs,
		"/in/a.wav",
		"/in/sub/deep.flac",
		"/in/sub/skip.txt",
	)
	s := scanner.New(fs, scanner.Options{})

	got := s.Scan(roots("/in"), true)
	want := []string{"/in/a.wav", "/in/sub/deep.flac"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("scan = %v, want %v", got, want)
	}
}

func TestScanSkipsStagingDirs(t *testing.T) {
	fs := afero.NewMemMapFs()
	seed(t, fs,
		"/in/a.wav",
		"/in/"+protocol.ExcludeDirName+"/gone.wav",
		"/in/"+protocol.DeferDirName+"/later.wav",
		"/in/sub/"+protocol.DeferDirName+"/nested.wav",
	)
	s := scanner.New(fs, scanner.Options{})

	got := s.Scan(roots("/in"), true)
	if !reflect.DeepEqual(got, []string{"/in/a.wav"}) {
		t.Errorf("scan = %v, want only /in/a.wav", got)
	}
}

func TestScanSkipsDisabledAndDoneRoots(t *testing.T) {
	fs := afero.NewMemMapFs()
	seed(t, fs, "/off/a.wav", "/done/b.wav", "/on/c.wav")
	s := scanner.New(fs, scanner.Options{})

	rs := []protocol.InputRoot{
		{Path: "/off", Enabled: false},
		{Path: "/done", Enabled: true, Done: true},
		{Path: "/on", Enabled: true},
	}
	got := s.Scan(rs, false)
	if !reflect.DeepEqual(got, []string{"/on/c.wav"}) {
		t.Errorf("scan = %v, want only /on/c.wav", got)
	}
}

func TestScanDeduplicatesOverlappingRoots(t *testing.T) {
	fs := afero.NewMemMapFs()
	seed(t, fs, "/in/sub/a.wav")
	s := scanner.New(fs, scanner.Options{})

	got := s.Scan(roots("/in", "/in/sub"), true)
	if !reflect.DeepEqual(got, []string{"/in/sub/a.wav"}) {
		t.Errorf("scan = %v, want single occurrence", got)
	}
}

func TestScanMissingRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := scanner.New(fs, scanner.Options{})

	if got := s.Scan(roots("/nope"), false); len(got) != 0 {
		t.Errorf("scan of missing root = %v, want empty", got)
	}
}

func TestScanSniffRejectsMislabeled(t *testing.T) {
	fs := afero.NewMemMapFs()
	// A real RIFF/WAVE header versus plain text with a .wav extension.
	wav := append([]byte("RIFF\x24\x00\x00\x00WAVE"), make([]byte, 300)...)
	if err := afero.WriteFile(fs, "/in/real.wav", wav, 0o644); err != nil {
		t.Fatal(err)
	}
	seed(t, fs, "/in/fake.wav")
	s := scanner.New(fs, scanner.Options{Sniff: true})

	got := s.Scan(roots("/in"), false)
	if !reflect.DeepEqual(got, []string{"/in/real.wav"}) {
		t.Errorf("scan = %v, want only /in/real.wav", got)
	}
}
