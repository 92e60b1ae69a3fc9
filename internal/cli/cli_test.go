package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zkeep/internal/clipboard"
	"github.com/zarlcorp/zkeep/internal/config"
	"github.com/zarlcorp/zkeep/internal/password"
	"github.com/zarlcorp/zkeep/internal/store"
)

type fixedGen string

func (g fixedGen) Generate() string { return string(g) }

func newTestEnv(t *testing.T) (*Env, *bytes.Buffer, *clipboard.Recorder) {
	t.Helper()
	var out bytes.Buffer
	clip := &clipboard.Recorder{}
	env := &Env{
		Config: config.Config{Form: config.FormConfig{DefaultEmail: "me@example.com"}},
		Store:  store.Open(zfilesystem.NewMemFS(), store.DefaultFile),
		Gen:    fixedGen("Ab3$Cd4%EfGh"),
		Clip:   clip,
		Out:    &out,
		Err:    &bytes.Buffer{},
		ReadPassword: func(string) (string, error) {
			return "typed-secret", nil
		},
	}
	return env, &out, clip
}

func TestHasFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		flag string
		want bool
	}{
		{"present", []string{"--json", "--generate"}, "--json", true},
		{"absent", []string{"--generate"}, "--json", false},
		{"empty", nil, "--json", false},
		{"case insensitive", []string{"--JSON"}, "--json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hasFlag(tt.args, tt.flag)
			if got != tt.want {
				t.Errorf("hasFlag(%v, %s) = %v, want %v", tt.args, tt.flag, got, tt.want)
			}
		})
	}
}

func TestPositional(t *testing.T) {
	got := positional([]string{"--json", "example.com", "--generate", "a@b.com"})
	if len(got) != 2 || got[0] != "example.com" || got[1] != "a@b.com" {
		t.Errorf("positional = %v", got)
	}
}

func TestGenerate(t *testing.T) {
	env, out, clip := newTestEnv(t)

	if err := CmdGenerate(env, nil); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if strings.TrimSpace(out.String()) != "Ab3$Cd4%EfGh" {
		t.Errorf("output = %q", out.String())
	}
	if clip.Last != "Ab3$Cd4%EfGh" {
		t.Errorf("clipboard = %q", clip.Last)
	}
}

func TestGenerateNoClipboard(t *testing.T) {
	env, _, clip := newTestEnv(t)

	if err := CmdGenerate(env, []string{"--no-clipboard"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if clip.Count != 0 {
		t.Errorf("clipboard written %d times, want 0", clip.Count)
	}
}

func TestGenerateVerbose(t *testing.T) {
	env, _, _ := newTestEnv(t)
	env.Gen = password.New()
	errOut := &bytes.Buffer{}
	env.Err = errOut

	if err := CmdGenerate(env, []string{"--verbose", "--no-clipboard"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(errOut.String(), "letters") {
		t.Errorf("verbose output = %q", errOut.String())
	}
}

func TestAddAndFind(t *testing.T) {
	env, out, _ := newTestEnv(t)

	if err := CmdAdd(env, []string{"example.com", "a@b.com"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	out.Reset()
	if err := CmdFind(env, []string{"example.com"}); err != nil {
		t.Fatalf("find: %v", err)
	}

	s := out.String()
	if !strings.Contains(s, "a@b.com") || !strings.Contains(s, "typed-secret") {
		t.Errorf("find output = %q", s)
	}
}

func TestAddDefaultEmailAndGenerate(t *testing.T) {
	env, _, clip := newTestEnv(t)

	if err := CmdAdd(env, []string{"example.com", "--generate"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	r, err := env.Store.Find("example.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if r.Email != "me@example.com" {
		t.Errorf("email = %q, want configured default", r.Email)
	}
	if r.Password != "Ab3$Cd4%EfGh" {
		t.Errorf("password = %q, want generated", r.Password)
	}
	if clip.Last != "Ab3$Cd4%EfGh" {
		t.Errorf("clipboard = %q", clip.Last)
	}
}

func TestAddEmptyPassword(t *testing.T) {
	env, _, _ := newTestEnv(t)
	env.ReadPassword = func(string) (string, error) { return "", nil }

	err := CmdAdd(env, []string{"example.com", "a@b.com"})
	if err == nil || !strings.Contains(err.Error(), "required") {
		t.Fatalf("add: got %v, want required fields error", err)
	}
	if env.Store.Exists() {
		t.Error("rejected add created the data file")
	}
}

func TestAddUsage(t *testing.T) {
	env, _, _ := newTestEnv(t)
	if err := CmdAdd(env, nil); err == nil {
		t.Fatal("expected usage error")
	}
}

func TestFindJSON(t *testing.T) {
	env, out, _ := newTestEnv(t)
	if err := env.Store.Save("example.com", "a@b.com", "Xx1!2345"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := CmdFind(env, []string{"example.com", "--json"}); err != nil {
		t.Fatalf("find: %v", err)
	}

	var got jsonRecord
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := jsonRecord{Website: "example.com", Email: "a@b.com", Password: "Xx1!2345"}
	if got != want {
		t.Errorf("find json = %+v, want %+v", got, want)
	}
}

func TestFindErrors(t *testing.T) {
	env, _, _ := newTestEnv(t)

	if err := CmdFind(env, []string{"example.com"}); !errors.Is(err, store.ErrStoreMissing) {
		t.Errorf("find before save: got %v, want ErrStoreMissing", err)
	}

	if err := env.Store.Save("known.com", "a@b.com", "pw"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := CmdFind(env, []string{"unknown.com"}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("find unknown: got %v, want ErrNotFound", err)
	}
}

func TestList(t *testing.T) {
	env, out, _ := newTestEnv(t)

	if err := CmdList(env, nil); err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if !strings.Contains(out.String(), "no saved websites") {
		t.Errorf("empty list output = %q", out.String())
	}

	for _, w := range []string{"b.com", "a.com"} {
		if err := env.Store.Save(w, "me@"+w, "pw"); err != nil {
			t.Fatalf("seed %s: %v", w, err)
		}
	}

	out.Reset()
	if err := CmdList(env, nil); err != nil {
		t.Fatalf("list: %v", err)
	}
	s := out.String()
	if strings.Index(s, "a.com") > strings.Index(s, "b.com") {
		t.Errorf("list not sorted: %q", s)
	}
	if strings.Contains(s, "pw") {
		t.Errorf("plain list should not print passwords: %q", s)
	}

	out.Reset()
	if err := CmdList(env, []string{"--json"}); err != nil {
		t.Fatalf("list json: %v", err)
	}
	var got []jsonRecord
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0].Website != "a.com" {
		t.Errorf("list json = %+v", got)
	}
}

func TestForget(t *testing.T) {
	env, out, _ := newTestEnv(t)
	if err := env.Store.Save("gone.com", "a@b.com", "pw"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := CmdForget(env, []string{"gone.com"}); err != nil {
		t.Fatalf("forget: %v", err)
	}
	if !strings.Contains(out.String(), "deleted gone.com") {
		t.Errorf("output = %q", out.String())
	}
	if err := CmdForget(env, []string{"gone.com"}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second forget: got %v, want ErrNotFound", err)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	env, _, _ := newTestEnv(t)
	if err := Run(env, "bogus", nil); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestRunDispatch(t *testing.T) {
	env, out, _ := newTestEnv(t)
	if err := Run(env, "gen", []string{"--no-clipboard"}); err != nil {
		t.Fatalf("run gen: %v", err)
	}
	if out.Len() == 0 {
		t.Error("gen alias produced no output")
	}
}

func TestOpenStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "zkeep")
	cfg := config.Config{Store: config.StoreConfig{Path: filepath.Join(dir, "data.json")}}

	st, err := OpenStore(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("data dir not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "data.json")); err == nil {
		t.Fatal("data file should not exist before the first save")
	}

	if err := st.Save("example.com", "a@b.com", "pw"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "data.json")); err != nil {
		t.Fatalf("data file not created by save: %v", err)
	}
}
