// Package cli implements zkeep's command-line subcommands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zkeep/internal/clipboard"
	"github.com/zarlcorp/zkeep/internal/config"
	"github.com/zarlcorp/zkeep/internal/form"
	"github.com/zarlcorp/zkeep/internal/password"
	"github.com/zarlcorp/zkeep/internal/store"
	"golang.org/x/term"
)

// Env carries what every command needs.
type Env struct {
	Config config.Config
	Store  *store.Store
	Gen    form.Generator
	Clip   form.Clipboard
	Out    io.Writer
	Err    io.Writer

	// ReadPassword reads a secret without echo. Replaced in tests.
	ReadPassword func(prompt string) (string, error)
}

// NewEnv wires the store, generator and clipboard from configuration.
func NewEnv(cfg config.Config) (*Env, error) {
	st, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}

	var clip form.Clipboard = clipboard.System{}
	if !cfg.Clipboard.Enabled {
		clip = clipboard.Discard{}
	}

	return &Env{
		Config: cfg,
		Store:  st,
		Gen:    password.New(),
		Clip:   clip,
		Out:    os.Stdout,
		Err:    os.Stderr,
		ReadPassword: func(prompt string) (string, error) {
			return ReadPassword(prompt, os.Stderr)
		},
	}, nil
}

// OpenStore creates the data directory and opens the store inside it. The
// data file itself is not created until the first save.
func OpenStore(cfg config.Config) (*store.Store, error) {
	dir, name := cfg.StoreLocation()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return store.Open(zfilesystem.NewOSFileSystem(dir), name), nil
}

// ReadPassword prompts on w and reads a password from stdin without echo.
func ReadPassword(prompt string, w io.Writer) (string, error) {
	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// Run dispatches a subcommand.
func Run(env *Env, cmd string, args []string) error {
	switch cmd {
	case "generate", "gen":
		return CmdGenerate(env, args)
	case "add", "save":
		return CmdAdd(env, args)
	case "find", "search":
		return CmdFind(env, args)
	case "list", "ls":
		return CmdList(env, args)
	case "forget", "rm":
		return CmdForget(env, args)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

// CmdGenerate prints a new password and copies it to the clipboard.
func CmdGenerate(env *Env, args []string) error {
	pw := env.Gen.Generate()
	fmt.Fprintln(env.Out, pw)

	if hasFlag(args, "--verbose") {
		c := password.Classify(pw)
		fmt.Fprintf(env.Err, "%d characters: %d letters, %d symbols, %d digits\n",
			len(pw), c.Letters, c.Symbols, c.Digits)
	}

	if hasFlag(args, "--no-clipboard") {
		return nil
	}
	if err := env.Clip.Copy(pw); err != nil {
		fmt.Fprintf(env.Err, "zkeep: %v\n", err)
		return nil
	}
	fmt.Fprintln(env.Err, "copied to clipboard")
	return nil
}

// CmdAdd saves a record. The password is generated with --generate,
// otherwise read from the terminal.
func CmdAdd(env *Env, args []string) error {
	pos := positional(args)
	if len(pos) < 1 {
		return errors.New("usage: zkeep add <website> [email] [--generate]")
	}

	website := pos[0]
	email := env.Config.Form.DefaultEmail
	if len(pos) > 1 {
		email = pos[1]
	}

	var pw string
	if hasFlag(args, "--generate") {
		pw = env.Gen.Generate()
	} else {
		var err error
		pw, err = env.ReadPassword("password: ")
		if err != nil {
			return err
		}
	}

	if err := env.Store.Save(website, email, pw); err != nil {
		if errors.Is(err, store.ErrEmptyField) {
			return errors.New("website, email and password are all required")
		}
		return err
	}

	if hasFlag(args, "--generate") {
		fmt.Fprintln(env.Out, pw)
		if err := env.Clip.Copy(pw); err != nil {
			fmt.Fprintf(env.Err, "zkeep: %v\n", err)
		}
	}
	fmt.Fprintf(env.Err, "saved %s\n", strings.TrimSpace(website))
	return nil
}

// CmdFind prints the record for a website.
func CmdFind(env *Env, args []string) error {
	pos := positional(args)
	if len(pos) < 1 {
		return errors.New("usage: zkeep find <website> [--json]")
	}

	r, err := env.Store.Find(pos[0])
	if err != nil {
		return err
	}

	if hasFlag(args, "--json") {
		return printJSON(env.Out, recordJSON(r))
	}

	printRecord(env.Out, r)
	return nil
}

// CmdList lists all saved websites.
func CmdList(env *Env, args []string) error {
	records, err := env.Store.List()
	if errors.Is(err, store.ErrStoreMissing) {
		records, err = nil, nil
	}
	if err != nil {
		return err
	}

	if hasFlag(args, "--json") {
		out := make([]jsonRecord, 0, len(records))
		for _, r := range records {
			out = append(out, recordJSON(r))
		}
		return printJSON(env.Out, out)
	}

	if len(records) == 0 {
		fmt.Fprintln(env.Out, "no saved websites")
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(env.Out, "  %-30s %s\n", r.Website, r.Email)
	}
	return nil
}

// CmdForget deletes the record for a website.
func CmdForget(env *Env, args []string) error {
	pos := positional(args)
	if len(pos) < 1 {
		return errors.New("usage: zkeep forget <website>")
	}

	if err := env.Store.Delete(pos[0]); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "deleted %s\n", strings.TrimSpace(pos[0]))
	return nil
}

type jsonRecord struct {
	Website  string `json:"website"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func recordJSON(r store.Record) jsonRecord {
	return jsonRecord{Website: r.Website, Email: r.Email, Password: r.Password}
}

func printRecord(w io.Writer, r store.Record) {
	fmt.Fprintf(w, "  website:  %s\n", r.Website)
	fmt.Fprintf(w, "  email:    %s\n", r.Email)
	fmt.Fprintf(w, "  password: %s\n", r.Password)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if strings.EqualFold(a, flag) {
			return true
		}
	}
	return false
}

// positional returns args that are not flags.
func positional(args []string) []string {
	var out []string
	for _, a := range args {
		if strings.HasPrefix(a, "--") {
			continue
		}
		out = append(out, a)
	}
	return out
}
