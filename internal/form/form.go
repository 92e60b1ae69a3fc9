// Package form holds the state and actions behind the credential form:
// three field values and the generate, save and search actions. Views set
// the fields, call an action and render the returned Notice.
package form

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/zarlcorp/zkeep/internal/store"
)

// Generator produces a new password.
type Generator interface {
	Generate() string
}

// Store persists and looks up records.
type Store interface {
	Save(website, email, password string) error
	Find(website string) (store.Record, error)
	List() ([]store.Record, error)
}

// Clipboard receives generated passwords.
type Clipboard interface {
	Copy(text string) error
}

// Kind classifies a notice for rendering.
type Kind int

const (
	None Kind = iota
	Info
	Saved
	Found
	Warning
	Error
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Info:
		return "info"
	case Saved:
		return "saved"
	case Found:
		return "found"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Notice is what the user should be told after an action.
type Notice struct {
	Kind    Kind
	Title   string
	Message string
}

// Empty reports whether there is nothing to show.
func (n Notice) Empty() bool {
	return n.Kind == None
}

// user-facing notice text
const (
	msgEmptyField   = "Please do not leave any fields empty!"
	msgStoreMissing = "No data file found."
	msgNotFound     = "No details for the website exist."
)

// Controller owns the form fields and runs the actions against its
// collaborators.
type Controller struct {
	Website  string
	Email    string
	Password string

	gen   Generator
	store Store
	clip  Clipboard
}

// New creates a controller with the email field pre-filled.
func New(gen Generator, st Store, clip Clipboard, defaultEmail string) *Controller {
	return &Controller{
		Email: defaultEmail,
		gen:   gen,
		store: st,
		clip:  clip,
	}
}

// Generate fills the password field with a new password and copies it to
// the clipboard. A clipboard failure leaves the field filled.
func (c *Controller) Generate() Notice {
	c.Password = c.gen.Generate()

	if err := c.clip.Copy(c.Password); err != nil {
		return Notice{
			Kind:    Warning,
			Title:   "Clipboard",
			Message: "Password generated but not copied: " + err.Error(),
		}
	}
	return Notice{}
}

// Save stores the current fields. On success the website and password
// fields are cleared and the email is kept for the next entry.
func (c *Controller) Save() Notice {
	err := c.store.Save(c.Website, c.Email, c.Password)
	switch {
	case err == nil:
		website := c.Website
		c.Website = ""
		c.Password = ""
		return Notice{Kind: Saved, Title: website, Message: "Saved."}

	case errors.Is(err, store.ErrEmptyField):
		return Notice{Kind: Info, Title: "Uh Oh!", Message: msgEmptyField}

	default:
		slog.Error("save record", "website", c.Website, "err", err)
		return Notice{Kind: Error, Title: "Error", Message: err.Error()}
	}
}

// Search looks up the website field.
func (c *Controller) Search() Notice {
	r, err := c.store.Find(c.Website)
	switch {
	case err == nil:
		return Notice{
			Kind:    Found,
			Title:   r.Website,
			Message: fmt.Sprintf("Email: %s\nPassword: %s", r.Email, r.Password),
		}

	case errors.Is(err, store.ErrStoreMissing):
		return Notice{Kind: Info, Title: "Error", Message: msgStoreMissing}

	case errors.Is(err, store.ErrNotFound):
		return Notice{Kind: Info, Title: "Uh oh!", Message: msgNotFound}

	default:
		slog.Error("find record", "website", c.Website, "err", err)
		return Notice{Kind: Error, Title: "Error", Message: err.Error()}
	}
}

// Websites returns every saved record for browsing. The notice is empty
// unless the records could not be loaded.
func (c *Controller) Websites() ([]store.Record, Notice) {
	records, err := c.store.List()
	switch {
	case err == nil:
		return records, Notice{}

	case errors.Is(err, store.ErrStoreMissing):
		return nil, Notice{Kind: Info, Title: "Error", Message: msgStoreMissing}

	default:
		slog.Error("list records", "err", err)
		return nil, Notice{Kind: Error, Title: "Error", Message: err.Error()}
	}
}
