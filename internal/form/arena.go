package form

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ErrEditorActive is returned when a second editor is opened while another
// row is already being edited.
var ErrEditorActive = errors.New("form: another editor is active")

// Arena owns the live form instances for one account session, keyed by row
// id. At most one editor is active at a time, enforced here rather than by
// UI convention. Create forms get a generated id so they occupy a row slot
// like any edit form.
type Arena struct {
	mu     sync.Mutex
	forms  map[string]*Form
	active string
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{forms: make(map[string]*Form)}
}

// OpenCreate opens a create form with a fresh row id and makes it the
// active editor.
func (a *Arena) OpenCreate(schema Schema, initial map[string]string) (string, *Form, error) {
	id := uuid.NewString()
	f, err := a.open(id, schema, initial)
	if err != nil {
		return "", nil, err
	}
	return id, f, nil
}

// OpenEdit opens an edit form for an existing row, seeded from the saved
// record, and makes it the active editor.
func (a *Arena) OpenEdit(rowID string, schema Schema, seed map[string]string) (*Form, error) {
	return a.open(rowID, schema, seed)
}

func (a *Arena) open(id string, schema Schema, initial map[string]string) (*Form, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.active != "" && a.active != id {
		return nil, fmt.Errorf("%w: %s", ErrEditorActive, a.active)
	}
	f := New(schema, initial)
	a.forms[id] = f
	a.active = id
	return f, nil
}

// Get returns the form for a row id, if open.
func (a *Arena) Get(id string) (*Form, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	f, ok := a.forms[id]
	return f, ok
}

// Active returns the active editor's id and form.
func (a *Arena) Active() (string, *Form, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.active == "" {
		return "", nil, false
	}
	return a.active, a.forms[a.active], true
}

// Close discards a form instance. Closing the active editor clears the
// active pointer so another row can be edited.
func (a *Arena) Close(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.forms, id)
	if a.active == id {
		a.active = ""
	}
}
