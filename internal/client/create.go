package client

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/NabeelAhmed1721/visionary/internal/prompts"
)

const (
	promptRequiredAlert  = "Please provide a proper prompt"
	shareIncompleteAlert = "Please generate an image with proper details"
	sharedAlert          = "Success"
)

var (
	ErrPromptRequired = errors.New("prompt is required")
	ErrNothingToShare = errors.New("prompt and photo are required to share")
	ErrBusy           = errors.New("a request is already in progress")
)

type State int

const (
	Idle State = iota
	GeneratingImage
	ImageReady
	Sharing
	Shared
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case GeneratingImage:
		return "generating"
	case ImageReady:
		return "image ready"
	case Sharing:
		return "sharing"
	case Shared:
		return "shared"
	default:
		return "unknown"
	}
}

type Form struct {
	Name   string
	Prompt string
	Photo  string
}

// CreateFlow is the create-post form: prompt entry, generation and sharing.
type CreateFlow struct {
	api       API
	prompts   *prompts.List
	alerter   Alerter
	navigator Navigator

	mu    sync.Mutex
	state State
	form  Form
}

func NewCreateFlow(api API, list *prompts.List, alerter Alerter, navigator Navigator) *CreateFlow {
	if list == nil {
		list = prompts.Default()
	}
	return &CreateFlow{api: api, prompts: list, alerter: alerter, navigator: navigator}
}

func (f *CreateFlow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *CreateFlow) Form() Form {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form
}

func (f *CreateFlow) SetName(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.form.Name = name
}

func (f *CreateFlow) SetPrompt(prompt string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.form.Prompt = prompt
}

// SurpriseMe replaces the prompt with a different one from the list.
func (f *CreateFlow) SurpriseMe() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.form.Prompt = f.prompts.Random(f.form.Prompt)
	return f.form.Prompt
}

// Generate asks the server for an image of the current prompt.
func (f *CreateFlow) Generate(ctx context.Context) error {
	f.mu.Lock()
	if f.busy() {
		f.mu.Unlock()
		return ErrBusy
	}
	prompt := f.form.Prompt
	if strings.TrimSpace(prompt) == "" {
		f.mu.Unlock()
		f.alerter.Alert(promptRequiredAlert)
		return ErrPromptRequired
	}
	f.state = GeneratingImage
	f.mu.Unlock()

	photo, err := f.api.GenerateImage(ctx, prompt)

	f.mu.Lock()
	if err != nil {
		if f.form.Photo != "" {
			f.state = ImageReady
		} else {
			f.state = Idle
		}
		f.mu.Unlock()
		f.alerter.Alert(message(err))
		return err
	}
	f.form.Photo = photo
	f.state = ImageReady
	f.mu.Unlock()
	return nil
}

// Share publishes the form to the gallery and navigates there.
func (f *CreateFlow) Share(ctx context.Context) error {
	f.mu.Lock()
	if f.busy() {
		f.mu.Unlock()
		return ErrBusy
	}
	form := f.form
	if strings.TrimSpace(form.Prompt) == "" || form.Photo == "" {
		f.mu.Unlock()
		f.alerter.Alert(shareIncompleteAlert)
		return ErrNothingToShare
	}
	f.state = Sharing
	f.mu.Unlock()

	_, err := f.api.CreatePost(ctx, form.Name, form.Prompt, form.Photo)

	f.mu.Lock()
	if err != nil {
		f.state = ImageReady
		f.mu.Unlock()
		f.alerter.Alert(message(err))
		return err
	}
	f.state = Shared
	f.mu.Unlock()

	f.alerter.Alert(sharedAlert)
	f.navigator.Navigate(GalleryPath)
	return nil
}

func (f *CreateFlow) busy() bool {
	return f.state == GeneratingImage || f.state == Sharing
}
