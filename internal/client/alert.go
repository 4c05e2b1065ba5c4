package client

// GalleryPath is where a successful share navigates to.
const GalleryPath = "/"

type Alerter interface {
	Alert(message string)
}

type Navigator interface {
	Navigate(path string)
}

type AlertFunc func(message string)

func (f AlertFunc) Alert(message string) { f(message) }

type NavigateFunc func(path string)

func (f NavigateFunc) Navigate(path string) { f(path) }
