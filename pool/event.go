package pool

import "github.com/wkbae/go-gallery-downloader/list"

// Event is one of Downloaded, Failed, Progress or Done.
type Event interface {
	event()
}

type Downloaded struct {
	Entry    list.Entry
	FileName string
}

type Failed struct {
	Entry    list.Entry
	FileName string
	Err      error
}

// Progress counts entries with a reported outcome.
type Progress struct {
	Processed int
	Total     int
}

type Done struct{}

func (Downloaded) event() {}
func (Failed) event()     {}
func (Progress) event()   {}
func (Done) event()       {}
