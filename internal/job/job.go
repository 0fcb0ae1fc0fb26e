// Package job holds the binder's output model: JobList, Command,
// PipedJob, and InputInfo, plus collision-free temp-file reservation.
package job

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// Job is either a Command or a PipedJob.
type Job interface {
	isJob()
}

// Command is one external tool invocation.
type Command struct {
	Executable string
	Args       []string
}

func (*Command) isJob() {}

// PipedJob is an ordered chain of Commands sharing one OS pipeline.
// Commands are appended to it as the binder walks a single-input chain
// that stays pipe-eligible throughout.
type PipedJob struct {
	Commands []*Command
}

func (*PipedJob) isJob() {}

// Append adds one more command to the end of the pipe chain.
func (p *PipedJob) Append(c *Command) {
	p.Commands = append(p.Commands, c)
}

// List is an ordered, append-only container of Jobs.
type List struct {
	jobs []Job
}

// Add appends a Job to the list.
func (l *List) Add(j Job) {
	l.jobs = append(l.jobs, j)
}

// Jobs returns the list's contents in append order.
func (l *List) Jobs() []Job {
	return l.jobs
}

// Source describes where an InputInfo's data originates: a named
// argument (filename), a running PipedJob, or a prior action's output
// path. Exactly one of Filename/Pipe is meaningful.
type Source struct {
	Filename string
	Pipe     *PipedJob
}

// InputInfo is the value threaded back up through binding: what an
// action produced, its type, and the original input its name derives
// from.
type InputInfo struct {
	Source    Source
	Type      string
	BaseInput string
}

// IsPiped reports whether this InputInfo's data is flowing through a
// live PipedJob rather than sitting in a named file.
func (i InputInfo) IsPiped() bool {
	return i.Source.Pipe != nil
}

// TempAllocator hands out collision-free temp-file paths, one suffix
// namespace at a time. A single allocator instance is shared by one
// driver invocation's whole binding pass. Its lock file is taken with a
// non-blocking try-lock around each reservation; when another process
// already holds it, the reservation proceeds without it. Distinctness
// comes from random UUID names, an existence check, and the in-process
// set of names already handed out.
type TempAllocator struct {
	dir  string
	lock *flock.Flock
	mu   sync.Mutex
	seen map[string]bool
}

// NewTempAllocator builds an allocator rooted at dir, using a lock file
// named ".ccc-tmp.lock" inside it to guard concurrent reservations.
func NewTempAllocator(dir string) *TempAllocator {
	return &TempAllocator{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, ".ccc-tmp.lock")),
		seen: make(map[string]bool),
	}
}

// Reserve allocates a new temp path with the given suffix, distinct from
// every path this allocator has handed out and from any file already
// present at that path. The file itself is not created.
func (a *TempAllocator) Reserve(suffix string) (string, error) {
	if locked, err := a.lock.TryLock(); err == nil && locked {
		defer a.lock.Unlock() //nolint:errcheck
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for {
		name := fmt.Sprintf("ccc-%s.%s", uuid.NewString(), suffix)
		path := filepath.Join(a.dir, name)

		if a.seen[path] {
			continue
		}

		if _, err := os.Stat(path); err == nil {
			continue
		}

		a.seen[path] = true

		return path, nil
	}
}
