package flux

import (
	"os"
	"sync"
	"time"
)

// frameInterval is how often running animations advance.
const frameInterval = time.Second / 60

// KeyKind classifies a decoded key event.
type KeyKind int

const (
	KeyRune KeyKind = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyCtrlC
)

// Key is one decoded keyboard event. Rune is set for KeyRune only.
type Key struct {
	Kind KeyKind
	Rune rune
}

// App runs a root component on a cooperative single-goroutine loop.
// Input, resize events, render requests, posted functions, and
// animation clock ticks are all serialized onto that loop, so
// components and the animation reconciler never need locks. The frame
// ticker runs only while the clock has running animations.
type App struct {
	screen *Screen
	clock  *Clock
	root   Component

	runeHandlers map[rune]func()
	keyHandlers  map[KeyKind]func()

	keys       chan Key
	posts      chan func()
	renderChan chan struct{}
	quit       chan struct{}

	disposables []interface{ Dispose() }
	stopOnce    sync.Once
}

// NewApp creates an application around root.
func NewApp(root Component) (*App, error) {
	screen, err := NewScreen(nil)
	if err != nil {
		return nil, err
	}
	return &App{
		screen:       screen,
		clock:        NewClock(),
		root:         root,
		runeHandlers: make(map[rune]func()),
		keyHandlers:  make(map[KeyKind]func()),
		keys:         make(chan Key, 8),
		posts:        make(chan func(), 8),
		renderChan:   make(chan struct{}, 1),
		quit:         make(chan struct{}),
	}, nil
}

// Clock returns the animation clock. Hand it to animated containers
// created for this app.
func (a *App) Clock() *Clock {
	return a.clock
}

// SetRoot installs the root component. Allows passing nil to NewApp
// and building the tree with the app's clock afterwards.
func (a *App) SetRoot(root Component) *App {
	a.root = root
	return a
}

// Screen returns the screen.
func (a *App) Screen() *Screen {
	return a.screen
}

// Handle registers a handler for a printable key.
func (a *App) Handle(r rune, fn func()) *App {
	a.runeHandlers[r] = fn
	return a
}

// HandleKey registers a handler for a special key.
func (a *App) HandleKey(k KeyKind, fn func()) *App {
	a.keyHandlers[k] = fn
	return a
}

// AddDisposable registers a resource released when Run returns,
// typically an animated container or binding holding animation handles.
func (a *App) AddDisposable(d interface{ Dispose() }) *App {
	a.disposables = append(a.disposables, d)
	return a
}

// Post schedules fn onto the application loop. Safe to call from any
// goroutine; this is the only way external goroutines may mutate
// components or animated containers.
func (a *App) Post(fn func()) {
	select {
	case a.posts <- fn:
	case <-a.quit:
	}
}

// RequestRender marks that a render is needed.
// Safe to call from any goroutine.
func (a *App) RequestRender() {
	select {
	case a.renderChan <- struct{}{}:
	default:
		// Already a render pending
	}
}

// Stop signals the application loop to exit.
// Safe to call from any goroutine, and more than once.
func (a *App) Stop() {
	a.stopOnce.Do(func() { close(a.quit) })
}

// Run starts the application and blocks until Stop is called. On
// return the terminal is restored and every registered disposable has
// been released, including handles of animations still mid-flight.
func (a *App) Run() error {
	if err := a.screen.EnterRawMode(); err != nil {
		return err
	}
	defer a.screen.ExitRawMode()
	defer func() {
		for _, d := range a.disposables {
			d.Dispose()
		}
	}()

	go a.readInput()

	a.render()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	tickerRunning := true
	lastStep := time.Now()

	for {
		// The ticker runs only while animations are in flight.
		if active := a.clock.Active(); active && !tickerRunning {
			ticker.Reset(frameInterval)
			tickerRunning = true
			lastStep = time.Now()
		} else if !active && tickerRunning {
			ticker.Stop()
			tickerRunning = false
		}

		var tickC <-chan time.Time
		if tickerRunning {
			tickC = ticker.C
		}

		select {
		case <-a.quit:
			return nil

		case k := <-a.keys:
			a.dispatchKey(k)
			a.render()

		case fn := <-a.posts:
			fn()
			a.render()

		case <-a.renderChan:
			a.render()

		case <-a.screen.ResizeChan():
			a.render()

		case now := <-tickC:
			a.clock.Step(now.Sub(lastStep))
			lastStep = now
			a.render()
		}
	}
}

func (a *App) dispatchKey(k Key) {
	if k.Kind == KeyRune {
		if fn, ok := a.runeHandlers[k.Rune]; ok {
			fn()
		}
		return
	}
	if fn, ok := a.keyHandlers[k.Kind]; ok {
		fn()
		return
	}
	if k.Kind == KeyCtrlC {
		a.Stop()
	}
}

// render lays out the root over the full screen and flushes the diff.
func (a *App) render() {
	if a.root == nil {
		return
	}
	size := a.screen.Size()
	buf := a.screen.Buffer()
	buf.Clear()
	a.root.SetConstraints(size.Width, size.Height)
	a.root.Render(buf, 0, 0)
	a.screen.Flush()
}

// readInput decodes stdin bytes into key events. Runs on its own
// goroutine; events are consumed by the loop in Run.
func (a *App) readInput() {
	var b [16]byte
	for {
		n, err := os.Stdin.Read(b[:])
		if err != nil {
			return
		}
		for _, k := range decodeKeys(b[:n]) {
			select {
			case a.keys <- k:
			case <-a.quit:
				return
			}
		}
	}
}

// decodeKeys translates raw input bytes into key events. It covers
// the escape sequences the demos need (arrows), control keys, and
// plain runes; unrecognized sequences are dropped.
func decodeKeys(b []byte) []Key {
	var keys []Key
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == 0x1b:
			if i+2 < len(b) && b[i+1] == '[' {
				switch b[i+2] {
				case 'A':
					keys = append(keys, Key{Kind: KeyUp})
				case 'B':
					keys = append(keys, Key{Kind: KeyDown})
				case 'C':
					keys = append(keys, Key{Kind: KeyRight})
				case 'D':
					keys = append(keys, Key{Kind: KeyLeft})
				}
				i += 3
				continue
			}
			keys = append(keys, Key{Kind: KeyEscape})
			i++
		case c == 0x03:
			keys = append(keys, Key{Kind: KeyCtrlC})
			i++
		case c == '\r' || c == '\n':
			keys = append(keys, Key{Kind: KeyEnter})
			i++
		case c == 0x7f || c == 0x08:
			keys = append(keys, Key{Kind: KeyBackspace})
			i++
		case c == '\t':
			keys = append(keys, Key{Kind: KeyTab})
			i++
		case c >= 0x20:
			r, size := decodeRune(b[i:])
			keys = append(keys, Key{Kind: KeyRune, Rune: r})
			i += size
		default:
			i++
		}
	}
	return keys
}

// decodeRune reads one UTF-8 rune from b.
func decodeRune(b []byte) (rune, int) {
	r := []rune(string(b))
	if len(r) == 0 {
		return 0, 1
	}
	return r[0], len(string(r[0]))
}
