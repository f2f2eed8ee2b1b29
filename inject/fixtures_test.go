package inject_test

import (
	"errors"
	"reflect"

	"github.com/sghaida/rdi/inject"
)

//
// -----------------------------------------------------------------------------
// Shared fixtures
// -----------------------------------------------------------------------------
//

// DB is a fake database handle for the tests.
type DB struct {
	DSN string
}

// Logger is a tiny logger for the tests.
type Logger struct {
	Level string
}

// Empty has no declared constructors; it exercises the zero-value path.
type Empty struct {
	N int
}

// Clock has a single no-argument constructor.
type Clock struct {
	Started bool
}

func NewClock() *Clock { return &Clock{Started: true} }

// Report has a single constructor over two reference parameters.
type Report struct {
	DB     *DB
	Logger *Logger
}

func NewReport(db *DB, logger *Logger) *Report {
	return &Report{DB: db, Logger: logger}
}

// Greeting has a single constructor over a string and an int, so the
// leading parameter can come from the service lookup.
type Greeting struct {
	Text  string
	Count int
}

func NewGreeting(text string, count int) *Greeting {
	return &Greeting{Text: text, Count: count}
}

// Flags has a single constructor over two value-kind parameters.
type Flags struct {
	Count  int
	Strict bool
}

func NewFlags(count int, strict bool) *Flags {
	return &Flags{Count: count, Strict: strict}
}

// Conn declares two constructors that agree on their first parameter, to
// exercise the no-match and ambiguity outcomes.
type Conn struct {
	Addr   string
	Port   int
	Secure bool
}

func NewConnPort(addr string, port int) *Conn {
	return &Conn{Addr: addr, Port: port}
}

func NewConnSecure(addr string, secure bool) *Conn {
	return &Conn{Addr: addr, Secure: secure}
}

// House encloses Room.
type House struct {
	Name string
}

// Room is an inner type: every constructor takes the enclosing *House
// first, and instantiation requires it as the first explicit parameter.
type Room struct {
	house *House
	Label string
}

func NewRoom(h *House, label string) *Room {
	return &Room{house: h, Label: label}
}

// House returns the enclosing instance.
func (r *Room) House() *House { return r.house }

// Socket constructors exercise the construction-failure paths.
type Socket struct {
	Addr string
}

var errRefused = errors.New("connect: refused")

func NewBadSocket(addr string) (*Socket, error) {
	return nil, errRefused
}

func NewPanickySocket() *Socket {
	panic("wire crossed")
}

func NewNilSocket() *Socket {
	return nil
}

// failingLookup is a ServiceLookup whose Find always errors.
type failingLookup struct {
	err error
}

func (f failingLookup) Find(reflect.Type) (any, bool, error) {
	return nil, false, f.err
}

//
// -----------------------------------------------------------------------------
// Shared type descriptors
// -----------------------------------------------------------------------------
//

var (
	emptyType    = inject.MustTypeFor[Empty]()
	clockType    = inject.MustTypeFor[Clock](NewClock)
	reportType   = inject.MustTypeFor[Report](NewReport)
	greetingType = inject.MustTypeFor[Greeting](NewGreeting)
	flagsType    = inject.MustTypeFor[Flags](NewFlags)
	connType     = inject.MustTypeFor[Conn](NewConnPort, NewConnSecure)
	roomType     = inject.MustInnerTypeFor[Room, House](NewRoom)
)
