package eds

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eds-tools/eds-go/pkg/ini"
	"github.com/eds-tools/eds-go/pkg/log"
)

// File is a fully loaded and validated data sheet.
type File struct {
	FileInfo   FileInfo
	DeviceInfo DeviceInfo

	// Comments are the [Comments] lines, if any.
	Comments []string

	// DummyUsage holds the [DummyUsage] flags, nil when the section is absent.
	DummyUsage map[DataType]bool

	Dictionary *Dictionary

	// Source is the path the file was loaded from, if any.
	Source string

	// LoadID identifies this load in trace events.
	LoadID string
}

// Parser loads data sheets.
type Parser struct {
	// Logger is used for debug logging. If nil, logging is disabled.
	Logger *slog.Logger

	// Trace receives load trace events. If nil, tracing is disabled.
	Trace log.Logger
}

// NewParser creates a new parser with logging and tracing disabled.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile loads the data sheet at path.
func (p *Parser) ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: ErrIO, Value: path, Err: err}
	}
	return p.parse(data, path)
}

// Parse loads a data sheet from r.
func (p *Parser) Parse(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &Error{Kind: ErrIO, Err: err}
	}
	return p.parse(data, "")
}

// ParseBytes loads a data sheet from a byte slice.
func (p *Parser) ParseBytes(data []byte) (*File, error) {
	return p.parse(data, "")
}

// ParseString loads a data sheet from a string.
func (p *Parser) ParseString(s string) (*File, error) {
	return p.parse([]byte(s), "")
}

// ParseStore loads a data sheet from an already built store. source labels
// log output and may be empty.
func (p *Parser) ParseStore(store Store, source string) (*File, error) {
	l := p.newLoad(source)
	return l.run(store)
}

func (p *Parser) parse(data []byte, source string) (*File, error) {
	l := p.newLoad(source)

	start := time.Now()
	parsed, err := ini.ParseBytes(data)
	if err != nil {
		return nil, l.fail(log.StageRead, storeError(err))
	}
	l.trace(log.Event{
		Stage:    log.StageRead,
		Category: log.CategoryFile,
		File: &log.FileEvent{
			Sections: len(parsed.Sections()),
			Size:     int64(len(data)),
			Duration: time.Since(start),
		},
	})

	return l.run(NewStore(parsed))
}

// storeError converts a section store failure into an *Error.
func storeError(err error) *Error {
	var se *ini.SyntaxError
	if errors.As(err, &se) {
		return &Error{
			Kind:    ErrFormatting,
			Section: se.Section,
			Field:   se.Key,
			Value:   se.Text,
			Line:    se.Line,
			Err:     se.Err,
		}
	}
	return &Error{Kind: ErrIO, Err: err}
}

// load is the state of one parse.
type load struct {
	p      *Parser
	id     string
	source string
	start  time.Time
}

func (p *Parser) newLoad(source string) *load {
	return &load{
		p:      p,
		id:     uuid.NewString(),
		source: source,
		start:  time.Now(),
	}
}

func (l *load) run(store Store) (*File, error) {
	l.debugLog("loading data sheet")

	fi, err := ReadFileInfo(store)
	if err != nil {
		return nil, l.fail(log.StageHeader, err)
	}
	if fi.EDSVersion == VersionUnsupported {
		l.debugLog("unsupported EDSVersion", "version", fi.EDSVersionText)
	}

	di, err := ReadDeviceInfo(store)
	if err != nil {
		return nil, l.fail(log.StageHeader, err)
	}
	comments, err := ReadComments(store)
	if err != nil {
		return nil, l.fail(log.StageHeader, err)
	}
	dummies, err := ReadDummyUsage(store)
	if err != nil {
		return nil, l.fail(log.StageHeader, err)
	}

	r := &Resolver{
		Store:  store,
		Logger: l.p.Logger,
		Trace:  l.p.Trace,
		LoadID: l.id,
		Source: l.source,
	}
	dict, err := r.ResolveDictionary()
	if err != nil {
		return nil, l.fail(log.StageResolve, err)
	}

	l.trace(log.Event{
		Stage:    log.StageAssemble,
		Category: log.CategoryFile,
		File: &log.FileEvent{
			Objects:  dict.Len(),
			Duration: time.Since(l.start),
		},
	})
	l.debugLog("data sheet loaded",
		"objects", dict.Len(),
		"vendor", di.VendorName,
		"product", di.ProductName)

	return &File{
		FileInfo:   fi,
		DeviceInfo: di,
		Comments:   comments,
		DummyUsage: dummies,
		Dictionary: dict,
		Source:     l.source,
		LoadID:     l.id,
	}, nil
}

// fail records err in the trace and returns it.
func (l *load) fail(stage log.Stage, err error) error {
	var e *Error
	section := ""
	if errors.As(err, &e) {
		section = e.Section
	}
	l.trace(log.Event{
		Stage:    stage,
		Category: log.CategoryError,
		Section:  section,
		Error: &log.ErrorEventData{
			Stage:   stage,
			Message: err.Error(),
			Kind:    KindName(err),
			Context: l.source,
		},
	})
	l.debugLog("load failed", "error", err)
	return err
}

func (l *load) trace(ev log.Event) {
	if l.p.Trace == nil {
		return
	}
	ev.Timestamp = time.Now()
	ev.LoadID = l.id
	ev.Source = l.source
	l.p.Trace.Log(ev)
}

func (l *load) debugLog(msg string, args ...any) {
	if l.p.Logger == nil {
		return
	}
	args = append([]any{"load_id", l.id}, args...)
	if l.source != "" {
		args = append(args, "source", l.source)
	}
	l.p.Logger.Debug(msg, args...)
}

// ParseFile is a convenience function to load a data sheet file.
func ParseFile(path string) (*File, error) {
	return NewParser().ParseFile(path)
}

// ParseBytes is a convenience function to load a data sheet from bytes.
func ParseBytes(data []byte) (*File, error) {
	return NewParser().ParseBytes(data)
}

// ParseString is a convenience function to load a data sheet from a string.
func ParseString(s string) (*File, error) {
	return NewParser().ParseString(s)
}

// Load loads the data sheet at path. It is the same as ParseFile.
func Load(path string) (*File, error) {
	return ParseFile(path)
}

// LoadDictionary loads the data sheet at path and returns only its object
// dictionary.
func LoadDictionary(path string) (*Dictionary, error) {
	f, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return f.Dictionary, nil
}

// IsDataSheet reports whether path looks like a data sheet by extension.
func IsDataSheet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".eds")
}
