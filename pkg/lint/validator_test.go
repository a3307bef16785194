package lint

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eds-tools/eds-go/pkg/eds"
	"github.com/eds-tools/eds-go/pkg/log"
)

func testRegistry() *Registry {
	r := NewRegistry()
	r.Register(newStubRule("E-001", "errs", SeverityError, "broken"))
	r.Register(newStubRule("W-001", "warns", SeverityWarning, "odd", "odder"))
	r.Register(newStubRule("I-001", "infos", SeverityInfo, "fyi"))
	return r
}

func TestValidateSortsBySeverity(t *testing.T) {
	res := NewValidator(testRegistry()).Validate(emptyFile(), Options{})

	assert.False(t, res.Valid)
	assert.Len(t, res.Errors, 1)
	assert.Len(t, res.Warnings, 2)
	assert.Len(t, res.Infos, 1)

	all := res.Violations()
	require.Len(t, all, 4)
	assert.Equal(t, "E-001", all[0].RuleID)
	assert.Equal(t, "I-001", all[3].RuleID)
}

func TestValidateOptions(t *testing.T) {
	v := NewValidator(testRegistry())

	res := v.Validate(emptyFile(), Options{Disabled: []string{"E-001"}})
	assert.True(t, res.Valid, "warnings alone pass")

	res = v.Validate(emptyFile(), Options{Disabled: []string{"E-001"}, Strict: true})
	assert.False(t, res.Valid, "warnings fail in strict mode")

	res = v.Validate(emptyFile(), Options{Categories: []string{"infos"}, Strict: true})
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.Len(t, res.Infos, 1)

	// options never touch the registry
	assert.True(t, v.Registry.IsEnabled("E-001"))
}

type traceRecorder struct {
	events []log.Event
}

func (r *traceRecorder) Log(e log.Event) { r.events = append(r.events, e) }

func TestValidateTracesViolations(t *testing.T) {
	rec := &traceRecorder{}
	reg := NewRegistry()
	reg.Register(&addressRule{NewBaseRule("A-001", "a", "a", SeverityWarning)})

	f := emptyFile()
	f.LoadID = "load-7"
	f.Source = "x.eds"

	v := &Validator{Registry: reg, Trace: rec}
	v.Validate(f, Options{})

	require.Len(t, rec.events, 1)
	ev := rec.events[0]
	assert.Equal(t, log.StageLint, ev.Stage)
	assert.Equal(t, log.CategoryViolation, ev.Category)
	assert.Equal(t, "load-7", ev.LoadID)
	assert.Equal(t, "x.eds", ev.Source)
	require.NotNil(t, ev.Violation)
	assert.Equal(t, "A-001", ev.Violation.RuleID)
	assert.Equal(t, "warning", ev.Violation.Severity)
	require.NotNil(t, ev.Violation.Index)
	assert.Equal(t, uint16(0x2000), *ev.Violation.Index)
}

type addressRule struct{ *BaseRule }

func (r *addressRule) Check(*eds.File) []Violation {
	return []Violation{r.Violation("here", eds.NewAddress(0x2000, 3))}
}

func TestValidateLogs(t *testing.T) {
	var buf bytes.Buffer
	v := NewValidator(testRegistry())
	v.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	v.Validate(emptyFile(), Options{})
	assert.Contains(t, buf.String(), "lint finished")
	assert.Contains(t, buf.String(), "errors=1")
}
