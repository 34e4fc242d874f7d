package pipeline

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-formstrap/pkg/config"
	"github.com/goliatone/go-formstrap/pkg/field"
	"github.com/goliatone/go-formstrap/pkg/fragment"
	"github.com/goliatone/go-formstrap/pkg/metrics"
	"github.com/goliatone/go-formstrap/pkg/rules"
	"github.com/goliatone/go-formstrap/pkg/sanitize"
	"github.com/goliatone/go-formstrap/pkg/testsupport"
	"github.com/goliatone/go-formstrap/pkg/vocab"
)

func TestApplyGoldenCases(t *testing.T) {
	p := New()
	for _, tc := range testsupport.MustLoadCases(t) {
		t.Run(tc.Name, func(t *testing.T) {
			if got := p.Apply(tc.Fragment, tc.Meta); got != tc.Want {
				t.Fatalf("want %s\n got %s", tc.Want, got)
			}
		})
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	p := New()
	for _, tc := range testsupport.MustLoadCases(t) {
		once := p.Apply(tc.Fragment, tc.Meta)
		if twice := p.Apply(once, tc.Meta); twice != once {
			t.Fatalf("%s: second pass changed output:\n once  %s\n twice %s", tc.Name, once, twice)
		}
	}
}

func TestApplyPreservesUntouchedMarkup(t *testing.T) {
	p := New()
	input := `<div class="ginput_container" data-x="1"><!-- note --><input type="email" class="medium" id="input_1_2" value="a&amp;b"><p>Text &amp; more</p></div>`
	want := `<div class="ginput_container" data-x="1"><!-- note --><input type="email" class="form-control medium" id="input_1_2" value="a&amp;b"/><p>Text &amp; more</p></div>`
	got := p.Apply(input, field.Metadata{Type: field.TypeEmail, FormID: "1"})
	if got != want {
		t.Fatalf("want %s\n got %s", want, got)
	}
	if fragment.RoundTrip(got) != got {
		t.Fatalf("output is not stable under round trip: %s", got)
	}
}

func TestApplyKeepsTableRowFragments(t *testing.T) {
	p := New()
	cases := []struct {
		name  string
		input string
		meta  field.Metadata
		want  string
	}{
		{
			name:  "row",
			input: `<tr class="gfield_list_row"><td><input type="text" class="x"></td></tr>`,
			meta:  field.Metadata{Type: field.TypeText},
			want:  `<tr class="gfield_list_row"><td><input type="text" class="form-control x"/></td></tr>`,
		},
		{
			name:  "cell",
			input: `<td class="gfield_list_cell"><select></select></td>`,
			meta:  field.Metadata{Type: field.TypeSelect},
			want:  `<td class="gfield_list_cell"><select class="form-select"></select></td>`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := p.Apply(tc.input, tc.meta)
			if got != tc.want {
				t.Fatalf("want %s\n got %s", tc.want, got)
			}
			if again := p.Apply(got, tc.meta); again != got {
				t.Fatalf("second pass changed output: %s", again)
			}
		})
	}
}

func TestApplyUnknownTypeIsNoOp(t *testing.T) {
	sanitizer := &countingSanitizer{}
	p := New(WithSanitizer(sanitizer))
	inputs := []string{
		"<input type='email' class='foo'>",
		`<div class="ginput_complex"><span class="ginput_full"></span></div>`,
		`<p>broken <b>markup`,
		"",
	}
	for _, stage := range field.Stages() {
		for _, input := range inputs {
			meta := field.Metadata{Type: "unknown_type", Stage: stage}
			if got := p.Apply(input, meta); got != input {
				t.Fatalf("stage %s: expected %q unchanged, got %q", stage, input, got)
			}
		}
	}
	if sanitizer.calls() != 0 {
		t.Fatalf("unknown types must not be sanitised, got %d calls", sanitizer.calls())
	}
}

func TestDispatcherSelectsInRegistryOrder(t *testing.T) {
	d := New().Dispatcher()

	cases := []struct {
		name string
		meta field.Metadata
		want []string
	}{
		{
			name: "email content",
			meta: field.Metadata{Type: field.TypeEmail},
			want: []string{rules.RuleDescription, rules.RuleFormControl, rules.RuleFormSelect, rules.RuleLabels},
		},
		{
			name: "name content",
			meta: field.Metadata{Type: field.TypeName},
			want: []string{rules.RuleDescription, rules.RuleFormControl, rules.RuleFormSelect, rules.RuleLabels, rules.RuleNameGrid},
		},
		{
			name: "checkbox content",
			meta: field.Metadata{Type: field.TypeCheckbox},
			want: []string{rules.RuleDescription, rules.RuleChoiceInputs, rules.RuleFormControl, rules.RuleFormSelect, rules.RuleLabels},
		},
		{
			name: "radio choices",
			meta: field.Metadata{Type: field.TypeRadio, Stage: field.StageChoices, Choices: []field.Choice{{Text: "A"}}},
			want: []string{rules.RuleChoiceLabels},
		},
		{
			name: "container",
			meta: field.Metadata{Type: field.TypeText, Stage: field.StageContainer},
			want: []string{rules.RuleContainerCols},
		},
		{
			name: "form",
			meta: field.Metadata{Stage: field.StageForm},
			want: []string{rules.RuleOuterRow},
		},
		{
			name: "submit",
			meta: field.Metadata{Stage: field.StageSubmit, FormID: "9"},
			want: []string{rules.RuleSubmitButton},
		},
		{
			name: "unknown",
			meta: field.Metadata{Type: "unknown_type"},
			want: []string{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, d.Names(tc.meta)); diff != "" {
				t.Fatalf("selection mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyLogsEveryRule(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := New(WithLogger(zap.New(core)))

	p.Apply(`<input type="email" class="foo">`, field.Metadata{Type: field.TypeEmail, FormID: "12"})

	applied := logs.FilterMessage("rule applied")
	if applied.Len() != 4 {
		t.Fatalf("expected 4 rule entries, got %d", applied.Len())
	}
	changed := map[string]bool{}
	for _, entry := range applied.All() {
		fields := entry.ContextMap()
		if fields["form_id"] != "12" || fields["field_type"] != "email" || fields["stage"] != "content" {
			t.Fatalf("unexpected fields %v", fields)
		}
		changed[fields["rule"].(string)] = fields["changed"].(bool)
	}
	want := map[string]bool{
		rules.RuleDescription: false,
		rules.RuleFormControl: true,
		rules.RuleFormSelect:  false,
		rules.RuleLabels:      false,
	}
	if diff := cmp.Diff(want, changed); diff != "" {
		t.Fatalf("changed flags mismatch (-want +got):\n%s", diff)
	}

	p.Apply("<p>x</p>", field.Metadata{Type: "unknown_type"})
	if logs.FilterMessage("no rules selected").Len() != 1 {
		t.Fatalf("expected a no-selection entry")
	}
}

func TestApplyRecordsMetrics(t *testing.T) {
	rec := &fakeRecorder{rules: map[string]int{}}
	p := New(WithRecorder(rec))

	p.Apply(`<select></select>`, field.Metadata{Type: field.TypeSelect})
	p.Apply(`<p>x</p>`, field.Metadata{Type: "unknown_type"})

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.fragments != 2 || rec.durations != 2 {
		t.Fatalf("expected 2 fragments and durations, got %d/%d", rec.fragments, rec.durations)
	}
	if rec.rules["form-select/changed"] != 1 || rec.rules["labels/changed"] != 0 || rec.rules["form-control/unchanged"] != 1 {
		t.Fatalf("unexpected rule counts %v", rec.rules)
	}
}

func TestApplySanitizesBeforeRules(t *testing.T) {
	p := New(WithSanitizer(sanitize.Policy()))
	got := p.Apply(`<input type="email" class="foo" onfocus="x()"><script>alert(1)</script>`, field.Metadata{Type: field.TypeEmail})
	if strings.Contains(got, "script") || strings.Contains(got, "onfocus") {
		t.Fatalf("expected active content removed, got %s", got)
	}
	if !strings.Contains(got, `class="form-control foo"`) {
		t.Fatalf("expected form-control class, got %s", got)
	}
}

func TestWithVocabularyAndTables(t *testing.T) {
	tables := config.Default()
	tables.Classes = map[string]string{"form-select": "select select-bordered"}

	fromTables := New(WithTables(tables))
	got := fromTables.Apply(`<select></select>`, field.Metadata{Type: field.TypeSelect})
	if want := `<select class="select select-bordered"></select>`; got != want {
		t.Fatalf("want %s\n got %s", want, got)
	}

	explicit := New(WithTables(tables), WithVocabulary(vocab.New(map[string]string{"form-select": "custom"})))
	got = explicit.Apply(`<select></select>`, field.Metadata{Type: field.TypeSelect})
	if want := `<select class="custom"></select>`; got != want {
		t.Fatalf("want %s\n got %s", want, got)
	}
}

func TestWithRegistry(t *testing.T) {
	reg := rules.NewRegistry()
	reg.MustRegister(rules.FormSelect(vocab.Bootstrap()), rules.DefaultPriority)
	p := New(WithRegistry(reg))

	got := p.Apply(`<select></select><input type="text">`, field.Metadata{Type: field.TypeText})
	if want := `<select class="form-select"></select><input type="text"/>`; got != want {
		t.Fatalf("want %s\n got %s", want, got)
	}
	if p.Registry() != reg {
		t.Fatalf("expected supplied registry to be used")
	}
}

type countingSanitizer struct {
	mu sync.Mutex
	n  int
}

func (s *countingSanitizer) Sanitize(in string) string {
	s.mu.Lock()
	s.n++
	s.mu.Unlock()
	return in
}

func (s *countingSanitizer) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}

type fakeRecorder struct {
	mu        sync.Mutex
	rules     map[string]int
	fragments int
	durations int
	batch     map[string]int
}

func (r *fakeRecorder) IncRuleApplied(rule string, outcome metrics.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rule+"/"+string(outcome)]++
}

func (r *fakeRecorder) ObserveApplyDuration(string, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.durations++
}

func (r *fakeRecorder) IncFragments(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fragments++
}

func (r *fakeRecorder) IncBatchJobs(result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.batch == nil {
		r.batch = map[string]int{}
	}
	r.batch[result]++
}
