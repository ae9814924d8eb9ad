package recval_test

import (
	"context"
	"testing"

	recval "github.com/recval/recval"
)

func leadCatalog(t *testing.T) *recval.Catalog {
	t.Helper()
	cat, err := recval.NewCatalog([]recval.Record{
		{
			FullName: "demo.lead",
			Shape:    recval.ShapeObject,
			Fields: []recval.Field{
				{Name: "name", Type: "String"},
				{Name: "age", Type: "Integer"},
				{Name: "tags", Type: "String[]"},
			},
			Required: []string{"name"},
		},
		{
			FullName: "demo.leads",
			Shape:    recval.ShapeArray,
			Fields: []recval.Field{
				{Name: "name", Type: "String"},
			},
			Required: []string{"name"},
		},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return cat
}

func TestValidate_LeadScenario(t *testing.T) {
	v := recval.New(leadCatalog(t))
	ctx := context.Background()

	res, err := v.Validate(ctx, "demo.lead", recval.FromBytes([]byte(`{"name":"Bob","age":"30","tags":["a","b"]}`)))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !res.Valid {
		t.Fatalf("expected valid, got %v", res.Issues)
	}
	if res.Checked != 3 {
		t.Fatalf("Checked = %d, want 3", res.Checked)
	}

	res, err = v.Validate(ctx, "demo.lead", recval.FromBytes([]byte(`{"age":"thirty"}`)))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Valid {
		t.Fatalf("expected invalid")
	}
	var sawRequired, sawType bool
	for _, iss := range res.Issues {
		switch iss.Code {
		case recval.CodeRequired:
			sawRequired = true
		case recval.CodeInvalidType:
			if iss.Path != "/age" {
				t.Fatalf("type issue path = %q, want /age", iss.Path)
			}
			sawType = true
		}
	}
	if !sawRequired || !sawType {
		t.Fatalf("expected required and invalid_type issues, got %v", res.Issues)
	}
}

func TestValidate_NumericJSONValuesCoerceToText(t *testing.T) {
	v := recval.New(leadCatalog(t))

	// age as a JSON number, not a string.
	ok := v.Valid(context.Background(), "demo.lead", recval.FromBytes([]byte(`{"name":"Bob","age":30}`)))
	if !ok {
		t.Fatalf("JSON number should validate as Integer")
	}
}

func TestValidate_UnknownFieldFailsOtherwiseValidDocument(t *testing.T) {
	v := recval.New(leadCatalog(t))

	res, err := v.Validate(context.Background(), "demo.lead",
		recval.FromBytes([]byte(`{"name":"Bob","nickname":"bobby"}`)))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Valid {
		t.Fatalf("expected invalid")
	}
	if len(res.Issues) != 1 || res.Issues[0].Code != recval.CodeUnknownField || res.Issues[0].Path != "/nickname" {
		t.Fatalf("issues = %v", res.Issues)
	}
}

func TestValidate_RepeatedCallsAreIndependent(t *testing.T) {
	v := recval.New(leadCatalog(t))
	ctx := context.Background()

	if !v.Valid(ctx, "demo.lead", recval.FromBytes([]byte(`{"name":"A"}`))) {
		t.Fatalf("first call should be valid")
	}
	if v.Valid(ctx, "demo.lead", recval.FromBytes([]byte(`{"age":"x"}`))) {
		t.Fatalf("second call should be invalid")
	}
	if !v.Valid(ctx, "demo.leads", recval.FromBytes([]byte(`[{"name":"A"},{"name":"B"}]`))) {
		t.Fatalf("third call with a different root should be valid")
	}
	res, _ := v.Validate(ctx, "demo.lead", recval.FromBytes([]byte(`{"name":"A"}`)))
	if !res.Valid || len(res.Issues) != 0 {
		t.Fatalf("no state may leak across calls: %v", res.Issues)
	}
}

func TestValidate_StructuralErrorAbortsCall(t *testing.T) {
	v := recval.New(leadCatalog(t))
	ctx := context.Background()

	res, err := v.Validate(ctx, "no.such.record", recval.FromBytes([]byte(`{}`)))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Valid || len(res.Issues) != 1 || res.Issues[0].Code != recval.CodeStructure {
		t.Fatalf("expected single structure issue, got %v", res.Issues)
	}

	res, _ = v.Validate(ctx, "demo.lead", recval.FromBytes([]byte(`[1,2]`)))
	if res.Valid || res.Checked != 0 {
		t.Fatalf("shape mismatch must abort before any field check: %+v", res)
	}
}

func TestValidate_SourceErrorsReturnIssuesError(t *testing.T) {
	v := recval.New(leadCatalog(t))

	_, err := v.Validate(context.Background(), "demo.lead", recval.FromBytes([]byte(`{not json`)))
	if err == nil {
		t.Fatalf("expected error for malformed document")
	}
	iss, ok := recval.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != recval.CodeParseError {
		t.Fatalf("expected parse_error Issues, got %v", err)
	}

	if v.Valid(context.Background(), "demo.lead", recval.FromBytes([]byte(`{not json`))) {
		t.Fatalf("Valid must report false for unreadable documents")
	}
}

func TestValidate_SinkReceivesIssues(t *testing.T) {
	cat, err := recval.NewCatalog([]recval.Record{{
		FullName: "demo.t",
		Shape:    recval.ShapeObject,
		Fields: []recval.Field{
			{Name: "a", Type: "Integer"},
			{Name: "b", Type: "String", Rule: "$UNSUPPORTED$x"},
		},
	}})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	v := recval.New(cat)

	var got []recval.Issue
	res, err := v.Validate(context.Background(), "demo.t",
		recval.FromBytes([]byte(`{"a":"x","b":"y"}`)),
		recval.Opt{Sink: func(iss recval.Issue) { got = append(got, iss) }})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != len(res.Issues)+len(res.Warnings) {
		t.Fatalf("sink saw %d, result has %d+%d", len(got), len(res.Issues), len(res.Warnings))
	}
	var warns int
	for _, iss := range got {
		if iss.Severity == recval.SeverityWarning {
			warns++
		}
	}
	if warns != 1 {
		t.Fatalf("expected one warning through the sink, got %d", warns)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Code != recval.CodeUnsupportedRule {
		t.Fatalf("warnings = %v", res.Warnings)
	}
	if res.Valid {
		t.Fatalf("a is not an Integer, expected invalid")
	}
}

func TestValidate_FailFastAndMaxIssues(t *testing.T) {
	v := recval.New(leadCatalog(t))
	ctx := context.Background()
	doc := []byte(`{"age":"x","name":1,"tags":"not-an-array"}`)

	res, err := v.Validate(ctx, "demo.lead", recval.FromBytes(doc), recval.Opt{FailFast: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Issues) != 1 {
		t.Fatalf("fail-fast collected %d issues", len(res.Issues))
	}

	res, _ = v.Validate(ctx, "demo.lead", recval.FromBytes(doc), recval.Opt{MaxIssues: 2})
	if len(res.Issues) != 2 {
		t.Fatalf("max-issues collected %d issues", len(res.Issues))
	}
}

func TestResult_Err(t *testing.T) {
	v := recval.New(leadCatalog(t))
	ctx := context.Background()

	res, _ := v.Validate(ctx, "demo.lead", recval.FromBytes([]byte(`{"name":"A"}`)))
	if res.Err() != nil {
		t.Fatalf("valid result must have nil Err")
	}

	res, _ = v.Validate(ctx, "demo.lead", recval.FromBytes([]byte(`{}`)))
	err := res.Err()
	if err == nil {
		t.Fatalf("invalid result must surface issues as error")
	}
	if iss, ok := recval.AsIssues(err); !ok || len(iss) == 0 {
		t.Fatalf("Err must be Issues, got %v", err)
	}
}

func TestValidator_Catalog(t *testing.T) {
	cat := leadCatalog(t)
	if recval.New(cat).Catalog() != cat {
		t.Fatalf("Catalog() must return the construction catalog")
	}
}
