package reform

import (
	"errors"
	"testing"

	"github.com/keystorm/keystorm/internal/element"
	"github.com/keystorm/keystorm/internal/fields"
)

func TestComposePlainTokenizer(t *testing.T) {
	r := Default()
	p := r.Compose(element.Line{Content: "hello"})
	if p.Text() != "hello" {
		t.Fatalf("Text = %q, want hello", p.Text())
	}
}

func TestComposeTokenizerFailureDegradesToErrorField(t *testing.T) {
	r := Default()
	r.Tokenizer = func(content string) ([]Field, error) {
		return nil, errors.New("boom")
	}
	p := r.Compose(element.Line{Content: "oops"})
	if p.Text() != "oops" {
		t.Fatalf("Text = %q, want oops", p.Text())
	}
	if len(p) == 0 {
		t.Fatal("expected at least one word")
	}
	want := r.Theme.Resolve(fields.ClassErrorCondition)
	if p[0].Style != want {
		t.Fatalf("style = %+v, want error-condition style %+v", p[0].Style, want)
	}
}
