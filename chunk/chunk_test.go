package chunk

import (
	"testing"

	"pii-sanitizer/meta"
)

// TestChunking mirrors original_source/src/processor/chunk.rs's
// test_chunking: a string with two ranged remarks splits into five chunks
// (text, redaction, text, redaction, text), and converting back reproduces
// the same string and an equivalent set of ranged remarks.
func TestChunking(t *testing.T) {
	text := "before email@example.com and 4111111111111234 after"
	m := meta.Meta{Remarks: []meta.Remark{
		meta.NewRangedRemark(meta.NewNote("@email:mask", "potential email address"), meta.Masked, 7, 24),
		meta.NewRangedRemark(meta.NewNote("@creditcard:mask", "potential credit card number"), meta.Masked, 29, 45),
	}}

	chunks := FromString(text, m)

	want := []Chunk{
		NewText("before "),
		NewRedaction("email@example.com", "@email:mask", meta.Masked),
		NewText(" and "),
		NewRedaction("4111111111111234", "@creditcard:mask", meta.Masked),
		NewText(" after"),
	}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d: %+v", len(want), len(chunks), chunks)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d: got %+v, want %+v", i, chunks[i], want[i])
		}
	}

	rebuilt, rebuiltMeta := ToString(chunks, m)
	if rebuilt != text {
		t.Errorf("round-trip text mismatch: got %q, want %q", rebuilt, text)
	}
	if len(rebuiltMeta.Remarks) != 2 {
		t.Fatalf("expected 2 remarks after round-trip, got %d", len(rebuiltMeta.Remarks))
	}
	if rebuiltMeta.Remarks[0].Range.From != 7 || rebuiltMeta.Remarks[0].Range.To != 24 {
		t.Errorf("unexpected first remark range: %+v", rebuiltMeta.Remarks[0].Range)
	}
}

func TestFromStringNoRemarks(t *testing.T) {
	chunks := FromString("plain text", meta.Meta{})
	if len(chunks) != 1 || chunks[0].Kind != Text || chunks[0].Value != "plain text" {
		t.Fatalf("expected a single text chunk, got %+v", chunks)
	}
}

func TestFromStringOutOfBoundsStopsWalk(t *testing.T) {
	m := meta.Meta{Remarks: []meta.Remark{
		meta.NewRangedRemark(meta.NewNote("r", ""), meta.Masked, 0, 100),
	}}
	chunks := FromString("short", m)
	if len(chunks) != 1 || chunks[0].Kind != Text {
		t.Fatalf("expected the walk to stop and return the untouched text, got %+v", chunks)
	}
}

func TestFromStringNonUTF8BoundaryStopsWalk(t *testing.T) {
	text := "caf\xc3\xa9 data" // "café data"; byte 4 is mid-rune
	m := meta.Meta{Remarks: []meta.Remark{
		meta.NewRangedRemark(meta.NewNote("r", ""), meta.Masked, 4, 6),
	}}
	chunks := FromString(text, m)
	if len(chunks) != 1 || chunks[0].Value != text {
		t.Fatalf("expected boundary-straddling remark to abort the walk, got %+v", chunks)
	}
}
