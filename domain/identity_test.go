package domain

import "testing"

func TestDocumentID(t *testing.T) {
	url := "https://thehackernews.com/2024/11/some-article.html"

	first := DocumentID(url)
	second := DocumentID(url)
	if first != second {
		t.Errorf("same URL produced different ids: %q vs %q", first, second)
	}
	if len(first) != 64 {
		t.Errorf("id length = %d, want 64", len(first))
	}
	for _, r := range first {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			t.Fatalf("id contains non-hex character %q", r)
		}
	}

	if DocumentID("https://example.com/a") == DocumentID("https://example.com/b") {
		t.Error("distinct URLs produced the same id")
	}
}

func TestNumericID(t *testing.T) {
	id := DocumentID("https://example.com/article")

	first := NumericID(id)
	second := NumericID(id)
	if first != second {
		t.Errorf("same id produced different numeric ids: %d vs %d", first, second)
	}
	if first < 0 || first >= 100000 {
		t.Errorf("numeric id %d out of range [0, 100000)", first)
	}
}
