package service

import (
	"regexp"
	"strconv"
	"testing"
	"time"
)

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"report.pdf":          "report.pdf",
		"my report (1).pdf":   "my_report__1_.pdf",
		"año-2024_v2.tar.gz":  "a_o-2024_v2.tar.gz",
		"../../etc/passwd":    ".._.._etc_passwd",
		"":                    "file",
		"..":                  "file",
		"résumé final.docx":   "r_sum__final.docx",
		"with\x00nul.txt":     "with_nul.txt",
		"semi;colon&amp.html": "semi_colon_amp.html",
	}
	for in, want := range cases {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeFilenameKeepsExtensionWhenTruncating(t *testing.T) {
	long := make([]byte, 400)
	for i := range long {
		long[i] = 'a'
	}
	got := sanitizeFilename(string(long) + ".pdf")
	if len(got) != maxSanitizedLen {
		t.Fatalf("expected length %d, got %d", maxSanitizedLen, len(got))
	}
	if got[len(got)-4:] != ".pdf" {
		t.Fatalf("extension lost: %q", got)
	}
}

func TestStoredName(t *testing.T) {
	now := time.Unix(1700000000, 123456789)
	name := StoredName("mi archivo.pdf", now)

	re := regexp.MustCompile(`^1700000000123456789_[0-9a-f]{8}_mi_archivo\.pdf$`)
	if !re.MatchString(name) {
		t.Fatalf("unexpected stored name %q", name)
	}
	if other := StoredName("mi archivo.pdf", now); other == name {
		t.Fatal("same timestamp must still produce distinct names")
	}
}
